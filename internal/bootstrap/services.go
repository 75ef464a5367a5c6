package bootstrap

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/smart-inventory-api/internal/application/analytics"
	"github.com/jhoicas/smart-inventory-api/internal/application/billing"
	"github.com/jhoicas/smart-inventory-api/internal/application/export"
	"github.com/jhoicas/smart-inventory-api/internal/application/inventory"
	"github.com/jhoicas/smart-inventory-api/internal/application/ledger"
	"github.com/jhoicas/smart-inventory-api/internal/application/usecase"
	"github.com/jhoicas/smart-inventory-api/internal/domain/invoicing"
	"github.com/jhoicas/smart-inventory-api/internal/infrastructure/cache"
	"github.com/jhoicas/smart-inventory-api/internal/infrastructure/excel"
	"github.com/jhoicas/smart-inventory-api/internal/infrastructure/pdf"
	"github.com/jhoicas/smart-inventory-api/pkg/config"
)

// Services casos de uso listos para el router o la CLI.
type Services struct {
	Product   *usecase.ProductUseCase
	Stock     *inventory.StockUseCase
	LowStock  *inventory.LowStockUseCase
	Invoice   *billing.InvoiceUseCase
	PDF       *billing.PDFUseCase
	Ledger    *ledger.LedgerUseCase
	Export    *export.ExportUseCase
	Dashboard *analytics.DashboardUseCase
}

// NewServices construye los casos de uso sobre el gateway. statsCache puede ser nil.
func NewServices(cfg *config.Config, gw *Gateway, statsCache analytics.StatsCache) (*Services, error) {
	stockUC := inventory.NewStockUseCase(gw.TxRunner)
	numbers := invoicing.NewNumberGenerator(cfg.Invoice.Prefix, nil)
	invoiceUC := billing.NewInvoiceUseCase(gw.TxRunner, stockUC, gw.Invoices, gw.Reports, numbers)

	exportUC, err := export.NewExportUseCase(gw.Reports, excel.NewWriter(), cfg.Export.Path)
	if err != nil {
		return nil, err
	}
	return &Services{
		Product:   usecase.NewProductUseCase(gw.Products, gw.TxRunner),
		Stock:     stockUC,
		LowStock:  inventory.NewLowStockUseCase(gw.Reports),
		Invoice:   invoiceUC,
		PDF:       billing.NewPDFUseCase(gw.Invoices, pdf.NewMarotoPDFGenerator(), cfg.App.Name),
		Ledger:    ledger.NewLedgerUseCase(gw.Transactions),
		Export:    exportUC,
		Dashboard: analytics.NewDashboardUseCase(gw.Reports, statsCache, cfg.Dashboard.CacheTTL),
	}, nil
}

// OpenStatsCache conecta Redis si REDIS_URL está configurado. Un fallo de conexión
// deja el dashboard sin caché en lugar de impedir el arranque.
func OpenStatsCache(ctx context.Context, cfg config.RedisConfig) (analytics.StatsCache, func()) {
	if !cfg.Enabled() {
		return nil, func() {}
	}
	rdb, err := cache.NewRedis(ctx, cfg.URL)
	if err != nil {
		log.Warn().Err(err).Msg("redis no disponible, dashboard sin caché")
		return nil, func() {}
	}
	log.Info().Msg("caché de dashboard en redis habilitada")
	return cache.NewRedisCache(rdb), func() { _ = rdb.Close() }
}
