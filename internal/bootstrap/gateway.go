// Package bootstrap arma el gateway de persistencia y los casos de uso a partir de la configuración.
// Lo comparten cmd/api y cmd/export.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/smart-inventory-api/internal/application/billing"
	"github.com/jhoicas/smart-inventory-api/internal/application/inventory"
	"github.com/jhoicas/smart-inventory-api/internal/domain/repository"
	"github.com/jhoicas/smart-inventory-api/internal/infrastructure/memory"
	"github.com/jhoicas/smart-inventory-api/internal/infrastructure/postgres"
	"github.com/jhoicas/smart-inventory-api/pkg/config"
)

// TxRunner transacción usada por inventario y facturación.
type TxRunner interface {
	inventory.TxRunner
	billing.BillingTxRunner
}

// Gateway repositorios y transacciones de un backend de persistencia.
type Gateway struct {
	Products     repository.ProductRepository
	Invoices     repository.InvoiceRepository
	Transactions repository.TransactionRepository
	Reports      repository.ReportRepository
	TxRunner     TxRunner

	close func()
}

// Close libera las conexiones del gateway.
func (g *Gateway) Close() {
	if g.close != nil {
		g.close()
	}
}

// NewMemoryGateway gateway en memoria (DB_DRIVER=memory y pruebas).
func NewMemoryGateway() *Gateway {
	store := memory.NewStore()
	return &Gateway{
		Products:     memory.NewProductRepository(store),
		Invoices:     memory.NewInvoiceRepository(store),
		Transactions: memory.NewTransactionRepository(store),
		Reports:      memory.NewReportRepository(store),
		TxRunner:     memory.NewTxRunner(store),
	}
}

// NewPostgresGateway abre el pool pgx, monta gorm sobre él y aplica las migraciones.
func NewPostgresGateway(ctx context.Context, cfg config.DBConfig) (*Gateway, error) {
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	db, err := postgres.NewGorm(pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	if err := postgres.Migrate(db); err != nil {
		pool.Close()
		return nil, err
	}
	return &Gateway{
		Products:     postgres.NewProductRepository(db),
		Invoices:     postgres.NewInvoiceRepository(db),
		Transactions: postgres.NewTransactionRepository(db),
		Reports:      postgres.NewReportRepository(pool),
		TxRunner:     postgres.NewTxRunner(db),
		close:        pool.Close,
	}, nil
}

// OpenGateway elige el backend según DB_DRIVER.
func OpenGateway(ctx context.Context, cfg config.DBConfig) (*Gateway, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		log.Warn().Msg("usando almacenamiento en memoria: los datos se pierden al reiniciar")
		return NewMemoryGateway(), nil
	case config.DriverPostgres, "":
		return NewPostgresGateway(ctx, cfg)
	default:
		return nil, fmt.Errorf("driver de base de datos desconocido: %q", cfg.Driver)
	}
}
