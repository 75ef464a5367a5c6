// Package analytics contiene los casos de uso del dashboard de inventario y facturación.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/smart-inventory-api/internal/application/dto"
	"github.com/jhoicas/smart-inventory-api/internal/domain/repository"
)

// revenueWindow ventana de ingresos del dashboard (últimos 30 días).
const revenueWindow = 30 * 24 * time.Hour

const statsCacheKey = "dashboard:stats"

// DashboardUseCase genera los KPIs de productos, facturas y alertas.
//
// Fuente de datos: ReportRepository (consultas read-only).
// Si hay caché configurada, el resultado se reutiliza durante ttl; no se invalida en escrituras.
type DashboardUseCase struct {
	reportRepo repository.ReportRepository
	cache      StatsCache
	ttl        time.Duration
	now        func() time.Time
}

// NewDashboardUseCase construye el caso de uso. cache puede ser nil.
func NewDashboardUseCase(reportRepo repository.ReportRepository, cache StatsCache, ttl time.Duration) *DashboardUseCase {
	return &DashboardUseCase{reportRepo: reportRepo, cache: cache, ttl: ttl, now: time.Now}
}

// GetStats construye el DashboardStatsDTO.
//
// Dos llamadas en paralelo:
//  1. ProductStats()               → products + alerts.low_stock_products
//  2. InvoiceStats(now-30d, now)   → invoices + alerts.overdue_invoices
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	if uc.cache != nil {
		var cached dto.DashboardStatsDTO
		hit, err := uc.cache.Get(ctx, statsCacheKey, &cached)
		if err != nil {
			log.Warn().Err(err).Msg("dashboard: lectura de caché fallida")
		} else if hit {
			return &cached, nil
		}
	}

	now := uc.now()

	// ── Goroutines para paralelizar las consultas DB ──────────────────────────
	type productResult struct {
		stats repository.ProductStats
		err   error
	}
	type invoiceResult struct {
		stats repository.InvoiceStats
		err   error
	}

	productCh := make(chan productResult, 1)
	invoiceCh := make(chan invoiceResult, 1)

	go func() {
		s, err := uc.reportRepo.ProductStats(ctx)
		productCh <- productResult{s, err}
	}()
	go func() {
		s, err := uc.reportRepo.InvoiceStats(ctx, now.Add(-revenueWindow), now)
		invoiceCh <- invoiceResult{s, err}
	}()

	products := <-productCh
	invoices := <-invoiceCh

	if products.err != nil {
		return nil, fmt.Errorf("dashboard: métricas de productos: %w", products.err)
	}
	if invoices.err != nil {
		return nil, fmt.Errorf("dashboard: métricas de facturas: %w", invoices.err)
	}

	// ── Construir DTO ──────────────────────────────────────────────────────────
	stats := &dto.DashboardStatsDTO{
		Products: dto.ProductStatsDTO{
			Total:          products.stats.TotalProducts,
			LowStock:       products.stats.LowStock,
			OutOfStock:     products.stats.OutOfStock,
			InventoryValue: products.stats.InventoryValue.Round(2),
		},
		Invoices: dto.InvoiceStatsDTO{
			Total:             invoices.stats.TotalInvoices,
			Pending:           invoices.stats.PendingInvoices,
			MonthlyRevenue:    invoices.stats.MonthlyRevenue.Round(2),
			OutstandingAmount: invoices.stats.OutstandingAmount.Round(2),
		},
		Alerts: dto.AlertsDTO{
			LowStockProducts: products.stats.LowStock,
			OverdueInvoices:  invoices.stats.OverdueInvoices,
		},
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, statsCacheKey, stats, uc.ttl); err != nil {
			log.Warn().Err(err).Msg("dashboard: escritura de caché fallida")
		}
	}
	return stats, nil
}
