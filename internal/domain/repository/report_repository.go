package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/smart-inventory-api/internal/domain/entity"
)

// ProductStats agregados de productos activos para el dashboard.
type ProductStats struct {
	TotalProducts  int
	LowStock       int
	OutOfStock     int
	InventoryValue decimal.Decimal // Σ current_stock × cost_price
}

// InvoiceStats agregados de facturas para el dashboard.
type InvoiceStats struct {
	TotalInvoices     int
	PendingInvoices   int             // draft o sent
	MonthlyRevenue    decimal.Decimal // Σ total de facturas pagadas creadas desde RevenueSince
	OutstandingAmount decimal.Decimal // Σ (total - pagado) de sent y partially_paid
	OverdueInvoices   int
}

// ReportRepository define las consultas de lectura para reportes, dashboard y exportación.
// Las implementaciones son read-only (no modifican datos).
type ReportRepository interface {
	// OverdueInvoices facturas con due_date < asOf en estado sent o partially_paid.
	OverdueInvoices(ctx context.Context, asOf time.Time) ([]*entity.Invoice, error)

	// LowStockProducts productos activos con current_stock <= reorder_point.
	LowStockProducts(ctx context.Context) ([]*entity.Product, error)

	// ── Exportación ───────────────────────────────────────────────────────────

	// AllProducts todos los productos (activos e inactivos) ordenados por id.
	AllProducts(ctx context.Context) ([]*entity.Product, error)
	// ActiveProducts productos activos ordenados por id.
	ActiveProducts(ctx context.Context) ([]*entity.Product, error)
	// InvoicesByStatus facturas sin líneas; status vacío devuelve todas.
	InvoicesByStatus(ctx context.Context, status string) ([]*entity.Invoice, error)

	// ── Métodos del Dashboard ─────────────────────────────────────────────────

	ProductStats(ctx context.Context) (ProductStats, error)
	// InvoiceStats usa revenueSince como inicio de la ventana de ingresos y
	// asOf para contar las facturas en mora.
	InvoiceStats(ctx context.Context, revenueSince, asOf time.Time) (InvoiceStats, error)
}
