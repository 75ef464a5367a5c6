package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/smart-inventory-api/internal/domain/entity"
	"github.com/jhoicas/smart-inventory-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas SQL de solo lectura para reportes, dashboard y exportación.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

const productColumns = `
	id, sku, name, description, category, unit, cost_price, selling_price,
	current_stock, min_stock_level, max_stock_level, reorder_point,
	supplier, supplier_contact, is_active, created_at, updated_at`

const invoiceColumns = `
	id, invoice_number, customer_name, customer_email, customer_phone, customer_address,
	issue_date, due_date, status, subtotal, tax_rate, tax_amount, discount_rate,
	discount_amount, total_amount, paid_amount, notes, payment_terms, created_at, updated_at`

// OverdueInvoices facturas vencidas en estado sent o partially_paid, de la más antigua a la más reciente.
func (r *ReportRepo) OverdueInvoices(ctx context.Context, asOf time.Time) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + `
	FROM invoices
	WHERE due_date < $1
	  AND status IN ('sent', 'partially_paid')
	ORDER BY due_date, id`
	return r.queryInvoices(ctx, "report.OverdueInvoices", query, asOf)
}

func (r *ReportRepo) LowStockProducts(ctx context.Context) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
	FROM products
	WHERE is_active AND current_stock <= reorder_point
	ORDER BY id`
	return r.queryProducts(ctx, "report.LowStockProducts", query)
}

func (r *ReportRepo) AllProducts(ctx context.Context) ([]*entity.Product, error) {
	return r.queryProducts(ctx, "report.AllProducts", `SELECT `+productColumns+` FROM products ORDER BY id`)
}

func (r *ReportRepo) ActiveProducts(ctx context.Context) ([]*entity.Product, error) {
	return r.queryProducts(ctx, "report.ActiveProducts", `SELECT `+productColumns+` FROM products WHERE is_active ORDER BY id`)
}

// InvoicesByStatus cabeceras sin líneas; status vacío devuelve todas.
func (r *ReportRepo) InvoicesByStatus(ctx context.Context, status string) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + `
	FROM invoices
	WHERE ($1 = '' OR status = $1)
	ORDER BY id`
	return r.queryInvoices(ctx, "report.InvoicesByStatus", query, status)
}

// ProductStats agregados sobre productos activos en una sola pasada.
func (r *ReportRepo) ProductStats(ctx context.Context) (repository.ProductStats, error) {
	const query = `
	SELECT
	    COUNT(*)                                              AS total_products,
	    COUNT(*) FILTER (WHERE current_stock <= reorder_point) AS low_stock,
	    COUNT(*) FILTER (WHERE current_stock = 0)              AS out_of_stock,
	    COALESCE(SUM(current_stock * cost_price), 0)           AS inventory_value
	FROM products
	WHERE is_active`

	var s repository.ProductStats
	err := r.pool.QueryRow(ctx, query).Scan(&s.TotalProducts, &s.LowStock, &s.OutOfStock, &s.InventoryValue)
	if err != nil {
		return s, fmt.Errorf("report.ProductStats: %w", err)
	}
	return s, nil
}

// InvoiceStats agregados de facturación.
// $1 inicio de la ventana de ingresos, $2 instante de referencia para la mora.
func (r *ReportRepo) InvoiceStats(ctx context.Context, revenueSince, asOf time.Time) (repository.InvoiceStats, error) {
	const query = `
	SELECT
	    COUNT(*)                                                                    AS total_invoices,
	    COUNT(*) FILTER (WHERE status IN ('draft', 'sent'))                         AS pending_invoices,
	    COALESCE(SUM(total_amount) FILTER (WHERE status = 'paid' AND created_at >= $1), 0) AS monthly_revenue,
	    COALESCE(SUM(total_amount - paid_amount)
	             FILTER (WHERE status IN ('sent', 'partially_paid')), 0)            AS outstanding_amount,
	    COUNT(*) FILTER (WHERE status IN ('sent', 'partially_paid') AND due_date < $2) AS overdue_invoices
	FROM invoices`

	var s repository.InvoiceStats
	err := r.pool.QueryRow(ctx, query, revenueSince, asOf).Scan(
		&s.TotalInvoices,
		&s.PendingInvoices,
		&s.MonthlyRevenue,
		&s.OutstandingAmount,
		&s.OverdueInvoices,
	)
	if err != nil {
		return s, fmt.Errorf("report.InvoiceStats: %w", err)
	}
	return s, nil
}

func (r *ReportRepo) queryProducts(ctx context.Context, op, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Product, error) {
		var p entity.Product
		err := row.Scan(
			&p.ID, &p.SKU, &p.Name, &p.Description, &p.Category, &p.Unit, &p.CostPrice, &p.SellingPrice,
			&p.CurrentStock, &p.MinStockLevel, &p.MaxStockLevel, &p.ReorderPoint,
			&p.Supplier, &p.SupplierContact, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		)
		return &p, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s scan: %w", op, err)
	}
	return list, nil
}

func (r *ReportRepo) queryInvoices(ctx context.Context, op, query string, args ...any) ([]*entity.Invoice, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Invoice, error) {
		var inv entity.Invoice
		err := row.Scan(
			&inv.ID, &inv.InvoiceNumber, &inv.CustomerName, &inv.CustomerEmail, &inv.CustomerPhone, &inv.CustomerAddress,
			&inv.IssueDate, &inv.DueDate, &inv.Status, &inv.Subtotal, &inv.TaxRate, &inv.TaxAmount, &inv.DiscountRate,
			&inv.DiscountAmount, &inv.TotalAmount, &inv.PaidAmount, &inv.Notes, &inv.PaymentTerms, &inv.CreatedAt, &inv.UpdatedAt,
		)
		return &inv, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s scan: %w", op, err)
	}
	return list, nil
}
