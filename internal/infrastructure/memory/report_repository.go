package memory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/smart-inventory-api/internal/domain/entity"
	"github.com/jhoicas/smart-inventory-api/internal/domain/invoicing"
	"github.com/jhoicas/smart-inventory-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de lectura calculadas sobre el almacén.
type ReportRepo struct {
	s *Store
}

// NewReportRepository construye el repositorio de reportes.
func NewReportRepository(s *Store) *ReportRepo {
	return &ReportRepo{s: s}
}

func (r *ReportRepo) OverdueInvoices(_ context.Context, asOf time.Time) ([]*entity.Invoice, error) {
	return r.s.selectInvoices(func(inv *entity.Invoice) bool {
		return invoicing.IsOverdue(inv, asOf)
	}), nil
}

func (r *ReportRepo) LowStockProducts(_ context.Context) ([]*entity.Product, error) {
	return r.s.selectProducts(func(p *entity.Product) bool {
		return p.IsActive && p.IsLowStock()
	}), nil
}

func (r *ReportRepo) AllProducts(_ context.Context) ([]*entity.Product, error) {
	return r.s.selectProducts(func(*entity.Product) bool { return true }), nil
}

func (r *ReportRepo) ActiveProducts(_ context.Context) ([]*entity.Product, error) {
	return r.s.selectProducts(func(p *entity.Product) bool { return p.IsActive }), nil
}

// InvoicesByStatus devuelve las cabeceras sin líneas.
func (r *ReportRepo) InvoicesByStatus(_ context.Context, status string) ([]*entity.Invoice, error) {
	list := r.s.selectInvoices(func(inv *entity.Invoice) bool {
		return status == "" || inv.Status == status
	})
	for _, inv := range list {
		inv.Items = nil
	}
	return list, nil
}

func (r *ReportRepo) ProductStats(_ context.Context) (repository.ProductStats, error) {
	stats := repository.ProductStats{InventoryValue: decimal.Zero}
	for _, p := range r.s.selectProducts(func(p *entity.Product) bool { return p.IsActive }) {
		stats.TotalProducts++
		if p.IsLowStock() {
			stats.LowStock++
		}
		if p.IsOutOfStock() {
			stats.OutOfStock++
		}
		stats.InventoryValue = stats.InventoryValue.Add(p.StockValue())
	}
	return stats, nil
}

func (r *ReportRepo) InvoiceStats(_ context.Context, revenueSince, asOf time.Time) (repository.InvoiceStats, error) {
	stats := repository.InvoiceStats{MonthlyRevenue: decimal.Zero, OutstandingAmount: decimal.Zero}
	for _, inv := range r.s.selectInvoices(func(*entity.Invoice) bool { return true }) {
		stats.TotalInvoices++
		switch inv.Status {
		case entity.InvoiceStatusDraft:
			stats.PendingInvoices++
		case entity.InvoiceStatusSent:
			stats.PendingInvoices++
			stats.OutstandingAmount = stats.OutstandingAmount.Add(inv.Balance())
		case entity.InvoiceStatusPartiallyPaid:
			stats.OutstandingAmount = stats.OutstandingAmount.Add(inv.Balance())
		case entity.InvoiceStatusPaid:
			if !inv.CreatedAt.Before(revenueSince) {
				stats.MonthlyRevenue = stats.MonthlyRevenue.Add(inv.TotalAmount)
			}
		}
		if invoicing.IsOverdue(inv, asOf) {
			stats.OverdueInvoices++
		}
	}
	return stats, nil
}
