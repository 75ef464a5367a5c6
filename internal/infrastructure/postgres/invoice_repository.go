package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jhoicas/smart-inventory-api/internal/domain"
	"github.com/jhoicas/smart-inventory-api/internal/domain/entity"
	"github.com/jhoicas/smart-inventory-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// Columnas de cabecera modificables después de crear la factura.
var invoiceMutableColumns = []string{
	"customer_name", "customer_email", "customer_phone", "customer_address",
	"due_date", "status", "paid_amount", "notes", "payment_terms", "updated_at",
}

// InvoiceRepo implementación del puerto InvoiceRepository sobre PostgreSQL.
type InvoiceRepo struct {
	db *gorm.DB
}

// NewInvoiceRepository construye el adaptador. Acepta la sesión raíz o una tx.
func NewInvoiceRepository(db *gorm.DB) *InvoiceRepo {
	return &InvoiceRepo{db: db}
}

// Create inserta cabecera y líneas en una sola operación.
func (r *InvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	err := r.db.WithContext(ctx).Create(invoice).Error
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: número de factura %s", domain.ErrDuplicate, invoice.InvoiceNumber)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Invoice{}).
		Where("invoice_number = ?", number).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("exists invoice number: %w", err)
	}
	return count > 0, nil
}

// GetByID obtiene la factura con sus líneas ordenadas por id.
func (r *InvoiceRepo) GetByID(ctx context.Context, id uint) (*entity.Invoice, error) {
	return r.get(ctx, r.db.WithContext(ctx), id)
}

// GetByIDForUpdate bloquea la cabecera (SELECT ... FOR UPDATE) y carga las líneas.
func (r *InvoiceRepo) GetByIDForUpdate(ctx context.Context, id uint) (*entity.Invoice, error) {
	return r.get(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *InvoiceRepo) get(ctx context.Context, q *gorm.DB, id uint) (*entity.Invoice, error) {
	var inv entity.Invoice
	if err := q.Where("id = ?", id).First(&inv).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	if err := r.db.WithContext(ctx).Where("invoice_id = ?", inv.ID).Order("id").Find(&inv.Items).Error; err != nil {
		return nil, fmt.Errorf("get invoice items: %w", err)
	}
	return &inv, nil
}

// Update actualiza solo la cabecera.
func (r *InvoiceRepo) Update(ctx context.Context, invoice *entity.Invoice) error {
	res := r.db.WithContext(ctx).Model(&entity.Invoice{}).
		Where("id = ?", invoice.ID).
		Select(invoiceMutableColumns).
		Updates(invoice)
	if res.Error != nil {
		return fmt.Errorf("update invoice: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

// List lista facturas con líneas, ordenadas por id.
func (r *InvoiceRepo) List(ctx context.Context, filter repository.InvoiceFilter) ([]*entity.Invoice, error) {
	q := r.db.WithContext(ctx).Model(&entity.Invoice{}).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") })
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.CustomerName != "" {
		q = q.Where("customer_name ILIKE ?", "%"+filter.CustomerName+"%")
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	var list []*entity.Invoice
	if err := q.Order("id").Offset(filter.Offset).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return list, nil
}
