package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/jhoicas/smart-inventory-api/internal/domain"
	"github.com/jhoicas/smart-inventory-api/internal/domain/entity"
	"github.com/jhoicas/smart-inventory-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación en memoria de InvoiceRepository.
type InvoiceRepo struct {
	s    *Store
	inTx bool
}

// NewInvoiceRepository construye el repositorio sobre el almacén.
func NewInvoiceRepository(s *Store) *InvoiceRepo {
	return &InvoiceRepo{s: s}
}

// Create guarda cabecera y líneas; asigna IDs a ambas.
func (r *InvoiceRepo) Create(_ context.Context, invoice *entity.Invoice) error {
	defer r.s.lockWrite(r.inTx)()
	for _, inv := range r.s.invoices {
		if inv.InvoiceNumber == invoice.InvoiceNumber {
			return domain.ErrDuplicate
		}
	}
	r.s.seq.invoice++
	invoice.ID = r.s.seq.invoice
	for i := range invoice.Items {
		r.s.seq.item++
		invoice.Items[i].ID = r.s.seq.item
		invoice.Items[i].InvoiceID = invoice.ID
	}
	r.s.invoices[invoice.ID] = cloneInvoice(invoice)
	return nil
}

// ExistsByNumber indica si el número ya está asignado.
func (r *InvoiceRepo) ExistsByNumber(_ context.Context, number string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, inv := range r.s.invoices {
		if inv.InvoiceNumber == number {
			return true, nil
		}
	}
	return false, nil
}

// GetByID obtiene la factura con sus líneas.
func (r *InvoiceRepo) GetByID(_ context.Context, id uint) (*entity.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	return cloneInvoice(inv), nil
}

// GetByIDForUpdate equivale a GetByID; el aislamiento lo da TxRunner.
func (r *InvoiceRepo) GetByIDForUpdate(ctx context.Context, id uint) (*entity.Invoice, error) {
	return r.GetByID(ctx, id)
}

// Update reemplaza la cabecera. Las líneas, el número y los totales de creación se conservan.
func (r *InvoiceRepo) Update(_ context.Context, invoice *entity.Invoice) error {
	defer r.s.lockWrite(r.inTx)()
	cur, ok := r.s.invoices[invoice.ID]
	if !ok {
		return domain.ErrInvoiceNotFound
	}
	updated := cloneInvoice(invoice)
	updated.InvoiceNumber = cur.InvoiceNumber
	updated.Items = cur.Items
	updated.CreatedAt = cur.CreatedAt
	r.s.invoices[invoice.ID] = updated
	return nil
}

// List lista facturas con líneas, ordenadas por id.
func (r *InvoiceRepo) List(_ context.Context, filter repository.InvoiceFilter) ([]*entity.Invoice, error) {
	needle := strings.ToLower(filter.CustomerName)
	list := r.s.selectInvoices(func(inv *entity.Invoice) bool {
		if filter.Status != "" && inv.Status != filter.Status {
			return false
		}
		if needle != "" && !strings.Contains(strings.ToLower(inv.CustomerName), needle) {
			return false
		}
		return true
	})
	return paginate(list, filter.Offset, filter.Limit), nil
}

func (s *Store) selectInvoices(keep func(*entity.Invoice) bool) []*entity.Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]*entity.Invoice, 0, len(s.invoices))
	for _, inv := range s.invoices {
		if keep(inv) {
			list = append(list, cloneInvoice(inv))
		}
	}
	slices.SortFunc(list, func(a, b *entity.Invoice) int { return int(a.ID) - int(b.ID) })
	return list
}
