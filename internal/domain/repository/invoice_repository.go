package repository

import (
	"context"

	"github.com/jhoicas/smart-inventory-api/internal/domain/entity"
)

// InvoiceFilter filtros y paginación para listar facturas.
// CustomerName filtra por subcadena sin distinguir mayúsculas.
type InvoiceFilter struct {
	Status       string
	CustomerName string
	Offset       int
	Limit        int
}

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
type InvoiceRepository interface {
	// Create guarda cabecera y líneas; asigna los IDs generados.
	Create(ctx context.Context, invoice *entity.Invoice) error
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	// GetByID devuelve la factura con sus líneas, o (nil, nil) si no existe.
	GetByID(ctx context.Context, id uint) (*entity.Invoice, error)
	GetByIDForUpdate(ctx context.Context, id uint) (*entity.Invoice, error)
	// Update actualiza solo la cabecera; las líneas son inmutables.
	Update(ctx context.Context, invoice *entity.Invoice) error
	List(ctx context.Context, filter InvoiceFilter) ([]*entity.Invoice, error)
}
