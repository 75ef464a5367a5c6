package repository

import (
	"context"

	"github.com/jhoicas/smart-inventory-api/internal/domain/entity"
)

// ProductFilter filtros y paginación para listar productos.
// IsActive nil no filtra; LowStock restringe a current_stock <= reorder_point.
type ProductFilter struct {
	Category string
	IsActive *bool
	LowStock bool
	Offset   int
	Limit    int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los Get devuelven (nil, nil) cuando el registro no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uint) (*entity.Product, error)
	// GetByIDForUpdate bloquea la fila hasta el fin de la transacción en curso.
	GetByIDForUpdate(ctx context.Context, id uint) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	UpdateStock(ctx context.Context, id uint, stock int) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
}
