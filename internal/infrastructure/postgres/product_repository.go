package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jhoicas/smart-inventory-api/internal/domain"
	"github.com/jhoicas/smart-inventory-api/internal/domain/entity"
	"github.com/jhoicas/smart-inventory-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// Columnas editables por PATCH; sku y current_stock quedan fuera.
var productEditableColumns = []string{
	"name", "description", "category", "unit", "cost_price", "selling_price",
	"min_stock_level", "max_stock_level", "reorder_point", "supplier", "supplier_contact",
	"is_active", "updated_at",
}

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con la sesión raíz o una tx).
type ProductRepo struct {
	db *gorm.DB
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(db *gorm.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		if isUniqueViolation(err) {
			return &domain.DuplicateSKUError{SKU: product.SKU}
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id uint) (*entity.Product, error) {
	return r.first(r.db.WithContext(ctx), "id = ?", id)
}

// GetByIDForUpdate obtiene el producto bloqueando la fila (SELECT ... FOR UPDATE).
func (r *ProductRepo) GetByIDForUpdate(ctx context.Context, id uint) (*entity.Product, error) {
	return r.first(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), "id = ?", id)
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.first(r.db.WithContext(ctx), "sku = ?", sku)
}

func (r *ProductRepo) first(q *gorm.DB, cond string, arg any) (*entity.Product, error) {
	var p entity.Product
	if err := q.Where(cond, arg).First(&p).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update actualiza los campos editables, incluidos los valores cero.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	res := r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("id = ?", product.ID).
		Select(productEditableColumns).
		Updates(product)
	if res.Error != nil {
		return fmt.Errorf("update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// UpdateStock fija current_stock. El CHECK de la tabla rechaza valores negativos.
func (r *ProductRepo) UpdateStock(ctx context.Context, id uint, stock int) error {
	res := r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("id = ?", id).
		Updates(map[string]any{"current_stock": stock, "updated_at": time.Now()})
	if res.Error != nil {
		if isCheckViolation(res.Error) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("update stock: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// List lista productos filtrados y paginados, ordenados por id.
func (r *ProductRepo) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	q := r.db.WithContext(ctx).Model(&entity.Product{})
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.IsActive != nil {
		q = q.Where("is_active = ?", *filter.IsActive)
	}
	if filter.LowStock {
		q = q.Where("current_stock <= reorder_point")
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	var list []*entity.Product
	if err := q.Order("id").Offset(filter.Offset).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return list, nil
}
