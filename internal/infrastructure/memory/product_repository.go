package memory

import (
	"context"
	"slices"
	"time"

	"github.com/jhoicas/smart-inventory-api/internal/domain"
	"github.com/jhoicas/smart-inventory-api/internal/domain/entity"
	"github.com/jhoicas/smart-inventory-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	s    *Store
	inTx bool
}

// NewProductRepository construye el repositorio sobre el almacén.
func NewProductRepository(s *Store) *ProductRepo {
	return &ProductRepo{s: s}
}

// Create persiste el producto y asigna su ID. SKU duplicado devuelve *domain.DuplicateSKUError.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	defer r.s.lockWrite(r.inTx)()
	for _, p := range r.s.products {
		if p.SKU == product.SKU {
			return &domain.DuplicateSKUError{SKU: product.SKU}
		}
	}
	r.s.seq.product++
	product.ID = r.s.seq.product
	r.s.products[product.ID] = cloneProduct(product)
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(_ context.Context, id uint) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return cloneProduct(p), nil
}

// GetByIDForUpdate equivale a GetByID; el aislamiento lo da TxRunner.
func (r *ProductRepo) GetByIDForUpdate(ctx context.Context, id uint) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.products {
		if p.SKU == sku {
			return cloneProduct(p), nil
		}
	}
	return nil, nil
}

// Update reemplaza los campos editables. No modifica SKU ni stock.
func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	defer r.s.lockWrite(r.inTx)()
	cur, ok := r.s.products[product.ID]
	if !ok {
		return domain.ErrProductNotFound
	}
	updated := cloneProduct(product)
	updated.SKU = cur.SKU
	updated.CurrentStock = cur.CurrentStock
	updated.CreatedAt = cur.CreatedAt
	r.s.products[product.ID] = updated
	return nil
}

// UpdateStock fija current_stock. Rechaza valores negativos.
func (r *ProductRepo) UpdateStock(_ context.Context, id uint, stock int) error {
	if stock < 0 {
		return domain.ErrInsufficientStock
	}
	defer r.s.lockWrite(r.inTx)()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.CurrentStock = stock
	p.UpdatedAt = time.Now()
	return nil
}

// List lista productos filtrados y paginados, ordenados por id.
func (r *ProductRepo) List(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	list := r.s.selectProducts(func(p *entity.Product) bool {
		if filter.Category != "" && p.Category != filter.Category {
			return false
		}
		if filter.IsActive != nil && p.IsActive != *filter.IsActive {
			return false
		}
		if filter.LowStock && !p.IsLowStock() {
			return false
		}
		return true
	})
	return paginate(list, filter.Offset, filter.Limit), nil
}

func (s *Store) selectProducts(keep func(*entity.Product) bool) []*entity.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]*entity.Product, 0, len(s.products))
	for _, p := range s.products {
		if keep(p) {
			list = append(list, cloneProduct(p))
		}
	}
	slices.SortFunc(list, func(a, b *entity.Product) int { return int(a.ID) - int(b.ID) })
	return list
}
