package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/smart-inventory-api/internal/application/dto"
	"github.com/jhoicas/smart-inventory-api/internal/application/inventory"
	"github.com/jhoicas/smart-inventory-api/internal/domain"
	"github.com/jhoicas/smart-inventory-api/internal/domain/entity"
	"github.com/jhoicas/smart-inventory-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock se maneja vía inventory.StockUseCase.
type ProductUseCase struct {
	repo     repository.ProductRepository
	txRunner inventory.TxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, txRunner inventory.TxRunner) *ProductUseCase {
	return &ProductUseCase{repo: repo, txRunner: txRunner}
}

// Create crea un nuevo producto activo. El SKU debe ser único.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.SKU = strings.TrimSpace(in.SKU)
	if in.SKU == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.CurrentStock < 0 || in.CurrentStock > entity.MaxStockQuantity || in.CostPrice.IsNegative() || in.SellingPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetBySKU(ctx, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &domain.DuplicateSKUError{SKU: in.SKU}
	}
	if in.Unit == "" {
		in.Unit = entity.DefaultUnit
	}
	now := time.Now()
	product := &entity.Product{
		SKU:             in.SKU,
		Name:            in.Name,
		Description:     in.Description,
		Category:        in.Category,
		Unit:            in.Unit,
		CostPrice:       in.CostPrice,
		SellingPrice:    in.SellingPrice,
		CurrentStock:    in.CurrentStock,
		MinStockLevel:   intOr(in.MinStockLevel, entity.DefaultMinStockLevel),
		MaxStockLevel:   intOr(in.MaxStockLevel, entity.DefaultMaxStockLevel),
		ReorderPoint:    intOr(in.ReorderPoint, entity.DefaultReorderPoint),
		Supplier:        in.Supplier,
		SupplierContact: in.SupplierContact,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	log.Info().Uint("product_id", product.ID).Str("sku", product.SKU).Msg("producto creado")
	return dto.NewProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id uint) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return dto.NewProductResponse(product), nil
}

// Update aplica una actualización parcial dentro de una transacción. No permite modificar SKU ni stock.
func (uc *ProductUseCase) Update(ctx context.Context, id uint, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if (in.CostPrice != nil && in.CostPrice.IsNegative()) || (in.SellingPrice != nil && in.SellingPrice.IsNegative()) {
		return nil, domain.ErrInvalidInput
	}
	var product *entity.Product
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository) error {
		p, err := productRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrProductNotFound
		}
		applyProductPatch(p, in)
		p.UpdatedAt = time.Now()
		if err := productRepo.Update(ctx, p); err != nil {
			return err
		}
		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.NewProductResponse(product), nil
}

// List lista productos con filtros y paginación, ordenados por id.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ProductFilterRequest) (*dto.ProductListResponse, error) {
	in.DefaultPage()
	if in.Limit > dto.MaxLimit {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.List(ctx, repository.ProductFilter{
		Category: in.Category,
		IsActive: in.IsActive,
		LowStock: in.LowStock,
		Offset:   in.Skip,
		Limit:    in.Limit,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *dto.NewProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Skip: in.Skip, Limit: in.Limit, Count: len(items)},
	}, nil
}

// Delete marca el producto como inactivo (soft delete). Las líneas de factura que lo referencian no cambian.
func (uc *ProductUseCase) Delete(ctx context.Context, id uint) error {
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository) error {
		p, err := productRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrProductNotFound
		}
		p.IsActive = false
		p.UpdatedAt = time.Now()
		return productRepo.Update(ctx, p)
	})
	if err != nil {
		return err
	}
	log.Info().Uint("product_id", id).Msg("producto desactivado")
	return nil
}

func applyProductPatch(p *entity.Product, in dto.UpdateProductRequest) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Unit != nil {
		p.Unit = *in.Unit
	}
	if in.CostPrice != nil {
		p.CostPrice = *in.CostPrice
	}
	if in.SellingPrice != nil {
		p.SellingPrice = *in.SellingPrice
	}
	if in.MinStockLevel != nil {
		p.MinStockLevel = *in.MinStockLevel
	}
	if in.MaxStockLevel != nil {
		p.MaxStockLevel = *in.MaxStockLevel
	}
	if in.ReorderPoint != nil {
		p.ReorderPoint = *in.ReorderPoint
	}
	if in.Supplier != nil {
		p.Supplier = *in.Supplier
	}
	if in.SupplierContact != nil {
		p.SupplierContact = *in.SupplierContact
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
