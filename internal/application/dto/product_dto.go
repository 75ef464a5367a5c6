package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/smart-inventory-api/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto.
// Los umbrales nil toman los valores por defecto (5, 100, 10).
type CreateProductRequest struct {
	SKU             string          `json:"sku" validate:"required,min=1,max=100"`
	Name            string          `json:"name" validate:"required,min=1,max=200"`
	Description     string          `json:"description"`
	Category        string          `json:"category" validate:"max=100"`
	Unit            string          `json:"unit" validate:"max=50"`
	CostPrice       decimal.Decimal `json:"cost_price" validate:"gte=0"`
	SellingPrice    decimal.Decimal `json:"selling_price" validate:"gte=0"`
	CurrentStock    int             `json:"current_stock" validate:"gte=0,lte=999999999"`
	MinStockLevel   *int            `json:"min_stock_level" validate:"omitempty,gte=0"`
	MaxStockLevel   *int            `json:"max_stock_level" validate:"omitempty,gte=0"`
	ReorderPoint    *int            `json:"reorder_point" validate:"omitempty,gte=0"`
	Supplier        string          `json:"supplier" validate:"max=200"`
	SupplierContact string          `json:"supplier_contact" validate:"max=200"`
}

// UpdateProductRequest entrada para actualizar un producto (sin SKU ni stock).
type UpdateProductRequest struct {
	Name            *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description     *string          `json:"description"`
	Category        *string          `json:"category" validate:"omitempty,max=100"`
	Unit            *string          `json:"unit" validate:"omitempty,max=50"`
	CostPrice       *decimal.Decimal `json:"cost_price" validate:"omitempty,gte=0"`
	SellingPrice    *decimal.Decimal `json:"selling_price" validate:"omitempty,gte=0"`
	MinStockLevel   *int             `json:"min_stock_level" validate:"omitempty,gte=0"`
	MaxStockLevel   *int             `json:"max_stock_level" validate:"omitempty,gte=0"`
	ReorderPoint    *int             `json:"reorder_point" validate:"omitempty,gte=0"`
	Supplier        *string          `json:"supplier" validate:"omitempty,max=200"`
	SupplierContact *string          `json:"supplier_contact" validate:"omitempty,max=200"`
	IsActive        *bool            `json:"is_active"`
}

// ProductFilterRequest filtros de GET /products.
type ProductFilterRequest struct {
	PageRequest
	Category string
	IsActive *bool
	LowStock bool
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID              uint            `json:"id"`
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	Unit            string          `json:"unit"`
	CostPrice       decimal.Decimal `json:"cost_price"`
	SellingPrice    decimal.Decimal `json:"selling_price"`
	CurrentStock    int             `json:"current_stock"`
	MinStockLevel   int             `json:"min_stock_level"`
	MaxStockLevel   int             `json:"max_stock_level"`
	ReorderPoint    int             `json:"reorder_point"`
	Supplier        string          `json:"supplier"`
	SupplierContact string          `json:"supplier_contact"`
	IsActive        bool            `json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// NewProductResponse transforma la entidad en su representación de salida.
func NewProductResponse(p *entity.Product) *ProductResponse {
	return &ProductResponse{
		ID:              p.ID,
		SKU:             p.SKU,
		Name:            p.Name,
		Description:     p.Description,
		Category:        p.Category,
		Unit:            p.Unit,
		CostPrice:       p.CostPrice,
		SellingPrice:    p.SellingPrice,
		CurrentStock:    p.CurrentStock,
		MinStockLevel:   p.MinStockLevel,
		MaxStockLevel:   p.MaxStockLevel,
		ReorderPoint:    p.ReorderPoint,
		Supplier:        p.Supplier,
		SupplierContact: p.SupplierContact,
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
