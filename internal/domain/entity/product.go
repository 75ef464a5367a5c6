package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Valores por defecto de un producto nuevo.
const (
	DefaultUnit          = "unit"
	DefaultMinStockLevel = 5
	DefaultMaxStockLevel = 100
	DefaultReorderPoint  = 10
)

// MaxStockQuantity tope de existencias y de cantidades que mueven stock.
// Cabe en numeric(12,3) y en un int de 32 bits, así las sumas no desbordan.
const MaxStockQuantity = 999_999_999

// Product representa un producto del inventario.
// CurrentStock nunca es negativo; solo lo modifican la facturación y el ajuste manual.
type Product struct {
	ID              uint            `gorm:"primaryKey"`
	SKU             string          `gorm:"size:100;uniqueIndex;not null"`
	Name            string          `gorm:"size:200;not null;index"`
	Description     string          `gorm:"type:text"`
	Category        string          `gorm:"size:100;index"`
	Unit            string          `gorm:"size:50"`
	CostPrice       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	SellingPrice    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CurrentStock    int             `gorm:"not null;check:chk_products_current_stock,current_stock >= 0"`
	MinStockLevel   int             `gorm:"not null"`
	MaxStockLevel   int             `gorm:"not null"`
	ReorderPoint    int             `gorm:"not null"`
	Supplier        string          `gorm:"size:200"`
	SupplierContact string          `gorm:"size:200"`
	IsActive        bool            `gorm:"not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsLowStock indica si el stock está en o por debajo del punto de reorden.
func (p *Product) IsLowStock() bool {
	return p.CurrentStock <= p.ReorderPoint
}

// IsOutOfStock indica si el producto no tiene existencias.
func (p *Product) IsOutOfStock() bool {
	return p.CurrentStock == 0
}

// StockValue devuelve current_stock × cost_price.
func (p *Product) StockValue() decimal.Decimal {
	return p.CostPrice.Mul(decimal.NewFromInt(int64(p.CurrentStock)))
}

// SuggestedOrderQuantity devuelve max_stock - current_stock.
func (p *Product) SuggestedOrderQuantity() int {
	return p.MaxStockLevel - p.CurrentStock
}
