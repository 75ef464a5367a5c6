package entity

import "github.com/shopspring/decimal"

// InvoiceItem representa una línea de detalle de una factura.
// ProductID es una referencia débil: borrar el producto no borra la línea.
type InvoiceItem struct {
	ID          uint            `gorm:"primaryKey"`
	InvoiceID   uint            `gorm:"not null;index"`
	ProductID   *uint           `gorm:"index"`
	Product     *Product        `gorm:"foreignKey:ProductID;constraint:OnDelete:SET NULL"`
	Description string          `gorm:"size:500;not null"`
	Quantity    decimal.Decimal `gorm:"type:numeric(12,3);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TotalPrice  decimal.Decimal `gorm:"type:numeric(17,5);not null"`
}
