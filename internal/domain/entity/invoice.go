package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura.
const (
	InvoiceStatusDraft         = "draft"
	InvoiceStatusSent          = "sent"
	InvoiceStatusPaid          = "paid"
	InvoiceStatusPartiallyPaid = "partially_paid"
	InvoiceStatusOverdue       = "overdue"
	InvoiceStatusCancelled     = "cancelled"
)

// InvoiceStatuses lista los estados válidos en orden de declaración.
var InvoiceStatuses = []string{
	InvoiceStatusDraft,
	InvoiceStatusSent,
	InvoiceStatusPaid,
	InvoiceStatusPartiallyPaid,
	InvoiceStatusOverdue,
	InvoiceStatusCancelled,
}

// IsValidInvoiceStatus indica si s es un estado conocido.
func IsValidInvoiceStatus(s string) bool {
	for _, st := range InvoiceStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// Invoice representa la cabecera de una factura.
// Los totales se calculan una sola vez al crearla; PaidAmount solo crece.
type Invoice struct {
	ID              uint            `gorm:"primaryKey"`
	InvoiceNumber   string          `gorm:"size:50;uniqueIndex;not null"`
	CustomerName    string          `gorm:"size:200;not null;index"`
	CustomerEmail   string          `gorm:"size:200"`
	CustomerPhone   string          `gorm:"size:50"`
	CustomerAddress string          `gorm:"type:text"`
	IssueDate       time.Time       `gorm:"not null"`
	DueDate         *time.Time      `gorm:"index"`
	Status          string          `gorm:"size:20;not null;index"`
	Subtotal        decimal.Decimal `gorm:"type:numeric(17,5);not null"`
	TaxRate         decimal.Decimal `gorm:"type:numeric(5,2);not null"`
	TaxAmount       decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	DiscountRate    decimal.Decimal `gorm:"type:numeric(5,2);not null"`
	DiscountAmount  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(17,5);not null"`
	PaidAmount      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Notes           string          `gorm:"type:text"`
	PaymentTerms    string          `gorm:"size:100"`
	Items           []InvoiceItem   `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Balance devuelve total_amount - paid_amount (negativo si hubo sobrepago).
func (i *Invoice) Balance() decimal.Decimal {
	return i.TotalAmount.Sub(i.PaidAmount)
}
