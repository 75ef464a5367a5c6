package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/smart-inventory-api/internal/domain/entity"
)

// CreateInvoiceRequest body para POST /invoices.
// Items puede ser vacío; la factura queda con total 0.
type CreateInvoiceRequest struct {
	CustomerName    string               `json:"customer_name" validate:"required,min=1,max=200"`
	CustomerEmail   string               `json:"customer_email" validate:"omitempty,email"`
	CustomerPhone   string               `json:"customer_phone" validate:"max=50"`
	CustomerAddress string               `json:"customer_address"`
	DueDate         *time.Time           `json:"due_date"`
	TaxRate         decimal.Decimal      `json:"tax_rate" validate:"gte=0,lte=100"`
	DiscountRate    decimal.Decimal      `json:"discount_rate" validate:"gte=0,lte=100"`
	Notes           string               `json:"notes"`
	PaymentTerms    string               `json:"payment_terms" validate:"max=100"`
	Items           []InvoiceItemRequest `json:"items" validate:"required,dive"`
}

// InvoiceItemRequest línea de factura. Quantity nil equivale a 1.
type InvoiceItemRequest struct {
	ProductID   *uint            `json:"product_id"`
	Description string           `json:"description" validate:"required,min=1,max=500"`
	Quantity    *decimal.Decimal `json:"quantity" validate:"omitempty,gt=0"`
	UnitPrice   *decimal.Decimal `json:"unit_price" validate:"required,gte=0"`
}

// UpdateInvoiceRequest body para PATCH /invoices/{id}. No recalcula totales ni estado.
type UpdateInvoiceRequest struct {
	CustomerName    *string    `json:"customer_name" validate:"omitempty,min=1,max=200"`
	CustomerEmail   *string    `json:"customer_email" validate:"omitempty,email"`
	CustomerPhone   *string    `json:"customer_phone" validate:"omitempty,max=50"`
	CustomerAddress *string    `json:"customer_address"`
	DueDate         *time.Time `json:"due_date"`
	Status          *string    `json:"status" validate:"omitempty,oneof=draft sent paid partially_paid overdue cancelled"`
	Notes           *string    `json:"notes"`
	PaymentTerms    *string    `json:"payment_terms" validate:"omitempty,max=100"`
}

// PaymentRequest body para POST /invoices/{id}/payment.
// Método, fecha y notas se registran en el log pero no se persisten.
type PaymentRequest struct {
	Amount        decimal.Decimal `json:"amount" validate:"gt=0"`
	PaymentMethod string          `json:"payment_method" validate:"max=50"`
	PaymentDate   *time.Time      `json:"payment_date"`
	Notes         string          `json:"notes"`
}

// InvoiceFilterRequest filtros de GET /invoices.
type InvoiceFilterRequest struct {
	PageRequest
	Status       string
	CustomerName string
}

// InvoiceItemResponse salida de una línea.
type InvoiceItemResponse struct {
	ID          uint            `json:"id"`
	ProductID   *uint           `json:"product_id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// InvoiceResponse salida completa de una factura.
type InvoiceResponse struct {
	ID              uint                  `json:"id"`
	InvoiceNumber   string                `json:"invoice_number"`
	CustomerName    string                `json:"customer_name"`
	CustomerEmail   string                `json:"customer_email"`
	CustomerPhone   string                `json:"customer_phone"`
	CustomerAddress string                `json:"customer_address"`
	IssueDate       time.Time             `json:"issue_date"`
	DueDate         *time.Time            `json:"due_date"`
	Status          string                `json:"status"`
	Subtotal        decimal.Decimal       `json:"subtotal"`
	TaxRate         decimal.Decimal       `json:"tax_rate"`
	TaxAmount       decimal.Decimal       `json:"tax_amount"`
	DiscountRate    decimal.Decimal       `json:"discount_rate"`
	DiscountAmount  decimal.Decimal       `json:"discount_amount"`
	TotalAmount     decimal.Decimal       `json:"total_amount"`
	PaidAmount      decimal.Decimal       `json:"paid_amount"`
	Notes           string                `json:"notes"`
	PaymentTerms    string                `json:"payment_terms"`
	Items           []InvoiceItemResponse `json:"items"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// InvoiceListResponse lista paginada de facturas.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// OverdueInvoiceDTO fila del reporte de facturas vencidas.
type OverdueInvoiceDTO struct {
	InvoiceNumber string          `json:"invoice_number"`
	CustomerName  string          `json:"customer_name"`
	DueDate       time.Time       `json:"due_date"`
	DaysOverdue   int             `json:"days_overdue"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	AmountDue     decimal.Decimal `json:"amount_due"`
}

// OverdueReportDTO respuesta de GET /invoices/overdue/report.
type OverdueReportDTO struct {
	OverdueInvoices      []OverdueInvoiceDTO `json:"invoices"`
	TotalOverdueInvoices int                 `json:"total_overdue_invoices"`
	TotalOverdueAmount   decimal.Decimal     `json:"total_overdue_amount"`
}

// NewInvoiceResponse transforma la entidad (con líneas) en su representación de salida.
func NewInvoiceResponse(inv *entity.Invoice) *InvoiceResponse {
	resp := &InvoiceResponse{
		ID:              inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		CustomerName:    inv.CustomerName,
		CustomerEmail:   inv.CustomerEmail,
		CustomerPhone:   inv.CustomerPhone,
		CustomerAddress: inv.CustomerAddress,
		IssueDate:       inv.IssueDate,
		DueDate:         inv.DueDate,
		Status:          inv.Status,
		Subtotal:        inv.Subtotal,
		TaxRate:         inv.TaxRate,
		TaxAmount:       inv.TaxAmount,
		DiscountRate:    inv.DiscountRate,
		DiscountAmount:  inv.DiscountAmount,
		TotalAmount:     inv.TotalAmount,
		PaidAmount:      inv.PaidAmount,
		Notes:           inv.Notes,
		PaymentTerms:    inv.PaymentTerms,
		Items:           make([]InvoiceItemResponse, 0, len(inv.Items)),
		CreatedAt:       inv.CreatedAt,
		UpdatedAt:       inv.UpdatedAt,
	}
	for _, it := range inv.Items {
		resp.Items = append(resp.Items, InvoiceItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  it.TotalPrice,
		})
	}
	return resp
}
