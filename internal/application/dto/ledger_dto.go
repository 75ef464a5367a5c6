package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/smart-inventory-api/internal/domain/entity"
)

// CreateTransactionRequest body para POST /transactions.
// TransactionDate nil usa la fecha actual.
type CreateTransactionRequest struct {
	Type            string          `json:"type" validate:"required,oneof=income expense transfer"`
	Category        string          `json:"category" validate:"required,oneof=sales purchase salary rent utilities marketing equipment other"`
	Amount          decimal.Decimal `json:"amount" validate:"gt=0"`
	Description     string          `json:"description" validate:"required,min=1,max=500"`
	DebitAccount    string          `json:"debit_account" validate:"max=100"`
	CreditAccount   string          `json:"credit_account" validate:"max=100"`
	ReferenceType   string          `json:"reference_type" validate:"max=50"`
	ReferenceID     string          `json:"reference_id" validate:"max=100"`
	Notes           string          `json:"notes"`
	Tags            string          `json:"tags" validate:"max=500"`
	TransactionDate *time.Time      `json:"transaction_date"`
}

// TransactionFilterRequest filtros de GET /transactions.
type TransactionFilterRequest struct {
	PageRequest
	Type     string
	Category string
}

// TransactionResponse salida de un asiento contable.
type TransactionResponse struct {
	ID              uint            `json:"id"`
	TransactionID   string          `json:"transaction_id"`
	Type            string          `json:"type"`
	Category        string          `json:"category"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	DebitAccount    string          `json:"debit_account"`
	CreditAccount   string          `json:"credit_account"`
	ReferenceType   string          `json:"reference_type"`
	ReferenceID     string          `json:"reference_id"`
	Notes           string          `json:"notes"`
	Tags            string          `json:"tags"`
	TransactionDate time.Time       `json:"transaction_date"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TransactionListResponse lista paginada del libro contable.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// NewTransactionResponse transforma la entidad en su representación de salida.
func NewTransactionResponse(t *entity.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:              t.ID,
		TransactionID:   t.TransactionID,
		Type:            t.Type,
		Category:        t.Category,
		Amount:          t.Amount,
		Description:     t.Description,
		DebitAccount:    t.DebitAccount,
		CreditAccount:   t.CreditAccount,
		ReferenceType:   t.ReferenceType,
		ReferenceID:     t.ReferenceID,
		Notes:           t.Notes,
		Tags:            t.Tags,
		TransactionDate: t.TransactionDate,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}
