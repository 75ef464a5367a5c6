package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento contable.
const (
	TransactionTypeIncome   = "income"
	TransactionTypeExpense  = "expense"
	TransactionTypeTransfer = "transfer"
)

// Categorías de movimiento contable.
const (
	TransactionCategorySales     = "sales"
	TransactionCategoryPurchase  = "purchase"
	TransactionCategorySalary    = "salary"
	TransactionCategoryRent      = "rent"
	TransactionCategoryUtilities = "utilities"
	TransactionCategoryMarketing = "marketing"
	TransactionCategoryEquipment = "equipment"
	TransactionCategoryOther     = "other"
)

// Transaction es un asiento del libro contable. No está ligado a facturas ni a stock.
type Transaction struct {
	ID              uint            `gorm:"primaryKey"`
	TransactionID   string          `gorm:"size:50;uniqueIndex;not null"`
	Type            string          `gorm:"size:20;not null;index"`
	Category        string          `gorm:"size:20;not null;index"`
	Amount          decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Description     string          `gorm:"size:500;not null"`
	DebitAccount    string          `gorm:"size:100"`
	CreditAccount   string          `gorm:"size:100"`
	ReferenceType   string          `gorm:"size:50"`
	ReferenceID     string          `gorm:"size:100"`
	Notes           string          `gorm:"type:text"`
	Tags            string          `gorm:"size:500"`
	TransactionDate time.Time       `gorm:"not null;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsValidTransactionType indica si t es un tipo conocido.
func IsValidTransactionType(t string) bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense, TransactionTypeTransfer:
		return true
	}
	return false
}

// IsValidTransactionCategory indica si c es una categoría conocida.
func IsValidTransactionCategory(c string) bool {
	switch c {
	case TransactionCategorySales, TransactionCategoryPurchase, TransactionCategorySalary,
		TransactionCategoryRent, TransactionCategoryUtilities, TransactionCategoryMarketing,
		TransactionCategoryEquipment, TransactionCategoryOther:
		return true
	}
	return false
}
