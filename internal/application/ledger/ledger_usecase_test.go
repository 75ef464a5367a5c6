package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smart-inventory-api/internal/application/dto"
	"github.com/jhoicas/smart-inventory-api/internal/application/ledger"
	"github.com/jhoicas/smart-inventory-api/internal/domain"
	"github.com/jhoicas/smart-inventory-api/internal/domain/entity"
	"github.com/jhoicas/smart-inventory-api/internal/infrastructure/memory"
)

func entry(typ, category string, amount int64, date time.Time) dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		Type: typ, Category: category, Amount: decimal.NewFromInt(amount),
		Description: "asiento de prueba", ReferenceID: "INV-2026-000001", TransactionDate: &date,
	}
}

func TestLedger_CreateGeneraTransactionID(t *testing.T) {
	uc := ledger.NewLedgerUseCase(memory.NewTransactionRepository(memory.NewStore()))
	out, err := uc.Create(context.Background(), entry(entity.TransactionTypeIncome, entity.TransactionCategorySales, 44, time.Now()))
	require.NoError(t, err)

	assert.Regexp(t, `^TXN-[0-9A-F]{8}-[0-9A-F]{4}-[0-9A-F]{4}-[0-9A-F]{4}-[0-9A-F]{12}$`, out.TransactionID)
	assert.Equal(t, "INV-2026-000001", out.ReferenceID)

	got, err := uc.GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	assert.Equal(t, out.TransactionID, got.TransactionID)
}

func TestLedger_Validaciones(t *testing.T) {
	uc := ledger.NewLedgerUseCase(memory.NewTransactionRepository(memory.NewStore()))
	now := time.Now()
	cases := map[string]dto.CreateTransactionRequest{
		"tipo":        entry("loan", entity.TransactionCategoryOther, 1, now),
		"categoría":   entry(entity.TransactionTypeExpense, "travel", 1, now),
		"monto":       entry(entity.TransactionTypeExpense, entity.TransactionCategoryRent, 0, now),
		"descripción": {Type: entity.TransactionTypeExpense, Category: entity.TransactionCategoryRent, Amount: decimal.NewFromInt(1)},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	_, err := uc.GetByID(context.Background(), 9)
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestLedger_ListFiltraYOrdenaPorFecha(t *testing.T) {
	uc := ledger.NewLedgerUseCase(memory.NewTransactionRepository(memory.NewStore()))
	ctx := context.Background()
	base := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	_, err := uc.Create(ctx, entry(entity.TransactionTypeExpense, entity.TransactionCategoryRent, 900, base))
	require.NoError(t, err)
	_, err = uc.Create(ctx, entry(entity.TransactionTypeIncome, entity.TransactionCategorySales, 44, base.Add(24*time.Hour)))
	require.NoError(t, err)
	_, err = uc.Create(ctx, entry(entity.TransactionTypeExpense, entity.TransactionCategorySalary, 500, base.Add(48*time.Hour)))
	require.NoError(t, err)

	list, err := uc.List(ctx, dto.TransactionFilterRequest{Type: entity.TransactionTypeExpense})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, entity.TransactionCategorySalary, list.Items[0].Category)
	assert.Equal(t, entity.TransactionCategoryRent, list.Items[1].Category)

	_, err = uc.List(ctx, dto.TransactionFilterRequest{Type: "loan"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
