package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smart-inventory-api/internal/domain"
	"github.com/jhoicas/smart-inventory-api/internal/domain/entity"
	"github.com/jhoicas/smart-inventory-api/internal/domain/repository"
	"github.com/jhoicas/smart-inventory-api/internal/infrastructure/memory"
)

func newProduct(sku string, stock int) *entity.Product {
	return &entity.Product{
		SKU:           sku,
		Name:          "Producto " + sku,
		Unit:          entity.DefaultUnit,
		CostPrice:     decimal.NewFromInt(2),
		SellingPrice:  decimal.NewFromInt(5),
		CurrentStock:  stock,
		MinStockLevel: entity.DefaultMinStockLevel,
		MaxStockLevel: entity.DefaultMaxStockLevel,
		ReorderPoint:  entity.DefaultReorderPoint,
		IsActive:      true,
	}
}

func TestProductRepo_SKUDuplicado(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository(memory.NewStore())

	require.NoError(t, repo.Create(ctx, newProduct("A-1", 3)))
	err := repo.Create(ctx, newProduct("A-1", 3))

	var dup *domain.DuplicateSKUError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "A-1", dup.SKU)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductRepo_DevuelveCopias(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository(memory.NewStore())
	p := newProduct("A-1", 3)
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	got.CurrentStock = 99

	again, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, again.CurrentStock)
}

func TestProductRepo_GetByIDInexistente(t *testing.T) {
	got, err := memory.NewProductRepository(memory.NewStore()).GetByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProductRepo_ListFiltros(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository(memory.NewStore())
	low := newProduct("LOW", 2)
	low.Category = "tools"
	high := newProduct("HIGH", 50)
	high.Category = "tools"
	inactive := newProduct("OFF", 50)
	inactive.IsActive = false
	for _, p := range []*entity.Product{low, high, inactive} {
		require.NoError(t, repo.Create(ctx, p))
	}

	active := true
	list, err := repo.List(ctx, repository.ProductFilter{IsActive: &active})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = repo.List(ctx, repository.ProductFilter{LowStock: true})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "LOW", list[0].SKU)

	list, err = repo.List(ctx, repository.ProductFilter{Category: "tools", Offset: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "HIGH", list[0].SKU)
}

func TestTxRunner_RevierteAnteError(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	products := memory.NewProductRepository(store)
	p := newProduct("A-1", 10)
	require.NoError(t, products.Create(ctx, p))

	boom := errors.New("falla a mitad de camino")
	err := memory.NewTxRunner(store).RunBilling(ctx, func(pr repository.ProductRepository, ir repository.InvoiceRepository) error {
		require.NoError(t, pr.UpdateStock(ctx, p.ID, 4))
		require.NoError(t, ir.Create(ctx, &entity.Invoice{InvoiceNumber: "INV-2026-000001", Status: entity.InvoiceStatusDraft}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.CurrentStock)

	exists, err := memory.NewInvoiceRepository(store).ExistsByNumber(ctx, "INV-2026-000001")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestTxRunner_RollbackConservaEscriturasConcurrentes(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	products := memory.NewProductRepository(store)

	inside := make(chan struct{})
	release := make(chan struct{})
	txDone := make(chan error, 1)
	go func() {
		txDone <- memory.NewTxRunner(store).RunBilling(ctx, func(_ repository.ProductRepository, ir repository.InvoiceRepository) error {
			if err := ir.Create(ctx, &entity.Invoice{InvoiceNumber: "INV-2026-000009", Status: entity.InvoiceStatusDraft}); err != nil {
				return err
			}
			close(inside)
			<-release
			return errors.New("falla tras escribir")
		})
	}()

	<-inside
	p := newProduct("CONC-1", 3)
	createDone := make(chan error, 1)
	go func() { createDone <- products.Create(ctx, p) }()
	close(release)

	require.Error(t, <-txDone)
	require.NoError(t, <-createDone)

	got, err := products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "CONC-1", got.SKU)

	exists, err := memory.NewInvoiceRepository(store).ExistsByNumber(ctx, "INV-2026-000009")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestTxRunner_ConfirmaSinError(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	products := memory.NewProductRepository(store)
	p := newProduct("A-1", 10)
	require.NoError(t, products.Create(ctx, p))

	err := memory.NewTxRunner(store).Run(ctx, func(pr repository.ProductRepository) error {
		return pr.UpdateStock(ctx, p.ID, 7)
	})
	require.NoError(t, err)

	got, err := products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.CurrentStock)
}

func TestInvoiceRepo_ListPorCliente(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewInvoiceRepository(memory.NewStore())
	require.NoError(t, repo.Create(ctx, &entity.Invoice{InvoiceNumber: "A", CustomerName: "Acme Corp", Status: entity.InvoiceStatusDraft,
		Items: []entity.InvoiceItem{{Description: "x", Quantity: decimal.NewFromInt(1)}}}))
	require.NoError(t, repo.Create(ctx, &entity.Invoice{InvoiceNumber: "B", CustomerName: "Globex", Status: entity.InvoiceStatusSent}))

	list, err := repo.List(ctx, repository.InvoiceFilter{CustomerName: "acme"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "A", list[0].InvoiceNumber)
	require.Len(t, list[0].Items, 1)
	assert.Equal(t, list[0].ID, list[0].Items[0].InvoiceID)
	assert.NotZero(t, list[0].Items[0].ID)
}

func TestReportRepo_Estadisticas(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	products := memory.NewProductRepository(store)
	invoices := memory.NewInvoiceRepository(store)
	reports := memory.NewReportRepository(store)
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	past := now.Add(-48 * time.Hour)

	require.NoError(t, products.Create(ctx, newProduct("OUT", 0)))
	require.NoError(t, products.Create(ctx, newProduct("OK", 20)))

	mk := func(number, status string, total, paid int64, created time.Time, due *time.Time) {
		require.NoError(t, invoices.Create(ctx, &entity.Invoice{
			InvoiceNumber: number, Status: status, CreatedAt: created, DueDate: due,
			TotalAmount: decimal.NewFromInt(total), PaidAmount: decimal.NewFromInt(paid),
		}))
	}
	mk("1", entity.InvoiceStatusDraft, 10, 0, now, nil)
	mk("2", entity.InvoiceStatusSent, 100, 0, now, &past)
	mk("3", entity.InvoiceStatusPartiallyPaid, 50, 20, now, nil)
	mk("4", entity.InvoiceStatusPaid, 70, 70, now.Add(-24*time.Hour), nil)
	mk("5", entity.InvoiceStatusPaid, 30, 30, now.Add(-60*24*time.Hour), nil)

	ps, err := reports.ProductStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, ps.TotalProducts)
	assert.Equal(t, 1, ps.LowStock)
	assert.Equal(t, 1, ps.OutOfStock)
	assert.True(t, ps.InventoryValue.Equal(decimal.NewFromInt(40)))

	is, err := reports.InvoiceStats(ctx, now.Add(-30*24*time.Hour), now)
	require.NoError(t, err)
	assert.Equal(t, 5, is.TotalInvoices)
	assert.Equal(t, 2, is.PendingInvoices)
	assert.True(t, is.MonthlyRevenue.Equal(decimal.NewFromInt(70)))
	assert.True(t, is.OutstandingAmount.Equal(decimal.NewFromInt(130)))
	assert.Equal(t, 1, is.OverdueInvoices)

	overdue, err := reports.OverdueInvoices(ctx, now)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, "2", overdue[0].InvoiceNumber)
}
