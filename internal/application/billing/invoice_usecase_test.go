package billing_test

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smart-inventory-api/internal/application/billing"
	"github.com/jhoicas/smart-inventory-api/internal/application/dto"
	"github.com/jhoicas/smart-inventory-api/internal/application/inventory"
	"github.com/jhoicas/smart-inventory-api/internal/domain"
	"github.com/jhoicas/smart-inventory-api/internal/domain/entity"
	"github.com/jhoicas/smart-inventory-api/internal/domain/invoicing"
	"github.com/jhoicas/smart-inventory-api/internal/domain/repository"
	"github.com/jhoicas/smart-inventory-api/internal/infrastructure/memory"
)

var now = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

type fixture struct {
	store    *memory.Store
	products *memory.ProductRepo
	invoices *memory.InvoiceRepo
	uc       *billing.InvoiceUseCase
}

func newFixture(t *testing.T, src rand.Source) *fixture {
	t.Helper()
	store := memory.NewStore()
	txRunner := memory.NewTxRunner(store)
	numbers := invoicing.NewNumberGenerator("INV", src).WithClock(func() time.Time { return now })
	uc := billing.NewInvoiceUseCase(
		txRunner,
		inventory.NewStockUseCase(txRunner),
		memory.NewInvoiceRepository(store),
		memory.NewReportRepository(store),
		numbers,
	).WithClock(func() time.Time { return now })
	return &fixture{
		store:    store,
		products: memory.NewProductRepository(store),
		invoices: memory.NewInvoiceRepository(store),
		uc:       uc,
	}
}

func (f *fixture) seed(t *testing.T, sku string, stock int) *entity.Product {
	t.Helper()
	p := &entity.Product{
		SKU: sku, Name: "Producto " + sku, Unit: entity.DefaultUnit,
		CostPrice: decimal.NewFromInt(6), SellingPrice: decimal.NewFromInt(10),
		CurrentStock: stock, MinStockLevel: 5, MaxStockLevel: 100, ReorderPoint: 10, IsActive: true,
	}
	require.NoError(t, f.products.Create(context.Background(), p))
	return p
}

func (f *fixture) stockOf(t *testing.T, id uint) int {
	t.Helper()
	p, err := f.products.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.CurrentStock
}

func (f *fixture) invoiceCount(t *testing.T) int {
	t.Helper()
	list, err := f.invoices.List(context.Background(), repository.InvoiceFilter{})
	require.NoError(t, err)
	return len(list)
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func widgetInvoice(productID uint, qty string) dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		CustomerName: "Acme",
		TaxRate:      decimal.NewFromInt(10),
		Items: []dto.InvoiceItemRequest{
			{ProductID: &productID, Description: "Widget", Quantity: dec(qty), UnitPrice: dec("10.00")},
		},
	}
}

// ── Creación ──────────────────────────────────────────────────────────────────

func TestCreateInvoice_EjemploWidget(t *testing.T) {
	f := newFixture(t, rand.NewPCG(1, 2))
	p := f.seed(t, "WID-1", 10)

	inv, err := f.uc.CreateInvoice(context.Background(), widgetInvoice(p.ID, "4"))
	require.NoError(t, err)

	assert.True(t, inv.Subtotal.Equal(decimal.NewFromInt(40)))
	assert.True(t, inv.TaxAmount.Equal(decimal.NewFromInt(4)))
	assert.True(t, inv.TotalAmount.Equal(decimal.NewFromInt(44)))
	assert.True(t, inv.PaidAmount.IsZero())
	assert.Equal(t, entity.InvoiceStatusDraft, inv.Status)
	assert.Regexp(t, `^INV-2026-\d{6}$`, inv.InvoiceNumber)
	assert.Equal(t, now, inv.IssueDate)
	require.Len(t, inv.Items, 1)
	assert.True(t, inv.Items[0].TotalPrice.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, 6, f.stockOf(t, p.ID))
}

func TestCreateInvoice_StockInsuficienteNoDejaRastro(t *testing.T) {
	f := newFixture(t, rand.NewPCG(1, 2))
	p := f.seed(t, "WID-1", 10)

	_, err := f.uc.CreateInvoice(context.Background(), widgetInvoice(p.ID, "20"))

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, p.Name, stockErr.Product)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 10, f.stockOf(t, p.ID))
	assert.Zero(t, f.invoiceCount(t))
}

func TestCreateInvoice_FalloEnSegundaLineaRevierteLaPrimera(t *testing.T) {
	f := newFixture(t, rand.NewPCG(1, 2))
	a := f.seed(t, "A", 10)
	b := f.seed(t, "B", 1)

	req := dto.CreateInvoiceRequest{
		CustomerName: "Acme",
		Items: []dto.InvoiceItemRequest{
			{ProductID: &a.ID, Description: "A", Quantity: dec("3"), UnitPrice: dec("1")},
			{ProductID: &b.ID, Description: "B", Quantity: dec("2"), UnitPrice: dec("1")},
		},
	}
	_, err := f.uc.CreateInvoice(context.Background(), req)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 10, f.stockOf(t, a.ID))
	assert.Equal(t, 1, f.stockOf(t, b.ID))
	assert.Zero(t, f.invoiceCount(t))
}

func TestCreateInvoice_MismoProductoEnVariasLineasSeAcumula(t *testing.T) {
	f := newFixture(t, rand.NewPCG(1, 2))
	p := f.seed(t, "A", 5)

	req := dto.CreateInvoiceRequest{
		CustomerName: "Acme",
		Items: []dto.InvoiceItemRequest{
			{ProductID: &p.ID, Description: "A", Quantity: dec("3"), UnitPrice: dec("1")},
			{ProductID: &p.ID, Description: "A", Quantity: dec("3"), UnitPrice: dec("1")},
		},
	}
	_, err := f.uc.CreateInvoice(context.Background(), req)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, f.stockOf(t, p.ID))
}

func TestCreateInvoice_LineaSinProductoNoTocaStock(t *testing.T) {
	f := newFixture(t, rand.NewPCG(1, 2))
	p := f.seed(t, "A", 5)

	inv, err := f.uc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		CustomerName: "Acme",
		DiscountRate: decimal.NewFromInt(50),
		Items: []dto.InvoiceItemRequest{
			{Description: "Consultoría", Quantity: dec("1.5"), UnitPrice: dec("100")},
			{Description: "Envío", UnitPrice: dec("20")},
		},
	})
	require.NoError(t, err)

	assert.True(t, inv.Subtotal.Equal(decimal.NewFromInt(170)))
	assert.True(t, inv.DiscountAmount.Equal(decimal.NewFromInt(85)))
	assert.True(t, inv.TotalAmount.Equal(decimal.NewFromInt(85)))
	assert.True(t, inv.Items[1].Quantity.Equal(decimal.NewFromInt(1)), "cantidad por defecto 1")
	assert.Equal(t, 5, f.stockOf(t, p.ID))
}

func TestCreateInvoice_SinLineasTotalCero(t *testing.T) {
	f := newFixture(t, rand.NewPCG(1, 2))
	inv, err := f.uc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{CustomerName: "Acme", TaxRate: decimal.NewFromInt(19)})
	require.NoError(t, err)
	assert.True(t, inv.TotalAmount.IsZero())
	assert.Empty(t, inv.Items)
}

func TestCreateInvoice_ProductoInexistente(t *testing.T) {
	f := newFixture(t, rand.NewPCG(1, 2))
	_, err := f.uc.CreateInvoice(context.Background(), widgetInvoice(999, "1"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, f.invoiceCount(t))
}

func TestCreateInvoice_EntradaInvalida(t *testing.T) {
	f := newFixture(t, rand.NewPCG(1, 2))
	p := f.seed(t, "A", 5)
	cases := map[string]dto.CreateInvoiceRequest{
		"cliente vacío": {CustomerName: "  "},
		"tasa fuera de rango": {CustomerName: "Acme", TaxRate: decimal.NewFromInt(101)},
		"cantidad cero": {CustomerName: "Acme", Items: []dto.InvoiceItemRequest{
			{Description: "x", Quantity: dec("0"), UnitPrice: dec("1")},
		}},
		"precio negativo": {CustomerName: "Acme", Items: []dto.InvoiceItemRequest{
			{Description: "x", UnitPrice: dec("-1")},
		}},
		"cantidad fraccionaria con producto": {CustomerName: "Acme", Items: []dto.InvoiceItemRequest{
			{ProductID: &p.ID, Description: "x", Quantity: dec("1.5"), UnitPrice: dec("1")},
		}},
		"cantidad mayor a 64 bits": {CustomerName: "Acme", Items: []dto.InvoiceItemRequest{
			{ProductID: &p.ID, Description: "x", Quantity: dec("18446744073709551619"), UnitPrice: dec("1")},
		}},
		"cantidad sobre el tope": {CustomerName: "Acme", Items: []dto.InvoiceItemRequest{
			{Description: "x", Quantity: dec("1000000000"), UnitPrice: dec("1")},
		}},
		"suma de líneas sobre el tope": {CustomerName: "Acme", Items: []dto.InvoiceItemRequest{
			{ProductID: &p.ID, Description: "x", Quantity: dec("999999999"), UnitPrice: dec("1")},
			{ProductID: &p.ID, Description: "x", Quantity: dec("999999999"), UnitPrice: dec("1")},
		}},
		"precio con milésimas": {CustomerName: "Acme", Items: []dto.InvoiceItemRequest{
			{Description: "x", UnitPrice: dec("0.125")},
		}},
		"cantidad con cuatro decimales": {CustomerName: "Acme", Items: []dto.InvoiceItemRequest{
			{Description: "x", Quantity: dec("1.0005"), UnitPrice: dec("1")},
		}},
		"tasa con tres decimales": {CustomerName: "Acme", TaxRate: decimal.RequireFromString("7.125")},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.uc.CreateInvoice(context.Background(), req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Equal(t, 5, f.stockOf(t, p.ID))
	assert.Zero(t, f.invoiceCount(t))
}

func TestCreateInvoice_LineasConFraccionDeCentavoSumanExacto(t *testing.T) {
	f := newFixture(t, rand.NewPCG(1, 2))
	inv, err := f.uc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		CustomerName: "Acme",
		Items: []dto.InvoiceItemRequest{
			{Description: "Tornillo", Quantity: dec("1.005"), UnitPrice: dec("1")},
			{Description: "Arandela", Quantity: dec("0.004"), UnitPrice: dec("1")},
		},
	})
	require.NoError(t, err)

	require.Len(t, inv.Items, 2)
	assert.True(t, inv.Items[0].TotalPrice.Equal(decimal.RequireFromString("1.005")))
	assert.True(t, inv.Items[1].TotalPrice.Equal(decimal.RequireFromString("0.004")))
	assert.True(t, inv.Subtotal.Equal(decimal.RequireFromString("1.009")), "subtotal=%s", inv.Subtotal)
	assert.True(t, inv.TotalAmount.Equal(inv.Subtotal))

	stored, err := f.uc.GetInvoice(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.True(t, stored.Subtotal.Equal(inv.Subtotal))
}

// fixedSource siempre produce el mismo candidato (sufijo 000000).
type fixedSource uint64

func (s fixedSource) Uint64() uint64 { return uint64(s) }

func TestCreateInvoice_NumeracionAgotadaNoDescuentaStock(t *testing.T) {
	f := newFixture(t, fixedSource(1))
	p := f.seed(t, "A", 10)

	_, err := f.uc.CreateInvoice(context.Background(), widgetInvoice(p.ID, "1"))
	require.NoError(t, err)

	_, err = f.uc.CreateInvoice(context.Background(), widgetInvoice(p.ID, "1"))
	require.ErrorIs(t, err, domain.ErrInvoiceNumberExhausted)
	assert.Equal(t, 9, f.stockOf(t, p.ID))
	assert.Equal(t, 1, f.invoiceCount(t))
}

// ── Pagos ─────────────────────────────────────────────────────────────────────

func TestRecordPayment_Trinquete(t *testing.T) {
	f := newFixture(t, rand.NewPCG(1, 2))
	p := f.seed(t, "WID-1", 10)
	inv, err := f.uc.CreateInvoice(context.Background(), widgetInvoice(p.ID, "4"))
	require.NoError(t, err)

	partial, err := f.uc.RecordPayment(context.Background(), inv.ID, dto.PaymentRequest{Amount: decimal.NewFromInt(10)})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPartiallyPaid, partial.Status)
	assert.True(t, partial.PaidAmount.Equal(decimal.NewFromInt(10)))

	paid, err := f.uc.RecordPayment(context.Background(), inv.ID, dto.PaymentRequest{Amount: decimal.NewFromInt(34), PaymentMethod: "cash"})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, paid.Status)
	assert.True(t, paid.PaidAmount.Equal(decimal.NewFromInt(44)))
}

func TestRecordPayment_SobrepagoQuedaPagada(t *testing.T) {
	f := newFixture(t, rand.NewPCG(1, 2))
	p := f.seed(t, "WID-1", 10)
	inv, err := f.uc.CreateInvoice(context.Background(), widgetInvoice(p.ID, "4"))
	require.NoError(t, err)

	paid, err := f.uc.RecordPayment(context.Background(), inv.ID, dto.PaymentRequest{Amount: decimal.NewFromInt(50)})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, paid.Status)
	assert.True(t, paid.PaidAmount.Equal(decimal.NewFromInt(50)))
}

func TestRecordPayment_Errores(t *testing.T) {
	f := newFixture(t, rand.NewPCG(1, 2))
	_, err := f.uc.RecordPayment(context.Background(), 1, dto.PaymentRequest{Amount: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.RecordPayment(context.Background(), 1, dto.PaymentRequest{Amount: decimal.RequireFromString("0.005")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.RecordPayment(context.Background(), 77, dto.PaymentRequest{Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)
}

// ── Consultas y PATCH ─────────────────────────────────────────────────────────

func TestUpdateInvoice_NoRecalculaEstado(t *testing.T) {
	f := newFixture(t, rand.NewPCG(1, 2))
	p := f.seed(t, "WID-1", 10)
	inv, err := f.uc.CreateInvoice(context.Background(), widgetInvoice(p.ID, "4"))
	require.NoError(t, err)
	_, err = f.uc.RecordPayment(context.Background(), inv.ID, dto.PaymentRequest{Amount: decimal.NewFromInt(44)})
	require.NoError(t, err)

	sent := entity.InvoiceStatusSent
	notes := "reabierta a mano"
	updated, err := f.uc.UpdateInvoice(context.Background(), inv.ID, dto.UpdateInvoiceRequest{Status: &sent, Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusSent, updated.Status)
	assert.True(t, updated.PaidAmount.Equal(decimal.NewFromInt(44)))
	assert.True(t, updated.TotalAmount.Equal(decimal.NewFromInt(44)))
	assert.Equal(t, notes, updated.Notes)
	assert.Len(t, updated.Items, 1)

	name := "Acme Corp"
	renamed, err := f.uc.UpdateInvoice(context.Background(), inv.ID, dto.UpdateInvoiceRequest{CustomerName: &name})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusSent, renamed.Status, "un PATCH sin status conserva el estado")
}

func TestUpdateInvoice_Errores(t *testing.T) {
	f := newFixture(t, rand.NewPCG(1, 2))
	bad := "archived"
	_, err := f.uc.UpdateInvoice(context.Background(), 1, dto.UpdateInvoiceRequest{Status: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.UpdateInvoice(context.Background(), 404, dto.UpdateInvoiceRequest{})
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)
}

func TestListInvoices_Filtros(t *testing.T) {
	f := newFixture(t, rand.NewPCG(1, 2))
	ctx := context.Background()
	_, err := f.uc.CreateInvoice(ctx, dto.CreateInvoiceRequest{CustomerName: "Acme Corp"})
	require.NoError(t, err)
	second, err := f.uc.CreateInvoice(ctx, dto.CreateInvoiceRequest{CustomerName: "Globex"})
	require.NoError(t, err)
	_, err = f.uc.RecordPayment(ctx, second.ID, dto.PaymentRequest{Amount: decimal.NewFromInt(1)})
	require.NoError(t, err)

	list, err := f.uc.ListInvoices(ctx, dto.InvoiceFilterRequest{CustomerName: "ACME"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Acme Corp", list.Items[0].CustomerName)
	assert.Equal(t, dto.DefaultLimit, list.Page.Limit)

	list, err = f.uc.ListInvoices(ctx, dto.InvoiceFilterRequest{Status: entity.InvoiceStatusPaid})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, second.ID, list.Items[0].ID)

	_, err = f.uc.ListInvoices(ctx, dto.InvoiceFilterRequest{Status: "bogus"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.ListInvoices(ctx, dto.InvoiceFilterRequest{PageRequest: dto.PageRequest{Limit: 5000}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetInvoice_NoExiste(t *testing.T) {
	f := newFixture(t, rand.NewPCG(1, 2))
	_, err := f.uc.GetInvoice(context.Background(), 3)
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)
}

// ── Reporte de mora ───────────────────────────────────────────────────────────

func TestOverdueReport(t *testing.T) {
	f := newFixture(t, rand.NewPCG(1, 2))
	ctx := context.Background()
	pastDue := now.Add(-72 * time.Hour)
	futureDue := now.Add(72 * time.Hour)

	overdue, err := f.uc.CreateInvoice(ctx, dto.CreateInvoiceRequest{
		CustomerName: "Acme", DueDate: &pastDue,
		Items: []dto.InvoiceItemRequest{{Description: "x", UnitPrice: dec("100")}},
	})
	require.NoError(t, err)
	_, err = f.uc.RecordPayment(ctx, overdue.ID, dto.PaymentRequest{Amount: decimal.NewFromInt(30)})
	require.NoError(t, err)

	// Borrador vencido: no cuenta.
	_, err = f.uc.CreateInvoice(ctx, dto.CreateInvoiceRequest{CustomerName: "Draft", DueDate: &pastDue,
		Items: []dto.InvoiceItemRequest{{Description: "x", UnitPrice: dec("5")}}})
	require.NoError(t, err)

	// Enviada pero aún no vence.
	notYet, err := f.uc.CreateInvoice(ctx, dto.CreateInvoiceRequest{CustomerName: "Later", DueDate: &futureDue,
		Items: []dto.InvoiceItemRequest{{Description: "x", UnitPrice: dec("5")}}})
	require.NoError(t, err)
	sent := entity.InvoiceStatusSent
	_, err = f.uc.UpdateInvoice(ctx, notYet.ID, dto.UpdateInvoiceRequest{Status: &sent})
	require.NoError(t, err)

	report, err := f.uc.OverdueReport(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, report.TotalOverdueInvoices)
	row := report.OverdueInvoices[0]
	assert.Equal(t, overdue.InvoiceNumber, row.InvoiceNumber)
	assert.Equal(t, 3, row.DaysOverdue)
	assert.True(t, row.AmountDue.Equal(decimal.NewFromInt(70)))
	assert.True(t, report.TotalOverdueAmount.Equal(decimal.NewFromInt(70)))
}
