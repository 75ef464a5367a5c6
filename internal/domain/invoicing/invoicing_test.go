package invoicing_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smart-inventory-api/internal/domain"
	"github.com/jhoicas/smart-inventory-api/internal/domain/entity"
	"github.com/jhoicas/smart-inventory-api/internal/domain/invoicing"
)

// ──────────────────────────────────────────────────────────────────────────────
// Totales
// ──────────────────────────────────────────────────────────────────────────────

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputeTotals_EjemploWID1(t *testing.T) {
	subtotal := invoicing.LineTotal(d("4"), d("10.00"))
	totals := invoicing.ComputeTotals(subtotal, d("10"), decimal.Zero)

	assert.True(t, totals.Subtotal.Equal(d("40")), "subtotal")
	assert.True(t, totals.TaxAmount.Equal(d("4")), "impuesto")
	assert.True(t, totals.DiscountAmount.IsZero(), "descuento")
	assert.True(t, totals.TotalAmount.Equal(d("44")), "total")
}

func TestComputeTotals_TotalEsSubtotalMasImpuestoMenosDescuento(t *testing.T) {
	cases := []struct {
		subtotal, tax, discount string
	}{
		{"0", "0", "0"},
		{"99.99", "19", "5"},
		{"1234.56", "7.5", "12.25"},
		{"0.01", "100", "100"},
	}
	for _, tc := range cases {
		totals := invoicing.ComputeTotals(d(tc.subtotal), d(tc.tax), d(tc.discount))
		want := totals.Subtotal.Add(totals.TaxAmount).Sub(totals.DiscountAmount)
		assert.True(t, totals.TotalAmount.Equal(want), "subtotal=%s tax=%s discount=%s", tc.subtotal, tc.tax, tc.discount)
	}
}

func TestLineTotal_SubtotalEsSumaExacta(t *testing.T) {
	lines := []struct{ quantity, price string }{
		{"1", "1.00"},
		{"1.005", "1"},
		{"0.004", "1"},
		{"2.5", "0.13"},
	}
	subtotal := decimal.Zero
	exact := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(invoicing.LineTotal(d(l.quantity), d(l.price)))
		exact = exact.Add(d(l.quantity).Mul(d(l.price)))
	}
	assert.True(t, subtotal.Equal(exact), "subtotal=%s exacto=%s", subtotal, exact)
	assert.True(t, subtotal.Equal(d("2.334")))
}

func TestFitsScale(t *testing.T) {
	assert.True(t, invoicing.FitsScale(d("0.12"), invoicing.PriceScale))
	assert.True(t, invoicing.FitsScale(d("10.500"), invoicing.PriceScale))
	assert.False(t, invoicing.FitsScale(d("0.125"), invoicing.PriceScale))
	assert.True(t, invoicing.FitsScale(d("1.005"), invoicing.QuantityScale))
	assert.False(t, invoicing.FitsScale(d("1.0005"), invoicing.QuantityScale))
}

func TestComputeTotals_SinLineasDaCero(t *testing.T) {
	totals := invoicing.ComputeTotals(decimal.Zero, d("19"), d("10"))
	assert.True(t, totals.TotalAmount.IsZero())
}

func TestValidRate(t *testing.T) {
	assert.True(t, invoicing.ValidRate(d("0")))
	assert.True(t, invoicing.ValidRate(d("100")))
	assert.False(t, invoicing.ValidRate(d("-0.01")))
	assert.False(t, invoicing.ValidRate(d("100.01")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Estado tras pago
// ──────────────────────────────────────────────────────────────────────────────

func TestStatusAfterPayment(t *testing.T) {
	cases := []struct {
		name    string
		current string
		paid    string
		total   string
		want    string
	}{
		{"pago exacto", entity.InvoiceStatusSent, "44", "44", entity.InvoiceStatusPaid},
		{"sobrepago", entity.InvoiceStatusDraft, "50", "44", entity.InvoiceStatusPaid},
		{"pago parcial", entity.InvoiceStatusSent, "10", "44", entity.InvoiceStatusPartiallyPaid},
		{"sin pago conserva estado", entity.InvoiceStatusSent, "0", "44", entity.InvoiceStatusSent},
		{"total cero queda pagada", entity.InvoiceStatusDraft, "0", "0", entity.InvoiceStatusPaid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := invoicing.StatusAfterPayment(tc.current, d(tc.paid), d(tc.total))
			assert.Equal(t, tc.want, got)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Mora
// ──────────────────────────────────────────────────────────────────────────────

func TestIsOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-72 * time.Hour)
	future := now.Add(24 * time.Hour)

	assert.True(t, invoicing.IsOverdue(&entity.Invoice{Status: entity.InvoiceStatusSent, DueDate: &past}, now))
	assert.True(t, invoicing.IsOverdue(&entity.Invoice{Status: entity.InvoiceStatusPartiallyPaid, DueDate: &past}, now))
	assert.False(t, invoicing.IsOverdue(&entity.Invoice{Status: entity.InvoiceStatusPaid, DueDate: &past}, now))
	assert.False(t, invoicing.IsOverdue(&entity.Invoice{Status: entity.InvoiceStatusDraft, DueDate: &past}, now))
	assert.False(t, invoicing.IsOverdue(&entity.Invoice{Status: entity.InvoiceStatusSent, DueDate: &future}, now))
	assert.False(t, invoicing.IsOverdue(&entity.Invoice{Status: entity.InvoiceStatusSent}, now))
}

func TestDaysOverdue_RedondeaHaciaAbajo(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 3, invoicing.DaysOverdue(now.Add(-80*time.Hour), now))
	assert.Equal(t, 0, invoicing.DaysOverdue(now.Add(-23*time.Hour), now))
	assert.Equal(t, 0, invoicing.DaysOverdue(now.Add(time.Hour), now))
}

// ──────────────────────────────────────────────────────────────────────────────
// Numeración
// ──────────────────────────────────────────────────────────────────────────────

// fixedSource devuelve siempre el mismo valor; con 1 el sufijo es 000000.
type fixedSource uint64

func (s fixedSource) Uint64() uint64 { return uint64(s) }

func fixedClock() time.Time { return time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC) }

func TestNumberGenerator_Formato(t *testing.T) {
	g := invoicing.NewNumberGenerator("INV", rand.NewPCG(1, 2)).WithClock(fixedClock)
	re := regexp.MustCompile(`^INV-2026-\d{6}$`)
	for i := 0; i < 20; i++ {
		assert.Regexp(t, re, g.Candidate())
	}
}

func TestNumberGenerator_MismaSemillaMismaSecuencia(t *testing.T) {
	a := invoicing.NewNumberGenerator("FAC", rand.NewPCG(7, 7)).WithClock(fixedClock)
	b := invoicing.NewNumberGenerator("FAC", rand.NewPCG(7, 7)).WithClock(fixedClock)
	for i := 0; i < 5; i++ {
		assert.Equal(t, a.Candidate(), b.Candidate())
	}
}

func TestNumberGenerator_ReintentaHastaEncontrarLibre(t *testing.T) {
	g := invoicing.NewNumberGenerator("INV", rand.NewPCG(3, 4)).WithClock(fixedClock)
	calls := 0
	number, err := g.Next(context.Background(), func(_ context.Context, _ string) (bool, error) {
		calls++
		return calls < 4, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 4, calls)
	assert.NotEmpty(t, number)
}

func TestNumberGenerator_ColisionPermanenteFallaTrasCien(t *testing.T) {
	g := invoicing.NewNumberGenerator("INV", fixedSource(1)).WithClock(fixedClock)
	assert.Equal(t, "INV-2026-000000", g.Candidate())

	calls := 0
	_, err := g.Next(context.Background(), func(_ context.Context, _ string) (bool, error) {
		calls++
		return true, nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvoiceNumberExhausted)
	assert.Equal(t, invoicing.MaxNumberAttempts, calls)
}

func TestNumberGenerator_PropagaErrorDelAlmacen(t *testing.T) {
	g := invoicing.NewNumberGenerator("", fixedSource(1)).WithClock(fixedClock)
	boom := errors.New("db caída")
	_, err := g.Next(context.Background(), func(_ context.Context, _ string) (bool, error) {
		return false, boom
	})
	assert.ErrorIs(t, err, boom)
}
