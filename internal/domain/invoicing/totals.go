// Package invoicing contiene las reglas puras del ciclo de vida de una factura:
// totales, numeración, transición de estado por pago y predicado de mora.
package invoicing

import (
	"github.com/shopspring/decimal"
)

const moneyPlaces = 2

// Escalas máximas aceptadas en la entrada; coinciden con las columnas numeric de Postgres.
const (
	PriceScale    int32 = 2
	QuantityScale int32 = 3
	RateScale     int32 = 2
)

var hundred = decimal.NewFromInt(100)

// Totals agrupa los montos derivados de una factura.
type Totals struct {
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal
}

// LineTotal devuelve quantity × unitPrice exacto, sin redondear.
// Con las escalas de entrada validadas el resultado tiene a lo sumo cinco decimales.
func LineTotal(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice)
}

// ComputeTotals calcula impuesto, descuento y total a partir del subtotal.
// Las tasas son porcentajes en [0,100]. total = subtotal + impuesto - descuento.
func ComputeTotals(subtotal, taxRate, discountRate decimal.Decimal) Totals {
	tax := subtotal.Mul(taxRate).Div(hundred).Round(moneyPlaces)
	discount := subtotal.Mul(discountRate).Div(hundred).Round(moneyPlaces)
	return Totals{
		Subtotal:       subtotal,
		TaxAmount:      tax,
		DiscountAmount: discount,
		TotalAmount:    subtotal.Add(tax).Sub(discount),
	}
}

// FitsScale indica si d no tiene más de places decimales significativos.
func FitsScale(d decimal.Decimal, places int32) bool {
	return d.Equal(d.Truncate(places))
}

// ValidRate indica si rate es un porcentaje en [0,100].
func ValidRate(rate decimal.Decimal) bool {
	return !rate.IsNegative() && rate.LessThanOrEqual(hundred)
}
