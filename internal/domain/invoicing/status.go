package invoicing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/smart-inventory-api/internal/domain/entity"
)

// StatusAfterPayment deriva el estado a partir de los montos ya actualizados.
//
//	paid >= total     → paid
//	0 < paid < total  → partially_paid
//	paid == 0         → sin cambio
//
// No existe camino de regreso: ningún pago reduce paid_amount.
func StatusAfterPayment(current string, paid, total decimal.Decimal) string {
	switch {
	case paid.GreaterThanOrEqual(total):
		return entity.InvoiceStatusPaid
	case paid.IsPositive():
		return entity.InvoiceStatusPartiallyPaid
	default:
		return current
	}
}

// IsOverdue es un predicado de reporte: due_date < now y estado sent o partially_paid.
// No se persiste ninguna transición a overdue.
func IsOverdue(inv *entity.Invoice, now time.Time) bool {
	if inv.DueDate == nil || !inv.DueDate.Before(now) {
		return false
	}
	return inv.Status == entity.InvoiceStatusSent || inv.Status == entity.InvoiceStatusPartiallyPaid
}

// OverdueStatuses estados que pueden quedar en mora.
var OverdueStatuses = []string{entity.InvoiceStatusSent, entity.InvoiceStatusPartiallyPaid}

// DaysOverdue devuelve los días completos transcurridos desde el vencimiento.
func DaysOverdue(due, now time.Time) int {
	if !due.Before(now) {
		return 0
	}
	return int(now.Sub(due).Hours() / 24)
}
