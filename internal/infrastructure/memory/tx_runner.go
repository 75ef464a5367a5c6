package memory

import (
	"context"

	"github.com/jhoicas/smart-inventory-api/internal/application/billing"
	"github.com/jhoicas/smart-inventory-api/internal/application/inventory"
	"github.com/jhoicas/smart-inventory-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and billing.BillingTxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ billing.BillingTxRunner = (*TxRunner)(nil)

// TxRunner serializa las transacciones y restaura el estado previo si fn falla.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con el repositorio de productos; cualquier error revierte el almacén.
func (r *TxRunner) Run(ctx context.Context, fn func(productRepo repository.ProductRepository) error) error {
	return r.atomically(ctx, func() error {
		return fn(&ProductRepo{s: r.store, inTx: true})
	})
}

// RunBilling ejecuta fn con repos de productos y facturas en la misma transacción.
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	return r.atomically(ctx, func() error {
		return fn(&ProductRepo{s: r.store, inTx: true}, &InvoiceRepo{s: r.store, inTx: true})
	})
}

func (r *TxRunner) atomically(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.txMu.Lock()
	defer r.store.txMu.Unlock()

	snap := r.store.snapshot()
	if err := fn(); err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}
