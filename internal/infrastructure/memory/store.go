// Package memory implementa los puertos de persistencia en memoria.
// Se usa en modo desarrollo (DB_DRIVER=memory) y como gateway de las pruebas.
package memory

import (
	"sync"

	"github.com/jhoicas/smart-inventory-api/internal/domain/entity"
)

// Store estado compartido por los repositorios en memoria.
// Las escrituras de una transacción son visibles para lecturas concurrentes antes del commit.
// Las escrituras fuera de transacción esperan a que termine la transacción en curso,
// así un rollback nunca pisa datos ya confirmados.
type Store struct {
	mu           sync.RWMutex
	txMu         sync.Mutex
	products     map[uint]*entity.Product
	invoices     map[uint]*entity.Invoice
	transactions map[uint]*entity.Transaction
	seq          sequences
}

type sequences struct {
	product     uint
	invoice     uint
	item        uint
	transaction uint
}

type snapshot struct {
	products     map[uint]*entity.Product
	invoices     map[uint]*entity.Invoice
	transactions map[uint]*entity.Transaction
	seq          sequences
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		products:     make(map[uint]*entity.Product),
		invoices:     make(map[uint]*entity.Invoice),
		transactions: make(map[uint]*entity.Transaction),
	}
}

// lockWrite toma el lock de escritura. Fuera de una transacción también toma txMu.
func (s *Store) lockWrite(inTx bool) (unlock func()) {
	if inTx {
		s.mu.Lock()
		return s.mu.Unlock
	}
	s.txMu.Lock()
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		s.txMu.Unlock()
	}
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := snapshot{
		products:     make(map[uint]*entity.Product, len(s.products)),
		invoices:     make(map[uint]*entity.Invoice, len(s.invoices)),
		transactions: make(map[uint]*entity.Transaction, len(s.transactions)),
		seq:          s.seq,
	}
	for id, p := range s.products {
		snap.products[id] = cloneProduct(p)
	}
	for id, inv := range s.invoices {
		snap.invoices[id] = cloneInvoice(inv)
	}
	for id, t := range s.transactions {
		snap.transactions[id] = cloneTransaction(t)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = snap.products
	s.invoices = snap.invoices
	s.transactions = snap.transactions
	s.seq = snap.seq
}

// ── copias defensivas ─────────────────────────────────────────────────────────

func cloneProduct(p *entity.Product) *entity.Product {
	c := *p
	return &c
}

func cloneInvoice(inv *entity.Invoice) *entity.Invoice {
	c := *inv
	if inv.DueDate != nil {
		due := *inv.DueDate
		c.DueDate = &due
	}
	c.Items = make([]entity.InvoiceItem, len(inv.Items))
	for i, it := range inv.Items {
		c.Items[i] = it
		c.Items[i].Product = nil
		if it.ProductID != nil {
			id := *it.ProductID
			c.Items[i].ProductID = &id
		}
	}
	return &c
}

func cloneTransaction(t *entity.Transaction) *entity.Transaction {
	c := *t
	return &c
}

func paginate[T any](list []T, offset, limit int) []T {
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
