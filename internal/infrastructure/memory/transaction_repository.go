package memory

import (
	"context"
	"slices"

	"github.com/jhoicas/smart-inventory-api/internal/domain"
	"github.com/jhoicas/smart-inventory-api/internal/domain/entity"
	"github.com/jhoicas/smart-inventory-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación en memoria del libro contable.
type TransactionRepo struct {
	s    *Store
	inTx bool
}

// NewTransactionRepository construye el repositorio sobre el almacén.
func NewTransactionRepository(s *Store) *TransactionRepo {
	return &TransactionRepo{s: s}
}

func (r *TransactionRepo) Create(_ context.Context, tx *entity.Transaction) error {
	defer r.s.lockWrite(r.inTx)()
	for _, t := range r.s.transactions {
		if t.TransactionID == tx.TransactionID {
			return domain.ErrDuplicate
		}
	}
	r.s.seq.transaction++
	tx.ID = r.s.seq.transaction
	r.s.transactions[tx.ID] = cloneTransaction(tx)
	return nil
}

func (r *TransactionRepo) GetByID(_ context.Context, id uint) (*entity.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.transactions[id]
	if !ok {
		return nil, nil
	}
	return cloneTransaction(t), nil
}

// List ordena por transaction_date descendente y luego id.
func (r *TransactionRepo) List(_ context.Context, filter repository.TransactionFilter) ([]*entity.Transaction, error) {
	r.s.mu.RLock()
	list := make([]*entity.Transaction, 0, len(r.s.transactions))
	for _, t := range r.s.transactions {
		if filter.Type != "" && t.Type != filter.Type {
			continue
		}
		if filter.Category != "" && t.Category != filter.Category {
			continue
		}
		list = append(list, cloneTransaction(t))
	}
	r.s.mu.RUnlock()

	slices.SortFunc(list, func(a, b *entity.Transaction) int {
		if c := b.TransactionDate.Compare(a.TransactionDate); c != 0 {
			return c
		}
		return int(a.ID) - int(b.ID)
	})
	return paginate(list, filter.Offset, filter.Limit), nil
}
