package repository

import (
	"context"

	"github.com/jhoicas/smart-inventory-api/internal/domain/entity"
)

// TransactionFilter filtros y paginación del libro contable.
type TransactionFilter struct {
	Type     string
	Category string
	Offset   int
	Limit    int
}

// TransactionRepository puerto de persistencia del libro contable.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	GetByID(ctx context.Context, id uint) (*entity.Transaction, error)
	List(ctx context.Context, filter TransactionFilter) ([]*entity.Transaction, error)
}
