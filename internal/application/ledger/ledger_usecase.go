// Package ledger gestiona el libro contable. Sus asientos no afectan facturas ni stock.
package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/smart-inventory-api/internal/application/dto"
	"github.com/jhoicas/smart-inventory-api/internal/domain"
	"github.com/jhoicas/smart-inventory-api/internal/domain/entity"
	"github.com/jhoicas/smart-inventory-api/internal/domain/repository"
)

// LedgerUseCase registra y consulta asientos contables.
type LedgerUseCase struct {
	repo repository.TransactionRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(repo repository.TransactionRepository) *LedgerUseCase {
	return &LedgerUseCase{repo: repo}
}

// Create registra un asiento con transaction_id generado (TXN-<uuid>).
func (uc *LedgerUseCase) Create(ctx context.Context, in dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	if !entity.IsValidTransactionType(in.Type) {
		return nil, fmt.Errorf("%w: tipo %q desconocido", domain.ErrInvalidInput, in.Type)
	}
	if !entity.IsValidTransactionCategory(in.Category) {
		return nil, fmt.Errorf("%w: categoría %q desconocida", domain.ErrInvalidInput, in.Category)
	}
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount debe ser mayor que 0", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: description es requerido", domain.ErrInvalidInput)
	}
	now := time.Now()
	date := now
	if in.TransactionDate != nil {
		date = *in.TransactionDate
	}
	tx := &entity.Transaction{
		TransactionID:   "TXN-" + strings.ToUpper(uuid.NewString()),
		Type:            in.Type,
		Category:        in.Category,
		Amount:          in.Amount,
		Description:     in.Description,
		DebitAccount:    in.DebitAccount,
		CreditAccount:   in.CreditAccount,
		ReferenceType:   in.ReferenceType,
		ReferenceID:     in.ReferenceID,
		Notes:           in.Notes,
		Tags:            in.Tags,
		TransactionDate: date,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, tx); err != nil {
		return nil, err
	}
	log.Info().
		Str("transaction_id", tx.TransactionID).
		Str("type", tx.Type).
		Str("category", tx.Category).
		Str("amount", tx.Amount.StringFixed(2)).
		Msg("asiento registrado")
	return dto.NewTransactionResponse(tx), nil
}

// GetByID obtiene un asiento por ID.
func (uc *LedgerUseCase) GetByID(ctx context.Context, id uint) (*dto.TransactionResponse, error) {
	tx, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, domain.ErrTransactionNotFound
	}
	return dto.NewTransactionResponse(tx), nil
}

// List lista asientos filtrando por tipo y categoría, del más reciente al más antiguo.
func (uc *LedgerUseCase) List(ctx context.Context, in dto.TransactionFilterRequest) (*dto.TransactionListResponse, error) {
	in.DefaultPage()
	if in.Limit > dto.MaxLimit {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != "" && !entity.IsValidTransactionType(in.Type) {
		return nil, fmt.Errorf("%w: tipo %q desconocido", domain.ErrInvalidInput, in.Type)
	}
	if in.Category != "" && !entity.IsValidTransactionCategory(in.Category) {
		return nil, fmt.Errorf("%w: categoría %q desconocida", domain.ErrInvalidInput, in.Category)
	}
	list, err := uc.repo.List(ctx, repository.TransactionFilter{
		Type:     in.Type,
		Category: in.Category,
		Offset:   in.Skip,
		Limit:    in.Limit,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *dto.NewTransactionResponse(t))
	}
	return &dto.TransactionListResponse{
		Items: items,
		Page:  dto.PageResponse{Skip: in.Skip, Limit: in.Limit, Count: len(items)},
	}, nil
}
