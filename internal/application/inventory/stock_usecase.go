package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/smart-inventory-api/internal/application/dto"
	"github.com/jhoicas/smart-inventory-api/internal/domain"
	"github.com/jhoicas/smart-inventory-api/internal/domain/entity"
	"github.com/jhoicas/smart-inventory-api/internal/domain/repository"
)

// StockUseCase mantiene el contador de stock por producto.
// Toda modificación ocurre dentro de una transacción con la fila bloqueada (SELECT FOR UPDATE).
type StockUseCase struct {
	txRunner TxRunner
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(txRunner TxRunner) *StockUseCase {
	return &StockUseCase{txRunner: txRunner}
}

// AdjustStock aplica un delta con signo: new_stock = current_stock + delta.
// Si el resultado es negativo devuelve *domain.InsufficientStockError y no modifica nada.
func (uc *StockUseCase) AdjustStock(ctx context.Context, productID uint, in dto.StockAdjustmentRequest) (*dto.ProductResponse, error) {
	if in.Quantity == nil {
		return nil, domain.ErrInvalidInput
	}
	delta := *in.Quantity
	if delta < -entity.MaxStockQuantity || delta > entity.MaxStockQuantity {
		return nil, fmt.Errorf("%w: quantity fuera de rango", domain.ErrInvalidInput)
	}

	var product *entity.Product
	var previous int
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository) error {
		p, err := productRepo.GetByIDForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrProductNotFound
		}
		previous = p.CurrentStock
		newStock := p.CurrentStock + delta
		if newStock < 0 {
			return &domain.InsufficientStockError{Product: p.Name, Available: p.CurrentStock, Requested: -delta}
		}
		if newStock > entity.MaxStockQuantity {
			return fmt.Errorf("%w: el stock resultante supera %d", domain.ErrInvalidInput, entity.MaxStockQuantity)
		}
		if err := productRepo.UpdateStock(ctx, p.ID, newStock); err != nil {
			return err
		}
		p.CurrentStock = newStock
		p.UpdatedAt = time.Now()
		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Uint("product_id", product.ID).
		Str("sku", product.SKU).
		Int("previous_stock", previous).
		Int("delta", delta).
		Int("new_stock", product.CurrentStock).
		Str("reason", in.Reason).
		Msg("stock ajustado")

	return dto.NewProductResponse(product), nil
}

// DecrementInTx descuenta quantity del producto usando el repositorio del caller (misma transacción).
// Si retorna error (ej: ErrInsufficientStock), el caller debe hacer rollback.
func (uc *StockUseCase) DecrementInTx(
	ctx context.Context,
	productRepo repository.ProductRepository,
	product *entity.Product,
	quantity int,
) error {
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	if product.CurrentStock < quantity {
		return &domain.InsufficientStockError{Product: product.Name, Available: product.CurrentStock, Requested: quantity}
	}
	newStock := product.CurrentStock - quantity
	if err := productRepo.UpdateStock(ctx, product.ID, newStock); err != nil {
		return err
	}
	product.CurrentStock = newStock
	return nil
}
