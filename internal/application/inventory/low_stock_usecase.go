package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/smart-inventory-api/internal/application/dto"
	"github.com/jhoicas/smart-inventory-api/internal/domain/repository"
)

// LowStockUseCase genera el reporte de productos en o bajo su punto de reorden.
type LowStockUseCase struct {
	reportRepo repository.ReportRepository
}

// NewLowStockUseCase construye el caso de uso.
func NewLowStockUseCase(reportRepo repository.ReportRepository) *LowStockUseCase {
	return &LowStockUseCase{reportRepo: reportRepo}
}

// Report devuelve los productos activos con current_stock <= reorder_point
// y la cantidad sugerida de pedido (max_stock - current_stock).
func (uc *LowStockUseCase) Report(ctx context.Context) (*dto.LowStockReportDTO, error) {
	products, err := uc.reportRepo.LowStockProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("reporte de stock bajo: %w", err)
	}
	items := make([]dto.LowStockItemDTO, 0, len(products))
	for _, p := range products {
		items = append(items, dto.LowStockItemDTO{
			ID:                     p.ID,
			SKU:                    p.SKU,
			Name:                   p.Name,
			CurrentStock:           p.CurrentStock,
			ReorderPoint:           p.ReorderPoint,
			SuggestedOrderQuantity: p.SuggestedOrderQuantity(),
			Supplier:               p.Supplier,
		})
	}
	return &dto.LowStockReportDTO{LowStockProducts: items, TotalProducts: len(items)}, nil
}
