package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/smart-inventory-api/internal/application/dto"
	"github.com/jhoicas/smart-inventory-api/internal/application/inventory"
)

// InventoryHandler ajustes de stock y reporte de stock bajo.
type InventoryHandler struct {
	stock    *inventory.StockUseCase
	lowStock *inventory.LowStockUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(stock *inventory.StockUseCase, lowStock *inventory.LowStockUseCase) *InventoryHandler {
	return &InventoryHandler{stock: stock, lowStock: lowStock}
}

// AdjustStock godoc
// @Summary      Ajustar stock (delta con signo)
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path  int                         true  "ID del producto"
// @Param        body  body  dto.StockAdjustmentRequest  true  "quantity positiva suma, negativa resta"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /products/{id}/stock [post]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.StockAdjustmentRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.stock.AdjustStock(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// LowStockReport godoc
// @Summary      Reporte de productos con stock bajo
// @Tags         inventory
// @Produce      json
// @Success      200  {object}  dto.LowStockReportDTO
// @Router       /products/low-stock/report [get]
func (h *InventoryHandler) LowStockReport(c *fiber.Ctx) error {
	out, err := h.lowStock.Report(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
