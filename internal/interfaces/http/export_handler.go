package http

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/smart-inventory-api/internal/application/export"
)

// ExportHandler descargas de reportes xlsx.
type ExportHandler struct {
	uc *export.ExportUseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *export.ExportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// Products godoc
// @Summary      Exportar productos a Excel
// @Tags         export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /export/products [get]
func (h *ExportHandler) Products(c *fiber.Ctx) error {
	path, err := h.uc.ExportProducts(c.UserContext())
	return h.download(c, path, err)
}

// Invoices godoc
// @Summary      Exportar facturas a Excel
// @Tags         export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        status  query  string  false  "Filtrar por estado"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /export/invoices [get]
func (h *ExportHandler) Invoices(c *fiber.Ctx) error {
	path, err := h.uc.ExportInvoices(c.UserContext(), c.Query("status"))
	return h.download(c, path, err)
}

// InventoryReport godoc
// @Summary      Exportar reporte de inventario a Excel
// @Tags         export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /export/inventory-report [get]
func (h *ExportHandler) InventoryReport(c *fiber.Ctx) error {
	path, err := h.uc.ExportInventoryReport(c.UserContext())
	return h.download(c, path, err)
}

func (h *ExportHandler) download(c *fiber.Ctx, path string, err error) error {
	if err != nil {
		return writeError(c, err)
	}
	if err := c.Download(path, filepath.Base(path)); err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, export.ContentType)
	return nil
}
