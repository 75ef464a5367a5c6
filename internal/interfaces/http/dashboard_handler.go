package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/smart-inventory-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetStats devuelve los KPIs de productos, facturas y alertas.
// GET /dashboard/stats
//
// Respuesta: DashboardStatsDTO (products, invoices, alerts).
// monthly_revenue cubre los últimos 30 días; con caché activa el valor puede
// tener hasta DASHBOARD_CACHE_TTL de antigüedad.
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.uc.GetStats(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(stats)
}
