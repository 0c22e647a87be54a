package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aczyrek/warehouse-management-system/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del dashboard.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve totales, los 3 registros más urgentes y los 3 modificados más recientemente.
// GET /api/dashboard/summary
//
// Stock bajo en el dashboard es cantidad <= mínimo (el filtro "low" del listado usa <).
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
