package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aczyrek/warehouse-management-system/internal/application/dto"
	"github.com/aczyrek/warehouse-management-system/internal/application/usecase"
)

// SettingsHandler validación del formulario de configuración.
type SettingsHandler struct {
	uc *usecase.SettingsUseCase
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *usecase.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// Validate godoc
// @Summary      Validar configuración
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SettingsRequest  true  "Formulario"
// @Success      200   {object}  dto.ValidationErrorsResponse
// @Failure      422   {object}  dto.ValidationErrorsResponse
// @Router       /api/settings/validate [post]
func (h *SettingsHandler) Validate(c *fiber.Ctx) error {
	var in dto.SettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out := h.uc.Validate(in)
	if !out.Valid {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(out)
	}
	return c.JSON(out)
}
