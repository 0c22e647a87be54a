package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/aczyrek/warehouse-management-system/internal/application/dto"
	"github.com/aczyrek/warehouse-management-system/internal/domain"
)

// writeError traduce la categoría del error a código HTTP y cuerpo dto.ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	body := dto.ErrorResponse{Message: domain.UserMessage(err)}

	switch domain.KindOf(err) {
	case domain.KindValidation:
		status, code = fiber.StatusBadRequest, "VALIDATION"
		var valErr *domain.ValidationError
		if errors.As(err, &valErr) {
			body.Field = valErr.Field
			body.Row = valErr.Row
		}
	case domain.KindInvalidInput:
		status, code = fiber.StatusBadRequest, "INVALID_INPUT"
	case domain.KindDuplicateKey:
		status, code = fiber.StatusConflict, "DUPLICATE"
		var dupErr *domain.DuplicateKeyError
		if errors.As(err, &dupErr) {
			body.Field = dupErr.Field
		}
	case domain.KindNotFound:
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case domain.KindNoData:
		status, code = fiber.StatusNotFound, "NO_DATA"
	case domain.KindConnectivity:
		status, code = fiber.StatusServiceUnavailable, "STORE_UNAVAILABLE"
	case domain.KindStore:
		status, code = fiber.StatusBadGateway, "STORE_REJECTED"
	}
	body.Code = code
	return c.Status(status).JSON(body)
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
