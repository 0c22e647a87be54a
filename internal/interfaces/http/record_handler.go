package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aczyrek/warehouse-management-system/internal/application/dto"
	"github.com/aczyrek/warehouse-management-system/internal/application/usecase"
	"github.com/aczyrek/warehouse-management-system/internal/domain"
	"github.com/aczyrek/warehouse-management-system/internal/domain/validation"
)

// RecordHandler maneja las peticiones HTTP sobre registros de inventario.
type RecordHandler struct {
	uc *usecase.RecordUseCase
}

// NewRecordHandler construye el handler.
func NewRecordHandler(uc *usecase.RecordUseCase) *RecordHandler {
	return &RecordHandler{uc: uc}
}

// List godoc
// @Summary      Listar registros filtrados
// @Description  Si el almacén no responde se devuelve la última instantánea con stale=true.
// @Tags         records
// @Produce      json
// @Param        search    query  string  false  "Texto en nombre o SKU"
// @Param        category  query  string  false  "Categoría o all"
// @Param        location  query  string  false  "Ubicación o all"
// @Param        stock     query  string  false  "all | low | out"
// @Success      200  {object}  dto.RecordListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/records [get]
func (h *RecordHandler) List(c *fiber.Ctx) error {
	var in dto.ListRecordsRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ListRecords(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear registro
// @Tags         records
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRecordRequest  true  "Datos del registro"
// @Success      201   {object}  dto.RecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/records [post]
func (h *RecordHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRecordRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddRecord(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RemoveStock godoc
// @Summary      Retirar stock
// @Description  El monto se acota a [1, cantidad actual]; la respuesta es el registro releído tras escribir.
// @Tags         records
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del registro"
// @Param        body  body  dto.RemoveStockRequest  true  "Monto a retirar"
// @Success      200   {object}  dto.StockMutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/records/{id}/remove-stock [post]
func (h *RecordHandler) RemoveStock(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.RemoveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Amount == nil {
		return writeError(c, &domain.ValidationError{Field: "amount", Reason: string(validation.ReasonRequired), Message: "Este campo es obligatorio"})
	}
	out, err := h.uc.RemoveStock(c.Context(), id, *in.Amount)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Lookups godoc
// @Summary      Categorías y ubicaciones
// @Tags         records
// @Produce      json
// @Success      200  {object}  dto.LookupsResponse
// @Router       /api/lookups [get]
func (h *RecordHandler) Lookups(c *fiber.Ctx) error {
	out, err := h.uc.Lookups(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
