package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aczyrek/warehouse-management-system/internal/application/analytics"
	"github.com/aczyrek/warehouse-management-system/internal/application/dto"
	"github.com/aczyrek/warehouse-management-system/internal/application/exchange"
)

// ExchangeHandler importación, exportación y reportes.
type ExchangeHandler struct {
	svc       *exchange.Service
	dashboard *analytics.DashboardUseCase
}

// NewExchangeHandler construye el handler.
func NewExchangeHandler(svc *exchange.Service, dashboard *analytics.DashboardUseCase) *ExchangeHandler {
	return &ExchangeHandler{svc: svc, dashboard: dashboard}
}

// Import godoc
// @Summary      Importar registros desde xlsx
// @Description  Un único lote: un SKU duplicado rechaza el archivo completo.
// @Tags         exchange
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Archivo .xlsx con columnas sku, name, quantity"
// @Success      200   {object}  dto.ImportResultDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/exchange/import [post]
func (h *ExchangeHandler) Import(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "el campo file es requerido"})
	}
	f, err := fh.Open()
	if err != nil {
		return badBody(c)
	}
	defer f.Close()

	n, err := h.svc.Import(c.Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ImportResultDTO{Imported: n, Strict: h.svc.Strict(), File: fh.Filename})
}

// Export godoc
// @Summary      Exportar inventario completo
// @Tags         exchange
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/exchange/export [get]
func (h *ExchangeHandler) Export(c *fiber.Ctx) error {
	f, err := h.svc.Export(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, f)
}

// Report godoc
// @Summary      Generar reporte
// @Tags         reports
// @Param        type    path   string  true   "inventory | low-stock | activity"
// @Param        format  query  string  false  "xlsx | pdf"  default(xlsx)
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/{type} [get]
func (h *ExchangeHandler) Report(c *fiber.Ctx) error {
	typ, err := exchange.ParseReportType(c.Params("type"))
	if err != nil {
		return writeError(c, err)
	}
	f, err := h.svc.Report(c.Context(), typ, c.Query("format"))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, f)
}

// ReportSummary godoc
// @Summary      Resumen de reportes
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.ReportSummaryDTO
// @Router       /api/reports/summary [get]
func (h *ExchangeHandler) ReportSummary(c *fiber.Ctx) error {
	out, err := h.dashboard.GetReportSummary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func sendFile(c *fiber.Ctx, f *exchange.File) error {
	c.Attachment(f.Name)
	c.Set(fiber.HeaderContentType, f.ContentType)
	return c.Send(f.Data)
}
