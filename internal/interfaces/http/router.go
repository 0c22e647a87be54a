package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aczyrek/warehouse-management-system/internal/application/analytics"
	"github.com/aczyrek/warehouse-management-system/internal/application/dto"
	"github.com/aczyrek/warehouse-management-system/internal/application/exchange"
	"github.com/aczyrek/warehouse-management-system/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName   string
	Backend   string
	RecordUC  *usecase.RecordUseCase
	SettingUC *usecase.SettingsUseCase
	Dashboard *analytics.DashboardUseCase
	Exchange  *exchange.Service
	Registry  *prometheus.Registry // nil = sin /metrics
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	app.Get("/health/store", func(c *fiber.Ctx) error {
		n, err := deps.RecordUC.CountRecords(c.Context())
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(dto.StoreHealthResponse{Status: "ok", Backend: deps.Backend, Records: n})
	})
	if deps.Registry != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")

	// Records
	recordHandler := NewRecordHandler(deps.RecordUC)
	records := api.Group("/records")
	records.Get("/", recordHandler.List)
	records.Post("/", recordHandler.Create)
	records.Post("/:id/remove-stock", recordHandler.RemoveStock)
	api.Get("/lookups", recordHandler.Lookups)

	// Import / export
	exchangeHandler := NewExchangeHandler(deps.Exchange, deps.Dashboard)
	ex := api.Group("/exchange")
	ex.Post("/import", exchangeHandler.Import)
	ex.Get("/export", exchangeHandler.Export)

	// Reports (summary antes de :type)
	reports := api.Group("/reports")
	reports.Get("/summary", exchangeHandler.ReportSummary)
	reports.Get("/:type", exchangeHandler.Report)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.Dashboard)
	api.Get("/dashboard/summary", dashboardHandler.GetSummary)

	// Settings
	settingsHandler := NewSettingsHandler(deps.SettingUC)
	api.Post("/settings/validate", settingsHandler.Validate)
}
