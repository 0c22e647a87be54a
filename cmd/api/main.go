package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/aczyrek/warehouse-management-system/internal/bootstrap"
	"github.com/aczyrek/warehouse-management-system/internal/infrastructure/scheduler"
	httpRouter "github.com/aczyrek/warehouse-management-system/internal/interfaces/http"
	"github.com/aczyrek/warehouse-management-system/pkg/config"
	"github.com/aczyrek/warehouse-management-system/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Backend).
		Msg("iniciando aplicación")

	ctx := context.Background()
	deps, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar store")
	}
	defer deps.Close()

	// Reporte de stock bajo programado
	var sched *scheduler.Scheduler
	if cfg.Exchange.ReportCron != "" {
		sched = scheduler.New(deps.Exchange, cfg.Exchange.ReportCron, cfg.Exchange.ReportsDir, log)
		if err := sched.Start(); err != nil {
			log.Fatal().Err(err).Msg("agendar reporte")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    16 * 1024 * 1024, // importaciones xlsx
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs (solo si se generó la especificación)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "WareFlow API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:   cfg.App.Name,
		Backend:   deps.Backend,
		RecordUC:  deps.Records,
		SettingUC: deps.Settings,
		Dashboard: deps.Dashboard,
		Exchange:  deps.Exchange,
		Registry:  deps.Registry,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if sched != nil {
		sched.Stop()
	}

	log.Info().Msg("aplicación detenida")
}
