// Package bootstrap arma el grafo de dependencias compartido por la API y la CLI.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/aczyrek/warehouse-management-system/internal/application/analytics"
	"github.com/aczyrek/warehouse-management-system/internal/application/exchange"
	"github.com/aczyrek/warehouse-management-system/internal/application/inventory"
	"github.com/aczyrek/warehouse-management-system/internal/application/usecase"
	"github.com/aczyrek/warehouse-management-system/internal/domain/repository"
	"github.com/aczyrek/warehouse-management-system/internal/infrastructure/memory"
	"github.com/aczyrek/warehouse-management-system/internal/infrastructure/metrics"
	"github.com/aczyrek/warehouse-management-system/internal/infrastructure/pdf"
	"github.com/aczyrek/warehouse-management-system/internal/infrastructure/postgres"
	"github.com/aczyrek/warehouse-management-system/internal/infrastructure/rest"
	"github.com/aczyrek/warehouse-management-system/internal/infrastructure/sqlite"
	"github.com/aczyrek/warehouse-management-system/internal/infrastructure/xlsx"
	"github.com/aczyrek/warehouse-management-system/pkg/config"
	"github.com/aczyrek/warehouse-management-system/pkg/jwt"
	"github.com/aczyrek/warehouse-management-system/pkg/logger"
)

// App dependencias listas para usar.
type App struct {
	Config    *config.Config
	Log       *logger.Logger
	Backend   string
	Store     repository.Store
	Registry  *prometheus.Registry // nil con METRICS_ENABLED=false
	Records   *usecase.RecordUseCase
	Settings  *usecase.SettingsUseCase
	Dashboard *analytics.DashboardUseCase
	Exchange  *exchange.Service

	closers []func()
}

// New abre el store configurado y construye los casos de uso.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	store, closeStore, err := OpenStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	app := &App{Config: cfg, Log: log, Backend: cfg.Store.Backend, closers: []func(){closeStore}}

	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m, err := metrics.NewStoreMetrics(reg, cfg.Store.Backend)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("metrics: %w", err)
		}
		store = metrics.Instrument(store, m)
		app.Registry = reg
	}
	app.Store = store

	app.Records = usecase.NewRecordUseCase(store, inventory.NewStockService(store, log), inventory.NewRecordView(), log)
	app.Settings = usecase.NewSettingsUseCase()
	app.Dashboard = analytics.NewDashboardUseCase(store)
	app.Exchange = exchange.NewService(store, xlsx.NewCodec(), pdf.NewReportRenderer(cfg.App.Name), cfg.Exchange.StrictImport, log)
	return app, nil
}

// Close libera las conexiones del store.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// OpenStore abre el backend de STORE_BACKEND. El sqlite embebido se migra al abrir;
// postgres se migra explícitamente con `wms migrate`.
func OpenStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.Store, func(), error) {
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres: %w", err)
		}
		return postgres.NewRecordRepository(pool), pool.Close, nil

	case config.BackendSQLite:
		db, err := sqlite.Open(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("sqlite: %w", err)
		}
		if err := sqlite.Migrate(ctx, db, log); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("sqlite: %w", err)
		}
		return sqlite.NewRecordRepository(db), func() { _ = db.Close() }, nil

	case config.BackendREST:
		checkAPIKey(cfg.Store.RestAPIKey, log)
		client := rest.NewClient(rest.Config{
			BaseURL:    cfg.Store.RestURL,
			APIKey:     cfg.Store.RestAPIKey,
			RetryCount: cfg.Store.RetryCount,
			RetryWait:  cfg.Store.RetryWait,
			Timeout:    cfg.Store.Timeout,
		}, log)
		return rest.NewRecordRepository(client), func() {}, nil

	case config.BackendMemory:
		log.Warn().Msg("store en memoria: los datos se pierden al reiniciar")
		return memory.New(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("backend de store desconocido %q", cfg.Store.Backend)
}

// Migrate aplica las migraciones pendientes del backend configurado.
func Migrate(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		defer pool.Close()
		return postgres.Migrate(ctx, pool, log)
	case config.BackendSQLite:
		db, err := sqlite.Open(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return fmt.Errorf("sqlite: %w", err)
		}
		defer func() { _ = db.Close() }()
		return sqlite.Migrate(ctx, db, log)
	default:
		log.Info().Str("backend", cfg.Store.Backend).Msg("el backend no tiene migraciones locales")
		return nil
	}
}

// checkAPIKey advierte si la clave del store REST está vencida o no declara rol.
// Las claves que no son JWT se aceptan sin inspección.
func checkAPIKey(key string, log *logger.Logger) {
	info, err := jwt.Inspect(key)
	if err != nil {
		log.Debug().Err(err).Msg("la clave del store no es un JWT, se omite la inspección")
		return
	}
	switch {
	case info.Expired(time.Now()):
		log.Warn().Time("expires_at", info.ExpiresAt).Msg("la clave del store REST está vencida")
	case info.Role == "":
		log.Warn().Msg("la clave del store REST no declara rol")
	default:
		log.Info().Str("role", info.Role).Msg("clave del store REST inspeccionada")
	}
}
