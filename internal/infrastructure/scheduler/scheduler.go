// Package scheduler genera el reporte de stock bajo de forma periódica.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/aczyrek/warehouse-management-system/internal/application/exchange"
	"github.com/aczyrek/warehouse-management-system/pkg/logger"
)

const runTimeout = 2 * time.Minute

// ReportGenerator genera un reporte; lo implementa *exchange.Service.
type ReportGenerator interface {
	Report(ctx context.Context, typ exchange.ReportType, format string) (*exchange.File, error)
}

// Scheduler ejecuta el reporte de stock bajo según una expresión cron estándar (5 campos)
// y lo guarda en un directorio.
type Scheduler struct {
	cron *cron.Cron
	gen  ReportGenerator
	spec string
	dir  string
	log  *logger.Logger
}

// New construye el scheduler; no agenda nada hasta Start.
func New(gen ReportGenerator, spec, dir string, log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		gen:  gen,
		spec: spec,
		dir:  dir,
		log:  log.Component("scheduler"),
	}
}

// Start agenda el reporte y arranca el cron.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.run); err != nil {
		return fmt.Errorf("scheduler: expresión cron %q: %w", s.spec, err)
	}
	s.log.Info().Str("cron", s.spec).Str("dir", s.dir).Msg("reporte de stock bajo agendado")
	s.cron.Start()
	return nil
}

// Stop detiene el cron y espera a que termine la ejecución en curso.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("scheduler detenido")
}

// RunOnce genera el reporte y devuelve la ruta del archivo escrito.
func (s *Scheduler) RunOnce(ctx context.Context) (string, error) {
	f, err := s.gen.Report(ctx, exchange.ReportLowStock, exchange.FormatXLSX)
	if err != nil {
		return "", err
	}
	return f.SaveTo(s.dir)
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	path, err := s.RunOnce(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("no se pudo generar el reporte de stock bajo")
		return
	}
	s.log.Info().Str("path", path).Msg("reporte de stock bajo generado")
}
