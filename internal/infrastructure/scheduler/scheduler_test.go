package scheduler_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aczyrek/warehouse-management-system/internal/application/exchange"
	"github.com/aczyrek/warehouse-management-system/internal/infrastructure/scheduler"
	"github.com/aczyrek/warehouse-management-system/pkg/logger"
)

type stubGenerator struct {
	typ exchange.ReportType
	err error
}

func (g *stubGenerator) Report(_ context.Context, typ exchange.ReportType, format string) (*exchange.File, error) {
	g.typ = typ
	if g.err != nil {
		return nil, g.err
	}
	return &exchange.File{Name: "low_stock_report_2026-10-19." + format, Data: []byte("xlsx")}, nil
}

func TestRunOnce_GuardaElReporte(t *testing.T) {
	dir := t.TempDir()
	gen := &stubGenerator{}
	s := scheduler.New(gen, "@daily", dir, logger.Nop())

	path, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, exchange.ReportLowStock, gen.typ)
	assert.Equal(t, filepath.Join(dir, "low_stock_report_2026-10-19.xlsx"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "xlsx", string(data))
}

func TestRunOnce_PropagaError(t *testing.T) {
	s := scheduler.New(&stubGenerator{err: errors.New("caído")}, "@daily", t.TempDir(), logger.Nop())
	_, err := s.RunOnce(context.Background())
	assert.Error(t, err)
}

func TestStart_ExpresionInvalida(t *testing.T) {
	s := scheduler.New(&stubGenerator{}, "no es cron", t.TempDir(), logger.Nop())
	assert.Error(t, s.Start())
}

func TestStart_Stop(t *testing.T) {
	s := scheduler.New(&stubGenerator{}, "0 7 * * *", t.TempDir(), logger.Nop())
	require.NoError(t, s.Start())
	s.Stop()
}
