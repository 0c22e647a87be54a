package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aczyrek/warehouse-management-system/internal/application/exchange"
	"github.com/aczyrek/warehouse-management-system/internal/infrastructure/xlsx"
	"github.com/aczyrek/warehouse-management-system/pkg/jwt"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCLI_ImportReportYDashboardSobreSQLite(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("STORE_BACKEND", "sqlite")
	t.Setenv("STORE_SQLITE_PATH", filepath.Join(dir, "wms.db"))
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "error")

	data, err := xlsx.NewCodec().Encode(exchange.Table{
		Header: []string{"sku", "name", "quantity", "minimum_stock"},
		Rows:   [][]any{{"A-1", "Tornillo", 1, 5}, {"A-2", "Tuerca", 50, 5}},
	})
	require.NoError(t, err)
	src := filepath.Join(dir, "in.xlsx")
	require.NoError(t, os.WriteFile(src, data, 0o644))

	out, err := run(t, "import", src)
	require.NoError(t, err)
	assert.Contains(t, out, "2 registros importados")

	out, err = run(t, "report", "low-stock", "--out", dir)
	require.NoError(t, err)
	assert.FileExists(t, strings.TrimSpace(out))

	out, err = run(t, "dashboard")
	require.NoError(t, err)
	var summary struct {
		TotalItems    int `json:"total_items"`
		LowStockCount int `json:"low_stock_count"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, 2, summary.TotalItems)
	assert.Equal(t, 1, summary.LowStockCount)
}

func TestCLI_TokenFirmaConElSecreto(t *testing.T) {
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("STORE_REST_JWT_SECRET", "secreto-local")

	out, err := run(t, "token", "--role", "anon")
	require.NoError(t, err)
	role, err := jwt.Verify("secreto-local", strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "anon", role)
}

func TestCLI_ReporteDesconocido(t *testing.T) {
	t.Setenv("STORE_BACKEND", "memory")
	_, err := run(t, "report", "ventas")
	assert.Error(t, err)
}
