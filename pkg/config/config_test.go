package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aczyrek/warehouse-management-system/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("STORE_BACKEND", "memory")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.BackendMemory, cfg.Store.Backend)
	assert.Equal(t, 3, cfg.Store.RetryCount)
	assert.Equal(t, time.Second, cfg.Store.RetryWait)
	assert.False(t, cfg.Exchange.StrictImport)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Setenv("STORE_BACKEND", "SQLite")
	t.Setenv("STORE_RETRY_WAIT_MS", "250")
	t.Setenv("EXCHANGE_STRICT_IMPORT", "true")
	t.Setenv("HTTP_PORT", "9090")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, 250*time.Millisecond, cfg.Store.RetryWait)
	assert.True(t, cfg.Exchange.StrictImport)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoad_RestRequiereURLyClave(t *testing.T) {
	t.Setenv("STORE_BACKEND", "rest")
	_, err := config.Load()
	assert.Error(t, err)

	t.Setenv("STORE_REST_URL", "http://localhost:3000")
	t.Setenv("STORE_REST_API_KEY", "clave")
	_, err = config.Load()
	assert.NoError(t, err)
}

func TestDSN_EscapaContrasena(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "wms", Password: "p@ss:w/rd", DBName: "inv", SSLMode: "disable"}
	assert.Equal(t, "postgres://wms:p%40ss%3Aw%2Frd@db:5432/inv?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.DSN())
}

func TestLoad_BackendDesconocido(t *testing.T) {
	t.Setenv("STORE_BACKEND", "mongo")
	_, err := config.Load()
	assert.Error(t, err)
}
