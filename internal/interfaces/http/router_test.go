package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aczyrek/warehouse-management-system/internal/application/dto"
	"github.com/aczyrek/warehouse-management-system/internal/application/exchange"
	"github.com/aczyrek/warehouse-management-system/internal/bootstrap"
	"github.com/aczyrek/warehouse-management-system/internal/infrastructure/xlsx"
	apphttp "github.com/aczyrek/warehouse-management-system/internal/interfaces/http"
	"github.com/aczyrek/warehouse-management-system/pkg/config"
	"github.com/aczyrek/warehouse-management-system/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp arma la API completa sobre el store en memoria.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg := &config.Config{
		App:     config.AppConfig{Name: "wareflow-test"},
		Store:   config.StoreConfig{Backend: config.BackendMemory},
		Metrics: config.MetricsConfig{Enabled: true},
	}
	deps, err := bootstrap.New(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(deps.Close)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AppName:   cfg.App.Name,
		Backend:   deps.Backend,
		RecordUC:  deps.Records,
		SettingUC: deps.Settings,
		Dashboard: deps.Dashboard,
		Exchange:  deps.Exchange,
		Registry:  deps.Registry,
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createRecord(t *testing.T, app *fiber.App, sku string, qty, min float64) dto.RecordResponse {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/records", map[string]any{
		"sku": sku, "name": "Item " + sku, "quantity": qty, "minimum_stock": min, "unit": "pcs",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.RecordResponse](t, resp)
}

func amount(v float64) *float64 { return &v }

// ──────────────────────────────────────────────────────────────────────────────

func TestRecords_CrearYRetirar(t *testing.T) {
	app := buildTestApp(t)
	rec := createRecord(t, app, "X1", 10, 5)

	resp := doJSON(t, app, http.MethodPost, "/api/records/"+rec.ID+"/remove-stock", dto.RemoveStockRequest{Amount: amount(7)})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.StockMutationResponse](t, resp)
	assert.Equal(t, 3, out.Record.Quantity)
	assert.Equal(t, "done", out.Trace[len(out.Trace)-1])

	resp = doJSON(t, app, http.MethodPost, "/api/records/"+rec.ID+"/remove-stock", dto.RemoveStockRequest{Amount: amount(7)})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, decode[dto.StockMutationResponse](t, resp).Record.Quantity)
}

func TestRecords_DuplicadoDevuelve409(t *testing.T) {
	app := buildTestApp(t)
	createRecord(t, app, "X1", 1, 1)

	resp := doJSON(t, app, http.MethodPost, "/api/records", map[string]any{"sku": "X1", "name": "Otro"})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "DUPLICATE", body.Code)
	assert.Equal(t, "sku", body.Field)
}

func TestRecords_ValidacionDevuelve400ConCampo(t *testing.T) {
	app := buildTestApp(t)
	resp := doJSON(t, app, http.MethodPost, "/api/records", map[string]any{"sku": "X1", "name": "W", "quantity": 3.5})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Equal(t, "quantity", body.Field)
}

func TestRecords_RetiroSobreInexistente(t *testing.T) {
	app := buildTestApp(t)
	resp := doJSON(t, app, http.MethodPost, "/api/records/no-existe/remove-stock", dto.RemoveStockRequest{Amount: amount(1)})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRecords_RetiroSinMontoDevuelve400(t *testing.T) {
	app := buildTestApp(t)
	rec := createRecord(t, app, "X1", 10, 5)

	resp := doJSON(t, app, http.MethodPost, "/api/records/"+rec.ID+"/remove-stock", map[string]any{})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Equal(t, "amount", body.Field)

	resp = doJSON(t, app, http.MethodGet, "/api/records", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.RecordListResponse](t, resp)
	require.Len(t, out.Items, 1)
	assert.Equal(t, 10, out.Items[0].Quantity)
}

func TestRecords_FiltroLowEsEstricto(t *testing.T) {
	app := buildTestApp(t)
	createRecord(t, app, "igual", 5, 5)
	createRecord(t, app, "bajo", 4, 5)

	resp := doJSON(t, app, http.MethodGet, "/api/records?stock=low", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.RecordListResponse](t, resp)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "bajo", out.Items[0].SKU)

	resp = doJSON(t, app, http.MethodGet, "/api/dashboard/summary", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, decode[dto.DashboardSummaryDTO](t, resp).LowStockCount)
}

func TestRecords_NivelDeStockInvalido(t *testing.T) {
	app := buildTestApp(t)
	resp := doJSON(t, app, http.MethodGet, "/api/records?stock=mucho", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExchange_ExportVacioDevuelve404(t *testing.T) {
	app := buildTestApp(t)
	resp := doJSON(t, app, http.MethodGet, "/api/exchange/export", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NO_DATA", decode[dto.ErrorResponse](t, resp).Code)
}

func TestExchange_ImportarYExportar(t *testing.T) {
	app := buildTestApp(t)
	data, err := xlsx.NewCodec().Encode(exchange.Table{
		Header: []string{"sku", "name", "quantity", "minimum_stock"},
		Rows:   [][]any{{"A-1", "Tornillo", 10, 2}, {"A-2", "Tuerca", 1, 5}},
	})
	require.NoError(t, err)

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", "inventario.xlsx")
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/exchange/import", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, decode[dto.ImportResultDTO](t, resp).Imported)

	resp = doJSON(t, app, http.MethodGet, "/api/exchange/export", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "inventory_export_")
	assert.Equal(t, xlsx.NewCodec().ContentType(), resp.Header.Get("Content-Type"))
}

func TestReports_PDFYTipoInvalido(t *testing.T) {
	app := buildTestApp(t)
	createRecord(t, app, "X1", 1, 5)

	resp := doJSON(t, app, http.MethodGet, "/api/reports/low-stock?format=pdf", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	pdf, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	resp = doJSON(t, app, http.MethodGet, "/api/reports/ventas", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/reports/inventory?format=csv", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReports_Summary(t *testing.T) {
	app := buildTestApp(t)
	createRecord(t, app, "X1", 1, 5)

	resp := doJSON(t, app, http.MethodGet, "/api/reports/summary", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.ReportSummaryDTO](t, resp)
	assert.Equal(t, 1, out.TotalItems)
	require.Len(t, out.Categories, 1)
	assert.Equal(t, "Uncategorized", out.Categories[0].Name)
}

func TestSettings_Validate(t *testing.T) {
	app := buildTestApp(t)
	resp := doJSON(t, app, http.MethodPost, "/api/settings/validate", map[string]any{
		"profile":  map[string]string{"first_name": "A", "last_name": "Pérez"},
		"security": map[string]string{"session_timeout": "30", "password_expiry": "90"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	out := decode[dto.ValidationErrorsResponse](t, resp)
	assert.False(t, out.Valid)
	assert.Equal(t, "profile.first_name", out.Errors[0].Field)
}

func TestHealthYMetrics(t *testing.T) {
	app := buildTestApp(t)
	createRecord(t, app, "X1", 1, 1)

	resp := doJSON(t, app, http.MethodGet, "/health/store", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	h := decode[dto.StoreHealthResponse](t, resp)
	assert.Equal(t, 1, h.Records)
	assert.Equal(t, "memory", h.Backend)

	resp = doJSON(t, app, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	text, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(text), "wms_store_operations_total"))
}
