package rest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aczyrek/warehouse-management-system/internal/domain"
	"github.com/aczyrek/warehouse-management-system/internal/domain/entity"
	"github.com/aczyrek/warehouse-management-system/internal/domain/query"
	"github.com/aczyrek/warehouse-management-system/internal/infrastructure/rest"
	"github.com/aczyrek/warehouse-management-system/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func newRepo(t *testing.T, h http.HandlerFunc) *rest.RecordRepo {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	client := rest.NewClient(rest.Config{
		BaseURL:    srv.URL,
		APIKey:     "test-key",
		RetryCount: 2,
		RetryWait:  time.Millisecond,
		Timeout:    2 * time.Second,
	}, logger.Nop())
	return rest.NewRecordRepository(client)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

const testID = "7d444840-9dc0-11d1-b245-5ffdce74fad2"

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestInsertOne_EnviaCabecerasYDevuelveRepresentacion(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/inventory_items", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))

		var rows []map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&rows))
		require.Len(t, rows, 1)
		assert.Equal(t, "X1", rows[0]["sku"])
		assert.NotEmpty(t, rows[0]["id"])
		writeJSON(w, http.StatusCreated, rows)
	})

	rec, err := repo.InsertOne(context.Background(), entity.NewCandidate("X1", "Tornillo"))
	require.NoError(t, err)
	assert.Equal(t, "X1", rec.SKU)
	assert.NotEmpty(t, rec.ID)
}

func TestInsertOne_Duplicado(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]string{
			"code":    "23505",
			"message": `duplicate key value violates unique constraint "inventory_items_sku_key"`,
		})
	})
	_, err := repo.InsertOne(context.Background(), entity.NewCandidate("X1", "Tornillo"))
	assert.Equal(t, domain.KindDuplicateKey, domain.KindOf(err))
}

func TestReintentosAcotadosYConnectivityError(t *testing.T) {
	var hits atomic.Int32
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"message": "upstream"})
	})
	_, err := repo.CountAll(context.Background())
	assert.Equal(t, domain.KindConnectivity, domain.KindOf(err))
	assert.Equal(t, int32(3), hits.Load(), "1 intento + 2 reintentos")
}

func TestEscriturasNoSeReintentanTras5xx(t *testing.T) {
	var hits atomic.Int32
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"message": "upstream"})
	})

	_, err := repo.InsertOne(context.Background(), entity.NewCandidate("X1", "Tornillo"))
	assert.Equal(t, domain.KindConnectivity, domain.KindOf(err))
	assert.Equal(t, int32(1), hits.Load())

	qty := 3
	err = repo.UpdateByID(context.Background(), testID, entity.RecordPatch{Quantity: &qty, UpdatedAt: time.Now()})
	assert.Equal(t, domain.KindConnectivity, domain.KindOf(err))
	assert.Equal(t, int32(2), hits.Load())
}

func TestEscrituraSeReintentaTras429(t *testing.T) {
	var hits atomic.Int32
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		writeJSON(w, http.StatusCreated, []map[string]any{{"id": testID, "sku": "X1", "name": "Tornillo", "quantity": 1}})
	})

	rec, err := repo.InsertOne(context.Background(), entity.NewCandidate("X1", "Tornillo"))
	require.NoError(t, err)
	assert.Equal(t, "X1", rec.SKU)
	assert.Equal(t, int32(2), hits.Load())
}

func TestReintentoRecuperaTrasFalloTransitorio(t *testing.T) {
	var hits atomic.Int32
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		writeJSON(w, http.StatusOK, []map[string]string{{"name": "Ferretería"}})
	})
	cats, err := repo.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Ferretería"}, cats)
}

func TestErrorCliente_SinReintento(t *testing.T) {
	var hits atomic.Int32
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeJSON(w, http.StatusBadRequest, map[string]string{"code": "PGRST100", "message": "bad filter"})
	})
	_, err := repo.SelectWhere(context.Background(), nil, query.NewestFirst)
	assert.Equal(t, domain.KindStore, domain.KindOf(err))
	assert.Equal(t, int32(1), hits.Load())
}

func TestSelectWhere_TraduceFiltrosYAplicaComparacionLocal(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "(name.ilike.*torn*,sku.ilike.*torn*)", q.Get("or"))
		assert.Equal(t, "eq.Ferretería", q.Get("category"))
		assert.Equal(t, "created_at.desc,id.desc", q.Get("order"))
		assert.Empty(t, q.Get("quantity"), "quantity < minimum_stock no se envía al servidor")
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": "1", "sku": "T-1", "name": "Tornillo", "quantity": 2, "minimum_stock": 5, "category": "Ferretería"},
			{"id": "2", "sku": "T-2", "name": "Tornillo largo", "quantity": 9, "minimum_stock": 5, "category": "Ferretería"},
		})
	})
	spec := query.FilterSpec{Search: "torn", Category: "Ferretería", StockLevel: query.StockLow}
	recs, err := repo.SelectWhere(context.Background(), query.BuildQuery(spec), query.NewestFirst)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "T-1", recs[0].SKU)
}

func TestSelectWhere_CitaTerminosConComas(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, `(name.ilike."*a,b*",sku.ilike."*a,b*")`, r.URL.Query().Get("or"))
		writeJSON(w, http.StatusOK, []any{})
	})
	_, err := repo.SelectWhere(context.Background(), query.BuildQuery(query.FilterSpec{Search: "a,b"}), query.NewestFirst)
	require.NoError(t, err)
}

func TestSelectWhere_BarraInvertidaSoloSeFiltraEnLocal(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.Query().Get("or"))
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": testID, "sku": "R1", "name": `Racor a\b`, "quantity": 1},
			{"id": "7c9e6679-7425-40de-944b-e07fc1f90ae7", "sku": "R2", "name": "Racor ab", "quantity": 1},
		})
	})
	got, err := repo.SelectWhere(context.Background(), query.BuildQuery(query.FilterSpec{Search: `a\b`}), query.NewestFirst)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "R1", got[0].SKU)
}

func TestUpdateByID_PrecondicionYEscrituraObsoleta(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPatch:
			assert.Equal(t, "eq."+testID, r.URL.Query().Get("id"))
			assert.Equal(t, "eq.10", r.URL.Query().Get("quantity"))
			writeJSON(w, http.StatusOK, []any{})
		case http.MethodGet:
			writeJSON(w, http.StatusOK, []map[string]any{{"id": testID, "sku": "X1", "quantity": 3}})
		}
	})
	qty, expect := 3, 10
	err := repo.UpdateByID(context.Background(), testID, entity.RecordPatch{Quantity: &qty, ExpectQuantity: &expect, UpdatedAt: time.Now()})
	assert.ErrorIs(t, err, domain.ErrStaleWrite)
}

func TestGetByID_NoEncontrado(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []any{})
	})
	_, err := repo.GetByID(context.Background(), testID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.GetByID(context.Background(), "no-es-uuid")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCountAll_ContentRange(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		assert.Equal(t, "count=exact", r.Header.Get("Prefer"))
		w.Header().Set("Content-Range", "*/42")
		w.WriteHeader(http.StatusOK)
	})
	n, err := repo.CountAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, n)
}
