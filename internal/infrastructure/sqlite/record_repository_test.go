package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aczyrek/warehouse-management-system/internal/domain"
	"github.com/aczyrek/warehouse-management-system/internal/domain/entity"
	"github.com/aczyrek/warehouse-management-system/internal/domain/query"
	"github.com/aczyrek/warehouse-management-system/internal/infrastructure/sqlite"
	"github.com/aczyrek/warehouse-management-system/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func newRepo(t *testing.T) *sqlite.RecordRepo {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "wms.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.Migrate(ctx, db, logger.Nop()))
	return sqlite.NewRecordRepository(db)
}

func candidate(sku, name string, qty, min int, category string) *entity.InventoryRecord {
	c := entity.NewCandidate(sku, name)
	c.Quantity = qty
	c.MinimumStock = min
	c.Category = category
	return c
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestInsertOne_YGetByID(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	rec, err := repo.InsertOne(ctx, candidate("X1", "Tornillo", 10, 2, "Ferretería"))
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "X1", got.SKU)
	assert.Equal(t, 10, got.Quantity)
	assert.Equal(t, entity.UnitPieces, got.Unit)
	assert.True(t, rec.CreatedAt.Equal(got.CreatedAt))

	_, err = repo.GetByID(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInsertOne_SkuDuplicado(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	_, err := repo.InsertOne(ctx, candidate("X1", "Tornillo", 1, 1, ""))
	require.NoError(t, err)

	_, err = repo.InsertOne(ctx, candidate("X1", "Otro", 1, 1, ""))
	assert.Equal(t, domain.KindDuplicateKey, domain.KindOf(err))
}

func TestInsertMany_TodoONada(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	_, err := repo.InsertOne(ctx, candidate("B", "Existente", 1, 1, ""))
	require.NoError(t, err)

	n, err := repo.InsertMany(ctx, []*entity.InventoryRecord{
		candidate("A", "Nuevo", 1, 1, ""),
		candidate("B", "Choca", 1, 1, ""),
	})
	assert.Equal(t, 0, n)
	assert.Equal(t, domain.KindDuplicateKey, domain.KindOf(err))

	total, err := repo.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, total, "el lote fallido no deja registros parciales")

	n, err = repo.InsertMany(ctx, []*entity.InventoryRecord{
		candidate("A", "Nuevo", 1, 1, ""),
		candidate("C", "Otro", 1, 1, ""),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCantidadNegativaRechazadaPorElStore(t *testing.T) {
	repo := newRepo(t)
	_, err := repo.InsertOne(context.Background(), candidate("NEG", "Negativo", -5, 1, ""))
	assert.Equal(t, domain.KindStore, domain.KindOf(err))
}

func TestUpdateByID_Condicional(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	rec, err := repo.InsertOne(ctx, candidate("X1", "Tornillo", 10, 2, ""))
	require.NoError(t, err)

	qty, expect := 3, 10
	require.NoError(t, repo.UpdateByID(ctx, rec.ID, entity.RecordPatch{Quantity: &qty, ExpectQuantity: &expect, UpdatedAt: rec.CreatedAt.Add(1)}))

	qty = 0
	err = repo.UpdateByID(ctx, rec.ID, entity.RecordPatch{Quantity: &qty, ExpectQuantity: &expect})
	assert.ErrorIs(t, err, domain.ErrStaleWrite)

	err = repo.UpdateByID(ctx, "no-existe", entity.RecordPatch{Quantity: &qty, ExpectQuantity: &expect})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Quantity)
	assert.True(t, got.UpdatedAt.After(got.CreatedAt))
}

func TestSelectWhere_Filtros(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	for _, c := range []*entity.InventoryRecord{
		candidate("BOLT-01", "Tornillo", 5, 5, "Ferretería"),
		candidate("NUT-02", "Tuerca", 4, 5, "Ferretería"),
		candidate("GLUE-03", "Pegamento", 0, 2, "Químicos"),
		candidate("100%_OK", "Etiqueta", 9, 1, ""),
	} {
		_, err := repo.InsertOne(ctx, c)
		require.NoError(t, err)
	}

	skus := func(spec query.FilterSpec) []string {
		recs, err := repo.SelectWhere(ctx, query.BuildQuery(spec), query.NewestFirst)
		require.NoError(t, err)
		var out []string
		for _, r := range recs {
			out = append(out, r.SKU)
		}
		return out
	}

	assert.Equal(t, []string{"100%_OK", "GLUE-03", "NUT-02", "BOLT-01"}, skus(query.DefaultFilter()))
	assert.Equal(t, []string{"BOLT-01"}, skus(query.FilterSpec{Search: "bolt"}))
	assert.Equal(t, []string{"GLUE-03", "NUT-02"}, skus(query.FilterSpec{StockLevel: query.StockLow}))
	assert.Equal(t, []string{"GLUE-03"}, skus(query.FilterSpec{StockLevel: query.StockOut}))
	assert.Equal(t, []string{"NUT-02", "BOLT-01"}, skus(query.FilterSpec{Category: "Ferretería"}))
	assert.Equal(t, []string{"100%_OK"}, skus(query.FilterSpec{Search: "0%_"}), "comodines escapados")
}

func TestLookups(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.AddLookup(ctx, "categories", "Químicos"))
	require.NoError(t, repo.AddLookup(ctx, "categories", "Ferretería"))
	require.NoError(t, repo.AddLookup(ctx, "locations", "A1"))
	assert.Error(t, repo.AddLookup(ctx, "users", "x"))

	cats, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ferretería", "Químicos"}, cats)
	locs, err := repo.ListLocations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"A1"}, locs)
}
