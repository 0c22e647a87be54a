package repository

import (
	"context"

	"github.com/aczyrek/warehouse-management-system/internal/domain/entity"
	"github.com/aczyrek/warehouse-management-system/internal/domain/query"
)

// RecordRepository puerto de persistencia de inventory_items.
// Cada llamada es independiente; el único atomismo es el de una sola llamada.
// Errores: *domain.DuplicateKeyError, *domain.ConnectivityError, *domain.StoreError,
// domain.ErrNotFound y domain.ErrStaleWrite.
type RecordRepository interface {
	// InsertOne persiste el candidato; el store asigna id y timestamps.
	InsertOne(ctx context.Context, candidate *entity.InventoryRecord) (*entity.InventoryRecord, error)
	// InsertMany inserta el lote completo o nada. Devuelve la cantidad insertada.
	InsertMany(ctx context.Context, candidates []*entity.InventoryRecord) (int, error)
	UpdateByID(ctx context.Context, id string, patch entity.RecordPatch) error
	GetByID(ctx context.Context, id string) (*entity.InventoryRecord, error)
	SelectWhere(ctx context.Context, preds []query.Predicate, order query.Order) ([]*entity.InventoryRecord, error)
	CountAll(ctx context.Context) (int, error)
}

// LookupRepository tablas de referencia categories y locations.
type LookupRepository interface {
	ListCategories(ctx context.Context) ([]string, error)
	ListLocations(ctx context.Context) ([]string, error)
}

// Store agrupa ambos puertos; lo implementa cada backend.
type Store interface {
	RecordRepository
	LookupRepository
}
