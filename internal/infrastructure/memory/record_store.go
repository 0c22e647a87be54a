// Package memory implementa el store de inventario en memoria. Se usa con
// STORE_BACKEND=memory y como doble de pruebas de los casos de uso.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aczyrek/warehouse-management-system/internal/domain"
	"github.com/aczyrek/warehouse-management-system/internal/domain/entity"
	"github.com/aczyrek/warehouse-management-system/internal/domain/query"
	"github.com/aczyrek/warehouse-management-system/internal/domain/repository"
)

var _ repository.Store = (*RecordStore)(nil)

// RecordStore store en memoria protegido por mutex. Copia los registros al entrar y al salir.
type RecordStore struct {
	mu         sync.Mutex
	records    []*entity.InventoryRecord // orden de inserción
	bySKU      map[string]string         // sku -> id
	categories []string
	locations  []string
	now        func() time.Time
	last       time.Time
}

// Option configura el store.
type Option func(*RecordStore)

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(s *RecordStore) { s.now = now }
}

// WithLookups carga las tablas de referencia.
func WithLookups(categories, locations []string) Option {
	return func(s *RecordStore) {
		s.categories = append([]string(nil), categories...)
		s.locations = append([]string(nil), locations...)
		sort.Strings(s.categories)
		sort.Strings(s.locations)
	}
}

// New construye un store vacío.
func New(opts ...Option) *RecordStore {
	s := &RecordStore{bySKU: make(map[string]string), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// tick devuelve un instante estrictamente creciente para que el orden por fecha sea total.
func (s *RecordStore) tick() time.Time {
	t := s.now().UTC()
	if !t.After(s.last) {
		t = s.last.Add(time.Microsecond)
	}
	s.last = t
	return t
}

func (s *RecordStore) prepare(c *entity.InventoryRecord, at time.Time) *entity.InventoryRecord {
	rec := c.Clone()
	rec.ID = uuid.NewString()
	rec.CreatedAt = at
	rec.UpdatedAt = at
	return rec
}

// checkRow replica las restricciones del esquema SQL (sku no vacío, cantidades en rango)
// para que un candidato sin validar falle igual que contra sqlite o postgres.
func checkRow(op string, c *entity.InventoryRecord) error {
	switch {
	case c.SKU == "":
		return &domain.StoreError{Op: op, Err: fmt.Errorf("%w: sku vacío", domain.ErrInvalidInput)}
	case c.Quantity < 0 || c.Quantity > entity.MaxQuantity:
		return &domain.StoreError{Op: op, Err: fmt.Errorf("%w: quantity %d fuera de rango", domain.ErrInvalidInput, c.Quantity)}
	case c.MinimumStock < 0 || c.MinimumStock > entity.MaxQuantity:
		return &domain.StoreError{Op: op, Err: fmt.Errorf("%w: minimum_stock %d fuera de rango", domain.ErrInvalidInput, c.MinimumStock)}
	}
	return nil
}

// InsertOne persiste un registro nuevo.
func (s *RecordStore) InsertOne(ctx context.Context, candidate *entity.InventoryRecord) (*entity.InventoryRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, &domain.ConnectivityError{Op: "insert record", Err: err}
	}
	if err := checkRow("insert record", candidate); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.bySKU[candidate.SKU]; taken {
		return nil, &domain.DuplicateKeyError{Field: "sku"}
	}
	rec := s.prepare(candidate, s.tick())
	s.records = append(s.records, rec)
	s.bySKU[rec.SKU] = rec.ID
	return rec.Clone(), nil
}

// InsertMany todo o nada: valida restricciones y unicidad del lote completo antes de insertar.
func (s *RecordStore) InsertMany(ctx context.Context, candidates []*entity.InventoryRecord) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, &domain.ConnectivityError{Op: "insert records", Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		if err := checkRow("insert records", c); err != nil {
			return 0, err
		}
		if _, taken := s.bySKU[c.SKU]; taken {
			return 0, &domain.DuplicateKeyError{Field: "sku"}
		}
		if _, dup := seen[c.SKU]; dup {
			return 0, &domain.DuplicateKeyError{Field: "sku"}
		}
		seen[c.SKU] = struct{}{}
	}
	at := s.tick()
	for _, c := range candidates {
		rec := s.prepare(c, at)
		s.records = append(s.records, rec)
		s.bySKU[rec.SKU] = rec.ID
	}
	return len(candidates), nil
}

// UpdateByID aplica el patch; respeta la precondición ExpectQuantity.
func (s *RecordStore) UpdateByID(ctx context.Context, id string, patch entity.RecordPatch) error {
	if err := ctx.Err(); err != nil {
		return &domain.ConnectivityError{Op: "update record", Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.find(id)
	if rec == nil {
		return domain.ErrNotFound
	}
	if patch.ExpectQuantity != nil && rec.Quantity != *patch.ExpectQuantity {
		return domain.ErrStaleWrite
	}
	if patch.Quantity != nil {
		if *patch.Quantity < 0 {
			return &domain.StoreError{Op: "update record", Err: fmt.Errorf("%w: quantity %d fuera de rango", domain.ErrInvalidInput, *patch.Quantity)}
		}
		rec.Quantity = *patch.Quantity
	}
	if !patch.UpdatedAt.IsZero() {
		rec.UpdatedAt = patch.UpdatedAt.UTC()
	}
	return nil
}

// GetByID devuelve una copia del registro o domain.ErrNotFound.
func (s *RecordStore) GetByID(ctx context.Context, id string) (*entity.InventoryRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, &domain.ConnectivityError{Op: "get record", Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.find(id)
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	return rec.Clone(), nil
}

// SelectWhere filtra con query.Match y ordena de forma estable.
func (s *RecordStore) SelectWhere(ctx context.Context, preds []query.Predicate, order query.Order) ([]*entity.InventoryRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, &domain.ConnectivityError{Op: "select records", Err: err}
	}
	s.mu.Lock()
	out := make([]*entity.InventoryRecord, 0, len(s.records))
	for _, r := range s.records {
		if query.Match(r, preds) {
			out = append(out, r.Clone())
		}
	}
	s.mu.Unlock()
	query.Sort(out, order)
	return out, nil
}

// CountAll total de registros.
func (s *RecordStore) CountAll(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, &domain.ConnectivityError{Op: "count records", Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records), nil
}

// ListCategories nombres ordenados.
func (s *RecordStore) ListCategories(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, &domain.ConnectivityError{Op: "list categories", Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.categories...), nil
}

// ListLocations nombres ordenados.
func (s *RecordStore) ListLocations(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, &domain.ConnectivityError{Op: "list locations", Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.locations...), nil
}

func (s *RecordStore) find(id string) *entity.InventoryRecord {
	for _, r := range s.records {
		if r.ID == id {
			return r
		}
	}
	return nil
}
