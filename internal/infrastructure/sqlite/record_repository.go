package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aczyrek/warehouse-management-system/internal/domain"
	"github.com/aczyrek/warehouse-management-system/internal/domain/entity"
	"github.com/aczyrek/warehouse-management-system/internal/domain/query"
	"github.com/aczyrek/warehouse-management-system/internal/domain/repository"
	"github.com/aczyrek/warehouse-management-system/internal/infrastructure/sqlbuild"
)

var _ repository.Store = (*RecordRepo)(nil)

// Los timestamps se guardan como nanosegundos Unix (INTEGER) para ordenar sin ambigüedad.
const insertRecordSQL = `INSERT INTO inventory_items (` + sqlbuild.Columns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// RecordRepo implementación de repository.Store sobre SQLite.
type RecordRepo struct {
	db   *sql.DB
	now  func() time.Time
	mu   sync.Mutex
	last time.Time
}

// NewRecordRepository construye el adaptador sobre una base ya migrada.
func NewRecordRepository(db *sql.DB) *RecordRepo {
	return &RecordRepo{db: db, now: time.Now}
}

// tick instante estrictamente posterior a la última escritura, en resolución de nanosegundos.
func (r *RecordRepo) tick() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := r.now().UTC()
	if !t.After(r.last) {
		t = r.last.Add(time.Nanosecond)
	}
	r.last = t
	return t
}

func newRecord(c *entity.InventoryRecord, at time.Time) *entity.InventoryRecord {
	rec := c.Clone()
	rec.ID = uuid.NewString()
	rec.CreatedAt = at
	rec.UpdatedAt = at
	return rec
}

func insertArgs(rec *entity.InventoryRecord) []any {
	return []any{
		rec.ID, rec.SKU, rec.Name, rec.Description, rec.Quantity, rec.Location, rec.Category,
		rec.MinimumStock, string(rec.Unit), rec.CreatedAt.UnixNano(), rec.UpdatedAt.UnixNano(),
	}
}

// InsertOne persiste un candidato.
func (r *RecordRepo) InsertOne(ctx context.Context, candidate *entity.InventoryRecord) (*entity.InventoryRecord, error) {
	rec := newRecord(candidate, r.tick())
	if _, err := r.db.ExecContext(ctx, insertRecordSQL, insertArgs(rec)...); err != nil {
		return nil, classify("insert record", err)
	}
	return rec, nil
}

// InsertMany inserta el lote dentro de una transacción: todo o nada.
func (r *RecordRepo) InsertMany(ctx context.Context, candidates []*entity.InventoryRecord) (int, error) {
	if len(candidates) == 0 {
		return 0, nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, classify("begin import", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, insertRecordSQL)
	if err != nil {
		return 0, classify("prepare import", err)
	}
	defer stmt.Close()

	at := r.tick()
	for _, c := range candidates {
		if _, err := stmt.ExecContext(ctx, insertArgs(newRecord(c, at))...); err != nil {
			return 0, classify("insert records", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, classify("commit import", err)
	}
	return len(candidates), nil
}

// UpdateByID aplica el patch. Con ExpectQuantity la escritura es condicional.
func (r *RecordRepo) UpdateByID(ctx context.Context, id string, patch entity.RecordPatch) error {
	b := sqlbuild.New(sqlbuild.SQLite)
	var sets []string
	if patch.Quantity != nil {
		sets = append(sets, "quantity = "+b.Arg(*patch.Quantity))
	}
	if !patch.UpdatedAt.IsZero() {
		sets = append(sets, "updated_at = "+b.Arg(patch.UpdatedAt.UTC().UnixNano()))
	}
	if len(sets) == 0 {
		return fmt.Errorf("update record: %w: patch vacío", domain.ErrInvalidInput)
	}
	stmt := "UPDATE inventory_items SET " + strings.Join(sets, ", ") + " WHERE id = " + b.Arg(id)
	if patch.ExpectQuantity != nil {
		stmt += " AND quantity = " + b.Arg(*patch.ExpectQuantity)
	}

	res, err := r.db.ExecContext(ctx, stmt, b.Args()...)
	if err != nil {
		return classify("update record", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return classify("update record", err)
	}
	if n > 0 {
		return nil
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	if patch.ExpectQuantity != nil {
		return domain.ErrStaleWrite
	}
	return nil
}

// GetByID obtiene un registro o domain.ErrNotFound.
func (r *RecordRepo) GetByID(ctx context.Context, id string) (*entity.InventoryRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+sqlbuild.Columns+" FROM inventory_items WHERE id = ?", id)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, classify("get record", err)
	}
	return rec, nil
}

// SelectWhere traduce los predicados con sqlbuild.
func (r *RecordRepo) SelectWhere(ctx context.Context, preds []query.Predicate, order query.Order) ([]*entity.InventoryRecord, error) {
	stmt, args, err := sqlbuild.Select(sqlbuild.SQLite, preds, order)
	if err != nil {
		return nil, &domain.StoreError{Op: "select records", Err: err}
	}
	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, classify("select records", err)
	}
	defer rows.Close()

	var out []*entity.InventoryRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, classify("scan record", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("select records", err)
	}
	return out, nil
}

// CountAll total de registros.
func (r *RecordRepo) CountAll(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM inventory_items").Scan(&n); err != nil {
		return 0, classify("count records", err)
	}
	return n, nil
}

// ListCategories nombres ordenados.
func (r *RecordRepo) ListCategories(ctx context.Context) ([]string, error) {
	return r.listNames(ctx, "categories")
}

// ListLocations nombres ordenados.
func (r *RecordRepo) ListLocations(ctx context.Context) ([]string, error) {
	return r.listNames(ctx, "locations")
}

// AddLookup registra una categoría o ubicación (tabla "categories" o "locations").
func (r *RecordRepo) AddLookup(ctx context.Context, table, name string) error {
	if table != "categories" && table != "locations" {
		return fmt.Errorf("%w: tabla %q", domain.ErrInvalidInput, table)
	}
	_, err := r.db.ExecContext(ctx, "INSERT OR IGNORE INTO "+table+" (name) VALUES (?)", name)
	return classify("add "+table, err)
}

func (r *RecordRepo) listNames(ctx context.Context, table string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT name FROM "+table+" ORDER BY name")
	if err != nil {
		return nil, classify("list "+table, err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, classify("list "+table, err)
		}
		names = append(names, name)
	}
	return names, classify("list "+table, rows.Err())
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*entity.InventoryRecord, error) {
	var (
		rec                  entity.InventoryRecord
		unit                 string
		createdAt, updatedAt int64
	)
	err := row.Scan(
		&rec.ID, &rec.SKU, &rec.Name, &rec.Description, &rec.Quantity, &rec.Location,
		&rec.Category, &rec.MinimumStock, &unit, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.Unit = entity.Unit(unit)
	rec.CreatedAt = time.Unix(0, createdAt).UTC()
	rec.UpdatedAt = time.Unix(0, updatedAt).UTC()
	return &rec, nil
}
