package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/aczyrek/warehouse-management-system/internal/domain"
	"github.com/aczyrek/warehouse-management-system/internal/domain/entity"
	"github.com/aczyrek/warehouse-management-system/internal/domain/query"
	"github.com/aczyrek/warehouse-management-system/internal/domain/repository"
	"github.com/aczyrek/warehouse-management-system/internal/infrastructure/sqlbuild"
)

var _ repository.Store = (*RecordRepo)(nil)

const insertRecordSQL = `
	INSERT INTO inventory_items (` + sqlbuild.Columns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING ` + sqlbuild.Columns

// RecordRepo implementación de repository.Store sobre PostgreSQL (pool o tx).
type RecordRepo struct {
	q   Querier
	now func() time.Time
}

// NewRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecordRepository(q Querier) *RecordRepo {
	return &RecordRepo{q: q, now: time.Now}
}

func insertArgs(c *entity.InventoryRecord, id string, at time.Time) []any {
	return []any{
		id, c.SKU, c.Name, c.Description, c.Quantity, c.Location, c.Category,
		c.MinimumStock, string(c.Unit), at, at,
	}
}

// InsertOne persiste un candidato; id y timestamps los asigna el adaptador.
func (r *RecordRepo) InsertOne(ctx context.Context, candidate *entity.InventoryRecord) (*entity.InventoryRecord, error) {
	at := r.now().UTC()
	row := r.q.QueryRow(ctx, insertRecordSQL, insertArgs(candidate, uuid.NewString(), at)...)
	rec, err := scanRecord(row)
	if err != nil {
		return nil, classify("insert record", err)
	}
	return rec, nil
}

// InsertMany inserta el lote dentro de una transacción: todo o nada.
func (r *RecordRepo) InsertMany(ctx context.Context, candidates []*entity.InventoryRecord) (int, error) {
	if len(candidates) == 0 {
		return 0, nil
	}
	tx, err := r.q.Begin(ctx)
	if err != nil {
		return 0, classify("begin import", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	at := r.now().UTC()
	batch := &pgx.Batch{}
	for _, c := range candidates {
		batch.Queue(insertRecordSQL, insertArgs(c, uuid.NewString(), at)...)
	}
	br := tx.SendBatch(ctx, batch)
	for range candidates {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return 0, classify("insert records", err)
		}
	}
	if err := br.Close(); err != nil {
		return 0, classify("insert records", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, classify("commit import", err)
	}
	return len(candidates), nil
}

// UpdateByID aplica el patch. Con ExpectQuantity la escritura es condicional.
func (r *RecordRepo) UpdateByID(ctx context.Context, id string, patch entity.RecordPatch) error {
	b := sqlbuild.New(sqlbuild.Postgres)
	var sets []string
	if patch.Quantity != nil {
		sets = append(sets, "quantity = "+b.Arg(*patch.Quantity))
	}
	if !patch.UpdatedAt.IsZero() {
		sets = append(sets, "updated_at = "+b.Arg(patch.UpdatedAt.UTC()))
	}
	if len(sets) == 0 {
		return fmt.Errorf("update record: %w: patch vacío", domain.ErrInvalidInput)
	}
	sql := "UPDATE inventory_items SET " + strings.Join(sets, ", ") + " WHERE id = " + b.Arg(id)
	if patch.ExpectQuantity != nil {
		sql += " AND quantity = " + b.Arg(*patch.ExpectQuantity)
	}

	cmd, err := r.q.Exec(ctx, sql, b.Args()...)
	if err != nil {
		return classify("update record", err)
	}
	if cmd.RowsAffected() > 0 {
		return nil
	}
	if patch.ExpectQuantity == nil {
		return domain.ErrNotFound
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return domain.ErrStaleWrite
}

// GetByID obtiene un registro o domain.ErrNotFound.
func (r *RecordRepo) GetByID(ctx context.Context, id string) (*entity.InventoryRecord, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	row := r.q.QueryRow(ctx, "SELECT "+sqlbuild.Columns+" FROM inventory_items WHERE id = $1", id)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, classify("get record", err)
	}
	return rec, nil
}

// SelectWhere traduce los predicados con sqlbuild.
func (r *RecordRepo) SelectWhere(ctx context.Context, preds []query.Predicate, order query.Order) ([]*entity.InventoryRecord, error) {
	sql, args, err := sqlbuild.Select(sqlbuild.Postgres, preds, order)
	if err != nil {
		return nil, &domain.StoreError{Op: "select records", Err: err}
	}
	rows, err := r.q.Query(ctx, sql, args...)
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

// CountAll COUNT(*) de inventory_items; sirve además de chequeo de salud.
func (r *RecordRepo) CountAll(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, "SELECT COUNT(*) FROM inventory_items").Scan(&n); err != nil {
		return 0, classify("count records", err)
	}
	return n, nil
}

// ListCategories nombres de categories ordenados.
func (r *RecordRepo) ListCategories(ctx context.Context) ([]string, error) {
	return r.listNames(ctx, "categories")
}

// ListLocations nombres de locations ordenados.
func (r *RecordRepo) ListLocations(ctx context.Context) ([]string, error) {
	return r.listNames(ctx, "locations")
}

func (r *RecordRepo) listNames(ctx context.Context, table string) ([]string, error) {
	rows, err := r.q.Query(ctx, "SELECT name FROM "+table+" ORDER BY name")
	if err != nil {
		return nil, classify("list "+table, err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, classify("list "+table, err)
	}
	return names, nil
}

func scanRecord(row pgx.Row) (*entity.InventoryRecord, error) {
	var (
		rec  entity.InventoryRecord
		unit string
	)
	err := row.Scan(
		&rec.ID, &rec.SKU, &rec.Name, &rec.Description, &rec.Quantity, &rec.Location,
		&rec.Category, &rec.MinimumStock, &unit, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.Unit = entity.Unit(unit)
	return &rec, nil
}
