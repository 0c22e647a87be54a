package rest

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/aczyrek/warehouse-management-system/internal/domain"
	"github.com/aczyrek/warehouse-management-system/internal/domain/entity"
	"github.com/aczyrek/warehouse-management-system/internal/domain/query"
	"github.com/aczyrek/warehouse-management-system/internal/domain/repository"
)

var _ repository.Store = (*RecordRepo)(nil)

const (
	itemsPath      = "/inventory_items"
	categoriesPath = "/categories"
	locationsPath  = "/locations"
)

// recordRow representación JSON de inventory_items.
type recordRow struct {
	ID           string    `json:"id"`
	SKU          string    `json:"sku"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Quantity     int       `json:"quantity"`
	Location     string    `json:"location"`
	Category     string    `json:"category"`
	MinimumStock int       `json:"minimum_stock"`
	Unit         string    `json:"unit"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toRow(r *entity.InventoryRecord) recordRow {
	return recordRow{
		ID: r.ID, SKU: r.SKU, Name: r.Name, Description: r.Description, Quantity: r.Quantity,
		Location: r.Location, Category: r.Category, MinimumStock: r.MinimumStock,
		Unit: string(r.Unit), CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

func (row recordRow) toEntity() *entity.InventoryRecord {
	return &entity.InventoryRecord{
		ID: row.ID, SKU: row.SKU, Name: row.Name, Description: row.Description, Quantity: row.Quantity,
		Location: row.Location, Category: row.Category, MinimumStock: row.MinimumStock,
		Unit: entity.Unit(row.Unit), CreatedAt: row.CreatedAt.UTC(), UpdatedAt: row.UpdatedAt.UTC(),
	}
}

// RecordRepo implementación de repository.Store sobre PostgREST.
type RecordRepo struct {
	http *resty.Client
	now  func() time.Time
}

// NewRecordRepository construye el adaptador sobre un cliente de NewClient.
func NewRecordRepository(client *resty.Client) *RecordRepo {
	return &RecordRepo{http: client, now: time.Now}
}

func (r *RecordRepo) newRow(c *entity.InventoryRecord, at time.Time) recordRow {
	rec := c.Clone()
	rec.ID = uuid.NewString()
	rec.CreatedAt = at
	rec.UpdatedAt = at
	return toRow(rec)
}

// InsertOne POST con return=representation.
func (r *RecordRepo) InsertOne(ctx context.Context, candidate *entity.InventoryRecord) (*entity.InventoryRecord, error) {
	var out []recordRow
	resp, err := r.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetBody([]recordRow{r.newRow(candidate, r.now().UTC())}).
		SetResult(&out).
		Post(itemsPath)
	if err := check("insert record", resp, err); err != nil {
		return nil, err
	}
	if len(out) != 1 {
		return nil, &domain.StoreError{Op: "insert record", Err: fmt.Errorf("respuesta con %d filas", len(out))}
	}
	return out[0].toEntity(), nil
}

// InsertMany un solo POST con el arreglo completo; PostgREST lo ejecuta en una sentencia.
func (r *RecordRepo) InsertMany(ctx context.Context, candidates []*entity.InventoryRecord) (int, error) {
	if len(candidates) == 0 {
		return 0, nil
	}
	at := r.now().UTC()
	rows := make([]recordRow, 0, len(candidates))
	for _, c := range candidates {
		rows = append(rows, r.newRow(c, at))
	}
	resp, err := r.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=minimal").
		SetBody(rows).
		Post(itemsPath)
	if err := check("insert records", resp, err); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// UpdateByID PATCH filtrado por id (y por quantity si hay precondición).
func (r *RecordRepo) UpdateByID(ctx context.Context, id string, patch entity.RecordPatch) error {
	body := map[string]any{}
	if patch.Quantity != nil {
		body["quantity"] = *patch.Quantity
	}
	if !patch.UpdatedAt.IsZero() {
		body["updated_at"] = patch.UpdatedAt.UTC()
	}
	if len(body) == 0 {
		return fmt.Errorf("update record: %w: patch vacío", domain.ErrInvalidInput)
	}
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	params := url.Values{"id": {"eq." + id}}
	if patch.ExpectQuantity != nil {
		params.Set("quantity", "eq."+strconv.Itoa(*patch.ExpectQuantity))
	}

	var out []recordRow
	resp, err := r.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetQueryParamsFromValues(params).
		SetBody(body).
		SetResult(&out).
		Patch(itemsPath)
	if err := check("update record", resp, err); err != nil {
		return err
	}
	if len(out) > 0 {
		return nil
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return domain.ErrStaleWrite
}

// GetByID GET filtrado por id.
func (r *RecordRepo) GetByID(ctx context.Context, id string) (*entity.InventoryRecord, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	var out []recordRow
	resp, err := r.http.R().
		SetContext(ctx).
		SetQueryParam("id", "eq."+id).
		SetQueryParam("select", "*").
		SetResult(&out).
		Get(itemsPath)
	if err := check("get record", resp, err); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, domain.ErrNotFound
	}
	return out[0].toEntity(), nil
}

// SelectWhere delega en el servidor lo que PostgREST puede expresar y luego aplica
// query.Match sobre todo el conjunto, de modo que la semántica es la misma que en
// los demás backends (las comparaciones entre columnas solo se evalúan aquí).
func (r *RecordRepo) SelectWhere(ctx context.Context, preds []query.Predicate, order query.Order) ([]*entity.InventoryRecord, error) {
	params := serverFilters(preds)
	params.Set("select", "*")
	params.Set("order", orderParam(order))

	var out []recordRow
	resp, err := r.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params).
		SetResult(&out).
		Get(itemsPath)
	if err := check("select records", resp, err); err != nil {
		return nil, err
	}
	records := make([]*entity.InventoryRecord, 0, len(out))
	for _, row := range out {
		rec := row.toEntity()
		if query.Match(rec, preds) {
			records = append(records, rec)
		}
	}
	return records, nil
}

// CountAll HEAD con Prefer: count=exact; el total llega en Content-Range.
func (r *RecordRepo) CountAll(ctx context.Context) (int, error) {
	resp, err := r.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "count=exact").
		SetQueryParam("select", "id").
		Head(itemsPath)
	if err := check("count records", resp, err); err != nil {
		return 0, err
	}
	return parseContentRange(resp.Header().Get("Content-Range"))
}

// ListCategories nombres ordenados.
func (r *RecordRepo) ListCategories(ctx context.Context) ([]string, error) {
	return r.listNames(ctx, categoriesPath)
}

// ListLocations nombres ordenados.
func (r *RecordRepo) ListLocations(ctx context.Context) ([]string, error) {
	return r.listNames(ctx, locationsPath)
}

func (r *RecordRepo) listNames(ctx context.Context, path string) ([]string, error) {
	var out []struct {
		Name string `json:"name"`
	}
	resp, err := r.http.R().
		SetContext(ctx).
		SetQueryParam("select", "name").
		SetQueryParam("order", "name.asc").
		SetResult(&out).
		Get(path)
	if err := check("list "+strings.TrimPrefix(path, "/"), resp, err); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(out))
	for _, o := range out {
		names = append(names, o.Name)
	}
	return names, nil
}

// serverFilters traduce los predicados expresables en PostgREST. El resultado es
// siempre un superconjunto de lo pedido.
func serverFilters(preds []query.Predicate) url.Values {
	params := url.Values{}
	orUsed := false
	for _, p := range preds {
		if p.HasFieldComparison() {
			continue
		}
		switch p.Op {
		case query.OpEq, query.OpContains:
			if serverSafe(p) {
				params.Add(string(p.Field), operand(p, false))
			}
		case query.OpAny:
			if orUsed || len(p.Any) == 0 {
				continue
			}
			parts := make([]string, 0, len(p.Any))
			for _, sub := range p.Any {
				if (sub.Op != query.OpEq && sub.Op != query.OpContains) || !serverSafe(sub) {
					parts = nil
					break
				}
				parts = append(parts, string(sub.Field)+"."+operand(sub, true))
			}
			if parts != nil {
				params.Set("or", "("+strings.Join(parts, ",")+")")
				orUsed = true
			}
		}
	}
	return params
}

// serverSafe indica si el filtro puede delegarse sin estrechar el resultado: en ilike la
// barra invertida es carácter de escape, así que esos términos solo se evalúan en local.
func serverSafe(p query.Predicate) bool {
	return p.Op != query.OpContains || !strings.Contains(fmt.Sprint(p.Value), `\`)
}

// operand "eq.valor" o "ilike.*término*"; dentro de or=(...) los valores se citan.
func operand(p query.Predicate, inList bool) string {
	value := fmt.Sprint(p.Value)
	op := "eq"
	if p.Op == query.OpContains {
		op = "ilike"
		value = "*" + value + "*"
	}
	if inList && strings.ContainsAny(value, `,.:()" \`) {
		value = `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(value) + `"`
	}
	return op + "." + value
}

func orderParam(o query.Order) string {
	dir := "asc"
	if o.Desc {
		dir = "desc"
	}
	return fmt.Sprintf("%s.%s,id.%s", o.Field, dir, dir)
}

// parseContentRange "0-24/3573" o "*/0".
func parseContentRange(h string) (int, error) {
	i := strings.LastIndex(h, "/")
	if i < 0 {
		return 0, &domain.StoreError{Op: "count records", Err: fmt.Errorf("Content-Range inválido %q", h)}
	}
	n, err := strconv.Atoi(h[i+1:])
	if err != nil {
		return 0, &domain.StoreError{Op: "count records", Err: fmt.Errorf("Content-Range inválido %q", h)}
	}
	return n, nil
}
