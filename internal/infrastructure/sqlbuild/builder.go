// Package sqlbuild traduce el vocabulario de query.Predicate a SQL parametrizado.
// Lo comparten los adaptadores postgres y sqlite; solo cambian placeholders y LIKE.
package sqlbuild

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aczyrek/warehouse-management-system/internal/domain/query"
)

// Table tabla de registros de inventario.
const Table = "inventory_items"

// Columns orden de columnas usado en SELECT y en el Scan de los adaptadores.
const Columns = "id, sku, name, description, quantity, location, category, minimum_stock, unit, created_at, updated_at"

// Dialect diferencias entre motores.
type Dialect struct {
	Name        string
	Placeholder func(n int) string
	Like        string // operador de subcadena sin distinguir mayúsculas
}

var (
	Postgres = Dialect{
		Name:        "postgres",
		Placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
		Like:        "ILIKE",
	}
	// SQLite: LIKE ya es insensible a mayúsculas para ASCII.
	SQLite = Dialect{
		Name:        "sqlite",
		Placeholder: func(int) string { return "?" },
		Like:        "LIKE",
	}
)

var columns = map[query.Field]string{
	query.FieldID:           "id",
	query.FieldSKU:          "sku",
	query.FieldName:         "name",
	query.FieldDescription:  "description",
	query.FieldQuantity:     "quantity",
	query.FieldLocation:     "location",
	query.FieldCategory:     "category",
	query.FieldMinimumStock: "minimum_stock",
	query.FieldUnit:         "unit",
	query.FieldCreatedAt:    "created_at",
	query.FieldUpdatedAt:    "updated_at",
}

// Column nombre de columna validado contra la lista blanca.
func Column(f query.Field) (string, error) {
	c, ok := columns[f]
	if !ok {
		return "", fmt.Errorf("sqlbuild: campo desconocido %q", f)
	}
	return c, nil
}

// Builder acumula argumentos posicionales mientras se arma la sentencia.
type Builder struct {
	d    Dialect
	args []any
}

// New crea un builder para el dialecto.
func New(d Dialect) *Builder { return &Builder{d: d} }

// Arg registra un argumento y devuelve su placeholder.
func (b *Builder) Arg(v any) string {
	b.args = append(b.args, v)
	return b.d.Placeholder(len(b.args))
}

// Args argumentos en orden.
func (b *Builder) Args() []any { return b.args }

// Where cláusula WHERE (con el prefijo) o "" si no hay predicados.
func (b *Builder) Where(preds []query.Predicate) (string, error) {
	if len(preds) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(preds))
	for _, p := range preds {
		s, err := b.predicate(p)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return " WHERE " + strings.Join(parts, " AND "), nil
}

func (b *Builder) predicate(p query.Predicate) (string, error) {
	switch p.Op {
	case query.OpEq:
		col, err := Column(p.Field)
		if err != nil {
			return "", err
		}
		return col + " = " + b.Arg(p.Value), nil
	case query.OpContains:
		col, err := Column(p.Field)
		if err != nil {
			return "", err
		}
		term, _ := p.Value.(string)
		return fmt.Sprintf(`%s %s %s ESCAPE '\'`, col, b.d.Like, b.Arg("%"+escapeLike(term)+"%")), nil
	case query.OpLessThanField:
		col, err := Column(p.Field)
		if err != nil {
			return "", err
		}
		ref, err := Column(p.Ref)
		if err != nil {
			return "", err
		}
		return col + " < " + ref, nil
	case query.OpAny:
		if len(p.Any) == 0 {
			return "FALSE", nil
		}
		parts := make([]string, 0, len(p.Any))
		for _, sub := range p.Any {
			s, err := b.predicate(sub)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return "(" + strings.Join(parts, " OR ") + ")", nil
	}
	return "", fmt.Errorf("sqlbuild: operador desconocido %q", p.Op)
}

// OrderBy cláusula ORDER BY con desempate por id para un orden total.
func OrderBy(o query.Order) (string, error) {
	col, err := Column(o.Field)
	if err != nil {
		return "", err
	}
	dir := "ASC"
	if o.Desc {
		dir = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s, id %s", col, dir, dir), nil
}

// Select sentencia completa de SelectWhere.
func Select(d Dialect, preds []query.Predicate, order query.Order) (string, []any, error) {
	b := New(d)
	where, err := b.Where(preds)
	if err != nil {
		return "", nil, err
	}
	orderBy, err := OrderBy(order)
	if err != nil {
		return "", nil, err
	}
	return "SELECT " + Columns + " FROM " + Table + where + orderBy, b.Args(), nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
