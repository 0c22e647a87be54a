// Package query define el vocabulario de predicados que entienden todos los adaptadores
// de store y el constructor de filtros del listado de inventario.
package query

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/aczyrek/warehouse-management-system/internal/domain/entity"
)

// Field columna de inventory_items.
type Field string

const (
	FieldID           Field = "id"
	FieldSKU          Field = "sku"
	FieldName         Field = "name"
	FieldDescription  Field = "description"
	FieldQuantity     Field = "quantity"
	FieldLocation     Field = "location"
	FieldCategory     Field = "category"
	FieldMinimumStock Field = "minimum_stock"
	FieldUnit         Field = "unit"
	FieldCreatedAt    Field = "created_at"
	FieldUpdatedAt    Field = "updated_at"
)

// Op operador de un predicado.
type Op string

const (
	OpEq            Op = "eq"       // campo = literal
	OpContains      Op = "contains" // subcadena sin distinguir mayúsculas
	OpLessThanField Op = "lt_field" // campo < otra columna
	OpAny           Op = "or"       // al menos uno de Any
)

// Predicate condición sobre un registro. Una lista de predicados se combina con AND.
type Predicate struct {
	Field Field
	Op    Op
	Value any   // string o int según el campo
	Ref   Field // columna de comparación para OpLessThanField
	Any   []Predicate
}

// Eq campo igual a un literal.
func Eq(f Field, v any) Predicate { return Predicate{Field: f, Op: OpEq, Value: v} }

// Contains subcadena sin distinguir mayúsculas/minúsculas.
func Contains(f Field, term string) Predicate {
	return Predicate{Field: f, Op: OpContains, Value: term}
}

// LessThanField compara dos columnas del mismo registro (f < ref).
func LessThanField(f, ref Field) Predicate {
	return Predicate{Field: f, Op: OpLessThanField, Ref: ref}
}

// Any grupo OR.
func Any(preds ...Predicate) Predicate { return Predicate{Op: OpAny, Any: preds} }

// HasFieldComparison indica si el predicado (o alguno anidado) compara columnas entre sí.
func (p Predicate) HasFieldComparison() bool {
	if p.Op == OpLessThanField {
		return true
	}
	for _, sub := range p.Any {
		if sub.HasFieldComparison() {
			return true
		}
	}
	return false
}

// Order criterio de orden de SelectWhere.
type Order struct {
	Field Field
	Desc  bool
}

var (
	// NewestFirst orden por defecto: más recientes primero.
	NewestFirst = Order{Field: FieldCreatedAt, Desc: true}
	// RecentlyUpdatedFirst para actividad y reportes de actividad.
	RecentlyUpdatedFirst = Order{Field: FieldUpdatedAt, Desc: true}
)

// Value devuelve el valor de una columna del registro (string, int o time.Time).
func Value(r *entity.InventoryRecord, f Field) any {
	switch f {
	case FieldID:
		return r.ID
	case FieldSKU:
		return r.SKU
	case FieldName:
		return r.Name
	case FieldDescription:
		return r.Description
	case FieldQuantity:
		return r.Quantity
	case FieldLocation:
		return r.Location
	case FieldCategory:
		return r.Category
	case FieldMinimumStock:
		return r.MinimumStock
	case FieldUnit:
		return string(r.Unit)
	case FieldCreatedAt:
		return r.CreatedAt
	case FieldUpdatedAt:
		return r.UpdatedAt
	}
	return nil
}

// Match evalúa la conjunción de predicados sobre un registro en memoria.
func Match(r *entity.InventoryRecord, preds []Predicate) bool {
	fold := cases.Fold()
	for _, p := range preds {
		if !matchOne(r, p, fold) {
			return false
		}
	}
	return true
}

func matchOne(r *entity.InventoryRecord, p Predicate, fold cases.Caser) bool {
	switch p.Op {
	case OpEq:
		return equalValues(Value(r, p.Field), p.Value)
	case OpContains:
		s, _ := Value(r, p.Field).(string)
		term, _ := p.Value.(string)
		return strings.Contains(fold.String(s), fold.String(term))
	case OpLessThanField:
		a, okA := Value(r, p.Field).(int)
		b, okB := Value(r, p.Ref).(int)
		return okA && okB && a < b
	case OpAny:
		for _, sub := range p.Any {
			if matchOne(r, sub, fold) {
				return true
			}
		}
		return false
	}
	return false
}

func equalValues(a, b any) bool {
	switch av := a.(type) {
	case int:
		switch bv := b.(type) {
		case int:
			return av == bv
		case int64:
			return int64(av) == bv
		}
		return false
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case time.Time:
		bv, ok := b.(time.Time)
		return ok && av.Equal(bv)
	}
	return false
}

// Sort ordena en sitio de forma estable según el criterio.
func Sort(records []*entity.InventoryRecord, o Order) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := Value(records[i], o.Field), Value(records[j], o.Field)
		if o.Desc {
			return lessValues(b, a)
		}
		return lessValues(a, b)
	})
}

func lessValues(a, b any) bool {
	switch av := a.(type) {
	case time.Time:
		bv, _ := b.(time.Time)
		return av.Before(bv)
	case int:
		bv, _ := b.(int)
		return av < bv
	case string:
		bv, _ := b.(string)
		return av < bv
	}
	return false
}
