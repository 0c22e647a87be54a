package query

import (
	"fmt"

	"github.com/aczyrek/warehouse-management-system/internal/domain"
)

// All valor centinela de "sin filtro" para categoría, ubicación y nivel de stock.
const All = "all"

// StockLevel filtro por nivel de stock.
type StockLevel string

const (
	StockAll StockLevel = All
	StockLow StockLevel = "low" // cantidad estrictamente menor al mínimo
	StockOut StockLevel = "out" // cantidad 0
)

// ParseStockLevel interpreta el parámetro de consulta; vacío equivale a "all".
func ParseStockLevel(s string) (StockLevel, error) {
	switch StockLevel(s) {
	case "", StockAll:
		return StockAll, nil
	case StockLow, StockOut:
		return StockLevel(s), nil
	}
	return "", fmt.Errorf("%w: nivel de stock %q", domain.ErrInvalidInput, s)
}

// FilterSpec criterios del listado tal como los elige el operador.
type FilterSpec struct {
	Search     string
	Category   string
	Location   string
	StockLevel StockLevel
}

// DefaultFilter sin criterios.
func DefaultFilter() FilterSpec {
	return FilterSpec{Category: All, Location: All, StockLevel: StockAll}
}

// BuildQuery traduce el filtro a predicados combinados con AND.
//   - search no vacío: nombre o sku contienen el término tal cual, espacios incluidos
//     (sin distinguir mayúsculas)
//   - category / location distintos de "all": igualdad exacta
//   - "low": quantity < minimum_stock; "out": quantity = 0
func BuildQuery(spec FilterSpec) []Predicate {
	var preds []Predicate
	if spec.Search != "" {
		preds = append(preds, Any(Contains(FieldName, spec.Search), Contains(FieldSKU, spec.Search)))
	}
	if isSet(spec.Category) {
		preds = append(preds, Eq(FieldCategory, spec.Category))
	}
	if isSet(spec.Location) {
		preds = append(preds, Eq(FieldLocation, spec.Location))
	}
	switch spec.StockLevel {
	case StockLow:
		preds = append(preds, LessThanField(FieldQuantity, FieldMinimumStock))
	case StockOut:
		preds = append(preds, Eq(FieldQuantity, 0))
	}
	return preds
}

func isSet(v string) bool { return v != "" && v != All }
