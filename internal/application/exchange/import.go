package exchange

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aczyrek/warehouse-management-system/internal/domain"
	"github.com/aczyrek/warehouse-management-system/internal/domain/entity"
	"github.com/aczyrek/warehouse-management-system/internal/domain/validation"
)

// Columnas del archivo de importación.
const (
	ColSKU          = "sku"
	ColName         = "name"
	ColDescription  = "description"
	ColQuantity     = "quantity"
	ColLocation     = "location"
	ColCategory     = "category"
	ColMinimumStock = "minimum_stock"
	ColUnit         = "unit"
)

var requiredColumns = []string{ColSKU, ColName, ColQuantity}

// Import decodifica el archivo y lo inserta en un único lote: un sku duplicado rechaza
// el lote completo. Devuelve la cantidad de registros insertados.
func (s *Service) Import(ctx context.Context, r io.Reader) (int, error) {
	sheet, err := s.codec.Decode(r)
	if err != nil {
		return 0, fmt.Errorf("import: %w: %v", domain.ErrInvalidInput, err)
	}
	if err := checkColumns(sheet.Header); err != nil {
		return 0, fmt.Errorf("import: %w", err)
	}
	if len(sheet.Rows) == 0 {
		s.log.Info().Msg("archivo sin filas, nada que importar")
		return 0, nil
	}

	candidates := make([]*entity.InventoryRecord, 0, len(sheet.Rows))
	for i, row := range sheet.Rows {
		if s.strict {
			if err := validateRow(i+1, row); err != nil {
				return 0, fmt.Errorf("import: %w", err)
			}
		}
		candidates = append(candidates, candidateFromRow(row))
	}

	n, err := s.repo.InsertMany(ctx, candidates)
	if err != nil {
		return 0, fmt.Errorf("import: %w", err)
	}
	s.log.Info().Int("imported", n).Bool("strict", s.strict).Msg("importación completada")
	return n, nil
}

func checkColumns(header []string) error {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	var missing []string
	for _, c := range requiredColumns {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: faltan columnas obligatorias: %s", domain.ErrInvalidInput, strings.Join(missing, ", "))
	}
	return nil
}

// candidateFromRow mapea una fila sin validar: cantidades como entero inicial (0 si no hay),
// unidad pcs por defecto y textos vacíos.
func candidateFromRow(row Row) *entity.InventoryRecord {
	unit := entity.Unit(row[ColUnit])
	if unit == "" {
		unit = entity.UnitPieces
	}
	return &entity.InventoryRecord{
		SKU:          row[ColSKU],
		Name:         row[ColName],
		Description:  row[ColDescription],
		Quantity:     leadingInt(row[ColQuantity]),
		Location:     row[ColLocation],
		Category:     row[ColCategory],
		MinimumStock: leadingInt(row[ColMinimumStock]),
		Unit:         unit,
	}
}

type cellCheck struct {
	field string
	v     validation.Violation
}

// validateRow aplica las mismas reglas que el alta individual sobre los valores crudos.
// minimum_stock y unit solo se validan si vienen informados.
func validateRow(n int, row Row) error {
	checks := []cellCheck{
		{ColSKU, validation.SKU(row[ColSKU])},
		{ColName, validation.ItemName(row[ColName])},
		{ColQuantity, validation.QuantityLikeString(row[ColQuantity])},
	}
	if raw := row[ColMinimumStock]; raw != "" {
		checks = append(checks, cellCheck{ColMinimumStock, validation.QuantityLikeString(raw)})
	}
	if raw := row[ColUnit]; raw != "" {
		checks = append(checks, cellCheck{ColUnit, validation.Unit(raw)})
	}
	for _, c := range checks {
		if c.v.OK() {
			continue
		}
		return &domain.ValidationError{Field: c.field, Reason: string(c.v.Reason), Message: c.v.Message, Row: n}
	}
	return nil
}

// leadingInt entero al inicio del texto ("12 cajas" → 12, "3.9" → 3); 0 si no hay dígitos.
func leadingInt(raw string) int {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
