package exchange

import (
	"context"
	"fmt"
	"time"

	"github.com/aczyrek/warehouse-management-system/internal/domain"
	"github.com/aczyrek/warehouse-management-system/internal/domain/query"
)

var exportHeader = []string{
	"id", "sku", "name", "description", "quantity", "location",
	"category", "minimum_stock", "unit", "created_at", "updated_at",
}

// Export todos los registros, más recientes primero, con todos sus campos.
// Sin registros devuelve domain.ErrNoData.
func (s *Service) Export(ctx context.Context) (*File, error) {
	records, err := s.repo.SelectWhere(ctx, nil, query.NewestFirst)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	if len(records) == 0 {
		return nil, domain.ErrNoData
	}

	t := Table{Sheet: "Inventory", Header: exportHeader, Rows: make([][]any, 0, len(records))}
	for _, r := range records {
		t.Rows = append(t.Rows, []any{
			r.ID, r.SKU, r.Name, r.Description, r.Quantity, r.Location,
			r.Category, r.MinimumStock, string(r.Unit),
			r.CreatedAt.UTC().Format(time.RFC3339), r.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}
	data, err := s.codec.Encode(t)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	s.log.Info().Int("records", len(records)).Msg("exportación generada")
	return &File{
		Name:        fmt.Sprintf("inventory_export_%s.%s", s.isoDate(), s.codec.Extension()),
		ContentType: s.codec.ContentType(),
		Data:        data,
	}, nil
}
