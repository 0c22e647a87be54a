package exchange

import (
	"context"
	"fmt"

	"github.com/aczyrek/warehouse-management-system/internal/domain"
	"github.com/aczyrek/warehouse-management-system/internal/domain/entity"
	"github.com/aczyrek/warehouse-management-system/internal/domain/query"
)

// ReportType proyección de reporte.
type ReportType string

const (
	ReportInventory ReportType = "inventory"
	ReportLowStock  ReportType = "low-stock"
	ReportActivity  ReportType = "activity"
)

const pdfContentType = "application/pdf"

type projection struct {
	base   string
	title  string
	order  query.Order
	header []string
	keep   func(*entity.InventoryRecord) bool
	row    func(*entity.InventoryRecord) []any
}

var projections = map[ReportType]projection{
	ReportInventory: {
		base:   "inventory_summary",
		title:  "Resumen de inventario",
		order:  query.NewestFirst,
		header: []string{"SKU", "Name", "Quantity", "Location", "Category", "Minimum Stock", "Unit"},
		row: func(r *entity.InventoryRecord) []any {
			return []any{r.SKU, r.Name, r.Quantity, r.Location, r.Category, r.MinimumStock, string(r.Unit)}
		},
	},
	ReportLowStock: {
		base:   "low_stock_report",
		title:  "Reporte de stock bajo",
		order:  query.NewestFirst,
		header: []string{"SKU", "Name", "Current Quantity", "Minimum Stock", "Location", "Category"},
		keep:   (*entity.InventoryRecord).IsAtOrBelowThreshold,
		row: func(r *entity.InventoryRecord) []any {
			return []any{r.SKU, r.Name, r.Quantity, r.MinimumStock, r.Location, r.Category}
		},
	},
	ReportActivity: {
		base:   "activity_log",
		title:  "Actividad reciente",
		order:  query.RecentlyUpdatedFirst,
		header: []string{"SKU", "Name", "Last Updated", "Current Quantity", "Location"},
		row: func(r *entity.InventoryRecord) []any {
			return []any{r.SKU, r.Name, r.UpdatedAt.UTC().Format("2006-01-02 15:04:05"), r.Quantity, r.Location}
		},
	},
}

// ParseReportType valida el tipo recibido.
func ParseReportType(s string) (ReportType, error) {
	t := ReportType(s)
	if _, ok := projections[t]; !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedReport, s)
	}
	return t, nil
}

// Report genera el reporte typ en el formato indicado ("" equivale a xlsx).
// El encabezado se emite siempre, aunque la proyección quede vacía.
func (s *Service) Report(ctx context.Context, typ ReportType, format string) (*File, error) {
	p, ok := projections[typ]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedReport, typ)
	}
	if format == "" {
		format = s.codec.Extension()
	}
	if format != s.codec.Extension() && (format != FormatPDF || s.renderer == nil) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}

	records, err := s.repo.SelectWhere(ctx, nil, p.order)
	if err != nil {
		return nil, fmt.Errorf("report %s: %w", typ, err)
	}
	t := Table{Sheet: "Report", Header: p.header, Rows: make([][]any, 0, len(records))}
	for _, r := range records {
		if p.keep != nil && !p.keep(r) {
			continue
		}
		t.Rows = append(t.Rows, p.row(r))
	}

	f := &File{Name: fmt.Sprintf("%s_%s.%s", p.base, s.isoDate(), format)}
	if format == FormatPDF {
		f.Data, err = s.renderer.Render(p.title, t)
		f.ContentType = pdfContentType
	} else {
		f.Data, err = s.codec.Encode(t)
		f.ContentType = s.codec.ContentType()
	}
	if err != nil {
		return nil, fmt.Errorf("report %s: %w", typ, err)
	}
	s.log.Info().Str("report", string(typ)).Str("format", format).Int("rows", len(t.Rows)).Msg("reporte generado")
	return f, nil
}
