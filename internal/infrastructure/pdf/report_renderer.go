// Package pdf genera la versión imprimible de los reportes de inventario (maroto v2).
//
// Layout de la página A4 horizontal:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte  │  Emisor + fecha de generación│
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: una columna por campo de la proyección               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de filas                                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/aczyrek/warehouse-management-system/internal/application/exchange"
)

const gridSize = 12 // columnas de la grilla de maroto

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Renderer ──────────────────────────────────────────────────────────────────

var _ exchange.Renderer = (*ReportRenderer)(nil)

// ReportRenderer implementa exchange.Renderer usando Maroto v2.
type ReportRenderer struct {
	author string
	now    func() time.Time
}

// NewReportRenderer construye el renderer; author aparece en el encabezado y en los metadatos.
func NewReportRenderer(author string) *ReportRenderer {
	return &ReportRenderer{author: author, now: time.Now}
}

// Render genera el PDF y devuelve sus bytes.
func (g *ReportRenderer) Render(title string, t exchange.Table) ([]byte, error) {
	if len(t.Header) == 0 || len(t.Header) > gridSize {
		return nil, fmt.Errorf("pdf: la tabla debe tener entre 1 y %d columnas, tiene %d", gridSize, len(t.Header))
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(title, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title, g.author, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	widths := columnWidths(len(t.Header))
	m.AddRows(tableHeaderRow(t.Header, widths))
	m.AddRows(tableRows(t.Rows, widths)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow(len(t.Rows)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y emisor + fecha (der).
func headerRow(title, author string, at time.Time) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(5).Add(
			text.New(nonEmpty(author, "-"), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
			}),
			text.New("Generado: "+at.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla con fondo azul.
func tableHeaderRow(header []string, widths []int) core.Row {
	cols := make([]core.Col, len(header))
	for i, h := range header {
		cols[i] = col.New(widths[i]).Add(text.New(h, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableRows: una fila por registro, con franjas alternadas.
func tableRows(rows [][]any, widths []int) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for n, r := range rows {
		cols := make([]core.Col, len(widths))
		for i := range widths {
			var v any
			if i < len(r) {
				v = r[i]
			}
			a := align.Left
			if _, ok := v.(int); ok {
				a = align.Right
			}
			cols[i] = col.New(widths[i]).Add(text.New(cell(v), props.Text{
				Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
			}))
		}
		rw := row.New(6).Add(cols...)
		if n%2 == 1 {
			rw = rw.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		result = append(result, rw)
	}
	return result
}

// footerRow: total de filas del reporte.
func footerRow(total int) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New("Total de filas: "+formatThousands(strconv.Itoa(total)), props.Text{
			Size: 8, Align: align.Right, Color: colorGray, Top: 2,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// columnWidths reparte la grilla de 12 entre n columnas; el resto va a las primeras.
func columnWidths(n int) []int {
	widths := make([]int, n)
	base, extra := gridSize/n, gridSize%n
	for i := range widths {
		widths[i] = base
		if i < extra {
			widths[i]++
		}
	}
	return widths
}

func cell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case int:
		return formatThousands(strconv.Itoa(x))
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatThousands inserta puntos de miles en un entero en texto.
// Ej: "25000" → "25.000", "-1000000" → "-1.000.000"
func formatThousands(s string) string {
	sign := ""
	if len(s) > 0 && s[0] == '-' {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
