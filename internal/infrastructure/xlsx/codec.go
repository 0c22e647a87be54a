// Package xlsx implementa exchange.Codec sobre libros Excel (excelize).
package xlsx

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/aczyrek/warehouse-management-system/internal/application/exchange"
)

const contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var _ exchange.Codec = (*Codec)(nil)

// Codec lee la primera hoja del libro y escribe una hoja por tabla.
type Codec struct{}

// NewCodec construye el codec.
func NewCodec() *Codec { return &Codec{} }

// Extension extensión de archivo.
func (c *Codec) Extension() string { return exchange.FormatXLSX }

// ContentType tipo MIME.
func (c *Codec) ContentType() string { return contentType }

// Encode escribe encabezado en la fila 1 y los datos a partir de la fila 2.
func (c *Codec) Encode(t exchange.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if t.Sheet != "" && t.Sheet != sheet {
		if err := f.SetSheetName(sheet, t.Sheet); err != nil {
			return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
		}
		sheet = t.Sheet
	}

	header := make([]any, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("xlsx: encabezado: %w", err)
	}
	for i, r := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("xlsx: celda: %w", err)
		}
		row := r
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+1, err)
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode lee la primera hoja con los valores crudos de las celdas (un 1234 con formato
// #,##0 llega como "1234", no "1,234"). Los nombres de columna se normalizan (minúsculas,
// sin espacios alrededor); las filas totalmente vacías se omiten.
func (c *Codec) Decode(r io.Reader) (*exchange.Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("xlsx: archivo ilegible: %w", err)
	}
	defer func() { _ = f.Close() }()

	name := f.GetSheetName(0)
	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("xlsx: leer hoja %s: %w", name, err)
	}
	out := &exchange.Sheet{}
	if len(rows) == 0 {
		return out, nil
	}

	for _, h := range rows[0] {
		out.Header = append(out.Header, strings.ToLower(strings.TrimSpace(h)))
	}
	for _, cells := range rows[1:] {
		row := exchange.Row{}
		for i, v := range cells {
			if i >= len(out.Header) || out.Header[i] == "" || v == "" {
				continue
			}
			row[out.Header[i]] = v
		}
		if len(row) > 0 {
			out.Rows = append(out.Rows, row)
		}
	}
	return out, nil
}
