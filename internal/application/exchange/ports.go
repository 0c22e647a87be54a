// Package exchange importa, exporta y genera reportes de inventario en formato tabular.
// El formato concreto (xlsx, pdf) queda detrás de los puertos Codec y Renderer.
package exchange

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Formatos de salida.
const (
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

// Table tabla a serializar: una fila de encabezado y una fila por registro.
type Table struct {
	Sheet  string
	Header []string
	Rows   [][]any
}

// Row fila decodificada, clave = nombre de columna normalizado.
type Row map[string]string

// Sheet hoja decodificada.
type Sheet struct {
	Header []string
	Rows   []Row
}

// Codec formato de intercambio tabular.
type Codec interface {
	Encode(t Table) ([]byte, error)
	Decode(r io.Reader) (*Sheet, error)
	Extension() string
	ContentType() string
}

// Renderer genera un documento imprimible (PDF) a partir de una tabla.
type Renderer interface {
	Render(title string, t Table) ([]byte, error)
}

// File archivo generado.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// SaveTo escribe el archivo en dir y devuelve la ruta final.
func (f *File) SaveTo(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("crear directorio %s: %w", dir, err)
	}
	path := filepath.Join(dir, f.Name)
	if err := os.WriteFile(path, f.Data, 0o644); err != nil {
		return "", fmt.Errorf("escribir %s: %w", path, err)
	}
	return path, nil
}
