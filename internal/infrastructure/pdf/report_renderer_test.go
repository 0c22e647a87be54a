package pdf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aczyrek/warehouse-management-system/internal/application/exchange"
)

func TestRender_GeneraPDF(t *testing.T) {
	r := NewReportRenderer("Bodega Central")
	data, err := r.Render("Reporte de stock bajo", exchange.Table{
		Header: []string{"SKU", "Name", "Current Quantity", "Minimum Stock", "Location", "Category"},
		Rows: [][]any{
			{"A-1", "Tornillo", 2, 10, "Pasillo 3", "Ferretería"},
			{"A-2", "Tuerca", 0, 5, "", ""},
		},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestRender_RechazaTablaSinColumnas(t *testing.T) {
	_, err := NewReportRenderer("").Render("x", exchange.Table{})
	assert.Error(t, err)
}

func TestColumnWidths_SumanDoce(t *testing.T) {
	for n := 1; n <= gridSize; n++ {
		sum := 0
		for _, w := range columnWidths(n) {
			sum += w
		}
		assert.Equal(t, gridSize, sum, "n=%d", n)
	}
}

func TestFormatThousands(t *testing.T) {
	assert.Equal(t, "999", formatThousands("999"))
	assert.Equal(t, "25.000", formatThousands("25000"))
	assert.Equal(t, "-1.000.000", formatThousands("-1000000"))
}
