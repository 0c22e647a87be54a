package entity

import "time"

// MaxQuantity límite superior de cantidades (entero de 32 bits con signo del store).
const MaxQuantity = 2147483647

// Valores por defecto de un candidato cuando el operador no los indica.
const (
	DefaultQuantity     = 1
	DefaultMinimumStock = 1
)

// Unit unidad de medida de un registro de inventario (conjunto cerrado).
type Unit string

const (
	UnitPieces      Unit = "pcs"
	UnitKilograms   Unit = "kg"
	UnitGrams       Unit = "g"
	UnitLiters      Unit = "l"
	UnitMilliliters Unit = "ml"
	UnitMeters      Unit = "m"
	UnitCentimeters Unit = "cm"
)

// Units devuelve el conjunto de unidades admitidas en orden de presentación.
func Units() []Unit {
	return []Unit{UnitPieces, UnitKilograms, UnitGrams, UnitLiters, UnitMilliliters, UnitMeters, UnitCentimeters}
}

// Valid indica si la unidad pertenece al conjunto admitido.
func (u Unit) Valid() bool {
	for _, known := range Units() {
		if u == known {
			return true
		}
	}
	return false
}

// InventoryRecord representa un ítem almacenado (SKU) con su cantidad actual.
// ID, CreatedAt y UpdatedAt los asigna el store.
type InventoryRecord struct {
	ID           string
	SKU          string // único en todo el store
	Name         string
	Description  string
	Quantity     int // 0..MaxQuantity
	Location     string
	Category     string
	MinimumStock int // umbral de reposición
	Unit         Unit
	CreatedAt    time.Time
	UpdatedAt    time.Time // solo lo avanza la ruta de mutación de stock
}

// NewCandidate crea un registro sin persistir con los valores por defecto aplicados.
func NewCandidate(sku, name string) *InventoryRecord {
	return &InventoryRecord{
		SKU:          sku,
		Name:         name,
		Quantity:     DefaultQuantity,
		MinimumStock: DefaultMinimumStock,
		Unit:         UnitPieces,
	}
}

// IsAtOrBelowThreshold cantidad <= mínimo. Lo usan el dashboard, las alertas y el reporte de stock bajo.
func (r *InventoryRecord) IsAtOrBelowThreshold() bool {
	return r.Quantity <= r.MinimumStock
}

// IsStrictlyBelowThreshold cantidad < mínimo. Lo usa el filtro "low" del listado.
func (r *InventoryRecord) IsStrictlyBelowThreshold() bool {
	return r.Quantity < r.MinimumStock
}

// IsOutOfStock cantidad exactamente 0.
func (r *InventoryRecord) IsOutOfStock() bool {
	return r.Quantity == 0
}

// StockRatio cantidad/mínimo; con mínimo 0 el ratio es 0.
func (r *InventoryRecord) StockRatio() float64 {
	if r.MinimumStock == 0 {
		return 0
	}
	return float64(r.Quantity) / float64(r.MinimumStock)
}

// Clone copia superficial (todos los campos son valores).
func (r *InventoryRecord) Clone() *InventoryRecord {
	c := *r
	return &c
}

// RecordPatch cambios parciales para UpdateByID.
// ExpectQuantity, si no es nil, es una precondición: la escritura solo aplica si la
// cantidad almacenada coincide; si no, el store devuelve domain.ErrStaleWrite.
type RecordPatch struct {
	Quantity       *int
	ExpectQuantity *int
	UpdatedAt      time.Time
}
