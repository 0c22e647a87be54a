package entity

import "github.com/shopspring/decimal"

// Lookups listas de referencia (nombres de categorías y ubicaciones) ordenadas por nombre.
type Lookups struct {
	Categories []string
	Locations  []string
}

// UncategorizedLabel nombre del grupo para registros sin categoría.
const UncategorizedLabel = "Uncategorized"

// CategoryStat resultado de la distribución por categoría.
type CategoryStat struct {
	Name       string
	Count      int
	Percentage decimal.Decimal // 0..100, redondeado a un decimal
}
