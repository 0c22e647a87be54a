// Package analytics contiene el ranking de stock bajo, la actividad reciente, la
// distribución por categoría y los casos de uso del dashboard y del resumen de reportes.
package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aczyrek/warehouse-management-system/internal/domain/entity"
)

// ActionStockUpdate etiqueta de toda entrada de actividad; no hay bitácora real,
// la actividad se deriva de updated_at.
const ActionStockUpdate = "Stock Update"

var hundred = decimal.NewFromInt(100)

// Activity entrada de actividad reciente.
type Activity struct {
	RecordID  string
	ItemName  string
	Action    string
	Timestamp time.Time
}

// Totals agregados del listado completo.
type Totals struct {
	TotalItems    int
	LowStockCount int // cantidad <= mínimo
	TotalQuantity int64
}

// LowStockAlerts registros con cantidad <= mínimo, del más urgente (ratio menor) al menos
// urgente. Con mínimo 0 el ratio es 0. Los empates conservan el orden de entrada.
func LowStockAlerts(records []*entity.InventoryRecord, limit int) []*entity.InventoryRecord {
	out := make([]*entity.InventoryRecord, 0, len(records))
	for _, r := range records {
		if r.IsAtOrBelowThreshold() {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StockRatio() < out[j].StockRatio()
	})
	return head(out, limit)
}

// RecentActivity los limit registros modificados más recientemente.
func RecentActivity(records []*entity.InventoryRecord, limit int) []Activity {
	sorted := make([]*entity.InventoryRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt)
	})
	sorted = head(sorted, limit)

	out := make([]Activity, 0, len(sorted))
	for _, r := range sorted {
		out = append(out, Activity{RecordID: r.ID, ItemName: r.Name, Action: ActionStockUpdate, Timestamp: r.UpdatedAt})
	}
	return out
}

// CategoryDistribution agrupa por categoría (vacía → "Uncategorized") y ordena por
// cantidad descendente; los empates quedan en orden de primera aparición.
func CategoryDistribution(records []*entity.InventoryRecord) []entity.CategoryStat {
	if len(records) == 0 {
		return []entity.CategoryStat{}
	}
	index := make(map[string]int)
	var stats []entity.CategoryStat
	for _, r := range records {
		name := r.Category
		if name == "" {
			name = entity.UncategorizedLabel
		}
		i, ok := index[name]
		if !ok {
			i = len(stats)
			index[name] = i
			stats = append(stats, entity.CategoryStat{Name: name})
		}
		stats[i].Count++
	}

	total := decimal.NewFromInt(int64(len(records)))
	for i := range stats {
		stats[i].Percentage = decimal.NewFromInt(int64(stats[i].Count)).
			Mul(hundred).
			DivRound(total, 4).
			Round(1)
	}
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Count > stats[j].Count })
	return stats
}

// Summarize totales sobre el listado.
func Summarize(records []*entity.InventoryRecord) Totals {
	var t Totals
	for _, r := range records {
		t.TotalItems++
		t.TotalQuantity += int64(r.Quantity)
		if r.IsAtOrBelowThreshold() {
			t.LowStockCount++
		}
	}
	return t
}

func head[T any](s []T, limit int) []T {
	if limit >= 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}
