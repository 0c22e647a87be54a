package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	TotalItems         int              `json:"total_items"`
	LowStockCount      int              `json:"low_stock_count"` // cantidad <= mínimo
	TotalQuantity      int64            `json:"total_quantity"`
	TopLowStock        []RecordResponse `json:"top_low_stock"`        // 3 más urgentes
	TopRecentlyUpdated []ActivityDTO    `json:"top_recently_updated"` // 3 más recientes
}

// ActivityDTO entrada de actividad reciente, derivada de updated_at.
type ActivityDTO struct {
	RecordID  string    `json:"record_id"`
	ItemName  string    `json:"item_name"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// CategoryStatDTO participación de una categoría.
type CategoryStatDTO struct {
	Name       string          `json:"name"`
	Count      int             `json:"count"`
	Percentage decimal.Decimal `json:"percentage"`
}

// ReportSummaryDTO respuesta de GET /api/reports/summary.
type ReportSummaryDTO struct {
	TotalItems    int               `json:"total_items"`
	LowStockCount int               `json:"low_stock_count"`
	TotalQuantity int64             `json:"total_quantity"`
	Categories    []CategoryStatDTO `json:"categories"`
}
