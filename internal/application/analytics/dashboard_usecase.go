package analytics

import (
	"context"
	"fmt"

	"github.com/aczyrek/warehouse-management-system/internal/application/dto"
	"github.com/aczyrek/warehouse-management-system/internal/domain/query"
	"github.com/aczyrek/warehouse-management-system/internal/domain/repository"
)

const dashboardTop = 3 // entradas por widget del dashboard

// DashboardUseCase resumen del dashboard y de la pantalla de reportes.
//
// Fuente de datos: una sola lectura de todos los registros; los agregados se calculan en memoria.
type DashboardUseCase struct {
	repo repository.RecordRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.RecordRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// GetSummary totales, los 3 registros más urgentes y los 3 modificados más recientemente.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	records, err := uc.repo.SelectWhere(ctx, nil, query.NewestFirst)
	if err != nil {
		return nil, fmt.Errorf("dashboard summary: %w", err)
	}
	t := Summarize(records)

	recent := RecentActivity(records, dashboardTop)
	activity := make([]dto.ActivityDTO, 0, len(recent))
	for _, a := range recent {
		activity = append(activity, dto.ActivityDTO{RecordID: a.RecordID, ItemName: a.ItemName, Action: a.Action, Timestamp: a.Timestamp})
	}

	return &dto.DashboardSummaryDTO{
		TotalItems:         t.TotalItems,
		LowStockCount:      t.LowStockCount,
		TotalQuantity:      t.TotalQuantity,
		TopLowStock:        dto.NewRecordResponses(LowStockAlerts(records, dashboardTop)),
		TopRecentlyUpdated: activity,
	}, nil
}

// GetReportSummary totales más la distribución por categoría.
func (uc *DashboardUseCase) GetReportSummary(ctx context.Context) (*dto.ReportSummaryDTO, error) {
	records, err := uc.repo.SelectWhere(ctx, nil, query.NewestFirst)
	if err != nil {
		return nil, fmt.Errorf("report summary: %w", err)
	}
	t := Summarize(records)

	stats := CategoryDistribution(records)
	cats := make([]dto.CategoryStatDTO, 0, len(stats))
	for _, s := range stats {
		cats = append(cats, dto.CategoryStatDTO{Name: s.Name, Count: s.Count, Percentage: s.Percentage})
	}
	return &dto.ReportSummaryDTO{
		TotalItems:    t.TotalItems,
		LowStockCount: t.LowStockCount,
		TotalQuantity: t.TotalQuantity,
		Categories:    cats,
	}, nil
}
