package dto

import (
	"time"

	"github.com/aczyrek/warehouse-management-system/internal/domain/entity"
)

// CreateRecordRequest entrada para crear un registro de inventario.
// Los campos numéricos son punteros para distinguir "no enviado" (se aplica el valor por defecto)
// de un valor explícito, que se valida tal cual.
type CreateRecordRequest struct {
	SKU          string   `json:"sku"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Quantity     *float64 `json:"quantity"`
	Location     string   `json:"location"`
	Category     string   `json:"category"`
	MinimumStock *float64 `json:"minimum_stock"`
	Unit         string   `json:"unit"`
}

// RemoveStockRequest cuerpo de POST /api/records/:id/remove-stock. Amount es obligatorio.
type RemoveStockRequest struct {
	Amount *float64 `json:"amount"`
}

// ListRecordsRequest filtros de GET /api/records.
type ListRecordsRequest struct {
	Search   string `query:"search"`
	Category string `query:"category"`
	Location string `query:"location"`
	Stock    string `query:"stock"`
}

// RecordResponse salida de un registro.
type RecordResponse struct {
	ID           string    `json:"id"`
	SKU          string    `json:"sku"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Quantity     int       `json:"quantity"`
	Location     string    `json:"location"`
	Category     string    `json:"category"`
	MinimumStock int       `json:"minimum_stock"`
	Unit         string    `json:"unit"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RecordListResponse listado filtrado. Stale indica que el almacén no respondió y se
// devuelve la última instantánea conocida junto con Notice.
type RecordListResponse struct {
	Items   []RecordResponse `json:"items"`
	Total   int              `json:"total"`
	Version uint64           `json:"version"`
	Stale   bool             `json:"stale"`
	Notice  string           `json:"notice,omitempty"`
}

// StockMutationResponse resultado confirmado de un retiro.
type StockMutationResponse struct {
	Record   RecordResponse `json:"record"`
	Removed  int            `json:"removed"`
	Attempts int            `json:"attempts"`
	Trace    []string       `json:"trace"`
}

// LookupsResponse categorías y ubicaciones conocidas.
type LookupsResponse struct {
	Categories []string `json:"categories"`
	Locations  []string `json:"locations"`
}

// StoreHealthResponse respuesta de /health/store.
type StoreHealthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
	Records int    `json:"records"`
}

// NewRecordResponse proyecta la entidad a su representación de salida.
func NewRecordResponse(r *entity.InventoryRecord) RecordResponse {
	return RecordResponse{
		ID:           r.ID,
		SKU:          r.SKU,
		Name:         r.Name,
		Description:  r.Description,
		Quantity:     r.Quantity,
		Location:     r.Location,
		Category:     r.Category,
		MinimumStock: r.MinimumStock,
		Unit:         string(r.Unit),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// NewRecordResponses proyecta una lista; nunca devuelve nil.
func NewRecordResponses(recs []*entity.InventoryRecord) []RecordResponse {
	out := make([]RecordResponse, 0, len(recs))
	for _, r := range recs {
		out = append(out, NewRecordResponse(r))
	}
	return out
}
