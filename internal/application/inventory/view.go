package inventory

import (
	"sync"

	"github.com/aczyrek/warehouse-management-system/internal/domain/entity"
	"github.com/aczyrek/warehouse-management-system/internal/domain/query"
)

// ViewSnapshot copia inmutable del listado filtrado.
type ViewSnapshot struct {
	Filter  query.FilterSpec
	Records []*entity.InventoryRecord
	Version uint64
	Loaded  bool
}

// RecordView listado filtrado vigente, versionado. Cada lectura toma un número de
// generación y solo la respuesta de la generación más reciente se aplica; las
// mutaciones reemplazan únicamente la entrada afectada.
type RecordView struct {
	mu         sync.RWMutex
	filter     query.FilterSpec
	records    []*entity.InventoryRecord
	version    uint64
	generation uint64
	loaded     bool
}

// NewRecordView vista vacía con el filtro por defecto.
func NewRecordView() *RecordView {
	return &RecordView{filter: query.DefaultFilter()}
}

// BeginFetch registra una lectura nueva y devuelve su generación.
func (v *RecordView) BeginFetch() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.generation++
	return v.generation
}

// ApplyFetch aplica el resultado si gen sigue siendo la lectura más reciente.
// Devuelve false si la respuesta quedó superada y se descartó.
func (v *RecordView) ApplyFetch(gen uint64, filter query.FilterSpec, records []*entity.InventoryRecord) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.generation {
		return false
	}
	v.filter = filter
	v.records = cloneAll(records)
	v.version++
	v.loaded = true
	return true
}

// Snapshot copia del estado actual.
func (v *RecordView) Snapshot() ViewSnapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return ViewSnapshot{Filter: v.filter, Records: cloneAll(v.records), Version: v.version, Loaded: v.loaded}
}

// Filter filtro vigente.
func (v *RecordView) Filter() query.FilterSpec {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.filter
}

// Find busca un registro por id en la vista.
func (v *RecordView) Find(id string) (*entity.InventoryRecord, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	for _, r := range v.records {
		if r.ID == id {
			return r.Clone(), true
		}
	}
	return nil, false
}

// Replace sustituye la entrada con el mismo id por el registro autoritativo.
func (v *RecordView) Replace(rec *entity.InventoryRecord) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, r := range v.records {
		if r.ID == rec.ID {
			v.records[i] = rec.Clone()
			v.version++
			return true
		}
	}
	return false
}

// Prepend agrega un registro recién creado al inicio.
func (v *RecordView) Prepend(rec *entity.InventoryRecord) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.records = append([]*entity.InventoryRecord{rec.Clone()}, v.records...)
	v.version++
}

func cloneAll(in []*entity.InventoryRecord) []*entity.InventoryRecord {
	out := make([]*entity.InventoryRecord, len(in))
	for i, r := range in {
		out[i] = r.Clone()
	}
	return out
}
