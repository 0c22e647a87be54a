// Package metrics instrumenta el store de registros con métricas de Prometheus.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aczyrek/warehouse-management-system/internal/domain"
	"github.com/aczyrek/warehouse-management-system/internal/domain/entity"
	"github.com/aczyrek/warehouse-management-system/internal/domain/query"
	"github.com/aczyrek/warehouse-management-system/internal/domain/repository"
)

const namespace = "wms"

// StoreMetrics contadores e histogramas por operación del store.
type StoreMetrics struct {
	ops     *prometheus.CounterVec
	latency *prometheus.HistogramVec
}

// NewStoreMetrics registra las métricas en reg.
func NewStoreMetrics(reg prometheus.Registerer, backend string) (*StoreMetrics, error) {
	labels := prometheus.Labels{"backend": backend}
	m := &StoreMetrics{
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "store",
			Name:        "operations_total",
			Help:        "Operaciones sobre el store por resultado (categoría de error).",
			ConstLabels: labels,
		}, []string{"op", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "store",
			Name:        "operation_duration_seconds",
			Help:        "Latencia de las operaciones sobre el store.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"op"}),
	}
	for _, c := range []prometheus.Collector{m.ops, m.latency} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *StoreMetrics) observe(op string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = string(domain.KindOf(err))
	}
	m.ops.WithLabelValues(op, outcome).Inc()
	m.latency.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

var _ repository.Store = (*InstrumentedStore)(nil)

// InstrumentedStore decora un repository.Store midiendo cada llamada.
type InstrumentedStore struct {
	next repository.Store
	m    *StoreMetrics
}

// Instrument envuelve next.
func Instrument(next repository.Store, m *StoreMetrics) *InstrumentedStore {
	return &InstrumentedStore{next: next, m: m}
}

func (s *InstrumentedStore) InsertOne(ctx context.Context, c *entity.InventoryRecord) (rec *entity.InventoryRecord, err error) {
	defer func(start time.Time) { s.m.observe("insert_one", start, err) }(time.Now())
	return s.next.InsertOne(ctx, c)
}

func (s *InstrumentedStore) InsertMany(ctx context.Context, cs []*entity.InventoryRecord) (n int, err error) {
	defer func(start time.Time) { s.m.observe("insert_many", start, err) }(time.Now())
	return s.next.InsertMany(ctx, cs)
}

func (s *InstrumentedStore) UpdateByID(ctx context.Context, id string, patch entity.RecordPatch) (err error) {
	defer func(start time.Time) { s.m.observe("update_by_id", start, err) }(time.Now())
	return s.next.UpdateByID(ctx, id, patch)
}

func (s *InstrumentedStore) GetByID(ctx context.Context, id string) (rec *entity.InventoryRecord, err error) {
	defer func(start time.Time) { s.m.observe("get_by_id", start, err) }(time.Now())
	return s.next.GetByID(ctx, id)
}

func (s *InstrumentedStore) SelectWhere(ctx context.Context, preds []query.Predicate, order query.Order) (recs []*entity.InventoryRecord, err error) {
	defer func(start time.Time) { s.m.observe("select_where", start, err) }(time.Now())
	return s.next.SelectWhere(ctx, preds, order)
}

func (s *InstrumentedStore) CountAll(ctx context.Context) (n int, err error) {
	defer func(start time.Time) { s.m.observe("count_all", start, err) }(time.Now())
	return s.next.CountAll(ctx)
}

func (s *InstrumentedStore) ListCategories(ctx context.Context) (names []string, err error) {
	defer func(start time.Time) { s.m.observe("list_categories", start, err) }(time.Now())
	return s.next.ListCategories(ctx)
}

func (s *InstrumentedStore) ListLocations(ctx context.Context) (names []string, err error) {
	defer func(start time.Time) { s.m.observe("list_locations", start, err) }(time.Now())
	return s.next.ListLocations(ctx)
}
