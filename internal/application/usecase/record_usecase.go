package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/aczyrek/warehouse-management-system/internal/application/dto"
	"github.com/aczyrek/warehouse-management-system/internal/application/inventory"
	"github.com/aczyrek/warehouse-management-system/internal/domain"
	"github.com/aczyrek/warehouse-management-system/internal/domain/entity"
	"github.com/aczyrek/warehouse-management-system/internal/domain/query"
	"github.com/aczyrek/warehouse-management-system/internal/domain/repository"
	"github.com/aczyrek/warehouse-management-system/internal/domain/validation"
	"github.com/aczyrek/warehouse-management-system/pkg/logger"
)

// RecordUseCase operaciones del operador sobre registros de inventario. Mantiene la vista
// filtrada vigente: las lecturas fallidas por conectividad devuelven la última instantánea y
// las escrituras fallidas fuerzan una relectura del filtro actual.
type RecordUseCase struct {
	store repository.Store
	stock *inventory.StockService
	view  *inventory.RecordView
	log   *logger.Logger
}

// NewRecordUseCase construye el caso de uso.
func NewRecordUseCase(store repository.Store, stock *inventory.StockService, view *inventory.RecordView, log *logger.Logger) *RecordUseCase {
	return &RecordUseCase{store: store, stock: stock, view: view, log: log.Component("records")}
}

// ListRecords aplica el filtro y devuelve los registros, más recientes primero.
func (uc *RecordUseCase) ListRecords(ctx context.Context, in dto.ListRecordsRequest) (*dto.RecordListResponse, error) {
	level, err := query.ParseStockLevel(in.Stock)
	if err != nil {
		return nil, err
	}
	spec := query.FilterSpec{
		Search:     in.Search,
		Category:   orAll(in.Category),
		Location:   orAll(in.Location),
		StockLevel: level,
	}

	gen := uc.view.BeginFetch()
	recs, err := uc.store.SelectWhere(ctx, query.BuildQuery(spec), query.NewestFirst)
	if err != nil {
		snap := uc.view.Snapshot()
		if domain.KindOf(err) != domain.KindConnectivity || !snap.Loaded {
			return nil, fmt.Errorf("list records: %w", err)
		}
		uc.log.Warn().Err(err).Uint64("version", snap.Version).Msg("almacén no disponible, se devuelve la última instantánea")
		return &dto.RecordListResponse{
			Items:   dto.NewRecordResponses(snap.Records),
			Total:   len(snap.Records),
			Version: snap.Version,
			Stale:   true,
			Notice:  domain.UserMessage(err),
		}, nil
	}
	if !uc.view.ApplyFetch(gen, spec, recs) {
		uc.log.Debug().Uint64("generation", gen).Msg("lectura superada, se descarta para la vista")
	}
	return &dto.RecordListResponse{
		Items:   dto.NewRecordResponses(recs),
		Total:   len(recs),
		Version: uc.view.Snapshot().Version,
	}, nil
}

// AddRecord valida y crea un registro. Los campos no enviados toman los valores por defecto.
func (uc *RecordUseCase) AddRecord(ctx context.Context, in dto.CreateRecordRequest) (*dto.RecordResponse, error) {
	c := entity.NewCandidate(strings.TrimSpace(in.SKU), strings.TrimSpace(in.Name))
	qty, minStock := float64(c.Quantity), float64(c.MinimumStock)
	if in.Quantity != nil {
		qty = *in.Quantity
	}
	if in.MinimumStock != nil {
		minStock = *in.MinimumStock
	}
	unit := string(c.Unit)
	if in.Unit != "" {
		unit = in.Unit
	}
	if err := validation.Candidate(validation.CandidateInput{
		SKU:          c.SKU,
		Name:         c.Name,
		Quantity:     qty,
		MinimumStock: minStock,
		Unit:         unit,
	}); err != nil {
		return nil, err
	}
	c.Quantity = int(qty)
	c.MinimumStock = int(minStock)
	c.Unit = entity.Unit(unit)
	c.Description = in.Description
	c.Location = in.Location
	c.Category = in.Category

	rec, err := uc.store.InsertOne(ctx, c)
	if err != nil {
		uc.resync(ctx, err)
		return nil, fmt.Errorf("add record: %w", err)
	}
	if query.Match(rec, query.BuildQuery(uc.view.Filter())) {
		uc.view.Prepend(rec)
	}
	uc.log.Info().Str("record_id", rec.ID).Str("sku", rec.SKU).Msg("registro creado")
	out := dto.NewRecordResponse(rec)
	return &out, nil
}

// RemoveStock retira amount unidades del registro id y devuelve el registro confirmado.
func (uc *RecordUseCase) RemoveStock(ctx context.Context, id string, amount float64) (*dto.StockMutationResponse, error) {
	base, ok := uc.view.Find(id)
	if !ok {
		var err error
		base, err = uc.store.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("remove stock: %w", err)
		}
	}
	m, err := uc.stock.RemoveStock(ctx, base, amount)
	if err != nil {
		uc.resync(ctx, err)
		return nil, fmt.Errorf("remove stock: %w", err)
	}
	uc.view.Replace(m.Record)

	trace := make([]string, len(m.Trace))
	for i, s := range m.Trace {
		trace[i] = string(s)
	}
	return &dto.StockMutationResponse{
		Record:   dto.NewRecordResponse(m.Record),
		Removed:  m.Amount,
		Attempts: m.Attempts,
		Trace:    trace,
	}, nil
}

// Lookups categorías y ubicaciones en paralelo.
func (uc *RecordUseCase) Lookups(ctx context.Context) (*dto.LookupsResponse, error) {
	var out dto.LookupsResponse
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := uc.store.ListCategories(gctx)
		out.Categories = v
		return err
	})
	g.Go(func() error {
		v, err := uc.store.ListLocations(gctx)
		out.Locations = v
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("lookups: %w", err)
	}
	if out.Categories == nil {
		out.Categories = []string{}
	}
	if out.Locations == nil {
		out.Locations = []string{}
	}
	return &out, nil
}

// CountRecords cantidad total de registros; sirve de sonda del almacén.
func (uc *RecordUseCase) CountRecords(ctx context.Context) (int, error) {
	return uc.store.CountAll(ctx)
}

// Snapshot vista vigente.
func (uc *RecordUseCase) Snapshot() inventory.ViewSnapshot {
	return uc.view.Snapshot()
}

// resync relee el filtro vigente tras una escritura fallida en el almacén.
func (uc *RecordUseCase) resync(ctx context.Context, cause error) {
	var valErr *domain.ValidationError
	if errors.As(cause, &valErr) {
		return
	}
	spec := uc.view.Filter()
	gen := uc.view.BeginFetch()
	recs, err := uc.store.SelectWhere(ctx, query.BuildQuery(spec), query.NewestFirst)
	if err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo resincronizar la vista")
		return
	}
	uc.view.ApplyFetch(gen, spec, recs)
	uc.log.Debug().AnErr("cause", cause).Int("records", len(recs)).Msg("vista resincronizada")
}

func orAll(v string) string {
	if strings.TrimSpace(v) == "" {
		return query.All
	}
	return v
}
