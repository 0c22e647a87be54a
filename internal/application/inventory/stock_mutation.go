package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aczyrek/warehouse-management-system/internal/domain"
	"github.com/aczyrek/warehouse-management-system/internal/domain/entity"
	"github.com/aczyrek/warehouse-management-system/internal/domain/repository"
	"github.com/aczyrek/warehouse-management-system/internal/domain/validation"
	"github.com/aczyrek/warehouse-management-system/pkg/logger"
)

// MutationState estado del retiro de stock.
type MutationState string

const (
	StateIdle       MutationState = "idle"
	StateValidating MutationState = "validating"
	StateApplying   MutationState = "applying"
	StateConfirming MutationState = "confirming"
	StateDone       MutationState = "done"
	StateFailed     MutationState = "failed"
)

// maxAttempts lecturas frescas permitidas cuando otro actor cambió la cantidad.
const maxAttempts = 3

// StockMutation registro de un retiro: entradas, valores calculados y recorrido de estados.
type StockMutation struct {
	RecordID  string
	Requested float64 // monto pedido por el operador
	Amount    int     // monto acotado a [1, cantidad base]
	Base      int     // cantidad sobre la que se calculó el último intento
	Computed  int     // max(0, Base-Amount)
	Record    *entity.InventoryRecord
	State     MutationState
	Trace     []MutationState
	Attempts  int
	Err       error
}

func (m *StockMutation) to(s MutationState) {
	m.State = s
	m.Trace = append(m.Trace, s)
}

func (m *StockMutation) fail(err error) (*StockMutation, error) {
	m.Err = err
	m.to(StateFailed)
	return m, err
}

// ClampRemoveAmount acota el monto a [1, current]; con current 0 el resultado es 0.
func ClampRemoveAmount(amount, current int) int {
	if amount < 1 {
		amount = 1
	}
	if amount > current {
		amount = current
	}
	return amount
}

// StockService retiro de stock con confirmación por relectura.
//
// Idle → Validating → Applying → Confirming → Done, o Failed desde cualquiera de los
// tres intermedios. La escritura lleva como precondición la cantidad base; si el store
// responde ErrStaleWrite se relee el registro y se vuelve a Validating con la cantidad
// fresca, de modo que dos retiros concurrentes nunca dejan una cantidad negativa ni
// pisan el resultado del otro.
type StockService struct {
	repo repository.RecordRepository
	log  *logger.Logger
	now  func() time.Time
}

// NewStockService construye el servicio.
func NewStockService(repo repository.RecordRepository, log *logger.Logger) *StockService {
	return &StockService{repo: repo, log: log.Component("stock"), now: time.Now}
}

// RemoveStock retira amount unidades partiendo de la instantánea base.
// El registro devuelto en StockMutation.Record es el releído del store.
func (s *StockService) RemoveStock(ctx context.Context, base *entity.InventoryRecord, amount float64) (*StockMutation, error) {
	m := &StockMutation{RecordID: base.ID, Requested: amount}
	m.to(StateIdle)
	current := base.Quantity

	for attempt := 1; ; attempt++ {
		m.Attempts = attempt
		m.to(StateValidating)
		if err := validation.Field("amount", validation.QuantityLike(amount)); err != nil {
			return m.fail(err)
		}
		m.Base = current
		m.Amount = ClampRemoveAmount(int(amount), current)
		m.Computed = max(0, current-m.Amount)
		if err := validation.Field("quantity", validation.QuantityLike(float64(m.Computed))); err != nil {
			return m.fail(err)
		}

		m.to(StateApplying)
		newQty, expect := m.Computed, current
		err := s.repo.UpdateByID(ctx, m.RecordID, entity.RecordPatch{
			Quantity:       &newQty,
			ExpectQuantity: &expect,
			UpdatedAt:      s.now().UTC(),
		})
		if errors.Is(err, domain.ErrStaleWrite) {
			if attempt >= maxAttempts {
				return m.fail(&domain.StoreError{Op: "remove stock", Err: fmt.Errorf("%w tras %d intentos", err, attempt)})
			}
			fresh, err := s.repo.GetByID(ctx, m.RecordID)
			if err != nil {
				return m.fail(err)
			}
			s.log.Debug().
				Str("record_id", m.RecordID).
				Int("snapshot", current).
				Int("fresh", fresh.Quantity).
				Msg("cantidad cambiada por otro actor, recalculando")
			current = fresh.Quantity
			continue
		}
		if err != nil {
			return m.fail(err)
		}

		m.to(StateConfirming)
		rec, err := s.repo.GetByID(ctx, m.RecordID)
		if err != nil {
			return m.fail(fmt.Errorf("confirmar retiro: %w", err))
		}
		m.Record = rec
		m.to(StateDone)
		s.log.Info().
			Str("record_id", m.RecordID).
			Int("removed", m.Amount).
			Int("quantity", rec.Quantity).
			Msg("retiro de stock confirmado")
		return m, nil
	}
}
