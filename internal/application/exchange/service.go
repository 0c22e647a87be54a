package exchange

import (
	"time"

	"github.com/aczyrek/warehouse-management-system/internal/domain/repository"
	"github.com/aczyrek/warehouse-management-system/pkg/logger"
)

// Service pipeline de intercambio sobre el store de registros.
type Service struct {
	repo     repository.RecordRepository
	codec    Codec
	renderer Renderer
	strict   bool
	log      *logger.Logger
	now      func() time.Time
}

// NewService construye el servicio. renderer puede ser nil (solo xlsx).
// Con strict cada fila importada pasa por el motor de validación antes de insertar.
func NewService(repo repository.RecordRepository, codec Codec, renderer Renderer, strict bool, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		codec:    codec,
		renderer: renderer,
		strict:   strict,
		log:      log.Component("exchange"),
		now:      time.Now,
	}
}

// Strict indica si la importación valida cada fila.
func (s *Service) Strict() bool { return s.strict }

// isoDate fecha UTC para nombres de archivo.
func (s *Service) isoDate() string {
	return s.now().UTC().Format("2006-01-02")
}
