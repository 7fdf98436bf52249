package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// CriticalStockSweeper ejecuta el barrido periódico de stock crítico:
// auditor.FindCritical + dedup.RaiseCriticalStockAlerts. También puede
// invocarse bajo demanda (RunOnce) desde el endpoint de barrido.
type CriticalStockSweeper struct {
	auditor  *StockAuditorUseCase
	dedup    *AlertDeduplicatorUseCase
	interval time.Duration
	log      *logger.Logger

	cancel context.CancelFunc
}

// NewCriticalStockSweeper construye el sweeper. interval <= 0 deja el barrido
// solo bajo demanda (Start es un no-op).
func NewCriticalStockSweeper(
	auditor *StockAuditorUseCase,
	dedup *AlertDeduplicatorUseCase,
	interval time.Duration,
	log *logger.Logger,
) *CriticalStockSweeper {
	return &CriticalStockSweeper{
		auditor:  auditor,
		dedup:    dedup,
		interval: interval,
		log:      log,
	}
}

// RunOnce ejecuta un barrido y retorna las alertas recién creadas.
func (s *CriticalStockSweeper) RunOnce(ctx context.Context) ([]*entity.AlertRecord, error) {
	critical, err := s.auditor.FindCritical(ctx, decimal.Zero)
	if err != nil {
		return nil, err
	}
	return s.dedup.RaiseCriticalStockAlerts(ctx, critical)
}

// Start lanza la goroutine del barrido periódico. Idempotente respecto a
// Stop; no reentrante.
func (s *CriticalStockSweeper) Start() {
	if s.interval <= 0 {
		s.log.Info().Msg("barrido de stock crítico deshabilitado (intervalo 0)")
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.log.Info().Dur("intervalo", s.interval).Msg("barrido de stock crítico iniciado")
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				alerts, err := s.RunOnce(ctx)
				if err != nil {
					s.log.Error().Err(err).Msg("barrido de stock crítico")
					continue
				}
				if len(alerts) > 0 {
					s.log.Info().Int("nuevas_alertas", len(alerts)).Msg("barrido de stock crítico")
				}
			}
		}
	}()
}

// Stop detiene el barrido periódico.
func (s *CriticalStockSweeper) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}
