package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/internal/domain/warehouse"
)

// AlertDeduplicatorUseCase convierte hallazgos del auditor en a lo sumo una
// notificación abierta por (material, tipo). La entrega (sonido, toast, push)
// es de un colaborador externo; aquí solo se decide si se levanta.
type AlertDeduplicatorUseCase struct {
	alertRepo repository.AlertRepository
	threshold decimal.Decimal
}

// NewAlertDeduplicatorUseCase construye el caso de uso. threshold es el
// umbral crítico configurado, usado para la banda de severidad.
func NewAlertDeduplicatorUseCase(alertRepo repository.AlertRepository, threshold decimal.Decimal) *AlertDeduplicatorUseCase {
	return &AlertDeduplicatorUseCase{alertRepo: alertRepo, threshold: threshold}
}

// RaiseCriticalStockAlerts levanta alertas de stock crítico para los
// materiales candidatos y retorna solo las recién creadas. Idempotente:
// barridos repetidos sobre un material ya marcado no producen duplicados.
// Seguro bajo barridos concurrentes: el insert choca contra el índice único
// parcial del storage y el conflicto se trata como "ya levantada".
func (uc *AlertDeduplicatorUseCase) RaiseCriticalStockAlerts(ctx context.Context, materials []*entity.Material) ([]*entity.AlertRecord, error) {
	created := make([]*entity.AlertRecord, 0, len(materials))
	for _, m := range materials {
		alert := &entity.AlertRecord{
			ID:         uuid.New().String(),
			MaterialID: m.ID,
			Kind:       entity.AlertKindCriticalStock,
			Severity:   warehouse.AlertSeverity(m.CurrentStock, uc.threshold),
			IsRead:     false,
			CreatedAt:  time.Now(),
		}
		inserted, err := uc.alertRepo.InsertUnlessOpen(alert)
		if err != nil {
			return created, err
		}
		if inserted {
			created = append(created, alert)
		}
	}
	return created, nil
}

// ListUnread lista las alertas abiertas para que el colaborador de entrega
// las drene.
func (uc *AlertDeduplicatorUseCase) ListUnread(ctx context.Context) ([]*entity.AlertRecord, error) {
	return uc.alertRepo.ListUnread()
}

// MarkRead marca una alerta como leída; a partir de ahí el mismo material
// puede volver a generar una alerta nueva en el siguiente barrido.
func (uc *AlertDeduplicatorUseCase) MarkRead(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return uc.alertRepo.MarkRead(id)
}
