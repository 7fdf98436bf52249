package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

func materialConStock(id string, stock int64) *entity.Material {
	now := time.Now()
	return &entity.Material{
		ID:            id,
		InternalCode:  id,
		Name:          "Material " + id,
		Category:      entity.CategoryMaterial,
		UnitOfMeasure: entity.UnitUnit,
		CurrentStock:  decimal.NewFromInt(stock),
		Status:        entity.MaterialStatusAvailable,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Idempotencia del barrido: la primera pasada crea una alerta por material,
// las siguientes no crean nada mientras siga sin leerse.
func TestRaiseCriticalStockAlerts_Idempotente(t *testing.T) {
	store := memory.NewStore()
	dedup := usecase.NewAlertDeduplicatorUseCase(memory.NewAlertRepository(store), decimal.NewFromInt(10))
	ctx := context.Background()

	candidatos := []*entity.Material{
		materialConStock("ALM-001", 4),
		materialConStock("ALM-002", 8),
	}

	creadas, err := dedup.RaiseCriticalStockAlerts(ctx, candidatos)
	require.NoError(t, err)
	assert.Len(t, creadas, 2, "la primera pasada crea ambas alertas")

	repetidas, err := dedup.RaiseCriticalStockAlerts(ctx, candidatos)
	require.NoError(t, err)
	assert.Empty(t, repetidas, "pasadas repetidas no deben duplicar alertas abiertas")

	abiertas, err := dedup.ListUnread(ctx)
	require.NoError(t, err)
	assert.Len(t, abiertas, 2)
}

// Tras marcar como leída, el mismo material vuelve a ser alertable.
func TestRaiseCriticalStockAlerts_ReabreTrasLectura(t *testing.T) {
	store := memory.NewStore()
	dedup := usecase.NewAlertDeduplicatorUseCase(memory.NewAlertRepository(store), decimal.NewFromInt(10))
	ctx := context.Background()

	candidato := []*entity.Material{materialConStock("ALM-003", 2)}

	creadas, err := dedup.RaiseCriticalStockAlerts(ctx, candidato)
	require.NoError(t, err)
	require.Len(t, creadas, 1)

	require.NoError(t, dedup.MarkRead(ctx, creadas[0].ID))

	abiertas, err := dedup.ListUnread(ctx)
	require.NoError(t, err)
	assert.Empty(t, abiertas)

	nuevas, err := dedup.RaiseCriticalStockAlerts(ctx, candidato)
	require.NoError(t, err)
	assert.Len(t, nuevas, 1, "leída la anterior, el material puede alertar de nuevo")
	assert.NotEqual(t, creadas[0].ID, nuevas[0].ID)
}

// Banda de severidad: agotado o bajo la mitad del umbral → ERROR; el resto
// de la banda crítica → WARNING.
func TestRaiseCriticalStockAlerts_Severidad(t *testing.T) {
	store := memory.NewStore()
	dedup := usecase.NewAlertDeduplicatorUseCase(memory.NewAlertRepository(store), decimal.NewFromInt(10))

	creadas, err := dedup.RaiseCriticalStockAlerts(context.Background(), []*entity.Material{
		materialConStock("SEV-000", 0), // agotado
		materialConStock("SEV-004", 4), // bajo la mitad (5)
		materialConStock("SEV-007", 7), // en banda crítica
	})
	require.NoError(t, err)
	require.Len(t, creadas, 3)

	porMaterial := make(map[string]string, len(creadas))
	for _, a := range creadas {
		porMaterial[a.MaterialID] = a.Severity
		assert.Equal(t, entity.AlertKindCriticalStock, a.Kind)
		assert.False(t, a.IsRead)
	}
	assert.Equal(t, entity.AlertSeverityError, porMaterial["SEV-000"])
	assert.Equal(t, entity.AlertSeverityError, porMaterial["SEV-004"])
	assert.Equal(t, entity.AlertSeverityWarning, porMaterial["SEV-007"])
}

// El barrido completo: FindCritical + Raise sobre el mismo store.
func TestSweeper_RunOnce(t *testing.T) {
	store := memory.NewStore()
	materialRepo := memory.NewMaterialRepository(store)
	threshold := decimal.NewFromInt(10)

	require.NoError(t, materialRepo.Create(materialConStock("SWP-001", 3)))
	require.NoError(t, materialRepo.Create(materialConStock("SWP-002", 42)))

	auditor := usecase.NewStockAuditorUseCase(materialRepo, memory.NewMovementRepository(store), threshold)
	dedup := usecase.NewAlertDeduplicatorUseCase(memory.NewAlertRepository(store), threshold)
	sweeper := usecase.NewCriticalStockSweeper(auditor, dedup, 0, logger.New(logger.Config{Level: "error"}))

	ctx := context.Background()

	alertas, err := sweeper.RunOnce(ctx)
	require.NoError(t, err)
	require.Len(t, alertas, 1, "solo el material bajo umbral debe alertar")
	assert.Equal(t, "SWP-001", alertas[0].MaterialID)

	// Segundo barrido: nada nuevo.
	alertas, err = sweeper.RunOnce(ctx)
	require.NoError(t, err)
	assert.Empty(t, alertas)
}
