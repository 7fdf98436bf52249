package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
)

// auditorFixture arma el auditor sobre el storage en memoria con umbral 10.
type auditorFixture struct {
	store        *memory.Store
	materialRepo *memory.MaterialRepo
	movRepo      *memory.MovementRepo
	auditor      *usecase.StockAuditorUseCase
}

func newAuditorFixture() *auditorFixture {
	store := memory.NewStore()
	materialRepo := memory.NewMaterialRepository(store)
	movRepo := memory.NewMovementRepository(store)
	return &auditorFixture{
		store:        store,
		materialRepo: materialRepo,
		movRepo:      movRepo,
		auditor:      usecase.NewStockAuditorUseCase(materialRepo, movRepo, decimal.NewFromInt(10)),
	}
}

// seedMaterial inserta un material con el stock cacheado indicado, sin pasar
// por el motor de movimientos.
func (f *auditorFixture) seedMaterial(t *testing.T, code string, stock int64) *entity.Material {
	t.Helper()
	now := time.Now()
	m := &entity.Material{
		ID:            code + "-id",
		InternalCode:  code,
		Name:          "Material " + code,
		Category:      entity.CategoryMaterial,
		UnitOfMeasure: entity.UnitUnit,
		CurrentStock:  decimal.NewFromInt(stock),
		Status:        entity.MaterialStatusAvailable,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, f.materialRepo.Create(m))
	return m
}

// seedMovement inserta un movimiento directo en el libro.
func (f *auditorFixture) seedMovement(t *testing.T, materialID, kind string, quantity int64, occurredOn time.Time) {
	t.Helper()
	require.NoError(t, f.movRepo.Create(&entity.Movement{
		ID:         materialID + "-" + kind + "-" + occurredOn.Format("20060102150405.000000000"),
		MaterialID: materialID,
		Kind:       kind,
		Quantity:   decimal.NewFromInt(quantity),
		OccurredOn: occurredOn,
		CreatedAt:  time.Now(),
	}))
}

// Reconstrucción sin deriva: el repliegue coincide con el stock cacheado.
func TestReconstructBalance_SinDeriva(t *testing.T) {
	f := newAuditorFixture()
	m := f.seedMaterial(t, "AUD-001", 65)
	base := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)

	f.seedMovement(t, m.ID, entity.MovementKindEntry, 100, base)
	f.seedMovement(t, m.ID, entity.MovementKindExit, 40, base.Add(time.Hour))
	f.seedMovement(t, m.ID, entity.MovementKindConsumption, 30, base.Add(2*time.Hour))
	f.seedMovement(t, m.ID, entity.MovementKindReturn, 5, base.Add(3*time.Hour))

	balance, err := f.auditor.ReconstructBalance(context.Background(), m.ID)
	require.NoError(t, err)

	assert.True(t, balance.Reconstructed.Equal(decimal.NewFromInt(65)),
		"100-40+0+5 = 65 (el consumo no afecta bodega)")
	assert.False(t, balance.Drift)
	assert.Equal(t, 4, balance.MovementCount)
}

// Deriva detectada: el stock cacheado fue mutado fuera de banda. El auditor
// la reporta como dato, no como error, y no corrige nada.
func TestReconstructBalance_DetectaDeriva(t *testing.T) {
	f := newAuditorFixture()
	m := f.seedMaterial(t, "AUD-002", 100)
	f.seedMovement(t, m.ID, entity.MovementKindEntry, 80, time.Now())

	balance, err := f.auditor.ReconstructBalance(context.Background(), m.ID)
	require.NoError(t, err, "la deriva no es un error de la operación")

	assert.True(t, balance.Drift)
	assert.True(t, balance.Reconstructed.Equal(decimal.NewFromInt(80)))
	assert.True(t, balance.Cached.Equal(decimal.NewFromInt(100)))

	// El stock cacheado queda tal cual: reportar no es reparar.
	got, err := f.materialRepo.GetByID(m.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentStock.Equal(decimal.NewFromInt(100)))
}

func TestReconstructBalance_SinMovimientos_Cero(t *testing.T) {
	f := newAuditorFixture()
	m := f.seedMaterial(t, "AUD-003", 0)

	balance, err := f.auditor.ReconstructBalance(context.Background(), m.ID)
	require.NoError(t, err)
	assert.True(t, balance.Reconstructed.IsZero())
	assert.False(t, balance.Drift)
	assert.Zero(t, balance.MovementCount)
}

func TestReconstructBalance_MaterialInexistente(t *testing.T) {
	f := newAuditorFixture()
	_, err := f.auditor.ReconstructBalance(context.Background(), "nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Caso del barrido: materiales con stock 5, 9, 10 y 50 ante umbral 10 →
// solo 5 y 9, en orden ascendente de stock. El límite es estrictamente menor.
func TestFindCritical_UmbralEstrictoYOrden(t *testing.T) {
	f := newAuditorFixture()
	f.seedMaterial(t, "CRI-050", 50)
	f.seedMaterial(t, "CRI-009", 9)
	f.seedMaterial(t, "CRI-010", 10)
	f.seedMaterial(t, "CRI-005", 5)

	critical, err := f.auditor.FindCritical(context.Background(), decimal.NewFromInt(10))
	require.NoError(t, err)

	require.Len(t, critical, 2, "10 no es crítico: el umbral es estricto")
	assert.Equal(t, "CRI-005", critical[0].InternalCode, "el más escaso primero")
	assert.Equal(t, "CRI-009", critical[1].InternalCode)
}

// Umbral en cero usa el configurado.
func TestFindCritical_UmbralPorDefecto(t *testing.T) {
	f := newAuditorFixture()
	f.seedMaterial(t, "CRI-003", 3)
	f.seedMaterial(t, "CRI-030", 30)

	critical, err := f.auditor.FindCritical(context.Background(), decimal.Zero)
	require.NoError(t, err)

	require.Len(t, critical, 1)
	assert.Equal(t, "CRI-003", critical[0].InternalCode)
	assert.True(t, f.auditor.DefaultThreshold().Equal(decimal.NewFromInt(10)))
}

// Línea de tiempo: orden de auditoría, filtro por proyecto y rango de fechas.
func TestTimeline_FiltroPorProyectoYFechas(t *testing.T) {
	f := newAuditorFixture()
	m := f.seedMaterial(t, "TIM-001", 0)
	base := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	f.movRepo.Create(&entity.Movement{
		ID: "mov-1", MaterialID: m.ID, Kind: entity.MovementKindEntry,
		Quantity: decimal.NewFromInt(10), OccurredOn: base, CreatedAt: base,
	})
	f.movRepo.Create(&entity.Movement{
		ID: "mov-2", MaterialID: m.ID, Kind: entity.MovementKindExit,
		Quantity: decimal.NewFromInt(4), DestinationProjectID: "PRJ-A",
		OccurredOn: base.AddDate(0, 0, 1), CreatedAt: base.AddDate(0, 0, 1),
	})
	f.movRepo.Create(&entity.Movement{
		ID: "mov-3", MaterialID: m.ID, Kind: entity.MovementKindConsumption,
		Quantity: decimal.NewFromInt(2), OriginProjectID: "PRJ-A",
		OccurredOn: base.AddDate(0, 0, 2), CreatedAt: base.AddDate(0, 0, 2),
	})
	f.movRepo.Create(&entity.Movement{
		ID: "mov-4", MaterialID: m.ID, Kind: entity.MovementKindExit,
		Quantity: decimal.NewFromInt(1), DestinationProjectID: "PRJ-B",
		OccurredOn: base.AddDate(0, 0, 3), CreatedAt: base.AddDate(0, 0, 3),
	})

	ctx := context.Background()

	// Por proyecto: origen o destino cuentan.
	porProyecto, err := f.auditor.Timeline(ctx, m.ID, repository.MovementFilter{ProjectID: "PRJ-A"})
	require.NoError(t, err)
	require.Len(t, porProyecto, 2)
	assert.Equal(t, "mov-2", porProyecto[0].ID)
	assert.Equal(t, "mov-3", porProyecto[1].ID)

	// Por rango de fechas (inclusivo en ambos extremos).
	desde := base.AddDate(0, 0, 1)
	hasta := base.AddDate(0, 0, 2)
	porFechas, err := f.auditor.Timeline(ctx, m.ID, repository.MovementFilter{From: &desde, To: &hasta})
	require.NoError(t, err)
	require.Len(t, porFechas, 2)
	assert.Equal(t, "mov-2", porFechas[0].ID)

	// Paginación sobre el orden de auditoría.
	pagina, err := f.auditor.Timeline(ctx, m.ID, repository.MovementFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, pagina, 2)
	assert.Equal(t, "mov-3", pagina[0].ID)
	assert.Equal(t, "mov-4", pagina[1].ID)
}

func TestTimeline_MaterialInexistente(t *testing.T) {
	f := newAuditorFixture()
	_, err := f.auditor.Timeline(context.Background(), "nada", repository.MovementFilter{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
