package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
)

func seed(t *testing.T, repo *memory.MaterialRepo, code string, stock int64) *entity.Material {
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
	require.NoError(t, repo.Create(m))
	return m
}

// Commit: las escrituras hechas dentro del callback quedan publicadas.
func TestTxRunner_CommitPublicaEscrituras(t *testing.T) {
	store := memory.NewStore()
	materialRepo := memory.NewMaterialRepository(store)
	m := seed(t, materialRepo, "TX-001", 10)

	err := memory.NewTxRunner(store).Run(context.Background(), func(
		movRepo repository.MovementRepository,
		matRepo repository.MaterialRepository,
		allocRepo repository.AllocationRepository,
	) error {
		if err := matRepo.UpdateStock(m.ID, decimal.NewFromInt(25), time.Now()); err != nil {
			return err
		}
		return movRepo.Create(&entity.Movement{
			ID: "tx-mov-1", MaterialID: m.ID, Kind: entity.MovementKindEntry,
			Quantity: decimal.NewFromInt(15), OccurredOn: time.Now(), CreatedAt: time.Now(),
		})
	})
	require.NoError(t, err)

	got, err := materialRepo.GetByID(m.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentStock.Equal(decimal.NewFromInt(25)))

	movs, err := memory.NewMovementRepository(store).ListByMaterial(m.ID, repository.MovementFilter{})
	require.NoError(t, err)
	assert.Len(t, movs, 1)
}

// Rollback: si el callback falla, ninguna escritura se publica, aunque haya
// ocurrido después de otras escrituras exitosas dentro del mismo callback.
func TestTxRunner_ErrorDescartaTodo(t *testing.T) {
	store := memory.NewStore()
	materialRepo := memory.NewMaterialRepository(store)
	m := seed(t, materialRepo, "TX-002", 10)

	fallo := errors.New("fallo simulado")
	err := memory.NewTxRunner(store).Run(context.Background(), func(
		movRepo repository.MovementRepository,
		matRepo repository.MaterialRepository,
		allocRepo repository.AllocationRepository,
	) error {
		if err := matRepo.UpdateStock(m.ID, decimal.NewFromInt(99), time.Now()); err != nil {
			return err
		}
		if err := movRepo.Create(&entity.Movement{
			ID: "tx-mov-2", MaterialID: m.ID, Kind: entity.MovementKindEntry,
			Quantity: decimal.NewFromInt(89), OccurredOn: time.Now(), CreatedAt: time.Now(),
		}); err != nil {
			return err
		}
		return fallo
	})
	require.ErrorIs(t, err, fallo)

	got, err := materialRepo.GetByID(m.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentStock.Equal(decimal.NewFromInt(10)), "el stock vuelve al valor previo")

	movs, err := memory.NewMovementRepository(store).ListByMaterial(m.ID, repository.MovementFilter{})
	require.NoError(t, err)
	assert.Empty(t, movs, "el movimiento no debe publicarse")
}

// Las entidades devueltas son copias: mutarlas no afecta el estado del store.
func TestStore_DevuelveCopias(t *testing.T) {
	store := memory.NewStore()
	materialRepo := memory.NewMaterialRepository(store)
	m := seed(t, materialRepo, "TX-003", 7)

	leido, err := materialRepo.GetByID(m.ID)
	require.NoError(t, err)
	leido.CurrentStock = decimal.NewFromInt(1000)
	leido.Name = "mutado"

	otraVez, err := materialRepo.GetByID(m.ID)
	require.NoError(t, err)
	assert.True(t, otraVez.CurrentStock.Equal(decimal.NewFromInt(7)))
	assert.Equal(t, "Material TX-003", otraVez.Name)
}

// Unicidad de código interno, igual que el índice único de PostgreSQL.
func TestMaterialRepo_CodigoDuplicado(t *testing.T) {
	store := memory.NewStore()
	materialRepo := memory.NewMaterialRepository(store)
	seed(t, materialRepo, "TX-004", 0)

	err := materialRepo.Create(&entity.Material{
		ID: "otro-id", InternalCode: "TX-004", Name: "Duplicado",
		Category: entity.CategoryMaterial, UnitOfMeasure: entity.UnitUnit,
		CurrentStock: decimal.Zero, Status: entity.MaterialStatusAvailable,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)
}

// Unicidad de alerta abierta por (material, tipo), igual que el índice único
// parcial de PostgreSQL.
func TestAlertRepo_InsertUnlessOpen(t *testing.T) {
	store := memory.NewStore()
	alertRepo := memory.NewAlertRepository(store)

	primera := &entity.AlertRecord{
		ID: "al-1", MaterialID: "mat-1", Kind: entity.AlertKindCriticalStock,
		Severity: entity.AlertSeverityWarning, CreatedAt: time.Now(),
	}
	inserted, err := alertRepo.InsertUnlessOpen(primera)
	require.NoError(t, err)
	assert.True(t, inserted)

	segunda := &entity.AlertRecord{
		ID: "al-2", MaterialID: "mat-1", Kind: entity.AlertKindCriticalStock,
		Severity: entity.AlertSeverityError, CreatedAt: time.Now(),
	}
	inserted, err = alertRepo.InsertUnlessOpen(segunda)
	require.NoError(t, err)
	assert.False(t, inserted, "con una abierta del mismo tipo no debe insertar")

	// Leída la primera, la misma dupla vuelve a ser insertable.
	require.NoError(t, alertRepo.MarkRead("al-1"))
	inserted, err = alertRepo.InsertUnlessOpen(segunda)
	require.NoError(t, err)
	assert.True(t, inserted)
}
