package usecase

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// AllocationTrackerUseCase es la proyección de lectura de asignaciones.
// Existe como contrato nombrado para que los consumidores nunca tengan que
// reconstruir pendientes recorriendo movimientos crudos. No escribe nada:
// los contadores los mantiene transaccionalmente el motor de movimientos.
type AllocationTrackerUseCase struct {
	allocRepo repository.AllocationRepository
}

// NewAllocationTrackerUseCase construye el caso de uso.
func NewAllocationTrackerUseCase(allocRepo repository.AllocationRepository) *AllocationTrackerUseCase {
	return &AllocationTrackerUseCase{allocRepo: allocRepo}
}

// Get obtiene la asignación del trío (material, proyecto, etapa). StageID
// vacío busca la asignación a nivel proyecto. Retorna domain.ErrNotFound si
// no existe.
func (uc *AllocationTrackerUseCase) Get(ctx context.Context, materialID, projectID, stageID string) (*entity.Allocation, error) {
	if materialID == "" || projectID == "" {
		return nil, domain.ErrInvalidInput
	}
	a, err := uc.allocRepo.Get(materialID, projectID, stageID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

// ListByProject lista todas las asignaciones de un proyecto.
func (uc *AllocationTrackerUseCase) ListByProject(ctx context.Context, projectID string) ([]*entity.Allocation, error) {
	if projectID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.allocRepo.ListByProject(projectID)
}

// ListByMaterial lista todas las asignaciones de un material.
func (uc *AllocationTrackerUseCase) ListByMaterial(ctx context.Context, materialID string) ([]*entity.Allocation, error) {
	if materialID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.allocRepo.ListByMaterial(materialID)
}
