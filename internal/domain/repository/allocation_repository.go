package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// AllocationRepository define el puerto de las asignaciones por
// (material, proyecto, etapa). Los contadores se escriben únicamente dentro
// de la transacción del motor de movimientos; el resto del sistema solo lee.
type AllocationRepository interface {
	// Get retorna la asignación del trío, (nil, nil) si no existe. StageID
	// vacío significa asignación a nivel proyecto.
	Get(materialID, projectID, stageID string) (*entity.Allocation, error)
	// GetForUpdate igual que Get pero bloqueando la fila (SELECT FOR UPDATE).
	GetForUpdate(materialID, projectID, stageID string) (*entity.Allocation, error)
	// Upsert inserta o actualiza contadores y estado por ID.
	Upsert(a *entity.Allocation) error
	ListByProject(projectID string) ([]*entity.Allocation, error)
	ListByMaterial(materialID string) ([]*entity.Allocation, error)
}
