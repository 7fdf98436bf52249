package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.AllocationRepository = (*AllocationRepo)(nil)

const allocationColumns = `id, material_id, project_id, stage_id,
	quantity_allocated, quantity_consumed, quantity_returned, status, created_at, updated_at`

// AllocationRepo implementación del puerto AllocationRepository sobre
// PostgreSQL (usable con pool o tx). stage_id usa cadena vacía en vez de
// NULL para que el trío participe del índice único.
type AllocationRepo struct {
	q Querier
}

// NewAllocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAllocationRepository(q Querier) *AllocationRepo {
	return &AllocationRepo{q: q}
}

// Get obtiene la asignación del trío. Retorna (nil, nil) si no existe.
func (r *AllocationRepo) Get(materialID, projectID, stageID string) (*entity.Allocation, error) {
	query := `SELECT ` + allocationColumns + `
		FROM allocations WHERE material_id = $1 AND project_id = $2 AND stage_id = $3`
	return r.scanOne(r.q.QueryRow(context.Background(), query, materialID, projectID, stageID), "get allocation")
}

// GetForUpdate obtiene la asignación del trío bloqueando la fila.
func (r *AllocationRepo) GetForUpdate(materialID, projectID, stageID string) (*entity.Allocation, error) {
	query := `SELECT ` + allocationColumns + `
		FROM allocations WHERE material_id = $1 AND project_id = $2 AND stage_id = $3
		FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, materialID, projectID, stageID), "get allocation for update")
}

// Upsert inserta la asignación o actualiza contadores y estado por ID.
func (r *AllocationRepo) Upsert(a *entity.Allocation) error {
	query := `
		INSERT INTO allocations (` + allocationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id)
		DO UPDATE SET quantity_allocated = EXCLUDED.quantity_allocated,
			quantity_consumed = EXCLUDED.quantity_consumed,
			quantity_returned = EXCLUDED.quantity_returned,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.MaterialID, a.ProjectID, a.StageID,
		a.QuantityAllocated, a.QuantityConsumed, a.QuantityReturned,
		a.Status, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert allocation: %w", err)
	}
	return nil
}

// ListByProject lista asignaciones de un proyecto ordenadas por material.
func (r *AllocationRepo) ListByProject(projectID string) ([]*entity.Allocation, error) {
	query := `SELECT ` + allocationColumns + `
		FROM allocations WHERE project_id = $1 ORDER BY material_id, stage_id`
	rows, err := r.q.Query(context.Background(), query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list allocations by project: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListByMaterial lista asignaciones de un material ordenadas por proyecto.
func (r *AllocationRepo) ListByMaterial(materialID string) ([]*entity.Allocation, error) {
	query := `SELECT ` + allocationColumns + `
		FROM allocations WHERE material_id = $1 ORDER BY project_id, stage_id`
	rows, err := r.q.Query(context.Background(), query, materialID)
	if err != nil {
		return nil, fmt.Errorf("list allocations by material: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *AllocationRepo) scanOne(row pgx.Row, op string) (*entity.Allocation, error) {
	var a entity.Allocation
	err := row.Scan(
		&a.ID, &a.MaterialID, &a.ProjectID, &a.StageID,
		&a.QuantityAllocated, &a.QuantityConsumed, &a.QuantityReturned,
		&a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &a, nil
}

func (r *AllocationRepo) scanMany(rows pgx.Rows) ([]*entity.Allocation, error) {
	var list []*entity.Allocation
	for rows.Next() {
		var a entity.Allocation
		if err := rows.Scan(
			&a.ID, &a.MaterialID, &a.ProjectID, &a.StageID,
			&a.QuantityAllocated, &a.QuantityConsumed, &a.QuantityReturned,
			&a.Status, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan allocation: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
