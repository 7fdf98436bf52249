package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, material_id, kind, quantity, occurred_on, responsible,
	origin_project_id, destination_project_id, stage_id, reference_document,
	unit_cost, return_reason, material_condition, source_movement_id, created_at`

// MovementRepo implementación del puerto MovementRepository sobre PostgreSQL
// (usable con pool o tx). El libro es append-only: no hay UPDATE ni DELETE
// en este adaptador.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento del libro.
func (r *MovementRepo) Create(m *entity.Movement) error {
	query := `
		INSERT INTO movements (id, material_id, kind, quantity, occurred_on, responsible,
			origin_project_id, destination_project_id, stage_id, reference_document,
			unit_cost, return_reason, material_condition, source_movement_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.MaterialID, m.Kind, m.Quantity, m.OccurredOn, nullable(m.Responsible),
		nullable(m.OriginProjectID), nullable(m.DestinationProjectID), nullable(m.StageID),
		nullable(m.ReferenceDocument), m.UnitCost, nullable(m.ReturnReason),
		nullable(m.MaterialCondition), nullable(m.SourceMovementID), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID. Retorna (nil, nil) si no existe.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	var m entity.Movement
	if err := scanMovement(r.q.QueryRow(context.Background(), query, id), &m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// ListByMaterial lista movimientos de un material en orden de auditoría:
// (occurred_on, created_at), empates por la secuencia de inserción (seq).
func (r *MovementRepo) ListByMaterial(materialID string, filter repository.MovementFilter) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE material_id = $1`
	args := []any{materialID}
	pos := 2
	if filter.ProjectID != "" {
		query += fmt.Sprintf(" AND (origin_project_id = $%d OR destination_project_id = $%d)", pos, pos)
		args = append(args, filter.ProjectID)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND occurred_on >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND occurred_on <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	query += " ORDER BY occurred_on, created_at, seq"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", pos, pos+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := scanMovement(rows, &m); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row, m *entity.Movement) error {
	var responsible, origin, destination, stage, refDoc, reason, condition, source *string
	err := row.Scan(
		&m.ID, &m.MaterialID, &m.Kind, &m.Quantity, &m.OccurredOn, &responsible,
		&origin, &destination, &stage, &refDoc,
		&m.UnitCost, &reason, &condition, &source, &m.CreatedAt,
	)
	if err != nil {
		return err
	}
	m.Responsible = deref(responsible)
	m.OriginProjectID = deref(origin)
	m.DestinationProjectID = deref(destination)
	m.StageID = deref(stage)
	m.ReferenceDocument = deref(refDoc)
	m.ReturnReason = deref(reason)
	m.MaterialCondition = deref(condition)
	m.SourceMovementID = deref(source)
	return nil
}

// nullable convierte string vacío a NULL para columnas opcionales.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
