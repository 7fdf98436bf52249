package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

const materialColumns = `id, internal_code, name, category, subcategory, unit_of_measure,
	current_stock, allocated_project_id, status, location, created_at, updated_at`

// MaterialRepo implementación del puerto MaterialRepository sobre PostgreSQL
// (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

// Create persiste un material nuevo. Traduce la violación del índice único
// de internal_code a domain.ErrDuplicateCode.
func (r *MaterialRepo) Create(m *entity.Material) error {
	query := `
		INSERT INTO materials (` + materialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	allocatedProject := (*string)(nil)
	if m.AllocatedProjectID != "" {
		allocatedProject = &m.AllocatedProjectID
	}
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.InternalCode, m.Name, m.Category, m.Subcategory, m.UnitOfMeasure,
		m.CurrentStock, allocatedProject, m.Status, m.Location, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

// GetByID obtiene un material por ID. Retorna (nil, nil) si no existe.
func (r *MaterialRepo) GetByID(id string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get material")
}

// GetByInternalCode obtiene un material por código interno.
func (r *MaterialRepo) GetByInternalCode(code string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE internal_code = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, code), "get material by code")
}

// GetForUpdate obtiene el material y bloquea la fila (SELECT FOR UPDATE).
// Es el punto de serialización por material del motor de movimientos.
func (r *MaterialRepo) GetForUpdate(id string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get material for update")
}

// UpdateStock escribe el saldo cacheado. Solo el motor de movimientos lo
// invoca, dentro de su transacción.
func (r *MaterialRepo) UpdateStock(id string, stock decimal.Decimal, updatedAt time.Time) error {
	query := `UPDATE materials SET current_stock = $2, updated_at = $3 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, stock, updatedAt)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus cambia el estado del material sin tocar el stock.
func (r *MaterialRepo) UpdateStatus(id string, status string, updatedAt time.Time) error {
	query := `UPDATE materials SET status = $2, updated_at = $3 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status, updatedAt)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista materiales según filtro, ordenados por código interno.
func (r *MaterialRepo) List(filter repository.MaterialFilter) ([]*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, filter.Status)
		pos++
	}
	if filter.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", pos)
		args = append(args, filter.Category)
		pos++
	}
	query += " ORDER BY internal_code"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", pos, pos+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// FindBelowStock retorna materiales con stock bajo el umbral, ascendente
// por stock.
func (r *MaterialRepo) FindBelowStock(threshold decimal.Decimal) ([]*entity.Material, error) {
	query := `SELECT ` + materialColumns + `
		FROM materials WHERE current_stock < $1
		ORDER BY current_stock ASC, internal_code`
	rows, err := r.q.Query(context.Background(), query, threshold)
	if err != nil {
		return nil, fmt.Errorf("find below stock: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *MaterialRepo) scanOne(row pgx.Row, op string) (*entity.Material, error) {
	var m entity.Material
	var allocatedProject *string
	err := row.Scan(
		&m.ID, &m.InternalCode, &m.Name, &m.Category, &m.Subcategory, &m.UnitOfMeasure,
		&m.CurrentStock, &allocatedProject, &m.Status, &m.Location, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if allocatedProject != nil {
		m.AllocatedProjectID = *allocatedProject
	}
	return &m, nil
}

func (r *MaterialRepo) scanMany(rows pgx.Rows) ([]*entity.Material, error) {
	var list []*entity.Material
	for rows.Next() {
		var m entity.Material
		var allocatedProject *string
		if err := rows.Scan(
			&m.ID, &m.InternalCode, &m.Name, &m.Category, &m.Subcategory, &m.UnitOfMeasure,
			&m.CurrentStock, &allocatedProject, &m.Status, &m.Location, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		if allocatedProject != nil {
			m.AllocatedProjectID = *allocatedProject
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
