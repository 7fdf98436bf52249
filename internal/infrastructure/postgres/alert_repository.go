package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo implementación del puerto AlertRepository sobre PostgreSQL.
// La unicidad "una alerta abierta por (material, tipo)" la garantiza un
// índice único parcial (WHERE NOT is_read); el insert usa ON CONFLICT DO
// NOTHING y el conflicto se lee como "ya levantada".
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

// InsertUnlessOpen inserta la alerta salvo que ya exista una abierta para el
// mismo (material, tipo). Retorna false si hubo conflicto (sin error):
// patrón de insert idempotente, seguro bajo barridos concurrentes.
func (r *AlertRepo) InsertUnlessOpen(a *entity.AlertRecord) (bool, error) {
	query := `
		INSERT INTO alert_records (id, material_id, kind, severity, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (material_id, kind) WHERE NOT is_read DO NOTHING`
	tag, err := r.q.Exec(context.Background(), query,
		a.ID, a.MaterialID, a.Kind, a.Severity, a.IsRead, a.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert alert: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListUnread lista las alertas abiertas, más recientes primero.
func (r *AlertRepo) ListUnread() ([]*entity.AlertRecord, error) {
	query := `
		SELECT id, material_id, kind, severity, is_read, created_at
		FROM alert_records WHERE NOT is_read
		ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list unread alerts: %w", err)
	}
	defer rows.Close()

	var list []*entity.AlertRecord
	for rows.Next() {
		var a entity.AlertRecord
		if err := rows.Scan(&a.ID, &a.MaterialID, &a.Kind, &a.Severity, &a.IsRead, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// MarkRead marca una alerta como leída.
func (r *AlertRepo) MarkRead(id string) error {
	query := `UPDATE alert_records SET is_read = TRUE WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("mark alert read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
