package repository

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// MovementFilter filtros de consulta de movimientos.
type MovementFilter struct {
	ProjectID string // filtra por proyecto origen o destino
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// MovementRepository define el puerto del libro de movimientos. El libro es
// append-only: no existen operaciones de actualización ni borrado.
type MovementRepository interface {
	Create(m *entity.Movement) error
	// GetByID retorna (nil, nil) si no existe.
	GetByID(id string) (*entity.Movement, error)
	// ListByMaterial lista movimientos de un material en orden de auditoría:
	// (occurred_on, created_at), empates por orden de inserción. Puede diferir
	// del orden de aplicación cuando hay movimientos retroactivos.
	ListByMaterial(materialID string, filter MovementFilter) ([]*entity.Movement, error)
}
