package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// MaterialFilter filtros de listado del catálogo.
type MaterialFilter struct {
	Status   string
	Category string
	Limit    int
	Offset   int
}

// MaterialRepository define el puerto de persistencia del catálogo de
// materiales. UpdateStock existe solo para el motor de movimientos (se invoca
// dentro de su transacción); el caso de uso de catálogo no lo expone.
type MaterialRepository interface {
	// Create persiste un material nuevo. Retorna domain.ErrDuplicateCode si
	// el código interno ya existe.
	Create(m *entity.Material) error
	// GetByID retorna (nil, nil) si no existe.
	GetByID(id string) (*entity.Material, error)
	// GetByInternalCode retorna (nil, nil) si no existe.
	GetByInternalCode(code string) (*entity.Material, error)
	// GetForUpdate bloquea la fila del material (SELECT FOR UPDATE) y la
	// retorna. Retorna (nil, nil) si no existe.
	GetForUpdate(id string) (*entity.Material, error)
	// UpdateStock escribe el saldo cacheado. Solo el motor de movimientos.
	UpdateStock(id string, stock decimal.Decimal, updatedAt time.Time) error
	// UpdateStatus cambia el estado sin efectos sobre el stock.
	UpdateStatus(id string, status string, updatedAt time.Time) error
	// List lista materiales según filtro, ordenados por código interno.
	List(filter MaterialFilter) ([]*entity.Material, error)
	// FindBelowStock retorna materiales con CurrentStock < threshold,
	// ordenados ascendentemente por stock.
	FindBelowStock(threshold decimal.Decimal) ([]*entity.Material, error)
}
