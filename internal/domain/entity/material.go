package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de material.
const (
	CategoryMaterial     = "MATERIAL"
	CategoryLabor        = "LABOR"
	CategoryAsset        = "ASSET"
	CategoryIndirectCost = "INDIRECT_COST"
)

// Unidades de medida soportadas.
const (
	UnitBag        = "BAG"
	UnitCubicMeter = "CUBIC_METER"
	UnitMeter      = "METER"
	UnitKilogram   = "KILOGRAM"
	UnitLiter      = "LITER"
	UnitUnit       = "UNIT"
	UnitOther      = "OTHER"
)

// Estados del material.
const (
	MaterialStatusAvailable   = "AVAILABLE"
	MaterialStatusInUse       = "IN_USE"
	MaterialStatusReserved    = "RESERVED"
	MaterialStatusMaintenance = "MAINTENANCE"
	MaterialStatusInactive    = "INACTIVE"
)

// Material representa un ítem almacenable o línea de servicio del almacén central.
// CurrentStock es el saldo cacheado autoritativo; solo el motor de movimientos
// lo muta (dentro de la misma transacción que persiste el movimiento).
// InternalCode es único global. Un material con historial de movimientos se
// desactiva (INACTIVE), nunca se borra.
type Material struct {
	ID                 string
	InternalCode       string // código asignado por el usuario, único
	Name               string
	Category           string
	Subcategory        string
	UnitOfMeasure      string
	CurrentStock       decimal.Decimal // invariante: >= 0
	AllocatedProjectID string          // referencia débil, opcional
	Status             string
	Location           string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ValidCategory verifica que la categoría sea una de las soportadas.
func ValidCategory(c string) bool {
	switch c {
	case CategoryMaterial, CategoryLabor, CategoryAsset, CategoryIndirectCost:
		return true
	}
	return false
}

// ValidUnit verifica que la unidad de medida sea una de las soportadas.
func ValidUnit(u string) bool {
	switch u {
	case UnitBag, UnitCubicMeter, UnitMeter, UnitKilogram, UnitLiter, UnitUnit, UnitOther:
		return true
	}
	return false
}

// ValidMaterialStatus verifica que el estado sea uno de los soportados.
func ValidMaterialStatus(s string) bool {
	switch s {
	case MaterialStatusAvailable, MaterialStatusInUse, MaterialStatusReserved,
		MaterialStatusMaintenance, MaterialStatusInactive:
		return true
	}
	return false
}
