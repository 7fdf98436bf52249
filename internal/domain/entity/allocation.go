package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la asignación.
const (
	AllocationStatusActive   = "ACTIVE"
	AllocationStatusConsumed = "CONSUMED"
	AllocationStatusReturned = "RETURNED"
)

// Allocation es el saldo que un proyecto/etapa mantiene contra el stock de
// bodega para un material: cuánto se le entregó, cuánto consumió y cuánto
// devolvió. A lo sumo una asignación ACTIVE por (material, proyecto, etapa);
// salidas posteriores al mismo trío incrementan QuantityAllocated en vez de
// crear duplicados. Nunca se borra.
//
// Invariante: QuantityConsumed + QuantityReturned <= QuantityAllocated.
type Allocation struct {
	ID                string
	MaterialID        string
	ProjectID         string
	StageID           string // opcional; vacío = asignación a nivel proyecto
	QuantityAllocated decimal.Decimal
	QuantityConsumed  decimal.Decimal
	QuantityReturned  decimal.Decimal
	Status            string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// QuantityPending devuelve el saldo no consumido ni devuelto de la asignación.
func (a *Allocation) QuantityPending() decimal.Decimal {
	return a.QuantityAllocated.Sub(a.QuantityConsumed).Sub(a.QuantityReturned)
}

// RecomputeStatus actualiza Status según el pendiente y el tipo de movimiento
// que acaba de aplicarse. Si el pendiente llega a cero, el tipo que lo llevó
// a cero decide el estado terminal (RETURN -> RETURNED, otro -> CONSUMED).
// Un movimiento compensatorio posterior que vuelva el pendiente > 0 la reabre
// a ACTIVE.
func (a *Allocation) RecomputeStatus(lastKind string) {
	if a.QuantityPending().Sign() > 0 {
		a.Status = AllocationStatusActive
		return
	}
	if lastKind == MovementKindReturn {
		a.Status = AllocationStatusReturned
		return
	}
	a.Status = AllocationStatusConsumed
}
