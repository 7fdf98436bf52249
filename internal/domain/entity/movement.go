package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de almacén.
const (
	MovementKindEntry       = "ENTRY"           // entrada a bodega
	MovementKindExit        = "EXIT"            // salida hacia proyecto/etapa
	MovementKindConsumption = "CONSUMPTION"     // consumo en obra (no toca stock)
	MovementKindReturn      = "RETURN"          // devolución física a bodega
	MovementKindAdjustPos   = "ADJUSTMENT_POS"  // ajuste por inventario físico (+)
	MovementKindAdjustNeg   = "ADJUSTMENT_NEG"  // ajuste por inventario físico (-)
)

// Movement es un hecho inmutable del libro: una vez persistido nunca se edita
// ni se borra; las correcciones se hacen con movimientos compensatorios
// (ajustes), jamás reescribiendo la historia.
//
// OccurredOn es la fecha en que el hecho ocurrió (puede ser retroactiva);
// CreatedAt es cuándo se registró. La auditoría ordena por (OccurredOn,
// CreatedAt), que puede diferir del orden de aplicación cuando hay
// movimientos retroactivos; eso es intencional.
type Movement struct {
	ID                   string
	MaterialID           string
	Kind                 string
	Quantity             decimal.Decimal // invariante: > 0
	OccurredOn           time.Time
	Responsible          string
	OriginProjectID      string // opcional (EXIT/transferencias)
	DestinationProjectID string // requerido en EXIT
	StageID              string // opcional
	ReferenceDocument    string
	UnitCost             *decimal.Decimal // opcional
	ReturnReason         string           // solo RETURN
	MaterialCondition    string           // solo RETURN
	SourceMovementID     string           // opcional: RETURN apunta al EXIT original
	CreatedAt            time.Time
}

// ValidMovementKind verifica que el tipo sea uno de los soportados.
func ValidMovementKind(k string) bool {
	switch k {
	case MovementKindEntry, MovementKindExit, MovementKindConsumption,
		MovementKindReturn, MovementKindAdjustPos, MovementKindAdjustNeg:
		return true
	}
	return false
}
