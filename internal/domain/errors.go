package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas salvo decimal).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrDuplicateCode     = errors.New("código interno ya registrado")
	ErrInvalidQuantity   = errors.New("cantidad inválida")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrExceedsPending    = errors.New("cantidad excede el pendiente de la asignación")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrBusy              = errors.New("recurso ocupado, reintentar")
)

// StockError detalla un rechazo por stock insuficiente: material, cantidad
// solicitada y stock disponible al momento de la validación. Nunca se recorta
// la cantidad en silencio; el caller recibe el contexto completo para armar
// un mensaje accionable.
type StockError struct {
	MaterialID string
	Requested  decimal.Decimal
	Available  decimal.Decimal
}

func (e *StockError) Error() string {
	return fmt.Sprintf("stock insuficiente para material %s: solicitado %s, disponible %s",
		e.MaterialID, e.Requested, e.Available)
}

// Unwrap permite errors.Is(err, ErrInsufficientStock).
func (e *StockError) Unwrap() error { return ErrInsufficientStock }

// PendingError detalla un rechazo por exceder el pendiente de una asignación
// (consumo o devolución mayor al saldo asignado aún no consumido/devuelto).
type PendingError struct {
	MaterialID string
	ProjectID  string
	StageID    string
	Requested  decimal.Decimal
	Pending    decimal.Decimal
}

func (e *PendingError) Error() string {
	return fmt.Sprintf("cantidad excede el pendiente de la asignación (material %s, proyecto %s): solicitado %s, pendiente %s",
		e.MaterialID, e.ProjectID, e.Requested, e.Pending)
}

// Unwrap permite errors.Is(err, ErrExceedsPending).
func (e *PendingError) Unwrap() error { return ErrExceedsPending }
