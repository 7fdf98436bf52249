package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ApplyMovementUseCase es el único camino de escritura del libro de almacén.
// Registra movimientos (ENTRY, EXIT, CONSUMPTION, RETURN, ajustes) de forma
// transaccional con bloqueo de fila sobre el material (SELECT FOR UPDATE):
// el movimiento, el stock cacheado y los contadores de asignación se
// persisten en la misma transacción o no se persiste nada.
type ApplyMovementUseCase struct {
	txRunner TxRunner
	retries  int
}

// NewApplyMovementUseCase construye el caso de uso. retries acota los
// reintentos ante conflictos de serialización antes de reportar ErrBusy.
func NewApplyMovementUseCase(txRunner TxRunner, retries int) *ApplyMovementUseCase {
	if retries < 0 {
		retries = 0
	}
	return &ApplyMovementUseCase{txRunner: txRunner, retries: retries}
}

// MovementInput entrada para registrar un movimiento.
// Para EXIT: DestinationProjectID obligatorio, StageID opcional.
// Para CONSUMPTION/RETURN: OriginProjectID obligatorio (el trío de la
// asignación), StageID opcional. ReturnReason/MaterialCondition solo RETURN.
// OccurredOn en cero usa la fecha actual; se admiten fechas retroactivas.
type MovementInput struct {
	MaterialID           string
	Kind                 string
	Quantity             decimal.Decimal
	OccurredOn           time.Time
	Responsible          string
	OriginProjectID      string
	DestinationProjectID string
	StageID              string
	ReferenceDocument    string
	UnitCost             *decimal.Decimal
	ReturnReason         string
	MaterialCondition    string
	SourceMovementID     string
}

// Apply valida y aplica el movimiento en una transacción atómica. Toda
// validación se resuelve antes de cualquier escritura; no hay aplicaciones
// parciales. Ante conflicto de serialización reintenta la transacción
// completa hasta agotar los reintentos y entonces retorna ErrBusy.
func (uc *ApplyMovementUseCase) Apply(ctx context.Context, input MovementInput) (*entity.Movement, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var applied *entity.Movement
	var err error
	for attempt := 0; attempt <= uc.retries; attempt++ {
		applied, err = uc.applyOnce(ctx, input)
		if err == nil || !errors.Is(err, domain.ErrBusy) {
			return applied, err
		}
	}
	return nil, domain.ErrBusy
}

func validateInput(input MovementInput) error {
	if input.MaterialID == "" {
		return domain.ErrInvalidInput
	}
	if !entity.ValidMovementKind(input.Kind) {
		return domain.ErrInvalidInput
	}
	if !input.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidQuantity
	}
	switch input.Kind {
	case entity.MovementKindExit:
		if input.DestinationProjectID == "" {
			return domain.ErrInvalidInput
		}
	case entity.MovementKindConsumption, entity.MovementKindReturn:
		if input.OriginProjectID == "" {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// applyOnce ejecuta una transacción completa: bloquea el material, valida por
// tipo, ajusta stock y asignación y persiste el movimiento.
func (uc *ApplyMovementUseCase) applyOnce(ctx context.Context, input MovementInput) (*entity.Movement, error) {
	now := time.Now()
	occurredOn := input.OccurredOn
	if occurredOn.IsZero() {
		occurredOn = now
	}

	var applied *entity.Movement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		materialRepo repository.MaterialRepository,
		allocRepo repository.AllocationRepository,
	) error {
		// Bloquea la fila del material: serializa los apply por material y
		// deja pasar en paralelo los de materiales distintos.
		material, err := materialRepo.GetForUpdate(input.MaterialID)
		if err != nil {
			return err
		}
		if material == nil {
			return domain.ErrNotFound
		}

		newStock := material.CurrentStock
		var alloc *entity.Allocation

		switch input.Kind {
		case entity.MovementKindEntry:
			newStock = newStock.Add(input.Quantity)

		case entity.MovementKindExit:
			if input.Quantity.GreaterThan(material.CurrentStock) {
				return &domain.StockError{
					MaterialID: material.ID,
					Requested:  input.Quantity,
					Available:  material.CurrentStock,
				}
			}
			newStock = newStock.Sub(input.Quantity)
			alloc, err = allocRepo.GetForUpdate(input.MaterialID, input.DestinationProjectID, input.StageID)
			if err != nil {
				return err
			}
			if alloc == nil {
				alloc = &entity.Allocation{
					ID:                uuid.New().String(),
					MaterialID:        input.MaterialID,
					ProjectID:         input.DestinationProjectID,
					StageID:           input.StageID,
					QuantityAllocated: input.Quantity,
					QuantityConsumed:  decimal.Zero,
					QuantityReturned:  decimal.Zero,
					CreatedAt:         now,
				}
			} else {
				// Salidas posteriores al mismo trío incrementan la asignación
				// existente en vez de crear duplicados.
				alloc.QuantityAllocated = alloc.QuantityAllocated.Add(input.Quantity)
			}

		case entity.MovementKindConsumption:
			alloc, err = allocRepo.GetForUpdate(input.MaterialID, input.OriginProjectID, input.StageID)
			if err != nil {
				return err
			}
			if alloc == nil {
				return domain.ErrNotFound
			}
			if input.Quantity.GreaterThan(alloc.QuantityPending()) {
				return &domain.PendingError{
					MaterialID: input.MaterialID,
					ProjectID:  input.OriginProjectID,
					StageID:    input.StageID,
					Requested:  input.Quantity,
					Pending:    alloc.QuantityPending(),
				}
			}
			// El consumo no toca bodega: el material salió en el EXIT.
			alloc.QuantityConsumed = alloc.QuantityConsumed.Add(input.Quantity)

		case entity.MovementKindReturn:
			alloc, err = allocRepo.GetForUpdate(input.MaterialID, input.OriginProjectID, input.StageID)
			if err != nil {
				return err
			}
			if alloc == nil {
				return domain.ErrNotFound
			}
			if input.Quantity.GreaterThan(alloc.QuantityPending()) {
				return &domain.PendingError{
					MaterialID: input.MaterialID,
					ProjectID:  input.OriginProjectID,
					StageID:    input.StageID,
					Requested:  input.Quantity,
					Pending:    alloc.QuantityPending(),
				}
			}
			alloc.QuantityReturned = alloc.QuantityReturned.Add(input.Quantity)
			// El material vuelve físicamente a bodega.
			newStock = newStock.Add(input.Quantity)

		case entity.MovementKindAdjustPos:
			newStock = newStock.Add(input.Quantity)

		case entity.MovementKindAdjustNeg:
			if input.Quantity.GreaterThan(material.CurrentStock) {
				return &domain.StockError{
					MaterialID: material.ID,
					Requested:  input.Quantity,
					Available:  material.CurrentStock,
				}
			}
			newStock = newStock.Sub(input.Quantity)
		}

		if !newStock.Equal(material.CurrentStock) {
			if err := materialRepo.UpdateStock(material.ID, newStock, now); err != nil {
				return err
			}
		}
		if alloc != nil {
			alloc.RecomputeStatus(input.Kind)
			alloc.UpdatedAt = now
			if err := allocRepo.Upsert(alloc); err != nil {
				return err
			}
		}

		mov := &entity.Movement{
			ID:                   uuid.New().String(),
			MaterialID:           input.MaterialID,
			Kind:                 input.Kind,
			Quantity:             input.Quantity,
			OccurredOn:           occurredOn,
			Responsible:          input.Responsible,
			OriginProjectID:      input.OriginProjectID,
			DestinationProjectID: input.DestinationProjectID,
			StageID:              input.StageID,
			ReferenceDocument:    input.ReferenceDocument,
			UnitCost:             input.UnitCost,
			ReturnReason:         input.ReturnReason,
			MaterialCondition:    input.MaterialCondition,
			SourceMovementID:     input.SourceMovementID,
			CreatedAt:            now,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		applied = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return applied, nil
}
