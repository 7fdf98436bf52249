package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain"
)

// MovementHandler maneja el registro de movimientos del libro de almacén.
type MovementHandler struct {
	uc *ledger.ApplyMovementUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *ledger.ApplyMovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Apply godoc
// @Summary      Registrar movimiento de almacén
// @Description  Aplica ENTRY, EXIT, CONSUMPTION, RETURN o ajustes de forma
//
//	atómica. Los rechazos incluyen cantidades solicitada y disponible/pendiente.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApplyMovementRequest  true  "material_id, kind, quantity y campos por tipo"
// @Success      201  {object}  dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *MovementHandler) Apply(c *fiber.Ctx) error {
	var in dto.ApplyMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	input := ledger.MovementInput{
		MaterialID:           in.MaterialID,
		Kind:                 in.Kind,
		Quantity:             in.Quantity,
		Responsible:          in.Responsible,
		OriginProjectID:      in.OriginProjectID,
		DestinationProjectID: in.DestinationProjectID,
		StageID:              in.StageID,
		ReferenceDocument:    in.ReferenceDocument,
		UnitCost:             in.UnitCost,
		ReturnReason:         in.ReturnReason,
		MaterialCondition:    in.MaterialCondition,
		SourceMovementID:     in.SourceMovementID,
	}
	if input.Responsible == "" {
		input.Responsible = GetUserID(c)
	}
	if in.OccurredOn != "" {
		occurredOn, err := time.Parse("2006-01-02", in.OccurredOn)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "occurred_on debe ser YYYY-MM-DD"})
		}
		input.OccurredOn = occurredOn
	}

	mov, err := h.uc.Apply(c.Context(), input)
	if err != nil {
		return movementError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewMovementResponse(mov))
}

// movementError mapea errores del motor de movimientos a respuestas HTTP con
// contexto accionable (nunca se recorta una cantidad en silencio).
func movementError(c *fiber.Ctx, err error) error {
	var stockErr *domain.StockError
	if errors.As(err, &stockErr) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: "stock insuficiente",
			Details: map[string]any{
				"material_id": stockErr.MaterialID,
				"requested":   stockErr.Requested,
				"available":   stockErr.Available,
			},
		})
	}
	var pendingErr *domain.PendingError
	if errors.As(err, &pendingErr) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "EXCEEDS_PENDING",
			Message: "cantidad excede el pendiente de la asignación",
			Details: map[string]any{
				"material_id": pendingErr.MaterialID,
				"project_id":  pendingErr.ProjectID,
				"stage_id":    pendingErr.StageID,
				"requested":   pendingErr.Requested,
				"pending":     pendingErr.Pending,
			},
		})
	}
	if errors.Is(err, domain.ErrInvalidQuantity) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "la cantidad debe ser mayor que cero"})
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos para el tipo de movimiento"})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "material o asignación no encontrada"})
	}
	if errors.Is(err, domain.ErrBusy) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "BUSY", Message: "conflicto de concurrencia, reintentar"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
