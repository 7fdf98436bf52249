package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain"
)

// AlertHandler expone las alertas deduplicadas y el barrido bajo demanda.
// La entrega de notificaciones (sonido, toast, push) es del colaborador
// externo que consume estos endpoints.
type AlertHandler struct {
	dedup   *usecase.AlertDeduplicatorUseCase
	sweeper *usecase.CriticalStockSweeper
}

// NewAlertHandler construye el handler.
func NewAlertHandler(dedup *usecase.AlertDeduplicatorUseCase, sweeper *usecase.CriticalStockSweeper) *AlertHandler {
	return &AlertHandler{dedup: dedup, sweeper: sweeper}
}

// Sweep godoc
// @Summary      Ejecutar barrido de stock crítico
// @Description  Idempotente: materiales ya marcados no producen duplicados;
//
//	retorna solo las alertas recién creadas.
//
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AlertResponse
// @Router       /api/alerts/sweep [post]
func (h *AlertHandler) Sweep(c *fiber.Ctx) error {
	created, err := h.sweeper.RunOnce(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.AlertResponse, 0, len(created))
	for _, a := range created {
		out = append(out, dto.NewAlertResponse(a))
	}
	return c.JSON(fiber.Map{"created": len(out), "alerts": out})
}

// ListUnread godoc
// @Summary      Listar alertas no leídas
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AlertResponse
// @Router       /api/alerts/unread [get]
func (h *AlertHandler) ListUnread(c *fiber.Ctx) error {
	list, err := h.dedup.ListUnread(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.AlertResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.NewAlertResponse(a))
	}
	return c.JSON(fiber.Map{"total": len(out), "alerts": out})
}

// MarkRead godoc
// @Summary      Marcar alerta como leída
// @Tags         alerts
// @Security     Bearer
// @Param        id  path  string  true  "ID de la alerta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/alerts/{id}/read [patch]
func (h *AlertHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.dedup.MarkRead(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "alerta no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
