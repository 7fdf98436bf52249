package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// AuditHandler expone el lado de lectura del libro: reconstrucción de
// saldos, stock crítico y línea de tiempo de movimientos.
type AuditHandler struct {
	uc *usecase.StockAuditorUseCase
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *usecase.StockAuditorUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// ReconstructBalance godoc
// @Summary      Reconstruir saldo desde el libro
// @Description  Repliega todos los movimientos del material y lo compara con
//
//	el stock cacheado. drift=true señala mutación fuera de banda o bug.
//
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        materialId  path  string  true  "ID del material"
// @Success      200  {object}  dto.ReconstructedBalanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/audit/balance/{materialId} [get]
func (h *AuditHandler) ReconstructBalance(c *fiber.Ctx) error {
	rb, err := h.uc.ReconstructBalance(c.Context(), c.Params("materialId"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "material no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ReconstructedBalanceResponse{
		MaterialID:    rb.MaterialID,
		Reconstructed: rb.Reconstructed,
		Cached:        rb.Cached,
		Drift:         rb.Drift,
		MovementCount: rb.MovementCount,
	})
}

// FindCritical godoc
// @Summary      Materiales bajo stock crítico
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        threshold  query  number  false  "Umbral; vacío usa el configurado"
// @Success      200  {array}  dto.MaterialResponse
// @Router       /api/audit/critical [get]
func (h *AuditHandler) FindCritical(c *fiber.Ctx) error {
	threshold := decimal.Zero
	if raw := c.Query("threshold"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil || parsed.Sign() <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "threshold debe ser un número positivo"})
		}
		threshold = parsed
	}

	list, err := h.uc.FindCritical(c.Context(), threshold)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.NewMaterialResponse(m))
	}
	effective := threshold
	if effective.Sign() <= 0 {
		effective = h.uc.DefaultThreshold()
	}
	return c.JSON(fiber.Map{"total": len(out), "threshold": effective, "materials": out})
}

// Timeline godoc
// @Summary      Línea de tiempo de movimientos de un material
// @Description  Orden de auditoría (occurred_on, created_at); con fechas
//
//	retroactivas puede diferir del orden de registro, intencionalmente.
//
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        material_id  query  string  true   "ID del material"
// @Param        project_id   query  string  false  "Filtrar a un proyecto"
// @Param        from         query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to           query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {array}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *AuditHandler) Timeline(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	page.DefaultPage()

	filter := repository.MovementFilter{
		ProjectID: c.Query("project_id"),
		Limit:     page.Limit,
		Offset:    page.Offset,
	}
	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "from debe ser YYYY-MM-DD"})
		}
		filter.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "to debe ser YYYY-MM-DD"})
		}
		filter.To = &to
	}

	list, err := h.uc.Timeline(c.Context(), c.Query("material_id"), filter)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "se requiere material_id"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "material no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.NewMovementResponse(m))
	}
	return c.JSON(fiber.Map{
		"total":     len(out),
		"movements": out,
		"page":      dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}
