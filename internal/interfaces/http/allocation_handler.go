package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// AllocationHandler expone la proyección de lectura de asignaciones.
type AllocationHandler struct {
	uc *usecase.AllocationTrackerUseCase
}

// NewAllocationHandler construye el handler.
func NewAllocationHandler(uc *usecase.AllocationTrackerUseCase) *AllocationHandler {
	return &AllocationHandler{uc: uc}
}

// List godoc
// @Summary      Listar asignaciones por proyecto o material
// @Tags         allocations
// @Security     Bearer
// @Produce      json
// @Param        project_id   query  string  false  "Asignaciones del proyecto"
// @Param        material_id  query  string  false  "Asignaciones del material"
// @Success      200  {array}  dto.AllocationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/allocations [get]
func (h *AllocationHandler) List(c *fiber.Ctx) error {
	projectID := c.Query("project_id")
	materialID := c.Query("material_id")

	var list []*entity.Allocation
	var err error
	switch {
	case projectID != "":
		list, err = h.uc.ListByProject(c.Context(), projectID)
	case materialID != "":
		list, err = h.uc.ListByMaterial(c.Context(), materialID)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "se requiere project_id o material_id"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	out := make([]dto.AllocationResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.NewAllocationResponse(a))
	}
	return c.JSON(fiber.Map{"total": len(out), "allocations": out})
}

// Lookup godoc
// @Summary      Obtener asignación por (material, proyecto, etapa)
// @Tags         allocations
// @Security     Bearer
// @Produce      json
// @Param        material_id  query  string  true   "ID del material"
// @Param        project_id   query  string  true   "ID del proyecto"
// @Param        stage_id     query  string  false  "ID de la etapa (vacío = nivel proyecto)"
// @Success      200  {object}  dto.AllocationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/allocations/lookup [get]
func (h *AllocationHandler) Lookup(c *fiber.Ctx) error {
	a, err := h.uc.Get(c.Context(), c.Query("material_id"), c.Query("project_id"), c.Query("stage_id"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "se requieren material_id y project_id"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "asignación no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.NewAllocationResponse(a))
}
