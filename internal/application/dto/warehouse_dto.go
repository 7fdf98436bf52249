package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// RegisterMaterialRequest body para POST /api/materials.
type RegisterMaterialRequest struct {
	InternalCode       string `json:"internal_code" validate:"required,min=1,max=50"`
	Name               string `json:"name" validate:"required,min=1,max=200"`
	Category           string `json:"category" validate:"required"`
	Subcategory        string `json:"subcategory"`
	UnitOfMeasure      string `json:"unit_of_measure" validate:"required"`
	Location           string `json:"location"`
	AllocatedProjectID string `json:"allocated_project_id"`
}

// SetMaterialStatusRequest body para PATCH /api/materials/:id/status.
type SetMaterialStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// MaterialResponse salida de un material del catálogo.
type MaterialResponse struct {
	ID                 string          `json:"id"`
	InternalCode       string          `json:"internal_code"`
	Name               string          `json:"name"`
	Category           string          `json:"category"`
	Subcategory        string          `json:"subcategory,omitempty"`
	UnitOfMeasure      string          `json:"unit_of_measure"`
	CurrentStock       decimal.Decimal `json:"current_stock"`
	AllocatedProjectID string          `json:"allocated_project_id,omitempty"`
	Status             string          `json:"status"`
	Location           string          `json:"location,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// NewMaterialResponse mapea la entidad a la respuesta.
func NewMaterialResponse(m *entity.Material) MaterialResponse {
	return MaterialResponse{
		ID:                 m.ID,
		InternalCode:       m.InternalCode,
		Name:               m.Name,
		Category:           m.Category,
		Subcategory:        m.Subcategory,
		UnitOfMeasure:      m.UnitOfMeasure,
		CurrentStock:       m.CurrentStock,
		AllocatedProjectID: m.AllocatedProjectID,
		Status:             m.Status,
		Location:           m.Location,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// ApplyMovementRequest body para POST /api/inventory/movements.
// Para EXIT: destination_project_id obligatorio. Para CONSUMPTION/RETURN:
// origin_project_id obligatorio. occurred_on vacío = hoy (admite fechas
// retroactivas en formato 2006-01-02).
type ApplyMovementRequest struct {
	MaterialID           string           `json:"material_id" validate:"required"`
	Kind                 string           `json:"kind" validate:"required"`
	Quantity             decimal.Decimal  `json:"quantity"`
	OccurredOn           string           `json:"occurred_on,omitempty"`
	Responsible          string           `json:"responsible,omitempty"`
	OriginProjectID      string           `json:"origin_project_id,omitempty"`
	DestinationProjectID string           `json:"destination_project_id,omitempty"`
	StageID              string           `json:"stage_id,omitempty"`
	ReferenceDocument    string           `json:"reference_document,omitempty"`
	UnitCost             *decimal.Decimal `json:"unit_cost,omitempty"`
	ReturnReason         string           `json:"return_reason,omitempty"`
	MaterialCondition    string           `json:"material_condition,omitempty"`
	SourceMovementID     string           `json:"source_movement_id,omitempty"`
}

// MovementResponse salida de un movimiento del libro.
type MovementResponse struct {
	ID                   string           `json:"id"`
	MaterialID           string           `json:"material_id"`
	Kind                 string           `json:"kind"`
	Quantity             decimal.Decimal  `json:"quantity"`
	OccurredOn           string           `json:"occurred_on"`
	Responsible          string           `json:"responsible,omitempty"`
	OriginProjectID      string           `json:"origin_project_id,omitempty"`
	DestinationProjectID string           `json:"destination_project_id,omitempty"`
	StageID              string           `json:"stage_id,omitempty"`
	ReferenceDocument    string           `json:"reference_document,omitempty"`
	UnitCost             *decimal.Decimal `json:"unit_cost,omitempty"`
	ReturnReason         string           `json:"return_reason,omitempty"`
	MaterialCondition    string           `json:"material_condition,omitempty"`
	SourceMovementID     string           `json:"source_movement_id,omitempty"`
	CreatedAt            time.Time        `json:"created_at"`
}

// NewMovementResponse mapea la entidad a la respuesta.
func NewMovementResponse(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:                   m.ID,
		MaterialID:           m.MaterialID,
		Kind:                 m.Kind,
		Quantity:             m.Quantity,
		OccurredOn:           m.OccurredOn.Format("2006-01-02"),
		Responsible:          m.Responsible,
		OriginProjectID:      m.OriginProjectID,
		DestinationProjectID: m.DestinationProjectID,
		StageID:              m.StageID,
		ReferenceDocument:    m.ReferenceDocument,
		UnitCost:             m.UnitCost,
		ReturnReason:         m.ReturnReason,
		MaterialCondition:    m.MaterialCondition,
		SourceMovementID:     m.SourceMovementID,
		CreatedAt:            m.CreatedAt,
	}
}

// AllocationResponse salida de una asignación con su pendiente derivado.
type AllocationResponse struct {
	ID                string          `json:"id"`
	MaterialID        string          `json:"material_id"`
	ProjectID         string          `json:"project_id"`
	StageID           string          `json:"stage_id,omitempty"`
	QuantityAllocated decimal.Decimal `json:"quantity_allocated"`
	QuantityConsumed  decimal.Decimal `json:"quantity_consumed"`
	QuantityReturned  decimal.Decimal `json:"quantity_returned"`
	QuantityPending   decimal.Decimal `json:"quantity_pending"`
	Status            string          `json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// NewAllocationResponse mapea la entidad a la respuesta.
func NewAllocationResponse(a *entity.Allocation) AllocationResponse {
	return AllocationResponse{
		ID:                a.ID,
		MaterialID:        a.MaterialID,
		ProjectID:         a.ProjectID,
		StageID:           a.StageID,
		QuantityAllocated: a.QuantityAllocated,
		QuantityConsumed:  a.QuantityConsumed,
		QuantityReturned:  a.QuantityReturned,
		QuantityPending:   a.QuantityPending(),
		Status:            a.Status,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

// ReconstructedBalanceResponse salida de la reconstrucción de saldo.
// drift=true significa que el saldo replegado del libro no coincide con el
// stock cacheado (mutación fuera de banda o bug); se reporta, no se corrige.
type ReconstructedBalanceResponse struct {
	MaterialID    string          `json:"material_id"`
	Reconstructed decimal.Decimal `json:"reconstructed"`
	Cached        decimal.Decimal `json:"cached"`
	Drift         bool            `json:"drift"`
	MovementCount int             `json:"movement_count"`
}

// AlertResponse salida de un registro de alerta.
type AlertResponse struct {
	ID         string    `json:"id"`
	MaterialID string    `json:"material_id"`
	Kind       string    `json:"kind"`
	Severity   string    `json:"severity"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewAlertResponse mapea la entidad a la respuesta.
func NewAlertResponse(a *entity.AlertRecord) AlertResponse {
	return AlertResponse{
		ID:         a.ID,
		MaterialID: a.MaterialID,
		Kind:       a.Kind,
		Severity:   a.Severity,
		IsRead:     a.IsRead,
		CreatedAt:  a.CreatedAt,
	}
}
