package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// MaterialCatalogUseCase administra el catálogo de materiales: alta, consulta
// y cambio de estado. El stock cacheado no se muta por aquí: la única vía es
// el motor de movimientos; este caso de uso no expone ninguna operación que
// toque CurrentStock.
type MaterialCatalogUseCase struct {
	materialRepo repository.MaterialRepository
}

// NewMaterialCatalogUseCase construye el caso de uso.
func NewMaterialCatalogUseCase(materialRepo repository.MaterialRepository) *MaterialCatalogUseCase {
	return &MaterialCatalogUseCase{materialRepo: materialRepo}
}

// RegisterMaterialInput entrada para registrar un material en el catálogo.
type RegisterMaterialInput struct {
	InternalCode       string
	Name               string
	Category           string
	Subcategory        string
	UnitOfMeasure      string
	Location           string
	AllocatedProjectID string
}

// Register registra un material nuevo con stock cero y estado AVAILABLE.
// Retorna domain.ErrDuplicateCode si el código interno ya está en uso (la
// unicidad la garantiza el índice del storage, no un check-then-insert).
func (uc *MaterialCatalogUseCase) Register(ctx context.Context, input RegisterMaterialInput) (*entity.Material, error) {
	if input.InternalCode == "" || input.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidCategory(input.Category) {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidUnit(input.UnitOfMeasure) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	m := &entity.Material{
		ID:                 uuid.New().String(),
		InternalCode:       input.InternalCode,
		Name:               input.Name,
		Category:           input.Category,
		Subcategory:        input.Subcategory,
		UnitOfMeasure:      input.UnitOfMeasure,
		CurrentStock:       decimal.Zero,
		AllocatedProjectID: input.AllocatedProjectID,
		Status:             entity.MaterialStatusAvailable,
		Location:           input.Location,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.materialRepo.Create(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Get obtiene un material por ID. Retorna domain.ErrNotFound si no existe.
func (uc *MaterialCatalogUseCase) Get(ctx context.Context, id string) (*entity.Material, error) {
	m, err := uc.materialRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

// SetStatus cambia el estado del material. Es una actualización plana de
// campo, sin efectos sobre el stock.
func (uc *MaterialCatalogUseCase) SetStatus(ctx context.Context, id, status string) error {
	if !entity.ValidMaterialStatus(status) {
		return domain.ErrInvalidInput
	}
	m, err := uc.materialRepo.GetByID(id)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	return uc.materialRepo.UpdateStatus(id, status, time.Now())
}

// List lista materiales del catálogo según filtro.
func (uc *MaterialCatalogUseCase) List(ctx context.Context, filter repository.MaterialFilter) ([]*entity.Material, error) {
	if filter.Status != "" && !entity.ValidMaterialStatus(filter.Status) {
		return nil, domain.ErrInvalidInput
	}
	if filter.Category != "" && !entity.ValidCategory(filter.Category) {
		return nil, domain.ErrInvalidInput
	}
	return uc.materialRepo.List(filter)
}
