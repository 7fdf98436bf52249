package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/internal/domain/warehouse"
)

// StockAuditorUseCase es el lado de lectura del libro: reconstruye saldos
// replegando movimientos, detecta materiales bajo umbral crítico y responde
// "cómo llegó esta cantidad aquí" con la línea de tiempo de movimientos.
type StockAuditorUseCase struct {
	materialRepo     repository.MaterialRepository
	movRepo          repository.MovementRepository
	defaultThreshold decimal.Decimal
}

// NewStockAuditorUseCase construye el auditor. defaultThreshold es el umbral
// crítico configurado (viene de configuración, no es conocimiento de dominio
// embebido).
func NewStockAuditorUseCase(
	materialRepo repository.MaterialRepository,
	movRepo repository.MovementRepository,
	defaultThreshold decimal.Decimal,
) *StockAuditorUseCase {
	return &StockAuditorUseCase{
		materialRepo:     materialRepo,
		movRepo:          movRepo,
		defaultThreshold: defaultThreshold,
	}
}

// ReconstructedBalance resultado de reconstruir el saldo de un material.
// Drift=true significa que el saldo replegado no coincide con el stock
// cacheado: si el motor de movimientos es la única vía de escritura eso no
// debe ocurrir nunca; su presencia señala un bug o una mutación fuera de
// banda. El auditor lo reporta, no lo "arregla" en silencio.
type ReconstructedBalance struct {
	MaterialID    string
	Reconstructed decimal.Decimal
	Cached        decimal.Decimal
	Drift         bool
	MovementCount int
}

// ReconstructBalance repliega todos los movimientos del material en orden de
// auditoría (occurred_on, created_at; empates por orden de inserción)
// partiendo de cero, y lo compara con el stock cacheado.
func (uc *StockAuditorUseCase) ReconstructBalance(ctx context.Context, materialID string) (*ReconstructedBalance, error) {
	material, err := uc.materialRepo.GetByID(materialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}

	movs, err := uc.movRepo.ListByMaterial(materialID, repository.MovementFilter{})
	if err != nil {
		return nil, err
	}
	reconstructed := warehouse.FoldBalance(movs)

	return &ReconstructedBalance{
		MaterialID:    materialID,
		Reconstructed: reconstructed,
		Cached:        material.CurrentStock,
		Drift:         !reconstructed.Equal(material.CurrentStock),
		MovementCount: len(movs),
	}, nil
}

// FindCritical retorna los materiales con stock por debajo del umbral,
// ordenados ascendentemente por stock. Con threshold en cero se usa el
// umbral configurado.
func (uc *StockAuditorUseCase) FindCritical(ctx context.Context, threshold decimal.Decimal) ([]*entity.Material, error) {
	if threshold.Sign() <= 0 {
		threshold = uc.defaultThreshold
	}
	return uc.materialRepo.FindBelowStock(threshold)
}

// DefaultThreshold expone el umbral configurado (para severidad de alertas
// y respuesta HTTP).
func (uc *StockAuditorUseCase) DefaultThreshold() decimal.Decimal {
	return uc.defaultThreshold
}

// Timeline lista los movimientos de un material en orden cronológico de
// auditoría, opcionalmente filtrados a un proyecto (por sus campos de
// proyecto origen/destino) y rango de fechas.
func (uc *StockAuditorUseCase) Timeline(ctx context.Context, materialID string, filter repository.MovementFilter) ([]*entity.Movement, error) {
	if materialID == "" {
		return nil, domain.ErrInvalidInput
	}
	material, err := uc.materialRepo.GetByID(materialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	return uc.movRepo.ListByMaterial(materialID, filter)
}
