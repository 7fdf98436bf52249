package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
)

func newCatalog() *usecase.MaterialCatalogUseCase {
	return usecase.NewMaterialCatalogUseCase(memory.NewMaterialRepository(memory.NewStore()))
}

func registro(code string) usecase.RegisterMaterialInput {
	return usecase.RegisterMaterialInput{
		InternalCode:  code,
		Name:          "Varilla corrugada 1/2\"",
		Category:      entity.CategoryMaterial,
		UnitOfMeasure: entity.UnitUnit,
	}
}

func TestRegister_MaterialNuevo(t *testing.T) {
	catalog := newCatalog()

	m, err := catalog.Register(context.Background(), registro("VAR-050"))
	require.NoError(t, err)

	assert.NotEmpty(t, m.ID)
	assert.True(t, m.CurrentStock.IsZero(), "el stock inicial siempre es cero")
	assert.Equal(t, entity.MaterialStatusAvailable, m.Status)
}

// Caso: código interno repetido → DuplicateCode; el registro original no cambia.
func TestRegister_CodigoDuplicado(t *testing.T) {
	catalog := newCatalog()
	ctx := context.Background()

	original, err := catalog.Register(ctx, registro("VAR-051"))
	require.NoError(t, err)

	dup := registro("VAR-051")
	dup.Name = "Otro nombre"
	_, err = catalog.Register(ctx, dup)
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)

	got, err := catalog.Get(ctx, original.ID)
	require.NoError(t, err)
	assert.Equal(t, original.Name, got.Name, "el material original debe quedar intacto")
}

func TestRegister_EntradaInvalida(t *testing.T) {
	catalog := newCatalog()
	ctx := context.Background()

	cases := []struct {
		name  string
		mut   func(*usecase.RegisterMaterialInput)
	}{
		{"sin código", func(in *usecase.RegisterMaterialInput) { in.InternalCode = "" }},
		{"sin nombre", func(in *usecase.RegisterMaterialInput) { in.Name = "" }},
		{"categoría desconocida", func(in *usecase.RegisterMaterialInput) { in.Category = "VEHICLE" }},
		{"unidad desconocida", func(in *usecase.RegisterMaterialInput) { in.UnitOfMeasure = "galaxia" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := registro("VAR-052")
			tc.mut(&in)
			_, err := catalog.Register(ctx, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestGet_Inexistente_NotFound(t *testing.T) {
	catalog := newCatalog()
	_, err := catalog.Get(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSetStatus_CambiaEstadoSinTocarStock(t *testing.T) {
	catalog := newCatalog()
	ctx := context.Background()

	m, err := catalog.Register(ctx, registro("VAR-053"))
	require.NoError(t, err)

	require.NoError(t, catalog.SetStatus(ctx, m.ID, entity.MaterialStatusMaintenance))

	got, err := catalog.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.MaterialStatusMaintenance, got.Status)
	assert.True(t, got.CurrentStock.Equal(m.CurrentStock), "SetStatus no debe tocar el stock")

	assert.ErrorIs(t, catalog.SetStatus(ctx, m.ID, "ROTO"), domain.ErrInvalidInput)
	assert.ErrorIs(t, catalog.SetStatus(ctx, "no-existe", entity.MaterialStatusInactive), domain.ErrNotFound)
}

func TestList_FiltraPorEstadoYCategoria(t *testing.T) {
	store := memory.NewStore()
	catalog := usecase.NewMaterialCatalogUseCase(memory.NewMaterialRepository(store))
	ctx := context.Background()

	a, err := catalog.Register(ctx, registro("LST-001"))
	require.NoError(t, err)
	_, err = catalog.Register(ctx, registro("LST-002"))
	require.NoError(t, err)

	require.NoError(t, catalog.SetStatus(ctx, a.ID, entity.MaterialStatusInactive))

	inactivos, err := catalog.List(ctx, repository.MaterialFilter{Status: entity.MaterialStatusInactive})
	require.NoError(t, err)
	require.Len(t, inactivos, 1)
	assert.Equal(t, "LST-001", inactivos[0].InternalCode)

	todos, err := catalog.List(ctx, repository.MaterialFilter{})
	require.NoError(t, err)
	assert.Len(t, todos, 2)
	// Orden estable por código interno.
	assert.Equal(t, "LST-001", todos[0].InternalCode)
	assert.Equal(t, "LST-002", todos[1].InternalCode)

	_, err = catalog.List(ctx, repository.MaterialFilter{Status: "ROTO"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
