package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

func alloc(allocated, consumed, returned int64) *entity.Allocation {
	return &entity.Allocation{
		QuantityAllocated: decimal.NewFromInt(allocated),
		QuantityConsumed:  decimal.NewFromInt(consumed),
		QuantityReturned:  decimal.NewFromInt(returned),
		Status:            entity.AllocationStatusActive,
	}
}

func TestQuantityPending(t *testing.T) {
	assert.True(t, alloc(30, 20, 5).QuantityPending().Equal(decimal.NewFromInt(5)))
	assert.True(t, alloc(10, 0, 0).QuantityPending().Equal(decimal.NewFromInt(10)))
	assert.True(t, alloc(10, 6, 4).QuantityPending().IsZero())
}

// El tipo que lleva el pendiente a cero decide el estado terminal; un
// movimiento que vuelva el pendiente positivo reabre la asignación.
func TestRecomputeStatus(t *testing.T) {
	t.Run("pendiente positivo queda ACTIVE", func(t *testing.T) {
		a := alloc(30, 10, 0)
		a.RecomputeStatus(entity.MovementKindConsumption)
		assert.Equal(t, entity.AllocationStatusActive, a.Status)
	})

	t.Run("saldada por consumo cierra CONSUMED", func(t *testing.T) {
		a := alloc(30, 30, 0)
		a.RecomputeStatus(entity.MovementKindConsumption)
		assert.Equal(t, entity.AllocationStatusConsumed, a.Status)
	})

	t.Run("saldada por devolución cierra RETURNED", func(t *testing.T) {
		a := alloc(30, 20, 10)
		a.RecomputeStatus(entity.MovementKindReturn)
		assert.Equal(t, entity.AllocationStatusReturned, a.Status)
	})

	t.Run("una salida posterior reabre", func(t *testing.T) {
		a := alloc(30, 30, 0)
		a.RecomputeStatus(entity.MovementKindConsumption)
		a.QuantityAllocated = a.QuantityAllocated.Add(decimal.NewFromInt(5))
		a.RecomputeStatus(entity.MovementKindExit)
		assert.Equal(t, entity.AllocationStatusActive, a.Status)
	})
}
