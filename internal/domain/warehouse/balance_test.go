package warehouse_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/warehouse"
)

func mov(kind string, quantity int64) *entity.Movement {
	return &entity.Movement{Kind: kind, Quantity: decimal.NewFromInt(quantity)}
}

// Tabla de efectos por tipo: la regla central del libro.
func TestStockDelta(t *testing.T) {
	cases := []struct {
		kind string
		qty  int64
		want int64
	}{
		{entity.MovementKindEntry, 10, 10},
		{entity.MovementKindReturn, 10, 10},
		{entity.MovementKindAdjustPos, 10, 10},
		{entity.MovementKindExit, 10, -10},
		{entity.MovementKindAdjustNeg, 10, -10},
		{entity.MovementKindConsumption, 10, 0},
	}
	for _, tc := range cases {
		t.Run(tc.kind, func(t *testing.T) {
			got := warehouse.StockDelta(mov(tc.kind, tc.qty))
			assert.True(t, got.Equal(decimal.NewFromInt(tc.want)),
				"%s de %d debe aportar %d", tc.kind, tc.qty, tc.want)
		})
	}
}

func TestFoldBalance(t *testing.T) {
	movs := []*entity.Movement{
		mov(entity.MovementKindEntry, 100),
		mov(entity.MovementKindExit, 40),
		mov(entity.MovementKindConsumption, 30),
		mov(entity.MovementKindReturn, 10),
		mov(entity.MovementKindAdjustNeg, 5),
	}
	assert.True(t, warehouse.FoldBalance(movs).Equal(decimal.NewFromInt(65)),
		"100-40+0+10-5 = 65")

	assert.True(t, warehouse.FoldBalance(nil).IsZero(), "libro vacío pliega a cero")
}

// Orden de auditoría: primero por fecha de ocurrencia, luego por fecha de
// registro; empates totales preservan el orden de inserción.
func TestSortForAudit(t *testing.T) {
	d1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	r1 := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	r2 := time.Date(2026, 1, 5, 11, 0, 0, 0, time.UTC)

	a := &entity.Movement{ID: "a", OccurredOn: d2, CreatedAt: r1}
	b := &entity.Movement{ID: "b", OccurredOn: d1, CreatedAt: r2} // retroactivo
	c := &entity.Movement{ID: "c", OccurredOn: d1, CreatedAt: r2} // empate total con b
	d := &entity.Movement{ID: "d", OccurredOn: d1, CreatedAt: r1}

	movs := []*entity.Movement{a, b, c, d}
	warehouse.SortForAudit(movs)

	ids := []string{movs[0].ID, movs[1].ID, movs[2].ID, movs[3].ID}
	assert.Equal(t, []string{"d", "b", "c", "a"}, ids,
		"ocurrencia manda; a igual ocurrencia decide el registro; a empate total, la inserción")
}

func TestAlertSeverity(t *testing.T) {
	threshold := decimal.NewFromInt(10)

	cases := []struct {
		name  string
		stock int64
		want  string
	}{
		{"agotado", 0, entity.AlertSeverityError},
		{"negativo", -1, entity.AlertSeverityError},
		{"bajo la mitad del umbral", 4, entity.AlertSeverityError},
		{"justo en la mitad", 5, entity.AlertSeverityWarning},
		{"en banda crítica", 9, entity.AlertSeverityWarning},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := warehouse.AlertSeverity(decimal.NewFromInt(tc.stock), threshold)
			assert.Equal(t, tc.want, got)
		})
	}
}
