package warehouse

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// Reglas de plegado del libro (servicio de dominio, sin estado).
//
// Efecto de cada tipo sobre el stock de bodega:
//
//	ENTRY, RETURN, ADJUSTMENT_POS  -> +cantidad
//	EXIT, ADJUSTMENT_NEG           -> -cantidad
//	CONSUMPTION                    ->  0 (el material salió de bodega en el EXIT)

// StockDelta devuelve el efecto del movimiento sobre el stock de bodega.
func StockDelta(m *entity.Movement) decimal.Decimal {
	switch m.Kind {
	case entity.MovementKindEntry, entity.MovementKindReturn, entity.MovementKindAdjustPos:
		return m.Quantity
	case entity.MovementKindExit, entity.MovementKindAdjustNeg:
		return m.Quantity.Neg()
	}
	// CONSUMPTION y tipos desconocidos no afectan bodega
	return decimal.Zero
}

// SortForAudit ordena movimientos en orden de auditoría: (OccurredOn,
// CreatedAt), empates preservando el orden de inserción (sort estable).
// Con movimientos retroactivos este orden refleja "qué pasó cuándo", no
// "cuándo se registró"; puede diferir del orden de aplicación y eso es
// intencional.
func SortForAudit(movs []*entity.Movement) {
	sort.SliceStable(movs, func(i, j int) bool {
		if !movs[i].OccurredOn.Equal(movs[j].OccurredOn) {
			return movs[i].OccurredOn.Before(movs[j].OccurredOn)
		}
		return movs[i].CreatedAt.Before(movs[j].CreatedAt)
	})
}

// FoldBalance pliega los movimientos (ya ordenados) partiendo de cero y
// devuelve el stock reconstruido.
func FoldBalance(movs []*entity.Movement) decimal.Decimal {
	balance := decimal.Zero
	for _, m := range movs {
		balance = balance.Add(StockDelta(m))
	}
	return balance
}

// AlertSeverity calcula la severidad de una alerta de stock crítico:
// ERROR si el stock está agotado o por debajo de la mitad del umbral,
// WARNING en el resto de la banda crítica.
func AlertSeverity(stock, threshold decimal.Decimal) string {
	if stock.Sign() <= 0 {
		return entity.AlertSeverityError
	}
	if stock.LessThan(threshold.Div(decimal.NewFromInt(2))) {
		return entity.AlertSeverityError
	}
	return entity.AlertSeverityWarning
}
