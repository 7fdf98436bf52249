package entity

import "time"

// Tipos y severidades de alerta.
const (
	AlertKindCriticalStock = "CRITICAL_STOCK"

	AlertSeverityWarning = "WARNING"
	AlertSeverityError   = "ERROR"
)

// AlertRecord es una notificación deduplicada sobre la condición de un
// material. Invariante: a lo sumo un registro NO leído por (material, tipo);
// el dedup se garantiza con un índice único parcial en la capa de storage,
// no con check-then-insert en aplicación.
type AlertRecord struct {
	ID         string
	MaterialID string
	Kind       string
	Severity   string
	IsRead     bool
	CreatedAt  time.Time
}
