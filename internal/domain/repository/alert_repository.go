package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// AlertRepository define el puerto de los registros de alerta deduplicados.
type AlertRepository interface {
	// InsertUnlessOpen inserta la alerta salvo que ya exista una NO leída del
	// mismo (material, tipo). Retorna false sin error si ya había una abierta
	// (conflicto de índice único = "ya levantada", no un fallo). Seguro bajo
	// barridos concurrentes: la unicidad la garantiza el storage.
	InsertUnlessOpen(a *entity.AlertRecord) (bool, error)
	ListUnread() ([]*entity.AlertRecord, error)
	// MarkRead marca la alerta como leída. Retorna domain.ErrNotFound si no existe.
	MarkRead(id string) error
}
