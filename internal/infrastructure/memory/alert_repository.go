package memory

import (
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Verify interface compliance
var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo adaptador en memoria de alertas. El chequeo de "ya hay una
// abierta" ocurre bajo el mutex del store, con la misma semántica que el
// índice único parcial de PostgreSQL: dos barridos concurrentes no pueden
// insertar ambos para el mismo material.
type AlertRepo struct {
	s *Store
}

// NewAlertRepository construye el adaptador sobre el store.
func NewAlertRepository(s *Store) *AlertRepo {
	return &AlertRepo{s: s}
}

func (r *AlertRepo) InsertUnlessOpen(a *entity.AlertRecord) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.d.alerts {
		if !existing.IsRead && existing.MaterialID == a.MaterialID && existing.Kind == a.Kind {
			return false, nil
		}
	}
	cp := *a
	r.s.d.alerts = append(r.s.d.alerts, &cp)
	return true, nil
}

func (r *AlertRepo) ListUnread() ([]*entity.AlertRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.AlertRecord
	// más recientes primero, como el adaptador PostgreSQL
	for i := len(r.s.d.alerts) - 1; i >= 0; i-- {
		if !r.s.d.alerts[i].IsRead {
			cp := *r.s.d.alerts[i]
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *AlertRepo) MarkRead(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.d.alerts {
		if a.ID == id {
			a.IsRead = true
			return nil
		}
	}
	return domain.ErrNotFound
}
