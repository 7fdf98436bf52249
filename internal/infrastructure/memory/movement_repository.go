package memory

import (
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/internal/domain/warehouse"
)

// Verify interface compliance
var _ repository.MovementRepository = (*MovementRepo)(nil)
var _ repository.MovementRepository = (*txMovementRepo)(nil)

// MovementRepo adaptador en memoria del libro de movimientos (fuera de
// transacción). Append-only, igual que el adaptador PostgreSQL.
type MovementRepo struct {
	s *Store
}

// NewMovementRepository construye el adaptador sobre el store.
func NewMovementRepository(s *Store) *MovementRepo {
	return &MovementRepo{s: s}
}

func (r *MovementRepo) Create(m *entity.Movement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	createMovement(r.s.d, m)
	return nil
}

func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return getMovementByID(r.s.d, id), nil
}

func (r *MovementRepo) ListByMaterial(materialID string, filter repository.MovementFilter) ([]*entity.Movement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return listMovementsByMaterial(r.s.d, materialID, filter), nil
}

// txMovementRepo variante atada a la copia transaccional.
type txMovementRepo struct {
	d *data
}

func newTxMovementRepo(d *data) *txMovementRepo { return &txMovementRepo{d: d} }

func (r *txMovementRepo) Create(m *entity.Movement) error {
	createMovement(r.d, m)
	return nil
}
func (r *txMovementRepo) GetByID(id string) (*entity.Movement, error) {
	return getMovementByID(r.d, id), nil
}
func (r *txMovementRepo) ListByMaterial(materialID string, filter repository.MovementFilter) ([]*entity.Movement, error) {
	return listMovementsByMaterial(r.d, materialID, filter), nil
}

func createMovement(d *data, m *entity.Movement) {
	cp := *m
	d.movements = append(d.movements, &cp)
}

func getMovementByID(d *data, id string) *entity.Movement {
	for _, m := range d.movements {
		if m.ID == id {
			cp := *m
			return &cp
		}
	}
	return nil
}

// listMovementsByMaterial filtra y devuelve en orden de auditoría:
// (occurred_on, created_at), empates por orden de inserción (el slice ya
// está en orden de inserción y el sort es estable).
func listMovementsByMaterial(d *data, materialID string, filter repository.MovementFilter) []*entity.Movement {
	var list []*entity.Movement
	for _, m := range d.movements {
		if m.MaterialID != materialID {
			continue
		}
		if filter.ProjectID != "" &&
			m.OriginProjectID != filter.ProjectID && m.DestinationProjectID != filter.ProjectID {
			continue
		}
		if filter.From != nil && m.OccurredOn.Before(*filter.From) {
			continue
		}
		if filter.To != nil && m.OccurredOn.After(*filter.To) {
			continue
		}
		cp := *m
		list = append(list, &cp)
	}
	warehouse.SortForAudit(list)
	return paginate(list, filter.Limit, filter.Offset)
}
