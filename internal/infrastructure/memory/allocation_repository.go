package memory

import (
	"sort"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Verify interface compliance
var _ repository.AllocationRepository = (*AllocationRepo)(nil)
var _ repository.AllocationRepository = (*txAllocationRepo)(nil)

// AllocationRepo adaptador en memoria de asignaciones (fuera de transacción).
type AllocationRepo struct {
	s *Store
}

// NewAllocationRepository construye el adaptador sobre el store.
func NewAllocationRepository(s *Store) *AllocationRepo {
	return &AllocationRepo{s: s}
}

func (r *AllocationRepo) Get(materialID, projectID, stageID string) (*entity.Allocation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return getAllocation(r.s.d, materialID, projectID, stageID), nil
}

func (r *AllocationRepo) GetForUpdate(materialID, projectID, stageID string) (*entity.Allocation, error) {
	return r.Get(materialID, projectID, stageID)
}

func (r *AllocationRepo) Upsert(a *entity.Allocation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	upsertAllocation(r.s.d, a)
	return nil
}

func (r *AllocationRepo) ListByProject(projectID string) ([]*entity.Allocation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return listAllocations(r.s.d, func(a *entity.Allocation) bool { return a.ProjectID == projectID }), nil
}

func (r *AllocationRepo) ListByMaterial(materialID string) ([]*entity.Allocation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return listAllocations(r.s.d, func(a *entity.Allocation) bool { return a.MaterialID == materialID }), nil
}

// txAllocationRepo variante atada a la copia transaccional.
type txAllocationRepo struct {
	d *data
}

func newTxAllocationRepo(d *data) *txAllocationRepo { return &txAllocationRepo{d: d} }

func (r *txAllocationRepo) Get(materialID, projectID, stageID string) (*entity.Allocation, error) {
	return getAllocation(r.d, materialID, projectID, stageID), nil
}
func (r *txAllocationRepo) GetForUpdate(materialID, projectID, stageID string) (*entity.Allocation, error) {
	return getAllocation(r.d, materialID, projectID, stageID), nil
}
func (r *txAllocationRepo) Upsert(a *entity.Allocation) error {
	upsertAllocation(r.d, a)
	return nil
}
func (r *txAllocationRepo) ListByProject(projectID string) ([]*entity.Allocation, error) {
	return listAllocations(r.d, func(a *entity.Allocation) bool { return a.ProjectID == projectID }), nil
}
func (r *txAllocationRepo) ListByMaterial(materialID string) ([]*entity.Allocation, error) {
	return listAllocations(r.d, func(a *entity.Allocation) bool { return a.MaterialID == materialID }), nil
}

func getAllocation(d *data, materialID, projectID, stageID string) *entity.Allocation {
	id, ok := d.allocsByTuple[allocKey{materialID, projectID, stageID}]
	if !ok {
		return nil
	}
	cp := *d.allocations[id]
	return &cp
}

func upsertAllocation(d *data, a *entity.Allocation) {
	cp := *a
	d.allocations[a.ID] = &cp
	d.allocsByTuple[allocKey{a.MaterialID, a.ProjectID, a.StageID}] = a.ID
}

func listAllocations(d *data, keep func(*entity.Allocation) bool) []*entity.Allocation {
	var list []*entity.Allocation
	for _, a := range d.allocations {
		if keep(a) {
			cp := *a
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].MaterialID != list[j].MaterialID {
			return list[i].MaterialID < list[j].MaterialID
		}
		if list[i].ProjectID != list[j].ProjectID {
			return list[i].ProjectID < list[j].ProjectID
		}
		return list[i].StageID < list[j].StageID
	})
	return list
}
