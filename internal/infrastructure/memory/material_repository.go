package memory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Verify interface compliance
var _ repository.MaterialRepository = (*MaterialRepo)(nil)
var _ repository.MaterialRepository = (*txMaterialRepo)(nil)

// MaterialRepo adaptador en memoria del catálogo (fuera de transacción).
type MaterialRepo struct {
	s *Store
}

// NewMaterialRepository construye el adaptador sobre el store.
func NewMaterialRepository(s *Store) *MaterialRepo {
	return &MaterialRepo{s: s}
}

func (r *MaterialRepo) Create(m *entity.Material) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return createMaterial(r.s.d, m)
}

func (r *MaterialRepo) GetByID(id string) (*entity.Material, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return getMaterialByID(r.s.d, id), nil
}

func (r *MaterialRepo) GetByInternalCode(code string) (*entity.Material, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	id, ok := r.s.d.materialsByCode[code]
	if !ok {
		return nil, nil
	}
	return getMaterialByID(r.s.d, id), nil
}

// GetForUpdate en memoria equivale a GetByID: el TxRunner ya serializa las
// transacciones con el mutex del store.
func (r *MaterialRepo) GetForUpdate(id string) (*entity.Material, error) {
	return r.GetByID(id)
}

func (r *MaterialRepo) UpdateStock(id string, stock decimal.Decimal, updatedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return updateMaterialStock(r.s.d, id, stock, updatedAt)
}

func (r *MaterialRepo) UpdateStatus(id string, status string, updatedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return updateMaterialStatus(r.s.d, id, status, updatedAt)
}

func (r *MaterialRepo) List(filter repository.MaterialFilter) ([]*entity.Material, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return listMaterials(r.s.d, filter), nil
}

func (r *MaterialRepo) FindBelowStock(threshold decimal.Decimal) ([]*entity.Material, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return findMaterialsBelowStock(r.s.d, threshold), nil
}

// txMaterialRepo variante atada a la copia transaccional; el lock ya lo
// tiene el TxRunner.
type txMaterialRepo struct {
	d *data
}

func newTxMaterialRepo(d *data) *txMaterialRepo { return &txMaterialRepo{d: d} }

func (r *txMaterialRepo) Create(m *entity.Material) error { return createMaterial(r.d, m) }
func (r *txMaterialRepo) GetByID(id string) (*entity.Material, error) {
	return getMaterialByID(r.d, id), nil
}
func (r *txMaterialRepo) GetByInternalCode(code string) (*entity.Material, error) {
	id, ok := r.d.materialsByCode[code]
	if !ok {
		return nil, nil
	}
	return getMaterialByID(r.d, id), nil
}
func (r *txMaterialRepo) GetForUpdate(id string) (*entity.Material, error) {
	return getMaterialByID(r.d, id), nil
}
func (r *txMaterialRepo) UpdateStock(id string, stock decimal.Decimal, updatedAt time.Time) error {
	return updateMaterialStock(r.d, id, stock, updatedAt)
}
func (r *txMaterialRepo) UpdateStatus(id string, status string, updatedAt time.Time) error {
	return updateMaterialStatus(r.d, id, status, updatedAt)
}
func (r *txMaterialRepo) List(filter repository.MaterialFilter) ([]*entity.Material, error) {
	return listMaterials(r.d, filter), nil
}
func (r *txMaterialRepo) FindBelowStock(threshold decimal.Decimal) ([]*entity.Material, error) {
	return findMaterialsBelowStock(r.d, threshold), nil
}

// Operaciones núcleo sobre *data (sin locking).

func createMaterial(d *data, m *entity.Material) error {
	if _, exists := d.materialsByCode[m.InternalCode]; exists {
		return domain.ErrDuplicateCode
	}
	cp := *m
	d.materials[m.ID] = &cp
	d.materialsByCode[m.InternalCode] = m.ID
	return nil
}

func getMaterialByID(d *data, id string) *entity.Material {
	m, ok := d.materials[id]
	if !ok {
		return nil
	}
	cp := *m
	return &cp
}

func updateMaterialStock(d *data, id string, stock decimal.Decimal, updatedAt time.Time) error {
	m, ok := d.materials[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.CurrentStock = stock
	m.UpdatedAt = updatedAt
	return nil
}

func updateMaterialStatus(d *data, id string, status string, updatedAt time.Time) error {
	m, ok := d.materials[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.Status = status
	m.UpdatedAt = updatedAt
	return nil
}

func listMaterials(d *data, filter repository.MaterialFilter) []*entity.Material {
	var list []*entity.Material
	for _, m := range d.materials {
		if filter.Status != "" && m.Status != filter.Status {
			continue
		}
		if filter.Category != "" && m.Category != filter.Category {
			continue
		}
		cp := *m
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].InternalCode < list[j].InternalCode })
	return paginate(list, filter.Limit, filter.Offset)
}

func findMaterialsBelowStock(d *data, threshold decimal.Decimal) []*entity.Material {
	var list []*entity.Material
	for _, m := range d.materials {
		if m.CurrentStock.LessThan(threshold) {
			cp := *m
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CurrentStock.Equal(list[j].CurrentStock) {
			return list[i].CurrentStock.LessThan(list[j].CurrentStock)
		}
		return list[i].InternalCode < list[j].InternalCode
	})
	return list
}

func paginate[T any](list []T, limit, offset int) []T {
	if limit <= 0 {
		return list
	}
	if offset >= len(list) {
		return nil
	}
	end := offset + limit
	if end > len(list) {
		end = len(list)
	}
	return list[offset:end]
}
