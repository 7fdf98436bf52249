package memory

import (
	"sync"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// Store guarda el estado del almacén en memoria. Pensado para tests y
// demos: mismas garantías observables que PostgreSQL (atomicidad vía
// snapshot + swap en el TxRunner, unicidad de alertas abiertas en el
// insert) sin base de datos.
type Store struct {
	mu sync.Mutex
	d  *data
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{d: newData()}
}

type allocKey struct {
	materialID string
	projectID  string
	stageID    string
}

type data struct {
	materials       map[string]*entity.Material
	materialsByCode map[string]string // internal_code -> id
	movements       []*entity.Movement
	allocations     map[string]*entity.Allocation
	allocsByTuple   map[allocKey]string // trío -> id
	alerts          []*entity.AlertRecord
}

func newData() *data {
	return &data{
		materials:       make(map[string]*entity.Material),
		materialsByCode: make(map[string]string),
		allocations:     make(map[string]*entity.Allocation),
		allocsByTuple:   make(map[allocKey]string),
	}
}

// clone copia el estado completo. Las entidades se copian por valor: los
// callers reciben siempre copias y nunca alias del estado interno.
func (d *data) clone() *data {
	c := &data{
		materials:       make(map[string]*entity.Material, len(d.materials)),
		materialsByCode: make(map[string]string, len(d.materialsByCode)),
		movements:       make([]*entity.Movement, len(d.movements)),
		allocations:     make(map[string]*entity.Allocation, len(d.allocations)),
		allocsByTuple:   make(map[allocKey]string, len(d.allocsByTuple)),
		alerts:          make([]*entity.AlertRecord, len(d.alerts)),
	}
	for id, m := range d.materials {
		cp := *m
		c.materials[id] = &cp
	}
	for code, id := range d.materialsByCode {
		c.materialsByCode[code] = id
	}
	for i, m := range d.movements {
		cp := *m
		c.movements[i] = &cp
	}
	for id, a := range d.allocations {
		cp := *a
		c.allocations[id] = &cp
	}
	for k, id := range d.allocsByTuple {
		c.allocsByTuple[k] = id
	}
	for i, a := range d.alerts {
		cp := *a
		c.alerts[i] = &cp
	}
	return c
}
