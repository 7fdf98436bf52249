package memory

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Ensure TxRunner implements ledger.TxRunner.
var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta el callback sobre una copia del estado y solo la publica
// si fn retorna nil: atomicidad por snapshot + swap. El mutex del store
// serializa las transacciones, igual que el bloqueo de fila serializa los
// apply por material en PostgreSQL (aquí la serialización es global, que es
// un superconjunto válido de esa garantía).
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con repos atados a la copia transaccional y publica el
// resultado en commit; ante error la copia se descarta (rollback implícito).
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	materialRepo repository.MaterialRepository,
	allocRepo repository.AllocationRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	work := r.store.d.clone()
	if err := fn(newTxMovementRepo(work), newTxMaterialRepo(work), newTxAllocationRepo(work)); err != nil {
		return err
	}
	r.store.d = work
	return nil
}
