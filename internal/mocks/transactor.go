package mocks

import (
	"context"
	"sync"

	"github.com/internsim/practice-api/internal/store"
)

// Transactor is a store.Transactor that runs fn directly with a nil
// transaction. It records how each run ended.
type Transactor struct {
	mu         sync.Mutex
	Commits    int
	Rollbacks  int
	BeginError error
}

var _ store.Transactor = (*Transactor)(nil)

// RunInTransaction implements store.Transactor.
func (t *Transactor) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	if t.BeginError != nil {
		return t.BeginError
	}

	err := fn(ctx, nil)

	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		t.Rollbacks++
		return err
	}
	t.Commits++
	return nil
}
