package integration

import (
	"context"
	"sync"

	"ledger-service/internal/core/domain"

	"github.com/google/uuid"
)

// inMemoryAccountRepo mirrors the store contract: each call is atomic, but a
// read-modify-write spanning calls is only safe under the engine's per-key
// exclusion.
type inMemoryAccountRepo struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*domain.Account
}

func newInMemoryAccountRepo() *inMemoryAccountRepo {
	return &inMemoryAccountRepo{accounts: make(map[uuid.UUID]*domain.Account)}
}

func (r *inMemoryAccountRepo) seed(a *domain.Account) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[a.ID] = a
}

func (r *inMemoryAccountRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, nil
	}
	snapshot := *a
	return &snapshot, nil
}

func (r *inMemoryAccountRepo) UpdateBalance(_ context.Context, id uuid.UUID, balance int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.accounts[id]; ok {
		a.Balance = balance
	}
	return nil
}

func (r *inMemoryAccountRepo) UpdateHold(_ context.Context, id uuid.UUID, hold int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.accounts[id]; ok {
		a.Hold = hold
	}
	return nil
}

func (r *inMemoryAccountRepo) SettleHolds(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		a.Balance -= a.Hold
		a.Hold = 0
	}
	return nil
}
