package ports

import (
	"context"

	"ledger-service/internal/core/domain"

	"github.com/google/uuid"
)

//go:generate mockgen -source=repositories.go -destination=mocks/mock_repositories.go -package=mocks

// AccountRepository defines persistence operations for ledger accounts.
// The ledger never creates or deletes accounts; it reads one record and applies
// partial field updates.
type AccountRepository interface {
	// GetByID fetches an account. Returns (nil, nil) when the id is unknown.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	// UpdateBalance overwrites only the balance field.
	UpdateBalance(ctx context.Context, id uuid.UUID, balance int64) error
	// UpdateHold overwrites only the hold field.
	UpdateHold(ctx context.Context, id uuid.UUID, hold int64) error
	// SettleHolds converts every account's hold into a balance debit in one
	// atomic statement: balance <- balance - hold, hold <- 0.
	SettleHolds(ctx context.Context) error
}
