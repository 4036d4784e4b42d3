package ports

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

// AccountStatus is the advisory snapshot returned by status reads.
type AccountStatus struct {
	Balance int64
	Hold    int64
	Active  bool
}

// LedgerService defines the balance operation engine. Credit and Reserve are
// serialized per account id; GetStatus reads without exclusion.
type LedgerService interface {
	GetStatus(ctx context.Context, id uuid.UUID) (*AccountStatus, error)
	Credit(ctx context.Context, id uuid.UUID, amount int64) error
	Reserve(ctx context.Context, id uuid.UUID, amount int64) error
}
