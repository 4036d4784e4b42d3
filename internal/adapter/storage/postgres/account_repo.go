package postgres

import (
	"context"
	"errors"
	"fmt"

	"ledger-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Pool is the subset of pgxpool.Pool the adapters need. pgxmock satisfies it.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// AccountRepo implements ports.AccountRepository.
type AccountRepo struct {
	pool Pool
}

// NewAccountRepo creates a new AccountRepo.
func NewAccountRepo(pool Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

// GetByID fetches an account by its UUID. Returns (nil, nil) when absent.
func (r *AccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	query := `SELECT id, name, balance, hold, active FROM accounts WHERE id = $1`

	a := &domain.Account{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.Name, &a.Balance, &a.Hold, &a.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account by id: %w", err)
	}
	return a, nil
}

// UpdateBalance overwrites the balance field of one account.
func (r *AccountRepo) UpdateBalance(ctx context.Context, id uuid.UUID, balance int64) error {
	query := `UPDATE accounts SET balance = $1 WHERE id = $2`

	tag, err := r.pool.Exec(ctx, query, balance, id)
	if err != nil {
		return fmt.Errorf("update account balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account not found: %s", id)
	}
	return nil
}

// UpdateHold overwrites the hold field of one account.
func (r *AccountRepo) UpdateHold(ctx context.Context, id uuid.UUID, hold int64) error {
	query := `UPDATE accounts SET hold = $1 WHERE id = $2`

	tag, err := r.pool.Exec(ctx, query, hold, id)
	if err != nil {
		return fmt.Errorf("update account hold: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account not found: %s", id)
	}
	return nil
}

// SettleHolds realizes every account's hold as a balance debit in one
// statement, so the settlement itself cannot lose updates mid-pass.
func (r *AccountRepo) SettleHolds(ctx context.Context) error {
	query := `UPDATE accounts SET balance = balance - hold, hold = 0`

	if _, err := r.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("settle holds: %w", err)
	}
	return nil
}
