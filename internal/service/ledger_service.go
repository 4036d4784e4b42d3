package service

import (
	"context"
	"fmt"

	"ledger-service/internal/core/ports"
	"ledger-service/internal/keylock"
	"ledger-service/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LedgerServiceImpl implements ports.LedgerService. Mutations on the same
// account are serialized through the keylock registry; the read-modify-write
// inside Credit/Reserve is atomic with respect to other mutations on that id.
type LedgerServiceImpl struct {
	accounts ports.AccountRepository
	locks    *keylock.Registry
	log      zerolog.Logger
}

// NewLedgerService creates a new LedgerServiceImpl.
func NewLedgerService(accounts ports.AccountRepository, locks *keylock.Registry, log zerolog.Logger) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		accounts: accounts,
		locks:    locks,
		log:      log,
	}
}

// GetStatus reads the account without exclusion. The snapshot is advisory and
// may race with concurrent mutations.
func (s *LedgerServiceImpl) GetStatus(ctx context.Context, id uuid.UUID) (*ports.AccountStatus, error) {
	acct, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get account: %w", err))
	}
	if acct == nil {
		return nil, apperror.ErrAccountNotFound()
	}
	return &ports.AccountStatus{
		Balance: acct.Balance,
		Hold:    acct.Hold,
		Active:  acct.Active,
	}, nil
}

// Credit adds amount to the account's settled balance.
func (s *LedgerServiceImpl) Credit(ctx context.Context, id uuid.UUID, amount int64) error {
	if amount < 0 {
		return apperror.ErrBadRequest()
	}

	h := s.locks.Acquire(id.String())
	defer h.Release()

	acct, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("get account: %w", err))
	}
	if acct == nil {
		return apperror.ErrAccountNotFound()
	}
	if !acct.Active {
		return apperror.ErrInactiveAccount()
	}

	newBalance := acct.Balance + amount
	if err := s.accounts.UpdateBalance(ctx, id, newBalance); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("update balance: %w", err))
	}

	s.log.Info().
		Str("uuid", id.String()).
		Int64("amount", amount).
		Int64("balance", newBalance).
		Msg("balance credited")

	return nil
}

// Reserve places amount on hold against the settled balance. The hold is
// approved only while hold + amount <= balance.
func (s *LedgerServiceImpl) Reserve(ctx context.Context, id uuid.UUID, amount int64) error {
	if amount < 0 {
		return apperror.ErrBadRequest()
	}

	h := s.locks.Acquire(id.String())
	defer h.Release()

	acct, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("get account: %w", err))
	}
	if acct == nil {
		return apperror.ErrAccountNotFound()
	}
	if !acct.Active {
		return apperror.ErrInactiveAccount()
	}
	if !acct.CanReserve(amount) {
		return apperror.ErrBalanceTooLow()
	}

	newHold := acct.Hold + amount
	if err := s.accounts.UpdateHold(ctx, id, newHold); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("update hold: %w", err))
	}

	s.log.Info().
		Str("uuid", id.String()).
		Int64("amount", amount).
		Int64("hold", newHold).
		Msg("amount reserved")

	return nil
}
