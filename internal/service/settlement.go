package service

import (
	"context"
	"sync"
	"time"

	"ledger-service/internal/core/ports"

	"github.com/rs/zerolog"
)

// SettlementScheduler periodically realizes pending holds into balance debits
// across all accounts with a single bulk statement.
//
// The bulk update does not go through the keylock registry: a Credit or
// Reserve in flight during a tick can interleave with it at the store. The
// statement itself is atomic at the store; closing the window entirely would
// require settlement to acquire every live key.
type SettlementScheduler struct {
	accounts ports.AccountRepository
	interval time.Duration
	log      zerolog.Logger

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewSettlementScheduler creates a stopped scheduler. Call Start to run it.
func NewSettlementScheduler(accounts ports.AccountRepository, interval time.Duration, log zerolog.Logger) *SettlementScheduler {
	return &SettlementScheduler{
		accounts: accounts,
		interval: interval,
		log:      log,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the settlement loop in its own goroutine. A failed tick is
// logged and retried on the next interval; it never terminates the loop.
func (s *SettlementScheduler) Start() {
	ticker := time.NewTicker(s.interval)
	go func() {
		defer close(s.done)
		defer ticker.Stop()

		s.log.Info().Dur("interval", s.interval).Msg("settlement scheduler started")
		for {
			select {
			case <-ticker.C:
				s.settle()
			case <-s.stop:
				s.log.Info().Msg("settlement scheduler stopped")
				return
			}
		}
	}()
}

// Stop halts the loop and waits for it to exit. An in-flight bulk update runs
// to completion; the loop only stops between ticks. Safe to call twice.
func (s *SettlementScheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
}

func (s *SettlementScheduler) settle() {
	if err := s.accounts.SettleHolds(context.Background()); err != nil {
		s.log.Error().Err(err).Msg("settlement tick failed, retrying next interval")
		return
	}
	s.log.Debug().Msg("holds settled")
}
