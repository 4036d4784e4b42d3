package domain

import "github.com/google/uuid"

// Account is a ledger account with a settled balance and a pending hold.
// Accounts are provisioned and retired outside this service; the ledger only
// reads them and updates balance and hold.
type Account struct {
	ID        uuid.UUID `json:"uuid"`
	Name      string    `json:"name"`
	Balance   int64     `json:"balance"` // minor currency units; may go negative after settlement
	Hold      int64     `json:"hold"`    // reserved against balance, not yet debited
	Active  bool  `json:"status"`
}

// CanReserve reports whether amount can be added to the hold without the
// combined hold exceeding the settled balance.
func (a *Account) CanReserve(amount int64) bool {
	return a.Hold+amount <= a.Balance
}
