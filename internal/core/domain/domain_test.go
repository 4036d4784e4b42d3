package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccount_CanReserve(t *testing.T) {
	tests := []struct {
		name    string
		balance int64
		hold    int64
		amount  int64
		want    bool
	}{
		{"no hold, amount within balance", 100, 0, 50, true},
		{"no hold, amount equals balance", 100, 0, 100, true},
		{"no hold, amount exceeds balance", 100, 0, 101, false},
		{"existing hold leaves headroom", 100, 30, 70, true},
		{"existing hold leaves no headroom", 100, 90, 20, false},
		{"zero amount at full hold", 100, 100, 0, true},
		{"negative balance after settlement", -10, 0, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Account{Balance: tt.balance, Hold: tt.hold}
			assert.Equal(t, tt.want, a.CanReserve(tt.amount))
		})
	}
}
