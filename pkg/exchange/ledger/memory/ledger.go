package memory

import (
	"context"
	"sync"

	"github.com/marscorp-games/exchange-server/pkg/exchange/ledger"
	"github.com/marscorp-games/exchange-server/pkg/exchange/safemath"
)

type balanceKey struct {
	mint    string
	account string
}

type book struct {
	mu       sync.Mutex
	balances map[balanceKey]uint64
}

func New() ledger.Ledger {
	return &book{
		balances: make(map[balanceKey]uint64),
	}
}

// Apply implements ledger.Ledger.Apply
func (b *book) Apply(_ context.Context, entries ...ledger.Entry) error {
	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return err
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	// Stage against copies of the affected balances so a failure partway
	// through the batch leaves the book untouched.
	staged := make(map[balanceKey]uint64)
	load := func(key balanceKey) uint64 {
		if balance, ok := staged[key]; ok {
			return balance
		}
		return b.balances[key]
	}

	for _, entry := range entries {
		if len(entry.From) > 0 {
			key := balanceKey{entry.Mint, entry.From}
			balance := load(key)
			if balance < entry.Amount {
				return ledger.ErrInsufficientBalance
			}
			staged[key] = balance - entry.Amount
		}

		if len(entry.To) > 0 {
			key := balanceKey{entry.Mint, entry.To}
			balance, err := safemath.AddUint64(load(key), entry.Amount)
			if err != nil {
				return err
			}
			staged[key] = balance
		}
	}

	for key, balance := range staged {
		b.balances[key] = balance
	}

	return nil
}

// Balance implements ledger.Ledger.Balance
func (b *book) Balance(_ context.Context, mint, account string) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.balances[balanceKey{mint, account}], nil
}
