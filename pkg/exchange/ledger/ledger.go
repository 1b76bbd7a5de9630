package ledger

import (
	"context"

	"github.com/pkg/errors"
)

// ValueMint is the reserved mint for the platform's base value currency.
// Every other mint is a launched asset.
const ValueMint = "value"

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidEntry        = errors.New("invalid ledger entry")
)

// Entry moves Amount of Mint from one account to another. An empty From is
// an issuance and an empty To is a burn.
type Entry struct {
	Mint   string
	From   string
	To     string
	Amount uint64
}

// Ledger is the balance book for all accounts known to the exchange. Apply
// is all or nothing so a multi-entry operation can never partially settle.
type Ledger interface {
	// Apply atomically applies a batch of entries in order. If any entry
	// would overdraw an account, no entry in the batch is applied.
	Apply(ctx context.Context, entries ...Entry) error

	// Balance returns the balance of an account for a given mint. Accounts
	// that have never been credited have a zero balance.
	Balance(ctx context.Context, mint, account string) (uint64, error)
}

func (e *Entry) Validate() error {
	if len(e.Mint) == 0 {
		return errors.Wrap(ErrInvalidEntry, "mint is required")
	}

	if len(e.From) == 0 && len(e.To) == 0 {
		return errors.Wrap(ErrInvalidEntry, "entry must have a source or a destination")
	}

	if e.From == e.To {
		return errors.Wrap(ErrInvalidEntry, "source and destination cannot match")
	}

	if e.Amount == 0 {
		return errors.Wrap(ErrInvalidEntry, "amount cannot be zero")
	}

	return nil
}
