package memory

import (
	"context"
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marscorp-games/exchange-server/pkg/exchange/ledger"
	"github.com/marscorp-games/exchange-server/pkg/exchange/safemath"
)

func TestLedger_IssuanceAndTransfer(t *testing.T) {
	ctx := context.Background()
	l := New()

	require.NoError(t, l.Apply(ctx, ledger.Entry{
		Mint:   ledger.ValueMint,
		To:     "alice",
		Amount: 100,
	}))

	require.NoError(t, l.Apply(ctx, ledger.Entry{
		Mint:   ledger.ValueMint,
		From:   "alice",
		To:     "bob",
		Amount: 40,
	}))

	balance, err := l.Balance(ctx, ledger.ValueMint, "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 60, balance)

	balance, err = l.Balance(ctx, ledger.ValueMint, "bob")
	require.NoError(t, err)
	assert.EqualValues(t, 40, balance)
}

func TestLedger_Overdraw(t *testing.T) {
	ctx := context.Background()
	l := New()

	require.NoError(t, l.Apply(ctx, ledger.Entry{
		Mint:   ledger.ValueMint,
		To:     "alice",
		Amount: 100,
	}))

	err := l.Apply(ctx, ledger.Entry{
		Mint:   ledger.ValueMint,
		From:   "alice",
		To:     "bob",
		Amount: 101,
	})
	assert.Equal(t, ledger.ErrInsufficientBalance, err)

	balance, err := l.Balance(ctx, ledger.ValueMint, "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 100, balance)
}

func TestLedger_BatchIsAtomic(t *testing.T) {
	ctx := context.Background()
	l := New()

	require.NoError(t, l.Apply(ctx, ledger.Entry{
		Mint:   ledger.ValueMint,
		To:     "alice",
		Amount: 100,
	}))

	// The first entry is fine on its own, the second overdraws, so
	// neither may settle.
	err := l.Apply(
		ctx,
		ledger.Entry{Mint: ledger.ValueMint, From: "alice", To: "bob", Amount: 60},
		ledger.Entry{Mint: ledger.ValueMint, From: "alice", To: "carol", Amount: 60},
	)
	assert.Equal(t, ledger.ErrInsufficientBalance, err)

	balance, err := l.Balance(ctx, ledger.ValueMint, "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 100, balance)

	balance, err = l.Balance(ctx, ledger.ValueMint, "bob")
	require.NoError(t, err)
	assert.EqualValues(t, 0, balance)
}

func TestLedger_BatchSeesEarlierEntries(t *testing.T) {
	ctx := context.Background()
	l := New()

	require.NoError(t, l.Apply(ctx, ledger.Entry{
		Mint:   ledger.ValueMint,
		To:     "alice",
		Amount: 100,
	}))

	// bob starts empty but is funded by the first entry in the batch.
	require.NoError(t, l.Apply(
		ctx,
		ledger.Entry{Mint: ledger.ValueMint, From: "alice", To: "bob", Amount: 100},
		ledger.Entry{Mint: ledger.ValueMint, From: "bob", To: "carol", Amount: 100},
	))

	balance, err := l.Balance(ctx, ledger.ValueMint, "carol")
	require.NoError(t, err)
	assert.EqualValues(t, 100, balance)
}

func TestLedger_Burn(t *testing.T) {
	ctx := context.Background()
	l := New()

	require.NoError(t, l.Apply(ctx, ledger.Entry{
		Mint:   "mint",
		To:     "alice",
		Amount: 100,
	}))

	require.NoError(t, l.Apply(ctx, ledger.Entry{
		Mint:   "mint",
		From:   "alice",
		Amount: 30,
	}))

	balance, err := l.Balance(ctx, "mint", "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 70, balance)
}

func TestLedger_CreditOverflow(t *testing.T) {
	ctx := context.Background()
	l := New()

	require.NoError(t, l.Apply(ctx, ledger.Entry{
		Mint:   "mint",
		To:     "alice",
		Amount: math.MaxUint64,
	}))

	err := l.Apply(ctx, ledger.Entry{
		Mint:   "mint",
		To:     "alice",
		Amount: 1,
	})
	assert.Equal(t, safemath.ErrOverflow, err)
}

func TestLedger_InvalidEntries(t *testing.T) {
	ctx := context.Background()
	l := New()

	for _, entry := range []ledger.Entry{
		{Mint: "", To: "alice", Amount: 1},
		{Mint: "mint", Amount: 1},
		{Mint: "mint", From: "alice", To: "alice", Amount: 1},
		{Mint: "mint", From: "alice", To: "bob", Amount: 0},
	} {
		err := l.Apply(ctx, entry)
		assert.Equal(t, ledger.ErrInvalidEntry, errors.Cause(err))
	}
}
