package pricing

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marscorp-games/exchange-server/pkg/exchange/safemath"
)

func TestPenaltyMultiplierBps(t *testing.T) {
	now := time.Now()

	assert.EqualValues(t, 9900, PenaltyMultiplierBps(100, now.Add(time.Hour), now))
	assert.EqualValues(t, 10000, PenaltyMultiplierBps(100, now.Add(-time.Second), now))
	assert.EqualValues(t, 10000, PenaltyMultiplierBps(100, time.Time{}, now))
	assert.EqualValues(t, 10000, PenaltyMultiplierBps(0, now.Add(time.Hour), now))
}

func TestComputeBuyQuote_LaunchExample(t *testing.T) {
	args := &BuyQuoteArgs{
		Amount:               1_000_000_000,
		VirtualValue:         safemath.FromUint64(InitialVirtualValue),
		VirtualTokens:        safemath.FromUint64(InitialVirtualTokens),
		PlatformFeeBps:       100,
		YieldFeeBps:          50,
		PenaltyMultiplierBps: 10000,
	}

	quote, err := ComputeBuyQuote(args)
	require.NoError(t, err)

	assert.EqualValues(t, 10_000_000, quote.PlatformFee)
	assert.EqualValues(t, 5_000_000, quote.YieldFee)
	assert.EqualValues(t, 985_000_000, quote.AmountAfterFee)

	assert.EqualValues(t, 30_985_000_000, quote.NewVirtualValue.Uint64())
	assert.EqualValues(t, 1_038_889_785_380_022, quote.NewVirtualTokens.Uint64())
	assert.EqualValues(t, 34_110_214_619_978, quote.TokensOutFull)
	assert.Equal(t, quote.TokensOutFull, quote.TokensOut)

	// Exceeding the quoted output by a single unit must trip the slippage
	// bound.
	args.MinTokensOut = quote.TokensOut
	_, err = ComputeBuyQuote(args)
	require.NoError(t, err)

	args.MinTokensOut = quote.TokensOut + 1
	_, err = ComputeBuyQuote(args)
	assert.Equal(t, ErrSlippageExceeded, err)
}

func TestComputeBuyQuote_ConstantProductConserved(t *testing.T) {
	virtualValue := safemath.FromUint64(InitialVirtualValue)
	virtualTokens := safemath.FromUint64(InitialVirtualTokens)
	k := new(big.Int).Mul(virtualValue, virtualTokens)

	quote, err := ComputeBuyQuote(&BuyQuoteArgs{
		Amount:               5_000_000_000,
		VirtualValue:         virtualValue,
		VirtualTokens:        virtualTokens,
		PlatformFeeBps:       100,
		YieldFeeBps:          50,
		PenaltyMultiplierBps: 10000,
	})
	require.NoError(t, err)

	// k is conserved within the truncation of the division step: the updated
	// product never exceeds k, and adding one token to the updated reserve
	// overshoots it.
	newK := new(big.Int).Mul(quote.NewVirtualValue, quote.NewVirtualTokens)
	assert.True(t, newK.Cmp(k) <= 0)

	oneMore := new(big.Int).Add(quote.NewVirtualTokens, big.NewInt(1))
	assert.True(t, new(big.Int).Mul(quote.NewVirtualValue, oneMore).Cmp(k) > 0)
}

func TestComputeBuyQuote_PenaltyHaircut(t *testing.T) {
	args := &BuyQuoteArgs{
		Amount:               1_000_000_000,
		VirtualValue:         safemath.FromUint64(InitialVirtualValue),
		VirtualTokens:        safemath.FromUint64(InitialVirtualTokens),
		PlatformFeeBps:       100,
		YieldFeeBps:          50,
		PenaltyMultiplierBps: 9900,
	}

	quote, err := ComputeBuyQuote(args)
	require.NoError(t, err)

	// Delivered amount is haircut by exactly the penalty bps; the reserve
	// update is identical to the unpenalized quote.
	assert.EqualValues(t, 33_769_112_473_778, quote.TokensOut)
	assert.EqualValues(t, 34_110_214_619_978, quote.TokensOutFull)
	assert.Equal(t, quote.TokensOutFull*9900/10000, quote.TokensOut)
	assert.EqualValues(t, 30_985_000_000, quote.NewVirtualValue.Uint64())
	assert.EqualValues(t, 1_038_889_785_380_022, quote.NewVirtualTokens.Uint64())
}

func TestComputeSellQuote_RoundTrip(t *testing.T) {
	// Curve state after the launch example buy.
	virtualValue := safemath.FromUint64(30_985_000_000)
	virtualTokens := safemath.FromUint64(1_038_889_785_380_022)

	quote, err := ComputeSellQuote(&SellQuoteArgs{
		Amount:               17_055_107_309_989,
		VirtualValue:         virtualValue,
		VirtualTokens:        virtualTokens,
		PlatformFeeBps:       100,
		YieldFeeBps:          50,
		PenaltyMultiplierBps: 9900,
	})
	require.NoError(t, err)

	assert.EqualValues(t, 1_055_944_892_690_011, quote.NewVirtualTokens.Uint64())
	assert.EqualValues(t, 30_484_545_380, quote.NewVirtualValue.Uint64())

	// Penalty applies to the gross output before fees are carved out of it.
	assert.EqualValues(t, 495_450_073, quote.GrossValueOut)
	assert.EqualValues(t, 4_954_500, quote.PlatformFee)
	assert.EqualValues(t, 2_477_250, quote.YieldFee)
	assert.EqualValues(t, 488_018_323, quote.NetValueOut)
}

func TestComputeSellQuote_Slippage(t *testing.T) {
	args := &SellQuoteArgs{
		Amount:               1_000_000_000_000,
		VirtualValue:         safemath.FromUint64(InitialVirtualValue),
		VirtualTokens:        safemath.FromUint64(InitialVirtualTokens),
		PlatformFeeBps:       100,
		YieldFeeBps:          50,
		PenaltyMultiplierBps: 10000,
	}

	quote, err := ComputeSellQuote(args)
	require.NoError(t, err)

	args.MinValueOut = quote.NetValueOut + 1
	_, err = ComputeSellQuote(args)
	assert.Equal(t, ErrSlippageExceeded, err)
}

func TestComputeBuyQuote_OverflowOnNarrowing(t *testing.T) {
	// Reserves beyond the uint64 range produce an output that cannot be
	// narrowed, which must abort before any state is touched.
	enormous := new(big.Int).Lsh(big.NewInt(1), 80)

	_, err := ComputeBuyQuote(&BuyQuoteArgs{
		Amount:               1_000_000_000_000,
		VirtualValue:         safemath.FromUint64(1),
		VirtualTokens:        enormous,
		PlatformFeeBps:       0,
		YieldFeeBps:          0,
		PenaltyMultiplierBps: 10000,
	})
	assert.Equal(t, safemath.ErrOverflow, err)
}
