// Package pricing implements the constant product bonding curve used to price
// swaps between native value and launched tokens.
//
// Both swap directions preserve virtual_value * virtual_tokens across the
// reserve update, within the truncation of the division step. Sabotage
// penalties haircut only the amount delivered to the trader; the reserves are
// always updated with the full unpenalized figures, so the difference is a
// permanent sink.
package pricing

import (
	"errors"
	"math/big"
	"time"

	"github.com/marscorp-games/exchange-server/pkg/exchange/safemath"
)

var ErrSlippageExceeded = errors.New("slippage tolerance exceeded")

// PenaltyMultiplierBps returns the swap output multiplier in basis points.
// While a sabotage window is active the multiplier drops below the full
// 10000 by the configured penalty.
func PenaltyMultiplierBps(penaltyBps uint16, penaltyEndsAt, now time.Time) uint64 {
	if penaltyEndsAt.After(now) {
		return uint64(FeeDenominatorBps - penaltyBps)
	}
	return FeeDenominatorBps
}

type BuyQuoteArgs struct {
	// Amount is the native value paid in, inclusive of fees.
	Amount uint64

	// MinTokensOut is the trader's slippage bound on delivered tokens.
	MinTokensOut uint64

	VirtualValue  *big.Int
	VirtualTokens *big.Int

	PlatformFeeBps uint16
	YieldFeeBps    uint16

	// PenaltyMultiplierBps is the output multiplier from PenaltyMultiplierBps.
	PenaltyMultiplierBps uint64
}

type BuyQuote struct {
	PlatformFee    uint64
	YieldFee       uint64
	AmountAfterFee uint64

	// Reserve update, computed from the full unpenalized output.
	NewVirtualValue  *big.Int
	NewVirtualTokens *big.Int

	// TokensOutFull is the unpenalized curve output; TokensOut is the amount
	// actually delivered to the trader after the penalty haircut.
	TokensOutFull uint64
	TokensOut     uint64
}

// ComputeBuyQuote prices a buy (value in, tokens out). Fees are taken from the
// input before the curve is consulted; the sabotage penalty is applied to the
// output after the reserve update is computed.
func ComputeBuyQuote(args *BuyQuoteArgs) (*BuyQuote, error) {
	amount := safemath.FromUint64(args.Amount)

	platformFee, err := safemath.MulBps(amount, uint64(args.PlatformFeeBps))
	if err != nil {
		return nil, err
	}
	yieldFee, err := safemath.MulBps(amount, uint64(args.YieldFeeBps))
	if err != nil {
		return nil, err
	}

	amountAfterFee, err := safemath.Sub(amount, safemath.Add(platformFee, yieldFee))
	if err != nil {
		return nil, err
	}

	k := safemath.Mul(args.VirtualValue, args.VirtualTokens)
	newVirtualValue := safemath.Add(args.VirtualValue, amountAfterFee)
	newVirtualTokens, err := safemath.Div(k, newVirtualValue)
	if err != nil {
		return nil, err
	}

	tokensOutFull, err := safemath.Sub(args.VirtualTokens, newVirtualTokens)
	if err != nil {
		return nil, err
	}

	tokensOutAdjusted, err := safemath.MulBps(tokensOutFull, args.PenaltyMultiplierBps)
	if err != nil {
		return nil, err
	}

	tokensOut, err := safemath.ToUint64(tokensOutAdjusted)
	if err != nil {
		return nil, err
	}

	if tokensOut < args.MinTokensOut {
		return nil, ErrSlippageExceeded
	}

	tokensOutFullNarrowed, err := safemath.ToUint64(tokensOutFull)
	if err != nil {
		return nil, err
	}

	platformFeeNarrowed, err := safemath.ToUint64(platformFee)
	if err != nil {
		return nil, err
	}
	yieldFeeNarrowed, err := safemath.ToUint64(yieldFee)
	if err != nil {
		return nil, err
	}
	amountAfterFeeNarrowed, err := safemath.ToUint64(amountAfterFee)
	if err != nil {
		return nil, err
	}

	return &BuyQuote{
		PlatformFee:    platformFeeNarrowed,
		YieldFee:       yieldFeeNarrowed,
		AmountAfterFee: amountAfterFeeNarrowed,

		NewVirtualValue:  newVirtualValue,
		NewVirtualTokens: newVirtualTokens,

		TokensOutFull: tokensOutFullNarrowed,
		TokensOut:     tokensOut,
	}, nil
}

type SellQuoteArgs struct {
	// Amount is the token amount sold into the curve.
	Amount uint64

	// MinValueOut is the trader's slippage bound on net value received.
	MinValueOut uint64

	VirtualValue  *big.Int
	VirtualTokens *big.Int

	PlatformFeeBps uint16
	YieldFeeBps    uint16

	PenaltyMultiplierBps uint64
}

type SellQuote struct {
	// Reserve update, computed from the full unpenalized output.
	NewVirtualValue  *big.Int
	NewVirtualTokens *big.Int

	// GrossValueOut is the penalized gross output that leaves the curve's
	// backing; fees are carved out of it before the trader is paid.
	GrossValueOut uint64

	PlatformFee uint64
	YieldFee    uint64
	NetValueOut uint64
}

// ComputeSellQuote prices a sell (tokens in, value out). Unlike the buy path,
// the penalty multiplier is applied to the gross output first and fees are
// then taken from the adjusted figure.
func ComputeSellQuote(args *SellQuoteArgs) (*SellQuote, error) {
	amount := safemath.FromUint64(args.Amount)

	k := safemath.Mul(args.VirtualValue, args.VirtualTokens)
	newVirtualTokens := safemath.Add(args.VirtualTokens, amount)
	newVirtualValue, err := safemath.Div(k, newVirtualTokens)
	if err != nil {
		return nil, err
	}

	grossFull, err := safemath.Sub(args.VirtualValue, newVirtualValue)
	if err != nil {
		return nil, err
	}

	grossAdjusted, err := safemath.MulBps(grossFull, args.PenaltyMultiplierBps)
	if err != nil {
		return nil, err
	}

	platformFee, err := safemath.MulBps(grossAdjusted, uint64(args.PlatformFeeBps))
	if err != nil {
		return nil, err
	}
	yieldFee, err := safemath.MulBps(grossAdjusted, uint64(args.YieldFeeBps))
	if err != nil {
		return nil, err
	}

	netOut, err := safemath.Sub(grossAdjusted, safemath.Add(platformFee, yieldFee))
	if err != nil {
		return nil, err
	}

	netValueOut, err := safemath.ToUint64(netOut)
	if err != nil {
		return nil, err
	}

	if netValueOut < args.MinValueOut {
		return nil, ErrSlippageExceeded
	}

	grossValueOut, err := safemath.ToUint64(grossAdjusted)
	if err != nil {
		return nil, err
	}

	platformFeeNarrowed, err := safemath.ToUint64(platformFee)
	if err != nil {
		return nil, err
	}
	yieldFeeNarrowed, err := safemath.ToUint64(yieldFee)
	if err != nil {
		return nil, err
	}

	return &SellQuote{
		NewVirtualValue:  newVirtualValue,
		NewVirtualTokens: newVirtualTokens,

		GrossValueOut: grossValueOut,

		PlatformFee: platformFeeNarrowed,
		YieldFee:    yieldFeeNarrowed,
		NetValueOut: netValueOut,
	}, nil
}
