package engine

import (
	"context"
	"database/sql"
	"math/big"

	"github.com/google/uuid"

	"github.com/marscorp-games/exchange-server/pkg/exchange/common"
	"github.com/marscorp-games/exchange-server/pkg/exchange/data/config"
	"github.com/marscorp-games/exchange-server/pkg/exchange/data/curve"
	"github.com/marscorp-games/exchange-server/pkg/exchange/ledger"
	"github.com/marscorp-games/exchange-server/pkg/exchange/pricing"
	"github.com/marscorp-games/exchange-server/pkg/exchange/safemath"
	"github.com/marscorp-games/exchange-server/pkg/metrics"
)

type SwapArgs struct {
	Owner string
	Mint  string

	IsBuy bool

	// Amount is value in for a buy and tokens in for a sell.
	Amount uint64

	// MinAmountOut is the slippage bound on the delivered amount.
	MinAmountOut uint64
}

type SwapResult struct {
	Id uuid.UUID

	Owner string
	Mint  string
	IsBuy bool

	AmountIn  uint64
	AmountOut uint64

	PlatformFee uint64
	YieldFee    uint64

	NewVirtualValue  *big.Int
	NewVirtualTokens *big.Int
	NewRealValue     uint64

	// Graduated is set when this swap pushed the curve over the graduation
	// threshold. The reserve fields above are the terminal snapshot.
	Graduated bool
}

// Swap executes a buy or sell against an asset's bonding curve.
func (e *Engine) Swap(ctx context.Context, args *SwapArgs) (*SwapResult, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "Swap")
	defer tracer.End()

	result, err := e.swap(ctx, args)
	if err != nil {
		tracer.OnError(err)
	}
	return result, err
}

func (e *Engine) swap(ctx context.Context, args *SwapArgs) (*SwapResult, error) {
	log := e.log.WithFields(map[string]interface{}{
		"method": "Swap",
		"owner":  args.Owner,
		"mint":   args.Mint,
		"is_buy": args.IsBuy,
	})

	lock := e.curveLocks.Get([]byte(args.Mint))
	lock.Lock()
	defer lock.Unlock()

	conf, err := e.data.GetGlobalConfig(ctx)
	if err != nil {
		log.WithError(err).Warn("failure getting global config")
		return nil, err
	}

	curveRecord, err := e.data.GetBondingCurveByMint(ctx, args.Mint)
	if err != nil {
		log.WithError(err).Warn("failure getting curve record")
		return nil, err
	}

	// The graduation gate comes before any arithmetic, including the amount
	// validation.
	if curveRecord.Graduated {
		return nil, ErrAlreadyGraduated
	}

	if args.Amount == 0 || len(args.Owner) == 0 {
		return nil, ErrInvalidInput
	}

	now := e.clock.Now()
	multiplier := pricing.PenaltyMultiplierBps(curveRecord.SabotagePenaltyBps, curveRecord.SabotageEndAt, now)

	var result *SwapResult
	if args.IsBuy {
		result, err = e.executeBuy(ctx, conf, curveRecord, args, multiplier)
	} else {
		result, err = e.executeSell(ctx, conf, curveRecord, args, multiplier)
	}
	if err != nil {
		log.WithError(err).Info("swap failed")
		return nil, err
	}

	log.WithFields(map[string]interface{}{
		"amount_in":  result.AmountIn,
		"amount_out": result.AmountOut,
		"graduated":  result.Graduated,
	}).Debug("executed swap")
	recordSwapEvent(ctx, result)

	return result, nil
}

func (e *Engine) executeBuy(ctx context.Context, conf *config.Record, curveRecord *curve.Record, args *SwapArgs, multiplier uint64) (*SwapResult, error) {
	quote, err := pricing.ComputeBuyQuote(&pricing.BuyQuoteArgs{
		Amount:       args.Amount,
		MinTokensOut: args.MinAmountOut,

		VirtualValue:  curveRecord.VirtualValue,
		VirtualTokens: curveRecord.VirtualTokens,

		PlatformFeeBps: conf.PlatformFeeBps,
		YieldFeeBps:    conf.YieldFeeBps,

		PenaltyMultiplierBps: multiplier,
	})
	if err != nil {
		return nil, err
	}

	newRealValue, err := safemath.AddUint64(curveRecord.RealValue, quote.AmountAfterFee)
	if err != nil {
		return nil, err
	}

	curveAddress := common.GetCurveAddress(args.Mint)
	curveVault := common.GetCurveVaultAddress(args.Mint)

	entries := make([]ledger.Entry, 0, 5)
	if quote.PlatformFee > 0 {
		entries = append(entries, ledger.Entry{Mint: ledger.ValueMint, From: args.Owner, To: conf.Admin, Amount: quote.PlatformFee})
	}
	if quote.YieldFee > 0 {
		entries = append(entries, ledger.Entry{Mint: ledger.ValueMint, From: args.Owner, To: conf.YieldDistributor, Amount: quote.YieldFee})
	}
	if quote.AmountAfterFee > 0 {
		entries = append(entries, ledger.Entry{Mint: ledger.ValueMint, From: args.Owner, To: curveAddress, Amount: quote.AmountAfterFee})
	}
	if quote.TokensOut > 0 {
		entries = append(entries, ledger.Entry{Mint: args.Mint, From: curveVault, To: args.Owner, Amount: quote.TokensOut})
	}
	if burned := quote.TokensOutFull - quote.TokensOut; burned > 0 {
		// Penalty haircut, permanently removed from circulation.
		entries = append(entries, ledger.Entry{Mint: args.Mint, From: curveVault, Amount: burned})
	}

	if err := e.ledger.Apply(ctx, entries...); err != nil {
		return nil, err
	}

	curveRecord.VirtualValue = quote.NewVirtualValue
	curveRecord.VirtualTokens = quote.NewVirtualTokens
	curveRecord.RealValue = newRealValue
	graduated := e.checkGraduation(curveRecord)

	err = e.data.ExecuteInTx(ctx, sql.LevelDefault, func(ctx context.Context) error {
		return e.data.UpdateBondingCurve(ctx, curveRecord)
	})
	if err != nil {
		return nil, err
	}

	return &SwapResult{
		Id: uuid.New(),

		Owner: args.Owner,
		Mint:  args.Mint,
		IsBuy: true,

		AmountIn:  args.Amount,
		AmountOut: quote.TokensOut,

		PlatformFee: quote.PlatformFee,
		YieldFee:    quote.YieldFee,

		NewVirtualValue:  curveRecord.VirtualValue,
		NewVirtualTokens: curveRecord.VirtualTokens,
		NewRealValue:     curveRecord.RealValue,

		Graduated: graduated,
	}, nil
}

func (e *Engine) executeSell(ctx context.Context, conf *config.Record, curveRecord *curve.Record, args *SwapArgs, multiplier uint64) (*SwapResult, error) {
	quote, err := pricing.ComputeSellQuote(&pricing.SellQuoteArgs{
		Amount:      args.Amount,
		MinValueOut: args.MinAmountOut,

		VirtualValue:  curveRecord.VirtualValue,
		VirtualTokens: curveRecord.VirtualTokens,

		PlatformFeeBps: conf.PlatformFeeBps,
		YieldFeeBps:    conf.YieldFeeBps,

		PenaltyMultiplierBps: multiplier,
	})
	if err != nil {
		return nil, err
	}

	// The backing value decreases by the penalized gross figure, which is
	// exactly what leaves the curve's holding below.
	newRealValue, err := safemath.SubUint64(curveRecord.RealValue, quote.GrossValueOut)
	if err != nil {
		return nil, err
	}

	curveAddress := common.GetCurveAddress(args.Mint)
	curveVault := common.GetCurveVaultAddress(args.Mint)

	entries := []ledger.Entry{{Mint: args.Mint, From: args.Owner, To: curveVault, Amount: args.Amount}}
	if quote.PlatformFee > 0 {
		entries = append(entries, ledger.Entry{Mint: ledger.ValueMint, From: curveAddress, To: conf.Admin, Amount: quote.PlatformFee})
	}
	if quote.YieldFee > 0 {
		entries = append(entries, ledger.Entry{Mint: ledger.ValueMint, From: curveAddress, To: conf.YieldDistributor, Amount: quote.YieldFee})
	}
	if quote.NetValueOut > 0 {
		entries = append(entries, ledger.Entry{Mint: ledger.ValueMint, From: curveAddress, To: args.Owner, Amount: quote.NetValueOut})
	}

	if err := e.ledger.Apply(ctx, entries...); err != nil {
		return nil, err
	}

	curveRecord.VirtualValue = quote.NewVirtualValue
	curveRecord.VirtualTokens = quote.NewVirtualTokens
	curveRecord.RealValue = newRealValue
	graduated := e.checkGraduation(curveRecord)

	err = e.data.ExecuteInTx(ctx, sql.LevelDefault, func(ctx context.Context) error {
		return e.data.UpdateBondingCurve(ctx, curveRecord)
	})
	if err != nil {
		return nil, err
	}

	return &SwapResult{
		Id: uuid.New(),

		Owner: args.Owner,
		Mint:  args.Mint,
		IsBuy: false,

		AmountIn:  args.Amount,
		AmountOut: quote.NetValueOut,

		PlatformFee: quote.PlatformFee,
		YieldFee:    quote.YieldFee,

		NewVirtualValue:  curveRecord.VirtualValue,
		NewVirtualTokens: curveRecord.VirtualTokens,
		NewRealValue:     curveRecord.RealValue,

		Graduated: graduated,
	}, nil
}

// checkGraduation flips the terminal graduation flag once the real backing
// value crosses the threshold. Returns whether this call graduated the curve.
func (e *Engine) checkGraduation(curveRecord *curve.Record) bool {
	if curveRecord.Graduated {
		return false
	}

	if curveRecord.RealValue > pricing.GraduationThreshold {
		curveRecord.Graduated = true
		return true
	}

	return false
}
