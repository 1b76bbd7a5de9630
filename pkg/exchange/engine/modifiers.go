package engine

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/marscorp-games/exchange-server/pkg/exchange/common"
	"github.com/marscorp-games/exchange-server/pkg/exchange/ledger"
	"github.com/marscorp-games/exchange-server/pkg/exchange/pricing"
	"github.com/marscorp-games/exchange-server/pkg/metrics"
)

type InitiateTakeoverArgs struct {
	Initiator string
	Mint      string
}

type InitiateTakeoverResult struct {
	Id uuid.UUID

	Mint      string
	Initiator string

	// Stake is the initiator's token balance at the time of initiation.
	Stake uint64
}

// InitiateTakeover flags a curve as under takeover by a sufficiently large
// holder. Resolution of the takeover is an external concern.
func (e *Engine) InitiateTakeover(ctx context.Context, args *InitiateTakeoverArgs) (*InitiateTakeoverResult, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "InitiateTakeover")
	defer tracer.End()

	result, err := e.initiateTakeover(ctx, args)
	if err != nil {
		tracer.OnError(err)
	}
	return result, err
}

func (e *Engine) initiateTakeover(ctx context.Context, args *InitiateTakeoverArgs) (*InitiateTakeoverResult, error) {
	log := e.log.WithFields(map[string]interface{}{
		"method":    "InitiateTakeover",
		"initiator": args.Initiator,
		"mint":      args.Mint,
	})

	if len(args.Initiator) == 0 {
		return nil, ErrInvalidInput
	}

	lock := e.curveLocks.Get([]byte(args.Mint))
	lock.Lock()
	defer lock.Unlock()

	curveRecord, err := e.data.GetBondingCurveByMint(ctx, args.Mint)
	if err != nil {
		log.WithError(err).Warn("failure getting curve record")
		return nil, err
	}

	if curveRecord.TakeoverActive {
		return nil, ErrTakeoverInProgress
	}
	if curveRecord.Graduated {
		return nil, ErrAlreadyGraduated
	}

	stake, err := e.ledger.Balance(ctx, args.Mint, args.Initiator)
	if err != nil {
		log.WithError(err).Warn("failure getting initiator balance")
		return nil, err
	}

	// 5% of the fixed reference supply, independent of actual minted or
	// burned amounts.
	if stake < pricing.TakeoverReferenceSupply/pricing.TakeoverStakeDivisor {
		return nil, ErrInsufficientStakeForTakeover
	}

	curveRecord.TakeoverActive = true
	curveRecord.TakeoverInitiator = args.Initiator

	err = e.data.ExecuteInTx(ctx, sql.LevelDefault, func(ctx context.Context) error {
		return e.data.UpdateBondingCurve(ctx, curveRecord)
	})
	if err != nil {
		log.WithError(err).Warn("failure updating curve record")
		return nil, err
	}

	result := &InitiateTakeoverResult{
		Id: uuid.New(),

		Mint:      args.Mint,
		Initiator: args.Initiator,

		Stake: stake,
	}

	log.Debug("initiated takeover")
	recordTakeoverEvent(ctx, result)

	return result, nil
}

type SabotageArgs struct {
	Saboteur string
	Mint     string
}

type SabotageResult struct {
	Id uuid.UUID

	Mint     string
	Saboteur string

	PenaltyBps   uint16
	PenaltyEndAt time.Time
}

// Sabotage pays the fixed sabotage cost and starts or refreshes the swap
// penalty window on a curve. The penalty rate never compounds; only the
// window end moves.
func (e *Engine) Sabotage(ctx context.Context, args *SabotageArgs) (*SabotageResult, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "Sabotage")
	defer tracer.End()

	result, err := e.sabotage(ctx, args)
	if err != nil {
		tracer.OnError(err)
	}
	return result, err
}

func (e *Engine) sabotage(ctx context.Context, args *SabotageArgs) (*SabotageResult, error) {
	log := e.log.WithFields(map[string]interface{}{
		"method":   "Sabotage",
		"saboteur": args.Saboteur,
		"mint":     args.Mint,
	})

	if len(args.Saboteur) == 0 {
		return nil, ErrInvalidInput
	}

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

	now := e.clock.Now()

	// 50% to the curve's holding, 30% to the admin treasury and the
	// remainder to the yield distributor.
	toCurve := pricing.SabotageCost / 2
	toAdmin := pricing.SabotageCost * 3 / 10
	toYield := pricing.SabotageCost - toCurve - toAdmin

	err = e.ledger.Apply(
		ctx,
		ledger.Entry{Mint: ledger.ValueMint, From: args.Saboteur, To: common.GetCurveAddress(args.Mint), Amount: toCurve},
		ledger.Entry{Mint: ledger.ValueMint, From: args.Saboteur, To: conf.Admin, Amount: toAdmin},
		ledger.Entry{Mint: ledger.ValueMint, From: args.Saboteur, To: conf.YieldDistributor, Amount: toYield},
	)
	if err != nil {
		log.WithError(err).Warn("failure paying sabotage cost")
		return nil, err
	}

	curveRecord.SabotagePenaltyBps = pricing.SabotagePenaltyBps
	curveRecord.SabotageEndAt = now.Add(pricing.SabotageWindow)

	err = e.data.ExecuteInTx(ctx, sql.LevelDefault, func(ctx context.Context) error {
		return e.data.UpdateBondingCurve(ctx, curveRecord)
	})
	if err != nil {
		log.WithError(err).Warn("failure updating curve record")
		return nil, err
	}

	result := &SabotageResult{
		Id: uuid.New(),

		Mint:     args.Mint,
		Saboteur: args.Saboteur,

		PenaltyBps:   curveRecord.SabotagePenaltyBps,
		PenaltyEndAt: curveRecord.SabotageEndAt,
	}

	log.Debug("sabotaged curve")
	recordSabotageEvent(ctx, result)

	return result, nil
}

type SeizeLockedTokensArgs struct {
	Authority string
	Mint      string
	NewOwner  string
}

type SeizeLockedTokensResult struct {
	Id uuid.UUID

	Mint string

	OldOwner string
	NewOwner string

	// Amount is the total vesting allocation now controlled by the new owner.
	Amount uint64
}

// SeizeLockedTokens reassigns the vesting allocation of an asset to a new
// owner. The admin identity is trusted unconditionally; whether a takeover
// actually resolved in the new owner's favor is decided outside the engine.
func (e *Engine) SeizeLockedTokens(ctx context.Context, args *SeizeLockedTokensArgs) (*SeizeLockedTokensResult, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "SeizeLockedTokens")
	defer tracer.End()

	result, err := e.seizeLockedTokens(ctx, args)
	if err != nil {
		tracer.OnError(err)
	}
	return result, err
}

func (e *Engine) seizeLockedTokens(ctx context.Context, args *SeizeLockedTokensArgs) (*SeizeLockedTokensResult, error) {
	log := e.log.WithFields(map[string]interface{}{
		"method":    "SeizeLockedTokens",
		"mint":      args.Mint,
		"new_owner": args.NewOwner,
	})

	if len(args.NewOwner) == 0 {
		return nil, ErrInvalidInput
	}

	lock := e.curveLocks.Get([]byte(args.Mint))
	lock.Lock()
	defer lock.Unlock()

	conf, err := e.data.GetGlobalConfig(ctx)
	if err != nil {
		log.WithError(err).Warn("failure getting global config")
		return nil, err
	}

	if args.Authority != conf.Admin {
		return nil, ErrUnauthorized
	}

	vestingRecord, err := e.data.GetVestingAccountByMint(ctx, args.Mint)
	if err != nil {
		log.WithError(err).Warn("failure getting vesting record")
		return nil, err
	}

	oldOwner := vestingRecord.Owner
	vestingRecord.Owner = args.NewOwner

	err = e.data.ExecuteInTx(ctx, sql.LevelDefault, func(ctx context.Context) error {
		return e.data.UpdateVestingAccount(ctx, vestingRecord)
	})
	if err != nil {
		log.WithError(err).Warn("failure updating vesting record")
		return nil, err
	}

	result := &SeizeLockedTokensResult{
		Id: uuid.New(),

		Mint: args.Mint,

		OldOwner: oldOwner,
		NewOwner: args.NewOwner,

		Amount: vestingRecord.TotalAmount,
	}

	log.WithField("old_owner", oldOwner).Debug("seized locked tokens")
	recordSeizureEvent(ctx, result)

	return result, nil
}
