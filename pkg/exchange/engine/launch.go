package engine

import (
	"context"
	"database/sql"
	"math/big"

	"github.com/google/uuid"

	"github.com/marscorp-games/exchange-server/pkg/exchange/common"
	"github.com/marscorp-games/exchange-server/pkg/exchange/data/curve"
	vesting_store "github.com/marscorp-games/exchange-server/pkg/exchange/data/vesting"
	"github.com/marscorp-games/exchange-server/pkg/exchange/ledger"
	"github.com/marscorp-games/exchange-server/pkg/exchange/pricing"
	"github.com/marscorp-games/exchange-server/pkg/metrics"
)

const (
	maxNameLength   = 49
	maxSymbolLength = 9
)

type LaunchArgs struct {
	Creator string
	Name    string
	Symbol  string
	Sector  curve.Sector
}

type LaunchResult struct {
	Id uuid.UUID

	Mint string

	CurveAddress      string
	CurveVaultAddress string

	VestingAddress      string
	VestingVaultAddress string
}

// Launch creates the bonding curve and creator vesting schedule for a new
// asset and issues the full token supply into the two vaults.
func (e *Engine) Launch(ctx context.Context, args *LaunchArgs) (*LaunchResult, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "Launch")
	defer tracer.End()

	result, err := e.launch(ctx, args)
	if err != nil {
		tracer.OnError(err)
	}
	return result, err
}

func (e *Engine) launch(ctx context.Context, args *LaunchArgs) (*LaunchResult, error) {
	log := e.log.WithFields(map[string]interface{}{
		"method":  "Launch",
		"creator": args.Creator,
		"symbol":  args.Symbol,
	})

	if len(args.Creator) == 0 || len(args.Name) == 0 || len(args.Symbol) == 0 {
		return nil, ErrInvalidInput
	}
	if len(args.Name) > maxNameLength || len(args.Symbol) > maxSymbolLength {
		return nil, ErrInvalidInput
	}

	now := e.clock.Now()

	mint := common.GetMintAddress(args.Creator, args.Symbol)

	lock := e.curveLocks.Get([]byte(mint))
	lock.Lock()
	defer lock.Unlock()

	curveVault := common.GetCurveVaultAddress(mint)
	vestingVault := common.GetVestingVaultAddress(mint)

	curveRecord := &curve.Record{
		Creator: args.Creator,
		Mint:    mint,
		Sector:  args.Sector,

		VirtualValue:  new(big.Int).SetUint64(pricing.InitialVirtualValue),
		VirtualTokens: new(big.Int).SetUint64(pricing.InitialVirtualTokens),
		RealValue:     0,

		CreatedAt: now,
	}

	// The supply issuance below must not happen twice for the same mint.
	if _, err := e.data.GetBondingCurveByMint(ctx, mint); err == nil {
		return nil, ErrInvalidInput
	} else if err != curve.ErrCurveNotFound {
		log.WithError(err).Warn("failure checking for existing curve")
		return nil, err
	}

	vestingRecord := &vesting_store.Record{
		Owner: args.Creator,
		Mint:  mint,

		TotalAmount:    pricing.VestingTokenSupply,
		ReleasedAmount: 0,

		StartAt: now,
		EndAt:   now.Add(pricing.VestingDuration),

		CreatedAt: now,
	}

	err := e.ledger.Apply(
		ctx,
		ledger.Entry{Mint: mint, To: curveVault, Amount: pricing.CurveTokenSupply},
		ledger.Entry{Mint: mint, To: vestingVault, Amount: pricing.VestingTokenSupply},
	)
	if err != nil {
		log.WithError(err).Warn("failure issuing token supply")
		return nil, err
	}

	err = e.data.ExecuteInTx(ctx, sql.LevelDefault, func(ctx context.Context) error {
		if err := e.data.PutBondingCurve(ctx, curveRecord); err != nil {
			if err == curve.ErrCurveExists {
				return ErrInvalidInput
			}
			return err
		}
		return e.data.PutVestingAccount(ctx, vestingRecord)
	})
	if err != nil {
		log.WithError(err).Warn("failure creating curve and vesting records")
		return nil, err
	}

	result := &LaunchResult{
		Id: uuid.New(),

		Mint: mint,

		CurveAddress:      common.GetCurveAddress(mint),
		CurveVaultAddress: curveVault,

		VestingAddress:      common.GetVestingAddress(mint),
		VestingVaultAddress: vestingVault,
	}

	log.WithField("mint", mint).Debug("launched asset")
	recordLaunchEvent(ctx, result, args.Sector)

	return result, nil
}
