package engine

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/marscorp-games/exchange-server/pkg/exchange/common"
	"github.com/marscorp-games/exchange-server/pkg/exchange/ledger"
	"github.com/marscorp-games/exchange-server/pkg/exchange/safemath"
	vesting_calc "github.com/marscorp-games/exchange-server/pkg/exchange/vesting"
	"github.com/marscorp-games/exchange-server/pkg/metrics"
)

type ClaimVestedArgs struct {
	Owner string
	Mint  string
}

type ClaimVestedResult struct {
	Id uuid.UUID

	Owner string
	Mint  string

	// Amount claimed by this call and the cumulative released amount after it.
	Amount         uint64
	ReleasedAmount uint64
}

// ClaimVested transfers the currently unlocked portion of the creator
// allocation to the vesting owner.
func (e *Engine) ClaimVested(ctx context.Context, args *ClaimVestedArgs) (*ClaimVestedResult, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "ClaimVested")
	defer tracer.End()

	result, err := e.claimVested(ctx, args)
	if err != nil {
		tracer.OnError(err)
	}
	return result, err
}

func (e *Engine) claimVested(ctx context.Context, args *ClaimVestedArgs) (*ClaimVestedResult, error) {
	log := e.log.WithFields(map[string]interface{}{
		"method": "ClaimVested",
		"owner":  args.Owner,
		"mint":   args.Mint,
	})

	lock := e.curveLocks.Get([]byte(args.Mint))
	lock.Lock()
	defer lock.Unlock()

	vestingRecord, err := e.data.GetVestingAccountByMint(ctx, args.Mint)
	if err != nil {
		log.WithError(err).Warn("failure getting vesting record")
		return nil, err
	}

	if args.Owner != vestingRecord.Owner {
		return nil, ErrUnauthorized
	}

	now := e.clock.Now()

	claimable, err := vesting_calc.CalculateClaimableAmount(
		vestingRecord.TotalAmount,
		vestingRecord.ReleasedAmount,
		vestingRecord.StartAt,
		vestingRecord.EndAt,
		now,
	)
	if err != nil {
		switch err {
		case vesting_calc.ErrInvalidTime:
			return nil, ErrInvalidTime
		case vesting_calc.ErrNothingToClaim:
			return nil, ErrNothingToClaim
		}
		return nil, err
	}

	newReleasedAmount, err := safemath.AddUint64(vestingRecord.ReleasedAmount, claimable)
	if err != nil {
		return nil, err
	}

	err = e.ledger.Apply(ctx, ledger.Entry{
		Mint:   args.Mint,
		From:   common.GetVestingVaultAddress(args.Mint),
		To:     args.Owner,
		Amount: claimable,
	})
	if err != nil {
		log.WithError(err).Warn("failure transferring vested tokens")
		return nil, err
	}

	vestingRecord.ReleasedAmount = newReleasedAmount

	err = e.data.ExecuteInTx(ctx, sql.LevelDefault, func(ctx context.Context) error {
		return e.data.UpdateVestingAccount(ctx, vestingRecord)
	})
	if err != nil {
		log.WithError(err).Warn("failure updating vesting record")
		return nil, err
	}

	result := &ClaimVestedResult{
		Id: uuid.New(),

		Owner: args.Owner,
		Mint:  args.Mint,

		Amount:         claimable,
		ReleasedAmount: newReleasedAmount,
	}

	log.WithField("amount", claimable).Debug("claimed vested tokens")
	recordClaimEvent(ctx, result)

	return result, nil
}
