package engine

import (
	"context"

	"github.com/marscorp-games/exchange-server/pkg/exchange/data/curve"
	"github.com/marscorp-games/exchange-server/pkg/metrics"
)

const metricsStructName = "exchange_engine"

const (
	launchEventName   = "AssetLaunched"
	swapEventName     = "SwapExecuted"
	claimEventName    = "VestedTokensClaimed"
	takeoverEventName = "TakeoverInitiated"
	sabotageEventName = "CurveSabotaged"
	seizureEventName  = "LockedTokensSeized"
)

func recordLaunchEvent(ctx context.Context, result *LaunchResult, sector curve.Sector) {
	metrics.RecordEvent(ctx, launchEventName, map[string]interface{}{
		"id":     result.Id.String(),
		"mint":   result.Mint,
		"sector": sector.String(),
	})
}

func recordSwapEvent(ctx context.Context, result *SwapResult) {
	metrics.RecordEvent(ctx, swapEventName, map[string]interface{}{
		"id":           result.Id.String(),
		"mint":         result.Mint,
		"is_buy":       result.IsBuy,
		"amount_in":    result.AmountIn,
		"amount_out":   result.AmountOut,
		"platform_fee": result.PlatformFee,
		"yield_fee":    result.YieldFee,
		"real_value":   result.NewRealValue,
		"graduated":    result.Graduated,
	})
}

func recordClaimEvent(ctx context.Context, result *ClaimVestedResult) {
	metrics.RecordEvent(ctx, claimEventName, map[string]interface{}{
		"id":       result.Id.String(),
		"mint":     result.Mint,
		"amount":   result.Amount,
		"released": result.ReleasedAmount,
	})
}

func recordTakeoverEvent(ctx context.Context, result *InitiateTakeoverResult) {
	metrics.RecordEvent(ctx, takeoverEventName, map[string]interface{}{
		"id":        result.Id.String(),
		"mint":      result.Mint,
		"initiator": result.Initiator,
		"stake":     result.Stake,
	})
}

func recordSabotageEvent(ctx context.Context, result *SabotageResult) {
	metrics.RecordEvent(ctx, sabotageEventName, map[string]interface{}{
		"id":          result.Id.String(),
		"mint":        result.Mint,
		"penalty_bps": result.PenaltyBps,
		"end_at":      result.PenaltyEndAt.Unix(),
	})
}

func recordSeizureEvent(ctx context.Context, result *SeizeLockedTokensResult) {
	metrics.RecordEvent(ctx, seizureEventName, map[string]interface{}{
		"id":        result.Id.String(),
		"mint":      result.Mint,
		"old_owner": result.OldOwner,
		"new_owner": result.NewOwner,
		"amount":    result.Amount,
	})
}
