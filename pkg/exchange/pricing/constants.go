package pricing

import "time"

const (
	// FeeDenominatorBps is the basis point denominator for all fee and
	// penalty math.
	FeeDenominatorBps = 10000

	// Initial virtual reserves seeded into every launched curve. The token
	// side prices roughly 1B tokens against 30 units of native value.
	InitialVirtualValue  uint64 = 30_000_000_000
	InitialVirtualTokens uint64 = 1_073_000_000_000_000

	// Token issuance at launch: 80% to the curve's trading vault, 20% locked
	// for the creator under vesting.
	TotalTokenSupply   uint64 = 1_000_000_000_000_000
	CurveTokenSupply   uint64 = 800_000_000_000_000
	VestingTokenSupply uint64 = 200_000_000_000_000

	// GraduationThreshold is the real backing value above which a curve
	// graduates and trading is frozen.
	GraduationThreshold uint64 = 85_000_000_000

	// TakeoverReferenceSupply is the fixed circulating supply used for the
	// takeover stake requirement. Deliberately independent of actual minted
	// or burned supply.
	TakeoverReferenceSupply uint64 = 800_000_000_000_000

	// TakeoverStakeDivisor sets the takeover eligibility threshold at 5% of
	// the reference supply.
	TakeoverStakeDivisor uint64 = 20

	// SabotageCost is the fixed native value price of a sabotage, split 50%
	// to the curve, 30% to the admin treasury and 20% to the yield
	// distributor.
	SabotageCost uint64 = 2_000_000_000

	// SabotagePenaltyBps is the output haircut applied to swaps while a
	// sabotage window is active.
	SabotagePenaltyBps uint16 = 100

	// SabotageWindow is how long a sabotage penalty lasts. Repeated sabotage
	// refreshes the window without compounding the penalty.
	SabotageWindow = 24 * time.Hour

	// VestingDuration is the linear release period for creator-held supply.
	VestingDuration = 365 * 24 * time.Hour
)
