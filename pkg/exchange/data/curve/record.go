package curve

import (
	"errors"
	"math/big"
	"time"
)

type Sector uint8

const (
	SectorUnknown Sector = iota
	SectorTech
	SectorMining
	SectorEnergy
	SectorTerraforming
)

func (s Sector) String() string {
	switch s {
	case SectorTech:
		return "tech"
	case SectorMining:
		return "mining"
	case SectorEnergy:
		return "energy"
	case SectorTerraforming:
		return "terraforming"
	}
	return "unknown"
}

// Record is the bonding curve state for one launched asset.
//
// The virtual reserves are pricing-only quantities and can exceed the uint64
// range, so they live in the widened domain. RealValue is the actual native
// value backing the curve and is bounded.
type Record struct {
	Id uint64

	Creator string
	Mint    string
	Sector  Sector

	VirtualValue  *big.Int
	VirtualTokens *big.Int
	RealValue     uint64

	Graduated bool

	TakeoverActive    bool
	TakeoverInitiator string

	SabotagePenaltyBps uint16
	SabotageEndAt      time.Time

	CreatedAt     time.Time
	LastUpdatedAt time.Time
}

func (r *Record) Validate() error {
	if len(r.Creator) == 0 {
		return errors.New("creator is required")
	}

	if len(r.Mint) == 0 {
		return errors.New("mint is required")
	}

	if r.VirtualValue == nil || r.VirtualValue.Sign() < 0 {
		return errors.New("virtual value must be a non-negative integer")
	}

	if r.VirtualTokens == nil || r.VirtualTokens.Sign() < 0 {
		return errors.New("virtual tokens must be a non-negative integer")
	}

	if r.SabotagePenaltyBps > 10000 {
		return errors.New("sabotage penalty bps cannot exceed 10000")
	}

	if !r.TakeoverActive && len(r.TakeoverInitiator) > 0 {
		return errors.New("takeover initiator set without an active takeover")
	}

	if r.TakeoverActive && len(r.TakeoverInitiator) == 0 {
		return errors.New("takeover initiator is required")
	}

	return nil
}

// IsPenaltyActive reports whether a sabotage window covers the provided time.
func (r *Record) IsPenaltyActive(now time.Time) bool {
	return r.SabotageEndAt.After(now)
}

func (r *Record) Clone() Record {
	return Record{
		Id: r.Id,

		Creator: r.Creator,
		Mint:    r.Mint,
		Sector:  r.Sector,

		VirtualValue:  new(big.Int).Set(r.VirtualValue),
		VirtualTokens: new(big.Int).Set(r.VirtualTokens),
		RealValue:     r.RealValue,

		Graduated: r.Graduated,

		TakeoverActive:    r.TakeoverActive,
		TakeoverInitiator: r.TakeoverInitiator,

		SabotagePenaltyBps: r.SabotagePenaltyBps,
		SabotageEndAt:      r.SabotageEndAt,

		CreatedAt:     r.CreatedAt,
		LastUpdatedAt: r.LastUpdatedAt,
	}
}

func (r *Record) CopyTo(dst *Record) {
	dst.Id = r.Id

	dst.Creator = r.Creator
	dst.Mint = r.Mint
	dst.Sector = r.Sector

	dst.VirtualValue = new(big.Int).Set(r.VirtualValue)
	dst.VirtualTokens = new(big.Int).Set(r.VirtualTokens)
	dst.RealValue = r.RealValue

	dst.Graduated = r.Graduated

	dst.TakeoverActive = r.TakeoverActive
	dst.TakeoverInitiator = r.TakeoverInitiator

	dst.SabotagePenaltyBps = r.SabotagePenaltyBps
	dst.SabotageEndAt = r.SabotageEndAt

	dst.CreatedAt = r.CreatedAt
	dst.LastUpdatedAt = r.LastUpdatedAt
}
