// Package vesting implements the linear release schedule for creator-held
// supply.
package vesting

import (
	"errors"
	"time"

	"github.com/marscorp-games/exchange-server/pkg/exchange/safemath"
)

var (
	ErrInvalidTime    = errors.New("invalid timestamp")
	ErrNothingToClaim = errors.New("nothing to claim")
)

// CalculateVestedAmount returns the cumulative amount unlockable at now.
//
// Nothing is vested before startAt, everything is vested at or after endAt,
// and in between the release is linear: floor(total * elapsed / duration),
// computed in a widened domain.
func CalculateVestedAmount(totalAmount uint64, startAt, endAt, now time.Time) (uint64, error) {
	if now.Before(startAt) {
		return 0, ErrInvalidTime
	}

	if !endAt.After(startAt) {
		return 0, ErrInvalidTime
	}

	if !now.Before(endAt) {
		return totalAmount, nil
	}

	elapsed := safemath.FromUint64(uint64(now.Unix() - startAt.Unix()))
	duration := safemath.FromUint64(uint64(endAt.Unix() - startAt.Unix()))

	vested, err := safemath.Div(safemath.Mul(safemath.FromUint64(totalAmount), elapsed), duration)
	if err != nil {
		return 0, err
	}

	return safemath.ToUint64(vested)
}

// CalculateClaimableAmount returns how much can be claimed now on top of what
// was already released. A released amount momentarily ahead of the vested
// amount due to truncation clamps to zero and reports ErrNothingToClaim.
func CalculateClaimableAmount(totalAmount, releasedAmount uint64, startAt, endAt, now time.Time) (uint64, error) {
	vested, err := CalculateVestedAmount(totalAmount, startAt, endAt, now)
	if err != nil {
		return 0, err
	}

	if vested <= releasedAmount {
		return 0, ErrNothingToClaim
	}

	return vested - releasedAmount, nil
}
