package vesting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateVestedAmount(t *testing.T) {
	total := uint64(200_000_000_000_000)
	startAt := time.Now()
	endAt := startAt.Add(365 * 24 * time.Hour)

	for _, tc := range []struct {
		at       time.Time
		expected uint64
	}{
		{startAt, 0},
		{endAt, total},
		{endAt.Add(time.Hour), total},
		{startAt.Add(365 * 12 * time.Hour), total / 2},
		{startAt.Add(365 * 6 * time.Hour), total / 4},
	} {
		vested, err := CalculateVestedAmount(total, startAt, endAt, tc.at)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, vested)
	}
}

func TestCalculateVestedAmount_Monotonic(t *testing.T) {
	total := uint64(1_000_000_007)
	startAt := time.Now()
	endAt := startAt.Add(time.Hour)

	var previous uint64
	for at := startAt; !at.After(endAt); at = at.Add(time.Minute) {
		vested, err := CalculateVestedAmount(total, startAt, endAt, at)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, vested, previous)
		assert.LessOrEqual(t, vested, total)
		previous = vested
	}
	assert.Equal(t, total, previous)
}

func TestCalculateVestedAmount_InvalidTime(t *testing.T) {
	startAt := time.Now()
	endAt := startAt.Add(time.Hour)

	_, err := CalculateVestedAmount(100, startAt, endAt, startAt.Add(-time.Second))
	assert.Equal(t, ErrInvalidTime, err)

	_, err = CalculateVestedAmount(100, startAt, startAt, startAt)
	assert.Equal(t, ErrInvalidTime, err)

	_, err = CalculateVestedAmount(100, endAt, startAt, endAt)
	assert.Equal(t, ErrInvalidTime, err)
}

func TestCalculateClaimableAmount(t *testing.T) {
	total := uint64(1_000_000)
	startAt := time.Now()
	endAt := startAt.Add(time.Hour)
	halfway := startAt.Add(30 * time.Minute)

	claimable, err := CalculateClaimableAmount(total, 0, startAt, endAt, halfway)
	require.NoError(t, err)
	assert.Equal(t, total/2, claimable)

	// Claiming twice within the same instant finds nothing left.
	_, err = CalculateClaimableAmount(total, claimable, startAt, endAt, halfway)
	assert.Equal(t, ErrNothingToClaim, err)

	// A released amount ahead of the vested amount clamps to zero rather
	// than failing arithmetic.
	_, err = CalculateClaimableAmount(total, total/2+1, startAt, endAt, halfway)
	assert.Equal(t, ErrNothingToClaim, err)

	_, err = CalculateClaimableAmount(total, 0, startAt, endAt, startAt)
	assert.Equal(t, ErrNothingToClaim, err)
}
