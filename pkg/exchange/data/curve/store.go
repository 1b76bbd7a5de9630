package curve

import (
	"context"
	"errors"
)

var (
	ErrCurveNotFound = errors.New("bonding curve not found")
	ErrCurveExists   = errors.New("bonding curve already exists")

	// ErrInvalidCurveUpdate is returned when an update would violate a
	// monotonic invariant (eg. resetting the graduated flag).
	ErrInvalidCurveUpdate = errors.New("invalid bonding curve update")
)

type Store interface {
	// Put creates a new bonding curve record.
	Put(ctx context.Context, record *Record) error

	// Get finds the bonding curve record for a given mint.
	Get(ctx context.Context, mint string) (*Record, error)

	// Update overwrites the mutable state of an existing bonding curve
	// record. Graduation is terminal and can never be unset.
	Update(ctx context.Context, record *Record) error
}
