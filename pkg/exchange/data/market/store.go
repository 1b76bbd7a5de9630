package market

import (
	"context"
	"errors"
)

var (
	ErrMarketNotFound = errors.New("market not found")
	ErrMarketExists   = errors.New("market already exists")

	// ErrInvalidMarketUpdate is returned when an update would un-resolve a
	// market or shrink one of its pools.
	ErrInvalidMarketUpdate = errors.New("invalid market update")
)

type Store interface {
	// Put creates a new market record.
	Put(ctx context.Context, record *Record) error

	// Get finds the market record for a given market id.
	Get(ctx context.Context, marketId uint64) (*Record, error)

	// Update overwrites the mutable state of an existing market record.
	// Resolution is terminal and pools are monotonic.
	Update(ctx context.Context, record *Record) error
}
