package vesting

import (
	"context"
	"errors"
)

var (
	ErrVestingNotFound = errors.New("vesting account not found")
	ErrVestingExists   = errors.New("vesting account already exists")

	// ErrInvalidVestingUpdate is returned when an update would shrink the
	// released amount or change the fixed allocation.
	ErrInvalidVestingUpdate = errors.New("invalid vesting account update")
)

type Store interface {
	// Put creates a new vesting account record.
	Put(ctx context.Context, record *Record) error

	// Get finds the vesting account record for a given mint.
	Get(ctx context.Context, mint string) (*Record, error)

	// Update overwrites the mutable state of an existing vesting account
	// record. The released amount is monotonic and the allocation and
	// schedule are fixed at creation.
	Update(ctx context.Context, record *Record) error
}
