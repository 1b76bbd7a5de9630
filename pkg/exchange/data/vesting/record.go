package vesting

import (
	"errors"
	"time"
)

// Record is the vesting state for the creator allocation of one launched
// asset. ReleasedAmount only ever grows, up to TotalAmount. Ownership can be
// reassigned by the seizure flow.
type Record struct {
	Id uint64

	Owner string
	Mint  string

	TotalAmount    uint64
	ReleasedAmount uint64

	StartAt time.Time
	EndAt   time.Time

	CreatedAt     time.Time
	LastUpdatedAt time.Time
}

func (r *Record) Validate() error {
	if len(r.Owner) == 0 {
		return errors.New("owner is required")
	}

	if len(r.Mint) == 0 {
		return errors.New("mint is required")
	}

	if r.TotalAmount == 0 {
		return errors.New("total amount cannot be zero")
	}

	if r.ReleasedAmount > r.TotalAmount {
		return errors.New("released amount cannot exceed total amount")
	}

	if !r.EndAt.After(r.StartAt) {
		return errors.New("end time must be after start time")
	}

	return nil
}

func (r *Record) Clone() Record {
	return Record{
		Id: r.Id,

		Owner: r.Owner,
		Mint:  r.Mint,

		TotalAmount:    r.TotalAmount,
		ReleasedAmount: r.ReleasedAmount,

		StartAt: r.StartAt,
		EndAt:   r.EndAt,

		CreatedAt:     r.CreatedAt,
		LastUpdatedAt: r.LastUpdatedAt,
	}
}

func (r *Record) CopyTo(dst *Record) {
	dst.Id = r.Id

	dst.Owner = r.Owner
	dst.Mint = r.Mint

	dst.TotalAmount = r.TotalAmount
	dst.ReleasedAmount = r.ReleasedAmount

	dst.StartAt = r.StartAt
	dst.EndAt = r.EndAt

	dst.CreatedAt = r.CreatedAt
	dst.LastUpdatedAt = r.LastUpdatedAt
}
