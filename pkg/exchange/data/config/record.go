package config

import (
	"errors"
	"time"
)

// Record is the platform-wide exchange configuration. Records are versioned
// by insertion order and the latest one wins, so fee changes never rewrite
// history.
type Record struct {
	Id uint64

	Admin            string
	YieldDistributor string

	PlatformFeeBps uint16
	YieldFeeBps    uint16

	CreatedAt time.Time
}

func (r *Record) Validate() error {
	if len(r.Admin) == 0 {
		return errors.New("admin is required")
	}

	if len(r.YieldDistributor) == 0 {
		return errors.New("yield distributor is required")
	}

	if r.PlatformFeeBps > 10000 {
		return errors.New("platform fee bps cannot exceed 10000")
	}

	if r.YieldFeeBps > 10000 {
		return errors.New("yield fee bps cannot exceed 10000")
	}

	if int(r.PlatformFeeBps)+int(r.YieldFeeBps) > 10000 {
		return errors.New("total fee bps cannot exceed 10000")
	}

	return nil
}

func (r *Record) Clone() Record {
	return Record{
		Id: r.Id,

		Admin:            r.Admin,
		YieldDistributor: r.YieldDistributor,

		PlatformFeeBps: r.PlatformFeeBps,
		YieldFeeBps:    r.YieldFeeBps,

		CreatedAt: r.CreatedAt,
	}
}

func (r *Record) CopyTo(dst *Record) {
	dst.Id = r.Id

	dst.Admin = r.Admin
	dst.YieldDistributor = r.YieldDistributor

	dst.PlatformFeeBps = r.PlatformFeeBps
	dst.YieldFeeBps = r.YieldFeeBps

	dst.CreatedAt = r.CreatedAt
}
