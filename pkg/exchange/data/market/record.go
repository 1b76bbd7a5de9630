package market

import (
	"errors"
	"time"

	"github.com/marscorp-games/exchange-server/pkg/pointer"
)

// Record is the state of one prediction market. Pools accumulate wagered
// value per side until the oracle resolves the market, after which the
// outcome is terminal.
type Record struct {
	Id uint64

	MarketId uint64

	Title       string
	Oracle      string
	PoolAccount string

	EndAt time.Time

	Resolved bool
	Outcome  *bool

	YesPool uint64
	NoPool  uint64

	CreatedAt     time.Time
	LastUpdatedAt time.Time
}

func (r *Record) Validate() error {
	if len(r.Title) == 0 {
		return errors.New("title is required")
	}

	if len(r.Oracle) == 0 {
		return errors.New("oracle is required")
	}

	if len(r.PoolAccount) == 0 {
		return errors.New("pool account is required")
	}

	if r.EndAt.IsZero() {
		return errors.New("end time is required")
	}

	if r.Outcome != nil && !r.Resolved {
		return errors.New("outcome cannot be set on an unresolved market")
	}

	if r.Resolved && r.Outcome == nil {
		return errors.New("resolved market must have an outcome")
	}

	return nil
}

func (r *Record) Clone() Record {
	return Record{
		Id: r.Id,

		MarketId: r.MarketId,

		Title:       r.Title,
		Oracle:      r.Oracle,
		PoolAccount: r.PoolAccount,

		EndAt: r.EndAt,

		Resolved: r.Resolved,
		Outcome:  pointer.BoolCopy(r.Outcome),

		YesPool: r.YesPool,
		NoPool:  r.NoPool,

		CreatedAt:     r.CreatedAt,
		LastUpdatedAt: r.LastUpdatedAt,
	}
}

func (r *Record) CopyTo(dst *Record) {
	dst.Id = r.Id

	dst.MarketId = r.MarketId

	dst.Title = r.Title
	dst.Oracle = r.Oracle
	dst.PoolAccount = r.PoolAccount

	dst.EndAt = r.EndAt

	dst.Resolved = r.Resolved
	dst.Outcome = pointer.BoolCopy(r.Outcome)

	dst.YesPool = r.YesPool
	dst.NoPool = r.NoPool

	dst.CreatedAt = r.CreatedAt
	dst.LastUpdatedAt = r.LastUpdatedAt
}
