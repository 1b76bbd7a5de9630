// Package engine executes the exchange's economic operations against the
// data layer and the balance ledger.
//
// Every operation reads the clock once, computes its full outcome purely,
// and only then applies record mutations and ledger entries as one atomic
// unit. Any failure aborts the invocation with no partial state change.
package engine

import (
	"time"

	"github.com/sirupsen/logrus"

	exchange_data "github.com/marscorp-games/exchange-server/pkg/exchange/data"
	"github.com/marscorp-games/exchange-server/pkg/exchange/ledger"
	sync_util "github.com/marscorp-games/exchange-server/pkg/sync"
)

const stripedLockParallelization = 512

// Clock provides the single time read taken at the start of each invocation.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

type Engine struct {
	log    *logrus.Entry
	data   exchange_data.ExchangeData
	ledger ledger.Ledger
	clock  Clock

	// Single-writer access per curve/vesting record and per market for the
	// duration of one invocation.
	//
	// todo: distributed locks for multi-instance deployments
	curveLocks  *sync_util.StripedLock
	marketLocks *sync_util.StripedLock
}

func New(data exchange_data.ExchangeData, l ledger.Ledger) *Engine {
	return NewWithClock(data, l, systemClock{})
}

func NewWithClock(data exchange_data.ExchangeData, l ledger.Ledger, clock Clock) *Engine {
	return &Engine{
		log:    logrus.StandardLogger().WithField("type", "exchange/engine"),
		data:   data,
		ledger: l,
		clock:  clock,

		curveLocks:  sync_util.NewStripedLock(stripedLockParallelization),
		marketLocks: sync_util.NewStripedLock(stripedLockParallelization),
	}
}
