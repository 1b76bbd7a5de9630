package memory

import (
	"context"
	"sync"
	"time"

	"github.com/marscorp-games/exchange-server/pkg/exchange/data/market"
)

type store struct {
	mu      sync.Mutex
	records []*market.Record
	last    uint64
}

func New() market.Store {
	return &store{
		records: make([]*market.Record, 0),
		last:    0,
	}
}

func (s *store) reset() {
	s.mu.Lock()
	s.records = make([]*market.Record, 0)
	s.last = 0
	s.mu.Unlock()
}

// Put implements market.Store.Put
func (s *store) Put(_ context.Context, data *market.Record) error {
	if err := data.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.last++
	if item := s.findByMarketId(data.MarketId); item != nil {
		return market.ErrMarketExists
	}

	data.Id = s.last
	if data.CreatedAt.IsZero() {
		data.CreatedAt = time.Now()
	}
	data.LastUpdatedAt = time.Now()

	cloned := data.Clone()
	s.records = append(s.records, &cloned)

	return nil
}

// Get implements market.Store.Get
func (s *store) Get(_ context.Context, marketId uint64) (*market.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.findByMarketId(marketId)
	if item == nil {
		return nil, market.ErrMarketNotFound
	}

	cloned := item.Clone()
	return &cloned, nil
}

// Update implements market.Store.Update
func (s *store) Update(_ context.Context, data *market.Record) error {
	if err := data.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.findByMarketId(data.MarketId)
	if item == nil {
		return market.ErrMarketNotFound
	}

	if item.Resolved && !data.Resolved {
		return market.ErrInvalidMarketUpdate
	}
	if data.YesPool < item.YesPool || data.NoPool < item.NoPool {
		return market.ErrInvalidMarketUpdate
	}

	data.Id = item.Id
	data.CreatedAt = item.CreatedAt
	data.LastUpdatedAt = time.Now()

	data.CopyTo(item)

	return nil
}

func (s *store) findByMarketId(marketId uint64) *market.Record {
	for _, item := range s.records {
		if item.MarketId == marketId {
			return item
		}
	}
	return nil
}
