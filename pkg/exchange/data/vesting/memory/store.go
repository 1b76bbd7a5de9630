package memory

import (
	"context"
	"sync"
	"time"

	"github.com/marscorp-games/exchange-server/pkg/exchange/data/vesting"
)

type store struct {
	mu      sync.Mutex
	records []*vesting.Record
	last    uint64
}

func New() vesting.Store {
	return &store{
		records: make([]*vesting.Record, 0),
		last:    0,
	}
}

func (s *store) reset() {
	s.mu.Lock()
	s.records = make([]*vesting.Record, 0)
	s.last = 0
	s.mu.Unlock()
}

// Put implements vesting.Store.Put
func (s *store) Put(_ context.Context, data *vesting.Record) error {
	if err := data.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.last++
	if item := s.findByMint(data.Mint); item != nil {
		return vesting.ErrVestingExists
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

// Get implements vesting.Store.Get
func (s *store) Get(_ context.Context, mint string) (*vesting.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.findByMint(mint)
	if item == nil {
		return nil, vesting.ErrVestingNotFound
	}

	cloned := item.Clone()
	return &cloned, nil
}

// Update implements vesting.Store.Update
func (s *store) Update(_ context.Context, data *vesting.Record) error {
	if err := data.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.findByMint(data.Mint)
	if item == nil {
		return vesting.ErrVestingNotFound
	}

	if data.ReleasedAmount < item.ReleasedAmount {
		return vesting.ErrInvalidVestingUpdate
	}
	if data.TotalAmount != item.TotalAmount {
		return vesting.ErrInvalidVestingUpdate
	}
	if !data.StartAt.Equal(item.StartAt) || !data.EndAt.Equal(item.EndAt) {
		return vesting.ErrInvalidVestingUpdate
	}

	data.Id = item.Id
	data.CreatedAt = item.CreatedAt
	data.LastUpdatedAt = time.Now()

	data.CopyTo(item)

	return nil
}

func (s *store) findByMint(mint string) *vesting.Record {
	for _, item := range s.records {
		if item.Mint == mint {
			return item
		}
	}
	return nil
}
