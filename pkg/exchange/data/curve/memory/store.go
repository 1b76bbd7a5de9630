package memory

import (
	"context"
	"sync"
	"time"

	"github.com/marscorp-games/exchange-server/pkg/exchange/data/curve"
)

type store struct {
	mu      sync.Mutex
	records []*curve.Record
	last    uint64
}

func New() curve.Store {
	return &store{
		records: make([]*curve.Record, 0),
		last:    0,
	}
}

func (s *store) reset() {
	s.mu.Lock()
	s.records = make([]*curve.Record, 0)
	s.last = 0
	s.mu.Unlock()
}

// Put implements curve.Store.Put
func (s *store) Put(_ context.Context, data *curve.Record) error {
	if err := data.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.last++
	if item := s.findByMint(data.Mint); item != nil {
		return curve.ErrCurveExists
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

// Get implements curve.Store.Get
func (s *store) Get(_ context.Context, mint string) (*curve.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.findByMint(mint)
	if item == nil {
		return nil, curve.ErrCurveNotFound
	}

	cloned := item.Clone()
	return &cloned, nil
}

// Update implements curve.Store.Update
func (s *store) Update(_ context.Context, data *curve.Record) error {
	if err := data.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.findByMint(data.Mint)
	if item == nil {
		return curve.ErrCurveNotFound
	}

	if item.Graduated && !data.Graduated {
		return curve.ErrInvalidCurveUpdate
	}

	data.Id = item.Id
	data.CreatedAt = item.CreatedAt
	data.LastUpdatedAt = time.Now()

	data.CopyTo(item)

	return nil
}

func (s *store) findByMint(mint string) *curve.Record {
	for _, item := range s.records {
		if item.Mint == mint {
			return item
		}
	}
	return nil
}
