package memory

import (
	"context"
	"sync"
	"time"

	"github.com/marscorp-games/exchange-server/pkg/exchange/data/config"
)

type store struct {
	mu      sync.Mutex
	records []*config.Record
	last    uint64
}

func New() config.Store {
	return &store{
		records: make([]*config.Record, 0),
		last:    0,
	}
}

func (s *store) reset() {
	s.mu.Lock()
	s.records = make([]*config.Record, 0)
	s.last = 0
	s.mu.Unlock()
}

// Put implements config.Store.Put
func (s *store) Put(_ context.Context, data *config.Record) error {
	if err := data.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.last++
	data.Id = s.last
	if data.CreatedAt.IsZero() {
		data.CreatedAt = time.Now()
	}

	cloned := data.Clone()
	s.records = append(s.records, &cloned)

	return nil
}

// Get implements config.Store.Get
func (s *store) Get(_ context.Context) (*config.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.records) == 0 {
		return nil, config.ErrConfigNotFound
	}

	cloned := s.records[len(s.records)-1].Clone()
	return &cloned, nil
}
