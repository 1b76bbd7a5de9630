package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/marscorp-games/exchange-server/pkg/exchange/data/market"
)

type store struct {
	db *sqlx.DB
}

func New(db *sql.DB) market.Store {
	return &store{
		db: sqlx.NewDb(db, "pgx"),
	}
}

// Put implements market.Store.Put
func (s *store) Put(ctx context.Context, record *market.Record) error {
	m, err := toModel(record)
	if err != nil {
		return err
	}

	err = m.dbPut(ctx, s.db)
	if err != nil {
		return err
	}

	res := fromModel(m)
	res.CopyTo(record)

	return nil
}

// Get implements market.Store.Get
func (s *store) Get(ctx context.Context, marketId uint64) (*market.Record, error) {
	m, err := dbGet(ctx, s.db, marketId)
	if err != nil {
		return nil, err
	}
	return fromModel(m), nil
}

// Update implements market.Store.Update
func (s *store) Update(ctx context.Context, record *market.Record) error {
	m, err := toModel(record)
	if err != nil {
		return err
	}

	err = m.dbUpdate(ctx, s.db)
	if err != nil {
		return err
	}

	res := fromModel(m)
	res.CopyTo(record)

	return nil
}
