package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/marscorp-games/exchange-server/pkg/exchange/data/vesting"
)

type store struct {
	db *sqlx.DB
}

func New(db *sql.DB) vesting.Store {
	return &store{
		db: sqlx.NewDb(db, "pgx"),
	}
}

// Put implements vesting.Store.Put
func (s *store) Put(ctx context.Context, record *vesting.Record) error {
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

// Get implements vesting.Store.Get
func (s *store) Get(ctx context.Context, mint string) (*vesting.Record, error) {
	m, err := dbGet(ctx, s.db, mint)
	if err != nil {
		return nil, err
	}
	return fromModel(m), nil
}

// Update implements vesting.Store.Update
func (s *store) Update(ctx context.Context, record *vesting.Record) error {
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
