package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/marscorp-games/exchange-server/pkg/exchange/data/curve"
)

type store struct {
	db *sqlx.DB
}

func New(db *sql.DB) curve.Store {
	return &store{
		db: sqlx.NewDb(db, "pgx"),
	}
}

// Put implements curve.Store.Put
func (s *store) Put(ctx context.Context, record *curve.Record) error {
	m, err := toModel(record)
	if err != nil {
		return err
	}

	err = m.dbPut(ctx, s.db)
	if err != nil {
		return err
	}

	res, err := fromModel(m)
	if err != nil {
		return err
	}
	res.CopyTo(record)

	return nil
}

// Get implements curve.Store.Get
func (s *store) Get(ctx context.Context, mint string) (*curve.Record, error) {
	m, err := dbGet(ctx, s.db, mint)
	if err != nil {
		return nil, err
	}
	return fromModel(m)
}

// Update implements curve.Store.Update
func (s *store) Update(ctx context.Context, record *curve.Record) error {
	m, err := toModel(record)
	if err != nil {
		return err
	}

	err = m.dbUpdate(ctx, s.db)
	if err != nil {
		return err
	}

	res, err := fromModel(m)
	if err != nil {
		return err
	}
	res.CopyTo(record)

	return nil
}
