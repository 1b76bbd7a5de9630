package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/marscorp-games/exchange-server/pkg/exchange/data/config"
)

type store struct {
	db *sqlx.DB
}

func New(db *sql.DB) config.Store {
	return &store{
		db: sqlx.NewDb(db, "pgx"),
	}
}

// Put implements config.Store.Put
func (s *store) Put(ctx context.Context, record *config.Record) error {
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

// Get implements config.Store.Get
func (s *store) Get(ctx context.Context) (*config.Record, error) {
	m, err := dbGet(ctx, s.db)
	if err != nil {
		return nil, err
	}
	return fromModel(m), nil
}
