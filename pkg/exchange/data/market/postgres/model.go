package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	pgutil "github.com/marscorp-games/exchange-server/pkg/database/postgres"
	"github.com/marscorp-games/exchange-server/pkg/exchange/data/market"
	"github.com/marscorp-games/exchange-server/pkg/pointer"
)

const (
	tableName = "marscorp__exchange_market"
)

type model struct {
	Id sql.NullInt64 `db:"id"`

	MarketId uint64 `db:"market_id"`

	Title       string `db:"title"`
	Oracle      string `db:"oracle"`
	PoolAccount string `db:"pool_account"`

	EndAt time.Time `db:"end_at"`

	Resolved bool         `db:"resolved"`
	Outcome  sql.NullBool `db:"outcome"`

	YesPool uint64 `db:"yes_pool"`
	NoPool  uint64 `db:"no_pool"`

	CreatedAt     time.Time `db:"created_at"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
}

func toModel(obj *market.Record) (*model, error) {
	if err := obj.Validate(); err != nil {
		return nil, err
	}

	if obj.CreatedAt.IsZero() {
		obj.CreatedAt = time.Now().UTC()
	}

	var outcome sql.NullBool
	if obj.Outcome != nil {
		outcome = sql.NullBool{Bool: *obj.Outcome, Valid: true}
	}

	return &model{
		Id:            sql.NullInt64{Int64: int64(obj.Id), Valid: true},
		MarketId:      obj.MarketId,
		Title:         obj.Title,
		Oracle:        obj.Oracle,
		PoolAccount:   obj.PoolAccount,
		EndAt:         obj.EndAt,
		Resolved:      obj.Resolved,
		Outcome:       outcome,
		YesPool:       obj.YesPool,
		NoPool:        obj.NoPool,
		CreatedAt:     obj.CreatedAt,
		LastUpdatedAt: obj.LastUpdatedAt,
	}, nil
}

func fromModel(obj *model) *market.Record {
	return &market.Record{
		Id:            uint64(obj.Id.Int64),
		MarketId:      obj.MarketId,
		Title:         obj.Title,
		Oracle:        obj.Oracle,
		PoolAccount:   obj.PoolAccount,
		EndAt:         obj.EndAt,
		Resolved:      obj.Resolved,
		Outcome:       pointer.BoolIfValid(obj.Outcome.Valid, obj.Outcome.Bool),
		YesPool:       obj.YesPool,
		NoPool:        obj.NoPool,
		CreatedAt:     obj.CreatedAt,
		LastUpdatedAt: obj.LastUpdatedAt,
	}
}

func (m *model) dbPut(ctx context.Context, db *sqlx.DB) error {
	return pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		query := `INSERT INTO ` + tableName + `
			(market_id, title, oracle, pool_account, end_at, resolved, outcome, yes_pool, no_pool, created_at, last_updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
			RETURNING id, market_id, title, oracle, pool_account, end_at, resolved, outcome, yes_pool, no_pool, created_at, last_updated_at`

		err := tx.QueryRowxContext(
			ctx,
			query,
			m.MarketId,
			m.Title,
			m.Oracle,
			m.PoolAccount,
			m.EndAt,
			m.Resolved,
			m.Outcome,
			m.YesPool,
			m.NoPool,
			m.CreatedAt,
		).StructScan(m)

		return pgutil.CheckUniqueViolation(err, market.ErrMarketExists)
	})
}

func (m *model) dbUpdate(ctx context.Context, db *sqlx.DB) error {
	return pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		existing := &model{}
		err := tx.GetContext(
			ctx,
			existing,
			`SELECT id, resolved, yes_pool, no_pool FROM `+tableName+` WHERE market_id = $1 FOR UPDATE`,
			m.MarketId,
		)
		if err != nil {
			return pgutil.CheckNoRows(err, market.ErrMarketNotFound)
		}

		if existing.Resolved && !m.Resolved {
			return market.ErrInvalidMarketUpdate
		}
		if m.YesPool < existing.YesPool || m.NoPool < existing.NoPool {
			return market.ErrInvalidMarketUpdate
		}

		query := `UPDATE ` + tableName + `
			SET resolved = $2, outcome = $3, yes_pool = $4, no_pool = $5, last_updated_at = NOW()
			WHERE market_id = $1
			RETURNING id, market_id, title, oracle, pool_account, end_at, resolved, outcome, yes_pool, no_pool, created_at, last_updated_at`

		return tx.QueryRowxContext(
			ctx,
			query,
			m.MarketId,
			m.Resolved,
			m.Outcome,
			m.YesPool,
			m.NoPool,
		).StructScan(m)
	})
}

func dbGet(ctx context.Context, db *sqlx.DB, marketId uint64) (*model, error) {
	res := &model{}

	query := `SELECT id, market_id, title, oracle, pool_account, end_at, resolved, outcome, yes_pool, no_pool, created_at, last_updated_at FROM ` + tableName + `
		WHERE market_id = $1`

	err := db.GetContext(
		ctx,
		res,
		query,
		marketId,
	)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, market.ErrMarketNotFound)
	}
	return res, nil
}
