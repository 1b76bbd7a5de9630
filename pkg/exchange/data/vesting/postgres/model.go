package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	pgutil "github.com/marscorp-games/exchange-server/pkg/database/postgres"
	"github.com/marscorp-games/exchange-server/pkg/exchange/data/vesting"
)

const (
	tableName = "marscorp__exchange_vestingaccount"
)

type model struct {
	Id sql.NullInt64 `db:"id"`

	Owner string `db:"owner"`
	Mint  string `db:"mint"`

	TotalAmount    uint64 `db:"total_amount"`
	ReleasedAmount uint64 `db:"released_amount"`

	StartAt time.Time `db:"start_at"`
	EndAt   time.Time `db:"end_at"`

	CreatedAt     time.Time `db:"created_at"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
}

func toModel(obj *vesting.Record) (*model, error) {
	if err := obj.Validate(); err != nil {
		return nil, err
	}

	if obj.CreatedAt.IsZero() {
		obj.CreatedAt = time.Now().UTC()
	}

	return &model{
		Id:             sql.NullInt64{Int64: int64(obj.Id), Valid: true},
		Owner:          obj.Owner,
		Mint:           obj.Mint,
		TotalAmount:    obj.TotalAmount,
		ReleasedAmount: obj.ReleasedAmount,
		StartAt:        obj.StartAt,
		EndAt:          obj.EndAt,
		CreatedAt:      obj.CreatedAt,
		LastUpdatedAt:  obj.LastUpdatedAt,
	}, nil
}

func fromModel(obj *model) *vesting.Record {
	return &vesting.Record{
		Id:             uint64(obj.Id.Int64),
		Owner:          obj.Owner,
		Mint:           obj.Mint,
		TotalAmount:    obj.TotalAmount,
		ReleasedAmount: obj.ReleasedAmount,
		StartAt:        obj.StartAt,
		EndAt:          obj.EndAt,
		CreatedAt:      obj.CreatedAt,
		LastUpdatedAt:  obj.LastUpdatedAt,
	}
}

func (m *model) dbPut(ctx context.Context, db *sqlx.DB) error {
	return pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		query := `INSERT INTO ` + tableName + `
			(owner, mint, total_amount, released_amount, start_at, end_at, created_at, last_updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
			RETURNING id, owner, mint, total_amount, released_amount, start_at, end_at, created_at, last_updated_at`

		err := tx.QueryRowxContext(
			ctx,
			query,
			m.Owner,
			m.Mint,
			m.TotalAmount,
			m.ReleasedAmount,
			m.StartAt,
			m.EndAt,
			m.CreatedAt,
		).StructScan(m)

		return pgutil.CheckUniqueViolation(err, vesting.ErrVestingExists)
	})
}

func (m *model) dbUpdate(ctx context.Context, db *sqlx.DB) error {
	return pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		existing := &model{}
		err := tx.GetContext(
			ctx,
			existing,
			`SELECT id, owner, mint, total_amount, released_amount, start_at, end_at, created_at, last_updated_at FROM `+tableName+` WHERE mint = $1 FOR UPDATE`,
			m.Mint,
		)
		if err != nil {
			return pgutil.CheckNoRows(err, vesting.ErrVestingNotFound)
		}

		if m.ReleasedAmount < existing.ReleasedAmount {
			return vesting.ErrInvalidVestingUpdate
		}
		if m.TotalAmount != existing.TotalAmount {
			return vesting.ErrInvalidVestingUpdate
		}
		if m.StartAt.Unix() != existing.StartAt.Unix() || m.EndAt.Unix() != existing.EndAt.Unix() {
			return vesting.ErrInvalidVestingUpdate
		}

		query := `UPDATE ` + tableName + `
			SET owner = $2, released_amount = $3, last_updated_at = NOW()
			WHERE mint = $1
			RETURNING id, owner, mint, total_amount, released_amount, start_at, end_at, created_at, last_updated_at`

		return tx.QueryRowxContext(
			ctx,
			query,
			m.Mint,
			m.Owner,
			m.ReleasedAmount,
		).StructScan(m)
	})
}

func dbGet(ctx context.Context, db *sqlx.DB, mint string) (*model, error) {
	res := &model{}

	query := `SELECT id, owner, mint, total_amount, released_amount, start_at, end_at, created_at, last_updated_at FROM ` + tableName + `
		WHERE mint = $1`

	err := db.GetContext(
		ctx,
		res,
		query,
		mint,
	)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, vesting.ErrVestingNotFound)
	}
	return res, nil
}
