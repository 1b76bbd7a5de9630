package postgres

import (
	"context"
	"database/sql"
	"math/big"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	pgutil "github.com/marscorp-games/exchange-server/pkg/database/postgres"
	"github.com/marscorp-games/exchange-server/pkg/exchange/data/curve"
)

const (
	tableName = "marscorp__exchange_bondingcurve"
)

type model struct {
	Id sql.NullInt64 `db:"id"`

	Creator string `db:"creator"`
	Mint    string `db:"mint"`
	Sector  uint8  `db:"sector"`

	VirtualValue  string `db:"virtual_value"`
	VirtualTokens string `db:"virtual_tokens"`
	RealValue     uint64 `db:"real_value"`

	Graduated bool `db:"graduated"`

	TakeoverActive    bool   `db:"takeover_active"`
	TakeoverInitiator string `db:"takeover_initiator"`

	SabotagePenaltyBps uint16    `db:"sabotage_penalty_bps"`
	SabotageEndAt      time.Time `db:"sabotage_end_at"`

	CreatedAt     time.Time `db:"created_at"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
}

func toModel(obj *curve.Record) (*model, error) {
	if err := obj.Validate(); err != nil {
		return nil, err
	}

	if obj.CreatedAt.IsZero() {
		obj.CreatedAt = time.Now().UTC()
	}

	return &model{
		Id:                 sql.NullInt64{Int64: int64(obj.Id), Valid: true},
		Creator:            obj.Creator,
		Mint:               obj.Mint,
		Sector:             uint8(obj.Sector),
		VirtualValue:       obj.VirtualValue.String(),
		VirtualTokens:      obj.VirtualTokens.String(),
		RealValue:          obj.RealValue,
		Graduated:          obj.Graduated,
		TakeoverActive:     obj.TakeoverActive,
		TakeoverInitiator:  obj.TakeoverInitiator,
		SabotagePenaltyBps: obj.SabotagePenaltyBps,
		SabotageEndAt:      obj.SabotageEndAt,
		CreatedAt:          obj.CreatedAt,
		LastUpdatedAt:      obj.LastUpdatedAt,
	}, nil
}

func fromModel(obj *model) (*curve.Record, error) {
	virtualValue, ok := new(big.Int).SetString(obj.VirtualValue, 10)
	if !ok {
		return nil, errors.Errorf("invalid virtual value: %s", obj.VirtualValue)
	}

	virtualTokens, ok := new(big.Int).SetString(obj.VirtualTokens, 10)
	if !ok {
		return nil, errors.Errorf("invalid virtual tokens: %s", obj.VirtualTokens)
	}

	return &curve.Record{
		Id:                 uint64(obj.Id.Int64),
		Creator:            obj.Creator,
		Mint:               obj.Mint,
		Sector:             curve.Sector(obj.Sector),
		VirtualValue:       virtualValue,
		VirtualTokens:      virtualTokens,
		RealValue:          obj.RealValue,
		Graduated:          obj.Graduated,
		TakeoverActive:     obj.TakeoverActive,
		TakeoverInitiator:  obj.TakeoverInitiator,
		SabotagePenaltyBps: obj.SabotagePenaltyBps,
		SabotageEndAt:      obj.SabotageEndAt,
		CreatedAt:          obj.CreatedAt,
		LastUpdatedAt:      obj.LastUpdatedAt,
	}, nil
}

func (m *model) dbPut(ctx context.Context, db *sqlx.DB) error {
	return pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		query := `INSERT INTO ` + tableName + `
			(creator, mint, sector, virtual_value, virtual_tokens, real_value, graduated, takeover_active, takeover_initiator, sabotage_penalty_bps, sabotage_end_at, created_at, last_updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
			RETURNING id, creator, mint, sector, virtual_value, virtual_tokens, real_value, graduated, takeover_active, takeover_initiator, sabotage_penalty_bps, sabotage_end_at, created_at, last_updated_at`

		err := tx.QueryRowxContext(
			ctx,
			query,
			m.Creator,
			m.Mint,
			m.Sector,
			m.VirtualValue,
			m.VirtualTokens,
			m.RealValue,
			m.Graduated,
			m.TakeoverActive,
			m.TakeoverInitiator,
			m.SabotagePenaltyBps,
			m.SabotageEndAt,
			m.CreatedAt,
		).StructScan(m)

		return pgutil.CheckUniqueViolation(err, curve.ErrCurveExists)
	})
}

func (m *model) dbUpdate(ctx context.Context, db *sqlx.DB) error {
	return pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		existing := &model{}
		err := tx.GetContext(
			ctx,
			existing,
			`SELECT id, graduated, created_at FROM `+tableName+` WHERE mint = $1 FOR UPDATE`,
			m.Mint,
		)
		if err != nil {
			return pgutil.CheckNoRows(err, curve.ErrCurveNotFound)
		}

		if existing.Graduated && !m.Graduated {
			return curve.ErrInvalidCurveUpdate
		}

		query := `UPDATE ` + tableName + `
			SET virtual_value = $2, virtual_tokens = $3, real_value = $4, graduated = $5, takeover_active = $6, takeover_initiator = $7, sabotage_penalty_bps = $8, sabotage_end_at = $9, last_updated_at = NOW()
			WHERE mint = $1
			RETURNING id, creator, mint, sector, virtual_value, virtual_tokens, real_value, graduated, takeover_active, takeover_initiator, sabotage_penalty_bps, sabotage_end_at, created_at, last_updated_at`

		return tx.QueryRowxContext(
			ctx,
			query,
			m.Mint,
			m.VirtualValue,
			m.VirtualTokens,
			m.RealValue,
			m.Graduated,
			m.TakeoverActive,
			m.TakeoverInitiator,
			m.SabotagePenaltyBps,
			m.SabotageEndAt,
		).StructScan(m)
	})
}

func dbGet(ctx context.Context, db *sqlx.DB, mint string) (*model, error) {
	res := &model{}

	query := `SELECT id, creator, mint, sector, virtual_value, virtual_tokens, real_value, graduated, takeover_active, takeover_initiator, sabotage_penalty_bps, sabotage_end_at, created_at, last_updated_at FROM ` + tableName + `
		WHERE mint = $1`

	err := db.GetContext(
		ctx,
		res,
		query,
		mint,
	)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, curve.ErrCurveNotFound)
	}
	return res, nil
}
