package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	pgutil "github.com/marscorp-games/exchange-server/pkg/database/postgres"
	"github.com/marscorp-games/exchange-server/pkg/exchange/data/config"
)

const (
	tableName = "marscorp__exchange_globalconfig"
)

type model struct {
	Id sql.NullInt64 `db:"id"`

	Admin            string `db:"admin"`
	YieldDistributor string `db:"yield_distributor"`

	PlatformFeeBps uint16 `db:"platform_fee_bps"`
	YieldFeeBps    uint16 `db:"yield_fee_bps"`

	CreatedAt time.Time `db:"created_at"`
}

func toModel(obj *config.Record) (*model, error) {
	if err := obj.Validate(); err != nil {
		return nil, err
	}

	if obj.CreatedAt.IsZero() {
		obj.CreatedAt = time.Now().UTC()
	}

	return &model{
		Id:               sql.NullInt64{Int64: int64(obj.Id), Valid: true},
		Admin:            obj.Admin,
		YieldDistributor: obj.YieldDistributor,
		PlatformFeeBps:   obj.PlatformFeeBps,
		YieldFeeBps:      obj.YieldFeeBps,
		CreatedAt:        obj.CreatedAt,
	}, nil
}

func fromModel(obj *model) *config.Record {
	return &config.Record{
		Id:               uint64(obj.Id.Int64),
		Admin:            obj.Admin,
		YieldDistributor: obj.YieldDistributor,
		PlatformFeeBps:   obj.PlatformFeeBps,
		YieldFeeBps:      obj.YieldFeeBps,
		CreatedAt:        obj.CreatedAt,
	}
}

func (m *model) dbPut(ctx context.Context, db *sqlx.DB) error {
	query := `INSERT INTO ` + tableName + `
		(admin, yield_distributor, platform_fee_bps, yield_fee_bps, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, admin, yield_distributor, platform_fee_bps, yield_fee_bps, created_at`

	return db.QueryRowxContext(
		ctx,
		query,
		m.Admin,
		m.YieldDistributor,
		m.PlatformFeeBps,
		m.YieldFeeBps,
		m.CreatedAt,
	).StructScan(m)
}

func dbGet(ctx context.Context, db *sqlx.DB) (*model, error) {
	res := &model{}

	query := `SELECT id, admin, yield_distributor, platform_fee_bps, yield_fee_bps, created_at FROM ` + tableName + `
		ORDER BY id DESC
		LIMIT 1`

	err := db.GetContext(
		ctx,
		res,
		query,
	)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, config.ErrConfigNotFound)
	}
	return res, nil
}
