package data

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	pg "github.com/marscorp-games/exchange-server/pkg/database/postgres"

	"github.com/marscorp-games/exchange-server/pkg/exchange/data/config"
	"github.com/marscorp-games/exchange-server/pkg/exchange/data/curve"
	"github.com/marscorp-games/exchange-server/pkg/exchange/data/market"
	"github.com/marscorp-games/exchange-server/pkg/exchange/data/vesting"

	config_memory_client "github.com/marscorp-games/exchange-server/pkg/exchange/data/config/memory"
	curve_memory_client "github.com/marscorp-games/exchange-server/pkg/exchange/data/curve/memory"
	market_memory_client "github.com/marscorp-games/exchange-server/pkg/exchange/data/market/memory"
	vesting_memory_client "github.com/marscorp-games/exchange-server/pkg/exchange/data/vesting/memory"

	config_postgres_client "github.com/marscorp-games/exchange-server/pkg/exchange/data/config/postgres"
	curve_postgres_client "github.com/marscorp-games/exchange-server/pkg/exchange/data/curve/postgres"
	market_postgres_client "github.com/marscorp-games/exchange-server/pkg/exchange/data/market/postgres"
	vesting_postgres_client "github.com/marscorp-games/exchange-server/pkg/exchange/data/vesting/postgres"
)

type ExchangeData interface {
	// Bonding Curve
	// --------------------------------------------------------------------------------
	PutBondingCurve(ctx context.Context, record *curve.Record) error
	GetBondingCurveByMint(ctx context.Context, mint string) (*curve.Record, error)
	UpdateBondingCurve(ctx context.Context, record *curve.Record) error

	// Vesting Account
	// --------------------------------------------------------------------------------
	PutVestingAccount(ctx context.Context, record *vesting.Record) error
	GetVestingAccountByMint(ctx context.Context, mint string) (*vesting.Record, error)
	UpdateVestingAccount(ctx context.Context, record *vesting.Record) error

	// Global Config
	// --------------------------------------------------------------------------------
	PutGlobalConfig(ctx context.Context, record *config.Record) error
	GetGlobalConfig(ctx context.Context) (*config.Record, error)

	// Prediction Market
	// --------------------------------------------------------------------------------
	PutMarket(ctx context.Context, record *market.Record) error
	GetMarketById(ctx context.Context, marketId uint64) (*market.Record, error)
	UpdateMarket(ctx context.Context, record *market.Record) error

	// ExecuteInTx executes fn with a single DB transaction that is scoped to the call.
	// This enables more complex transactions that can span many calls across the provider.
	ExecuteInTx(ctx context.Context, isolation sql.IsolationLevel, fn func(ctx context.Context) error) error
}

type DatabaseProvider struct {
	curves   curve.Store
	vestings vesting.Store
	configs  config.Store
	markets  market.Store

	db *sqlx.DB
}

func NewDatabaseProvider(dbConfig *pg.Config) (ExchangeData, error) {
	db, err := pg.New(dbConfig)
	if err != nil {
		return nil, err
	}

	return &DatabaseProvider{
		curves:   curve_postgres_client.New(db),
		vestings: vesting_postgres_client.New(db),
		configs:  config_postgres_client.New(db),
		markets:  market_postgres_client.New(db),

		db: sqlx.NewDb(db, "pgx"),
	}, nil
}

// Used for testing only
func NewTestDataProvider() ExchangeData {
	return &DatabaseProvider{
		curves:   curve_memory_client.New(),
		vestings: vesting_memory_client.New(),
		configs:  config_memory_client.New(),
		markets:  market_memory_client.New(),
	}
}

func (dp *DatabaseProvider) ExecuteInTx(ctx context.Context, isolation sql.IsolationLevel, fn func(ctx context.Context) error) error {
	if dp.db == nil {
		return fn(ctx)
	}

	return pg.ExecuteTxWithinCtx(ctx, dp.db, isolation, fn)
}

// Bonding Curve
// --------------------------------------------------------------------------------
func (dp *DatabaseProvider) PutBondingCurve(ctx context.Context, record *curve.Record) error {
	return dp.curves.Put(ctx, record)
}
func (dp *DatabaseProvider) GetBondingCurveByMint(ctx context.Context, mint string) (*curve.Record, error) {
	return dp.curves.Get(ctx, mint)
}
func (dp *DatabaseProvider) UpdateBondingCurve(ctx context.Context, record *curve.Record) error {
	return dp.curves.Update(ctx, record)
}

// Vesting Account
// --------------------------------------------------------------------------------
func (dp *DatabaseProvider) PutVestingAccount(ctx context.Context, record *vesting.Record) error {
	return dp.vestings.Put(ctx, record)
}
func (dp *DatabaseProvider) GetVestingAccountByMint(ctx context.Context, mint string) (*vesting.Record, error) {
	return dp.vestings.Get(ctx, mint)
}
func (dp *DatabaseProvider) UpdateVestingAccount(ctx context.Context, record *vesting.Record) error {
	return dp.vestings.Update(ctx, record)
}

// Global Config
// --------------------------------------------------------------------------------
func (dp *DatabaseProvider) PutGlobalConfig(ctx context.Context, record *config.Record) error {
	return dp.configs.Put(ctx, record)
}
func (dp *DatabaseProvider) GetGlobalConfig(ctx context.Context) (*config.Record, error) {
	return dp.configs.Get(ctx)
}

// Prediction Market
// --------------------------------------------------------------------------------
func (dp *DatabaseProvider) PutMarket(ctx context.Context, record *market.Record) error {
	return dp.markets.Put(ctx, record)
}
func (dp *DatabaseProvider) GetMarketById(ctx context.Context, marketId uint64) (*market.Record, error) {
	return dp.markets.Get(ctx, marketId)
}
func (dp *DatabaseProvider) UpdateMarket(ctx context.Context, record *market.Record) error {
	return dp.markets.Update(ctx, record)
}
