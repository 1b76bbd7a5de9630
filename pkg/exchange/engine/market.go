package engine

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/marscorp-games/exchange-server/pkg/exchange/common"
	market_store "github.com/marscorp-games/exchange-server/pkg/exchange/data/market"
	"github.com/marscorp-games/exchange-server/pkg/exchange/ledger"
	"github.com/marscorp-games/exchange-server/pkg/exchange/safemath"
	"github.com/marscorp-games/exchange-server/pkg/metrics"
	"github.com/marscorp-games/exchange-server/pkg/pointer"
)

const maxMarketTitleLength = 100

func marketLockKey(marketId uint64) []byte {
	return []byte(strconv.FormatUint(marketId, 10))
}

type CreateMarketArgs struct {
	Oracle   string
	MarketId uint64
	Title    string
	EndAt    time.Time
}

type CreateMarketResult struct {
	Id uuid.UUID

	MarketId    uint64
	PoolAccount string
}

// CreateMarket opens a binary prediction market resolvable by the creating
// oracle.
func (e *Engine) CreateMarket(ctx context.Context, args *CreateMarketArgs) (*CreateMarketResult, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "CreateMarket")
	defer tracer.End()

	result, err := e.createMarket(ctx, args)
	if err != nil {
		tracer.OnError(err)
	}
	return result, err
}

func (e *Engine) createMarket(ctx context.Context, args *CreateMarketArgs) (*CreateMarketResult, error) {
	log := e.log.WithFields(map[string]interface{}{
		"method":    "CreateMarket",
		"market_id": args.MarketId,
		"oracle":    args.Oracle,
	})

	if len(args.Oracle) == 0 || len(args.Title) == 0 || len(args.Title) > maxMarketTitleLength {
		return nil, ErrInvalidInput
	}

	lock := e.marketLocks.Get(marketLockKey(args.MarketId))
	lock.Lock()
	defer lock.Unlock()

	record := &market_store.Record{
		MarketId: args.MarketId,

		Title:       args.Title,
		Oracle:      args.Oracle,
		PoolAccount: common.GetMarketAddress(args.MarketId),

		EndAt: args.EndAt,

		CreatedAt: e.clock.Now(),
	}

	err := e.data.ExecuteInTx(ctx, sql.LevelDefault, func(ctx context.Context) error {
		return e.data.PutMarket(ctx, record)
	})
	if err != nil {
		if err == market_store.ErrMarketExists {
			return nil, ErrInvalidInput
		}
		log.WithError(err).Warn("failure creating market record")
		return nil, err
	}

	log.Debug("created market")

	return &CreateMarketResult{
		Id: uuid.New(),

		MarketId:    args.MarketId,
		PoolAccount: record.PoolAccount,
	}, nil
}

type PlaceBetArgs struct {
	Owner    string
	MarketId uint64

	// Outcome is the side being wagered on.
	Outcome bool
	Amount  uint64
}

type PlaceBetResult struct {
	Id uuid.UUID

	MarketId uint64
	Owner    string

	Outcome bool
	Amount  uint64

	YesPool uint64
	NoPool  uint64
}

// PlaceBet wagers value on one side of an open market.
func (e *Engine) PlaceBet(ctx context.Context, args *PlaceBetArgs) (*PlaceBetResult, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "PlaceBet")
	defer tracer.End()

	result, err := e.placeBet(ctx, args)
	if err != nil {
		tracer.OnError(err)
	}
	return result, err
}

func (e *Engine) placeBet(ctx context.Context, args *PlaceBetArgs) (*PlaceBetResult, error) {
	log := e.log.WithFields(map[string]interface{}{
		"method":    "PlaceBet",
		"market_id": args.MarketId,
		"owner":     args.Owner,
	})

	if len(args.Owner) == 0 || args.Amount == 0 {
		return nil, ErrInvalidInput
	}

	lock := e.marketLocks.Get(marketLockKey(args.MarketId))
	lock.Lock()
	defer lock.Unlock()

	record, err := e.data.GetMarketById(ctx, args.MarketId)
	if err != nil {
		log.WithError(err).Warn("failure getting market record")
		return nil, err
	}

	if record.Resolved {
		return nil, ErrAlreadyResolved
	}

	if args.Outcome {
		record.YesPool, err = safemath.AddUint64(record.YesPool, args.Amount)
	} else {
		record.NoPool, err = safemath.AddUint64(record.NoPool, args.Amount)
	}
	if err != nil {
		return nil, err
	}

	err = e.ledger.Apply(ctx, ledger.Entry{
		Mint:   ledger.ValueMint,
		From:   args.Owner,
		To:     record.PoolAccount,
		Amount: args.Amount,
	})
	if err != nil {
		log.WithError(err).Warn("failure transferring wager")
		return nil, err
	}

	err = e.data.ExecuteInTx(ctx, sql.LevelDefault, func(ctx context.Context) error {
		return e.data.UpdateMarket(ctx, record)
	})
	if err != nil {
		log.WithError(err).Warn("failure updating market record")
		return nil, err
	}

	log.WithField("amount", args.Amount).Debug("placed bet")

	return &PlaceBetResult{
		Id: uuid.New(),

		MarketId: args.MarketId,
		Owner:    args.Owner,

		Outcome: args.Outcome,
		Amount:  args.Amount,

		YesPool: record.YesPool,
		NoPool:  record.NoPool,
	}, nil
}

type ResolveMarketArgs struct {
	Oracle   string
	MarketId uint64
	Outcome  bool
}

type ResolveMarketResult struct {
	Id uuid.UUID

	MarketId uint64
	Outcome  bool

	YesPool uint64
	NoPool  uint64
}

// ResolveMarket terminally records the outcome of a market. Only the
// market's oracle may resolve it.
func (e *Engine) ResolveMarket(ctx context.Context, args *ResolveMarketArgs) (*ResolveMarketResult, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "ResolveMarket")
	defer tracer.End()

	result, err := e.resolveMarket(ctx, args)
	if err != nil {
		tracer.OnError(err)
	}
	return result, err
}

func (e *Engine) resolveMarket(ctx context.Context, args *ResolveMarketArgs) (*ResolveMarketResult, error) {
	log := e.log.WithFields(map[string]interface{}{
		"method":    "ResolveMarket",
		"market_id": args.MarketId,
	})

	lock := e.marketLocks.Get(marketLockKey(args.MarketId))
	lock.Lock()
	defer lock.Unlock()

	record, err := e.data.GetMarketById(ctx, args.MarketId)
	if err != nil {
		log.WithError(err).Warn("failure getting market record")
		return nil, err
	}

	if args.Oracle != record.Oracle {
		return nil, ErrUnauthorized
	}

	if record.Resolved {
		return nil, ErrAlreadyResolved
	}

	record.Resolved = true
	record.Outcome = pointer.Bool(args.Outcome)

	err = e.data.ExecuteInTx(ctx, sql.LevelDefault, func(ctx context.Context) error {
		return e.data.UpdateMarket(ctx, record)
	})
	if err != nil {
		log.WithError(err).Warn("failure updating market record")
		return nil, err
	}

	log.WithField("outcome", args.Outcome).Debug("resolved market")

	return &ResolveMarketResult{
		Id: uuid.New(),

		MarketId: args.MarketId,
		Outcome:  args.Outcome,

		YesPool: record.YesPool,
		NoPool:  record.NoPool,
	}, nil
}
