package tests

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marscorp-games/exchange-server/pkg/exchange/data/market"
	"github.com/marscorp-games/exchange-server/pkg/pointer"
)

func RunTests(t *testing.T, s market.Store, teardown func()) {
	for _, tf := range []func(t *testing.T, s market.Store){
		testRoundTrip,
		testUpdate,
		testResolutionIsTerminal,
	} {
		tf(t, s)
		teardown()
	}
}

func testRoundTrip(t *testing.T, s market.Store) {
	t.Run("testRoundTrip", func(t *testing.T) {
		ctx := context.Background()

		actual, err := s.Get(ctx, 42)
		require.Error(t, err)
		assert.Equal(t, market.ErrMarketNotFound, err)
		assert.Nil(t, actual)

		expected := newTestRecord()
		cloned := expected.Clone()
		require.NoError(t, s.Put(ctx, expected))

		assert.Equal(t, market.ErrMarketExists, s.Put(ctx, expected))

		actual, err = s.Get(ctx, 42)
		require.NoError(t, err)
		assertEquivalentRecords(t, &cloned, actual)
		assert.EqualValues(t, 1, actual.Id)
	})
}

func testUpdate(t *testing.T, s market.Store) {
	t.Run("testUpdate", func(t *testing.T) {
		ctx := context.Background()

		record := newTestRecord()
		assert.Equal(t, market.ErrMarketNotFound, s.Update(ctx, record))

		require.NoError(t, s.Put(ctx, record))

		record.YesPool = 5_000_000_000
		record.NoPool = 1_000_000_000
		cloned := record.Clone()

		require.NoError(t, s.Update(ctx, record))

		actual, err := s.Get(ctx, 42)
		require.NoError(t, err)
		assertEquivalentRecords(t, &cloned, actual)

		record.YesPool = 4_999_999_999
		assert.Equal(t, market.ErrInvalidMarketUpdate, s.Update(ctx, record))
	})
}

func testResolutionIsTerminal(t *testing.T, s market.Store) {
	t.Run("testResolutionIsTerminal", func(t *testing.T) {
		ctx := context.Background()

		record := newTestRecord()
		require.NoError(t, s.Put(ctx, record))

		record.Resolved = true
		record.Outcome = pointer.Bool(true)
		require.NoError(t, s.Update(ctx, record))

		record.Resolved = false
		record.Outcome = nil
		assert.Equal(t, market.ErrInvalidMarketUpdate, s.Update(ctx, record))

		actual, err := s.Get(ctx, 42)
		require.NoError(t, err)
		assert.True(t, actual.Resolved)
		require.NotNil(t, actual.Outcome)
		assert.True(t, *actual.Outcome)
	})
}

func newTestRecord() *market.Record {
	return &market.Record{
		MarketId: 42,

		Title:       "will olympus colony reach 1M population",
		Oracle:      "oracle",
		PoolAccount: "pool",

		EndAt: time.Now().Add(7 * 24 * time.Hour),
	}
}

func assertEquivalentRecords(t *testing.T, obj1, obj2 *market.Record) {
	assert.Equal(t, obj1.MarketId, obj2.MarketId)
	assert.Equal(t, obj1.Title, obj2.Title)
	assert.Equal(t, obj1.Oracle, obj2.Oracle)
	assert.Equal(t, obj1.PoolAccount, obj2.PoolAccount)
	assert.Equal(t, obj1.EndAt.Unix(), obj2.EndAt.Unix())
	assert.Equal(t, obj1.Resolved, obj2.Resolved)
	assert.Equal(t, obj1.YesPool, obj2.YesPool)
	assert.Equal(t, obj1.NoPool, obj2.NoPool)

	if obj1.Outcome == nil {
		assert.Nil(t, obj2.Outcome)
	} else {
		require.NotNil(t, obj2.Outcome)
		assert.Equal(t, *obj1.Outcome, *obj2.Outcome)
	}
}
