package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marscorp-games/exchange-server/pkg/exchange/data/config"
)

func RunTests(t *testing.T, s config.Store, teardown func()) {
	for _, tf := range []func(t *testing.T, s config.Store){
		testRoundTrip,
		testLatestVersionWins,
	} {
		tf(t, s)
		teardown()
	}
}

func testRoundTrip(t *testing.T, s config.Store) {
	t.Run("testRoundTrip", func(t *testing.T) {
		ctx := context.Background()

		actual, err := s.Get(ctx)
		require.Error(t, err)
		assert.Equal(t, config.ErrConfigNotFound, err)
		assert.Nil(t, actual)

		expected := newTestRecord()
		cloned := expected.Clone()
		require.NoError(t, s.Put(ctx, expected))

		actual, err = s.Get(ctx)
		require.NoError(t, err)
		assertEquivalentRecords(t, &cloned, actual)
		assert.EqualValues(t, 1, actual.Id)
	})
}

func testLatestVersionWins(t *testing.T, s config.Store) {
	t.Run("testLatestVersionWins", func(t *testing.T) {
		ctx := context.Background()

		first := newTestRecord()
		require.NoError(t, s.Put(ctx, first))

		second := newTestRecord()
		second.PlatformFeeBps = 200
		second.YieldFeeBps = 75
		cloned := second.Clone()
		require.NoError(t, s.Put(ctx, second))

		actual, err := s.Get(ctx)
		require.NoError(t, err)
		assertEquivalentRecords(t, &cloned, actual)
		assert.True(t, actual.Id > first.Id)
	})
}

func newTestRecord() *config.Record {
	return &config.Record{
		Admin:            "admin",
		YieldDistributor: "yield_distributor",

		PlatformFeeBps: 100,
		YieldFeeBps:    50,
	}
}

func assertEquivalentRecords(t *testing.T, obj1, obj2 *config.Record) {
	assert.Equal(t, obj1.Admin, obj2.Admin)
	assert.Equal(t, obj1.YieldDistributor, obj2.YieldDistributor)
	assert.Equal(t, obj1.PlatformFeeBps, obj2.PlatformFeeBps)
	assert.Equal(t, obj1.YieldFeeBps, obj2.YieldFeeBps)
}
