package tests

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marscorp-games/exchange-server/pkg/exchange/data/vesting"
)

func RunTests(t *testing.T, s vesting.Store, teardown func()) {
	for _, tf := range []func(t *testing.T, s vesting.Store){
		testRoundTrip,
		testUpdate,
		testReleasedAmountIsMonotonic,
	} {
		tf(t, s)
		teardown()
	}
}

func testRoundTrip(t *testing.T, s vesting.Store) {
	t.Run("testRoundTrip", func(t *testing.T) {
		ctx := context.Background()

		actual, err := s.Get(ctx, "mint")
		require.Error(t, err)
		assert.Equal(t, vesting.ErrVestingNotFound, err)
		assert.Nil(t, actual)

		expected := newTestRecord()
		cloned := expected.Clone()
		require.NoError(t, s.Put(ctx, expected))

		assert.Equal(t, vesting.ErrVestingExists, s.Put(ctx, expected))

		actual, err = s.Get(ctx, "mint")
		require.NoError(t, err)
		assertEquivalentRecords(t, &cloned, actual)
		assert.EqualValues(t, 1, actual.Id)
	})
}

func testUpdate(t *testing.T, s vesting.Store) {
	t.Run("testUpdate", func(t *testing.T) {
		ctx := context.Background()

		record := newTestRecord()
		assert.Equal(t, vesting.ErrVestingNotFound, s.Update(ctx, record))

		require.NoError(t, s.Put(ctx, record))

		record.ReleasedAmount = 50_000_000_000_000
		record.Owner = "new-owner"
		cloned := record.Clone()

		require.NoError(t, s.Update(ctx, record))

		actual, err := s.Get(ctx, "mint")
		require.NoError(t, err)
		assertEquivalentRecords(t, &cloned, actual)
	})
}

func testReleasedAmountIsMonotonic(t *testing.T, s vesting.Store) {
	t.Run("testReleasedAmountIsMonotonic", func(t *testing.T) {
		ctx := context.Background()

		record := newTestRecord()
		require.NoError(t, s.Put(ctx, record))

		record.ReleasedAmount = 1_000
		require.NoError(t, s.Update(ctx, record))

		record.ReleasedAmount = 999
		assert.Equal(t, vesting.ErrInvalidVestingUpdate, s.Update(ctx, record))

		record.ReleasedAmount = 1_000
		record.TotalAmount = record.TotalAmount + 1
		assert.Equal(t, vesting.ErrInvalidVestingUpdate, s.Update(ctx, record))
	})
}

func newTestRecord() *vesting.Record {
	startAt := time.Now()
	return &vesting.Record{
		Owner: "owner",
		Mint:  "mint",

		TotalAmount:    200_000_000_000_000,
		ReleasedAmount: 0,

		StartAt: startAt,
		EndAt:   startAt.Add(365 * 24 * time.Hour),

		CreatedAt: startAt,
	}
}

func assertEquivalentRecords(t *testing.T, obj1, obj2 *vesting.Record) {
	assert.Equal(t, obj1.Owner, obj2.Owner)
	assert.Equal(t, obj1.Mint, obj2.Mint)
	assert.Equal(t, obj1.TotalAmount, obj2.TotalAmount)
	assert.Equal(t, obj1.ReleasedAmount, obj2.ReleasedAmount)
	assert.Equal(t, obj1.StartAt.Unix(), obj2.StartAt.Unix())
	assert.Equal(t, obj1.EndAt.Unix(), obj2.EndAt.Unix())
	assert.Equal(t, obj1.CreatedAt.Unix(), obj2.CreatedAt.Unix())
}
