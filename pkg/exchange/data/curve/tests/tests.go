package tests

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marscorp-games/exchange-server/pkg/exchange/data/curve"
	"github.com/marscorp-games/exchange-server/pkg/exchange/safemath"
)

func RunTests(t *testing.T, s curve.Store, teardown func()) {
	for _, tf := range []func(t *testing.T, s curve.Store){
		testRoundTrip,
		testUpdate,
		testGraduationIsTerminal,
	} {
		tf(t, s)
		teardown()
	}
}

func testRoundTrip(t *testing.T, s curve.Store) {
	t.Run("testRoundTrip", func(t *testing.T) {
		ctx := context.Background()

		actual, err := s.Get(ctx, "mint")
		require.Error(t, err)
		assert.Equal(t, curve.ErrCurveNotFound, err)
		assert.Nil(t, actual)

		expected := newTestRecord()
		cloned := expected.Clone()
		require.NoError(t, s.Put(ctx, expected))

		assert.Equal(t, curve.ErrCurveExists, s.Put(ctx, expected))

		actual, err = s.Get(ctx, "mint")
		require.NoError(t, err)
		assertEquivalentRecords(t, &cloned, actual)
		assert.EqualValues(t, 1, actual.Id)
	})
}

func testUpdate(t *testing.T, s curve.Store) {
	t.Run("testUpdate", func(t *testing.T) {
		ctx := context.Background()

		record := newTestRecord()
		assert.Equal(t, curve.ErrCurveNotFound, s.Update(ctx, record))

		require.NoError(t, s.Put(ctx, record))

		record.VirtualValue = safemath.FromUint64(30_985_000_000)
		record.VirtualTokens = safemath.FromUint64(1_038_889_785_380_022)
		record.RealValue = 985_000_000
		record.SabotagePenaltyBps = 100
		record.SabotageEndAt = time.Now().Add(24 * time.Hour)
		record.TakeoverActive = true
		record.TakeoverInitiator = "initiator"
		cloned := record.Clone()

		require.NoError(t, s.Update(ctx, record))

		actual, err := s.Get(ctx, "mint")
		require.NoError(t, err)
		assertEquivalentRecords(t, &cloned, actual)
	})
}

func testGraduationIsTerminal(t *testing.T, s curve.Store) {
	t.Run("testGraduationIsTerminal", func(t *testing.T) {
		ctx := context.Background()

		record := newTestRecord()
		require.NoError(t, s.Put(ctx, record))

		record.Graduated = true
		require.NoError(t, s.Update(ctx, record))

		record.Graduated = false
		assert.Equal(t, curve.ErrInvalidCurveUpdate, s.Update(ctx, record))

		actual, err := s.Get(ctx, "mint")
		require.NoError(t, err)
		assert.True(t, actual.Graduated)
	})
}

func newTestRecord() *curve.Record {
	return &curve.Record{
		Creator: "creator",
		Mint:    "mint",
		Sector:  curve.SectorMining,

		VirtualValue:  safemath.FromUint64(30_000_000_000),
		VirtualTokens: safemath.FromUint64(1_073_000_000_000_000),
		RealValue:     0,

		CreatedAt: time.Now(),
	}
}

func assertEquivalentRecords(t *testing.T, obj1, obj2 *curve.Record) {
	assert.Equal(t, obj1.Creator, obj2.Creator)
	assert.Equal(t, obj1.Mint, obj2.Mint)
	assert.Equal(t, obj1.Sector, obj2.Sector)
	assert.Zero(t, obj1.VirtualValue.Cmp(obj2.VirtualValue))
	assert.Zero(t, obj1.VirtualTokens.Cmp(obj2.VirtualTokens))
	assert.Equal(t, obj1.RealValue, obj2.RealValue)
	assert.Equal(t, obj1.Graduated, obj2.Graduated)
	assert.Equal(t, obj1.TakeoverActive, obj2.TakeoverActive)
	assert.Equal(t, obj1.TakeoverInitiator, obj2.TakeoverInitiator)
	assert.Equal(t, obj1.SabotagePenaltyBps, obj2.SabotagePenaltyBps)
	assert.Equal(t, obj1.SabotageEndAt.Unix(), obj2.SabotageEndAt.Unix())
	assert.Equal(t, obj1.CreatedAt.Unix(), obj2.CreatedAt.Unix())
}
