package safemath

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToUint64(t *testing.T) {
	value, err := ToUint64(FromUint64(math.MaxUint64))
	require.NoError(t, err)
	assert.EqualValues(t, uint64(math.MaxUint64), value)

	tooBig := new(big.Int).Add(FromUint64(math.MaxUint64), big.NewInt(1))
	_, err = ToUint64(tooBig)
	assert.Equal(t, ErrOverflow, err)

	_, err = ToUint64(big.NewInt(-1))
	assert.Equal(t, ErrOverflow, err)
}

func TestSub(t *testing.T) {
	result, err := Sub(FromUint64(10), FromUint64(4))
	require.NoError(t, err)
	assert.EqualValues(t, 6, result.Uint64())

	_, err = Sub(FromUint64(4), FromUint64(10))
	assert.Equal(t, ErrOverflow, err)
}

func TestDiv(t *testing.T) {
	result, err := Div(FromUint64(7), FromUint64(2))
	require.NoError(t, err)
	assert.EqualValues(t, 3, result.Uint64())

	_, err = Div(FromUint64(7), FromUint64(0))
	assert.Equal(t, ErrOverflow, err)
}

func TestMulBps(t *testing.T) {
	fee, err := MulBps(FromUint64(1_000_000_000), 150)
	require.NoError(t, err)
	assert.EqualValues(t, 15_000_000, fee.Uint64())

	full, err := MulBps(FromUint64(12345), 10000)
	require.NoError(t, err)
	assert.EqualValues(t, 12345, full.Uint64())
}

func TestUint64Helpers(t *testing.T) {
	sum, err := AddUint64(1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, sum)

	_, err = AddUint64(math.MaxUint64, 1)
	assert.Equal(t, ErrOverflow, err)

	diff, err := SubUint64(3, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 1, diff)

	_, err = SubUint64(2, 3)
	assert.Equal(t, ErrOverflow, err)
}
