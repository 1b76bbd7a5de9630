// Package safemath provides overflow-checked arithmetic for economic state.
//
// All curve and fee math is performed in a widened big.Int domain and only
// narrowed back to uint64 at the edges. Any subtraction below zero, division
// by zero, or failed narrowing aborts with ErrOverflow.
package safemath

import (
	"errors"
	"math"
	"math/big"
)

var ErrOverflow = errors.New("arithmetic overflow")

var maxUint64 = new(big.Int).SetUint64(math.MaxUint64)

// FromUint64 widens a uint64 into the big.Int domain.
func FromUint64(value uint64) *big.Int {
	return new(big.Int).SetUint64(value)
}

// ToUint64 narrows a widened value back to uint64. Fails with ErrOverflow if
// the value is negative or exceeds the uint64 range.
func ToUint64(value *big.Int) (uint64, error) {
	if value.Sign() < 0 || value.Cmp(maxUint64) > 0 {
		return 0, ErrOverflow
	}
	return value.Uint64(), nil
}

// Add returns a + b in the widened domain.
func Add(a, b *big.Int) *big.Int {
	return new(big.Int).Add(a, b)
}

// Sub returns a - b, failing with ErrOverflow if the result would be negative.
func Sub(a, b *big.Int) (*big.Int, error) {
	if a.Cmp(b) < 0 {
		return nil, ErrOverflow
	}
	return new(big.Int).Sub(a, b), nil
}

// Mul returns a * b in the widened domain.
func Mul(a, b *big.Int) *big.Int {
	return new(big.Int).Mul(a, b)
}

// Div returns floor(a / b), failing with ErrOverflow on division by zero.
func Div(a, b *big.Int) (*big.Int, error) {
	if b.Sign() == 0 {
		return nil, ErrOverflow
	}
	return new(big.Int).Quo(a, b), nil
}

// MulBps returns floor(value * bps / 10000) in the widened domain.
func MulBps(value *big.Int, bps uint64) (*big.Int, error) {
	return Div(Mul(value, FromUint64(bps)), FromUint64(10000))
}

// AddUint64 returns a + b, failing with ErrOverflow if the sum wraps.
func AddUint64(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, ErrOverflow
	}
	return sum, nil
}

// SubUint64 returns a - b, failing with ErrOverflow if the result would be
// negative.
func SubUint64(a, b uint64) (uint64, error) {
	if b > a {
		return 0, ErrOverflow
	}
	return a - b, nil
}
