package retry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetry_NoStrategies(t *testing.T) {
	var attempts int
	_, err := Retry(func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetry_Limit(t *testing.T) {
	expected := errors.New("permanent")

	var attempts int
	total, err := Retry(func() error {
		attempts++
		return expected
	}, Limit(5))

	assert.Equal(t, expected, err)
	assert.EqualValues(t, 5, total)
	assert.Equal(t, 5, attempts)
}

func TestRetry_RetriableErrors(t *testing.T) {
	retriable := errors.New("retriable")
	terminal := errors.New("terminal")

	var attempts int
	_, err := Retry(func() error {
		attempts++
		if attempts == 1 {
			return retriable
		}
		return terminal
	}, RetriableErrors(retriable))

	assert.Equal(t, terminal, err)
	assert.Equal(t, 2, attempts)
}

func TestRetry_NonRetriableErrors(t *testing.T) {
	terminal := errors.New("terminal")

	var attempts int
	_, err := Retry(func() error {
		attempts++
		return terminal
	}, NonRetriableErrors(terminal))

	assert.Equal(t, terminal, err)
	assert.Equal(t, 1, attempts)
}
