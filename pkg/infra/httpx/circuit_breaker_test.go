package httpx

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreaker_PassesThroughSuccess(t *testing.T) {
	b := NewCircuitBreaker("test", time.Minute, 1, 2)

	var calls int
	err := b.Execute(func() error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestCircuitBreaker_WrapsFailure(t *testing.T) {
	b := NewCircuitBreaker("test", time.Minute, 1, 2)

	boom := errors.New("connection refused")
	err := b.Execute(func() error { return boom })

	assert.ErrorIs(t, err, boom)
}

func TestCircuitBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	b := NewCircuitBreaker("test", time.Minute, 1, 2)

	boom := errors.New("connection refused")
	for i := 0; i < 2; i++ {
		require.Error(t, b.Execute(func() error { return boom }))
	}

	var calls int
	err := b.Execute(func() error {
		calls++
		return nil
	})

	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Zero(t, calls, "open breaker must not invoke the call")
}
