package breaker

import (
	"errors"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoReturnsTypedResult(t *testing.T) {
	cb := New("test", nil)

	n, err := Do(cb, func() (int, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, n)
}

func TestOpensAfterConsecutiveFailures(t *testing.T) {
	cb := New("test", nil)
	boom := errors.New("boom")

	for range 5 {
		_, err := Do(cb, func() (string, error) { return "", boom })
		assert.ErrorIs(t, err, boom)
	}

	called := false
	_, err := Do(cb, func() (string, error) {
		called = true
		return "ok", nil
	})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.False(t, called)
}
