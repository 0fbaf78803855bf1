package session

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoRetry_GivesUpImmediately(t *testing.T) {
	delay, giveUp := NoRetry().Next(0)
	assert.True(t, giveUp)
	assert.Zero(t, delay)
}

func TestLinearBackoff_ConstantDelayUntilMaxRetries(t *testing.T) {
	strategy := NewLinearBackoff(2*time.Second, 3)

	for i := 0; i < 3; i++ {
		delay, giveUp := strategy.Next(i)
		assert.False(t, giveUp, "retry %d should not give up", i)
		assert.Equal(t, 2*time.Second, delay)
	}

	_, giveUp := strategy.Next(3)
	assert.True(t, giveUp, "retry count at MaxRetries should give up")
}

func TestExponentialBackoff_GrowsAndCapsAtMaxDelay(t *testing.T) {
	strategy := &ExponentialBackoff{BaseDelay: 100 * time.Millisecond, MaxDelay: time.Second, MaxRetries: 10}

	first, giveUp := strategy.Next(0)
	assert.False(t, giveUp)
	assert.InDelta(t, 100*time.Millisecond, first, float64(20*time.Millisecond))

	late, giveUp := strategy.Next(8)
	assert.False(t, giveUp)
	assert.LessOrEqual(t, late, strategy.MaxDelay+time.Duration(float64(strategy.MaxDelay)*0.1))

	_, giveUp = strategy.Next(10)
	assert.True(t, giveUp)
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"unrelated plain error", errors.New("boom"), false},
		{"timeout sentinel", ErrTimeout, true},
		{"wrapped timeout sentinel", errWrap(ErrTimeout), true},
		{"explicit retryable wrapper", &RetryableError{Err: errors.New("flaky")}, true},
		{"unrelated error", ErrCommand, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func errWrap(err error) error {
	return &wrappedErr{err: err}
}

type wrappedErr struct{ err error }

func (w *wrappedErr) Error() string { return "wrapped: " + w.err.Error() }
func (w *wrappedErr) Unwrap() error { return w.err }
