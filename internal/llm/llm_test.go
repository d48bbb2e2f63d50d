package llm_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/llm"
)

func TestAttempt(t *testing.T) {
	errBoom := errors.New("boom")

	tests := []struct {
		name         string
		retries      int
		failures     int
		wantAttempts int
		wantErr      bool
	}{
		{"first try", 2, 0, 1, false},
		{"succeeds on retry", 2, 2, 3, false},
		{"exhausts retries", 1, 5, 2, true},
		{"negative retries run once", -1, 5, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			attempts, err := llm.Attempt(context.Background(), tt.retries, func(context.Context) error {
				calls++
				if calls <= tt.failures {
					return errBoom
				}
				return nil
			})

			assert.Equal(t, tt.wantAttempts, attempts)
			assert.Equal(t, tt.wantAttempts, calls)
			if tt.wantErr {
				assert.ErrorIs(t, err, errBoom)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAttemptStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	attempts, err := llm.Attempt(ctx, 5, func(context.Context) error {
		cancel()
		return errors.New("transport closed")
	})

	assert.Equal(t, 1, attempts)
	assert.EqualError(t, err, "transport closed")
}

func TestAttemptCancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts, err := llm.Attempt(ctx, 2, func(context.Context) error { return nil })

	assert.Equal(t, 0, attempts)
	assert.ErrorIs(t, err, context.Canceled)
}
