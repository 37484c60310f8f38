package agent_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sovbridge/internal/agent"
)

func TestRetryPolicyEventualSuccess(t *testing.T) {
	p := agent.RetryPolicy{MaxAttempts: 3, Backoff: time.Millisecond}

	calls := 0
	err := p.Do(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryPolicyExhaustsBudget(t *testing.T) {
	p := agent.RetryPolicy{MaxAttempts: 3, Backoff: time.Millisecond}

	calls := 0
	wantErr := errors.New("persistent")
	err := p.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return wantErr
	})
	require.ErrorIs(t, err, wantErr)
	assert.Equal(t, 3, calls)
}

func TestRetryPolicyContextCancel(t *testing.T) {
	p := agent.RetryPolicy{MaxAttempts: 5, Backoff: time.Minute}

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	err := p.Do(ctx, func(ctx context.Context) error {
		calls++
		return errors.New("transient")
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestNewRetryPolicyDefaults(t *testing.T) {
	p := agent.NewRetryPolicy(0)
	assert.Equal(t, agent.DefaultMaxAttempts, p.MaxAttempts)
	assert.Equal(t, agent.DefaultBackoff, p.Backoff)

	p = agent.NewRetryPolicy(5)
	assert.Equal(t, 5, p.MaxAttempts)
}
