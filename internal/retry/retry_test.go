package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jeffleon2/draftea-payment-orchestrator/internal/models"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordingDispatcher(delays *[]time.Duration) *retry.Dispatcher {
	return retry.NewDispatcher("test").WithSleep(func(ctx context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return ctx.Err()
	})
}

func transient() error {
	return &models.ProviderError{Provider: models.ProviderSandbox, Operation: "authorize", StatusCode: 503, Err: errors.New("unavailable")}
}

func TestPolicy_ExponentialSchedule(t *testing.T) {
	policy := retry.Policy{MaxRetries: 3, BaseDelay: 1000 * time.Millisecond, ExponentialBackoff: true}

	assert.Equal(t, []time.Duration{1000 * time.Millisecond, 2000 * time.Millisecond, 4000 * time.Millisecond}, policy.Schedule())
	assert.Equal(t, time.Duration(0), policy.Delay(0))
}

func TestPolicy_FixedScheduleAndCap(t *testing.T) {
	fixed := retry.Policy{MaxRetries: 3, BaseDelay: 250 * time.Millisecond}
	assert.Equal(t, []time.Duration{250 * time.Millisecond, 250 * time.Millisecond, 250 * time.Millisecond}, fixed.Schedule())

	capped := retry.Policy{MaxRetries: 4, BaseDelay: time.Second, ExponentialBackoff: true, MaxDelay: 3 * time.Second}
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 3 * time.Second, 3 * time.Second}, capped.Schedule())
}

func TestPolicy_JitterStaysInBand(t *testing.T) {
	policy := retry.Policy{MaxRetries: 1, BaseDelay: time.Second, Jitter: true}
	for i := 0; i < 50; i++ {
		d := policy.Delay(1)
		assert.GreaterOrEqual(t, d, 850*time.Millisecond)
		assert.LessOrEqual(t, d, 1150*time.Millisecond)
	}
}

func TestExecute_SucceedsOnThirdAttempt(t *testing.T) {
	var delays []time.Duration
	dispatcher := recordingDispatcher(&delays)
	policy := retry.Policy{MaxRetries: 3, BaseDelay: 1000 * time.Millisecond, ExponentialBackoff: true}

	var seen []int
	result, err := retry.Execute(context.Background(), dispatcher, policy, func(ctx context.Context, attempt int) (string, error) {
		seen = append(seen, attempt)
		if attempt < 2 {
			return "", transient()
		}
		return "auth_123", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "auth_123", result.Value)
	assert.Equal(t, 3, result.Attempts)
	assert.Equal(t, []int{0, 1, 2}, seen)
	assert.Equal(t, []time.Duration{1000 * time.Millisecond, 2000 * time.Millisecond}, delays)
}

func TestExecute_Exhausted(t *testing.T) {
	var delays []time.Duration
	dispatcher := recordingDispatcher(&delays)
	policy := retry.Policy{MaxRetries: 3, BaseDelay: 1000 * time.Millisecond, ExponentialBackoff: true}

	calls := 0
	result, err := retry.Execute(context.Background(), dispatcher, policy, func(ctx context.Context, attempt int) (int, error) {
		calls++
		return 0, transient()
	})

	var exhausted *retry.ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 4, exhausted.Attempts)
	assert.Equal(t, 4, result.Attempts)
	assert.Equal(t, 4, calls)
	assert.Equal(t, []time.Duration{1000 * time.Millisecond, 2000 * time.Millisecond, 4000 * time.Millisecond}, delays)

	var providerErr *models.ProviderError
	assert.ErrorAs(t, err, &providerErr)
}

func TestExecute_NonRetryableReturnsImmediately(t *testing.T) {
	var delays []time.Duration
	dispatcher := recordingDispatcher(&delays)
	policy := retry.Policy{MaxRetries: 3, BaseDelay: time.Second, ExponentialBackoff: true}
	decline := &models.ProviderDeclineError{Provider: models.ProviderStripe, Operation: "authorize", Code: "card_declined", Reason: "insufficient funds"}

	result, err := retry.Execute(context.Background(), dispatcher, policy, func(ctx context.Context, attempt int) (int, error) {
		return 0, decline
	})

	assert.Equal(t, decline, err)
	assert.Equal(t, 1, result.Attempts)
	assert.Empty(t, delays)
}

func TestExecute_CancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	dispatcher := retry.NewDispatcher("test")
	policy := retry.Policy{MaxRetries: 3, BaseDelay: time.Hour}

	calls := 0
	result, err := retry.Execute(ctx, dispatcher, policy, func(ctx context.Context, attempt int) (int, error) {
		calls++
		cancel()
		return 0, transient()
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, result.Attempts)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, retry.IsRetryable(transient()))
	assert.True(t, retry.IsRetryable(errors.Join(errors.New("wrapped"), transient())))
	assert.False(t, retry.IsRetryable(errors.New("plain")))
	assert.False(t, retry.IsRetryable(&models.ValidationError{Field: "amount", Reason: "must be positive"}))
}
