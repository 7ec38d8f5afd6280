// ABOUTME: Tests for retry utilities including exponential backoff
// ABOUTME: Validates backoff bounds, permanent errors and context cancellation
package util

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCalculateBackoff_ZeroAttempt(t *testing.T) {
	if result := CalculateBackoff(time.Second, 0); result != 0 {
		t.Errorf("expected 0 for attempt 0, got %v", result)
	}
	if result := CalculateBackoff(time.Second, -5); result != 0 {
		t.Errorf("expected 0 for negative attempt, got %v", result)
	}
	if result := CalculateBackoff(0, 3); result != 0 {
		t.Errorf("expected 0 for zero base delay, got %v", result)
	}
}

func TestCalculateBackoff_ExponentialGrowth(t *testing.T) {
	baseDelay := 100 * time.Millisecond

	for attempt := 1; attempt <= 5; attempt++ {
		expectedBase := baseDelay * time.Duration(1<<uint(attempt))
		minExpected := expectedBase * 3 / 4
		maxExpected := expectedBase * 5 / 4

		result := CalculateBackoff(baseDelay, attempt)

		if result < minExpected || result > maxExpected {
			t.Errorf("attempt %d: expected backoff between %v and %v, got %v",
				attempt, minExpected, maxExpected, result)
		}
	}
}

func TestCalculateBackoff_Capped(t *testing.T) {
	// Very high attempt values should not overflow or panic
	result := CalculateBackoff(time.Millisecond, 100)

	if result > 37500*time.Millisecond {
		t.Errorf("expected backoff <= 37.5s for high attempt, got %v", result)
	}
	if result < 0 {
		t.Error("backoff should never be negative")
	}
}

func TestRetry_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func(ctx context.Context, attempt int) error {
		calls++
		if attempt < 2 {
			return errors.New("transient")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("Retry() error = %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	sentinel := errors.New("quota exceeded")
	calls := 0
	err := Retry(context.Background(), 2, time.Millisecond, func(ctx context.Context, attempt int) error {
		calls++
		return sentinel
	})

	if !errors.Is(err, sentinel) {
		t.Errorf("Retry() error = %v, want wrapping %v", err, sentinel)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetry_PermanentStopsImmediately(t *testing.T) {
	sentinel := errors.New("bad request")
	calls := 0
	err := Retry(context.Background(), 5, time.Millisecond, func(ctx context.Context, attempt int) error {
		calls++
		return Permanent(sentinel)
	})

	if err != sentinel {
		t.Errorf("Retry() error = %v, want %v unwrapped", err, sentinel)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Retry(ctx, 5, time.Second, func(ctx context.Context, attempt int) error {
		calls++
		cancel()
		return errors.New("transient")
	})

	if err == nil {
		t.Fatal("Retry() should fail when context is cancelled")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestSleep_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := Sleep(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("Sleep() error = %v, want context.Canceled", err)
	}
}

func TestPermanent_Nil(t *testing.T) {
	if Permanent(nil) != nil {
		t.Error("Permanent(nil) should be nil")
	}
}
