package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func retryOnlyExecutor() *Executor {
	return NewExecutor(Config{
		RetryMaxAttempts:    3,
		RetryInitialBackoff: time.Millisecond,
		RetryMaxBackoff:     2 * time.Millisecond,
		RetryMultiplier:     2,
		BreakerEnabled:      false,
	})
}

func TestExecuteRetriesRetryableFailures(t *testing.T) {
	errFlaky := errors.New("flaky")
	attempts := 0

	err := retryOnlyExecutor().Execute(context.Background(), "op", func(context.Context) error {
		attempts++
		if attempts < 3 {
			return errFlaky
		}
		return nil
	}, func(err error) ErrorClassification {
		return ErrorClassification{Retryable: errors.Is(err, errFlaky), RecordFailure: true}
	})

	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestExecuteStopsOnPermanentFailure(t *testing.T) {
	errPermanent := errors.New("permanent")
	attempts := 0

	err := retryOnlyExecutor().Execute(context.Background(), "op", func(context.Context) error {
		attempts++
		return errPermanent
	}, func(error) ErrorClassification {
		return ErrorClassification{Retryable: false, RecordFailure: true}
	})

	if !errors.Is(err, errPermanent) {
		t.Fatalf("expected permanent error, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected single attempt, got %d", attempts)
	}
}

func TestExecuteGivesUpAfterMaxAttempts(t *testing.T) {
	errFlaky := errors.New("flaky")
	attempts := 0

	err := retryOnlyExecutor().Execute(context.Background(), "op", func(context.Context) error {
		attempts++
		return errFlaky
	}, func(error) ErrorClassification {
		return ErrorClassification{Retryable: true, RecordFailure: true}
	})

	if !errors.Is(err, errFlaky) {
		t.Fatalf("expected flaky error after exhaustion, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestExecuteHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := retryOnlyExecutor().Execute(ctx, "op", func(context.Context) error {
		t.Fatalf("callback must not run with a cancelled context")
		return nil
	}, nil)

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
