// internal/backend/retry_test.go

package backend

import (
	"context"
	"errors"
	"testing"
)

func TestRetryWithBackoff_SucceedsAfterTransient(t *testing.T) {
	attempts := 0
	got, err := RetryWithBackoff(context.Background(), func(ctx context.Context) (string, error) {
		attempts++
		if attempts < 2 {
			return "", &APIError{Status: 503}
		}
		return "ok", nil
	})
	if err != nil || got != "ok" {
		t.Fatalf("got (%q, %v)", got, err)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
}

func TestRetryWithBackoff_PermanentStopsImmediately(t *testing.T) {
	attempts := 0
	_, err := RetryWithBackoff(context.Background(), func(ctx context.Context) (int, error) {
		attempts++
		return 0, &APIError{Status: 400}
	})
	ae, isAPI := AsAPIError(err)
	if !isAPI || ae.Status != 400 {
		t.Fatalf("err = %v", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 for a permanent error", attempts)
	}
}

func TestRetryWithBackoff_NonAPIErrorIsPermanent(t *testing.T) {
	attempts := 0
	boom := errors.New("boom")
	_, err := RetryWithBackoff(context.Background(), func(ctx context.Context) (int, error) {
		attempts++
		return 0, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped boom", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}

func TestRetryWithBackoff_GivesUpAfterMaxAttempts(t *testing.T) {
	attempts := 0
	_, err := RetryWithBackoff(context.Background(), func(ctx context.Context) (int, error) {
		attempts++
		return 0, &APIError{Status: 0}
	})
	if err == nil {
		t.Fatal("want error after exhausting retries")
	}
	if attempts != retryMaxAttempts {
		t.Errorf("attempts = %d, want %d", attempts, retryMaxAttempts)
	}
}

func TestRetryWithBackoff_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	_, err := RetryWithBackoff(ctx, func(ctx context.Context) (int, error) {
		attempts++
		cancel() // abort before the first backoff wait completes
		return 0, &APIError{Status: 503}
	})
	if err == nil {
		t.Fatal("want error after cancellation")
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}
