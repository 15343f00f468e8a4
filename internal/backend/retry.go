// internal/backend/retry.go
//
// True Relief Physio – retry helper for backend calls.
//
// Context
//   List fetches on the admin dashboard are safe to retry; lead creation is
//   not (a retry could double-book a patient), so the booking flow never uses
//   this helper.  Retry policy matches errclass.Retryable: transport
//   failures, 5xx responses, and rate limiting retry; every other 4xx is
//   permanent.
//
//------------------------------------------------------------------------------

package backend

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const retryMaxAttempts = 3

// RetryWithBackoff runs fn up to three times with exponential backoff,
// stopping early on a non-retryable error or context cancellation.
func RetryWithBackoff[T any](ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = time.Second
	bo.RandomizationFactor = 0 // deterministic spacing keeps tests honest

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, retryMaxAttempts-1), ctx)

	return backoff.RetryWithData(func() (T, error) {
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		if ae, isAPI := AsAPIError(err); isAPI {
			if ae.Status == 0 || ae.Status >= 500 || ae.IsRateLimited {
				return v, err // transient, retry
			}
			return v, backoff.Permanent(err)
		}
		return v, backoff.Permanent(err)
	}, policy)
}
