// internal/backend/error.go
//
// True Relief Physio – backend failure descriptor.
//
// Context
//   Every unsuccessful call to the lead backend is reported as an *APIError.
//   Status 0 means the request never produced an HTTP response (DNS failure,
//   refused connection, timeout).  A 429 additionally carries the
//   rate-limiting flag and, when the backend supplied one, the number of
//   seconds to wait.  The error classifier (internal/errclass) turns this
//   struct into user-facing copy; nothing in this package composes messages
//   for end users.
//
//------------------------------------------------------------------------------

package backend

import (
	"errors"
	"fmt"
)

// APIError describes a failed backend call.
type APIError struct {
	Status        int            // HTTP status; 0 when no response was received
	Message       string         // backend-supplied message, may be empty
	IsRateLimited bool           // true for 429 responses
	RetryAfter    int            // seconds to wait; 0 when unknown
	Details       map[string]any // extra payload fields, e.g. per-field errors
}

// Error satisfies the error interface.
func (e *APIError) Error() string {
	switch {
	case e.IsRateLimited:
		return fmt.Sprintf("backend: rate limited (retry after %ds)", e.RetryAfter)
	case e.Status == 0:
		return "backend: no response"
	default:
		return fmt.Sprintf("backend: status %d", e.Status)
	}
}

// AsAPIError unwraps err into an *APIError when possible.
func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
