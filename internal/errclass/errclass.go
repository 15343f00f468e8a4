// internal/errclass/errclass.go
//
// True Relief Physio – user-facing error classification.
//
// Context
//   Visitors never see status codes or stack traces.  Classify maps a
//   *backend.APIError to a Friendly value: a title, a message, an optional
//   next-step line, and flags telling the form flow whether the situation is
//   recoverable and whether a retry can help.  Precedence is fixed and first
//   match wins:
//
//     rate limited → no response (0) → 400 → 401 → 403 → 404 → ≥500 → generic
//
//   Retryable applies the same judgement independently (transport, 5xx, and
//   rate-limit failures retry; other 4xx do not) and must stay consistent
//   with the CanRetry flags Classify emits.  The tests enforce that.
//
//------------------------------------------------------------------------------

package errclass

import (
	"fmt"

	"github.com/truereliefphysio/physioweb/internal/backend"
	"github.com/truereliefphysio/physioweb/internal/site"
)

// Friendly is the user-facing rendering of a backend failure.
type Friendly struct {
	Title       string
	Message     string
	Action      string // optional next-step line
	Recoverable bool   // the visitor can do something about it
	CanRetry    bool   // retrying the same request can succeed
	RetryAfter  int    // seconds, 0 when unknown
}

// Severity grades for logging and banner styling.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// Classify converts a backend failure into user-facing copy.
func Classify(err *backend.APIError) Friendly {
	if err.IsRateLimited {
		f := Friendly{
			Title:       "Too Many Requests",
			Message:     "You've reached the request limit. Please try again later.",
			Action:      "Please wait before submitting again, or contact us directly for urgent matters.",
			Recoverable: true,
			CanRetry:    true,
			RetryAfter:  err.RetryAfter,
		}
		if err.RetryAfter > 0 {
			mins := (err.RetryAfter + 59) / 60
			f.Message = fmt.Sprintf("You've reached the request limit. Please try again in %d minute%s.",
				mins, plural(mins))
		}
		return f
	}

	switch {
	case err.Status == 0:
		return Friendly{
			Title:       "Connection Error",
			Message:     "Unable to connect to the server. Please check your internet connection.",
			Action:      "Check your connection and try again.",
			Recoverable: true,
			CanRetry:    true,
		}

	case err.Status == 400:
		f := Friendly{
			Title:       "Invalid Information",
			Message:     "Please check the information you entered and try again.",
			Action:      "Review your input and make sure all required fields are filled correctly.",
			Recoverable: true,
			CanRetry:    false,
		}
		if err.Message != "" {
			f.Message = err.Message
		}
		return f

	case err.Status == 401:
		return Friendly{
			Title:       "Authentication Required",
			Message:     "Your session has expired. Please log in again.",
			Action:      "You will be redirected to the login page.",
			Recoverable: true,
			CanRetry:    false,
		}

	case err.Status == 403:
		return Friendly{
			Title:       "Access Denied",
			Message:     "You don't have permission to perform this action.",
			Action:      "Please contact support if you believe this is a mistake.",
			Recoverable: false,
			CanRetry:    false,
		}

	case err.Status == 404:
		return Friendly{
			Title:       "Not Found",
			Message:     "The requested resource could not be found.",
			Action:      "Please try again or contact support.",
			Recoverable: false,
			CanRetry:    false,
		}

	case err.Status >= 500:
		return Friendly{
			Title:       "Server Error",
			Message:     "Something went wrong on our end. We're working to fix it.",
			Action:      "Please try again in a few minutes, or contact us for urgent matters.",
			Recoverable: true,
			CanRetry:    true,
		}
	}

	f := Friendly{
		Title:       "Oops! Something Went Wrong",
		Message:     "An unexpected error occurred.",
		Action:      "Please try again or contact support if the problem persists.",
		Recoverable: true,
		CanRetry:    true,
	}
	if err.Message != "" {
		f.Message = err.Message
	}
	return f
}

// Retryable reports whether retrying the same request can succeed: transport
// failures, 5xx responses, and rate limiting (after waiting).  Every other
// client error is permanent.
func Retryable(err *backend.APIError) bool {
	if err.Status == 0 || err.Status >= 500 || err.IsRateLimited {
		return true
	}
	return false
}

// ClassifySeverity grades the failure for logging and banner styling.
func ClassifySeverity(err *backend.APIError) Severity {
	switch {
	case err.IsRateLimited:
		return SeverityWarning
	case err.Status == 0:
		return SeverityError
	case err.Status == 400, err.Status == 401, err.Status == 403:
		return SeverityWarning
	case err.Status == 404:
		return SeverityInfo
	case err.Status >= 500:
		return SeverityCritical
	default:
		return SeverityError
	}
}

// Recommendations lists plain-language next steps for the visitor, including
// the clinic's direct contact details where reaching out is the right move.
func Recommendations(err *backend.APIError, clinic site.Contact) []string {
	var recs []string

	switch {
	case err.IsRateLimited:
		recs = append(recs,
			"Wait before trying again",
			"Contact us directly for urgent matters")
		if line := clinic.PhoneLine(); line != "" {
			recs = append(recs, "Call: "+line)
		}
	case err.Status == 0:
		recs = append(recs,
			"Check your internet connection",
			"Refresh the page",
			"Try again in a moment")
	case err.Status == 400:
		recs = append(recs,
			"Review all form fields",
			"Ensure phone number is valid",
			"Check that email address is correct",
			"Verify date is in the future")
	case err.Status >= 500:
		recs = append(recs,
			"Wait a few minutes and try again",
			"Contact us if the issue persists")
		if clinic.Email != "" {
			recs = append(recs, "Email: "+clinic.Email)
		}
	}

	return recs
}

// FormatRetryTime renders a countdown in the largest sensible unit:
// "45 seconds" or "3 minutes".
func FormatRetryTime(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%d second%s", seconds, plural(seconds))
	}
	mins := (seconds + 59) / 60
	return fmt.Sprintf("%d minute%s", mins, plural(mins))
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}
