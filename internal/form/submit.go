// internal/form/submit.go
//
// True Relief Physio – forms subsystem: submission parsing.
//
// Context
//   Page handlers want one call that parses the POST body, verifies the CSRF
//   token, applies the render-timestamp timing check, and returns the raw
//   field values keyed by name.  Domain validation (email shape, phone
//   digits, date windows) is NOT done here; the orchestrator runs the
//   aggregate validator afterward so every rule failure is collected in one
//   pass.
//
// Workflow
//   •  ParseSubmission parses r, checks csrf_token and render_ts, and copies
//      each defined field's value into a map.
//   •  A failed security check returns a *SubmissionError whose Message is
//      safe to show the visitor; check with IsSubmissionError.
//
//------------------------------------------------------------------------------

package form

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// SubmissionError reports a failed form-level security check.  Message is
// user-facing.
type SubmissionError struct{ Message string }

func (e *SubmissionError) Error() string { return e.Message }

// IsSubmissionError reports whether err came from a failed security check.
func IsSubmissionError(err error) bool {
	var se *SubmissionError
	return errors.As(err, &se)
}

// ParseSubmission parses r against formID and returns the submitted values
// keyed by field name.  Missing fields come back as empty strings so the
// aggregate validator can report every required-field error at once.
func ParseSubmission(formID string, r *http.Request) (map[string]string, error) {
	fd, ok := GetFormDef(formID)
	if !ok {
		return nil, fmt.Errorf("ParseSubmission: unknown form %q", formID)
	}

	if err := r.ParseForm(); err != nil {
		return nil, &SubmissionError{Message: "Could not read the form.  Please try again."}
	}

	if !VerifyToken(r.PostForm.Get("csrf_token")) {
		return nil, &SubmissionError{Message: "Security token invalid.  Please refresh and try again."}
	}
	if msg := checkTiming(r.PostForm.Get("render_ts")); msg != "" {
		return nil, &SubmissionError{Message: msg}
	}

	values := make(map[string]string, len(fd.Fields))
	for _, f := range fd.Fields {
		values[f.Name] = r.PostForm.Get(f.Name)
	}
	return values, nil
}

// checkTiming ensures the form was not submitted suspiciously fast or too
// late.  Returns empty string on success, user-visible message on failure.
func checkTiming(tsRaw string) string {
	if tsRaw == "" {
		return "Timestamp missing.  Please reload the page."
	}
	ts, err := strconv.ParseInt(tsRaw, 10, 64)
	if err != nil {
		return "Bad timestamp.  Please retry."
	}
	delta := time.Since(time.UnixMicro(ts))
	switch {
	case delta < 2*time.Second:
		return "Form submitted too quickly.  Please enter the fields manually."
	case delta > 30*time.Minute:
		return "Form expired.  Please reload and submit again."
	default:
		return ""
	}
}
