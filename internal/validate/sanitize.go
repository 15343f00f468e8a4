// internal/validate/sanitize.go
//
// True Relief Physio – submission sanitization.
//
// Context
//   Sanitization runs after validation has already passed and immediately
//   before the payload leaves for the backend.  It is defense in depth, not a
//   substitute for the rules in validate.go: it must never change an approved
//   value into a rejected one.  Angle brackets are stripped because nothing a
//   patient legitimately types needs them, and the 5000-character cap bounds
//   payload size well above every field's own limit.
//
//   StripHTML serves the opposite direction: lead text fetched from the
//   backend is scrubbed of markup before the admin dashboard renders it.
//
//------------------------------------------------------------------------------

package validate

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const sanitizeMaxLen = 5000

var angleStrip = strings.NewReplacer("<", "", ">", "")

// htmlPolicy strips every tag and attribute, leaving plain text.
var htmlPolicy = bluemonday.StrictPolicy()

// SanitizeString trims surrounding whitespace, removes angle brackets, and
// truncates the result to 5000 characters.
func SanitizeString(value string) string {
	if value == "" {
		return ""
	}
	s := angleStrip.Replace(strings.TrimSpace(value))
	if len(s) > sanitizeMaxLen {
		s = s[:sanitizeMaxLen]
	}
	return s
}

// SanitizeFormData applies SanitizeString to every string value of a form
// payload.  Non-string values (the coerced age integer, for example) pass
// through unchanged.
func SanitizeFormData(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		if s, isStr := v.(string); isStr {
			out[k] = SanitizeString(s)
		} else {
			out[k] = v
		}
	}
	return out
}

// StripHTML removes all markup from backend-supplied text so the admin
// dashboard can render it as-is.
func StripHTML(value string) string {
	return htmlPolicy.Sanitize(value)
}
