// internal/form/submit_test.go
//
// ParseSubmission tests build real POST requests with httptest so the CSRF
// and timing checks run exactly as they do in production.
//
//------------------------------------------------------------------------------

package form

import (
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"
)

func registerSubmitForm(t *testing.T) {
	t.Helper()
	register(&FormDef{
		ID:          "test/submit",
		SubmitLabel: "Send",
		Fields: []FieldDef{
			{Name: "name", Label: "Name", Type: "text", Required: true},
			{Name: "email", Label: "Email", Type: "email", Required: true},
		},
	})
}

func newSubmission(t *testing.T, mutate func(url.Values)) (map[string]string, error) {
	t.Helper()
	tok, err := GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	vals := url.Values{
		"name":       {"Asha Verma"},
		"email":      {"asha@example.com"},
		"csrf_token": {tok},
		"render_ts":  {strconv.FormatInt(time.Now().Add(-10*time.Second).UnixMicro(), 10)},
	}
	if mutate != nil {
		mutate(vals)
	}
	r := httptest.NewRequest("POST", "/test", strings.NewReader(vals.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return ParseSubmission("test/submit", r)
}

func TestParseSubmission_OK(t *testing.T) {
	registerSubmitForm(t)

	values, err := newSubmission(t, nil)
	if err != nil {
		t.Fatalf("ParseSubmission: %v", err)
	}
	if values["name"] != "Asha Verma" || values["email"] != "asha@example.com" {
		t.Errorf("values = %v", values)
	}
}

func TestParseSubmission_MissingFieldIsEmpty(t *testing.T) {
	registerSubmitForm(t)

	values, err := newSubmission(t, func(v url.Values) { v.Del("email") })
	if err != nil {
		t.Fatalf("ParseSubmission: %v", err)
	}
	if got, present := values["email"]; !present || got != "" {
		t.Errorf("email = %q (present=%v), want empty string", got, present)
	}
}

func TestParseSubmission_BadCSRF(t *testing.T) {
	registerSubmitForm(t)

	_, err := newSubmission(t, func(v url.Values) { v.Set("csrf_token", "forged") })
	if err == nil || !IsSubmissionError(err) {
		t.Fatalf("err = %v, want SubmissionError", err)
	}
	if err.Error() != "Security token invalid.  Please refresh and try again." {
		t.Errorf("message = %q", err.Error())
	}
}

func TestParseSubmission_TimingChecks(t *testing.T) {
	registerSubmitForm(t)

	cases := []struct {
		name string
		ts   string
		want string
	}{
		{"missing", "", "Timestamp missing.  Please reload the page."},
		{"garbage", "not-a-number", "Bad timestamp.  Please retry."},
		{"too fast", strconv.FormatInt(time.Now().UnixMicro(), 10),
			"Form submitted too quickly.  Please enter the fields manually."},
		{"expired", strconv.FormatInt(time.Now().Add(-time.Hour).UnixMicro(), 10),
			"Form expired.  Please reload and submit again."},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := newSubmission(t, func(v url.Values) {
				if c.ts == "" {
					v.Del("render_ts")
				} else {
					v.Set("render_ts", c.ts)
				}
			})
			if err == nil || !IsSubmissionError(err) {
				t.Fatalf("err = %v, want SubmissionError", err)
			}
			if err.Error() != c.want {
				t.Errorf("message = %q, want %q", err.Error(), c.want)
			}
		})
	}
}

func TestParseSubmission_UnknownForm(t *testing.T) {
	r := httptest.NewRequest("POST", "/test", nil)
	_, err := ParseSubmission("no/such", r)
	if err == nil || IsSubmissionError(err) {
		t.Fatalf("err = %v, want plain error for unknown form", err)
	}
}
