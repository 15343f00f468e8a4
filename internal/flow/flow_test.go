// internal/flow/flow_test.go
//
// Drives the submission state machine with fake validators and submit
// functions: validation short-circuit, success reset, backend error
// classification, rate-limit countdown, and panic containment.
//
//------------------------------------------------------------------------------

package flow

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/truereliefphysio/physioweb/internal/backend"
	"github.com/truereliefphysio/physioweb/internal/site"
)

func passValidator(values map[string]string) (bool, map[string]string) {
	return true, map[string]string{}
}

func testClinic() site.Contact {
	return site.Contact{Phones: []string{"9625891710"}, Email: "hello@example.com"}
}

func TestSubmit_ValidationFailureNeverReachesBackend(t *testing.T) {
	submitted := false
	f := New(Config{
		Name: "test",
		Validate: func(values map[string]string) (bool, map[string]string) {
			return false, map[string]string{"email": "Email is required"}
		},
		Submit: func(ctx context.Context, values map[string]string) (string, error) {
			submitted = true
			return "", nil
		},
	})
	defer f.Stop()

	out := f.Submit(context.Background())
	if submitted {
		t.Fatal("submit function ran despite validation failure")
	}
	if out.State != StateFailed {
		t.Errorf("State = %v", out.State)
	}
	if out.Errors["email"] != "Email is required" {
		t.Errorf("Errors = %v", out.Errors)
	}
	if out.Banner.Title != "Validation Error" {
		t.Errorf("Banner = %+v", out.Banner)
	}
	// The standing errors survive for the next render.
	if f.Errors()["email"] != "Email is required" {
		t.Errorf("standing errors = %v", f.Errors())
	}
	if f.State() != StateEditing {
		t.Errorf("state after failure = %v, want editing", f.State())
	}
}

func TestSubmit_SuccessClearsFormAndUsesServerMessage(t *testing.T) {
	f := New(Config{
		Name:     "test",
		Validate: passValidator,
		Submit: func(ctx context.Context, values map[string]string) (string, error) {
			return "Booked!", nil
		},
		DefaultSuccess: "fallback",
	})
	defer f.Stop()

	f.SetField("name", "Asha")
	out := f.Submit(context.Background())
	if out.State != StateSucceeded {
		t.Fatalf("State = %v", out.State)
	}
	if out.Banner.Kind != "success" || out.Banner.Message != "Booked!" {
		t.Errorf("Banner = %+v", out.Banner)
	}
	if len(f.Values()) != 0 {
		t.Errorf("values not cleared: %v", f.Values())
	}
	if !f.CanSubmit() {
		t.Error("CanSubmit = false after success")
	}
}

func TestSubmit_DefaultSuccessWhenServerSilent(t *testing.T) {
	f := New(Config{
		Name:     "test",
		Validate: passValidator,
		Submit: func(ctx context.Context, values map[string]string) (string, error) {
			return "", nil
		},
		DefaultSuccess: "Appointment booked successfully!",
	})
	defer f.Stop()

	out := f.Submit(context.Background())
	if out.Banner.Message != "Appointment booked successfully!" {
		t.Errorf("Message = %q", out.Banner.Message)
	}
}

func TestSubmit_SanitizeRunsBeforeSend(t *testing.T) {
	var sent map[string]string
	f := New(Config{
		Name:     "test",
		Validate: passValidator,
		Sanitize: func(values map[string]string) map[string]string {
			out := make(map[string]string, len(values))
			for k, v := range values {
				out[k] = strings.TrimSpace(v)
			}
			return out
		},
		Submit: func(ctx context.Context, values map[string]string) (string, error) {
			sent = values
			return "", nil
		},
	})
	defer f.Stop()

	f.SetField("name", "  Asha  ")
	f.Submit(context.Background())
	if sent["name"] != "Asha" {
		t.Errorf("sent name = %q, want sanitized", sent["name"])
	}
}

func TestSubmit_BackendErrorIsClassified(t *testing.T) {
	f := New(Config{
		Name:     "test",
		Validate: passValidator,
		Submit: func(ctx context.Context, values map[string]string) (string, error) {
			return "", &backend.APIError{Status: 500}
		},
		Clinic: testClinic(),
	})
	defer f.Stop()

	out := f.Submit(context.Background())
	if out.State != StateFailed {
		t.Fatalf("State = %v", out.State)
	}
	if out.Banner.Title != "Server Error" || !out.Banner.CanRetry {
		t.Errorf("Banner = %+v", out.Banner)
	}
	// 5xx recommendations end with the clinic email.
	if n := len(out.Banner.Details); n == 0 || out.Banner.Details[n-1] != "Email: hello@example.com" {
		t.Errorf("Details = %v", out.Banner.Details)
	}
	if !f.CanSubmit() {
		t.Error("CanSubmit = false after a plain backend error")
	}
}

func TestSubmit_RateLimitStartsCountdown(t *testing.T) {
	f := New(Config{
		Name:     "test",
		Validate: passValidator,
		Submit: func(ctx context.Context, values map[string]string) (string, error) {
			return "", &backend.APIError{Status: 429, IsRateLimited: true, RetryAfter: 2}
		},
	})
	defer f.Stop()
	f.tick = 5 * time.Millisecond

	out := f.Submit(context.Background())
	if out.Banner.Title != "Too Many Requests" || out.Banner.RetryAfter != 2 {
		t.Fatalf("Banner = %+v", out.Banner)
	}
	if f.CanSubmit() {
		t.Fatal("CanSubmit = true while countdown active")
	}

	// A second submit during the countdown is rejected without running the
	// submit function.
	blocked := f.Submit(context.Background())
	if blocked.Banner.Title != "Too Many Requests" {
		t.Errorf("blocked Banner = %+v", blocked.Banner)
	}

	deadline := time.After(time.Second)
	for !f.CanSubmit() {
		select {
		case <-deadline:
			t.Fatal("countdown never finished")
		case <-time.After(5 * time.Millisecond):
		}
	}
	if f.Countdown() != 0 {
		t.Errorf("Countdown = %d after expiry", f.Countdown())
	}
}

func TestSubmit_PanicBecomesUnexpectedError(t *testing.T) {
	f := New(Config{
		Name:     "test",
		Validate: passValidator,
		Submit: func(ctx context.Context, values map[string]string) (string, error) {
			panic("boom")
		},
		Clinic: testClinic(),
	})
	defer f.Stop()

	out := f.Submit(context.Background())
	if out.State != StateFailed {
		t.Fatalf("State = %v", out.State)
	}
	if out.Banner.Title != "Unexpected Error" {
		t.Errorf("Banner = %+v", out.Banner)
	}
	if len(out.Banner.Details) != 2 {
		t.Errorf("Details = %v, want clinic phone and email", out.Banner.Details)
	}
	if f.State() != StateEditing {
		t.Errorf("state = %v, want editing after recovery", f.State())
	}
}

func TestSubmit_NonAPIErrorFallback(t *testing.T) {
	f := New(Config{
		Name:     "test",
		Validate: passValidator,
		Submit: func(ctx context.Context, values map[string]string) (string, error) {
			return "", errors.New("json: cannot unmarshal")
		},
	})
	defer f.Stop()

	out := f.Submit(context.Background())
	if out.Banner.Title != "Unexpected Error" {
		t.Errorf("Banner = %+v", out.Banner)
	}
}

func TestSetField_ClearsStandingError(t *testing.T) {
	f := New(Config{
		Name: "test",
		Validate: func(values map[string]string) (bool, map[string]string) {
			return false, map[string]string{"email": "Email is required"}
		},
	})
	defer f.Stop()

	f.Submit(context.Background())
	if f.Errors()["email"] == "" {
		t.Fatal("expected standing email error")
	}
	f.SetField("email", "asha@example.com")
	if _, still := f.Errors()["email"]; still {
		t.Error("error not cleared by SetField")
	}
}

// The banner partial renders RetryLine, so the wording must roll over from
// seconds to rounded-up minutes exactly where the classifier copy does.
func TestBannerRetryLine(t *testing.T) {
	cases := []struct {
		after int
		want  string
	}{
		{1, "1 second"},
		{45, "45 seconds"},
		{60, "1 minute"},
		{90, "2 minutes"},
		{121, "3 minutes"},
	}
	for _, c := range cases {
		b := Banner{RetryAfter: c.after}
		if got := b.RetryLine(); got != c.want {
			t.Errorf("RetryLine(%d) = %q, want %q", c.after, got, c.want)
		}
	}
}

func TestStateString(t *testing.T) {
	cases := map[State]string{
		StateEditing:    "editing",
		StateValidating: "validating",
		StateSubmitting: "submitting",
		StateSucceeded:  "succeeded",
		StateFailed:     "failed",
		State(99):       "unknown",
	}
	for s, want := range cases {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", int(s), got, want)
		}
	}
}
