// internal/flow/flow.go
//
// True Relief Physio – form submission orchestrator.
//
// Context
//   Both lead forms (appointment booking, contact inquiry) share one life
//   cycle: the visitor edits fields, submits, the aggregate validator runs,
//   and on success the sanitized data goes to the backend.  A Form instance
//   tracks that life cycle as an explicit state machine:
//
//     Editing → Validating → Submitting → Succeeded | Failed → Editing
//
//   Validation failures never reach the network; they return the full error
//   map plus a generic banner so the page re-renders with every problem
//   highlighted at once.  Backend failures are classified into friendly copy
//   via internal/errclass, and a rate-limited response with a known wait
//   starts a one-second countdown that blocks resubmission until it reaches
//   zero.  Anything unexpected (a panic in the submit function, a non-API
//   error) yields a fixed fallback banner carrying the clinic's direct
//   contact details.
//
//   The countdown is advisory and scoped to one Form instance, which lives
//   for a single request.  Cross-request throttling is enforced by the
//   backend, whose 429 responses are what start the countdown here.
//
// Workflow
//   •  New builds a Form from a Config (validator, sanitizer, submit
//      function, copy, clinic contact).
//   •  SetField stores a value and optimistically clears that field's error.
//   •  Submit drives one full pass through the machine and returns the
//      resulting Outcome for the page to render.
//   •  CanSubmit is false while a submission is in flight or a countdown is
//      running; Stop releases the countdown goroutine.
//
//------------------------------------------------------------------------------

package flow

import (
	"context"
	"sync"
	"time"

	"github.com/truereliefphysio/physioweb/internal/backend"
	"github.com/truereliefphysio/physioweb/internal/errclass"
	"github.com/truereliefphysio/physioweb/internal/metrics"
	"github.com/truereliefphysio/physioweb/internal/site"
	"go.uber.org/zap"
)

// State names one phase of the submission life cycle.
type State int

const (
	StateEditing State = iota
	StateValidating
	StateSubmitting
	StateSucceeded
	StateFailed
)

// String satisfies fmt.Stringer for logs and tests.
func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ValidateFunc runs the aggregate validator over the current values and
// returns per-field error messages keyed by field name.
type ValidateFunc func(values map[string]string) (bool, map[string]string)

// SanitizeFunc cleans values after validation, before submission.
type SanitizeFunc func(values map[string]string) map[string]string

// SubmitFunc sends the sanitized values to the backend and returns the
// server's success message (may be empty).
type SubmitFunc func(ctx context.Context, values map[string]string) (string, error)

// Banner is the page-level notice rendered above the form after a submit.
type Banner struct {
	Kind       string // "success" or "error"
	Title      string
	Message    string
	Action     string
	Details    []string // extra lines, e.g. direct contact info
	CanRetry   bool
	RetryAfter int // seconds; > 0 starts the visible countdown
}

// RetryLine renders RetryAfter as human-readable copy ("45 seconds",
// "2 minutes") for the banner partial.
func (b Banner) RetryLine() string {
	return errclass.FormatRetryTime(b.RetryAfter)
}

// Outcome is the result of one Submit pass.
type Outcome struct {
	State  State             // StateSucceeded or StateFailed
	Errors map[string]string // per-field messages on validation failure
	Banner Banner
}

// Config assembles a Form.  Name labels metrics and logs; DefaultSuccess is
// shown when the backend answers 2xx without a message.
type Config struct {
	Name           string
	Validate       ValidateFunc
	Sanitize       SanitizeFunc
	Submit         SubmitFunc
	DefaultSuccess string
	Clinic         site.Contact
}

// Form is one orchestrator instance.  Safe for concurrent use.
type Form struct {
	cfg Config

	mu        sync.Mutex
	state     State
	values    map[string]string
	errors    map[string]string
	countdown int // seconds remaining; 0 when idle

	tick     time.Duration // countdown granularity; tests shorten it
	stopOnce sync.Once
	stopCh   chan struct{}
}

// New returns a Form in the Editing state.
func New(cfg Config) *Form {
	return &Form{
		cfg:    cfg,
		state:  StateEditing,
		values: make(map[string]string),
		errors: make(map[string]string),
		tick:   time.Second,
		stopCh: make(chan struct{}),
	}
}

// SetField stores a value and clears any standing error for that field.  The
// optimistic clear means a visitor who fixes a flagged input sees the message
// disappear on the next render without waiting for revalidation.
func (f *Form) SetField(name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[name] = value
	delete(f.errors, name)
}

// Values returns a copy of the current field values.
func (f *Form) Values() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// Errors returns a copy of the standing per-field errors.
func (f *Form) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// State reports the current phase.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// CanSubmit is false while a submission is in flight or a rate-limit
// countdown is still running.
func (f *Form) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state != StateSubmitting && f.state != StateValidating && f.countdown == 0
}

// Countdown returns the seconds remaining before resubmission is allowed,
// zero when no countdown is active.
func (f *Form) Countdown() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.countdown
}

// Stop releases the countdown goroutine, if any.  Call when the form
// instance is discarded.
func (f *Form) Stop() {
	f.stopOnce.Do(func() { close(f.stopCh) })
}

// Submit drives one full pass: validate, sanitize, send, classify.  The Form
// always returns to Editing afterward; only an active countdown keeps
// CanSubmit false.
func (f *Form) Submit(ctx context.Context) Outcome {
	f.mu.Lock()
	if f.state == StateSubmitting || f.state == StateValidating || f.countdown > 0 {
		wait := f.countdown
		f.mu.Unlock()
		return Outcome{
			State: StateFailed,
			Banner: Banner{
				Kind:       "error",
				Title:      "Too Many Requests",
				Message:    "Please wait before submitting again.",
				RetryAfter: wait,
			},
		}
	}
	f.state = StateValidating
	values := make(map[string]string, len(f.values))
	for k, v := range f.values {
		values[k] = v
	}
	f.mu.Unlock()

	ok, fieldErrs := f.cfg.Validate(values)
	if !ok {
		f.mu.Lock()
		f.state = StateEditing
		f.errors = fieldErrs
		f.mu.Unlock()
		metrics.FormSubmissionsTotal.WithLabelValues(f.cfg.Name, "invalid").Inc()
		return Outcome{
			State:  StateFailed,
			Errors: fieldErrs,
			Banner: Banner{
				Kind:    "error",
				Title:   "Validation Error",
				Message: "Please fix the errors in the form before submitting.",
			},
		}
	}

	f.setState(StateSubmitting)
	if f.cfg.Sanitize != nil {
		values = f.cfg.Sanitize(values)
	}

	msg, err := f.send(ctx, values)
	if err == nil {
		f.mu.Lock()
		f.values = make(map[string]string)
		f.errors = make(map[string]string)
		f.state = StateEditing
		f.mu.Unlock()
		metrics.FormSubmissionsTotal.WithLabelValues(f.cfg.Name, "success").Inc()
		if msg == "" {
			msg = f.cfg.DefaultSuccess
		}
		return Outcome{
			State:  StateSucceeded,
			Banner: Banner{Kind: "success", Message: msg},
		}
	}

	metrics.FormSubmissionsTotal.WithLabelValues(f.cfg.Name, "error").Inc()

	ae, isAPI := backend.AsAPIError(err)
	if !isAPI {
		// Malformed response, panic, or any other surprise.  Fixed fallback
		// copy with the clinic's direct contact details.
		zap.S().Errorw("form submit failed unexpectedly", "form", f.cfg.Name, "error", err)
		f.setState(StateEditing)
		return Outcome{
			State: StateFailed,
			Banner: Banner{
				Kind:    "error",
				Title:   "Unexpected Error",
				Message: "An unexpected error occurred. Please try again or contact us directly.",
				Details: f.clinicDetails(),
			},
		}
	}

	friendly := errclass.Classify(ae)
	zap.S().Warnw("form submit rejected",
		"form", f.cfg.Name,
		"status", ae.Status,
		"rate_limited", ae.IsRateLimited,
		"severity", errclass.ClassifySeverity(ae))

	f.mu.Lock()
	if ae.IsRateLimited && friendly.RetryAfter > 0 {
		f.countdown = friendly.RetryAfter
		go f.runCountdown()
	}
	f.state = StateEditing
	f.mu.Unlock()

	return Outcome{
		State: StateFailed,
		Banner: Banner{
			Kind:       "error",
			Title:      friendly.Title,
			Message:    friendly.Message,
			Action:     friendly.Action,
			Details:    errclass.Recommendations(ae, f.cfg.Clinic),
			CanRetry:   friendly.CanRetry,
			RetryAfter: friendly.RetryAfter,
		},
	}
}

// send invokes the submit function, converting a panic into an error so one
// misbehaving handler cannot take the server down.
func (f *Form) send(ctx context.Context, values map[string]string) (msg string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{val: r}
		}
	}()
	return f.cfg.Submit(ctx, values)
}

// runCountdown decrements the remaining wait once per tick.  It is
// independent of any in-flight request and ends when the count reaches zero
// or Stop is called.
func (f *Form) runCountdown() {
	t := time.NewTicker(f.tick)
	defer t.Stop()
	for {
		select {
		case <-f.stopCh:
			return
		case <-t.C:
			f.mu.Lock()
			if f.countdown > 0 {
				f.countdown--
			}
			done := f.countdown == 0
			f.mu.Unlock()
			if done {
				return
			}
		}
	}
}

func (f *Form) setState(s State) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}

func (f *Form) clinicDetails() []string {
	var out []string
	if line := f.cfg.Clinic.PhoneLine(); line != "" {
		out = append(out, "Call: "+line)
	}
	if f.cfg.Clinic.Email != "" {
		out = append(out, "Email: "+f.cfg.Clinic.Email)
	}
	return out
}

// panicError wraps a recovered panic value.
type panicError struct{ val any }

func (p *panicError) Error() string { return "submit handler panicked" }
