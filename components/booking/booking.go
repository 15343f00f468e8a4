// components/booking/booking.go
//
// True Relief Physio – appointment booking component.
//
// Context
//   GET renders the appointment form (YAML definition, renderer with CSRF
//   token and render timestamp).  POST runs the submission orchestrator:
//   aggregate validation first (no network call on any rule failure), then
//   sanitization, then the backend create call.  The page re-renders with
//   per-field errors, a success banner, or the classified failure copy
//   including retry-countdown info and recommendations.
//
// Workflow
//   •  GET  /book-appointment  → blank form
//   •  POST /book-appointment  → orchestrated submission, re-render
//
//------------------------------------------------------------------------------

package booking

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/truereliefphysio/physioweb/internal/backend"
	"github.com/truereliefphysio/physioweb/internal/catalog"
	"github.com/truereliefphysio/physioweb/internal/component"
	"github.com/truereliefphysio/physioweb/internal/core"
	"github.com/truereliefphysio/physioweb/internal/flow"
	"github.com/truereliefphysio/physioweb/internal/form"
	"github.com/truereliefphysio/physioweb/internal/metrics"
	"github.com/truereliefphysio/physioweb/internal/site"
	"github.com/truereliefphysio/physioweb/internal/validate"
	"github.com/truereliefphysio/physioweb/internal/view"
)

const formID = "booking/appointment"

const defaultSuccess = "Appointment booked successfully! We'll contact you soon."

// Booking is the component instance.
type Booking struct {
	site   site.Info
	client *backend.Client
}

var _ component.Component = (*Booking)(nil)

// New builds the component with its backend client.
func New(info site.Info, client *backend.Client) *Booking {
	return &Booking{site: info, client: client}
}

func (b *Booking) Name() string { return "booking" }
func (b *Booking) Base() string { return "/book-appointment" }

// Routes mounts the form page and its submission endpoint.
func (b *Booking) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", b.getForm)
	r.Post("/", b.postForm)
	return r
}

// getForm renders a blank appointment form.
func (b *Booking) getForm(w http.ResponseWriter, r *http.Request) {
	b.render(w, r, nil, nil, flow.Banner{})
}

// postForm drives one orchestrated submission.
func (b *Booking) postForm(w http.ResponseWriter, r *http.Request) {
	values, err := form.ParseSubmission(formID, r)
	if err != nil {
		if form.IsSubmissionError(err) {
			b.render(w, r, nil, nil, flow.Banner{
				Kind: "error", Title: "Submission Rejected", Message: err.Error(),
			})
			return
		}
		zap.S().Errorw("booking parse failed", "err", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	flagSuspicious(values)

	f := flow.New(flow.Config{
		Name:           "appointment",
		Validate:       validateValues,
		Sanitize:       sanitizeValues,
		Submit:         b.submit,
		DefaultSuccess: defaultSuccess,
		Clinic:         b.site.Contact,
	})
	defer f.Stop()
	for name, v := range values {
		f.SetField(name, v)
	}

	out := f.Submit(r.Context())
	if out.State == flow.StateSucceeded {
		b.render(w, r, nil, nil, out.Banner)
		return
	}
	b.render(w, r, values, out.Errors, out.Banner)
}

// render draws the page with the current values, errors, and banner.
func (b *Booking) render(w http.ResponseWriter, r *http.Request, values, errs map[string]string, banner flow.Banner) {
	ctx := core.NewContext(b.site, w, r)
	ctx.Head.SetTitle("Book Appointment | " + b.site.Name)
	ctx.Head.Meta(`<meta charset="utf-8">`)
	ctx.Head.Meta(`<meta name="viewport" content="width=device-width, initial-scale=1">`)

	data := map[string]any{
		"Ctx":     ctx,
		"Site":    ctx.Site,
		"Head":    ctx.Head,
		"Consent": ctx.Consent,
		"Values":  values,
		"Errors":  errs,
		"Banner":  banner,
	}
	if err := view.Render(ctx, w, "booking", "book", data, view.CacheSkip); err != nil {
		zap.S().Errorw("booking render failed", "err", err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// validateValues runs the aggregate rules plus catalog membership checks.
// A non-empty but unknown select value gets the same message as an empty
// one; the browser never legitimately sends unknown options.
func validateValues(values map[string]string) (bool, map[string]string) {
	ok, errs := validate.Appointment(validate.AppointmentData{
		Service:  values["service"],
		Name:     values["name"],
		Email:    values["email"],
		Phone:    values["phone"],
		Age:      values["age"],
		Location: values["location"],
		Date:     values["date"],
		Time:     values["time"],
		Message:  values["message"],
	})

	if values["service"] != "" && !catalog.ValidService(values["service"]) {
		errs["service"] = "Please select a service"
	}
	if values["time"] != "" && !catalog.ValidTimeSlot(values["time"]) {
		errs["time"] = "Please select a time slot"
	}

	return ok && len(errs) == 0, errs
}

// sanitizeValues cleans every value after validation, before submission.
func sanitizeValues(values map[string]string) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		out[k] = validate.SanitizeString(v)
	}
	return out
}

// submit forwards the sanitized values to the backend.  Age has already
// passed validation, so the conversion cannot fail here.
func (b *Booking) submit(ctx context.Context, values map[string]string) (string, error) {
	age, _ := strconv.Atoi(values["age"])
	resp, err := b.client.CreateAppointment(ctx, backend.AppointmentPayload{
		Service:  values["service"],
		Name:     values["name"],
		Email:    values["email"],
		Phone:    validate.NormalizePhone(values["phone"]),
		Age:      age,
		Location: values["location"],
		Date:     values["date"],
		Time:     values["time"],
		Message:  values["message"],
	})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// flagSuspicious counts inputs that trip the malicious-pattern battery.
// Submission still proceeds; validation rejects anything dangerous, and the
// counter gives operators an early signal of probing.
func flagSuspicious(values map[string]string) {
	for name, v := range values {
		if validate.DetectMaliciousInput(v) {
			metrics.SuspiciousInputTotal.Inc()
			zap.S().Warnw("suspicious form input", "form", "appointment", "field", name)
		}
	}
}
