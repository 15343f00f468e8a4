// components/contact/contact.go
//
// True Relief Physio – contact inquiry component.
//
// Context
//   Mirror of the booking component for the contact form: GET renders the
//   form, POST runs the submission orchestrator and re-renders with
//   per-field errors, a success banner, or classified failure copy.
//
//------------------------------------------------------------------------------

package contact

import (
	"context"
	"net/http"

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

const formID = "contact/inquiry"

const defaultSuccess = "Message sent successfully! We'll get back to you soon."

// Contact is the component instance.
type Contact struct {
	site   site.Info
	client *backend.Client
}

var _ component.Component = (*Contact)(nil)

// New builds the component with its backend client.
func New(info site.Info, client *backend.Client) *Contact {
	return &Contact{site: info, client: client}
}

func (c *Contact) Name() string { return "contact" }
func (c *Contact) Base() string { return "/contact" }

// Routes mounts the form page and its submission endpoint.
func (c *Contact) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", c.getForm)
	r.Post("/", c.postForm)
	return r
}

func (c *Contact) getForm(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, nil, nil, flow.Banner{})
}

func (c *Contact) postForm(w http.ResponseWriter, r *http.Request) {
	values, err := form.ParseSubmission(formID, r)
	if err != nil {
		if form.IsSubmissionError(err) {
			c.render(w, r, nil, nil, flow.Banner{
				Kind: "error", Title: "Submission Rejected", Message: err.Error(),
			})
			return
		}
		zap.S().Errorw("contact parse failed", "err", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	flagSuspicious(values)

	f := flow.New(flow.Config{
		Name:           "contact",
		Validate:       validateValues,
		Sanitize:       sanitizeValues,
		Submit:         c.submit,
		DefaultSuccess: defaultSuccess,
		Clinic:         c.site.Contact,
	})
	defer f.Stop()
	for name, v := range values {
		f.SetField(name, v)
	}

	out := f.Submit(r.Context())
	if out.State == flow.StateSucceeded {
		c.render(w, r, nil, nil, out.Banner)
		return
	}
	c.render(w, r, values, out.Errors, out.Banner)
}

func (c *Contact) render(w http.ResponseWriter, r *http.Request, values, errs map[string]string, banner flow.Banner) {
	ctx := core.NewContext(c.site, w, r)
	ctx.Head.SetTitle("Contact Us | " + c.site.Name)
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
	if err := view.Render(ctx, w, "contact", "contact", data, view.CacheSkip); err != nil {
		zap.S().Errorw("contact render failed", "err", err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// validateValues runs the aggregate rules plus the concern-type membership
// check.
func validateValues(values map[string]string) (bool, map[string]string) {
	ok, errs := validate.Contact(validate.ContactData{
		Name:        values["name"],
		Email:       values["email"],
		Phone:       values["phone"],
		ConcernType: values["concern_type"],
		Subject:     values["subject"],
		Message:     values["message"],
	})

	if values["concern_type"] != "" && !catalog.ValidConcernType(values["concern_type"]) {
		errs["concern_type"] = "Please select a concern type"
	}

	return ok && len(errs) == 0, errs
}

func sanitizeValues(values map[string]string) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		out[k] = validate.SanitizeString(v)
	}
	return out
}

// submit forwards the sanitized values to the backend.
func (c *Contact) submit(ctx context.Context, values map[string]string) (string, error) {
	resp, err := c.client.CreateContact(ctx, backend.ContactPayload{
		Name:        values["name"],
		Email:       values["email"],
		Phone:       validate.NormalizePhone(values["phone"]),
		ConcernType: values["concern_type"],
		Subject:     values["subject"],
		Message:     values["message"],
	})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

func flagSuspicious(values map[string]string) {
	for name, v := range values {
		if validate.DetectMaliciousInput(v) {
			metrics.SuspiciousInputTotal.Inc()
			zap.S().Warnw("suspicious form input", "form", "contact", "field", name)
		}
	}
}
