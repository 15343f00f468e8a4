// components/pages/pages.go
//
// True Relief Physio – informational pages component.
//
// Context
//   Serves the static marketing pages (home, about, services, treatments)
//   and the cookie-consent endpoint.  Pages render from the component's
//   templates with the service and treatment catalogs and the clinic
//   identity injected; no page here talks to the backend.
//
// Workflow
//   •  GET  /            → home
//   •  GET  /about       → about
//   •  GET  /services    → services catalog with anchor links
//   •  GET  /treatments  → treatment catalog
//   •  POST /consent     → store the visitor's cookie choice and bounce back
//
//------------------------------------------------------------------------------

package pages

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/truereliefphysio/physioweb/internal/catalog"
	"github.com/truereliefphysio/physioweb/internal/component"
	"github.com/truereliefphysio/physioweb/internal/consent"
	"github.com/truereliefphysio/physioweb/internal/core"
	"github.com/truereliefphysio/physioweb/internal/routing"
	"github.com/truereliefphysio/physioweb/internal/site"
	"github.com/truereliefphysio/physioweb/internal/view"
)

// Pages is the component instance.  Construct with New and register via
// component.Register.
type Pages struct {
	site   site.Info
	secure bool // mark consent cookie Secure
}

var _ component.Component = (*Pages)(nil)

// New builds the component with the clinic identity.
func New(info site.Info, secure bool) *Pages {
	return &Pages{site: info, secure: secure}
}

func (p *Pages) Name() string { return "pages" }
func (p *Pages) Base() string { return "/" }

// Routes mounts the informational pages and the consent endpoint.
func (p *Pages) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", p.page("home", ""))
	r.Get("/about", p.page("about", "About Us"))
	r.Get("/services", p.page("services", "Our Services"))
	r.Get("/treatments", p.page("treatments", "Treatments"))
	r.Post("/consent", p.postConsent)
	return r
}

// page returns a handler rendering one named template.
func (p *Pages) page(name, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := core.NewContext(p.site, w, r)
		if title == "" {
			ctx.Head.SetTitle(p.site.Name + " – " + p.site.Tagline)
		} else {
			ctx.Head.SetTitle(title + " | " + p.site.Name)
		}
		ctx.Head.Meta(`<meta charset="utf-8">`)
		ctx.Head.Meta(`<meta name="viewport" content="width=device-width, initial-scale=1">`)

		data := map[string]any{
			"Ctx":      ctx,
			"Site":     ctx.Site,
			"Head":     ctx.Head,
			"Consent":  ctx.Consent,
			"Services": serviceSections(),
			"Concerns": catalog.ConcernTypes(),
		}
		if err := view.Render(ctx, w, "pages", name, data, view.CacheDefault); err != nil {
			zap.S().Errorw("page render failed", "page", name, "err", err)
			http.Error(w, "template error", http.StatusInternalServerError)
		}
	}
}

// postConsent stores the visitor's cookie choice.  The banner posts either
// choice=all or choice=necessary; the settings form posts individual
// category checkboxes.
func (p *Pages) postConsent(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	var prefs consent.Preferences
	switch r.PostForm.Get("choice") {
	case "all":
		prefs = consent.AcceptAll()
	case "necessary":
		prefs = consent.NecessaryOnly()
	default:
		prefs = consent.Preferences{
			Necessary: true,
			Analytics: r.PostForm.Get("analytics") == "on",
			Marketing: r.PostForm.Get("marketing") == "on",
			Chosen:    true,
		}
	}
	consent.Write(w, prefs, p.secure)

	back := r.Referer()
	if back == "" {
		back = "/"
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

// section pairs a catalog entry with its URL-safe anchor for the services
// and treatments pages.
type section struct {
	Value  string
	Label  string
	Anchor string
}

func serviceSections() []section {
	opts := catalog.Services()
	out := make([]section, len(opts))
	for i, o := range opts {
		out[i] = section{Value: o.Value, Label: o.Label, Anchor: routing.MakeSlug(o.Label)}
	}
	return out
}
