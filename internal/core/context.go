// internal/core/context.go
//
// Central per-request context.
//
// Context
// -------
// Every handler builds a *core.Context and passes it down to components
// and widgets.  It bundles:
//
//   - Site    — static clinic identity (name, phones, service area).
//   - Request — the original *http.Request.
//   - Writer  — convenience http.ResponseWriter.
//   - Params  — route params such as “id”.
//   - Info    — parsed UA, geo, URL, and timestamp.
//   - Head    — per-page <head> builder (title, meta tags).
//   - Consent — the visitor's stored cookie preferences.
//
// Notes
// -----
// • Components must treat Site as read-only.
// • Oxford commas, two spaces after periods.
package core

import (
	"net/http"

	"github.com/truereliefphysio/physioweb/internal/consent"
	"github.com/truereliefphysio/physioweb/internal/head"
	"github.com/truereliefphysio/physioweb/internal/requestinfo"
	"github.com/truereliefphysio/physioweb/internal/site"
)

// Context is passed to components, widgets, and templates.
type Context struct {
	Site    site.Info                // Clinic identity
	Request *http.Request            // Original request
	Writer  http.ResponseWriter      // Convenience writer
	Params  map[string]string        // Route params (“id”, etc.)
	Info    *requestinfo.RequestInfo // UA, Geo, URL, timestamp
	Head    *head.Builder            // Page <head> collector
	Consent consent.Preferences      // Cookie-consent choice
}

// NewContext assembles a Context for one request.  Info is nil when the
// enrichment middleware has not run (tests).
func NewContext(siteInfo site.Info, w http.ResponseWriter, r *http.Request) *Context {
	return &Context{
		Site:    siteInfo,
		Request: r,
		Writer:  w,
		Params:  map[string]string{},
		Info:    requestinfo.FromContext(r.Context()),
		Head:    head.New(),
		Consent: consent.FromRequest(r),
	}
}
