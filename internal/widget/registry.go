// internal/widget/registry.go
//
// True Relief Physio – widget registry.
//
// Context
//   A Widget is a view fragment a page template can embed.  On this site the
//   widgets are the lead forms: internal/form wraps each loaded YAML form
//   definition in an adapter and registers it here under the definition's ID
//   ("booking/appointment", "contact/inquiry").  The booking and contact
//   page templates embed them with:
//
//       {{ widget "booking/appointment" (dict "values" .Values "errors" .Errors) }}
//
//   The view engine's template helper looks the key up, invokes Render, and
//   returns template.HTML.
//
//------------------------------------------------------------------------------

package widget

import (
	"sync"
)

// Widget is a view fragment embeddable inside any page template.  Render
// returns the generated HTML and a cache-policy hint mirroring the enum in
// internal/view; the form widgets always answer CacheSkip because their
// output carries a per-render CSRF token.
//
// Params are the key-value map passed from the template and may be nil.
// Errors are returned, not written to the ResponseWriter, so the calling
// helper decides how to surface a failure.  Render must be safe for
// concurrent use.
type Widget interface {
	ID() string
	Render(rctx any, params map[string]any) (html string, policy int, err error)
}

var (
	mu       sync.RWMutex
	registry = map[string]Widget{}
)

// Register stores a widget under its ID.  The forms loader calls this once
// per definition at startup; a duplicate key overwrites the earlier entry.
func Register(w Widget) {
	mu.Lock()
	registry[w.ID()] = w
	mu.Unlock()
}

// Lookup returns the widget or nil.
func Lookup(key string) Widget {
	mu.RLock()
	defer mu.RUnlock()
	return registry[key]
}

// All returns the registered widgets in no particular order.
func All() []Widget {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Widget, 0, len(registry))
	for _, w := range registry {
		out = append(out, w)
	}
	return out
}
