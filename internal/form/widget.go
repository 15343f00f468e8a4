// internal/form/widget.go
//
// True Relief Physio – forms subsystem: widget integration.
//
// Context
//   Page templates embed form markup through the widget system.  The
//   concrete widget.Widget interface expects:
//
//       Render(rctx any, params map[string]any) (string, int, error)
//
//   This adapter wraps RenderForm and always returns view.CacheSkip so
//   pages never cache CSRF tokens.
//
//------------------------------------------------------------------------------

package form

import (
	"github.com/truereliefphysio/physioweb/internal/view"
	"github.com/truereliefphysio/physioweb/internal/widget"
)

// Ensure compile-time compliance with widget.Widget.
var _ widget.Widget = (*formWidget)(nil)

type formWidget struct{ id string }

// ID implements widget.Widget.
func (w *formWidget) ID() string { return w.id }

// Render converts the FormDef into HTML.  params may include:
//
//   - "values" map[string]string – field values to re-populate inputs
//   - "errors" map[string]string – per-field validation messages
//
// It always returns view.CacheSkip so every render gets a fresh CSRF token.
func (w *formWidget) Render(_ any, params map[string]any) (string, int, error) {
	var vals, errs map[string]string
	if params != nil {
		if v, ok := params["values"].(map[string]string); ok {
			vals = v
		}
		if e, ok := params["errors"].(map[string]string); ok {
			errs = e
		}
	}

	htmlOut, err := RenderForm(w.id, RenderOptions{
		Values: vals,
		Errors: errs,
	})
	if err != nil {
		return "", int(view.CacheSkip), err
	}
	// template.HTML is an alias of string; cast to satisfy interface.
	return string(htmlOut), int(view.CacheSkip), nil
}

// injectWidgetRegistration is called by definition.go after each FormDef
// loads.
func injectWidgetRegistration(fd *FormDef) { widget.Register(&formWidget{id: fd.ID}) }
