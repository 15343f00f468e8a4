// internal/view/render.go
//
// Central view engine: template lookup, func-map injection, an LRU of
// parsed *template.Template sets, and singleflight deduplication so a cold
// cache never parses the same set twice under concurrent load.
//
// Public helpers
// --------------
//   - Render         – write rendered HTML to an http.ResponseWriter.
//   - RenderToString – return template.HTML (widgets, partials).
//
// Lookup
// ------
// Component templates live at components/<comp>/templates/<tpl>.html.  All
// *.html in that directory are parsed as one set together with every shared
// partial under templates/shared/, so sub-templates ({{ template "layout"
// . }}) work out-of-the-box.
//
// execName() chooses the best template to execute:
//   - If the set contains "<name>.html", we run that (file has no define).
//   - Else we fall back to "<name>" (root template defined via {{ define }}).
//
// Style
// -----
// • Oxford commas, two spaces after periods.

package view

import (
	"bytes"
	"html/template"
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/sync/singleflight"

	"github.com/truereliefphysio/physioweb/internal/cache"
	"github.com/truereliefphysio/physioweb/internal/core"
	"github.com/truereliefphysio/physioweb/internal/widget"
)

//
// cache definitions
//

// CachePolicy hints how the caller wants this template cached.
type CachePolicy int

const (
	CacheDefault CachePolicy = iota // cache parsed sets
	CacheSkip                       // never cache
)

// Parsed template sets; tweak capacity when perf-testing.
var (
	tmplLRU = cache.New(256)
	parseSF singleflight.Group
	root    = "." // template root; tests point it at a fixture dir
)

// SetRoot changes the directory template paths are resolved against.  Call
// once at startup, before the first render.
func SetRoot(dir string) { root = dir }

//
// public helpers
//

// Render executes the template set and streams it to w.
//
// We first load (or parse) the appropriate template set, then execute the
// concrete template determined by execName().  This allows both:
//
//   - A simple file "home.html" with no {{ define }} block.  In that case
//     execName runs "home.html" automatically.
//   - A file that wraps markup in {{ define "home" }} … {{ end }} and relies
//     on that root template name.
//
// Either style works; developers can choose per component.
func Render(ctx *core.Context, w http.ResponseWriter, comp, name string, data any, policy CachePolicy) error {
	t, err := load(ctx, comp, name, policy)
	if err != nil {
		return err
	}
	return t.ExecuteTemplate(w, execName(t, name), data)
}

// RenderToString executes and returns HTML (used by widgets and partials).
// It mirrors Render, but writes to a buffer instead of w.
func RenderToString(ctx *core.Context, comp, name string, data any) (template.HTML, CachePolicy, error) {
	t, err := load(ctx, comp, name, CacheDefault)
	if err != nil {
		return "", CacheSkip, err
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, execName(t, name), data); err != nil {
		return "", CacheSkip, err
	}
	return template.HTML(buf.String()), CacheDefault, nil
}

//
// internal: load
//

// load finds and (if necessary) parses the template set for the given
// component and base name, obeying the provided cache policy.  Concurrent
// cold-cache loads for the same key collapse into a single parse.
func load(ctx *core.Context, comp, name string, policy CachePolicy) (*template.Template, error) {
	key := comp + "::" + name

	if policy != CacheSkip {
		if v, ok := tmplLRU.Get(key); ok {
			return v.(*template.Template), nil
		}
	}

	v, err, _ := parseSF.Do(key, func() (any, error) {
		base := filepath.Join(root, "components", comp, "templates", name+".html")
		if _, err := os.Stat(base); err != nil {
			return nil, os.ErrNotExist
		}

		// Parse all *.html in the same directory so sub-templates work.
		pattern := filepath.Join(filepath.Dir(base), "*.html")
		t, err := template.New(name).Funcs(buildFuncMap(ctx)).ParseGlob(pattern)
		if err != nil {
			return nil, err
		}

		// Shared partials (layout, banner, consent) join every set.
		shared := filepath.Join(root, "templates", "shared", "*.html")
		if matches, _ := filepath.Glob(shared); len(matches) > 0 {
			if t, err = t.ParseGlob(shared); err != nil {
				return nil, err
			}
		}

		if policy != CacheSkip {
			tmplLRU.Add(key, t)
		}
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*template.Template), nil
}

//
// func-map builders
//

func buildFuncMap(rctx *core.Context) template.FuncMap {
	return template.FuncMap{
		"dict":   dict,
		"widget": widgetFunc(rctx),
		"device": deviceFunc(rctx),
	}
}

//
// helpers
//

// execName picks the template name to execute.
//
// Priority:
//  1. If the set has "<name>.html" (file-based template), run that.
//  2. Otherwise, fall back to "<name>" (root template defined in code).
func execName(t *template.Template, name string) string {
	if tmpl := t.Lookup(name + ".html"); tmpl != nil {
		return name + ".html"
	}
	return name
}

// dict builds a map in templates: {{ dict "k" 1 "k2" "v" }}.
func dict(kv ...any) map[string]any {
	m := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, _ := kv[i].(string)
		m[key] = kv[i+1]
	}
	return m
}

// widgetFunc renders a registered widget and returns safe HTML.  Errors are
// hidden behind <!-- comments --> so end-users never see stack traces.
func widgetFunc(rctx *core.Context) func(string, map[string]any) template.HTML {
	return func(key string, params map[string]any) template.HTML {
		w := widget.Lookup(key)
		if w == nil {
			return template.HTML("<!-- widget not found -->")
		}
		html, _, err := w.Render(rctx, params)
		if err != nil {
			return template.HTML("<!-- widget error -->")
		}
		return template.HTML(html)
	}
}

// deviceFunc exposes the enriched device class ("Desktop", "Mobile", ...)
// to templates; empty when enrichment has not run.
func deviceFunc(rctx *core.Context) func() string {
	return func() string {
		if rctx == nil || rctx.Info == nil {
			return ""
		}
		return rctx.Info.UA.Device
	}
}
