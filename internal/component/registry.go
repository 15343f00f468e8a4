// internal/component/registry.go
//
// Component registry (cycle-free).
//
// Each concrete component lives under components/<name>.  cmd/web constructs
// the components with their dependencies (clinic identity, backend client,
// session secrets) and hands them to component.Register; init()-time
// registration would leave no place to inject those.  The server then mounts
// every component's Routes() at its Base() path and, before serving, invokes
// Init() when the component implements the Initializer interface.

package component

import (
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/truereliefphysio/physioweb/internal/site"
)

// Initializer is optional.  If a Component implements it, the server calls
// Init(info) once at startup, after configuration is loaded.
type Initializer interface {
	Init(site.Info) error
}

// Component contract.
//
// Base() is the mount prefix (“/”, “/book-appointment”, “/admin”); two
// components must not claim the same prefix.  Routes() should mount BOTH
// page and API endpoints, e.g.:
//
//	r := chi.NewRouter()
//	r.Get("/", getPage)
//	r.Post("/", postPage)
//	return r
type Component interface {
	Name() string
	Base() string
	Routes() chi.Router
}

var (
	mu       sync.RWMutex
	registry = map[string]Component{}
)

// Register stores a constructed component.  cmd/web calls this once per
// component during startup, before the router is built.
func Register(c Component) {
	mu.Lock()
	registry[c.Name()] = c
	mu.Unlock()
}

// All returns every registered component in arbitrary order.
func All() []Component {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Component, 0, len(registry))
	for _, c := range registry {
		out = append(out, c)
	}
	return out
}
