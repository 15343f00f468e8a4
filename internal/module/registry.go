// internal/module/registry.go
//
// A super-light registry: modules call Register(path, handler) in an init()
// function.  The core router looks up the exact URL path (no wildcards) and,
// if found, executes the handler.
//
// Handler signature:
//
//	func(ctx *core.Context, w http.ResponseWriter, r *http.Request)
//
// This gives handlers access to the per-request Context (site identity,
// RequestInfo, Head builder, etc.).
package module

import (
	"net/http"
	"sync"

	"github.com/truereliefphysio/physioweb/internal/core"
)

// Handler is what modules register.
type Handler func(*core.Context, http.ResponseWriter, *http.Request)

var (
	mu       sync.RWMutex
	registry = map[string]Handler{}
)

// Register is called from module init() functions.
func Register(path string, h Handler) {
	mu.Lock()
	registry[path] = h
	mu.Unlock()
}

// Lookup returns the handler for an exact path or nil.
func Lookup(path string) Handler {
	mu.RLock()
	defer mu.RUnlock()
	return registry[path]
}

// Paths returns every registered exact path, for router wiring.
func Paths() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(registry))
	for p := range registry {
		out = append(out, p)
	}
	return out
}
