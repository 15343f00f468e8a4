// internal/routing/alias.go
//
// Alias-resolution table and middleware.
//
// Context
// -------
// The site exposes friendly paths ("/book", "/appointments") that must be
// rewritten to the canonical component paths ("/book-appointment") before
// the router sees them.  The pairs come from the `aliases` map in
// conf/global.yaml, so marketing can add short links without a deploy
// beyond a config reload.
//
// Workflow
// --------
//   1. cmd/web constructs an AliasTable from config via NewAliasTable().
//   2. routing.Middleware(table) is wired early in the chain.
//   3. Middleware rewrites r.URL.Path on table hit; otherwise falls through.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
// • Max line length 100 columns.

package routing

import (
	"net/http"
	"sync"

	"go.uber.org/zap"
)

// -----------------------------------------------------------------------------
// AliasTable
// -----------------------------------------------------------------------------

// AliasTable stores alias→target pairs.  Zero value is unusable; construct
// with NewAliasTable.  Replace supports config hot-reload.
type AliasTable struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewAliasTable returns a table seeded from the config alias map.  A nil or
// empty map is fine; the middleware then never rewrites.
func NewAliasTable(aliases map[string]string) *AliasTable {
	t := &AliasTable{data: map[string]string{}}
	t.Replace(aliases)
	return t
}

// Replace swaps the whole table, used after a config reload.
func (t *AliasTable) Replace(aliases map[string]string) {
	fresh := make(map[string]string, len(aliases))
	for alias, target := range aliases {
		fresh[alias] = target
	}

	t.mu.Lock()
	t.data = fresh
	t.mu.Unlock()

	zap.L().Debug("alias table load", zap.Int("count", len(fresh)))
}

// Lookup returns the canonical target for an alias path.
func (t *AliasTable) Lookup(path string) (string, bool) {
	t.mu.RLock()
	target, ok := t.data[path]
	t.mu.RUnlock()
	return target, ok
}

// -----------------------------------------------------------------------------
// Middleware factory
// -----------------------------------------------------------------------------

// Middleware returns a Chi middleware that rewrites alias paths.  A miss
// falls through unchanged so canonical paths keep working.
func Middleware(t *AliasTable) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if target, ok := t.Lookup(r.URL.Path); ok {
				original := r.URL.Path
				r.URL.Path = target
				r.RequestURI = target
				zap.L().Debug("alias rewrite",
					zap.String("from", original),
					zap.String("to", target))
			}
			next.ServeHTTP(w, r)
		})
	}
}
