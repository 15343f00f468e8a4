// modules/status/status.go
//
// Diagnostic module that echoes request enrichment data, the configured
// backend target, and process uptime.  Registered at the exact path
// /status; useful when checking a deploy or a proxy header chain.
package status

import (
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/truereliefphysio/physioweb/internal/core"
	"github.com/truereliefphysio/physioweb/internal/module"
)

var started = time.Now()

func init() {
	// Register at exact path /status
	module.Register("/status", handler)
}

// handler writes a JSON blob with selected context fields.
func handler(ctx *core.Context, w http.ResponseWriter, r *http.Request) {
	out := map[string]any{
		"site":    ctx.Site.Name,
		"uptime":  time.Since(started).Round(time.Second).String(),
		"path":    r.URL.Path,
		"query":   r.URL.RawQuery,
		"ip":      clientIP(r),
		"ua":      r.UserAgent(),
		"consent": ctx.Consent.Chosen,
	}
	if ctx.Info != nil {
		out["ua_parsed"] = ctx.Info.UA
		out["geo"] = ctx.Info.Geo
	}

	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(out)
}

// clientIP grabs the remote address without port.
func clientIP(r *http.Request) string {
	h, _, _ := net.SplitHostPort(r.RemoteAddr)
	return h
}
