// internal/middleware/security.go
//
// True Relief Physio – security-header middleware.
//
// Context
//   Every response, page or form POST alike, carries the standard hardening
//   headers: HSTS (2 years + preload), a self-only Content-Security-Policy
//   that also admits data: images for the inline logo, X-Frame-Options,
//   X-Content-Type-Options, Referrer-Policy, and a Permissions-Policy that
//   switches off geolocation, microphone, and camera.  The site runs behind
//   a TLS-terminating proxy in production; HSTS is still useful because
//   browsers see the public domain as HTTPS.
//
// Workflow
//   Headers are added after next.ServeHTTP so handlers may set their own
//   values first; the middleware never overwrites an existing header.
//
//------------------------------------------------------------------------------

package middleware

import "net/http"

// Security sets security headers for every response.
func Security(next http.Handler) http.Handler {
	const (
		hsts = "max-age=63072000; includeSubDomains; preload"
		csp  = "default-src 'self'; img-src 'self' data:; object-src 'none'; " +
			"base-uri 'self'; frame-ancestors 'none'"
		xfo   = "DENY"
		nosn  = "nosniff"
		refer = "strict-origin-when-cross-origin"
		perm  = "geolocation=(), microphone=(), camera=()"
	)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)

		add := w.Header().Add // shorthand

		if w.Header().Get("Strict-Transport-Security") == "" {
			add("Strict-Transport-Security", hsts)
		}
		if w.Header().Get("Content-Security-Policy") == "" {
			add("Content-Security-Policy", csp)
		}
		if w.Header().Get("X-Frame-Options") == "" {
			add("X-Frame-Options", xfo)
		}
		if w.Header().Get("X-Content-Type-Options") == "" {
			add("X-Content-Type-Options", nosn)
		}
		if w.Header().Get("Referrer-Policy") == "" {
			add("Referrer-Policy", refer)
		}
		if w.Header().Get("Permissions-Policy") == "" {
			add("Permissions-Policy", perm)
		}
	})
}
