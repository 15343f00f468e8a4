// internal/server/timeouts.go
//
// True Relief Physio – hardened HTTP server constructor.
//
// Context
//   The site is a public lead-capture surface, so the listener carries the
//   standard hardening timeouts: ReadTimeout aborts slow-loris headers,
//   WriteTimeout caps total response time comfortably above the backend
//   client's own limit, and IdleTimeout closes keep-alives on idle clients.
//   cmd/web constructs the server here so the defaults live in one place.
//
//------------------------------------------------------------------------------

package server

import (
	"net/http"
	"time"
)

// New constructs an *http.Server with hardened timeouts.  Callers may still
// set TLSConfig before ListenAndServe when terminating TLS locally.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
