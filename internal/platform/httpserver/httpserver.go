// Package httpserver centralizes server construction so every binary
// listens with the same timeouts.
package httpserver

import (
	"net/http"
	"time"
)

// New builds the clinic API server. ReadHeaderTimeout guards against
// slow-header clients; per-request deadlines belong to handler contexts.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
