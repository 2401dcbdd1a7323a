// Package httpserver builds the process HTTP server. Overview requests
// fan out across workspaces and can run long, so the write timeout sits
// above the router's 30s request timeout: slow queries are cut by the
// middleware with a proper error body, not by a dropped connection.
package httpserver

import (
	"net/http"
	"time"
)

const (
	defaultReadHeaderTimeout = 5 * time.Second
	defaultWriteTimeout      = 35 * time.Second
	defaultIdleTimeout       = time.Minute
)

// Option overrides a server default.
type Option func(*http.Server)

// WithWriteTimeout bounds the time from the end of the request headers to
// the end of the response write. Keep it above the router request timeout.
func WithWriteTimeout(d time.Duration) Option {
	return func(srv *http.Server) { srv.WriteTimeout = d }
}

// WithIdleTimeout bounds how long keep-alive connections may sit idle.
func WithIdleTimeout(d time.Duration) Option {
	return func(srv *http.Server) { srv.IdleTimeout = d }
}

// New builds an HTTP server with defaults sized for aggregation queries.
func New(addr string, handler http.Handler, opts ...Option) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		WriteTimeout:      defaultWriteTimeout,
		IdleTimeout:       defaultIdleTimeout,
	}
	for _, opt := range opts {
		opt(srv)
	}
	return srv
}
