package httpserver

import (
	"net/http"
	"time"
)

// The write deadline must cover a full site report across both map services.
const (
	defaultReadHeaderTimeout = 5 * time.Second
	defaultWriteTimeout      = 2 * time.Minute
	defaultIdleTimeout       = 60 * time.Second
)

type Option func(*http.Server)

// WithWriteTimeout overrides the response deadline. Zero disables it.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *http.Server) { s.WriteTimeout = d }
}

// New builds an HTTP server with the service defaults.
func New(addr string, handler http.Handler, opts ...Option) *http.Server {
	s := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		WriteTimeout:      defaultWriteTimeout,
		IdleTimeout:       defaultIdleTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
