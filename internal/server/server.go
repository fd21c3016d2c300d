// Package server exposes the predicates over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"vetter/internal/browser"
)

const defaultIndexHTML = `<!DOCTYPE html>
<html><body>
<h1>vetter</h1>
<form action="/check" method="get">
<h3>Check a value</h3>
Kind: <input name="kind" value="email"><br>
Value: <input name="value" size="60"><br>
<button type="submit">Check</button>
</form>
<form action="/device" method="get">
<h3>Classify a user agent</h3>
UA: <input name="ua" size="80"><br>
<button type="submit">Classify</button>
</form>
</body></html>`

const defaultMaxBodyBytes = 1 << 20

// Prober measures an element on a live page.
type Prober interface {
	Probe(ctx context.Context, req browser.ProbeRequest) (*browser.Snapshot, error)
}

// Config describes server wiring and runtime behaviour.
type Config struct {
	IndexHTML    string
	MaxBodyBytes int64
	// Prober serves GET /scroll. Nil disables live probes.
	Prober       Prober
	ProbeTimeout time.Duration
	Logger       *zap.Logger
}

// DefaultConfig returns a configuration without live probes.
func DefaultConfig() Config {
	return Config{
		IndexHTML:    defaultIndexHTML,
		MaxBodyBytes: defaultMaxBodyBytes,
		Logger:       zap.NewNop(),
	}
}

// Server exposes the HTTP handlers.
type Server struct {
	cfg     Config
	mux     *http.ServeMux
	handler http.Handler
	logger  *zap.Logger
}

// New wires a new server with the provided configuration.
func New(cfg Config) *Server {
	if cfg.IndexHTML == "" {
		cfg.IndexHTML = defaultIndexHTML
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	s := &Server{
		cfg:    cfg,
		mux:    http.NewServeMux(),
		logger: cfg.Logger,
	}
	s.registerRoutes()
	s.handler = withLogging(s.logger, s.mux)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/", s.handleRoot)
	s.mux.HandleFunc("/check", s.handleCheck)
	s.mux.HandleFunc("/kinds", s.handleKinds)
	s.mux.HandleFunc("/device", s.handleDevice)
	s.mux.HandleFunc("/scroll", s.handleScroll)
	s.mux.HandleFunc("/image", s.handleImage)
	s.mux.HandleFunc("/ping", s.handlePing)
}
