// Package relay forwards same-origin /api/roomalert requests to the Room
// Alert public device endpoint.
package relay

import (
	"log"
	"net/http"
	"time"
)

const (
	DefaultUpstreamURL = "https://account.roomalert.com"
	Path               = "/api/roomalert"
)

type Config struct {
	UpstreamBaseURL string
	HTTPTimeout     time.Duration

	BreakerFailures int
	BreakerOpenFor  time.Duration

	Logger *log.Logger
}

type Relay struct {
	cfg      Config
	upstream *Upstream
}

func NewRelay(cfg Config) *Relay {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.UpstreamBaseURL == "" {
		cfg.UpstreamBaseURL = DefaultUpstreamURL
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 10 * time.Second
	}
	cb := newBreaker("roomalert", cfg.BreakerFailures, cfg.BreakerOpenFor, cfg.Logger)
	return &Relay{cfg: cfg, upstream: NewUpstream("roomalert", cfg.UpstreamBaseURL, cfg.HTTPTimeout, cb)}
}

// Routes mounts the relay and its health endpoint on mux.
func (rl *Relay) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET "+Path, rl.HandleRoomAlert)
	mux.HandleFunc("GET /healthz", rl.HandleHealth)
}
