package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/greenthumb/greenthumb/internal/services/relay"
)

func main() {
	cfg := loadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rl := relay.NewRelay(relay.Config{
		UpstreamBaseURL: cfg.UpstreamURL,
		HTTPTimeout:     time.Duration(cfg.TimeoutMs) * time.Millisecond,
		BreakerFailures: cfg.BreakerFailures,
		BreakerOpenFor:  time.Duration(cfg.BreakerOpenMs) * time.Millisecond,
	})

	mux := http.NewServeMux()
	rl.Routes(mux)
	mux.Handle("GET /metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Printf("relay: listening on %s -> %s", srv.Addr, cfg.UpstreamURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("relay: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("relay: shutting down")
	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shCtx)
}
