package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/greenthumb/greenthumb/internal/services/garden"
	"github.com/greenthumb/greenthumb/internal/services/poller"
	"github.com/greenthumb/greenthumb/pkg/broker"
	"github.com/greenthumb/greenthumb/pkg/dedup"
)

func main() {
	cfg := loadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ---- stato ----
	initial := garden.NewState(nil, nil)
	if cfg.SeedSample {
		initial = garden.SampleState()
	}
	store := garden.NewStore(initial, garden.ContextConfirmer)
	board := garden.NewBoard()

	// ---- sorgente letture ----
	var src poller.Source
	if cfg.UseMock {
		src = poller.NewMockSource(poller.DefaultMockDelay)
	} else {
		src = poller.NewClient(poller.Config{
			BaseURL:  cfg.BaseURL,
			UseRelay: cfg.UseRelay,
			RelayURL: cfg.RelayURL,
			Timeout:  time.Duration(cfg.TimeoutMs) * time.Millisecond,
		}, nil)
	}
	p := poller.New(src, time.Duration(cfg.TimeoutMs)*time.Millisecond+5*time.Second)
	monitor := garden.NewMonitor(p, board, time.Duration(cfg.PollIntervalMs)*time.Millisecond)

	// ---- MQTT (opzionale) ----
	var client mqtt.Client
	if cfg.MQTTHost != "" {
		clientID := cfg.MQTTClientID
		if clientID == "" {
			clientID = "garden-" + uuid.NewString()
		}
		c, err := broker.Connect(ctx, broker.Config{
			Host:     cfg.MQTTHost,
			Port:     cfg.MQTTPort,
			User:     cfg.MQTTUser,
			Password: cfg.MQTTPassword,
			ClientID: clientID,
		})
		if err != nil {
			log.Fatalf("garden: %v", err)
		}
		client = c

		ingest := garden.NewIngestor(store, board, dedup.New(10*time.Minute, 10000))
		filter := strings.Replace(cfg.ReadingTopic, "{device}", "#", 1)
		consumer := broker.NewConsumer(client, filter, 1, ingest.Handle)
		go consumer.ConsumeMessage(ctx)

		if cfg.PublishPolls {
			monitor.PublishTo(broker.NewPublisher(client, 1), cfg.ReadingTopic)
		}
	}

	store.OnGardensChanged(monitor.Sync)
	monitor.Sync(store.Gardens())

	// ---- HTTP ----
	api := garden.NewAPI(store, board)
	api.Health = garden.NewHealthHandler(client, monitor, src.Name())
	api.Ready = garden.NewReadyHandler(store, client)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.Routes(cfg.CORSOrigins),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Printf("garden: listening on %s (source=%s, mqtt=%v)", srv.Addr, src.Name(), client != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("garden: http: %v", err)
		}
	}()

	// ---- gRPC health ----
	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		log.Fatalf("garden: listen grpc %s: %v", cfg.GRPCPort, err)
	}
	grpcServer := grpc.NewServer()
	hs := health.NewServer()
	hs.SetServingStatus("greenthumb.garden", healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, hs)
	go func() {
		log.Printf("garden: gRPC health on :%s", cfg.GRPCPort)
		if err := grpcServer.Serve(lis); err != nil {
			log.Printf("garden: grpc serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("garden: shutting down")
	hs.Shutdown()

	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shCtx)
	grpcServer.GracefulStop()
	monitor.Close()
}
