package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/greenthumb/greenthumb/internal/model/entities"
	"github.com/greenthumb/greenthumb/internal/model/messages"
	"github.com/greenthumb/greenthumb/internal/services/poller"
	"github.com/greenthumb/greenthumb/pkg/broker"
)

func main() {
	cfg := loadConfig()

	deviceID := flag.String("device-id", "", "Room Alert device id (required)")
	sensorName := flag.String("sensor-name", "", "display name for the sensor")
	gardenID := flag.Int("garden-id", 0, "garden the device belongs to")
	interval := flag.Duration("interval", time.Duration(cfg.PollIntervalMs)*time.Millisecond, "poll interval")
	useMock := flag.Bool("mock", cfg.UseMock, "simulate readings instead of calling the device")
	flag.Parse()

	if strings.TrimSpace(*deviceID) == "" {
		log.Fatal("poller: -device-id is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var src poller.Source
	if *useMock {
		src = poller.NewMockSource(poller.DefaultMockDelay)
	} else {
		src = poller.NewClient(poller.Config{
			BaseURL:  cfg.BaseURL,
			UseRelay: cfg.UseRelay,
			RelayURL: cfg.RelayURL,
			Timeout:  time.Duration(cfg.TimeoutMs) * time.Millisecond,
		}, nil)
	}

	clientID := cfg.MQTTClientID
	if clientID == "" {
		clientID = "poller-" + uuid.NewString()
	}
	client, err := broker.Connect(ctx, broker.Config{
		Host:     cfg.MQTTHost,
		Port:     cfg.MQTTPort,
		User:     cfg.MQTTUser,
		Password: cfg.MQTTPassword,
		ClientID: clientID,
	})
	if err != nil {
		log.Fatalf("poller: %v", err)
	}
	pub := broker.NewPublisher(client, 1)
	defer pub.Close()

	topic := broker.FormatTopic(cfg.ReadingTopic, *deviceID)
	source := src.Name()
	onReading := func(r *entities.SensorReading) {
		if r == nil {
			// errore già loggato dal poller, si continua
			return
		}
		ev := messages.NewReadingEvent(r, *gardenID, source)
		if err := pub.PublishJSON(topic, ev); err != nil {
			log.Printf("poller: %v", err)
			return
		}
		log.Printf("poller: %s T=%.1f H=%.1f -> %s", r.DeviceID, r.Temperature, r.Humidity, topic)
	}

	p := poller.New(src, time.Duration(cfg.TimeoutMs)*time.Millisecond+5*time.Second)
	session := p.StartSession(*deviceID, *sensorName, onReading, *interval)
	log.Printf("poller: polling %s every %s (source=%s)", *deviceID, *interval, source)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","state":"` + session.State().String() + `"}`))
	})
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("poller: metrics listener: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("poller: shutting down")
	session.Stop()
	session.Wait()

	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shCtx)
}
