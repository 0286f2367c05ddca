// Package broker wraps the MQTT client used to move sensor readings between
// edge pollers and the garden service.
package broker

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/cenkalti/backoff/v4"
	mqtt "github.com/eclipse/paho.mqtt.golang"
)

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	ClientID string

	// MaxRetries bounds the connection attempts (default 5).
	MaxRetries int
	// MaxElapsed bounds the total time spent retrying (default 10s).
	MaxElapsed time.Duration
}

func (c Config) Enabled() bool { return c.Host != "" }

func (c Config) brokerURL() string {
	port := c.Port
	if port == 0 {
		port = 1883
	}
	return fmt.Sprintf("tcp://%s:%d", c.Host, port)
}

// Connect opens an MQTT connection, retrying with exponential backoff. The
// connection is closed when ctx is done.
func Connect(ctx context.Context, cfg Config) (mqtt.Client, error) {
	addr := cfg.brokerURL()

	opts := mqtt.NewClientOptions()
	opts.AddBroker(addr)
	opts.SetUsername(cfg.User)
	opts.SetPassword(cfg.Password)
	opts.SetClientID(cfg.ClientID)
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = cfg.MaxElapsed
	if bo.MaxElapsedTime <= 0 {
		bo.MaxElapsedTime = 10 * time.Second
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 5
	}

	var client mqtt.Client
	err := backoff.Retry(func() error {
		client = mqtt.NewClient(opts)
		if token := client.Connect(); token.Wait() && token.Error() != nil {
			log.Printf("broker: connect to %s failed: %v", addr, token.Error())
			return token.Error()
		}
		return nil
	}, backoff.WithContext(backoff.WithMaxRetries(bo, uint64(maxRetries-1)), ctx))
	if err != nil {
		return nil, fmt.Errorf("mqtt connect %s after retries: %w", addr, err)
	}
	log.Printf("broker: connected to %s as %s", addr, cfg.ClientID)

	go func() {
		<-ctx.Done()
		Close(client)
	}()
	return client, nil
}

// Close disconnects the client if it is still connected.
func Close(client mqtt.Client) {
	if client != nil && client.IsConnected() {
		client.Disconnect(250)
		log.Println("broker: connection closed")
	}
}
