package broker

import (
	"encoding/json"
	"fmt"
	"strings"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// IPublisher publishes messages to a topic.
type IPublisher interface {
	PublishJSON(topic string, v any) error
	Close()
}

// Publisher sends messages on a shared MQTT client.
type Publisher struct {
	client mqtt.Client
	qos    byte
}

func NewPublisher(client mqtt.Client, qos byte) *Publisher {
	return &Publisher{client: client, qos: qos}
}

// Publish sends raw bytes to topic and waits for the broker ack.
func (p *Publisher) Publish(topic string, payload []byte) error {
	token := p.client.Publish(topic, p.qos, false, payload)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}

func (p *Publisher) PublishJSON(topic string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal message for %s: %w", topic, err)
	}
	return p.Publish(topic, b)
}

func (p *Publisher) Close() { Close(p.client) }

// FormatTopic fills a template such as "sensor/reading/{device}".
func FormatTopic(tmpl, deviceID string) string {
	if strings.TrimSpace(tmpl) == "" {
		tmpl = "sensor/reading/{device}"
	}
	return strings.ReplaceAll(tmpl, "{device}", deviceID)
}
