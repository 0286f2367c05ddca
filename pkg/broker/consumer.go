package broker

import (
	"context"
	"log"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Handler processes one message received on topic.
type Handler func(topic string, msg mqtt.Message) error

// Consumer is subscribed to a single topic filter.
type Consumer struct {
	client  mqtt.Client
	topic   string
	qos     byte
	handler Handler
}

func NewConsumer(client mqtt.Client, topic string, qos byte, h Handler) *Consumer {
	return &Consumer{client: client, topic: topic, qos: qos, handler: h}
}

// ConsumeMessage subscribes and blocks until ctx is cancelled.
func (c *Consumer) ConsumeMessage(ctx context.Context) {
	token := c.client.Subscribe(c.topic, c.qos, func(_ mqtt.Client, m mqtt.Message) {
		if c.handler == nil {
			log.Printf("broker: no handler set for %s", c.topic)
			return
		}
		if err := c.handler(m.Topic(), m); err != nil {
			log.Printf("broker: handling message on %s: %v", m.Topic(), err)
		}
	})
	if token.Wait() && token.Error() != nil {
		log.Printf("broker: subscribe %s: %v", c.topic, token.Error())
		return
	}
	log.Printf("broker: subscribed to %s", c.topic)

	<-ctx.Done()

	c.client.Unsubscribe(c.topic).Wait()
}
