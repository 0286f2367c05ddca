package garden

import (
	"encoding/json"
	"fmt"
	"strings"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/greenthumb/greenthumb/internal/model/messages"
	"github.com/greenthumb/greenthumb/pkg/dedup"
)

// Ingestor puts readings published by edge pollers on the Board.
type Ingestor struct {
	store *Store
	board *Board
	dd    *dedup.Deduper
}

func NewIngestor(store *Store, board *Board, dd *dedup.Deduper) *Ingestor {
	return &Ingestor{store: store, board: board, dd: dd}
}

// Handle is a broker.Handler.
func (in *Ingestor) Handle(topic string, msg mqtt.Message) error {
	return in.HandlePayload(topic, msg.Payload())
}

// HandlePayload decodes a ReadingEvent and hands it to every garden that has
// the device configured.
func (in *Ingestor) HandlePayload(topic string, payload []byte) error {
	// QoS1: lo stesso messaggio può arrivare più volte
	if !in.dd.ShouldProcessPayload(payload) {
		return nil
	}
	var ev messages.ReadingEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return fmt.Errorf("decode reading on %s: %w", topic, err)
	}
	if ev.DeviceID == "" {
		// sensor/reading/{device}
		if i := strings.LastIndex(topic, "/"); i >= 0 {
			ev.DeviceID = topic[i+1:]
		}
	}
	if ev.DeviceID == "" || ev.Timestamp.IsZero() {
		return fmt.Errorf("reading on %s: missing device or timestamp: %w", topic, ErrInvalidInput)
	}

	for _, g := range in.store.Gardens() {
		if !g.HasSensor() || g.SensorConfig.DeviceID != ev.DeviceID {
			continue
		}
		if ev.GardenID != 0 && ev.GardenID != g.ID {
			continue
		}
		r := ev.Reading()
		if r.SensorName == "" {
			r.SensorName = g.SensorConfig.SensorName
		}
		in.board.Put(g.ID, r, ev.Source, OriginMQTT)
	}
	return nil
}
