package messages

import (
	"time"

	"github.com/greenthumb/greenthumb/internal/model/entities"
)

// ReadingEvent is published on sensor/reading/{device} for every successful poll.
type ReadingEvent struct {
	DeviceID    string    `json:"device_id"`
	SensorName  string    `json:"sensor_name"`
	GardenID    int       `json:"garden_id,omitempty"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	Source      string    `json:"source"` // live | mock
	Timestamp   time.Time `json:"timestamp"`
}

func NewReadingEvent(r *entities.SensorReading, gardenID int, source string) ReadingEvent {
	return ReadingEvent{
		DeviceID:    r.DeviceID,
		SensorName:  r.SensorName,
		GardenID:    gardenID,
		Temperature: r.Temperature,
		Humidity:    r.Humidity,
		Source:      source,
		Timestamp:   r.Timestamp,
	}
}

// Reading converte l'evento nella lettura usata dal board.
func (e ReadingEvent) Reading() *entities.SensorReading {
	return &entities.SensorReading{
		Temperature: e.Temperature,
		Humidity:    e.Humidity,
		Timestamp:   e.Timestamp,
		DeviceID:    e.DeviceID,
		SensorName:  e.SensorName,
	}
}
