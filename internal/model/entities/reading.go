package entities

import "time"

// SensorKind is the classification of one entry of a device's sensor array.
type SensorKind int

const (
	SensorUnknown SensorKind = iota
	SensorTemperature
	SensorHumidity
)

func (k SensorKind) String() string {
	switch k {
	case SensorTemperature:
		return "temperature"
	case SensorHumidity:
		return "humidity"
	default:
		return "unknown"
	}
}

// SensorEntry is one element of the upstream "sensors" array.
// Value is kept raw: devices report it either as a number or as a string.
type SensorEntry struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
	Unit  string `json:"unit"`
	Type  string `json:"type"`
}

// SensorReading is a single temperature+humidity sample. Not persisted.
type SensorReading struct {
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	Timestamp   time.Time `json:"timestamp"`
	DeviceID    string    `json:"deviceId"`
	SensorName  string    `json:"sensorName"`
}
