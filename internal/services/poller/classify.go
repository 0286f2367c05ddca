package poller

import (
	"strings"

	"github.com/greenthumb/greenthumb/internal/model/entities"
)

// ClassifySensor maps one entry of a device's sensor array to a kind.
// Temperature wins when an entry matches both predicates.
func ClassifySensor(e entities.SensorEntry) entities.SensorKind {
	name := strings.ToLower(e.Name)
	switch {
	case strings.Contains(name, "temp") || e.Unit == "°F" || e.Unit == "°C" || e.Type == "temperature":
		return entities.SensorTemperature
	case strings.Contains(name, "humidity") || e.Unit == "%" || e.Type == "humidity":
		return entities.SensorHumidity
	default:
		return entities.SensorUnknown
	}
}

// pickReadings takes the first entry of each kind. A first match whose value
// does not parse makes the sensor count as missing; later entries of the
// same kind are not consulted.
func pickReadings(entries []entities.SensorEntry) (temp, hum float64, ok bool) {
	var seenTemp, seenHum, okTemp, okHum bool
	for _, e := range entries {
		switch ClassifySensor(e) {
		case entities.SensorTemperature:
			if !seenTemp {
				seenTemp = true
				temp, okTemp = parseValue(e.Value)
			}
		case entities.SensorHumidity:
			if !seenHum {
				seenHum = true
				hum, okHum = parseValue(e.Value)
			}
		}
		if seenTemp && seenHum {
			break
		}
	}
	return temp, hum, okTemp && okHum
}
