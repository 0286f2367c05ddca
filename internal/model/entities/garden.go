package entities

// SensorConfig links a garden to a remote sensor device.
type SensorConfig struct {
	DeviceID     string `json:"deviceId"`
	SensorName   string `json:"sensorName"`
	Model        string `json:"model,omitempty"`
	SerialNumber string `json:"serialNumber,omitempty"`
}

// Garden is a named collection of plants, optionally watched by a sensor device.
type Garden struct {
	ID           int           `json:"id"`
	Name         string        `json:"name"`
	PlantCount   int           `json:"plantCount"` // cache of len(plants[ID])
	SensorConfig *SensorConfig `json:"sensorConfig,omitempty"`
}

// HasSensor reports whether live polling applies to this garden.
func (g Garden) HasSensor() bool {
	return g.SensorConfig != nil && g.SensorConfig.DeviceID != ""
}

// Clone copies the garden, including its sensor config.
func (g Garden) Clone() Garden {
	if g.SensorConfig != nil {
		sc := *g.SensorConfig
		g.SensorConfig = &sc
	}
	return g
}

// SensorConfigForm is the raw input of the garden sensor settings form.
type SensorConfigForm struct {
	DeviceID     string `json:"deviceId"`
	SensorName   string `json:"sensorName"`
	Model        string `json:"model"`
	SerialNumber string `json:"serialNumber"`
}
