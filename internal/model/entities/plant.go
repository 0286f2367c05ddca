package entities

// Health is the coarse condition of a plant.
type Health string

const (
	HealthExcellent Health = "Excellent"
	HealthGood      Health = "Good"
	HealthFair      Health = "Fair"
	HealthPoor      Health = "Poor"
)

// Plant is a tracked specimen. ID is unique across all gardens.
type Plant struct {
	ID               int     `json:"id"`
	Name             string  `json:"name"`
	Type             string  `json:"type"`
	Temperature      float64 `json:"temperature"` // °F
	Humidity         float64 `json:"humidity"`    // %
	Light            string  `json:"light"`
	WaterLevel       string  `json:"waterLevel"`
	LastWateredLabel string  `json:"lastWateredLabel"`
	Health           Health  `json:"health"`
	ImageURL         string  `json:"imageUrl"`
}

// NewPlantForm is the raw input of the add-plant form.
type NewPlantForm struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Image string `json:"image"`
}
