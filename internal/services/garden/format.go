package garden

import (
	"fmt"
	"time"

	"github.com/greenthumb/greenthumb/internal/model/entities"
)

// Tone is the colour class the UI uses for a value.
type Tone string

const (
	ToneGreen  Tone = "green"
	ToneBlue   Tone = "blue"
	ToneYellow Tone = "yellow"
	ToneRed    Tone = "red"
	ToneOrange Tone = "orange"
	ToneGray   Tone = "gray"
)

func HealthTone(h entities.Health) Tone {
	switch h {
	case entities.HealthExcellent:
		return ToneGreen
	case entities.HealthGood:
		return ToneBlue
	case entities.HealthFair:
		return ToneYellow
	case entities.HealthPoor:
		return ToneRed
	}
	return ToneGray
}

// TemperatureTone: °F, sotto 60 freddo, sopra 80 caldo.
func TemperatureTone(t float64) Tone {
	switch {
	case t < 60:
		return ToneBlue
	case t > 80:
		return ToneRed
	}
	return ToneGreen
}

func HumidityTone(h float64) Tone {
	switch {
	case h < 40:
		return ToneOrange
	case h > 70:
		return ToneBlue
	}
	return ToneGreen
}

// RelativeAge renders how long ago ts was, relative to now.
func RelativeAge(ts, now time.Time) string {
	d := now.Sub(ts)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	}
	return ts.Local().Format("Jan 2, 2006")
}
