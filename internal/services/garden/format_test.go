package garden

import (
	"testing"
	"time"

	"github.com/greenthumb/greenthumb/internal/model/entities"
)

func TestTones(t *testing.T) {
	health := map[entities.Health]Tone{
		entities.HealthExcellent: ToneGreen,
		entities.HealthGood:      ToneBlue,
		entities.HealthFair:      ToneYellow,
		entities.HealthPoor:      ToneRed,
		"Unknown":                ToneGray,
	}
	for h, want := range health {
		if got := HealthTone(h); got != want {
			t.Errorf("HealthTone(%s) = %s, want %s", h, got, want)
		}
	}

	temps := []struct {
		v    float64
		want Tone
	}{{59.9, ToneBlue}, {60, ToneGreen}, {80, ToneGreen}, {80.1, ToneRed}}
	for _, c := range temps {
		if got := TemperatureTone(c.v); got != c.want {
			t.Errorf("TemperatureTone(%v) = %s, want %s", c.v, got, c.want)
		}
	}

	hums := []struct {
		v    float64
		want Tone
	}{{39, ToneOrange}, {40, ToneGreen}, {70, ToneGreen}, {71, ToneBlue}}
	for _, c := range hums {
		if got := HumidityTone(c.v); got != c.want {
			t.Errorf("HumidityTone(%v) = %s, want %s", c.v, got, c.want)
		}
	}
}

func TestRelativeAge(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		ago  time.Duration
		want string
	}{
		{0, "Just now"},
		{59 * time.Second, "Just now"},
		{time.Minute, "1m ago"},
		{59*time.Minute + 59*time.Second, "59m ago"},
		{time.Hour, "1h ago"},
		{23 * time.Hour, "23h ago"},
	}
	for _, c := range cases {
		if got := RelativeAge(now.Add(-c.ago), now); got != c.want {
			t.Errorf("RelativeAge(-%s) = %q, want %q", c.ago, got, c.want)
		}
	}
	old := now.Add(-48 * time.Hour)
	if got := RelativeAge(old, now); got != old.Local().Format("Jan 2, 2006") {
		t.Errorf("expected a date for old readings, got %q", got)
	}
}
