package poller

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/greenthumb/greenthumb/internal/model"
	"github.com/greenthumb/greenthumb/internal/model/entities"
)

// ====== Tunables ======
const (
	baseTemperature = 72.0 // °F
	baseHumidity    = 60.0 // %
	tempSpread      = 4.0  // ±2
	humiditySpread  = 10.0 // ±5

	DefaultMockDelay = 500 * time.Millisecond
)

// MockSource simulates a device for environments without one.
type MockSource struct {
	Delay time.Duration

	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

func NewMockSource(delay time.Duration) *MockSource {
	if delay < 0 {
		delay = 0
	}
	return &MockSource{
		Delay: delay,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
		now:   time.Now,
	}
}

func (m *MockSource) Name() string { return model.SourceMock }

// FetchReading waits Delay and returns a reading jittered around the baseline.
func (m *MockSource) FetchReading(ctx context.Context, deviceID, sensorName string) (*entities.SensorReading, error) {
	if m.Delay > 0 {
		t := time.NewTimer(m.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	}

	m.mu.Lock()
	dt := (m.rnd.Float64() - 0.5) * tempSpread
	dh := (m.rnd.Float64() - 0.5) * humiditySpread
	m.mu.Unlock()

	return &entities.SensorReading{
		Temperature: round1(baseTemperature + dt),
		Humidity:    round1(baseHumidity + dh),
		Timestamp:   m.now(),
		DeviceID:    deviceID,
		SensorName:  firstNonEmpty(sensorName, DefaultMockName),
	}, nil
}

func round1(x float64) float64 { return math.Round(x*10) / 10 }
