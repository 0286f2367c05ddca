package poller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/greenthumb/greenthumb/internal/model"
	"github.com/greenthumb/greenthumb/internal/model/entities"
)

const (
	DefaultBaseURL = "https://account.roomalert.com"
	// RelayPath is where the same-origin relay is mounted.
	RelayPath = "/api/roomalert"

	DefaultDeviceName = "Room Alert Device"
	DefaultMockName   = "Room Alert Sensor"
)

var (
	// ErrSensorNotFound: the device page has no usable temperature or humidity entry.
	ErrSensorNotFound = errors.New("temperature or humidity sensor not found")
	ErrEmptyDeviceID  = errors.New("empty device id")
)

// StatusError is returned when the endpoint answers with a non-2xx status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string { return fmt.Sprintf("sensor endpoint status %d", e.Code) }

// Source produces readings for a device. Live and mock sources share it.
type Source interface {
	Name() string
	FetchReading(ctx context.Context, deviceID, sensorName string) (*entities.SensorReading, error)
}

// Config selects the endpoint. With UseRelay set the request goes to the
// same-origin relay at RelayURL, otherwise straight to BaseURL.
type Config struct {
	BaseURL  string
	UseRelay bool
	RelayURL string
	Timeout  time.Duration
}

// Client fetches live readings from the device endpoint.
type Client struct {
	cfg  Config
	http *http.Client
	now  func() time.Time
}

// NewClient builds a live client. If hc is nil a client with cfg.Timeout is used.
func NewClient(cfg Config, hc *http.Client) *Client {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.RelayURL = strings.TrimRight(strings.TrimSpace(cfg.RelayURL), "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{cfg: cfg, http: hc, now: time.Now}
}

func (c *Client) Name() string { return model.SourceLive }

// URL returns the request URL for deviceID under the configured mode.
func (c *Client) URL(deviceID string) string {
	if c.cfg.UseRelay {
		return c.cfg.RelayURL + RelayPath + "?" + url.Values{"deviceId": {deviceID}}.Encode()
	}
	return c.cfg.BaseURL + "/public/device/" + url.PathEscape(deviceID)
}

// FetchReading performs one GET and parses the device page. Any failure
// yields a nil reading and an error; nothing panics on a malformed body.
func (c *Client) FetchReading(ctx context.Context, deviceID, sensorName string) (*entities.SensorReading, error) {
	if strings.TrimSpace(deviceID) == "" {
		return nil, ErrEmptyDeviceID
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(deviceID), nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", deviceID, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", deviceID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
		return nil, fmt.Errorf("fetch %s: %w", deviceID, &StatusError{Code: resp.StatusCode})
	}

	var page deviceResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode %s: %w", deviceID, err)
	}

	temp, hum, ok := pickReadings(page.Sensors)
	if !ok {
		log.Printf("poller: WARN temperature or humidity sensor not found for device %s (%d entries)", deviceID, len(page.Sensors))
		return nil, fmt.Errorf("device %s: %w", deviceID, ErrSensorNotFound)
	}

	ts := page.Timestamp
	if ts.IsZero() {
		ts = c.now()
	}
	return &entities.SensorReading{
		Temperature: temp,
		Humidity:    hum,
		Timestamp:   ts,
		DeviceID:    deviceID,
		SensorName:  firstNonEmpty(sensorName, page.Name, DefaultDeviceName),
	}, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
