package poller

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/greenthumb/greenthumb/internal/model/entities"
)

// ---------- Upstream payload ----------

// deviceResponse is the subset of the public device page we rely on.
// Every field is optional: a device page missing any of them still decodes.
type deviceResponse struct {
	Sensors   []entities.SensorEntry
	Name      string
	Timestamp time.Time // zero when absent or unparseable
}

func (d *deviceResponse) UnmarshalJSON(b []byte) error {
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	if arr, ok := m["sensors"].([]any); ok {
		for _, raw := range arr {
			s, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			d.Sensors = append(d.Sensors, entities.SensorEntry{
				Name:  str(s["name"]),
				Value: s["value"],
				Unit:  str(s["unit"]),
				Type:  str(s["type"]),
			})
		}
	}
	d.Name = str(m["name"])
	// timestamp / last_updated
	for _, k := range []string{"timestamp", "last_updated"} {
		if t, ok := parseTimestamp(m[k]); ok {
			d.Timestamp = t
			break
		}
	}
	return nil
}

func str(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// parseValue accepts a JSON number or a string starting with a number
// ("72.4", "72.4 °F").
func parseValue(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, false
		}
		return x, true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		num := leadingNumber.FindString(strings.TrimSpace(x))
		if num == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(num, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"01/02/2006 15:04:05",
}

// parseTimestamp accepts date strings in the common layouts or epoch
// milliseconds.
func parseTimestamp(v any) (time.Time, bool) {
	switch x := v.(type) {
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil && ms > 0 {
			return time.UnixMilli(ms).UTC(), true
		}
	case float64:
		if x > 0 {
			return time.UnixMilli(int64(x)).UTC(), true
		}
	}
	return time.Time{}, false
}
