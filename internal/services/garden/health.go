package garden

import (
	"encoding/json"
	"net/http"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

type healthHandler struct {
	mqtt    mqtt.Client // nil se l'ingest MQTT è disattivato
	monitor *Monitor
	source  string
}

// NewHealthHandler reports liveness plus the state of optional dependencies.
func NewHealthHandler(m mqtt.Client, mon *Monitor, source string) http.Handler {
	return &healthHandler{mqtt: m, monitor: mon, source: source}
}

func (h *healthHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	type status struct {
		Status        string `json:"status"`
		SensorSource  string `json:"sensor_source"`
		MQTTEnabled   bool   `json:"mqtt_enabled"`
		MQTTConnected bool   `json:"mqtt_connected"`
		Sessions      int    `json:"polling_sessions"`
	}
	st := status{
		Status:        "ok",
		SensorSource:  h.source,
		MQTTEnabled:   h.mqtt != nil,
		MQTTConnected: h.mqtt != nil && h.mqtt.IsConnectionOpen(),
	}
	if h.monitor != nil {
		st.Sessions = h.monitor.Count()
	}
	if st.MQTTEnabled && !st.MQTTConnected {
		st.Status = "degraded"
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(st)
}

// Handler /readyz: 200 quando lo store è pronto e, se attivo, MQTT è connesso.
type readyHandler struct {
	store *Store
	mqtt  mqtt.Client
}

func NewReadyHandler(s *Store, m mqtt.Client) http.Handler {
	return &readyHandler{store: s, mqtt: m}
}

func (h *readyHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	ready := h.store != nil && (h.mqtt == nil || h.mqtt.IsConnectionOpen())
	w.Header().Set("Content-Type", "application/json")
	if !ready {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	type resp struct {
		Ready bool `json:"ready"`
	}
	_ = json.NewEncoder(w).Encode(resp{Ready: ready})
}
