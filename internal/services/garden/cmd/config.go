package main

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port     string
	GRPCPort string
	// origini CORS separate da virgola, vuoto = tutte
	CORSOrigins []string
	SeedSample  bool

	UseMock        bool
	UseRelay       bool
	RelayURL       string
	BaseURL        string
	PollIntervalMs int
	TimeoutMs      int

	// MQTT opzionale: senza MQTT_HOST niente ingest né publish
	MQTTHost     string
	MQTTPort     int
	MQTTUser     string
	MQTTPassword string
	MQTTClientID string
	ReadingTopic string
	PublishPolls bool
}

func getenv(k, d string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func getenvBool(k string, d bool) bool {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return d
}

func splitComma(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func loadConfig() Config {
	return Config{
		Port:        getenv("PORT", "5010"),
		GRPCPort:    getenv("GRPC_PORT", "50052"),
		CORSOrigins: splitComma(getenv("CORS_ORIGINS", "")),
		SeedSample:  getenvBool("SEED_SAMPLE_DATA", true),

		UseMock:        getenvBool("SENSOR_USE_MOCK", false),
		UseRelay:       getenvBool("SENSOR_USE_RELAY", false),
		RelayURL:       getenv("SENSOR_RELAY_URL", ""),
		BaseURL:        getenv("SENSOR_BASE_URL", "https://account.roomalert.com"),
		PollIntervalMs: getenvInt("SENSOR_POLL_INTERVAL_MS", 30000),
		TimeoutMs:      getenvInt("UPSTREAM_TIMEOUT_MS", 10000),

		MQTTHost:     getenv("MQTT_HOST", ""),
		MQTTPort:     getenvInt("MQTT_PORT", 1883),
		MQTTUser:     getenv("MQTT_USER", ""),
		MQTTPassword: getenv("MQTT_PASSWORD", ""),
		MQTTClientID: getenv("MQTT_CLIENT_ID", ""),
		ReadingTopic: getenv("READING_TOPIC", "sensor/reading/{device}"),
		PublishPolls: getenvBool("PUBLISH_POLLS", false),
	}
}
