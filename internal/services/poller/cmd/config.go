package main

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port string

	UseMock  bool
	UseRelay bool
	RelayURL string
	BaseURL  string
	// intervallo di polling se -interval non è passato
	PollIntervalMs int
	TimeoutMs      int

	MQTTHost     string
	MQTTPort     int
	MQTTUser     string
	MQTTPassword string
	MQTTClientID string
	ReadingTopic string
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func getenvBool(k string, d bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(k))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return d
}

func loadConfig() Config {
	return Config{
		Port:           getenv("PORT", "5012"),
		UseMock:        getenvBool("SENSOR_USE_MOCK", false),
		UseRelay:       getenvBool("SENSOR_USE_RELAY", false),
		RelayURL:       getenv("SENSOR_RELAY_URL", ""),
		BaseURL:        getenv("SENSOR_BASE_URL", "https://account.roomalert.com"),
		PollIntervalMs: getenvInt("SENSOR_POLL_INTERVAL_MS", 30000),
		TimeoutMs:      getenvInt("UPSTREAM_TIMEOUT_MS", 10000),

		MQTTHost:     getenv("MQTT_HOST", "localhost"),
		MQTTPort:     getenvInt("MQTT_PORT", 1883),
		MQTTUser:     getenv("MQTT_USER", ""),
		MQTTPassword: getenv("MQTT_PASSWORD", ""),
		MQTTClientID: getenv("MQTT_CLIENT_ID", ""),
		ReadingTopic: getenv("READING_TOPIC", "sensor/reading/{device}"),
	}
}
