package main

import (
	"os"
	"strconv"
)

type Config struct {
	Port        string
	UpstreamURL string
	TimeoutMs   int

	BreakerFailures int
	BreakerOpenMs   int
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

func loadConfig() Config {
	return Config{
		Port:        getenv("PORT", "5011"),
		UpstreamURL: getenv("SENSOR_BASE_URL", "https://account.roomalert.com"),
		TimeoutMs:   getenvInt("UPSTREAM_TIMEOUT_MS", 10000),

		BreakerFailures: getenvInt("BREAKER_FAILURES", 5),
		BreakerOpenMs:   getenvInt("BREAKER_OPEN_MS", 30000),
	}
}
