package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

func (rl *Relay) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
	requestsTotal.WithLabelValues(strconv.Itoa(status)).Inc()
}

func (rl *Relay) writeErr(w http.ResponseWriter, status int, msg string) {
	rl.writeJSON(w, status, map[string]string{"error": msg})
}

// HandleRoomAlert: GET /api/roomalert?deviceId=...
func (rl *Relay) HandleRoomAlert(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	deviceID := strings.TrimSpace(r.URL.Query().Get("deviceId"))
	if deviceID == "" {
		rl.writeErr(w, http.StatusBadRequest, "deviceId is required")
		return
	}

	ctx := r.Context()
	body, err := rl.upstream.FetchDevice(ctx, deviceID)

	var se *StatusError
	switch {
	case err == nil:
		rl.writeJSON(w, http.StatusOK, body)
	case errors.As(err, &se):
		rl.writeErr(w, se.Code, fmt.Sprintf("Room Alert API error: %d", se.Code))
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		rl.writeErr(w, http.StatusServiceUnavailable, "Room Alert API unavailable")
	case errors.Is(err, context.Canceled):
		// il client ha chiuso la richiesta: nessuno legge la risposta
		requestsTotal.WithLabelValues("canceled").Inc()
		return
	default:
		rl.writeErr(w, http.StatusInternalServerError, "Failed to fetch Room Alert data")
	}

	if err != nil {
		rl.cfg.Logger.Printf("relay: GET %s deviceId=%s [%dms] breaker=%s err=%v",
			Path, deviceID, time.Since(start).Milliseconds(), rl.upstream.State(), err)
	}
}

func (rl *Relay) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	st := rl.upstream.State()
	status := "ok"
	if st == gobreaker.StateOpen {
		status = "degraded"
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": status, "breaker": st.String()})
}
