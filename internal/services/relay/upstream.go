package relay

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

	"github.com/sony/gobreaker"
)

var ErrInvalidBody = errors.New("upstream body is not JSON")

// StatusError: l'upstream ha risposto ma con status non 2xx.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string { return fmt.Sprintf("upstream status %d", e.Code) }

// Solo 5xx ed errori di trasporto contano per il breaker: un 404 per un
// deviceId sbagliato non deve aprirlo, e nemmeno un client che se ne va.
func countsAsFailure(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code >= 500
	}
	return true
}

func newBreaker(name string, fails int, openFor time.Duration, logger *log.Logger) *gobreaker.CircuitBreaker {
	if fails < 1 {
		fails = 5
	}
	if openFor <= 0 {
		openFor = 30 * time.Second
	}
	breakerState.WithLabelValues(name).Set(float64(gobreaker.StateClosed))
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    name,
		Timeout: openFor,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= uint32(fails)
		},
		IsSuccessful: func(err error) bool { return !countsAsFailure(err) },
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Printf("relay: breaker %s %s -> %s", name, from, to)
			breakerState.WithLabelValues(name).Set(float64(to))
		},
	})
}

// Upstream incapsula le chiamate al servizio Room Alert con circuit breaker
type Upstream struct {
	base    string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	name    string
}

func NewUpstream(name, base string, timeout time.Duration, breaker *gobreaker.CircuitBreaker) *Upstream {
	return &Upstream{
		base:    strings.TrimRight(strings.TrimSpace(base), "/"),
		client:  &http.Client{Timeout: timeout},
		breaker: breaker,
		name:    name,
	}
}

func (u *Upstream) deviceURL(deviceID string) string {
	return u.base + "/public/device/" + url.PathEscape(deviceID)
}

// FetchDevice returns the raw JSON page of a device. Errors are a
// *StatusError, gobreaker.ErrOpenState/ErrTooManyRequests, ErrInvalidBody or
// a transport error.
func (u *Upstream) FetchDevice(ctx context.Context, deviceID string) (json.RawMessage, error) {
	res, err := u.breaker.Execute(func() (any, error) {
		start := time.Now()
		defer func() { upstreamSeconds.Observe(time.Since(start).Seconds()) }()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.deviceURL(deviceID), nil)
		if err != nil {
			return nil, fmt.Errorf("%s build request: %w", u.name, err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := u.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%s request error: %w", u.name, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
			return nil, &StatusError{Code: resp.StatusCode}
		}
		body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
		if err != nil {
			return nil, fmt.Errorf("%s read body: %w", u.name, err)
		}
		if !json.Valid(body) {
			return nil, fmt.Errorf("%s: %w", u.name, ErrInvalidBody)
		}
		return json.RawMessage(body), nil
	})
	if err != nil {
		return nil, err
	}
	return res.(json.RawMessage), nil
}

func (u *Upstream) State() gobreaker.State { return u.breaker.State() }
