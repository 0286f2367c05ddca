package poller

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/greenthumb/greenthumb/internal/model/entities"
)

const (
	DefaultInterval     = 30 * time.Second
	DefaultFetchTimeout = 15 * time.Second
)

// Callback receives every attempt's result: a reading, or nil on failure.
// Calls may overlap and arrive out of order when a fetch outlives the interval.
type Callback func(r *entities.SensorReading)

// State of a polling session.
type State int32

const (
	StateIdle State = iota
	StatePolling
	StateStopped
)

func (s State) String() string {
	switch s {
	case StatePolling:
		return "polling"
	case StateStopped:
		return "stopped"
	default:
		return "idle"
	}
}

// Poller schedules periodic fetches against a Source.
type Poller struct {
	source       Source
	fetchTimeout time.Duration
}

func New(source Source, fetchTimeout time.Duration) *Poller {
	if fetchTimeout <= 0 {
		fetchTimeout = DefaultFetchTimeout
	}
	return &Poller{source: source, fetchTimeout: fetchTimeout}
}

// Source returns the underlying source (live or mock).
func (p *Poller) Source() Source { return p.source }

// Start begins polling deviceID and returns the function that stops it.
func (p *Poller) Start(deviceID, sensorName string, cb Callback, interval time.Duration) (stop func()) {
	return p.StartSession(deviceID, sensorName, cb, interval).Stop
}

// Session is one polling loop for one device.
type Session struct {
	mu       sync.Mutex
	state    State
	stop     chan struct{}
	once     sync.Once
	inflight sync.WaitGroup

	poller     *Poller
	deviceID   string
	sensorName string
	cb         Callback
}

// NewSession prepares an idle session; nothing is fetched until Start.
func (p *Poller) NewSession(deviceID, sensorName string, cb Callback) *Session {
	return &Session{
		state:      StateIdle,
		stop:       make(chan struct{}),
		poller:     p,
		deviceID:   deviceID,
		sensorName: sensorName,
		cb:         cb,
	}
}

// StartSession fetches once right away, then once every interval until
// Stop. Ticks never wait for earlier fetches.
func (p *Poller) StartSession(deviceID, sensorName string, cb Callback, interval time.Duration) *Session {
	s := p.NewSession(deviceID, sensorName, cb)
	s.Start(interval)
	return s
}

// Start moves an idle session to polling. It is a no-op on a session that
// is already polling or stopped.
func (s *Session) Start(interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return
	}
	s.state = StatePolling
	s.mu.Unlock()

	// first fetch before the ticker is armed
	s.dispatch()

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				if !s.dispatch() {
					return
				}
			}
		}
	}()
}

// Stop prevents further ticks. Fetches already issued still complete and
// still reach the callback.
func (s *Session) Stop() {
	s.once.Do(func() {
		s.mu.Lock()
		s.state = StateStopped
		s.mu.Unlock()
		close(s.stop)
	})
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Wait blocks until every fetch issued so far has delivered its callback.
func (s *Session) Wait() { s.inflight.Wait() }

// dispatch issues one fetch unless the session is stopped. The state check
// and inflight.Add happen under mu, so once Stop returns no new fetch starts
// and Wait sees every fetch that did.
func (s *Session) dispatch() bool {
	s.mu.Lock()
	if s.state == StateStopped {
		s.mu.Unlock()
		return false
	}
	s.inflight.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.inflight.Done()

		// not tied to Stop: an issued fetch is never aborted
		ctx, cancel := context.WithTimeout(context.Background(), s.poller.fetchTimeout)
		defer cancel()

		src := s.poller.source
		r, err := src.FetchReading(ctx, s.deviceID, s.sensorName)
		if err != nil {
			fetchTotal.WithLabelValues(src.Name(), "error").Inc()
			log.Printf("poller: fetch %s failed: %v", s.deviceID, err)
			r = nil
		} else {
			fetchTotal.WithLabelValues(src.Name(), "ok").Inc()
		}
		if s.cb != nil {
			s.cb(r)
		}
	}()
	return true
}
