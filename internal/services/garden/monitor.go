package garden

import (
	"log"
	"sync"
	"time"

	"github.com/greenthumb/greenthumb/internal/model/entities"
	"github.com/greenthumb/greenthumb/internal/model/messages"
	"github.com/greenthumb/greenthumb/internal/services/poller"
	"github.com/greenthumb/greenthumb/pkg/broker"
)

// Monitor runs one polling session per garden with a sensor configured and
// writes the results on the Board.
type Monitor struct {
	poller   *poller.Poller
	board    *Board
	interval time.Duration

	pub   broker.IPublisher // opzionale
	topic string

	mu       sync.Mutex
	sessions map[int]*watch
	closed   bool
}

type watch struct {
	cfg     entities.SensorConfig
	session *poller.Session
}

func NewMonitor(p *poller.Poller, board *Board, interval time.Duration) *Monitor {
	return &Monitor{poller: p, board: board, interval: interval, sessions: map[int]*watch{}}
}

// PublishTo makes the monitor forward each reading as a ReadingEvent.
func (m *Monitor) PublishTo(pub broker.IPublisher, topicTmpl string) {
	m.mu.Lock()
	m.pub, m.topic = pub, topicTmpl
	m.mu.Unlock()
}

// Sync reconciles running sessions with gardens: new or changed sensor
// configs (re)start a session, removed ones stop it.
func (m *Monitor) Sync(gardens []entities.Garden) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}

	want := make(map[int]entities.SensorConfig, len(gardens))
	for _, g := range gardens {
		if g.HasSensor() {
			want[g.ID] = *g.SensorConfig
		}
	}

	for id, w := range m.sessions {
		cfg, ok := want[id]
		if ok && cfg.DeviceID == w.cfg.DeviceID && cfg.SensorName == w.cfg.SensorName {
			continue
		}
		w.session.Stop()
		delete(m.sessions, id)
		m.board.Forget(id)
		log.Printf("garden: stopped polling %s for garden %d", w.cfg.DeviceID, id)
	}

	for id, cfg := range want {
		if _, running := m.sessions[id]; running {
			continue
		}
		w := &watch{cfg: cfg}
		w.session = m.poller.StartSession(cfg.DeviceID, cfg.SensorName, m.callback(id, w), m.interval)
		m.sessions[id] = w
		log.Printf("garden: polling %s for garden %d every %s", cfg.DeviceID, id, m.interval)
	}
	activeSessions.Set(float64(len(m.sessions)))
}

// callback drops results of sessions that were stopped or replaced in the
// meantime. Lock order is m.mu then the board's lock, as in Sync.
func (m *Monitor) callback(gardenID int, w *watch) poller.Callback {
	source := m.poller.Source().Name()
	return func(r *entities.SensorReading) {
		// check e Put nella stessa sezione critica: Sync non può
		// fare Forget in mezzo
		m.mu.Lock()
		if m.sessions[gardenID] != w {
			m.mu.Unlock()
			return
		}
		accepted := m.board.Put(gardenID, r, source, OriginPoll)
		pub, topic := m.pub, m.topic
		m.mu.Unlock()
		if !accepted || pub == nil {
			return
		}
		ev := messages.NewReadingEvent(r, gardenID, source)
		if err := pub.PublishJSON(broker.FormatTopic(topic, r.DeviceID), ev); err != nil {
			log.Printf("garden: %v", err)
		}
	}
}

// Watching returns the device polled for a garden, if any.
func (m *Monitor) Watching(gardenID int) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.sessions[gardenID]
	if !ok {
		return "", false
	}
	return w.cfg.DeviceID, true
}

func (m *Monitor) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Close stops every session and waits for in-flight fetches.
func (m *Monitor) Close() {
	m.mu.Lock()
	m.closed = true
	sessions := m.sessions
	m.sessions = map[int]*watch{}
	m.mu.Unlock()

	for _, w := range sessions {
		w.session.Stop()
	}
	for _, w := range sessions {
		w.session.Wait()
	}
	activeSessions.Set(0)
}
