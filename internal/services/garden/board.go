package garden

import (
	"sync"
	"time"

	"github.com/greenthumb/greenthumb/internal/model/entities"
)

const fetchErrorMessage = "Unable to fetch sensor data"

// Origin of a board update.
const (
	OriginPoll = "poll"
	OriginMQTT = "mqtt"
)

// BoardEntry is the environment panel state of one garden.
type BoardEntry struct {
	Reading   *entities.SensorReading
	Source    string
	LastError string
	UpdatedAt time.Time
}

// Board keeps the newest reading per garden. Readings may arrive out of
// order; one older than what is shown is dropped.
type Board struct {
	mu      sync.RWMutex
	entries map[int]*BoardEntry
	now     func() time.Time
}

func NewBoard() *Board {
	return &Board{entries: map[int]*BoardEntry{}, now: time.Now}
}

// Put stores r for the garden unless a newer reading is already there.
func (b *Board) Put(gardenID int, r *entities.SensorReading, source, origin string) bool {
	if r == nil {
		b.Fail(gardenID, origin)
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.entries[gardenID]
	if !ok {
		e = &BoardEntry{}
		b.entries[gardenID] = e
	}
	if e.Reading != nil && r.Timestamp.Before(e.Reading.Timestamp) {
		boardUpdates.WithLabelValues(origin, "stale").Inc()
		return false
	}
	cp := *r
	e.Reading = &cp
	e.Source = source
	e.LastError = ""
	e.UpdatedAt = b.now()
	boardUpdates.WithLabelValues(origin, "accepted").Inc()
	return true
}

// Fail records a failed attempt. The last good reading stays.
func (b *Board) Fail(gardenID int, origin string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.entries[gardenID]
	if !ok {
		e = &BoardEntry{}
		b.entries[gardenID] = e
	}
	e.LastError = fetchErrorMessage
	e.UpdatedAt = b.now()
	boardUpdates.WithLabelValues(origin, "failed").Inc()
}

func (b *Board) Get(gardenID int) (BoardEntry, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	e, ok := b.entries[gardenID]
	if !ok {
		return BoardEntry{}, false
	}
	out := *e
	if e.Reading != nil {
		r := *e.Reading
		out.Reading = &r
	}
	return out, true
}

func (b *Board) Forget(gardenID int) {
	b.mu.Lock()
	delete(b.entries, gardenID)
	b.mu.Unlock()
}
