package poller

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/greenthumb/greenthumb/internal/model/entities"
)

type fakeSource struct {
	calls atomic.Int32
	delay time.Duration
	fail  bool
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) FetchReading(ctx context.Context, deviceID, sensorName string) (*entities.SensorReading, error) {
	n := f.calls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.fail {
		return nil, errors.New("boom")
	}
	return &entities.SensorReading{Temperature: float64(n), Humidity: 50, DeviceID: deviceID, SensorName: sensorName}, nil
}

type recorder struct {
	mu   sync.Mutex
	got  []*entities.SensorReading
	seen chan struct{}
}

func newRecorder() *recorder { return &recorder{seen: make(chan struct{}, 64)} }

func (r *recorder) cb(rd *entities.SensorReading) {
	r.mu.Lock()
	r.got = append(r.got, rd)
	r.mu.Unlock()
	r.seen <- struct{}{}
}

func (r *recorder) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.got)
}

func (r *recorder) wait(t *testing.T, n int, within time.Duration) {
	t.Helper()
	deadline := time.After(within)
	for i := 0; i < n; i++ {
		select {
		case <-r.seen:
		case <-deadline:
			t.Fatalf("timed out waiting for callback %d of %d", i+1, n)
		}
	}
}

func TestStartFetchesImmediately(t *testing.T) {
	src := &fakeSource{}
	rec := newRecorder()
	s := New(src, time.Second).StartSession("dev", "Sensor", rec.cb, time.Hour)
	defer s.Stop()

	rec.wait(t, 1, time.Second)
	if rec.got[0] == nil || rec.got[0].DeviceID != "dev" || rec.got[0].SensorName != "Sensor" {
		t.Fatalf("unexpected first reading %+v", rec.got[0])
	}
	if s.State() != StatePolling {
		t.Errorf("expected polling, got %s", s.State())
	}
}

func TestStartFetchesEveryInterval(t *testing.T) {
	src := &fakeSource{}
	rec := newRecorder()
	stop := New(src, time.Second).Start("dev", "", rec.cb, 20*time.Millisecond)
	rec.wait(t, 4, 2*time.Second)
	stop()
	if src.calls.Load() < 4 {
		t.Errorf("expected at least 4 fetches, got %d", src.calls.Load())
	}
}

func TestStopPreventsFurtherTicks(t *testing.T) {
	src := &fakeSource{}
	rec := newRecorder()
	s := New(src, time.Second).StartSession("dev", "", rec.cb, 10*time.Millisecond)
	rec.wait(t, 2, time.Second)

	s.Stop()
	s.Stop() // idempotent
	s.Wait()
	if s.State() != StateStopped {
		t.Errorf("expected stopped, got %s", s.State())
	}
	after := rec.len()
	time.Sleep(60 * time.Millisecond)
	if rec.len() != after {
		t.Errorf("callbacks after stop: %d -> %d", after, rec.len())
	}
}

func TestInFlightFetchDeliversAfterStop(t *testing.T) {
	src := &fakeSource{delay: 50 * time.Millisecond}
	rec := newRecorder()
	s := New(src, time.Second).StartSession("dev", "", rec.cb, time.Hour)
	s.Stop()

	rec.wait(t, 1, time.Second)
	if rec.got[0] == nil {
		t.Fatal("expected the issued fetch to deliver a reading")
	}
}

func TestFailureDeliversNil(t *testing.T) {
	src := &fakeSource{fail: true}
	rec := newRecorder()
	s := New(src, time.Second).StartSession("dev", "", rec.cb, time.Hour)
	defer s.Stop()

	rec.wait(t, 1, time.Second)
	if rec.got[0] != nil {
		t.Errorf("expected nil on failure, got %+v", rec.got[0])
	}
}

func TestTicksDoNotWaitForSlowFetch(t *testing.T) {
	src := &fakeSource{delay: 100 * time.Millisecond}
	rec := newRecorder()
	s := New(src, time.Second).StartSession("dev", "", rec.cb, 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	s.Stop()
	if n := src.calls.Load(); n < 3 {
		t.Errorf("expected overlapping fetches, got %d started", n)
	}
	s.Wait()
}

func TestStateString(t *testing.T) {
	if StateIdle.String() != "idle" || StatePolling.String() != "polling" || StateStopped.String() != "stopped" {
		t.Error("unexpected state names")
	}
}

func TestNoFetchAfterStopReturns(t *testing.T) {
	late := 0
	for i := 0; i < 2000; i++ {
		src := &fakeSource{}
		s := New(src, time.Second).StartSession("dev", "", nil, time.Microsecond)
		time.Sleep(time.Duration(i%5) * time.Microsecond)
		s.Stop()
		s.Wait()
		before := src.calls.Load()
		time.Sleep(100 * time.Microsecond)
		if src.calls.Load() != before {
			late++
		}
	}
	if late != 0 {
		t.Fatalf("%d sessions issued a fetch after Stop and Wait returned", late)
	}
}

func TestSessionLifecycle(t *testing.T) {
	src := &fakeSource{}
	rec := newRecorder()
	s := New(src, time.Second).NewSession("dev", "", rec.cb)
	if s.State() != StateIdle {
		t.Fatalf("expected idle, got %s", s.State())
	}
	time.Sleep(10 * time.Millisecond)
	if src.calls.Load() != 0 {
		t.Fatal("idle session must not fetch")
	}

	s.Start(time.Hour)
	if s.State() != StatePolling {
		t.Fatalf("expected polling, got %s", s.State())
	}
	rec.wait(t, 1, time.Second)
	s.Start(time.Hour) // already polling
	s.Stop()
	s.Wait()
	if s.State() != StateStopped || src.calls.Load() != 1 {
		t.Errorf("expected stopped after one fetch, got %s with %d", s.State(), src.calls.Load())
	}

	idle := New(src, time.Second).NewSession("dev", "", nil)
	idle.Stop()
	idle.Start(time.Hour)
	idle.Wait()
	if idle.State() != StateStopped || src.calls.Load() != 1 {
		t.Error("a stopped session must not start")
	}
}
