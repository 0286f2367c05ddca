package dedup

import (
	"testing"
	"time"
)

func TestShouldProcessWithinTTL(t *testing.T) {
	d := New(time.Minute, 10)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return now }

	if !d.ShouldProcess("a") {
		t.Fatal("expected first sighting to be processed")
	}
	if d.ShouldProcess("a") {
		t.Error("expected duplicate within ttl to be dropped")
	}

	now = now.Add(2 * time.Minute)
	if !d.ShouldProcess("a") {
		t.Error("expected key to be processed again after ttl")
	}
}

func TestShouldProcessEmptyID(t *testing.T) {
	d := New(time.Minute, 10)
	for i := 0; i < 3; i++ {
		if !d.ShouldProcess("") {
			t.Fatal("empty id must always be processed")
		}
	}
	if d.Len() != 0 {
		t.Errorf("expected empty ids not to be remembered, got %d keys", d.Len())
	}
}

func TestShouldProcessPayload(t *testing.T) {
	d := New(time.Minute, 10)
	p := []byte(`{"device_id":"RA3E-A46074","temperature":72.1}`)
	if !d.ShouldProcessPayload(p) {
		t.Fatal("expected first payload to be processed")
	}
	if d.ShouldProcessPayload([]byte(string(p))) {
		t.Error("expected identical payload to be dropped")
	}
	if !d.ShouldProcessPayload([]byte(`{"device_id":"RA3E-A46074","temperature":72.2}`)) {
		t.Error("expected different payload to be processed")
	}
}

func TestCapacityIsBounded(t *testing.T) {
	d := New(time.Hour, 3)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return now }

	for _, k := range []string{"a", "b", "c", "d", "e"} {
		now = now.Add(time.Second)
		d.ShouldProcess(k)
	}
	if d.Len() > 3 {
		t.Errorf("expected at most 3 keys, got %d", d.Len())
	}
	if d.ShouldProcess("e") {
		t.Error("expected most recent key to survive eviction")
	}
}

func TestNilDeduper(t *testing.T) {
	var d *Deduper
	if !d.ShouldProcess("x") {
		t.Error("nil deduper must process everything")
	}
}
