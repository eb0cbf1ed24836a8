package status

import (
	"strings"
	"sync"
	"testing"
)

func TestMetricMapGetReturnsCachedPointer(t *testing.T) {
	m := NewMetricMap[AtomicString]()

	a := m.Get("unit.role")
	b := m.Get("unit.role")
	if a != b {
		t.Error("Expected repeated Get to return the same pointer")
	}
	if m.Count() != 1 {
		t.Errorf("Expected 1 metric, got %d", m.Count())
	}
}

func TestMetricMapKeysSorted(t *testing.T) {
	r := NewRegistry()
	r.Counters.Get(RadioSent)
	r.Counters.Get(RadioDecodeErrors)
	r.Counters.Get(UnitFrames)

	keys := r.Counters.Keys()
	want := []string{RadioDecodeErrors, RadioSent, UnitFrames}
	if len(keys) != len(want) {
		t.Fatalf("Expected %d keys, got %v", len(want), keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Key %d: expected %s, got %s", i, want[i], keys[i])
		}
	}
}

func TestRegistryConcurrentCounters(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				r.Counters.Get(RadioReceived).Add(1)
			}
		}()
	}
	wg.Wait()

	if got := r.Counters.Get(RadioReceived).Load(); got != 8000 {
		t.Errorf("Expected 8000, got %d", got)
	}
}

func TestRegistrySummary(t *testing.T) {
	r := NewRegistry()
	r.Counters.Get(RadioSent).Store(12)
	r.Labels.Get(UnitRole).Store("follower#2")

	got := r.Summary(UnitRole, RadioSent, "missing.key")
	if got != "role=follower#2 sent=12" {
		t.Errorf("Unexpected summary %q", got)
	}
}

func TestAtomicStringTruncates(t *testing.T) {
	var s AtomicString
	if s.Load() != "" {
		t.Error("Expected zero value to read as empty")
	}

	s.Store(strings.Repeat("x", MaxLabelLen+10))
	if len(s.Load()) != MaxLabelLen {
		t.Errorf("Expected truncation to %d, got %d", MaxLabelLen, len(s.Load()))
	}
}
