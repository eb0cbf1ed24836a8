package network

import (
	"sync"
	"testing"
	"time"
)

type collector struct {
	mu  sync.Mutex
	got []string
}

func (c *collector) handle(b []byte) {
	c.mu.Lock()
	c.got = append(c.got, string(b))
	c.mu.Unlock()
}

func (c *collector) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.got)
}

func startPorts(t *testing.T, bus *Bus, n int) ([]*BusPort, []*collector) {
	t.Helper()
	ports := make([]*BusPort, n)
	cols := make([]*collector, n)
	for i := range ports {
		ports[i] = bus.Port()
		cols[i] = &collector{}
		ports[i].SetHandler(cols[i].handle)
		if err := ports[i].Start(); err != nil {
			t.Fatalf("Start failed: %v", err)
		}
	}
	return ports, cols
}

func TestBusBroadcastSkipsSender(t *testing.T) {
	bus := NewBus(BusConfig{})
	ports, cols := startPorts(t, bus, 3)

	if err := ports[0].Send([]byte("hello")); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if cols[0].len() != 0 {
		t.Error("Sender should not hear its own datagram")
	}
	for i := 1; i < 3; i++ {
		if cols[i].len() != 1 {
			t.Errorf("Port %d: expected 1 datagram, got %d", i, cols[i].len())
		}
	}
}

func TestBusStoppedPortNeitherSendsNorReceives(t *testing.T) {
	bus := NewBus(BusConfig{})
	ports, cols := startPorts(t, bus, 2)
	ports[1].Stop()

	if err := ports[1].Send([]byte("x")); err != ErrNotRunning {
		t.Errorf("Expected ErrNotRunning, got %v", err)
	}
	ports[0].Send([]byte("y"))
	if cols[1].len() != 0 {
		t.Error("Stopped port should not receive")
	}
}

func TestBusManualFlush(t *testing.T) {
	bus := NewBus(BusConfig{Manual: true})
	ports, cols := startPorts(t, bus, 3)

	ports[0].Send([]byte("a"))
	ports[1].Send([]byte("b"))

	if bus.Pending() != 4 {
		t.Fatalf("Expected 4 pending deliveries, got %d", bus.Pending())
	}
	if cols[2].len() != 0 {
		t.Error("Manual bus delivered before Flush")
	}

	if n := bus.Flush(); n != 4 {
		t.Errorf("Expected 4 delivered, got %d", n)
	}
	if cols[2].len() != 2 {
		t.Errorf("Expected port 2 to receive 2 datagrams, got %d", cols[2].len())
	}
}

func TestBusDropAndDuplicate(t *testing.T) {
	lossy := NewBus(BusConfig{DropRate: 1})
	ports, cols := startPorts(t, lossy, 2)
	for i := 0; i < 10; i++ {
		ports[0].Send([]byte("x"))
	}
	if cols[1].len() != 0 {
		t.Errorf("Expected all datagrams dropped, got %d", cols[1].len())
	}

	dup := NewBus(BusConfig{DuplicateRate: 1})
	ports, cols = startPorts(t, dup, 2)
	ports[0].Send([]byte("x"))
	if cols[1].len() != 2 {
		t.Errorf("Expected duplicated delivery, got %d", cols[1].len())
	}
}

func TestBusJitterEventuallyDelivers(t *testing.T) {
	bus := NewBus(BusConfig{Jitter: 5 * time.Millisecond, Seed: 7})
	ports, cols := startPorts(t, bus, 2)

	for i := 0; i < 20; i++ {
		ports[0].Send([]byte("x"))
	}

	deadline := time.Now().Add(time.Second)
	for cols[1].len() < 20 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if cols[1].len() != 20 {
		t.Errorf("Expected 20 datagrams after jitter, got %d", cols[1].len())
	}
}
