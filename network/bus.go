package network

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
)

// BusConfig shapes the unreliability of an in-memory radio channel
type BusConfig struct {
	// DropRate is the per-receiver probability a datagram is lost
	DropRate float64

	// DuplicateRate is the per-receiver probability a datagram arrives twice
	DuplicateRate float64

	// Jitter delays each delivery by a random duration in [0, Jitter), reordering traffic
	Jitter time.Duration

	// Manual queues deliveries until Flush; Flush shuffles when Shuffle is set
	Manual  bool
	Shuffle bool

	Seed int64
}

type delivery struct {
	port     *BusPort
	datagram []byte
}

// Bus is a shared broadcast medium for units running in one process
// Senders never hear their own datagrams, matching a half-duplex radio
type Bus struct {
	config BusConfig

	mu      sync.Mutex
	rng     *rand.Rand
	ports   []*BusPort
	pending []delivery
}

// NewBus creates an empty medium
func NewBus(cfg BusConfig) *Bus {
	return &Bus{
		config: cfg,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Port attaches a new transport endpoint to the bus
func (b *Bus) Port() *BusPort {
	b.mu.Lock()
	defer b.mu.Unlock()

	p := &BusPort{bus: b}
	b.ports = append(b.ports, p)
	return p
}

// Flush delivers queued datagrams in manual mode and returns how many were delivered
// Datagrams sent by handlers during Flush are queued for the next call
func (b *Bus) Flush() int {
	b.mu.Lock()
	batch := b.pending
	b.pending = nil
	if b.config.Shuffle {
		b.rng.Shuffle(len(batch), func(i, j int) { batch[i], batch[j] = batch[j], batch[i] })
	}
	b.mu.Unlock()

	for _, d := range batch {
		d.port.deliver(d.datagram)
	}
	return len(batch)
}

// Pending returns the number of queued deliveries
func (b *Bus) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

// broadcast fans a datagram out to every running port except the sender
func (b *Bus) broadcast(from *BusPort, datagram []byte) {
	var now []delivery

	b.mu.Lock()
	for _, p := range b.ports {
		if p == from || !p.running.Load() {
			continue
		}
		copies := 1
		if b.config.DropRate > 0 && b.rng.Float64() < b.config.DropRate {
			copies = 0
		} else if b.config.DuplicateRate > 0 && b.rng.Float64() < b.config.DuplicateRate {
			copies = 2
		}
		for i := 0; i < copies; i++ {
			d := delivery{port: p, datagram: append([]byte(nil), datagram...)}
			switch {
			case b.config.Manual:
				b.pending = append(b.pending, d)
			case b.config.Jitter > 0:
				delay := time.Duration(b.rng.Int63n(int64(b.config.Jitter)))
				time.AfterFunc(delay, func() { d.port.deliver(d.datagram) })
			default:
				now = append(now, d)
			}
		}
	}
	b.mu.Unlock()

	for _, d := range now {
		d.port.deliver(d.datagram)
	}
}

// BusPort is one unit's attachment to a Bus, implementing Transport
type BusPort struct {
	bus *Bus

	handlerMu  sync.RWMutex
	onDatagram func([]byte)

	running atomic.Bool
}

// SetHandler implements Transport
func (p *BusPort) SetHandler(onDatagram func([]byte)) {
	p.handlerMu.Lock()
	p.onDatagram = onDatagram
	p.handlerMu.Unlock()
}

// Start implements Transport
func (p *BusPort) Start() error {
	p.running.Store(true)
	return nil
}

// Stop implements Transport
func (p *BusPort) Stop() error {
	p.running.Store(false)
	return nil
}

// Send implements Transport
func (p *BusPort) Send(b []byte) error {
	if !p.running.Load() {
		return ErrNotRunning
	}
	p.bus.broadcast(p, b)
	return nil
}

func (p *BusPort) deliver(datagram []byte) {
	if !p.running.Load() {
		return
	}
	p.handlerMu.RLock()
	h := p.onDatagram
	p.handlerMu.RUnlock()
	if h != nil {
		h(datagram)
	}
}
