package engine

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/tile-wall/constants"
	"github.com/lixenwraith/tile-wall/network"
	"github.com/lixenwraith/tile-wall/render"
	"github.com/lixenwraith/tile-wall/status"
)

// Broadcaster sends protocol messages, fire-and-forget
type Broadcaster interface {
	Broadcast(msg network.Message) error
}

// Sounder plays a short tone; implementations must not block
type Sounder interface {
	Play(hz int)
}

// UnitConfig holds runtime timing and queue sizes
type UnitConfig struct {
	PollInterval time.Duration
	TickInterval time.Duration
	InboxSize    int
}

// DefaultUnitConfig returns the protocol's standard timing
func DefaultUnitConfig() UnitConfig {
	return UnitConfig{
		PollInterval: constants.PollInterval,
		TickInterval: constants.TickInterval,
		InboxSize:    constants.InboxSize,
	}
}

// Unit runs one display unit: a single goroutine owns the Node and executes its effects
// Radio callbacks and buttons only enqueue; a full queue drops the input like a lost packet
type Unit struct {
	config  UnitConfig
	clock   Clock
	radio   Broadcaster
	surface render.Surface
	sound   Sounder

	node         Node
	framesWanted bool

	inbox  chan network.Message
	events chan Event

	running atomic.Bool
	mu      sync.RWMutex // guards node for Snapshot readers

	statDropped *atomic.Int64
	statFrames  *atomic.Int64
	statPlots   *atomic.Int64
	statRole    *status.AtomicString
}

// NewUnit wires a unit to its radio, surface and clock; sound may be nil
func NewUnit(cfg UnitConfig, clock Clock, radio Broadcaster, surface render.Surface, sound Sounder, reg *status.Registry) *Unit {
	if cfg.InboxSize <= 0 {
		cfg.InboxSize = constants.InboxSize
	}
	u := &Unit{
		config:      cfg,
		clock:       clock,
		radio:       radio,
		surface:     surface,
		sound:       sound,
		node:        NewNode(),
		inbox:       make(chan network.Message, cfg.InboxSize),
		events:      make(chan Event, 8),
		statDropped: reg.Counters.Get(status.UnitDropped),
		statFrames:  reg.Counters.Get(status.UnitFrames),
		statPlots:   reg.Counters.Get(status.UnitPlots),
		statRole:    reg.Labels.Get(status.UnitRole),
	}
	u.statRole.Store(u.node.Role.String())
	return u
}

// Deliver queues a received message; safe to call from any goroutine
func (u *Unit) Deliver(msg network.Message) {
	select {
	case u.inbox <- msg:
	default:
		u.statDropped.Add(1)
	}
}

// PressLeader queues the leader-select button
func (u *Unit) PressLeader() {
	u.press(PressLeader{})
}

// PressStart queues the start-animation button
func (u *Unit) PressStart() {
	u.press(PressStart{})
}

func (u *Unit) press(ev Event) {
	select {
	case u.events <- ev:
	default:
		u.statDropped.Add(1)
	}
}

// Snapshot returns a copy of the current node state
func (u *Unit) Snapshot() Node {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.node
}

// Run drives the unit until ctx is cancelled
// Poll ticks run while unassigned; frame ticks start when the node asks for them
func (u *Unit) Run(ctx context.Context) error {
	if !u.running.CompareAndSwap(false, true) {
		return nil
	}
	defer u.running.Store(false)

	poll := u.clock.NewTicker(u.config.PollInterval)
	pollC := poll.C()
	defer func() {
		if poll != nil {
			poll.Stop()
		}
	}()

	var frames Ticker
	var framesC <-chan time.Time
	defer func() {
		if frames != nil {
			frames.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-u.events:
			u.Dispatch(ev)
		case msg := <-u.inbox:
			u.Dispatch(Received{Msg: msg})
		case <-pollC:
			u.Dispatch(PollTick{})
		case <-framesC:
			u.Dispatch(FrameTick{})
		}

		if poll != nil {
			if _, ok := u.Snapshot().Role.(Unassigned); !ok {
				poll.Stop()
				poll, pollC = nil, nil
			}
		}
		if u.framesWanted && frames == nil {
			frames = u.clock.NewTicker(u.config.TickInterval)
			framesC = frames.C()
		}
	}
}

// Drain handles every queued button and message without blocking, returning the count
// Used when the caller drives the unit instead of Run
func (u *Unit) Drain() int {
	n := 0
	for {
		select {
		case ev := <-u.events:
			u.Dispatch(ev)
		case msg := <-u.inbox:
			u.Dispatch(Received{Msg: msg})
		default:
			return n
		}
		n++
	}
}

// Dispatch applies one event to the node and executes the resulting effects in order
func (u *Unit) Dispatch(ev Event) {
	u.mu.Lock()
	prevRole := u.node.Role
	next, effects := u.node.Handle(ev)
	u.node = next
	u.mu.Unlock()

	if next.Role.String() != prevRole.String() {
		u.statRole.Store(next.Role.String())
		log.Printf("unit: role %s -> %s", prevRole, next.Role)
	}
	if _, ok := ev.(FrameTick); ok && len(effects) > 0 {
		u.statFrames.Add(1)
	}

	dirty := false
	for _, eff := range effects {
		switch eff := eff.(type) {
		case Broadcast:
			if err := u.radio.Broadcast(eff.Msg); err != nil {
				log.Printf("unit: broadcast %v: %v", eff.Msg.Type, err)
			}
		case Plot:
			u.surface.Plot(eff.X, eff.Y)
			u.statPlots.Add(1)
			dirty = true
		case ClearTile:
			u.surface.Clear()
			dirty = true
		case ShowNumber:
			u.surface.ShowNumber(eff.N)
			dirty = true
		case HideNumber:
			u.surface.HideNumber()
			dirty = true
		case Chirp:
			if u.sound != nil {
				u.sound.Play(eff.Hz)
			}
		case StartFrames:
			u.framesWanted = true
		}
	}

	if dirty {
		u.surface.Flush()
	}
}
