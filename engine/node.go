package engine

import (
	"github.com/lixenwraith/tile-wall/constants"
	"github.com/lixenwraith/tile-wall/network"
	"github.com/lixenwraith/tile-wall/physics"
	"github.com/lixenwraith/tile-wall/render"
)

// Event is an input to the node state machine
type Event interface{ isEvent() }

// PressLeader is the leader-select button
type PressLeader struct{}

// PressStart is the start-animation button
type PressStart struct{}

// PollTick fires every poll interval
type PollTick struct{}

// FrameTick fires every animation tick once the leader started the animation
type FrameTick struct{}

// Received wraps a decoded radio message
type Received struct {
	Msg network.Message
}

func (PressLeader) isEvent() {}
func (PressStart) isEvent()  {}
func (PollTick) isEvent()    {}
func (FrameTick) isEvent()   {}
func (Received) isEvent()    {}

// Effect is an output of the node state machine, executed by the runtime in order
type Effect interface{ isEffect() }

// Broadcast sends a message over the radio
type Broadcast struct {
	Msg network.Message
}

// Plot lights a local pixel, already bounds-checked
type Plot struct {
	X, Y int
}

// ClearTile darkens the whole local tile
type ClearTile struct{}

// ShowNumber displays the status readout, render.NoNumber while unassigned
type ShowNumber struct {
	N int
}

// HideNumber removes the status readout
type HideNumber struct{}

// Chirp plays a short feedback tone
type Chirp struct {
	Hz int
}

// StartFrames asks the runtime to begin delivering FrameTick events
type StartFrames struct{}

func (Broadcast) isEffect()   {}
func (Plot) isEffect()        {}
func (ClearTile) isEffect()   {}
func (ShowNumber) isEffect()  {}
func (HideNumber) isEffect()  {}
func (Chirp) isEffect()       {}
func (StartFrames) isEffect() {}

// Node is the complete protocol state of one unit
// Handle is a pure transition; a Node value is never mutated in place
type Node struct {
	Role Role

	// StatusHidden is set once the animation started; the readout stays off afterwards
	StatusHidden bool
}

// NewNode returns an unassigned node showing its status readout
func NewNode() Node {
	return Node{Role: Unassigned{}}
}

// Handle applies one event and returns the next state with the effects to run
func (n Node) Handle(ev Event) (Node, []Effect) {
	switch ev := ev.(type) {
	case PressLeader:
		return n.pressLeader()
	case PressStart:
		return n.pressStart()
	case PollTick:
		return n.pollTick()
	case FrameTick:
		return n.frameTick()
	case Received:
		return n.receive(ev.Msg)
	}
	return n, nil
}

// pressLeader claims leadership; first press wins, later presses are no-ops
func (n Node) pressLeader() (Node, []Effect) {
	if _, ok := n.Role.(Unassigned); !ok {
		return n, nil
	}
	n.Role = Leader{GroupSize: 1, Body: physics.NewBody()}
	return n, n.announce(0)
}

// pressStart starts or restarts the animation, leader only
func (n Node) pressStart() (Node, []Effect) {
	l, ok := n.Role.(Leader)
	if !ok {
		return n, nil
	}
	l.Body = physics.NewBody()
	l.Animating = true
	n.Role = l
	n.StatusHidden = true

	return n, []Effect{
		Broadcast{Msg: network.StartAnimation()},
		ClearTile{},
		HideNumber{},
		StartFrames{},
	}
}

func (n Node) pollTick() (Node, []Effect) {
	if _, ok := n.Role.(Unassigned); !ok {
		return n, nil
	}
	effects := []Effect{Broadcast{Msg: network.RequestAddress()}}
	if !n.StatusHidden {
		effects = append(effects, ShowNumber{N: render.NoNumber})
	}
	return n, effects
}

// frameTick is one leader animation step: clear, advance, publish, draw own slice
func (n Node) frameTick() (Node, []Effect) {
	l, ok := n.Role.(Leader)
	if !ok || !l.Animating {
		return n, nil
	}

	effects := []Effect{
		Broadcast{Msg: network.ClearAll()},
		ClearTile{},
	}

	jumped := l.Body.Step(l.GroupSize)
	n.Role = l

	effects = append(effects, Broadcast{Msg: network.DisplayCoords(l.Body.X, l.Body.Y)})
	if x, y, ok := render.MapToLocal(l.Body.X, l.Body.Y, 0); ok {
		effects = append(effects, Plot{X: x, Y: y})
	}
	if jumped {
		effects = append(effects, Chirp{Hz: constants.JumpToneHz})
	}
	return n, effects
}

func (n Node) receive(msg network.Message) (Node, []Effect) {
	switch msg.Type {
	case network.MsgRequestAddress:
		l, ok := n.Role.(Leader)
		if !ok {
			return n, nil
		}
		index := l.GroupSize
		l.GroupSize++
		n.Role = l
		return n, []Effect{Broadcast{Msg: network.AssignAddress(index)}}

	case network.MsgAssignAddress:
		if _, ok := n.Role.(Unassigned); !ok {
			return n, nil
		}
		n.Role = Follower{Index: msg.Index}
		return n, n.announce(msg.Index)

	case network.MsgStartAnimation:
		n.StatusHidden = true
		return n, []Effect{ClearTile{}, HideNumber{}}

	case network.MsgClearAll:
		return n, []Effect{ClearTile{}}

	case network.MsgDisplayCoords:
		index, ok := ScreenIndex(n.Role)
		if !ok {
			return n, nil
		}
		if x, y, ok := render.MapToLocal(msg.X, msg.Y, index); ok {
			return n, []Effect{Plot{X: x, Y: y}}
		}
	}
	return n, nil
}

// announce is the feedback when a role is resolved
func (n Node) announce(index int) []Effect {
	effects := []Effect{Chirp{Hz: constants.AssignToneHz}}
	if !n.StatusHidden {
		effects = append(effects, ShowNumber{N: index})
	}
	return effects
}
