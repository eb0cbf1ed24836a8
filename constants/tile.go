package constants

import "time"

// Tile geometry
const (
	// TileSize is the width and height of one unit's pixel grid
	TileSize = 5

	// TileMax is the largest local coordinate on either axis
	TileMax = TileSize - 1
)

// Protocol timing
const (
	// PollInterval is how often an unassigned unit asks for an address
	PollInterval = 500 * time.Millisecond

	// TickInterval is the leader's animation frame interval
	TickInterval = 200 * time.Millisecond
)

// Bouncing point physics
const (
	// JumpImpulse is the vertical velocity applied on a grounded wall hit
	JumpImpulse = -3

	// FloorRebound is the velocity set when the point lands on the floor
	FloorRebound = -2

	// CeilingRebound is the velocity set when the point reaches the top row
	CeilingRebound = 1

	// Gravity is added to vertical velocity every tick
	Gravity = 1

	// FloorY is the bottom row of the canvas
	FloorY = TileMax
)

// Radio defaults
const (
	// DefaultGroup mirrors the radio group all units share out of the box
	DefaultGroup = 1

	// DefaultMulticastAddr is the IPv4 group standing in for the radio channel
	DefaultMulticastAddr = "239.255.42.99:42420"

	// MaxDatagramSize bounds a single radio frame
	MaxDatagramSize = 256

	// InboxSize is the per-unit receive queue depth before messages drop
	InboxSize = 64
)

// Audio feedback
const (
	JumpToneHz       = 880
	AssignToneHz     = 660
	ToneDuration     = 50 * time.Millisecond
	AudioSampleRate  = 44100
	AudioBufferDelay = 100 * time.Millisecond
)
