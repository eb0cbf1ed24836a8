package network

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/lixenwraith/tile-wall/constants"
)

// Config holds radio transport configuration
type Config struct {
	// Group is the radio group; frames from other groups are dropped
	Group int

	// UnitID identifies this unit's frames so its own broadcasts are ignored
	UnitID string

	// Address is the multicast group:port standing in for the radio channel
	Address string

	// Interface names the NIC to join on (empty = system default)
	Interface string

	// Loopback delivers frames to other units on the same host
	Loopback bool

	// TTL bounds multicast hops; 1 keeps the wall on the local segment
	TTL int

	// ReadTimeout bounds each socket read so the read loop notices Stop while idle
	ReadTimeout time.Duration

	// Buffer sizes
	ReadBufferSize int
}

// DefaultConfig returns LAN defaults with a fresh unit ID
func DefaultConfig() *Config {
	return &Config{
		Group:          constants.DefaultGroup,
		UnitID:         NewUnitID(),
		Address:        constants.DefaultMulticastAddr,
		Loopback:       true,
		TTL:            1,
		ReadTimeout:    500 * time.Millisecond,
		ReadBufferSize: 64 * 1024,
	}
}

// NewUnitID returns a random 8-hex-digit unit identifier
func NewUnitID() string {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "00000000"
	}
	return hex.EncodeToString(b[:])
}
