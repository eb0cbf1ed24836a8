package input

import (
	"errors"
	"time"
)

var ErrGPIOUnsupported = errors.New("gpio buttons not supported on this platform")

// GPIOConfig names the chip and line offsets wired to the two buttons
// Buttons pull the line low when pressed
type GPIOConfig struct {
	Chip        string
	LeaderLine  int
	StartLine   int
	DebounceFor time.Duration
}

// Enabled reports whether a chip was configured
func (c GPIOConfig) Enabled() bool {
	return c.Chip != ""
}

// intentFor maps a line offset to its button intent
func (c GPIOConfig) intentFor(offset int) Intent {
	switch offset {
	case c.LeaderLine:
		return Intent{Type: IntentLeader}
	case c.StartLine:
		return Intent{Type: IntentStart}
	}
	return Intent{}
}
