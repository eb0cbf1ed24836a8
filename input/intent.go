package input

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// Unit buttons
	IntentLeader // Button A, 'a'
	IntentStart  // Button B, 'b'

	// System
	IntentQuit   // Ctrl+C, Esc, 'q'
	IntentResize // Terminal resize event
	IntentMute   // 'm', toggles feedback tones

	// Simulator focus
	IntentFocusNext // Tab, Right
	IntentFocusPrev // Shift+Tab, Left
	IntentFocus     // digit keys, Index carries the unit
	IntentPower     // 'p', switches the focused simulated unit on
)

// Intent is a resolved input action
type Intent struct {
	Type  IntentType
	Index int
}

// Buttons is what a button source drives: one unit's A and B inputs
type Buttons interface {
	PressLeader()
	PressStart()
}

// Apply forwards button intents to a unit, reporting whether the intent was a button
func Apply(intent Intent, b Buttons) bool {
	switch intent.Type {
	case IntentLeader:
		b.PressLeader()
	case IntentStart:
		b.PressStart()
	default:
		return false
	}
	return true
}
