package input

import "github.com/gdamore/tcell/v2"

// specialKeys maps non-rune keys to intents
var specialKeys = map[tcell.Key]IntentType{
	tcell.KeyCtrlC:   IntentQuit,
	tcell.KeyEscape:  IntentQuit,
	tcell.KeyTab:     IntentFocusNext,
	tcell.KeyRight:   IntentFocusNext,
	tcell.KeyBacktab: IntentFocusPrev,
	tcell.KeyLeft:    IntentFocusPrev,
}

// runeKeys maps printable keys to intents, case-insensitive for letters
var runeKeys = map[rune]IntentType{
	'a': IntentLeader,
	'A': IntentLeader,
	'b': IntentStart,
	'B': IntentStart,
	'q': IntentQuit,
	'm': IntentMute,
	'M': IntentMute,
	'p': IntentPower,
	'P': IntentPower,
}

// FromEvent resolves a tcell event to an intent
func FromEvent(ev tcell.Event) Intent {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return fromKey(ev)
	case *tcell.EventResize:
		return Intent{Type: IntentResize}
	}
	return Intent{}
}

func fromKey(ev *tcell.EventKey) Intent {
	if ev.Key() != tcell.KeyRune {
		return Intent{Type: specialKeys[ev.Key()]}
	}

	r := ev.Rune()
	if r >= '0' && r <= '9' {
		return Intent{Type: IntentFocus, Index: int(r - '0')}
	}
	return Intent{Type: runeKeys[r]}
}
