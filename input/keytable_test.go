package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestFromEventKeys(t *testing.T) {
	tests := []struct {
		name string
		ev   tcell.Event
		want Intent
	}{
		{"a", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), Intent{Type: IntentLeader}},
		{"B", tcell.NewEventKey(tcell.KeyRune, 'B', tcell.ModShift), Intent{Type: IntentStart}},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), Intent{Type: IntentQuit}},
		{"esc", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), Intent{Type: IntentQuit}},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), Intent{Type: IntentQuit}},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), Intent{Type: IntentFocusNext}},
		{"left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), Intent{Type: IntentFocusPrev}},
		{"3", tcell.NewEventKey(tcell.KeyRune, '3', tcell.ModNone), Intent{Type: IntentFocus, Index: 3}},
		{"p", tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone), Intent{Type: IntentPower}},
		{"m", tcell.NewEventKey(tcell.KeyRune, 'm', tcell.ModNone), Intent{Type: IntentMute}},
		{"z", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), Intent{}},
		{"resize", tcell.NewEventResize(80, 24), Intent{Type: IntentResize}},
	}

	for _, tt := range tests {
		if got := FromEvent(tt.ev); got != tt.want {
			t.Errorf("%s: expected %+v, got %+v", tt.name, tt.want, got)
		}
	}
}

type pressCounter struct {
	leader, start int
}

func (p *pressCounter) PressLeader() { p.leader++ }
func (p *pressCounter) PressStart()  { p.start++ }

func TestApply(t *testing.T) {
	var p pressCounter

	if !Apply(Intent{Type: IntentLeader}, &p) || !Apply(Intent{Type: IntentStart}, &p) {
		t.Error("Expected button intents to apply")
	}
	if Apply(Intent{Type: IntentQuit}, &p) {
		t.Error("Quit is not a button")
	}
	if p.leader != 1 || p.start != 1 {
		t.Errorf("Expected one press each, got %+v", p)
	}
}
