package network

import (
	"testing"

	"github.com/lixenwraith/tile-wall/status"
)

func newTestRadio(bus *Bus, group int, id string, reg *status.Registry) (*Radio, *[]Message) {
	cfg := DefaultConfig()
	cfg.Group = group
	cfg.UnitID = id

	var got []Message
	r := NewRadio(cfg, bus.Port(), reg)
	r.SetHandler(func(m Message) { got = append(got, m) })
	r.Start()
	return r, &got
}

func TestRadioDeliversDecodedMessages(t *testing.T) {
	bus := NewBus(BusConfig{})
	regA, regB := status.NewRegistry(), status.NewRegistry()
	a, _ := newTestRadio(bus, 1, "aaaa", regA)
	_, gotB := newTestRadio(bus, 1, "bbbb", regB)

	if err := a.Broadcast(DisplayCoords(6, 3)); err != nil {
		t.Fatalf("Broadcast failed: %v", err)
	}

	if len(*gotB) != 1 || (*gotB)[0] != DisplayCoords(6, 3) {
		t.Fatalf("Expected DisplayCoords(6,3), got %+v", *gotB)
	}
	if regA.Counters.Get(status.RadioSent).Load() != 1 {
		t.Error("Expected sender sent counter to be 1")
	}
	if regB.Counters.Get(status.RadioReceived).Load() != 1 {
		t.Error("Expected receiver recv counter to be 1")
	}
}

func TestRadioFiltersOtherGroupsAndSelf(t *testing.T) {
	bus := NewBus(BusConfig{})
	reg := status.NewRegistry()
	a, _ := newTestRadio(bus, 1, "aaaa", status.NewRegistry())
	_, gotOther := newTestRadio(bus, 2, "cccc", reg)
	// Same ID on the same group, as if our own frame came back via multicast loopback
	_, gotEcho := newTestRadio(bus, 1, "aaaa", status.NewRegistry())

	a.Broadcast(StartAnimation())

	if len(*gotOther) != 0 {
		t.Error("Frame from another group should be dropped")
	}
	if reg.Counters.Get(status.RadioForeign).Load() != 1 {
		t.Error("Expected foreign counter to be 1")
	}
	if len(*gotEcho) != 0 {
		t.Error("Own frame should be dropped")
	}
}

func TestRadioCountsDecodeErrors(t *testing.T) {
	bus := NewBus(BusConfig{})
	reg := status.NewRegistry()
	_, got := newTestRadio(bus, 1, "bbbb", reg)

	raw := bus.Port()
	raw.Start()
	raw.Send([]byte("garbage"))
	raw.Send([]byte("1|zzzz|ASSIGNx"))
	raw.Send([]byte("1|zzzz|ASSIGN3"))

	if reg.Counters.Get(status.RadioDecodeErrors).Load() != 2 {
		t.Errorf("Expected 2 decode errors, got %d", reg.Counters.Get(status.RadioDecodeErrors).Load())
	}
	if len(*got) != 1 || (*got)[0] != AssignAddress(3) {
		t.Errorf("Expected only AssignAddress(3) delivered, got %+v", *got)
	}
}

func TestRadioBroadcastRejectsInvalidMessage(t *testing.T) {
	bus := NewBus(BusConfig{})
	reg := status.NewRegistry()
	r, _ := newTestRadio(bus, 1, "aaaa", reg)

	if err := r.Broadcast(AssignAddress(0)); err == nil {
		t.Error("Expected error for invalid assignment")
	}
	if reg.Counters.Get(status.RadioSendErrors).Load() != 1 {
		t.Error("Expected send error counted")
	}
}
