package network

import (
	"errors"
	"testing"
)

func TestFrameRoundTrip(t *testing.T) {
	b, err := EncodeFrame(3, "a1b2c3d4", "DISPLAY_COORDS7,2")
	if err != nil {
		t.Fatalf("EncodeFrame failed: %v", err)
	}
	if string(b) != "3|a1b2c3d4|DISPLAY_COORDS7,2" {
		t.Errorf("Unexpected frame %q", b)
	}

	pkt, err := DecodeFrame(b)
	if err != nil {
		t.Fatalf("DecodeFrame failed: %v", err)
	}
	if pkt.Group != 3 || pkt.Sender != "a1b2c3d4" || pkt.Text != "DISPLAY_COORDS7,2" {
		t.Errorf("Unexpected packet %+v", pkt)
	}
}

func TestFrameTextMayContainSeparator(t *testing.T) {
	b, _ := EncodeFrame(1, "u", "a|b")
	pkt, err := DecodeFrame(b)
	if err != nil {
		t.Fatalf("DecodeFrame failed: %v", err)
	}
	if pkt.Text != "a|b" {
		t.Errorf("Expected text to keep separator, got %q", pkt.Text)
	}
}

func TestFrameErrors(t *testing.T) {
	if _, err := EncodeFrame(1, "", "START"); !errors.Is(err, ErrMalformedFrame) {
		t.Errorf("Expected empty sender rejected, got %v", err)
	}
	if _, err := EncodeFrame(1, "a|b", "START"); !errors.Is(err, ErrMalformedFrame) {
		t.Errorf("Expected sender with separator rejected, got %v", err)
	}

	for _, raw := range []string{"", "START", "1|START", "x|u|START", "1||START"} {
		if _, err := DecodeFrame([]byte(raw)); !errors.Is(err, ErrMalformedFrame) {
			t.Errorf("DecodeFrame(%q): expected ErrMalformedFrame, got %v", raw, err)
		}
	}
}
