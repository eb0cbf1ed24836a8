package audio

import (
	"testing"
	"time"

	"github.com/lixenwraith/tile-wall/constants"
)

func TestToneLength(t *testing.T) {
	streamer, err := tone(constants.JumpToneHz, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("tone failed: %v", err)
	}

	buf := make([][2]float64, 256)
	total := 0
	for {
		n, ok := streamer.Stream(buf)
		total += n
		if !ok {
			break
		}
	}

	if want := sampleRate.N(50 * time.Millisecond); total != want {
		t.Errorf("Expected %d samples, got %d", want, total)
	}
}

func TestToneRejectsInvalidFrequency(t *testing.T) {
	for _, hz := range []int{0, -10, constants.AudioSampleRate} {
		if _, err := tone(hz, time.Millisecond); err == nil {
			t.Errorf("Expected error for %d Hz", hz)
		}
	}
}

func TestUninitializedManagerIsSilent(t *testing.T) {
	sm := NewSoundManager()

	// Must not panic or block without a speaker
	sm.Play(constants.JumpToneHz)
	sm.SetMuted(true)
	sm.Play(constants.AssignToneHz)
	sm.Cleanup()
}
