package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/tile-wall/constants"
)

const sampleRate = beep.SampleRate(constants.AudioSampleRate)

// SoundManager plays short feedback tones through the speaker
// Uninitialized or failed managers are silent, so callers never check for audio
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
	duration    time.Duration
}

// NewSoundManager creates a silent manager; call Initialize to open the speaker
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer:    &beep.Mixer{},
		duration: constants.ToneDuration,
	}
}

// Initialize opens the speaker and starts the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(constants.AudioBufferDelay)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// SetMuted silences Play without closing the speaker
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	sm.muted = muted
	sm.mu.Unlock()
}

// Play queues a short sine tone at hz; never blocks on playback
func (sm *SoundManager) Play(hz int) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}

	streamer, err := tone(hz, sm.duration)
	if err != nil {
		return
	}

	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
}

// Cleanup stops playback and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	speaker.Close()
	sm.initialized = false
}

// tone builds a fixed-length sine streamer
func tone(hz int, d time.Duration) (beep.Streamer, error) {
	if hz <= 0 || float64(hz) >= float64(sampleRate)/2 {
		return nil, fmt.Errorf("tone %d Hz outside audible range for %d Hz sampling", hz, sampleRate)
	}
	sine, err := generators.SineTone(sampleRate, float64(hz))
	if err != nil {
		return nil, err
	}
	return beep.Take(sampleRate.N(d), sine), nil
}
