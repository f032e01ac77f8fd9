package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
)

// SoundManager owns the speaker and plays the combination pop. A manager
// that failed to initialize stays usable: every play is a no-op.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize sets up the audio system
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100))
	if err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	sm.mixer.Clear()
	sm.initialized = false
}

// Pop plays the short rising pop that accompanies a successful
// combination. Mixer state is guarded by the speaker lock.
func (sm *SoundManager) Pop() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	streamer := NewPopGenerator(sampleRate)
	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
}
