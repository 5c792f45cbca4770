package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/vi-runner/log"
)

// SoundManager plays short cues through a single speaker mixer.
// Without Initialize every Play is a no-op, so the game runs silently where no device exists.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	master      *effects.Volume
	logger      *log.Logger
	initialized bool
	muted       bool
	played      [SoundDamage + 1]int
}

// NewSoundManager creates a manager with a base-2 master volume exponent
func NewSoundManager(volume float64, logger *log.Logger) *SoundManager {
	mixer := &beep.Mixer{}
	return &SoundManager{
		mixer:  mixer,
		master: &effects.Volume{Streamer: mixer, Base: 2, Volume: volume},
		logger: log.OrNop(logger).Named("audio"),
	}
}

// Initialize opens the speaker; a second call is a no-op
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(sm.master)
	sm.initialized = true
	sm.logger.Info("speaker initialized", log.Int("sample_rate", int(sampleRate)))
	return nil
}

// Cleanup stops all cues and releases the speaker
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

	fields := make([]log.Field, 0, len(sm.played))
	for i, n := range sm.played {
		fields = append(fields, log.Int(Sound(i).String(), n))
	}
	sm.logger.Debug("speaker closed", fields...)
}

// SetMuted silences output without dropping queued cues
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = muted
	if sm.initialized {
		speaker.Lock()
		sm.master.Silent = muted
		speaker.Unlock()
		return
	}
	sm.master.Silent = muted
}

// Play queues s on the mixer
func (sm *SoundManager) Play(s Sound) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}
	st := NewSound(s, sampleRate)
	if st == nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(st)
	speaker.Unlock()
	sm.played[s]++
}

// Muted reports whether output is silenced
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}
