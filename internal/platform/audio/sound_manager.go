// Package audio plays the game's sound effects and background music through
// the system speaker. A SoundManager that fails to initialize stays silent.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

const (
	sampleRate = beep.SampleRate(44100)
	bufferTime = 100 * time.Millisecond
)

var _ core.AudioSink = (*SoundManager)(nil)

// speakerLock guards streamers that the speaker goroutine is reading.
type speakerLock struct{}

func (speakerLock) Lock()   { speaker.Lock() }
func (speakerLock) Unlock() { speaker.Unlock() }

// SoundManager implements core.AudioSink on top of beep.
type SoundManager struct {
	mu          sync.Mutex
	cfg         config.AudioConfig
	stream      sync.Locker
	mixer       *beep.Mixer
	music       *effects.Volume
	musicCtrl   *beep.Ctrl
	musicVolume float64
	initialized bool
}

// NewSoundManager creates a sound manager. Call Initialize to open the speaker.
func NewSoundManager(cfg config.AudioConfig) *SoundManager {
	return &SoundManager{cfg: cfg}
}

// Initialize opens the speaker and starts the music loop.
// Disabled audio initializes to a silent manager without touching the device.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.cfg.Enabled {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(bufferTime)); err != nil {
		return err
	}

	sm.attach(speakerLock{})
	speaker.Play(sm.mixer)
	return nil
}

// attach builds the mixer graph. The caller holds sm.mu.
func (sm *SoundManager) attach(stream sync.Locker) {
	sm.stream = stream
	sm.mixer = &beep.Mixer{}
	sm.musicVolume = sm.cfg.MusicMin
	vol, silent := gain(sm.musicVolume)
	sm.music = &effects.Volume{
		Streamer: newMusicGenerator(sampleRate),
		Base:     2,
		Volume:   vol,
		Silent:   silent,
	}
	sm.musicCtrl = &beep.Ctrl{Streamer: sm.music}
	sm.mixer.Add(sm.musicCtrl)
	sm.initialized = true
}

// Cleanup stops all sounds.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	sm.stream.Lock()
	sm.musicCtrl.Paused = true
	sm.mixer.Clear()
	sm.stream.Unlock()

	// beep has no speaker Close; an empty mixer keeps the device quiet.
	sm.initialized = false
}

// PlaySound queues a sound effect.
func (sm *SoundManager) PlaySound(s core.Sound) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	st := soundStreamer(s, sampleRate)
	if st == nil {
		return
	}

	sm.stream.Lock()
	sm.mixer.Add(withVolume(st, sm.cfg.SFXVolume))
	sm.stream.Unlock()
}

// SetMusicVolume sets the music gain in [0, 1].
func (sm *SoundManager) SetMusicVolume(v float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	v = core.ClampF(v, 0, 1)
	if !sm.initialized || v == sm.musicVolume {
		return
	}
	sm.musicVolume = v

	vol, silent := gain(v)
	sm.stream.Lock()
	sm.music.Volume = vol
	sm.music.Silent = silent
	sm.stream.Unlock()
}

// MusicVolume returns the last music gain applied.
func (sm *SoundManager) MusicVolume() float64 {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.musicVolume
}

// gain converts a linear level to a base-2 effects.Volume setting.
// math.Log2(0) is -Inf, so zero maps to silence.
func gain(v float64) (volume float64, silent bool) {
	if v <= 0 {
		return 0, true
	}
	return math.Log2(v), false
}

func withVolume(s beep.Streamer, v float64) beep.Streamer {
	vol, silent := gain(v)
	return &effects.Volume{Streamer: s, Base: 2, Volume: vol, Silent: silent}
}
