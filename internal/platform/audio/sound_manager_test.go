package audio

import (
	"math"
	"sync"
	"testing"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

func attachedManager(t *testing.T) *SoundManager {
	t.Helper()
	sm := NewSoundManager(config.DefaultTetrisConfig().Audio)
	sm.mu.Lock()
	sm.attach(&sync.Mutex{})
	sm.mu.Unlock()
	return sm
}

func drain(t *testing.T, s beep.Streamer, limit int) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for total < limit {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			require.LessOrEqual(t, math.Abs(smp[0]), 1.0)
			require.LessOrEqual(t, math.Abs(smp[1]), 1.0)
		}
		total += n
		if !ok {
			return total
		}
	}
	return total
}

func TestUninitializedManagerIsSilent(t *testing.T) {
	sm := NewSoundManager(config.DefaultTetrisConfig().Audio)

	assert.NotPanics(t, func() {
		sm.PlaySound(core.SoundLock)
		sm.SetMusicVolume(0.7)
		sm.Cleanup()
	})
	assert.Zero(t, sm.MusicVolume())
}

func TestDisabledManagerSkipsSpeaker(t *testing.T) {
	cfg := config.DefaultTetrisConfig().Audio
	cfg.Enabled = false
	sm := NewSoundManager(cfg)

	require.NoError(t, sm.Initialize())
	sm.PlaySound(core.SoundLineClear)
	assert.False(t, sm.initialized)
}

func TestPlaySoundQueuesEffect(t *testing.T) {
	sm := attachedManager(t)
	require.Equal(t, 1, sm.mixer.Len())

	sm.PlaySound(core.SoundLock)
	sm.PlaySound(core.SoundLineClear)
	assert.Equal(t, 3, sm.mixer.Len())

	// Effects drain out of the mixer; the music loop stays.
	drain(t, sm.mixer, sampleRate.N(2e9))
	assert.Equal(t, 1, sm.mixer.Len())
}

func TestSetMusicVolume(t *testing.T) {
	sm := attachedManager(t)
	assert.InDelta(t, 0.2, sm.MusicVolume(), 1e-9)

	sm.SetMusicVolume(0.5)
	assert.InDelta(t, 0.5, sm.MusicVolume(), 1e-9)
	assert.InDelta(t, -1.0, sm.music.Volume, 1e-9)
	assert.False(t, sm.music.Silent)

	sm.SetMusicVolume(-3)
	assert.Zero(t, sm.MusicVolume())
	assert.True(t, sm.music.Silent)

	sm.SetMusicVolume(4)
	assert.InDelta(t, 1.0, sm.MusicVolume(), 1e-9)
	assert.Zero(t, sm.music.Volume)
}

func TestCleanupStopsEverything(t *testing.T) {
	sm := attachedManager(t)
	sm.PlaySound(core.SoundGameOver)

	sm.Cleanup()

	assert.Zero(t, sm.mixer.Len())
	assert.True(t, sm.musicCtrl.Paused)
	sm.PlaySound(core.SoundLock)
	assert.Zero(t, sm.mixer.Len())
}

func TestSoundStreamersFinish(t *testing.T) {
	for _, s := range []core.Sound{core.SoundLock, core.SoundLineClear, core.SoundGameOver} {
		t.Run(s.String(), func(t *testing.T) {
			st := soundStreamer(s, sampleRate)
			require.NotNil(t, st)

			n := drain(t, st, sampleRate.N(5e9))
			assert.Positive(t, n)
			assert.Less(t, n, sampleRate.N(5e9))
		})
	}
	assert.Nil(t, soundStreamer(core.Sound(99), sampleRate))
}

func TestMusicGeneratorLoops(t *testing.T) {
	g := newMusicGenerator(sampleRate)
	limit := g.stepLen * len(musicSteps) * 2

	assert.Equal(t, limit, drain(t, g, limit))
	assert.NoError(t, g.Err())
}

func TestGain(t *testing.T) {
	vol, silent := gain(0)
	assert.True(t, silent)
	assert.Zero(t, vol)

	vol, silent = gain(0.25)
	assert.False(t, silent)
	assert.InDelta(t, -2.0, vol, 1e-9)
}
