package core

// Sound identifies a fire-and-forget sound effect requested by a game.
type Sound int

const (
	SoundLock Sound = iota
	SoundLineClear
	SoundGameOver
)

// String returns a human-readable name for the sound.
func (s Sound) String() string {
	switch s {
	case SoundLock:
		return "lock"
	case SoundLineClear:
		return "line_clear"
	case SoundGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// AudioSink receives audio requests from game logic.
// Implementations must not block: games call these from the simulation step.
type AudioSink interface {
	// PlaySound starts a one-shot effect.
	PlaySound(s Sound)

	// SetMusicVolume sets the ambient music volume in [0, 1].
	SetMusicVolume(v float64)
}

// NopAudio is an AudioSink that discards everything.
type NopAudio struct{}

func (NopAudio) PlaySound(Sound)        {}
func (NopAudio) SetMusicVolume(float64) {}
