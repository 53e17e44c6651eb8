package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Frames per second requested from the platform (default 60)
	Seed     int64  // RNG seed for deterministic gameplay
	Player   string // Display name stored alongside scores

	// Audio receives sound requests. Nil means silent.
	Audio AudioSink
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// AudioOrNop returns the configured sink, or a silent one.
func (c RuntimeConfig) AudioOrNop() AudioSink {
	if c.Audio == nil {
		return NopAudio{}
	}
	return c.Audio
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	Lines    int  // Lines cleared this round
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
	Started  bool // False while the game waits on its start screen
}

// StepResult is returned by Game.Step() after each simulation frame.
type StepResult struct {
	State GameState

	// LinesCleared is the number of rows removed during this frame.
	LinesCleared int
}
