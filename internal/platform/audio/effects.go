package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Note frequencies in Hz.
const (
	noteG3 = 196.00
	noteC4 = 261.63
	noteE4 = 329.63
	noteG4 = 392.00
	noteC5 = 523.25
	noteE5 = 659.25
	noteG5 = 783.99
)

// soundStreamer builds a fresh streamer for one play of the sound.
func soundStreamer(s core.Sound, sr beep.SampleRate) beep.Streamer {
	switch s {
	case core.SoundLock:
		return tone(sr, noteG3, 70*time.Millisecond)
	case core.SoundLineClear:
		return beep.Seq(
			tone(sr, noteC5, 70*time.Millisecond),
			tone(sr, noteE5, 70*time.Millisecond),
			tone(sr, noteG5, 140*time.Millisecond),
		)
	case core.SoundGameOver:
		return beep.Seq(
			tone(sr, noteG4, 180*time.Millisecond),
			tone(sr, noteE4, 180*time.Millisecond),
			tone(sr, noteC4, 180*time.Millisecond),
			tone(sr, noteG3, 420*time.Millisecond),
		)
	}
	return nil
}

// tone is a sine note of duration d with a quadratic fade-out.
func tone(sr beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	n := sr.N(d)
	src, err := generators.SineTone(sr, freq)
	if err != nil {
		return beep.Silence(n)
	}
	return &fade{Streamer: beep.Take(n, src), total: n}
}

// fade scales samples from full gain down to zero over total samples.
type fade struct {
	beep.Streamer
	pos   int
	total int
}

func (f *fade) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.Streamer.Stream(samples)
	for i := range n {
		g := 0.0
		if f.pos < f.total {
			g = 1 - float64(f.pos)/float64(f.total)
		}
		g *= g
		samples[i][0] *= g
		samples[i][1] *= g
		f.pos++
	}
	return n, ok
}

// musicSteps is the bass line, one note per step.
var musicSteps = []float64{110.00, 110.00, 164.81, 130.81, 146.83, 146.83, 130.81, 123.47}

// musicGenerator plays musicSteps forever as plucked bass notes.
type musicGenerator struct {
	sr      beep.SampleRate
	pos     int
	stepLen int
}

func newMusicGenerator(sr beep.SampleRate) *musicGenerator {
	return &musicGenerator{
		sr:      sr,
		stepLen: sr.N(300 * time.Millisecond),
	}
}

func (g *musicGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		note := musicSteps[(g.pos/g.stepLen)%len(musicSteps)]
		t := float64(g.pos%g.stepLen) / float64(g.sr)

		env := math.Exp(-t * 5)
		sample := env * (0.25*math.Sin(2*math.Pi*note*t) + 0.08*math.Sin(2*math.Pi*note*2*t))

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *musicGenerator) Err() error {
	return nil
}
