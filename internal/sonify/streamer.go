// Package sonify plays a figure's traced curve as stereo audio, X on the
// left channel and Y on the right, so that an XY oscilloscope redraws the
// outline.
package sonify

import (
	"math"

	"github.com/faiface/beep"

	"github.com/iburimskiy/epicycles/internal/epicycle"
)

// Streamer is a beep.Streamer that traces a figure a fixed number of times
// per second. It only calls Figure.TipAt and never the figure's cached state, so it may
// run on the speaker goroutine while the renderer advances the same figure.
type Streamer struct {
	figure     *epicycle.Figure
	sampleRate beep.SampleRate
	rate       float64
	gain       float64
	pos        int64
}

// NewStreamer returns a streamer drawing the figure rate times per second.
// Output is scaled by gain/Extent so that it stays within [-gain, gain].
func NewStreamer(f *epicycle.Figure, sr beep.SampleRate, rate, gain float64) *Streamer {
	s := &Streamer{
		figure:     f,
		sampleRate: sr,
		rate:       rate,
	}
	if e := f.Extent(); e > 0 {
		s.gain = gain / e
	}
	return s
}

// At returns the sample for absolute sample index i.
func (s *Streamer) At(i int64) [2]float64 {
	phase := math.Mod(float64(i)*s.rate/float64(s.sampleRate), 1)
	v := s.figure.TipAt(phase * s.figure.Period()).Sub(s.figure.Origin()).Mul(s.gain)
	// Screen Y grows downwards; the scope's grows upwards.
	return [2]float64{clamp(v.X), clamp(-v.Y)}
}

func (s *Streamer) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		samples[i] = s.At(s.pos)
		s.pos++
	}
	return len(samples), true
}

func (s *Streamer) Err() error { return nil }

func clamp(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
