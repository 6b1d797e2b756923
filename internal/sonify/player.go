package sonify

import (
	"errors"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"

	"github.com/iburimskiy/epicycles/internal/epicycle"
)

var ErrNoFigure = errors.New("sonify: no figure to play")

// Player owns the speaker. Play replaces whatever is currently playing.
type Player struct {
	SampleRate beep.SampleRate
	Rate       float64
	Gain       float64
	RingSize   int

	ctrl     *beep.Ctrl
	tap      *Tap
	initDone bool
}

func NewPlayer(sr beep.SampleRate, rate float64, ringSize int) *Player {
	return &Player{
		SampleRate: sr,
		Rate:       rate,
		Gain:       0.8,
		RingSize:   ringSize,
	}
}

// Play starts tracing f on the speaker, initialising it on first use.
func (p *Player) Play(f *epicycle.Figure) error {
	if f == nil || f.Len() == 0 {
		return ErrNoFigure
	}

	// streamer -> tap -> ctrl
	t := NewTap(NewStreamer(f, p.SampleRate, p.Rate, p.Gain), p.RingSize)
	ctrl := &beep.Ctrl{Streamer: t}

	if !p.initDone {
		if err := speaker.Init(p.SampleRate, p.SampleRate.N(time.Second/20)); err != nil {
			return err
		}
		p.initDone = true
	} else {
		speaker.Clear()
	}

	p.ctrl = ctrl
	p.tap = t
	speaker.Play(ctrl)
	return nil
}

// Playing reports whether audio is loaded and not paused.
func (p *Player) Playing() bool {
	if p.ctrl == nil {
		return false
	}
	speaker.Lock()
	defer speaker.Unlock()
	return !p.ctrl.Paused
}

// SetPaused pauses or resumes playback. It is a no-op before Play.
func (p *Player) SetPaused(paused bool) {
	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = paused
	speaker.Unlock()
}

// Tap returns the scope tap of the current stream, or nil.
func (p *Player) Tap() *Tap { return p.tap }

// Stop silences the speaker and forgets the current stream.
func (p *Player) Stop() {
	if !p.initDone {
		return
	}
	speaker.Clear()
	p.ctrl = nil
	p.tap = nil
}
