// Package game renders an epicycle figure with ebiten: the rotating arrows
// and their circles, the traced trail, an optional grid and a scope view of
// the audio output.
package game

import (
	"errors"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/epicycles/internal/config"
	"github.com/iburimskiy/epicycles/internal/geom"
	"github.com/iburimskiy/epicycles/internal/log"
	"github.com/iburimskiy/epicycles/internal/scene"
	"github.com/iburimskiy/epicycles/internal/sonify"
)

type Game struct {
	cfg    config.Config
	lg     *log.Logger
	scene  *scene.Scene
	player *sonify.Player

	// t is the figure time; it only moves while not paused.
	t     float64
	trail *trail
	// guide is one full period of the figure's path.
	guide []geom.Point

	// input edge detection
	prevKey map[ebiten.Key]bool

	// button state
	buttonHovered bool
	buttonPressed bool

	paused    bool
	showGrid  bool
	showGuide bool
	audio     bool
	lastErr   error
}

// New returns a game showing s, which may be nil until an SVG is opened.
// player may be nil, in which case audio is unavailable.
func New(cfg config.Config, s *scene.Scene, player *sonify.Player, lg *log.Logger) *Game {
	g := &Game{
		cfg:       cfg,
		lg:        lg,
		player:    player,
		prevKey:   map[ebiten.Key]bool{},
		showGrid:  true,
		showGuide: true,
	}
	g.setScene(s)
	if cfg.Audio {
		g.setAudio(true)
	}
	return g
}

func (g *Game) setScene(s *scene.Scene) {
	g.scene = s
	g.t = 0
	period := 0.0
	if s != nil {
		s.Figure.Advance(0)
		period = s.Figure.Period()
	}
	g.trail = newTrail(trailSize(period, config.TPS, config.TrailSize))
	g.guide = nil
	if s != nil {
		g.trail.add(s.Figure.Tip())
		if period > 0 {
			g.guide = s.Figure.Trace(config.GuidePoints)
			g.guide = append(g.guide, g.guide[0])
		}
	}
	if g.audio {
		g.setAudio(true)
	}
}

func (g *Game) setAudio(on bool) {
	g.audio = on
	if g.player == nil {
		g.audio = false
		return
	}
	if !on || g.scene == nil {
		g.player.Stop()
		return
	}
	if err := g.player.Play(g.scene.Figure); err != nil {
		if !errors.Is(err, sonify.ErrNoFigure) {
			g.fail("audio", err)
		}
		g.audio = false
		return
	}
	g.player.SetPaused(g.paused)
	g.lg.Debugf("audio traces the figure %g times per second at %d Hz", g.player.Rate, g.player.SampleRate)
}

func (g *Game) fail(what string, err error) {
	g.lastErr = err
	g.lg.Error(what+" failed", slog.Any("error", err))
}

// step advances the figure by one tick and records the new tip.
func (g *Game) step() {
	if g.scene == nil || g.paused {
		return
	}
	g.t += 1.0 / config.TPS
	g.scene.Figure.Advance(g.t)
	g.trail.add(g.scene.Figure.Tip())
}

func (g *Game) togglePause() {
	g.paused = !g.paused
	if g.audio {
		g.player.SetPaused(g.paused)
	}
}

func (g *Game) Update() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	mouseX, mouseY := ebiten.CursorPosition()
	g.buttonHovered = mouseX >= config.ButtonX && mouseX <= config.ButtonX+config.ButtonWidth &&
		mouseY >= config.ButtonY && mouseY <= config.ButtonY+config.ButtonHeight

	if g.buttonHovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.buttonPressed = true
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if g.buttonPressed && g.buttonHovered {
			g.openFileDialog()
		}
		g.buttonPressed = false
	}

	if justPressed(ebiten.KeyO) {
		g.openFileDialog()
	}
	if justPressed(ebiten.KeySpace) {
		g.togglePause()
	}
	if justPressed(ebiten.KeyC) {
		g.trail.clear()
	}
	if justPressed(ebiten.KeyG) {
		g.showGrid = !g.showGrid
	}
	if justPressed(ebiten.KeyT) {
		g.showGuide = !g.showGuide
	}
	if justPressed(ebiten.KeyA) {
		g.setAudio(!g.audio)
	}
	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.step()
	return nil
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}

// openFileDialog asks for an SVG and switches to it. The previous scene is
// kept if loading fails.
func (g *Game) openFileDialog() {
	filename, err := zenity.SelectFile(
		zenity.Title("Open SVG"),
		zenity.FileFilters{{
			Name:     "SVG images",
			Patterns: []string{"*.svg"},
		}},
	)
	if err != nil {
		if !errors.Is(err, zenity.ErrCanceled) {
			g.fail("file dialog", err)
		}
		return
	}

	s, err := scene.Load(filename, g.cfg, g.lg)
	if err != nil {
		g.fail("load", err)
		return
	}
	g.lg.Info("Loaded SVG", slog.String("svg", filename), slog.Int("arrows", s.Figure.Len()))
	g.lastErr = nil
	g.setScene(s)
}
