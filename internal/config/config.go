package config

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/iburimskiy/epicycles/internal/geom"
	"github.com/iburimskiy/epicycles/internal/log"
)

const (
	WindowWidth  = 1024
	WindowHeight = 768
	TPS          = 60

	// Longest trail of traced points kept by the renderer.
	TrailSize = 16384
	// Points of the faint outline showing one full period of the figure.
	GuidePoints = 1024

	// Scope panel
	ScopeRingSize = 2048
	ScopeSize     = 160
	ScopeMargin   = 12

	// Button dimensions
	ButtonWidth  = 120
	ButtonHeight = 32
	ButtonX      = 12
	ButtonY      = 12

	GridSpacing = 50
	ArrowHead   = 6
)

var (
	ErrInvalidValue  = errors.New("invalid configuration value")
	ErrInvalidOrigin = errors.New("origin must be x,y")
)

// Origin is a flag.Value holding a screen point written as "x,y". The zero
// value stands for the window centre.
type Origin struct {
	geom.Point
	Given bool
}

func (o *Origin) String() string {
	if o == nil || !o.Given {
		return ""
	}
	return strconv.FormatFloat(o.X, 'g', -1, 64) + "," + strconv.FormatFloat(o.Y, 'g', -1, 64)
}

func (o *Origin) Set(s string) error {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return fmt.Errorf("%q: %w", s, ErrInvalidOrigin)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return fmt.Errorf("%q: %w", s, ErrInvalidOrigin)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return fmt.Errorf("%q: %w", s, ErrInvalidOrigin)
	}
	o.Point = geom.Pt(x, y)
	o.Given = true
	return nil
}

// Resolve returns the configured origin, or the centre of the window.
func (o Origin) Resolve() geom.Point {
	if o.Given {
		return o.Point
	}
	return geom.Pt(WindowWidth/2, WindowHeight/2)
}

type Config struct {
	SVG          string
	Coefficients int     // K
	Points       int     // N
	Step         float64 // sample spacing along each path, in SVG units
	Dense        int     // cap on sampled points before ordering, 0 for none
	Speed        float64
	Origin       Origin
	Fit          float64 // scale outline to this size, 0 to keep SVG units
	KeepDC       bool
	FFT          bool

	Audio     bool
	AudioRate float64 // traced loops per second
	SampleRate int

	Export string

	LogLevel string
	LogDir   string
}

func Default() Config {
	return Config{
		Coefficients: 500,
		Points:       1000,
		Step:         0.01,
		Dense:        2500,
		Speed:        0.01,
		AudioRate:    60,
		SampleRate:   44100,
		LogLevel:     "info",
	}
}

// RegisterFlags binds c's fields to fs, using c's current values as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.SVG, "svg", c.SVG, "SVG file to draw (a file dialog opens if empty)")
	fs.IntVar(&c.Coefficients, "coefficients", c.Coefficients, "number of rotating arrows")
	fs.IntVar(&c.Points, "points", c.Points, "number of outline points fed to the transform")
	fs.Float64Var(&c.Step, "step", c.Step, "distance between path samples, in SVG units")
	fs.IntVar(&c.Dense, "dense", c.Dense, "maximum sampled points before ordering (0 for no limit)")
	fs.Float64Var(&c.Speed, "speed", c.Speed, "revolutions of the base frequency per second")
	fs.Var(&c.Origin, "origin", "screen point x,y the figure is anchored at (default window centre)")
	fs.Float64Var(&c.Fit, "fit", c.Fit, "scale the outline to this many pixels (0 keeps SVG units)")
	fs.BoolVar(&c.KeepDC, "keepdc", c.KeepDC, "keep the DC coefficient instead of centring on the origin")
	fs.BoolVar(&c.FFT, "fft", c.FFT, "compute coefficients with an FFT")
	fs.BoolVar(&c.Audio, "audio", c.Audio, "play the traced curve as XY oscilloscope audio")
	fs.Float64Var(&c.AudioRate, "audiorate", c.AudioRate, "traced loops per second in the audio output")
	fs.StringVar(&c.Export, "export", c.Export, "write the reconstructed outline to this SVG file and exit")
	fs.StringVar(&c.LogLevel, "loglevel", c.LogLevel, "logging level: debug, info, warn, error")
	fs.StringVar(&c.LogDir, "logdir", c.LogDir, "log directory (default user config dir)")
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var errs []error
	bad := func(name string, v any, want string) {
		errs = append(errs, fmt.Errorf("%s %v: %s: %w", name, v, want, ErrInvalidValue))
	}
	if c.Coefficients < 0 {
		bad("coefficients", c.Coefficients, "must not be negative")
	}
	if c.Points < 0 {
		bad("points", c.Points, "must not be negative")
	}
	if !(c.Step > 0) || math.IsInf(c.Step, 0) {
		bad("step", c.Step, "must be positive")
	}
	if c.Dense < 0 {
		bad("dense", c.Dense, "must not be negative")
	}
	if math.IsNaN(c.Speed) || math.IsInf(c.Speed, 0) {
		bad("speed", c.Speed, "must be finite")
	}
	if c.Fit < 0 || math.IsNaN(c.Fit) || math.IsInf(c.Fit, 0) {
		bad("fit", c.Fit, "must be a non-negative size")
	}
	if c.Origin.IsNaN() || c.Origin.IsInf() {
		bad("origin", c.Origin.Point, "must be finite")
	}
	if c.Audio && !(c.AudioRate > 0) {
		bad("audiorate", c.AudioRate, "must be positive")
	}
	if c.SampleRate <= 0 {
		bad("sample rate", c.SampleRate, "must be positive")
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("loglevel: %w", err))
	}
	return errors.Join(errs...)
}
