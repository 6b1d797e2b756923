// Package scene turns an SVG file into an animated epicycle figure using the
// settings in a config.Config.
package scene

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/iburimskiy/epicycles/internal/config"
	"github.com/iburimskiy/epicycles/internal/epicycle"
	"github.com/iburimskiy/epicycles/internal/fourier"
	"github.com/iburimskiy/epicycles/internal/geom"
	"github.com/iburimskiy/epicycles/internal/log"
	"github.com/iburimskiy/epicycles/internal/outline"
	"github.com/iburimskiy/epicycles/internal/svgpath"
)

type Scene struct {
	Name string
	// Outline is the ordered point set the coefficients were computed from,
	// in SVG (or fitted) units.
	Outline      []geom.Point
	Coefficients []complex128
	Frequencies  []int
	Figure       *epicycle.Figure
}

// Load reads an SVG file and builds its scene.
func Load(name string, c config.Config, lg *log.Logger) (*Scene, error) {
	lg = lg.With(slog.String("svg", name))
	start := time.Now()
	paths, err := svgpath.LoadFile(name)
	if err != nil {
		return nil, err
	}
	lg.Stage("load", start, slog.Int("paths", len(paths)))

	s, err := Build(paths, c, lg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	s.Name = filepath.Base(name)
	return s, nil
}

// Build computes the outline, coefficients and figure for paths.
func Build[P outline.Path](paths []P, c config.Config, lg *log.Logger) (*Scene, error) {
	start := time.Now()
	pts, err := outline.Build(paths, outline.Options{
		Step:   c.Step,
		Dense:  c.Dense,
		Points: c.Points,
		Size:   c.Fit,
	})
	if err != nil {
		return nil, err
	}
	lg.Stage("outline", start, slog.Int("points", len(pts)))

	start = time.Now()
	var coeffs []complex128
	if c.FFT {
		coeffs = fourier.CoefficientsFFT(pts, c.Coefficients)
	} else {
		coeffs = fourier.Coefficients(pts, c.Coefficients)
	}
	freqs := fourier.Frequencies(len(coeffs))
	if !c.KeepDC && len(coeffs) > 0 {
		// Centre the drawing on the origin.
		coeffs[0] = 0
	}
	lg.Stage("coefficients", start, slog.Int("coefficients", len(coeffs)), slog.Bool("fft", c.FFT))

	if len(pts) == 0 {
		lg.Warnf("no drawable outline in %d SVG shapes", len(paths))
	}
	return &Scene{
		Outline:      pts,
		Coefficients: coeffs,
		Frequencies:  freqs,
		Figure:       epicycle.NewFigure(coeffs, freqs, c.Origin.Resolve(), c.Speed),
	}, nil
}

// Export returns n points of the outline described by the coefficients,
// relative to the figure's origin. The points follow the source outline's
// direction whatever the sign or size of the figure's speed.
func (s *Scene) Export(n int) []geom.Point {
	return fourier.Reconstruct(s.Coefficients, s.Frequencies, n)
}
