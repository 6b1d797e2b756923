package outline

import (
	"errors"
	"fmt"
	"math"

	"github.com/iburimskiy/epicycles/internal/geom"
)

var (
	ErrInvalidStep  = errors.New("sample step must be positive")
	ErrInvalidCount = errors.New("point count must not be negative")
)

// Path is a continuous curve that can be measured and evaluated at a
// normalized parameter in [0, 1).
type Path interface {
	Length() float64
	PointAt(t float64) geom.Point
}

// Sample walks each path in order and emits ceil(L/step)+1 points at uniform
// parameter increments, L being the path's length. Paths with no length
// contribute nothing. The result is the plain concatenation of all samples;
// separate paths are not joined.
func Sample[P Path](paths []P, step float64) ([]geom.Point, error) {
	if !(step > 0) || math.IsInf(step, 1) {
		return nil, fmt.Errorf("%w: got %g", ErrInvalidStep, step)
	}
	var points []geom.Point
	for _, p := range paths {
		l := p.Length()
		if !(l > 0) || math.IsInf(l, 1) {
			continue
		}
		n := int(math.Ceil(l/step)) + 1
		for i := range n {
			points = append(points, p.PointAt(float64(i)/float64(n)))
		}
	}
	return points, nil
}

// Trim downsamples points to n by picking indices floor(i*len/n). If n is
// at least len(points), points is returned unchanged. Trim panics on a
// negative n.
func Trim(points []geom.Point, n int) []geom.Point {
	if n < 0 {
		panic(fmt.Sprintf("outline.Trim: negative point count %d", n))
	}
	if n >= len(points) {
		return points
	}
	out := make([]geom.Point, n)
	for i := range out {
		out[i] = points[i*len(points)/n]
	}
	return out
}

// Fit scales points uniformly about the center of their bounding box so the
// larger side spans size, and moves that center to the origin. Degenerate
// inputs (no extent) are only translated.
func Fit(points []geom.Point, size float64) []geom.Point {
	box, ok := geom.Bounds(points)
	if !ok {
		return points
	}
	c := box.Center()
	scale := 1.0
	if extent := max(box.Width(), box.Height()); extent > 0 && size > 0 {
		scale = size / extent
	}
	out := make([]geom.Point, len(points))
	for i, p := range points {
		out[i] = geom.Point(p.Sub(c).Mul(scale))
	}
	return out
}
