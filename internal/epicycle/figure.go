// Package epicycle chains rotating vectors head to tail so that the tip of
// the last one traces a curve described by its Fourier coefficients.
package epicycle

import (
	"math"
	"math/cmplx"

	"github.com/iburimskiy/epicycles/internal/geom"
)

// Arrow is one rotating vector of a Figure.
type Arrow struct {
	Coefficient complex128
	// Omega is the planned frequency scaled by the figure's speed.
	Omega float64
	Base  geom.Point
	Tip   geom.Point
}

// Radius is the length of the arrow, constant over time.
func (a Arrow) Radius() float64 {
	return cmplx.Abs(a.Coefficient)
}

// rotate returns c·e^(i·ω·2π·t).
func rotate(c complex128, omega, t float64) complex128 {
	return c * cmplx.Rect(1, omega*2*math.Pi*t)
}

// Frame is the state of a Figure's chain at one instant.
type Frame struct {
	T      float64
	Arrows []Arrow
	// Tip is the tip of the last arrow, or the origin for an empty figure.
	Tip geom.Point
}

// Figure is a chain of arrows anchored at Origin. Arrow 0 starts at Origin
// and each following arrow starts at the previous arrow's tip.
//
// Coefficients and angular frequencies are fixed at construction, and
// Evaluate, TipAt and Trace read nothing else, so they are safe to call
// from any goroutine. Advance updates the cached chain read by Arrows and
// Tip; those three must not run concurrently with each other.
type Figure struct {
	origin geom.Point
	speed  float64
	coeffs []complex128
	omegas []float64

	t      float64
	arrows []Arrow
}

// NewFigure returns a figure with one arrow per (coefficient, frequency)
// pair; extra entries of the longer slice are ignored. Each arrow's angular
// frequency is its planned frequency times speed. The figure starts at t=0.
//
// A zero coefficient, such as a DC term zeroed to center the drawing on
// origin, is kept as an arrow of length zero.
func NewFigure(coeffs []complex128, freqs []int, origin geom.Point, speed float64) *Figure {
	n := min(len(coeffs), len(freqs))
	f := &Figure{
		origin: origin,
		speed:  speed,
		coeffs: make([]complex128, n),
		omegas: make([]float64, n),
		arrows: make([]Arrow, n),
	}
	copy(f.coeffs, coeffs)
	for i := range n {
		f.omegas[i] = float64(freqs[i]) * speed
	}
	f.Advance(0)
	return f
}

func (f *Figure) Origin() geom.Point { return f.origin }
func (f *Figure) Speed() float64     { return f.speed }
func (f *Figure) Len() int           { return len(f.coeffs) }

// Period is the time after which the figure repeats, 1/|speed|, or 0 if the
// figure does not move.
func (f *Figure) Period() float64 {
	if f.speed == 0 {
		return 0
	}
	return 1 / math.Abs(f.speed)
}

// Extent bounds the distance of any tip from the origin: the sum of all
// arrow lengths.
func (f *Figure) Extent() float64 {
	var r float64
	for _, c := range f.coeffs {
		r += cmplx.Abs(c)
	}
	return r
}

// compute fills arrows with the chain at time t and returns the last tip.
func (f *Figure) compute(t float64, arrows []Arrow) geom.Point {
	base := geom.Complex(f.origin)
	for i, c := range f.coeffs {
		tip := base + rotate(c, f.omegas[i], t)
		arrows[i] = Arrow{
			Coefficient: c,
			Omega:       f.omegas[i],
			Base:        geom.FromComplex(base),
			Tip:         geom.FromComplex(tip),
		}
		base = tip
	}
	return geom.FromComplex(base)
}

// Evaluate returns the chain at time t without modifying the figure.
func (f *Figure) Evaluate(t float64) Frame {
	arrows := make([]Arrow, len(f.coeffs))
	return Frame{T: t, Arrows: arrows, Tip: f.compute(t, arrows)}
}

// TipAt returns only the traced point at time t.
func (f *Figure) TipAt(t float64) geom.Point {
	z := geom.Complex(f.origin)
	for i, c := range f.coeffs {
		z += rotate(c, f.omegas[i], t)
	}
	return geom.FromComplex(z)
}

// Advance recomputes the cached chain for time t. Positions are derived from
// t alone, so the cache always equals Evaluate(t).
func (f *Figure) Advance(t float64) {
	f.t = t
	f.compute(t, f.arrows)
}

// Time returns the time of the last Advance.
func (f *Figure) Time() float64 { return f.t }

// Arrows returns a copy of the cached chain from the last Advance.
func (f *Figure) Arrows() []Arrow {
	return append([]Arrow(nil), f.arrows...)
}

// Tip returns the cached traced point from the last Advance.
func (f *Figure) Tip() geom.Point {
	if len(f.arrows) == 0 {
		return f.origin
	}
	return f.arrows[len(f.arrows)-1].Tip
}

// Trace samples the traced point n times over one period, starting at t=0.
// A figure that does not move yields n copies of its only point.
func (f *Figure) Trace(n int) []geom.Point {
	if n <= 0 {
		return []geom.Point{}
	}
	period := f.Period()
	pts := make([]geom.Point, n)
	for i := range pts {
		pts[i] = f.TipAt(period * float64(i) / float64(n))
	}
	return pts
}
