package svgpath

import (
	"math"

	"honnef.co/go/curve"

	"github.com/iburimskiy/epicycles/internal/geom"
)

const (
	// Accuracy is the arc length accuracy used when a Path measures its
	// segments.
	Accuracy = 1e-6
	// ArcTolerance is the largest distance between an elliptical arc and the
	// cubic Béziers that replace it.
	ArcTolerance = 1e-6
)

// appendArc appends the SVG elliptical arc from p0 to p1 to bp. Zero radii
// degrade the arc to a line and equal endpoints omit it, both as required by
// the SVG path grammar.
func appendArc(bp *curve.BezPath, p0 geom.Point, rx, ry, rotationDeg float64, large, sweep bool, p1 geom.Point) {
	if p0 == p1 {
		return
	}
	if rx == 0 || ry == 0 {
		bp.LineTo(p1)
		return
	}
	arc := endpointArc(p0, rx, ry, rotationDeg, large, sweep, p1)
	var els []curve.PathElement
	for el := range arc.PathElements(ArcTolerance) {
		// The arc starts at the pen.
		if el.Kind != curve.MoveToKind {
			els = append(els, el)
		}
	}
	if len(els) == 0 {
		bp.LineTo(p1)
		return
	}
	// The next segment starts exactly at p1.
	els[len(els)-1].P2 = p1
	*bp = append(*bp, els...)
}

// endpointArc converts the SVG endpoint parametrization of an elliptical arc
// with non-zero radii to center parametrization. Radii too small to reach
// from p0 to p1 are scaled up.
func endpointArc(p0 geom.Point, rx, ry, rotationDeg float64, large, sweep bool, p1 geom.Point) curve.Arc {
	rx, ry = math.Abs(rx), math.Abs(ry)
	phi := rotationDeg * math.Pi / 180
	sphi, cphi := math.Sincos(phi)
	dx := (p0.X - p1.X) / 2
	dy := (p0.Y - p1.Y) / 2
	x1 := cphi*dx + sphi*dy
	y1 := -sphi*dx + cphi*dy

	if lambda := x1*x1/(rx*rx) + y1*y1/(ry*ry); lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	num := rx*rx*ry*ry - rx*rx*y1*y1 - ry*ry*x1*x1
	den := rx*rx*y1*y1 + ry*ry*x1*x1
	coef := math.Sqrt(max(0, num/den))
	if large == sweep {
		coef = -coef
	}
	cx1 := coef * rx * y1 / ry
	cy1 := -coef * ry * x1 / rx

	ux, uy := (x1-cx1)/rx, (y1-cy1)/ry
	vx, vy := (-x1-cx1)/rx, (-y1-cy1)/ry
	delta := math.Atan2(ux*vy-uy*vx, ux*vx+uy*vy)
	if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	} else if sweep && delta < 0 {
		delta += 2 * math.Pi
	}

	return curve.Arc{
		Center: geom.Pt(
			cphi*cx1-sphi*cy1+(p0.X+p1.X)/2,
			sphi*cx1+cphi*cy1+(p0.Y+p1.Y)/2,
		),
		Radii:      geom.Vec(rx, ry),
		StartAngle: math.Atan2(uy, ux),
		SweepAngle: delta,
		XRotation:  phi,
	}
}
