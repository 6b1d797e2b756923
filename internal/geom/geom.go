// Package geom ties the curve package's planar types to the complex plane
// the Fourier code works in.
package geom

import "honnef.co/go/curve"

type (
	Point = curve.Point
	Vec2  = curve.Vec2
	Rect  = curve.Rect
)

func Pt(x, y float64) Point { return curve.Pt(x, y) }
func Vec(x, y float64) Vec2 { return curve.Vec(x, y) }

// FromComplex returns the point (real(z), imag(z)).
func FromComplex(z complex128) Point {
	return Point{X: real(z), Y: imag(z)}
}

// Complex returns p as the complex number X + iY.
func Complex(p Point) complex128 {
	return complex(p.X, p.Y)
}

// Hypot returns the distance of p from the origin.
func Hypot(p Point) float64 {
	return Vec2(p).Hypot()
}

// Bounds returns the smallest rectangle containing all points. The second
// result is false when points is empty.
func Bounds(points []Point) (Rect, bool) {
	if len(points) == 0 {
		return Rect{}, false
	}
	r := curve.NewRectFromPoints(points[0], points[0])
	for _, p := range points[1:] {
		r = r.UnionPoint(p)
	}
	return r, true
}

// Centroid returns the arithmetic mean of the points, or the zero point for
// an empty slice.
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}
	var sum Vec2
	for _, p := range points {
		sum = sum.Add(Vec2(p))
	}
	return Point(sum.Div(float64(len(points))))
}
