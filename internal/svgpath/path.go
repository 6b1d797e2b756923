package svgpath

import (
	"slices"
	"sort"

	"honnef.co/go/curve"

	"github.com/iburimskiy/epicycles/internal/geom"
)

// Path is the geometry of one SVG shape element: a possibly discontinuous
// sequence of segments, measured once at construction.
type Path struct {
	ID       string
	Segments []curve.PathSegment

	// ends[i] is the arc length from the start of the path to the end of
	// segment i.
	ends   []float64
	length float64
}

func NewPath(id string, data curve.BezPath) *Path {
	p := &Path{
		ID:       id,
		Segments: slices.Collect(data.Segments()),
	}
	p.ends = make([]float64, len(p.Segments))
	for i, s := range p.Segments {
		p.length += s.Arclen(Accuracy)
		p.ends[i] = p.length
	}
	return p
}

// Length returns the total arc length of the path.
func (p *Path) Length() float64 {
	return p.length
}

// PointAt evaluates the path at the normalized parameter t ∈ [0, 1).
//
// t selects a segment by the fraction of the total arc length covered up to
// it; inside that segment the remaining fraction is used as the segment's
// own curve parameter. Sampling at uniform t is thus uniform in arc length
// across segments but only approximately within a curved one.
func (p *Path) PointAt(t float64) geom.Point {
	if len(p.Segments) == 0 {
		return geom.Point{}
	}
	if p.length <= 0 {
		return p.Segments[0].Start()
	}
	t = min(max(t, 0), 1)
	target := t * p.length
	i := sort.SearchFloat64s(p.ends, target)
	if i >= len(p.Segments) {
		i = len(p.Segments) - 1
	}
	start := 0.0
	if i > 0 {
		start = p.ends[i-1]
	}
	segLen := p.ends[i] - start
	if segLen <= 0 {
		return p.Segments[i].Start()
	}
	return p.Segments[i].Eval((target - start) / segLen)
}
