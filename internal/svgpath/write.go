package svgpath

import (
	"bufio"
	"fmt"
	"io"

	"honnef.co/go/curve"

	"github.com/iburimskiy/epicycles/internal/geom"
)

// WriteOptions controls WriteSVG.
type WriteOptions struct {
	// Closed appends a close command to every outline.
	Closed bool
	// Margin is added around the bounding box of all outlines to form the
	// view box.
	Margin float64
	Stroke string
	// StrokeWidth defaults to 1.
	StrokeWidth float64
}

// WriteSVG writes a standalone SVG document drawing each outline as a
// polyline path.
func WriteSVG(w io.Writer, outlines [][]geom.Point, opts WriteOptions) error {
	var all []geom.Point
	for _, o := range outlines {
		all = append(all, o...)
	}
	box, _ := geom.Bounds(all)
	box = box.Inflate(opts.Margin, opts.Margin)

	stroke := opts.Stroke
	if stroke == "" {
		stroke = "black"
	}
	width := opts.StrokeWidth
	if width == 0 {
		width = 1
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<?xml version="1.0"?>
<svg xmlns="http://www.w3.org/2000/svg" version="1.1" viewBox="%g %g %g %g">
`, box.X0, box.Y0, box.Width(), box.Height())
	for _, o := range outlines {
		if len(o) == 0 {
			continue
		}
		fmt.Fprintf(bw, `  <path fill="none" stroke="%s" stroke-width="%g" d="`, stroke, width)
		if err := curve.WriteSVG(bw, polyline(o, opts.Closed).Elements(), curve.SVGOptions{}); err != nil {
			return err
		}
		bw.WriteString("\"/>\n")
	}
	bw.WriteString("</svg>\n")
	return bw.Flush()
}

// polyline returns the path through pts, closed back to pts[0] if closed is
// set.
func polyline(pts []geom.Point, closed bool) curve.BezPath {
	if len(pts) == 0 {
		return nil
	}
	bp := make(curve.BezPath, 0, len(pts)+1)
	bp.MoveTo(pts[0])
	for _, p := range pts[1:] {
		bp.LineTo(p)
	}
	if closed {
		bp.ClosePath()
	}
	return bp
}
