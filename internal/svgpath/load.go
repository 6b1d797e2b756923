package svgpath

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/tdewolff/parse/v2/strconv"
	"honnef.co/go/curve"

	"github.com/iburimskiy/epicycles/internal/geom"
)

// Load reads an SVG document and returns one Path per shape element, in
// document order. <path> elements are used as is; <rect>, <circle>,
// <ellipse>, <line>, <polyline> and <polygon> are converted to the
// equivalent path data first. Transform attributes are not applied.
func Load(r io.Reader) ([]*Path, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("svg: %w", err)
	}

	var paths []*Path
	for i, n := range xmlquery.Find(doc, "//*") {
		data, ok, err := shapePath(n)
		if err != nil {
			return nil, fmt.Errorf("svg: <%s> element %d: %w", n.Data, i, err)
		}
		if !ok {
			continue
		}
		paths = append(paths, NewPath(n.SelectAttr("id"), data))
	}
	return paths, nil
}

// LoadFile is Load for a named file.
func LoadFile(name string) ([]*Path, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	paths, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return paths, nil
}

// shapePath returns the path equivalent to a shape element. The second
// result is false for elements that draw nothing.
func shapePath(n *xmlquery.Node) (curve.BezPath, bool, error) {
	if n.Type != xmlquery.ElementNode {
		return nil, false, nil
	}
	attr := func(name string) float64 {
		v, _ := strconv.ParseFloat([]byte(strings.TrimSpace(n.SelectAttr(name))))
		return v
	}

	var d string
	switch n.Data {
	case "path":
		d = n.SelectAttr("d")
	case "line":
		return polyline([]geom.Point{geom.Pt(attr("x1"), attr("y1")), geom.Pt(attr("x2"), attr("y2"))}, false), true, nil
	case "polyline", "polygon":
		nums := parseNumbers(n.SelectAttr("points"))
		if len(nums) < 2 {
			return nil, false, nil
		}
		pts := make([]geom.Point, len(nums)/2)
		for i := range pts {
			pts[i] = geom.Pt(nums[2*i], nums[2*i+1])
		}
		return polyline(pts, n.Data == "polygon"), true, nil
	case "circle":
		r := attr("r")
		d = ellipseData(attr("cx"), attr("cy"), r, r)
	case "ellipse":
		d = ellipseData(attr("cx"), attr("cy"), attr("rx"), attr("ry"))
	case "rect":
		d = rectData(attr("x"), attr("y"), attr("width"), attr("height"), n.SelectAttr("rx"), n.SelectAttr("ry"))
	default:
		return nil, false, nil
	}
	data, err := ParseData(d)
	return data, true, err
}

func ellipseData(cx, cy, rx, ry float64) string {
	return fmt.Sprintf("M%g %ga%g %g 0 1 0 %g 0a%g %g 0 1 0 %g 0",
		cx-rx, cy, rx, ry, 2*rx, rx, ry, -2*rx)
}

func rectData(x, y, w, h float64, rxAttr, ryAttr string) string {
	rx, _ := strconv.ParseFloat([]byte(rxAttr))
	ry, _ := strconv.ParseFloat([]byte(ryAttr))
	if rxAttr == "" {
		rx = ry
	}
	if ryAttr == "" {
		ry = rx
	}
	rx = min(max(rx, 0), w/2)
	ry = min(max(ry, 0), h/2)
	if rx == 0 || ry == 0 {
		return fmt.Sprintf("M%g %gH%gV%gH%gZ", x, y, x+w, y+h, x)
	}
	return fmt.Sprintf("M%g %gH%gA%g %g 0 0 1 %g %gV%gA%g %g 0 0 1 %g %gH%gA%g %g 0 0 1 %g %gV%gA%g %g 0 0 1 %g %gZ",
		x+rx, y, x+w-rx,
		rx, ry, x+w, y+ry, y+h-ry,
		rx, ry, x+w-rx, y+h, x+rx,
		rx, ry, x, y+h-ry, y+ry,
		rx, ry, x+rx, y)
}

// parseNumbers scans a comma/whitespace separated list of numbers, stopping
// at the first token that is not one.
func parseNumbers(s string) []float64 {
	b := []byte(s)
	var nums []float64
	for i := skipCommaWhitespace(b); i < len(b); i += skipCommaWhitespace(b[i:]) {
		v, n := strconv.ParseFloat(b[i:])
		if n == 0 {
			break
		}
		nums = append(nums, v)
		i += n
	}
	return nums
}
