package svgpath

import (
	"errors"
	"fmt"

	"github.com/tdewolff/parse/v2/strconv"
	"honnef.co/go/curve"

	"github.com/iburimskiy/epicycles/internal/geom"
)

var ErrBadPath = errors.New("bad path data")

// argCount is the number of arguments each path command consumes.
var argCount = map[byte]int{
	'M': 2,
	'Z': 0,
	'L': 2,
	'H': 1,
	'V': 1,
	'C': 6,
	'S': 4,
	'Q': 4,
	'T': 2,
	'A': 7,
}

func skipCommaWhitespace(b []byte) int {
	i := 0
	for i < len(b) && (b[i] == ' ' || b[i] == ',' || b[i] == '\n' || b[i] == '\r' || b[i] == '\t') {
		i++
	}
	return i
}

func isNumberStart(c byte) bool {
	return c >= '0' && c <= '9' || c == '.' || c == '-' || c == '+'
}

func toUpper(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// ParseData parses the contents of an SVG path "d" attribute. Smooth curve
// commands are expanded with their reflected control points and elliptical
// arcs are replaced by cubic Béziers, so the result holds only moves, lines,
// quadratic and cubic curves and closes.
func ParseData(d string) (curve.BezPath, error) {
	b := []byte(d)
	i := skipCommaWhitespace(b)
	if i == len(b) {
		return nil, nil
	}
	if toUpper(b[i]) != 'M' {
		return nil, fmt.Errorf("%w: path must start with a move command, got '%c'", ErrBadPath, b[i])
	}

	var (
		bp        curve.BezPath
		f         [7]float64
		cur       geom.Point // pen position
		start     geom.Point // current subpath start
		lastCubic geom.Point // second control point of the previous C/S
		lastQuad  geom.Point // control point of the previous Q/T
		prevCmd   byte
	)
	for {
		i += skipCommaWhitespace(b[i:])
		if i >= len(b) {
			break
		}

		cmd := prevCmd
		repeat := true
		if cmd == 0 || toUpper(cmd) == 'Z' || !isNumberStart(b[i]) {
			cmd = b[i]
			repeat = false
			i++
			i += skipCommaWhitespace(b[i:])
		}
		CMD := toUpper(cmd)
		n, ok := argCount[CMD]
		if !ok {
			return nil, fmt.Errorf("%w: unknown command '%c' at position %d", ErrBadPath, cmd, i)
		}

		for j := 0; j < n; j++ {
			if CMD == 'A' && (j == 3 || j == 4) {
				if i < len(b) && (b[i] == '0' || b[i] == '1') {
					f[j] = float64(b[i] - '0')
					i++
				} else {
					return nil, fmt.Errorf("%w: arc flags must be 0 or 1 in command '%c' at position %d", ErrBadPath, cmd, i+1)
				}
			} else {
				num, m := strconv.ParseFloat(b[i:])
				if m == 0 {
					if repeat && j == 0 {
						return nil, fmt.Errorf("%w: unexpected '%c' at position %d", ErrBadPath, b[i], i+1)
					}
					return nil, fmt.Errorf("%w: command '%c' needs %d numbers at position %d", ErrBadPath, cmd, n, i+1)
				}
				f[j] = num
				i += m
			}
			i += skipCommaWhitespace(b[i:])
		}

		rel := cmd != CMD
		abs := func(x, y float64) geom.Point {
			if rel {
				return geom.Point{X: cur.X + x, Y: cur.Y + y}
			}
			return geom.Point{X: x, Y: y}
		}

		var next geom.Point
		switch CMD {
		case 'M':
			next = abs(f[0], f[1])
			start = next
			bp.MoveTo(next)
			// Coordinates following a move are implicit line commands.
			if rel {
				cmd = 'l'
			} else {
				cmd = 'L'
			}
		case 'Z':
			next = start
			bp.ClosePath()
		case 'L':
			next = abs(f[0], f[1])
			bp.LineTo(next)
		case 'H':
			next = geom.Point{X: f[0], Y: cur.Y}
			if rel {
				next.X += cur.X
			}
			bp.LineTo(next)
		case 'V':
			next = geom.Point{X: cur.X, Y: f[0]}
			if rel {
				next.Y += cur.Y
			}
			bp.LineTo(next)
		case 'C':
			c1 := abs(f[0], f[1])
			c2 := abs(f[2], f[3])
			next = abs(f[4], f[5])
			bp.CubicTo(c1, c2, next)
			lastCubic = c2
		case 'S':
			c1 := cur
			if p := toUpper(prevCmd); p == 'C' || p == 'S' {
				c1 = cur.Translate(cur.Sub(lastCubic))
			}
			c2 := abs(f[0], f[1])
			next = abs(f[2], f[3])
			bp.CubicTo(c1, c2, next)
			lastCubic = c2
		case 'Q':
			c := abs(f[0], f[1])
			next = abs(f[2], f[3])
			bp.QuadTo(c, next)
			lastQuad = c
		case 'T':
			c := cur
			if p := toUpper(prevCmd); p == 'Q' || p == 'T' {
				c = cur.Translate(cur.Sub(lastQuad))
			}
			next = abs(f[0], f[1])
			bp.QuadTo(c, next)
			lastQuad = c
		case 'A':
			next = abs(f[5], f[6])
			appendArc(&bp, cur, f[0], f[1], f[2], f[3] == 1, f[4] == 1, next)
		}
		prevCmd = cmd
		cur = next
	}
	return bp, nil
}
