package game

import (
	"fmt"
	"image/color"
	"math"
	"time"
)

// hsv converts HSV (hue: degrees, saturation and value: 0-1) and an alpha in
// 0-1 to a premultiplied color.RGBA.
func hsv(h, s, v, alpha float64) color.RGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	a := clamp01(alpha)
	return color.RGBA{
		R: uint8(clamp01(r+m) * a * 255),
		G: uint8(clamp01(g+m) * a * 255),
		B: uint8(clamp01(b+m) * a * 255),
		A: uint8(a * 255),
	}
}

// arrowColor shades arrows from blue through to magenta along the chain.
func arrowColor(i, n int, alpha float64) color.RGBA {
	f := 0.0
	if n > 1 {
		f = float64(i) / float64(n-1)
	}
	return hsv(200+110*f, 0.7, 0.95, alpha)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// formatDuration formats a duration as MM:SS.t
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	tenths := int(d.Milliseconds()/100) % 10
	return fmt.Sprintf("%02d:%02d.%d", minutes, seconds, tenths)
}

// seconds converts figure time to a time.Duration.
func seconds(t float64) time.Duration {
	if math.IsInf(t, 0) || math.Abs(t) > float64(math.MaxInt64/int64(time.Second)) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(t * float64(time.Second))
}
