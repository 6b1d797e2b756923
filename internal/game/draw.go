package game

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/epicycles/internal/config"
	"github.com/iburimskiy/epicycles/internal/epicycle"
	"github.com/iburimskiy/epicycles/internal/geom"
)

var (
	backgroundColor = color.RGBA{R: 10, G: 12, B: 20, A: 255}
	gridColor       = color.RGBA{R: 28, G: 32, B: 46, A: 255}
	axisColor       = color.RGBA{R: 60, G: 68, B: 92, A: 255}
	guideColor      = color.RGBA{R: 70, G: 70, B: 90, A: 255}
	trailColor      = color.RGBA{R: 255, G: 210, B: 90, A: 255}

	// whiteSubImage is the source texture for DrawTriangles; vertex colors
	// do the shading.
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	origin := g.cfg.Origin.Resolve()
	if g.scene != nil {
		origin = g.scene.Figure.Origin()
	}
	if g.showGrid {
		drawGrid(screen, origin)
	}

	if g.scene != nil && g.showGuide {
		drawPolyline(screen, g.guide, 1, guideColor)
	}
	if g.scene != nil {
		arrows := g.scene.Figure.Arrows()
		drawCircles(screen, arrows)
		drawPolyline(screen, g.trail.points(), 2, trailColor)
		drawArrows(screen, arrows)
		tip := g.scene.Figure.Tip()
		vector.DrawFilledCircle(screen, float32(tip.X), float32(tip.Y), 3, color.White, true)
	}

	if g.audio && g.player != nil {
		if tap := g.player.Tap(); tap != nil {
			drawScope(screen, tap.Snapshot(config.ScopeRingSize))
		}
	}

	g.drawButton(screen)
	g.drawStatus(screen)
}

// drawGrid draws grid lines through the origin every GridSpacing pixels, and
// the two axes.
func drawGrid(screen *ebiten.Image, origin geom.Point) {
	w, h := float32(config.WindowWidth), float32(config.WindowHeight)
	const s = config.GridSpacing
	for x := math.Mod(origin.X, s); x < config.WindowWidth; x += s {
		vector.StrokeLine(screen, float32(x), 0, float32(x), h, 1, gridColor, false)
	}
	for y := math.Mod(origin.Y, s); y < config.WindowHeight; y += s {
		vector.StrokeLine(screen, 0, float32(y), w, float32(y), 1, gridColor, false)
	}
	vector.StrokeLine(screen, float32(origin.X), 0, float32(origin.X), h, 1, axisColor, false)
	vector.StrokeLine(screen, 0, float32(origin.Y), w, float32(origin.Y), 1, axisColor, false)
}

func drawCircles(screen *ebiten.Image, arrows []epicycle.Arrow) {
	for i, a := range arrows {
		r := a.Radius()
		if r < 1 {
			continue
		}
		c := arrowColor(i, len(arrows), 0.25)
		vector.StrokeCircle(screen, float32(a.Base.X), float32(a.Base.Y), float32(r), 1, c, true)
	}
}

func drawArrows(screen *ebiten.Image, arrows []epicycle.Arrow) {
	for i, a := range arrows {
		r := a.Radius()
		if r < 0.5 {
			continue
		}
		c := arrowColor(i, len(arrows), 0.9)
		head := min(config.ArrowHead, r/3)
		// Stop the shaft where the head starts so the tip stays sharp.
		dir := a.Tip.Sub(a.Base).Div(r)
		neck := a.Tip.Translate(dir.Mul(-head))
		vector.StrokeLine(screen, float32(a.Base.X), float32(a.Base.Y), float32(neck.X), float32(neck.Y), 1.5, c, true)
		drawArrowHead(screen, a.Tip, dir, head, c)
	}
}

// drawArrowHead fills a triangle with its point at tip, facing dir (a unit
// vector).
func drawArrowHead(screen *ebiten.Image, tip geom.Point, dir geom.Vec2, size float64, c color.RGBA) {
	back := tip.Translate(dir.Mul(-size))
	side := geom.Vec(-dir.Y, dir.X).Mul(size / 2)
	l, r := back.Translate(side), back.Translate(side.Negate())

	var path vector.Path
	path.MoveTo(float32(tip.X), float32(tip.Y))
	path.LineTo(float32(l.X), float32(l.Y))
	path.LineTo(float32(r.X), float32(r.Y))
	path.Close()
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	fillVertices(screen, vs, is, c)
}

// polylineChunk bounds the points stroked per DrawTriangles call so the
// vertex count stays within uint16 indices.
const polylineChunk = 2048

// drawPolyline strokes pts as one connected path.
func drawPolyline(screen *ebiten.Image, pts []geom.Point, width float32, c color.RGBA) {
	for len(pts) >= 2 {
		n := min(len(pts), polylineChunk)
		var path vector.Path
		path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
		for _, p := range pts[1:n] {
			path.LineTo(float32(p.X), float32(p.Y))
		}
		vs, is := path.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{Width: width})
		fillVertices(screen, vs, is, c)
		// Chunks share their end point.
		pts = pts[n-1:]
	}
}

// trianglesOptions takes vertex colors as premultiplied, which is what
// color.RGBA and hsv hold.
var trianglesOptions = &ebiten.DrawTrianglesOptions{
	AntiAlias:      true,
	ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha,
}

func fillVertices(screen *ebiten.Image, vs []ebiten.Vertex, is []uint16, c color.RGBA) {
	screen.DrawTriangles(colorVertices(vs, c), is, whiteSubImage, trianglesOptions)
}

// colorVertices points every vertex at the white texel and gives it c.
func colorVertices(vs []ebiten.Vertex, c color.RGBA) []ebiten.Vertex {
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(c.R) / 255
		vs[i].ColorG = float32(c.G) / 255
		vs[i].ColorB = float32(c.B) / 255
		vs[i].ColorA = float32(c.A) / 255
	}
	return vs
}

// drawScope plots stereo samples as an XY oscilloscope in the bottom right
// corner: left channel on X, right channel on Y.
func drawScope(screen *ebiten.Image, samples [][2]float64) {
	const size = config.ScopeSize
	x0 := float32(config.WindowWidth - size - config.ScopeMargin)
	y0 := float32(config.WindowHeight - size - config.ScopeMargin)

	vector.DrawFilledRect(screen, x0, y0, size, size, color.RGBA{R: 0, G: 0, B: 0, A: 200}, false)
	vector.StrokeRect(screen, x0, y0, size, size, 1, axisColor, false)
	ebitenutil.DebugPrintAt(screen, "audio", int(x0)+4, int(y0)+2)

	cx, cy := float64(x0)+size/2, float64(y0)+size/2
	pts := make([]geom.Point, len(samples))
	for i, s := range samples {
		pts[i] = geom.Pt(cx+s[0]*size/2, cy-s[1]*size/2)
	}
	drawPolyline(screen, pts, 1, color.RGBA{R: 80, G: 230, B: 120, A: 255})
}

func (g *Game) drawButton(screen *ebiten.Image) {
	var bgColor color.Color
	if g.buttonPressed {
		bgColor = color.RGBA{R: 60, G: 80, B: 120, A: 255}
	} else if g.buttonHovered {
		bgColor = color.RGBA{R: 80, G: 100, B: 140, A: 255}
	} else {
		bgColor = color.RGBA{R: 100, G: 120, B: 160, A: 255}
	}
	vector.DrawFilledRect(screen, config.ButtonX, config.ButtonY, config.ButtonWidth, config.ButtonHeight, bgColor, false)
	vector.StrokeRect(screen, config.ButtonX, config.ButtonY, config.ButtonWidth, config.ButtonHeight, 2, color.RGBA{R: 150, G: 170, B: 200, A: 255}, false)

	const text = "Open SVG"
	textWidth := len(text) * 6 // debug font glyphs are 6px wide
	ebitenutil.DebugPrintAt(screen, text, config.ButtonX+(config.ButtonWidth-textWidth)/2, config.ButtonY+(config.ButtonHeight-16)/2)
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	x, y := config.ButtonX, config.ButtonY+config.ButtonHeight+8
	ebitenutil.DebugPrintAt(screen, g.status(), x, y)
	ebitenutil.DebugPrintAt(screen, "Space: pause  C: clear  G: grid  T: outline  A: audio  O: open  Esc/Q: quit",
		x, config.WindowHeight-20)
	if g.lastErr != nil {
		ebitenutil.DebugPrintAt(screen, "Error: "+g.lastErr.Error(), x, y+16)
	}
}

func (g *Game) status() string {
	if g.scene == nil {
		return "Click the button or press O to open an SVG file"
	}
	f := g.scene.Figure
	if f.Len() == 0 {
		return g.scene.Name + ": nothing to draw"
	}
	state := "running"
	if g.paused {
		state = "paused"
	}
	if g.player != nil && g.player.Playing() {
		state += ", audio"
	}
	return fmt.Sprintf("%s  %d arrows  %d points  speed %g  t %s / %s  %s",
		g.scene.Name, f.Len(), len(g.scene.Outline), f.Speed(),
		formatDuration(seconds(g.t)), formatDuration(seconds(f.Period())), state)
}
