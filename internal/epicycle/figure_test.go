package epicycle

import (
	"math"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/iburimskiy/epicycles/internal/fourier"
	"github.com/iburimskiy/epicycles/internal/geom"
)

func testFigure() *Figure {
	coeffs := []complex128{0, 3 + 1i, -0.5 + 2i, 0.25i, 1}
	return NewFigure(coeffs, fourier.Frequencies(len(coeffs)), geom.Pt(400, 300), 0.1)
}

func TestChaining(t *testing.T) {
	f := testFigure()
	for _, ts := range []float64{0, 0.37, 5, 123.456} {
		fr := f.Evaluate(ts)
		if len(fr.Arrows) != 5 {
			t.Fatalf("got %d arrows, want 5", len(fr.Arrows))
		}
		if fr.Arrows[0].Base != f.Origin() {
			t.Errorf("t=%g: first arrow based at %v, want origin %v", ts, fr.Arrows[0].Base, f.Origin())
		}
		for i := 1; i < len(fr.Arrows); i++ {
			if fr.Arrows[i].Base != fr.Arrows[i-1].Tip {
				t.Errorf("t=%g: arrow %d base %v != previous tip %v", ts, i, fr.Arrows[i].Base, fr.Arrows[i-1].Tip)
			}
		}
		if fr.Tip != fr.Arrows[len(fr.Arrows)-1].Tip {
			t.Errorf("t=%g: frame tip %v is not the last arrow's tip", ts, fr.Tip)
		}
		if tip := f.TipAt(ts); tip != fr.Tip {
			t.Errorf("t=%g: TipAt %v differs from Evaluate %v", ts, tip, fr.Tip)
		}
		for i, a := range fr.Arrows {
			if d := a.Tip.Distance(a.Base); math.Abs(d-a.Radius()) > 1e-9 {
				t.Errorf("t=%g: arrow %d has length %g, want radius %g", ts, i, d, a.Radius())
			}
		}
	}
}

func TestEvaluateIsPure(t *testing.T) {
	f := testFigure()
	a := f.Evaluate(1.5)
	f.Evaluate(7)
	b := f.Evaluate(1.5)
	if d := cmp.Diff(a, b); d != "" {
		t.Error(d)
	}
}

func TestAdvanceMatchesEvaluate(t *testing.T) {
	f := testFigure()
	for _, ts := range []float64{10, 0.01, 3, 3, 1e4} {
		f.Advance(ts)
		if f.Time() != ts {
			t.Errorf("Time() = %g, want %g", f.Time(), ts)
		}
		want := f.Evaluate(ts)
		if d := cmp.Diff(want.Arrows, f.Arrows()); d != "" {
			t.Errorf("t=%g: %s", ts, d)
		}
		if f.Tip() != want.Tip {
			t.Errorf("t=%g: cached tip %v, want %v", ts, f.Tip(), want.Tip)
		}
	}
}

func TestArrowsIsACopy(t *testing.T) {
	f := testFigure()
	f.Advance(2)
	want := f.TipAt(2)
	arrows := f.Arrows()
	for i := range arrows {
		arrows[i].Coefficient = 100
		arrows[i].Omega = 0
		arrows[i].Tip = geom.Point{}
	}
	if got := f.TipAt(2); got != want {
		t.Errorf("TipAt changed to %v after editing the returned arrows, want %v", got, want)
	}
	if d := cmp.Diff(f.Evaluate(2).Arrows, f.Arrows()); d != "" {
		t.Errorf("cached chain changed: %s", d)
	}
}

// Run with -race: the renderer advances the figure while the audio
// goroutine evaluates it.
func TestConcurrentAdvanceAndTipAt(t *testing.T) {
	f := testFigure()
	const n = 2000
	want := make([]geom.Point, n)
	for i := range want {
		want[i] = f.TipAt(float64(i) / 60)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range n {
			f.Advance(float64(i) / 60)
			_ = f.Arrows()
		}
	}()

	for i := range n {
		ts := float64(i) / 60
		if got := f.TipAt(ts); got != want[i] {
			t.Errorf("TipAt(%g) = %v during Advance, want %v", ts, got, want[i])
		}
		if fr := f.Evaluate(ts); fr.Tip != want[i] {
			t.Errorf("Evaluate(%g).Tip = %v during Advance, want %v", ts, fr.Tip, want[i])
		}
	}
	wg.Wait()
	if f.Time() != float64(n-1)/60 {
		t.Errorf("figure at t=%g after advancing, want %g", f.Time(), float64(n-1)/60)
	}
}

func TestZeroCoefficient(t *testing.T) {
	f := testFigure()
	fr := f.Evaluate(2)
	if fr.Arrows[0].Base != fr.Arrows[0].Tip || fr.Arrows[0].Radius() != 0 {
		t.Errorf("zero DC arrow moved: %+v", fr.Arrows[0])
	}
}

func TestEmptyFigure(t *testing.T) {
	origin := geom.Pt(1, 2)
	f := NewFigure(nil, nil, origin, 1)
	fr := f.Evaluate(3)
	if len(fr.Arrows) != 0 || fr.Tip != origin {
		t.Errorf("got %+v, want no arrows and tip at origin", fr)
	}
	if f.Tip() != origin {
		t.Errorf("cached tip %v, want origin", f.Tip())
	}
	if f.Extent() != 0 {
		t.Errorf("extent %g, want 0", f.Extent())
	}
	for _, p := range f.Trace(4) {
		if p != origin {
			t.Errorf("trace point %v, want origin", p)
		}
	}
}

func TestMismatchedLengths(t *testing.T) {
	f := NewFigure([]complex128{1, 2, 3}, []int{0, 1}, geom.Point{}, 1)
	if f.Len() != 2 {
		t.Errorf("got %d arrows, want 2", f.Len())
	}
	f = NewFigure([]complex128{1}, []int{0, 1, -1}, geom.Point{}, 1)
	if f.Len() != 1 {
		t.Errorf("got %d arrows, want 1", f.Len())
	}
}

func TestSpeedScalesTime(t *testing.T) {
	coeffs := []complex128{0, 1, 0.5i, 0.2}
	freqs := fourier.Frequencies(len(coeffs))
	slow := NewFigure(coeffs, freqs, geom.Point{}, 1)
	fast := NewFigure(coeffs, freqs, geom.Point{}, 4)
	if fast.Period() != 0.25 || slow.Period() != 1 {
		t.Errorf("periods %g and %g, want 0.25 and 1", fast.Period(), slow.Period())
	}
	for _, ts := range []float64{0, 0.1, 0.2, 0.7} {
		a, b := fast.TipAt(ts), slow.TipAt(4*ts)
		if a.Distance(b) > 1e-9 {
			t.Errorf("t=%g: fast %v, slow %v", ts, a, b)
		}
	}
	if p := NewFigure(coeffs, freqs, geom.Point{}, 0).Period(); p != 0 {
		t.Errorf("still figure has period %g", p)
	}
}

func TestTraceReproducesOutline(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 8))
	const n = 50
	pts := make([]geom.Point, n)
	for i := range pts {
		pts[i] = geom.Pt(r.Float64()*10, r.Float64()*10)
	}
	origin := geom.Pt(100, 100)
	f := NewFigure(fourier.Coefficients(pts, n), fourier.Frequencies(n), origin, 0.5)

	trace := f.Trace(n)
	for i, p := range trace {
		want := origin.Translate(geom.Vec2(pts[i]))
		if p.Distance(want) > 1e-9 {
			t.Fatalf("trace point %d = %v, want %v", i, p, want)
		}
	}
	if got := f.Extent(); got < geom.Hypot(pts[0])-1e-9 {
		t.Errorf("extent %g is smaller than the distance to a traced point", got)
	}
}
