package fourier

import (
	"math"
	"math/cmplx"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/iburimskiy/epicycles/internal/geom"
)

func TestFrequencies(t *testing.T) {
	tests := []struct {
		k    int
		want []int
	}{
		{-3, []int{}},
		{0, []int{}},
		{1, []int{0}},
		{2, []int{0, 1}},
		{3, []int{0, 1, -1}},
		{4, []int{0, 1, -1, 2}},
		{5, []int{0, 1, -1, 2, -2}},
		{8, []int{0, 1, -1, 2, -2, 3, -3, 4}},
	}
	for _, tt := range tests {
		if d := cmp.Diff(tt.want, Frequencies(tt.k)); d != "" {
			t.Errorf("Frequencies(%d): %s", tt.k, d)
		}
	}

	for k := 0; k < 100; k++ {
		w := Frequencies(k)
		if len(w) != k {
			t.Fatalf("Frequencies(%d) has length %d", k, len(w))
		}
		for i := 1; i < k; i += 2 {
			m := (i + 1) / 2
			if w[i] != m {
				t.Fatalf("Frequencies(%d)[%d] = %d, want %d", k, i, w[i], m)
			}
			if i+1 < k && w[i+1] != -m {
				t.Fatalf("Frequencies(%d)[%d] = %d, want %d", k, i+1, w[i+1], -m)
			}
		}
	}
}

func randomPoints(seed uint64, n int) []geom.Point {
	r := rand.New(rand.NewPCG(seed, seed+1))
	pts := make([]geom.Point, n)
	for i := range pts {
		pts[i] = geom.Pt(r.Float64()*200-100, r.Float64()*200-100)
	}
	return pts
}

func unitCircle(n int) []geom.Point {
	pts := make([]geom.Point, n)
	for i := range pts {
		s, c := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		pts[i] = geom.Pt(c, s)
	}
	return pts
}

func TestDCIsMean(t *testing.T) {
	pts := randomPoints(1, 137)
	mean := geom.Complex(geom.Centroid(pts))
	for name, c := range map[string][]complex128{
		"direct": Coefficients(pts, 1),
		"fft":    CoefficientsFFT(pts, 1),
	} {
		if cmplx.Abs(c[0]-mean) > 1e-9 {
			t.Errorf("%s: DC coefficient %v, want mean %v", name, c[0], mean)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, n := range []int{1, 2, 63, 64} {
		pts := randomPoints(uint64(n), n)
		coeffs := Coefficients(pts, n)
		got := Reconstruct(coeffs, Frequencies(n), n)
		for i := range pts {
			if d := got[i].Distance(pts[i]); d > 1e-9*max(1, geom.Hypot(pts[i])) {
				t.Fatalf("n=%d: point %d reconstructed as %v, want %v", n, i, got[i], pts[i])
			}
		}
	}
}

func TestUnitCircle(t *testing.T) {
	pts := unitCircle(360)
	if d := cmp.Diff([]int{0, 1, -1}, Frequencies(3)); d != "" {
		t.Fatal(d)
	}
	c := Coefficients(pts, 3)
	if cmplx.Abs(c[0]) > 1e-9 {
		t.Errorf("c0 = %v, want about 0", c[0])
	}
	if math.Abs(cmplx.Abs(c[1])-1) > 1e-9 {
		t.Errorf("|c1| = %g, want about 1", cmplx.Abs(c[1]))
	}
	if cmplx.Abs(c[2]) > 1e-9 {
		t.Errorf("|c-1| = %g, want about 0", cmplx.Abs(c[2]))
	}
}

func TestFFTMatchesDirect(t *testing.T) {
	for _, n := range []int{1, 7, 100, 257} {
		pts := randomPoints(uint64(10+n), n)
		// k beyond n exercises aliased frequencies.
		k := 2*n + 3
		direct := Coefficients(pts, k)
		fast := CoefficientsFFT(pts, k)
		if len(direct) != k || len(fast) != k {
			t.Fatalf("n=%d: got %d and %d coefficients, want %d", n, len(direct), len(fast), k)
		}
		for i := range direct {
			if cmplx.Abs(direct[i]-fast[i]) > 1e-9 {
				t.Fatalf("n=%d: coefficient %d differs: %v vs %v", n, i, direct[i], fast[i])
			}
		}
	}
}

func TestEmptyInput(t *testing.T) {
	if c := Coefficients(nil, 10); len(c) != 0 {
		t.Errorf("got %d coefficients for no points", len(c))
	}
	if c := CoefficientsFFT(nil, 10); len(c) != 0 {
		t.Errorf("got %d coefficients for no points", len(c))
	}
	if c := Coefficients(unitCircle(4), 0); len(c) != 0 {
		t.Errorf("got %d coefficients for k=0", len(c))
	}
	if p := Reconstruct(nil, nil, 0); len(p) != 0 {
		t.Errorf("got %d points for n=0", len(p))
	}
}
