// Package fourier computes the DFT coefficients that turn a closed outline
// into a chain of rotating vectors.
//
// Coefficients are normalized by the sample count: every point of the
// outline is weighted 1/N regardless of the arc length it stands for.
package fourier

import (
	"math"
	"math/cmplx"

	dsp "gonum.org/v1/gonum/dsp/fourier"

	"github.com/iburimskiy/epicycles/internal/geom"
)

// Frequencies returns the first k angular frequency indices in the order
// 0, 1, -1, 2, -2, ...; for even k the last negative index is cut off.
func Frequencies(k int) []int {
	if k <= 0 {
		return []int{}
	}
	w := make([]int, k)
	for i := 1; i < k; i++ {
		m := (i + 1) / 2
		if i%2 == 0 {
			m = -m
		}
		w[i] = m
	}
	return w
}

func toComplex(points []geom.Point) []complex128 {
	z := make([]complex128, len(points))
	for i, p := range points {
		z[i] = geom.Complex(p)
	}
	return z
}

// Coefficients computes, for each n in Frequencies(k),
//
//	c_n = 1/N Σ z_i e^(-2πi·n·i/N)
//
// with z_i the i-th point as a complex number. An empty outline has no
// coefficients.
func Coefficients(points []geom.Point, k int) []complex128 {
	n := len(points)
	if n == 0 || k <= 0 {
		return []complex128{}
	}
	z := toComplex(points)
	delta := 1 / float64(n)

	coeffs := make([]complex128, k)
	for j, w := range Frequencies(k) {
		var c complex128
		for i, zi := range z {
			// Reduce n·i mod N first so the angle stays small and exact.
			angle := -2 * math.Pi * float64(mod(w*i, n)) / float64(n)
			c += zi * complex(delta, 0) * cmplx.Rect(1, angle)
		}
		coeffs[j] = c
	}
	return coeffs
}

// CoefficientsFFT returns the same values as Coefficients using a single
// FFT of length N; frequency n reads bin n mod N.
func CoefficientsFFT(points []geom.Point, k int) []complex128 {
	n := len(points)
	if n == 0 || k <= 0 {
		return []complex128{}
	}
	fft := dsp.NewCmplxFFT(n)
	spectrum := fft.Coefficients(nil, toComplex(points))

	scale := complex(1/float64(n), 0)
	coeffs := make([]complex128, k)
	for j, w := range Frequencies(k) {
		coeffs[j] = spectrum[mod(w, n)] * scale
	}
	return coeffs
}

// Reconstruct evaluates the truncated Fourier series at n evenly spaced
// parameters, the inverse of Coefficients:
//
//	z_i = Σ_j c_j e^(2πi·w_j·i/n)
func Reconstruct(coeffs []complex128, freqs []int, n int) []geom.Point {
	if n <= 0 {
		return []geom.Point{}
	}
	m := min(len(coeffs), len(freqs))
	pts := make([]geom.Point, n)
	for i := range pts {
		var z complex128
		for j := range m {
			angle := 2 * math.Pi * float64(mod(freqs[j]*i, n)) / float64(n)
			z += coeffs[j] * cmplx.Rect(1, angle)
		}
		pts[i] = geom.FromComplex(z)
	}
	return pts
}

func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}
