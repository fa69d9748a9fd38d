// Package analysis extracts frequency content from recorded trajectories,
// used to report the dominant orbital period of a run.
package analysis

import (
	"math"
	"math/bits"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform of a power-of-two-length
// signal: a bit-reversal permutation followed by in-place radix-2
// butterfly passes of doubling span.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n&(n-1) != 0 {
		panic("analysis: fft length must be a power of two")
	}

	out := make([]complex128, n)
	if n == 0 {
		return out
	}

	shift := bits.UintSize - bits.Len(uint(n-1))
	for i, v := range data {
		out[bits.Reverse(uint(i))>>shift] = complex(v, 0)
	}

	for span := 2; span <= n; span *= 2 {
		half := span / 2
		step := cmplx.Exp(complex(0, -2*math.Pi/float64(span)))
		for start := 0; start < n; start += span {
			w := complex(1.0, 0)
			for k := start; k < start+half; k++ {
				u := out[k]
				v := out[k+half] * w
				out[k] = u + v
				out[k+half] = u - v
				w *= step
			}
		}
	}

	return out
}

// PowerSpectrum zero-pads the signal to a power of two and returns the
// magnitude of the positive-frequency half of its transform.
func PowerSpectrum(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)

	fft := FFT(padded)
	ps := make([]float64, len(fft)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}
	return ps
}

// LowFrequencyBins returns the lower quarter of a power spectrum, the
// band slow orbital motion lives in. It returns nil when the spectrum is
// too short to subdivide, so callers must skip charting in that case.
func LowFrequencyBins(ps []float64) []float64 {
	n := len(ps) / 4
	if n == 0 {
		return nil
	}
	return ps[:n]
}

// DominantFrequency returns the strongest non-DC frequency of a uniformly
// sampled signal, in cycles per unit time. It reports zero for signals too
// short to analyze.
func DominantFrequency(data []float64, dt float64) float64 {
	if len(data) < 4 || dt <= 0 {
		return 0
	}

	ps := PowerSpectrum(data)

	maxPower := 0.0
	maxIdx := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	if maxIdx == 0 {
		return 0
	}

	// ps has n/2 bins over a span of n samples.
	n := len(ps) * 2
	return float64(maxIdx) / (float64(n) * dt)
}
