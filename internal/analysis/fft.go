package analysis

import (
	"math"
	"math/cmplx"
)

// FFT is a radix-2 Cooley-Tukey transform. The input length must be a
// power of two; use Pad first for arbitrary-length histories.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	if n%2 != 0 {
		panic("fft requires power of 2 length")
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}
	return result
}

// PowerSpectrum returns the magnitude of the positive-frequency half.
func PowerSpectrum(data []float64) []float64 {
	fft := FFT(data)
	ps := make([]float64, len(fft)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}
	return ps
}

// Pad zero-extends data to the next power of two.
func Pad(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)
	return padded
}

// SpectrumWindow returns the low-frequency quarter of the spectrum,
// where geodesic coordinate histories carry their content, or the whole
// spectrum when it is too short to quarter.
func SpectrumWindow(ps []float64) []float64 {
	if len(ps) < 8 {
		return ps
	}
	return ps[:len(ps)/4]
}

// DominantFrequency picks the strongest non-DC bin of the spectrum and
// converts it to a frequency given the total sampled duration.
func DominantFrequency(ps []float64, duration float64) float64 {
	if duration <= 0 || len(ps) < 2 {
		return 0
	}
	maxPower := 0.0
	maxIdx := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	return float64(maxIdx) / duration
}
