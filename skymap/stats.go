package skymap

import "math"

// Stats holds pixel statistics of a map.
type Stats struct {
	Npix     int
	Mean     float64
	RMS      float64
	Variance float64
	Min      float64
	MinPix   int
	Max      float64
	MaxPix   int
	Skewness float64
	Kurtosis float64 // excess
}

// Summarize computes all statistics in a single pass using Welford's online
// algorithm for the higher-order moments.
func Summarize(m []float64) Stats {
	n := len(m)
	if n == 0 {
		return Stats{}
	}

	var mean, m2, m3, m4, sumSq float64
	maxVal, minVal := m[0], m[0]
	var maxPix, minPix int

	for i, x := range m {
		ni := float64(i + 1)
		delta := x - mean
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * float64(i)

		// M4 before M3 before M2.
		m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*m2 - 4*deltaN*m3
		m3 += term1*deltaN*(float64(i)-1) - 3*deltaN*m2
		m2 += term1
		mean += deltaN

		sumSq += x * x

		if x > maxVal {
			maxVal, maxPix = x, i
		}
		if x < minVal {
			minVal, minPix = x, i
		}
	}

	nf := float64(n)
	variance := m2 / nf

	var skewness, kurtosis float64
	if variance > 0 {
		skewness = (m3 / nf) / (variance * math.Sqrt(variance))
		kurtosis = (m4/nf)/(variance*variance) - 3
	}

	return Stats{
		Npix:     n,
		Mean:     mean,
		RMS:      math.Sqrt(sumSq / nf),
		Variance: variance,
		Min:      minVal,
		MinPix:   minPix,
		Max:      maxVal,
		MaxPix:   maxPix,
		Skewness: skewness,
		Kurtosis: kurtosis,
	}
}

// SkyFraction returns the effective observed sky fraction of a mask,
// <w^2>^2 / <w^4>. For a binary mask this is the fraction of unmasked
// pixels. An all-zero mask yields 0.
func SkyFraction(mask []float64) float64 {
	if len(mask) == 0 {
		return 0
	}
	var w2, w4 float64
	for _, w := range mask {
		sq := w * w
		w2 += sq
		w4 += sq * sq
	}
	if w4 == 0 {
		return 0
	}
	nf := float64(len(mask))
	return (w2 / nf) * (w2 / nf) / (w4 / nf)
}
