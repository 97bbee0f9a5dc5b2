package testutil

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-pcl/healpix"
)

// ConstantMap returns a map of 12*nside^2 pixels set to value.
func ConstantMap(nside int, value float64) []float64 {
	out := make([]float64, healpix.NpixFromNside(nside))
	for i := range out {
		out[i] = value
	}
	return out
}

// StripMask returns a binary mask that zeroes every pixel with |cos(theta)|
// below zcut, mimicking a galactic plane cut.
func StripMask(nside int, zcut float64) []float64 {
	g, err := healpix.NewGeometry(nside)
	if err != nil {
		panic(err)
	}
	out := make([]float64, g.Npix())
	for _, r := range g.Rings() {
		v := 1.0
		if math.Abs(r.Z) < zcut {
			v = 0
		}
		for j := 0; j < r.Len; j++ {
			out[r.Start+j] = v
		}
	}
	return out
}

// CapMask returns a binary mask that keeps the northern cap with
// cos(theta) >= zmin.
func CapMask(nside int, zmin float64) []float64 {
	g, err := healpix.NewGeometry(nside)
	if err != nil {
		panic(err)
	}
	out := make([]float64, g.Npix())
	for _, r := range g.Rings() {
		if r.Z < zmin {
			continue
		}
		for j := 0; j < r.Len; j++ {
			out[r.Start+j] = 1
		}
	}
	return out
}

// GaussianSky synthesizes a deterministic Gaussian random map with power
// spectrum cl(l) for l = 0..3*nside-1.
func GaussianSky(nside int, seed int64, cl func(l int) float64) []float64 {
	g, err := healpix.NewGeometry(nside)
	if err != nil {
		panic(err)
	}
	lmax := g.MaxLMax()
	alm, err := healpix.NewAlm(lmax)
	if err != nil {
		panic(err)
	}

	rng := rand.New(rand.NewSource(seed))
	for l := 0; l <= lmax; l++ {
		amp := math.Sqrt(cl(l))
		alm.Set(l, 0, complex(amp*rng.NormFloat64(), 0))
		for m := 1; m <= l; m++ {
			s := amp / math.Sqrt2
			alm.Set(l, m, complex(s*rng.NormFloat64(), s*rng.NormFloat64()))
		}
	}

	out, err := healpix.AlmToMap(g, alm)
	if err != nil {
		panic(err)
	}
	return out
}

// WhiteNoiseMap returns uncorrelated Gaussian pixel noise with standard
// deviation sigma. Its angular power spectrum is flat at
// sigma^2 * 4*pi / (12*nside^2).
func WhiteNoiseMap(nside int, seed int64, sigma float64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, healpix.NpixFromNside(nside))
	for i := range out {
		out[i] = sigma * rng.NormFloat64()
	}
	return out
}
