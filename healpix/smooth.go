package healpix

import "math"

// fwhmToSigma converts a Gaussian full width at half maximum to its standard
// deviation.
var fwhmToSigma = 1 / math.Sqrt(8*math.Ln2)

// GaussianBeam returns the harmonic window b(l) = exp(-l(l+1)*sigma^2/2) of
// a Gaussian beam with the given FWHM in radians, for l = 0..lmax.
func GaussianBeam(fwhm float64, lmax int) ([]float64, error) {
	if err := validateFWHM(fwhm); err != nil {
		return nil, err
	}
	if err := validateLMax(lmax); err != nil {
		return nil, err
	}
	sigma := fwhm * fwhmToSigma
	bl := make([]float64, lmax+1)
	for l := range bl {
		fl := float64(l)
		bl[l] = math.Exp(-0.5 * fl * (fl + 1) * sigma * sigma)
	}
	return bl, nil
}

// Smooth convolves a RING-ordered map with a Gaussian beam of the given FWHM
// in radians, band-limited to 3*nside-1. The input is not modified.
func Smooth(g *Geometry, m []float64, fwhm float64) ([]float64, error) {
	lmax := g.MaxLMax()
	bl, err := GaussianBeam(fwhm, lmax)
	if err != nil {
		return nil, err
	}

	alm, err := MapToAlm(g, m, lmax)
	if err != nil {
		return nil, err
	}
	if err := alm.ScaleL(bl); err != nil {
		return nil, err
	}
	return AlmToMap(g, alm)
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
