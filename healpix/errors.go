package healpix

import (
	"errors"
	"fmt"
)

// Errors returned by geometry and transform functions.
var (
	ErrInvalidPixelCount = errors.New("healpix: pixel count is not 12*nside^2")
	ErrMapLength         = errors.New("healpix: map length does not match geometry")
	ErrLMaxMismatch      = errors.New("healpix: coefficient sets have different lmax")
)

func validateNside(nside int) error {
	if nside <= 0 {
		return fmt.Errorf("healpix: nside must be > 0: %d", nside)
	}
	return nil
}

func validateLMax(lmax int) error {
	if lmax < 0 {
		return fmt.Errorf("healpix: lmax must be >= 0: %d", lmax)
	}
	return nil
}

func validateFWHM(fwhm float64) error {
	if fwhm < 0 {
		return fmt.Errorf("healpix: fwhm must be >= 0: %f", fwhm)
	}
	return nil
}
