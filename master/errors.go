package master

import "errors"

// Errors returned by the estimator.
var (
	ErrLengthMismatch   = errors.New("master: mask and map lengths differ")
	ErrNsideMismatch    = errors.New("master: fields and bins have different nside")
	ErrBinsLength       = errors.New("master: ells, weights and bandpowers must have equal length")
	ErrNegativeEll      = errors.New("master: multipoles must be >= 0")
	ErrLMaxExceeded     = errors.New("master: multipole exceeds 3*nside-1")
	ErrEmptyBand        = errors.New("master: bandpower has no positive weight")
	ErrNoBands          = errors.New("master: binning has no bandpowers")
	ErrSingularCoupling = errors.New("master: binned coupling matrix is singular")
	ErrShortSpectrum    = errors.New("master: coupled spectrum shorter than binning lmax")
	ErrCorruptWorkspace = errors.New("master: corrupt workspace data")
)
