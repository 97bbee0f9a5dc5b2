// Package healpix provides RING-ordered HEALPix sphere pixelization and the
// spherical harmonic transforms needed for angular power spectrum estimation.
//
// The package covers scalar (spin-0) fields only:
//
//   - [Geometry] describes the iso-latitude rings of a HEALPix grid for a
//     given nside (12*nside^2 pixels, RING ordering).
//   - [MapToAlm] analyses a pixel map into spherical harmonic coefficients
//     using unweighted ring quadrature.
//   - [AlmToMap] synthesizes a pixel map from coefficients.
//   - [Smooth] convolves a map with a symmetric Gaussian beam.
//   - [CrossSpectrum] computes the angular power spectrum of two coefficient
//     sets.
//
// # Ring Transforms
//
// Each ring is Fourier transformed along longitude. Ring lengths on a HEALPix
// grid are multiples of four but generally not powers of two, so lengths that
// are not powers of two are evaluated with Bluestein's chirp-z algorithm on
// top of power-of-two FFT plans. Plans are created once per ring length and
// reused across rings and transforms.
//
// # Accuracy
//
// Analysis is a single quadrature pass without iterative refinement, which is
// accurate to roughly 1e-3 for multipoles well below 2*nside. This is
// sufficient for pseudo-Cl estimation where the same transform is applied to
// both masks and maps.
//
// # Coefficient Layout
//
// [Alm] stores coefficients for m >= 0 in m-major order: for each m the
// entries l = m..lmax are contiguous. Negative-m coefficients follow from the
// reality condition a(l,-m) = (-1)^m conj(a(l,m)).
package healpix
