package healpix

import (
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// ringDFT evaluates length-n discrete Fourier transforms
// X[k] = sum_j x[j] * exp(-2*pi*i*j*k/n) for arbitrary n.
//
// Power-of-two lengths use an FFT plan directly. Other lengths use Bluestein's
// chirp-z algorithm as a circular convolution of size m >= 2n-1.
type ringDFT struct {
	n    int
	m    int
	plan *algofft.Plan[complex128]

	// Bluestein state, nil for power-of-two lengths.
	chirp     []complex128 // exp(-i*pi*k^2/n), k in [0,n)
	kernelFFT []complex128 // FFT of the conjugate chirp, wrapped to length m

	bufA []complex128
	bufB []complex128
}

func newRingDFT(n int) (*ringDFT, error) {
	if n <= 0 {
		return nil, fmt.Errorf("healpix: ring length must be > 0: %d", n)
	}

	if isPowerOf2(n) {
		plan, err := algofft.NewPlan64(n)
		if err != nil {
			return nil, fmt.Errorf("healpix: failed to create FFT plan: %w", err)
		}
		return &ringDFT{
			n:    n,
			m:    n,
			plan: plan,
			bufA: make([]complex128, n),
			bufB: make([]complex128, n),
		}, nil
	}

	m := nextPowerOf2(2*n - 1)
	plan, err := algofft.NewPlan64(m)
	if err != nil {
		return nil, fmt.Errorf("healpix: failed to create FFT plan: %w", err)
	}

	d := &ringDFT{
		n:         n,
		m:         m,
		plan:      plan,
		chirp:     make([]complex128, n),
		kernelFFT: make([]complex128, m),
		bufA:      make([]complex128, m),
		bufB:      make([]complex128, m),
	}

	// k^2 is reduced mod 2n to keep the phase argument small.
	kernel := make([]complex128, m)
	twoN := 2 * n
	for k := 0; k < n; k++ {
		phase := math.Pi * float64((k*k)%twoN) / float64(n)
		d.chirp[k] = cmplx.Rect(1, -phase)
		kernel[k] = cmplx.Conj(d.chirp[k])
		if k > 0 {
			kernel[m-k] = kernel[k]
		}
	}

	if err := plan.Forward(d.kernelFFT, kernel); err != nil {
		return nil, fmt.Errorf("healpix: failed to compute chirp FFT: %w", err)
	}

	return d, nil
}

// Forward writes the DFT of src into dst. Both must have length n.
func (d *ringDFT) Forward(dst, src []complex128) error {
	if len(dst) != d.n || len(src) != d.n {
		return fmt.Errorf("healpix: ring transform length mismatch: %d/%d != %d", len(dst), len(src), d.n)
	}

	if d.chirp == nil {
		copy(d.bufA, src)
		if err := d.plan.Forward(d.bufB, d.bufA); err != nil {
			return fmt.Errorf("healpix: forward FFT failed: %w", err)
		}
		copy(dst, d.bufB)
		return nil
	}

	for i := range d.bufA {
		d.bufA[i] = 0
	}
	for j := 0; j < d.n; j++ {
		d.bufA[j] = src[j] * d.chirp[j]
	}

	if err := d.plan.Forward(d.bufB, d.bufA); err != nil {
		return fmt.Errorf("healpix: forward FFT failed: %w", err)
	}

	// Inverse transform through the conjugation identity
	// ifft(Y) = conj(fft(conj(Y))) / m.
	for i := range d.bufB {
		d.bufB[i] = cmplx.Conj(d.bufB[i] * d.kernelFFT[i])
	}
	if err := d.plan.Forward(d.bufA, d.bufB); err != nil {
		return fmt.Errorf("healpix: forward FFT failed: %w", err)
	}

	scale := 1 / float64(d.m)
	for k := 0; k < d.n; k++ {
		conv := cmplx.Conj(d.bufA[k]) * complex(scale, 0)
		dst[k] = d.chirp[k] * conv
	}

	return nil
}

// Backward writes sum_k src[k] * exp(+2*pi*i*j*k/n) into dst (unnormalized).
func (d *ringDFT) Backward(dst, src []complex128) error {
	tmp := make([]complex128, d.n)
	for i, v := range src {
		tmp[i] = cmplx.Conj(v)
	}
	if err := d.Forward(dst, tmp); err != nil {
		return err
	}
	for i := range dst {
		dst[i] = cmplx.Conj(dst[i])
	}
	return nil
}

// dftCache holds one transform per ring length.
type dftCache map[int]*ringDFT

func (c dftCache) get(n int) (*ringDFT, error) {
	if d, ok := c[n]; ok {
		return d, nil
	}
	d, err := newRingDFT(n)
	if err != nil {
		return nil, err
	}
	c[n] = d
	return d, nil
}

func isPowerOf2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
