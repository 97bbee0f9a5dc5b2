package healpix

import "fmt"

// Alm holds spherical harmonic coefficients a(l,m) for 0 <= m <= l <= LMax.
type Alm struct {
	lmax int
	Re   []float64
	Im   []float64
}

// NewAlm returns zeroed coefficients up to lmax.
func NewAlm(lmax int) (*Alm, error) {
	if err := validateLMax(lmax); err != nil {
		return nil, err
	}
	n := AlmSize(lmax)
	return &Alm{lmax: lmax, Re: make([]float64, n), Im: make([]float64, n)}, nil
}

// AlmSize returns the number of stored coefficients for lmax.
func AlmSize(lmax int) int {
	return (lmax + 1) * (lmax + 2) / 2
}

// LMax returns the band limit.
func (a *Alm) LMax() int { return a.lmax }

// Index returns the storage position of a(l,m).
func (a *Alm) Index(l, m int) int {
	return m*(2*a.lmax+1-m)/2 + l
}

// At returns a(l,m). It panics if l or m is out of range.
func (a *Alm) At(l, m int) complex128 {
	a.checkLM(l, m)
	i := a.Index(l, m)
	return complex(a.Re[i], a.Im[i])
}

// Set stores a(l,m). It panics if l or m is out of range.
func (a *Alm) Set(l, m int, v complex128) {
	a.checkLM(l, m)
	i := a.Index(l, m)
	a.Re[i] = real(v)
	a.Im[i] = imag(v)
}

// column returns the contiguous l = m..lmax slices for fixed m.
func (a *Alm) column(m int) (re, im []float64) {
	start := a.Index(m, m)
	end := start + a.lmax - m + 1
	return a.Re[start:end], a.Im[start:end]
}

// ScaleL multiplies every a(l,m) by f[l]. f must have length LMax()+1.
func (a *Alm) ScaleL(f []float64) error {
	if len(f) != a.lmax+1 {
		return fmt.Errorf("healpix: scale factor length must be %d: %d", a.lmax+1, len(f))
	}
	for m := 0; m <= a.lmax; m++ {
		re, im := a.column(m)
		for i := range re {
			re[i] *= f[m+i]
			im[i] *= f[m+i]
		}
	}
	return nil
}

// Clone returns a deep copy.
func (a *Alm) Clone() *Alm {
	out := &Alm{lmax: a.lmax, Re: make([]float64, len(a.Re)), Im: make([]float64, len(a.Im))}
	copy(out.Re, a.Re)
	copy(out.Im, a.Im)
	return out
}

func (a *Alm) checkLM(l, m int) {
	if m < 0 || m > l || l > a.lmax {
		panic(fmt.Sprintf("healpix: a(l=%d, m=%d) out of range for lmax %d", l, m, a.lmax))
	}
}

// CrossSpectrum returns the angular cross power spectrum
//
//	C(l) = 1/(2l+1) * sum_m Re(a(l,m) * conj(b(l,m)))
//
// summed over -l <= m <= l. Passing the same coefficients twice yields the
// auto spectrum, which is non-negative.
func CrossSpectrum(a, b *Alm) ([]float64, error) {
	if a.lmax != b.lmax {
		return nil, fmt.Errorf("%w: %d != %d", ErrLMaxMismatch, a.lmax, b.lmax)
	}

	cl := make([]float64, a.lmax+1)
	for m := 0; m <= a.lmax; m++ {
		aRe, aIm := a.column(m)
		bRe, bIm := b.column(m)
		weight := 2.0
		if m == 0 {
			weight = 1
		}
		for i := range aRe {
			cl[m+i] += weight * (aRe[i]*bRe[i] + aIm[i]*bIm[i])
		}
	}

	for l := range cl {
		cl[l] /= float64(2*l + 1)
	}
	return cl, nil
}
