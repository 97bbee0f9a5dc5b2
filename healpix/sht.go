package healpix

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-vecmath"
)

// legendre fills out[i] with the orthonormalized associated Legendre function
// lambda(l=m+i, m)(z), so that Y(l,m) = lambda(l,m)(cos theta) * exp(i*m*phi).
// lmm carries lambda(m,m) and must be advanced by the caller.
func legendre(out []float64, m int, z, lmm float64) {
	if len(out) == 0 {
		return
	}
	out[0] = lmm
	if len(out) == 1 {
		return
	}
	out[1] = z * math.Sqrt(float64(2*m+3)) * lmm

	fm2 := float64(m * m)
	for i := 2; i < len(out); i++ {
		l := float64(m + i)
		a := math.Sqrt((4*l*l - 1) / (l*l - fm2))
		b := math.Sqrt(((l-1)*(l-1) - fm2) / (4*(l-1)*(l-1) - 1))
		out[i] = a * (z*out[i-1] - b*out[i-2])
	}
}

// nextLmm advances lambda(m-1,m-1) to lambda(m,m) on a ring with sin(theta) s.
func nextLmm(prev float64, m int, s float64) float64 {
	fm := float64(m)
	return -math.Sqrt((2*fm+1)/(2*fm)) * s * prev
}

// MapToAlm computes spherical harmonic coefficients of a RING-ordered map up
// to lmax by direct ring quadrature.
func MapToAlm(g *Geometry, m []float64, lmax int) (*Alm, error) {
	if len(m) != g.npix {
		return nil, fmt.Errorf("%w: %d != %d", ErrMapLength, len(m), g.npix)
	}
	alm, err := NewAlm(lmax)
	if err != nil {
		return nil, err
	}

	cache := make(dftCache)
	area := g.PixelArea()
	lam := make([]float64, lmax+1)
	tmp := make([]float64, lmax+1)

	for _, r := range g.rings {
		d, err := cache.get(r.Len)
		if err != nil {
			return nil, err
		}

		in := make([]complex128, r.Len)
		for j := range in {
			in[j] = complex(m[r.Start+j], 0)
		}
		spec := make([]complex128, r.Len)
		if err := d.Forward(spec, in); err != nil {
			return nil, err
		}

		s := math.Sqrt((1 - r.Z) * (1 + r.Z))
		lmm := 1 / math.Sqrt(4*math.Pi)
		for mm := 0; mm <= lmax; mm++ {
			if mm > 0 {
				lmm = nextLmm(lmm, mm, s)
			}
			// F(m) = sum_j f_j exp(-i*m*phi_j)
			f := spec[mm%r.Len] * cmplx.Rect(1, -float64(mm)*r.Phi0)
			if f == 0 {
				continue
			}

			n := lmax - mm + 1
			legendre(lam[:n], mm, r.Z, lmm)
			re, im := alm.column(mm)

			vecmath.ScaleBlock(tmp[:n], lam[:n], area*real(f))
			vecmath.AddBlockInPlace(re, tmp[:n])
			vecmath.ScaleBlock(tmp[:n], lam[:n], area*imag(f))
			vecmath.AddBlockInPlace(im, tmp[:n])
		}
	}

	return alm, nil
}

// AlmToMap synthesizes a RING-ordered map from alm on geometry g.
func AlmToMap(g *Geometry, alm *Alm) ([]float64, error) {
	out := make([]float64, g.npix)
	lmax := alm.lmax

	cache := make(dftCache)
	lam := make([]float64, lmax+1)

	for _, r := range g.rings {
		d, err := cache.get(r.Len)
		if err != nil {
			return nil, err
		}

		// Fold every m onto its alias k = m mod n of the ring transform.
		folded := make([]complex128, r.Len)
		s := math.Sqrt((1 - r.Z) * (1 + r.Z))
		lmm := 1 / math.Sqrt(4*math.Pi)
		for mm := 0; mm <= lmax; mm++ {
			if mm > 0 {
				lmm = nextLmm(lmm, mm, s)
			}
			n := lmax - mm + 1
			legendre(lam[:n], mm, r.Z, lmm)
			re, im := alm.column(mm)
			gm := complex(vecmath.DotProduct(re, lam[:n]), vecmath.DotProduct(im, lam[:n]))
			if gm == 0 {
				continue
			}

			shifted := gm * cmplx.Rect(1, float64(mm)*r.Phi0)
			folded[mm%r.Len] += shifted
			if mm > 0 {
				k := (r.Len - mm%r.Len) % r.Len
				folded[k] += cmplx.Conj(shifted)
			}
		}

		ring := make([]complex128, r.Len)
		if err := d.Backward(ring, folded); err != nil {
			return nil, err
		}
		for j, v := range ring {
			out[r.Start+j] = real(v)
		}
	}

	return out, nil
}
