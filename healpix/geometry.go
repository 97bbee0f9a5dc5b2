package healpix

import (
	"fmt"
	"math"
)

// Ring is one iso-latitude ring of a RING-ordered HEALPix grid.
type Ring struct {
	// Start is the index of the ring's first pixel in the map.
	Start int
	// Len is the number of pixels on the ring.
	Len int
	// Z is cos(theta) of the ring's colatitude.
	Z float64
	// Phi0 is the longitude of the ring's first pixel center in radians.
	Phi0 float64
}

// Geometry describes the ring layout of a HEALPix grid.
type Geometry struct {
	nside int
	npix  int
	rings []Ring
}

// NewGeometry returns the RING-ordered geometry for nside.
func NewGeometry(nside int) (*Geometry, error) {
	if err := validateNside(nside); err != nil {
		return nil, err
	}

	nrings := 4*nside - 1
	g := &Geometry{
		nside: nside,
		npix:  12 * nside * nside,
		rings: make([]Ring, 0, nrings),
	}

	fn := float64(nside)
	start := 0
	for i := 1; i <= nrings; i++ {
		var r Ring
		switch {
		case i < nside:
			// North polar cap.
			fi := float64(i)
			r = Ring{Len: 4 * i, Z: 1 - fi*fi/(3*fn*fn), Phi0: math.Pi / (4 * fi)}
		case i <= 3*nside:
			// Equatorial belt; every other ring is shifted by half a pixel.
			r = Ring{Len: 4 * nside, Z: 4.0/3.0 - 2*float64(i)/(3*fn)}
			if (i+nside)%2 == 0 {
				r.Phi0 = math.Pi / (4 * fn)
			}
		default:
			// South polar cap mirrors the north.
			fi := float64(4*nside - i)
			r = Ring{Len: 4 * (4*nside - i), Z: -(1 - fi*fi/(3*fn*fn)), Phi0: math.Pi / (4 * fi)}
		}
		r.Start = start
		start += r.Len
		g.rings = append(g.rings, r)
	}

	return g, nil
}

// Nside returns the grid resolution parameter.
func (g *Geometry) Nside() int { return g.nside }

// Npix returns the number of pixels, 12*nside^2.
func (g *Geometry) Npix() int { return g.npix }

// Rings returns the rings ordered from north to south.
// The returned slice must not be modified.
func (g *Geometry) Rings() []Ring { return g.rings }

// PixelArea returns the solid angle of one pixel in steradians.
func (g *Geometry) PixelArea() float64 { return 4 * math.Pi / float64(g.npix) }

// MaxLMax returns the highest multipole supported by the grid, 3*nside-1.
func (g *Geometry) MaxLMax() int { return 3*g.nside - 1 }

// NsideFromNpix inverts npix = 12*nside^2.
func NsideFromNpix(npix int) (int, error) {
	if npix <= 0 || npix%12 != 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidPixelCount, npix)
	}
	n2 := npix / 12
	nside := int(math.Round(math.Sqrt(float64(n2))))
	if nside*nside != n2 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidPixelCount, npix)
	}
	return nside, nil
}

// NpixFromNside returns 12*nside^2.
func NpixFromNside(nside int) int { return 12 * nside * nside }
