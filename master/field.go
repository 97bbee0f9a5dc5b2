package master

import (
	"fmt"

	"github.com/cwbudde/algo-pcl/healpix"
	"github.com/cwbudde/algo-vecmath"
)

// Field pairs a scalar mask with a scalar map and holds the harmonic
// coefficients of the mask and of the masked map. A Field is immutable.
type Field struct {
	geom    *healpix.Geometry
	lmax    int
	maskAlm *healpix.Alm
	alm     *healpix.Alm
}

// FieldConfig configures field construction.
type FieldConfig struct {
	// LMax is the harmonic band limit. Zero selects 3*nside-1.
	LMax int
}

// FieldOption mutates a FieldConfig.
type FieldOption func(*FieldConfig)

// WithLMax sets the harmonic band limit of the field.
func WithLMax(lmax int) FieldOption {
	return func(cfg *FieldConfig) {
		if lmax > 0 {
			cfg.LMax = lmax
		}
	}
}

// NewField builds a field from a RING-ordered mask and map of equal length.
// Neither slice is retained.
func NewField(mask, m []float64, opts ...FieldOption) (*Field, error) {
	if len(mask) != len(m) {
		return nil, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(mask), len(m))
	}

	nside, err := healpix.NsideFromNpix(len(mask))
	if err != nil {
		return nil, err
	}
	geom, err := healpix.NewGeometry(nside)
	if err != nil {
		return nil, err
	}

	var cfg FieldConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	lmax := geom.MaxLMax()
	if cfg.LMax > 0 && cfg.LMax < lmax {
		lmax = cfg.LMax
	}

	masked := make([]float64, len(m))
	vecmath.MulBlock(masked, mask, m)

	maskAlm, err := healpix.MapToAlm(geom, mask, lmax)
	if err != nil {
		return nil, fmt.Errorf("master: mask transform: %w", err)
	}
	alm, err := healpix.MapToAlm(geom, masked, lmax)
	if err != nil {
		return nil, fmt.Errorf("master: map transform: %w", err)
	}

	return &Field{geom: geom, lmax: lmax, maskAlm: maskAlm, alm: alm}, nil
}

// Nside returns the pixelization resolution of the field.
func (f *Field) Nside() int { return f.geom.Nside() }

// LMax returns the harmonic band limit of the field.
func (f *Field) LMax() int { return f.lmax }

// Alm returns a copy of the masked map coefficients.
func (f *Field) Alm() *healpix.Alm { return f.alm.Clone() }

// MaskAlm returns a copy of the mask coefficients.
func (f *Field) MaskAlm() *healpix.Alm { return f.maskAlm.Clone() }

// CoupledCell returns the mode-coupled cross spectrum of two fields for
// l = 0..lmax, i.e. the spectrum of the masked maps without any mask
// correction.
func CoupledCell(f1, f2 *Field) ([]float64, error) {
	if f1.Nside() != f2.Nside() {
		return nil, fmt.Errorf("%w: %d != %d", ErrNsideMismatch, f1.Nside(), f2.Nside())
	}
	return healpix.CrossSpectrum(f1.alm, f2.alm)
}

// maskSpectrum returns the cross spectrum of the two masks.
func maskSpectrum(f1, f2 *Field) ([]float64, error) {
	if f1.Nside() != f2.Nside() {
		return nil, fmt.Errorf("%w: %d != %d", ErrNsideMismatch, f1.Nside(), f2.Nside())
	}
	return healpix.CrossSpectrum(f1.maskAlm, f2.maskAlm)
}
