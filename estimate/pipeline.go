package estimate

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-pcl/healpix"
	"github.com/cwbudde/algo-pcl/master"
	"github.com/cwbudde/algo-pcl/skymap"
)

// SmoothingDisabled is the FWHM value that leaves a mask unsmoothed.
// A zero FWHM is treated the same way.
const SmoothingDisabled = -1.0

func smoothingEnabled(fwhmDeg float64) bool {
	return fwhmDeg != SmoothingDisabled && fwhmDeg != 0
}

// Params describes one estimation run.
type Params struct {
	Mask1 string
	Map1  string
	// FWHM1 is the Gaussian smoothing FWHM of mask 1 in degrees. Zero and
	// SmoothingDisabled leave the mask as read.
	FWHM1 float64

	// Mask2, Map2 and FWHM2 are used for CorrCross only.
	Mask2 string
	Map2  string
	FWHM2 float64

	Correlation Correlation
	// Nside is the expected map resolution. Zero accepts any resolution.
	Nside int

	BinsPath   string
	Workspace  WorkspaceCache
	Method     Method
	OutputPath string

	// SmoothedMask1Path and SmoothedMask2Path, when set, receive the
	// smoothed masks.
	SmoothedMask1Path string
	SmoothedMask2Path string
}

// Validate checks enum values and required paths.
func (p Params) Validate() error {
	if !p.Method.valid() {
		return fmt.Errorf("%w: %v", ErrUnknownMethod, p.Method)
	}
	if !p.Correlation.valid() {
		return fmt.Errorf("%w: %v", ErrUnknownCorrelation, p.Correlation)
	}
	if p.Nside < 0 {
		return fmt.Errorf("estimate: nside must be >= 0: %d", p.Nside)
	}

	required := []struct{ name, value string }{
		{"mask1", p.Mask1},
		{"map1", p.Map1},
		{"bins", p.BinsPath},
		{"output", p.OutputPath},
	}
	if p.Correlation == CorrCross {
		required = append(required,
			struct{ name, value string }{"mask2", p.Mask2},
			struct{ name, value string }{"map2", p.Map2})
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%w: %s", ErrMissingInput, r.name)
		}
	}
	return nil
}

// Report summarizes a completed run. FSky1 and FSky2 are the effective sky
// fractions of the final masks; FSky2 equals FSky1 for auto runs.
type Report struct {
	Correlation Correlation
	Method      Method
	Cache       CacheState
	Nside       int
	FSky1       float64
	FSky2       float64
	Bins        BinSpec
	Spectrum    Spectrum
	OutputPath  string
}

// Run executes the estimation pipeline described by p and writes the
// decoupled spectrum to p.OutputPath. ctx is checked between stages.
func Run(ctx context.Context, p Params, opts ...Option) (Report, error) {
	if err := p.Validate(); err != nil {
		return Report{}, err
	}
	cfg := ApplyOptions(opts...)
	log := cfg.Logger

	est, err := NewEstimator(p.Method, p.Workspace, opts...)
	if err != nil {
		return Report{}, err
	}

	field1, fsky1, err := loadField(p.Mask1, p.Map1, p.FWHM1, p.SmoothedMask1Path, p.Nside, "1", opts...)
	if err != nil {
		return Report{}, err
	}

	field2, fsky2 := field1, fsky1
	if p.Correlation == CorrCross {
		if err := ctx.Err(); err != nil {
			return Report{}, err
		}
		field2, fsky2, err = loadField(p.Mask2, p.Map2, p.FWHM2, p.SmoothedMask2Path, field1.Nside(), "2", opts...)
		if err != nil {
			return Report{}, err
		}
	}

	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	log.Info("loading bin file", zap.String("path", p.BinsPath))
	spec, err := LoadBinSpec(p.BinsPath)
	if err != nil {
		return Report{}, err
	}
	bins, _, err := NewBins(field1.Nside(), spec, opts...)
	if err != nil {
		return Report{}, err
	}

	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	spectrum, state, err := est.Estimate(field1, field2, bins)
	if err != nil {
		return Report{}, err
	}

	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	if err := WriteSpectrum(p.OutputPath, spectrum, p.BinsPath); err != nil {
		return Report{}, fmt.Errorf("estimate: write spectrum: %w", err)
	}
	log.Info("spectrum written", zap.String("path", p.OutputPath), zap.Int("bandpowers", spectrum.Len()))

	return Report{
		Correlation: p.Correlation,
		Method:      p.Method,
		Cache:       state,
		Nside:       field1.Nside(),
		FSky1:       fsky1,
		FSky2:       fsky2,
		Bins:        spec,
		Spectrum:    spectrum,
		OutputPath:  p.OutputPath,
	}, nil
}

// loadField reads a mask and a map, smooths the mask when fwhmDeg enables
// it, and builds the field. nside zero skips the resolution
// check. It also returns the effective sky fraction of the final mask.
func loadField(maskPath, mapPath string, fwhmDeg float64, smoothedPath string, nside int, label string, opts ...Option) (*master.Field, float64, error) {
	log := ApplyOptions(opts...).Logger

	log.Info("loading mask", zap.String("field", label), zap.String("path", maskPath))
	mask, err := readMap(maskPath, nside)
	if err != nil {
		return nil, 0, err
	}

	if smoothingEnabled(fwhmDeg) {
		log.Info("smoothing mask", zap.String("field", label), zap.Float64("fwhm_deg", fwhmDeg))
		nsideMask, err := healpix.NsideFromNpix(len(mask))
		if err != nil {
			return nil, 0, err
		}
		g, err := healpix.NewGeometry(nsideMask)
		if err != nil {
			return nil, 0, err
		}
		mask, err = healpix.Smooth(g, mask, healpix.DegToRad(fwhmDeg))
		if err != nil {
			return nil, 0, fmt.Errorf("estimate: smooth mask %s: %w", label, err)
		}
		if smoothedPath != "" {
			if err := skymap.Write(smoothedPath, mask); err != nil {
				return nil, 0, fmt.Errorf("estimate: write smoothed mask %s: %w", label, err)
			}
			log.Info("smoothed mask written", zap.String("field", label), zap.String("path", smoothedPath))
		}
	}

	fsky := skymap.SkyFraction(mask)
	log.Info("mask ready", zap.String("field", label), zap.Float64("fsky", fsky))

	log.Info("loading map", zap.String("field", label), zap.String("path", mapPath))
	m, err := readMap(mapPath, nside)
	if err != nil {
		return nil, 0, err
	}
	st := skymap.Summarize(m)
	log.Debug("map statistics", zap.String("field", label),
		zap.Float64("mean", st.Mean),
		zap.Float64("rms", st.RMS),
		zap.Float64("min", st.Min),
		zap.Int("min_pix", st.MinPix),
		zap.Float64("max", st.Max),
		zap.Int("max_pix", st.MaxPix),
		zap.Float64("skewness", st.Skewness),
		zap.Float64("kurtosis", st.Kurtosis))

	f, err := InitField(mask, m, opts...)
	if err != nil {
		return nil, 0, err
	}
	return f, fsky, nil
}

func readMap(path string, nside int) ([]float64, error) {
	if nside > 0 {
		return skymap.ReadNside(path, nside)
	}
	return skymap.Read(path)
}
