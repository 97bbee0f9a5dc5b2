package master

import (
	"encoding/binary"
	"fmt"
	"hash"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Bins groups multipoles into bandpowers.
//
// It is built from three parallel arrays: multipole values, weights and
// bandpower indices. A negative bandpower index excludes the multipole from
// every binned quantity. Weights are normalized to sum to one within each
// bandpower.
type Bins struct {
	nside   int
	ells    []int
	weights []float64
	bpws    []int

	bands []band
	lmax  int
}

type band struct {
	ells    []int
	weights []float64
}

// NewBins validates and stores a binning for resolution nside.
// Every bandpower index in [0, max] must own at least one multipole with
// positive weight, and no multipole may exceed 3*nside-1.
func NewBins(nside int, ells []int, weights []float64, bpws []int) (*Bins, error) {
	return newBins(nside, ells, weights, bpws, true)
}

// newBins builds the binning. With normalize unset the weights are kept
// bit for bit, which a deserialized workspace relies on.
func newBins(nside int, ells []int, weights []float64, bpws []int, normalize bool) (*Bins, error) {
	if nside <= 0 {
		return nil, fmt.Errorf("master: nside must be > 0: %d", nside)
	}
	if len(ells) != len(weights) || len(ells) != len(bpws) {
		return nil, fmt.Errorf("%w: %d/%d/%d", ErrBinsLength, len(ells), len(weights), len(bpws))
	}

	maxL := 3*nside - 1
	nbands := 0
	for i, l := range ells {
		if l < 0 {
			return nil, fmt.Errorf("%w: ells[%d]=%d", ErrNegativeEll, i, l)
		}
		if bpws[i] >= 0 && l > maxL {
			return nil, fmt.Errorf("%w: ell %d > %d", ErrLMaxExceeded, l, maxL)
		}
		if bpws[i]+1 > nbands {
			nbands = bpws[i] + 1
		}
	}
	if nbands == 0 {
		return nil, ErrNoBands
	}

	b := &Bins{
		nside:   nside,
		ells:    append([]int(nil), ells...),
		weights: make([]float64, len(weights)),
		bpws:    append([]int(nil), bpws...),
		bands:   make([]band, nbands),
	}

	sums := make([]float64, nbands)
	for i, w := range weights {
		if bpws[i] < 0 {
			continue
		}
		sums[bpws[i]] += w
	}
	for ib, s := range sums {
		if !(s > 0) {
			return nil, fmt.Errorf("%w: %d", ErrEmptyBand, ib)
		}
	}

	for i, l := range ells {
		ib := bpws[i]
		if ib < 0 {
			continue
		}
		w := weights[i]
		if normalize {
			w /= sums[ib]
		}
		b.weights[i] = w
		b.bands[ib].ells = append(b.bands[ib].ells, l)
		b.bands[ib].weights = append(b.bands[ib].weights, w)
		if l > b.lmax {
			b.lmax = l
		}
	}

	return b, nil
}

// Nside returns the resolution the binning was built for.
func (b *Bins) Nside() int { return b.nside }

// Count returns the number of bandpowers.
func (b *Bins) Count() int { return len(b.bands) }

// LMax returns the highest binned multipole.
func (b *Bins) LMax() int { return b.lmax }

// Ells returns a copy of the multipole array.
func (b *Bins) Ells() []int { return append([]int(nil), b.ells...) }

// Weights returns a copy of the normalized weight array.
func (b *Bins) Weights() []float64 { return append([]float64(nil), b.weights...) }

// Bandpowers returns a copy of the bandpower index array.
func (b *Bins) Bandpowers() []int { return append([]int(nil), b.bpws...) }

// EffectiveElls returns the weighted mean multipole of every bandpower.
func (b *Bins) EffectiveElls() []float64 {
	out := make([]float64, len(b.bands))
	for ib, bd := range b.bands {
		ls := make([]float64, len(bd.ells))
		for i, l := range bd.ells {
			ls[i] = float64(l)
		}
		out[ib] = vecmath.DotProduct(ls, bd.weights)
	}
	return out
}

// BinCell averages a per-multipole spectrum into bandpowers. cl must cover
// every binned multipole.
func (b *Bins) BinCell(cl []float64) ([]float64, error) {
	if len(cl) <= b.lmax {
		return nil, fmt.Errorf("%w: %d <= %d", ErrShortSpectrum, len(cl), b.lmax)
	}
	out := make([]float64, len(b.bands))
	for ib, bd := range b.bands {
		vals := make([]float64, len(bd.ells))
		for i, l := range bd.ells {
			vals[i] = cl[l]
		}
		out[ib] = vecmath.DotProduct(vals, bd.weights)
	}
	return out, nil
}

// writeFingerprint feeds the binning into h.
func (b *Bins) writeFingerprint(h hash.Hash) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(b.nside))
	h.Write(buf[:])
	for i := range b.ells {
		binary.LittleEndian.PutUint64(buf[:], uint64(b.ells[i]))
		h.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(b.weights[i]))
		h.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(b.bpws[i])))
		h.Write(buf[:])
	}
}
