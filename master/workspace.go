package master

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"
	"math"

	"gonum.org/v1/gonum/mat"
)

// maxCondition bounds the accepted condition number of the binned coupling
// matrix.
const maxCondition = 1e14

// Workspace holds the binned mode-coupling matrix of a pair of masks and its
// LU factorization.
type Workspace struct {
	bins        *Bins
	coupling    *mat.Dense
	lu          mat.LU
	fingerprint uint64
}

// ComputeWorkspace computes the binned mode-coupling matrix for two fields
// and a binning. Only the masks of the fields are used.
//
// The unbinned matrix is
//
//	M(l1,l2) = (2*l2+1)/(4*pi) * sum_l3 (2*l3+1) * W(l3) * (l1 l2 l3; 0 0 0)^2
//
// where W is the cross spectrum of the two masks. It is binned as
// M(b1,b2) = sum_{l1 in b1} w(l1) * sum_{l2 in b2} M(l1,l2).
func ComputeWorkspace(f1, f2 *Field, b *Bins) (*Workspace, error) {
	if f1.Nside() != b.Nside() || f2.Nside() != b.Nside() {
		return nil, fmt.Errorf("%w: fields %d/%d, bins %d", ErrNsideMismatch, f1.Nside(), f2.Nside(), b.Nside())
	}

	wl, err := maskSpectrum(f1, f2)
	if err != nil {
		return nil, err
	}
	if b.LMax() >= len(wl) {
		return nil, fmt.Errorf("%w: %d > %d", ErrLMaxExceeded, b.LMax(), len(wl)-1)
	}

	unbinned := couplingMatrix(wl, b.LMax())

	n := b.Count()
	coupling := mat.NewDense(n, n, nil)
	for b1, bd1 := range b.bands {
		for i, l1 := range bd1.ells {
			w1 := bd1.weights[i]
			for b2, bd2 := range b.bands {
				sum := 0.0
				for _, l2 := range bd2.ells {
					sum += unbinned[l1][l2]
				}
				coupling.Set(b1, b2, coupling.At(b1, b2)+w1*sum)
			}
		}
	}

	return newWorkspace(b, coupling, fingerprint(b, wl))
}

func newWorkspace(b *Bins, coupling *mat.Dense, fp uint64) (*Workspace, error) {
	ws := &Workspace{bins: b, coupling: coupling, fingerprint: fp}
	ws.lu.Factorize(coupling)
	if c := ws.lu.Cond(); math.IsInf(c, 1) || math.IsNaN(c) || c > maxCondition {
		return nil, fmt.Errorf("%w: condition number %g", ErrSingularCoupling, c)
	}
	return ws, nil
}

// couplingMatrix returns the unbinned spin-0 coupling matrix for
// 0 <= l1, l2 <= lmax given the mask cross spectrum wl.
func couplingMatrix(wl []float64, lmax int) [][]float64 {
	lmaxMask := len(wl) - 1
	w3j := newThreeJ(2*lmax + lmaxMask)

	m := make([][]float64, lmax+1)
	for l1 := range m {
		m[l1] = make([]float64, lmax+1)
	}

	for l1 := 0; l1 <= lmax; l1++ {
		for l2 := l1; l2 <= lmax; l2++ {
			lo := l2 - l1
			hi := l1 + l2
			if hi > lmaxMask {
				hi = lmaxMask
			}
			sum := 0.0
			for l3 := lo; l3 <= hi; l3++ {
				if wl[l3] == 0 {
					continue
				}
				sum += float64(2*l3+1) * wl[l3] * w3j.square(l1, l2, l3)
			}
			sum /= 4 * math.Pi
			m[l1][l2] = float64(2*l2+1) * sum
			m[l2][l1] = float64(2*l1+1) * sum
		}
	}
	return m
}

// WorkspaceFingerprint hashes the resolution, the binning and the mask cross
// spectrum of two fields. Equal fingerprints imply equal coupling matrices.
func WorkspaceFingerprint(f1, f2 *Field, b *Bins) (uint64, error) {
	wl, err := maskSpectrum(f1, f2)
	if err != nil {
		return 0, err
	}
	return fingerprint(b, wl), nil
}

// fingerprint rounds the mask spectrum to 12 significant digits so that
// values reproduced by a different FFT path hash identically.
func fingerprint(b *Bins, wl []float64) uint64 {
	h := fnv.New64a()
	b.writeFingerprint(h)
	var buf [8]byte
	for _, v := range wl {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(roundSignificant(v, 12)))
		h.Write(buf[:])
	}
	return h.Sum64()
}

func roundSignificant(v float64, digits int) float64 {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	scale := math.Pow(10, float64(digits)-math.Ceil(math.Log10(math.Abs(v))))
	return math.Round(v*scale) / scale
}

// Bins returns the binning the workspace was computed for.
func (w *Workspace) Bins() *Bins { return w.bins }

// Nside returns the resolution the workspace was computed for.
func (w *Workspace) Nside() int { return w.bins.nside }

// Fingerprint returns the workspace fingerprint, see [WorkspaceFingerprint].
func (w *Workspace) Fingerprint() uint64 { return w.fingerprint }

// CouplingMatrix returns a copy of the binned coupling matrix.
func (w *Workspace) CouplingMatrix() *mat.Dense {
	return mat.DenseCopyOf(w.coupling)
}

// DecoupleCell converts a coupled per-multipole spectrum into decoupled
// bandpowers by solving M(b1,b2) * C(b2) = binned coupled spectrum.
func (w *Workspace) DecoupleCell(coupled []float64) ([]float64, error) {
	binned, err := w.bins.BinCell(coupled)
	if err != nil {
		return nil, err
	}

	var x mat.VecDense
	if err := w.lu.SolveVecTo(&x, false, mat.NewVecDense(len(binned), binned)); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, fmt.Errorf("master: decouple: %w", err)
		}
	}

	out := make([]float64, x.Len())
	for i := range out {
		out[i] = x.AtVec(i)
	}
	return out, nil
}

// ComputeFullMaster computes the coupled spectrum of two fields and
// decouples it in one call. When ws is nil the workspace is computed from
// the fields and b; otherwise ws is reused and b must match its binning.
func ComputeFullMaster(f1, f2 *Field, b *Bins, ws *Workspace) ([]float64, error) {
	if ws == nil {
		var err error
		ws, err = ComputeWorkspace(f1, f2, b)
		if err != nil {
			return nil, err
		}
	} else if ws.bins.Count() != b.Count() {
		return nil, fmt.Errorf("master: workspace has %d bandpowers, bins have %d", ws.bins.Count(), b.Count())
	}

	coupled, err := CoupledCell(f1, f2)
	if err != nil {
		return nil, err
	}
	return ws.DecoupleCell(coupled)
}
