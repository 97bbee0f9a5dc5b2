package master

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func exampleBins(t *testing.T, nside int) *Bins {
	t.Helper()
	ells := []int{2, 3, 4, 5, 6, 7, 8, 9}
	weights := []float64{1. / 3, 1. / 3, 1. / 3, 0.2, 0.2, 0.2, 0.2, 0.2}
	bpws := []int{0, 0, 0, 1, 1, 1, 1, 1}
	b, err := NewBins(nside, ells, weights, bpws)
	require.NoError(t, err)
	return b
}

func TestNewBinsEffectiveElls(t *testing.T) {
	b := exampleBins(t, 4)

	require.Equal(t, 2, b.Count())
	require.Equal(t, 9, b.LMax())
	require.InDeltaSlice(t, []float64{3, 7}, b.EffectiveElls(), 1e-12)
}

func TestNewBinsNormalizesWeights(t *testing.T) {
	b, err := NewBins(4, []int{2, 3}, []float64{2, 2}, []int{0, 0})
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{0.5, 0.5}, b.Weights(), 1e-15)
}

func TestNewBinsExcludesUnassigned(t *testing.T) {
	ells := []int{2, 3, 4, 5, 6}
	weights := []float64{0.5, 0.5, 0, 0.5, 0.5}
	bpws := []int{0, 0, -1, 1, 1}
	b, err := NewBins(4, ells, weights, bpws)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{2.5, 5.5}, b.EffectiveElls(), 1e-12)

	cl := []float64{0, 0, 1, 3, 1000, 5, 7}
	binned, err := b.BinCell(cl)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{2, 6}, binned, 1e-12)
}

func TestNewBinsValidation(t *testing.T) {
	tests := []struct {
		name    string
		nside   int
		ells    []int
		weights []float64
		bpws    []int
		wantErr error
	}{
		{"length", 4, []int{2, 3}, []float64{1}, []int{0, 0}, ErrBinsLength},
		{"negative ell", 4, []int{-1}, []float64{1}, []int{0}, ErrNegativeEll},
		{"lmax", 2, []int{6}, []float64{1}, []int{0}, ErrLMaxExceeded},
		{"empty band", 4, []int{2, 3}, []float64{1, 1}, []int{0, 2}, ErrEmptyBand},
		{"zero weight", 4, []int{2}, []float64{0}, []int{0}, ErrEmptyBand},
		{"no bands", 4, []int{2}, []float64{0}, []int{-1}, ErrNoBands},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBins(tt.nside, tt.ells, tt.weights, tt.bpws)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBinCellShortSpectrum(t *testing.T) {
	b := exampleBins(t, 4)
	_, err := b.BinCell(make([]float64, 5))
	require.ErrorIs(t, err, ErrShortSpectrum)
}
