package estimate

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-pcl/master"
)

// unassignedIndex is the serialized form of an unassigned bandpower.
const unassignedIndex = -1

// BandIndex is the bandpower a multipole belongs to, or none.
// The zero value is unassigned.
type BandIndex struct {
	index    int
	assigned bool
}

// Band returns an assigned bandpower index.
func Band(i int) BandIndex { return BandIndex{index: i, assigned: true} }

// Unassigned returns the index of a multipole outside every bin.
func Unassigned() BandIndex { return BandIndex{} }

// Index returns the bandpower ordinal and whether it is assigned.
func (b BandIndex) Index() (int, bool) { return b.index, b.assigned }

// IsAssigned reports whether the multipole belongs to a bandpower.
func (b BandIndex) IsAssigned() bool { return b.assigned }

// Raw returns the bandpower ordinal, or -1 when unassigned.
func (b BandIndex) Raw() int {
	if !b.assigned {
		return unassignedIndex
	}
	return b.index
}

func (b BandIndex) String() string {
	if !b.assigned {
		return "unassigned"
	}
	return fmt.Sprintf("band %d", b.index)
}

// BandpowerEntry describes one multipole of the expanded table.
type BandpowerEntry struct {
	Ell    int
	Weight float64
	Band   BandIndex
}

// BandpowerTable has one entry per multipole from the first LMin to the
// last LMax of a bin specification.
type BandpowerTable []BandpowerEntry

// BuildBandpowers expands spec into a per-multipole table. Each multipole
// of a row gets weight 1/width and the row ordinal as band; multipoles in
// gaps between rows are unassigned with zero weight.
func BuildBandpowers(spec BinSpec) (BandpowerTable, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	l0 := spec.LMin()
	table := make(BandpowerTable, spec.LMax()-l0+1)
	for i := range table {
		table[i] = BandpowerEntry{Ell: l0 + i, Band: Unassigned()}
	}

	for ib, iv := range spec {
		w := 1 / float64(iv.Width())
		for l := iv.LMin; l <= iv.LMax; l++ {
			table[l-l0].Weight = w
			table[l-l0].Band = Band(ib)
		}
	}
	return table, nil
}

// Arrays returns the table as parallel multipole, weight and bandpower
// index arrays, with -1 for unassigned multipoles.
func (t BandpowerTable) Arrays() (ells []int, weights []float64, bpws []int) {
	ells = make([]int, len(t))
	weights = make([]float64, len(t))
	bpws = make([]int, len(t))
	for i, e := range t {
		ells[i] = e.Ell
		weights[i] = e.Weight
		bpws[i] = e.Band.Raw()
	}
	return ells, weights, bpws
}

// WriteTo writes the table as three whitespace-delimited columns
// (multipole, weight, bandpower index) after a header comment.
func (t BandpowerTable) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64

	k, err := fmt.Fprintln(bw, "# ells   weights   bandpower")
	n += int64(k)
	if err != nil {
		return n, err
	}
	for _, e := range t {
		k, err := fmt.Fprintf(bw, "%.18e %.18e %.18e\n", float64(e.Ell), e.Weight, float64(e.Band.Raw()))
		n += int64(k)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// WriteFile writes the table to path, replacing any existing file.
func (t BandpowerTable) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := t.WriteTo(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// NewBins expands spec into the engine binning for resolution nside. When
// a bandpower dump path is configured and the binning is accepted, the
// expanded table is written there.
func NewBins(nside int, spec BinSpec, opts ...Option) (*master.Bins, BandpowerTable, error) {
	cfg := ApplyOptions(opts...)

	table, err := BuildBandpowers(spec)
	if err != nil {
		return nil, nil, err
	}

	cfg.Logger.Info("initializing bins",
		zap.Int("bins", len(spec)),
		zap.Int("lmin", spec.LMin()),
		zap.Int("lmax", spec.LMax()))

	ells, weights, bpws := table.Arrays()
	b, err := master.NewBins(nside, ells, weights, bpws)
	if err != nil {
		return nil, nil, err
	}

	if cfg.BandpowerPath != "" {
		if err := table.WriteFile(cfg.BandpowerPath); err != nil {
			return nil, nil, fmt.Errorf("estimate: write bandpowers: %w", err)
		}
		cfg.Logger.Info("bandpowers written", zap.String("path", cfg.BandpowerPath))
	}
	return b, table, nil
}
