package estimate

import (
	"bytes"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-pcl/internal/testutil"
)

func TestBuildBandpowersExample(t *testing.T) {
	table, err := BuildBandpowers(BinSpec{{2, 4}, {5, 9}})
	if err != nil {
		t.Fatalf("BuildBandpowers error: %v", err)
	}

	ells, weights, bpws := table.Arrays()
	wantElls := []int{2, 3, 4, 5, 6, 7, 8, 9}
	wantWeights := []float64{1. / 3, 1. / 3, 1. / 3, 0.2, 0.2, 0.2, 0.2, 0.2}
	wantBpws := []int{0, 0, 0, 1, 1, 1, 1, 1}

	if len(ells) != len(wantElls) {
		t.Fatalf("len=%d want=%d", len(ells), len(wantElls))
	}
	for i := range wantElls {
		if ells[i] != wantElls[i] || bpws[i] != wantBpws[i] {
			t.Fatalf("entry %d: got (%d, %d) want (%d, %d)", i, ells[i], bpws[i], wantElls[i], wantBpws[i])
		}
	}
	testutil.RequireSliceNearlyEqual(t, weights, wantWeights, 1e-15)
}

func TestBuildBandpowersGapIsUnassigned(t *testing.T) {
	table, err := BuildBandpowers(BinSpec{{2, 3}, {6, 7}})
	if err != nil {
		t.Fatalf("BuildBandpowers error: %v", err)
	}
	if len(table) != 6 {
		t.Fatalf("len=%d want=6", len(table))
	}

	for _, e := range table {
		inGap := e.Ell == 4 || e.Ell == 5
		if inGap {
			if e.Band.IsAssigned() || e.Weight != 0 || e.Band.Raw() != -1 {
				t.Fatalf("ell %d: got %v weight %v, want unassigned with zero weight", e.Ell, e.Band, e.Weight)
			}
			continue
		}
		if !e.Band.IsAssigned() || e.Weight != 0.5 {
			t.Fatalf("ell %d: got %v weight %v", e.Ell, e.Band, e.Weight)
		}
	}

	if idx, ok := table[4].Band.Index(); !ok || idx != 1 {
		t.Fatalf("ell 6: got (%d, %v) want (1, true)", idx, ok)
	}
}

func TestBuildBandpowersContiguousProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for trial := 0; trial < 50; trial++ {
		l0 := rng.Intn(10)
		nbins := 1 + rng.Intn(8)
		spec := make(BinSpec, nbins)
		next := l0
		for i := range spec {
			w := 1 + rng.Intn(7)
			spec[i] = Interval{LMin: next, LMax: next + w - 1}
			next += w
		}

		table, err := BuildBandpowers(spec)
		if err != nil {
			t.Fatalf("trial %d: BuildBandpowers error: %v", trial, err)
		}
		if len(table) != spec.LMax()-spec.LMin()+1 {
			t.Fatalf("trial %d: len=%d want=%d", trial, len(table), spec.LMax()-spec.LMin()+1)
		}

		sums := make([]float64, nbins)
		prev := -1
		for _, e := range table {
			idx, ok := e.Band.Index()
			if !ok {
				t.Fatalf("trial %d: ell %d unassigned in contiguous spec", trial, e.Ell)
			}
			if idx < prev {
				t.Fatalf("trial %d: band index decreased at ell %d", trial, e.Ell)
			}
			prev = idx
			sums[idx] += e.Weight
		}
		for ib, s := range sums {
			if math.Abs(s-1) > 1e-12 {
				t.Fatalf("trial %d: band %d weight sum=%v want 1", trial, ib, s)
			}
		}
	}
}

func TestBandpowerTableWriteTo(t *testing.T) {
	table, err := BuildBandpowers(BinSpec{{2, 3}, {5, 5}})
	if err != nil {
		t.Fatalf("BuildBandpowers error: %v", err)
	}

	var buf bytes.Buffer
	n, err := table.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo error: %v", err)
	}
	if n != int64(buf.Len()) {
		t.Fatalf("WriteTo count=%d want=%d", n, buf.Len())
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines want 5:\n%s", len(lines), buf.String())
	}
	if lines[0] != "# ells   weights   bandpower" {
		t.Fatalf("header=%q", lines[0])
	}
	if lines[3] != "4.000000000000000000e+00 0.000000000000000000e+00 -1.000000000000000000e+00" {
		t.Fatalf("gap row=%q", lines[3])
	}
}

func TestNewBinsDumpsBandpowers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bandpowers.dat")

	b, table, err := NewBins(4, BinSpec{{2, 4}, {5, 9}}, WithBandpowerDump(path))
	if err != nil {
		t.Fatalf("NewBins error: %v", err)
	}
	if b.Count() != 2 || len(table) != 8 {
		t.Fatalf("bins=%d table=%d want 2 and 8", b.Count(), len(table))
	}
	testutil.RequireSliceNearlyEqual(t, b.EffectiveElls(), []float64{3, 7}, 1e-12)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("bandpower dump missing: %v", err)
	}
	if got := strings.Count(string(data), "\n"); got != 9 {
		t.Fatalf("dump has %d lines want 9", got)
	}
}

func TestNewBinsWithoutDumpWritesNothing(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Chdir(wd) }()

	if _, _, err := NewBins(4, BinSpec{{2, 4}}); err != nil {
		t.Fatalf("NewBins error: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("unexpected files written: %v", entries)
	}
}

func TestNewBinsRejectsLMaxAboveResolution(t *testing.T) {
	if _, _, err := NewBins(2, BinSpec{{2, 8}}); err == nil {
		t.Fatalf("expected error for lmax 8 at nside 2")
	}
}

func TestNewBinsRejectedBinningLeavesNoDump(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bandpowers.dat")
	if _, _, err := NewBins(2, BinSpec{{2, 8}}, WithBandpowerDump(path)); err == nil {
		t.Fatalf("expected error for lmax 8 at nside 2")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("rejected binning must not be dumped, stat err=%v", err)
	}
}
