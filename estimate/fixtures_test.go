package estimate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-pcl/internal/testutil"
	"github.com/cwbudde/algo-pcl/master"
	"github.com/cwbudde/algo-pcl/skymap"
)

const testNside = 8

var testSpec = BinSpec{{2, 5}, {6, 11}, {12, 17}, {18, 23}}

func flatCl(int) float64 { return 1 }

func testFields(t *testing.T) (*master.Field, *master.Field) {
	t.Helper()
	f1, err := InitField(testutil.StripMask(testNside, 0.2), testutil.GaussianSky(testNside, 1, flatCl))
	require.NoError(t, err)
	f2, err := InitField(testutil.StripMask(testNside, 0.3), testutil.GaussianSky(testNside, 2, flatCl))
	require.NoError(t, err)
	return f1, f2
}

func testBins(t *testing.T, spec BinSpec) *master.Bins {
	t.Helper()
	b, _, err := NewBins(testNside, spec)
	require.NoError(t, err)
	return b
}

// inputFiles holds the paths of a complete set of run inputs in a temp dir.
type inputFiles struct {
	dir                      string
	mask1, map1, mask2, map2 string
	bins                     string
}

func writeInputs(t *testing.T) inputFiles {
	t.Helper()
	dir := t.TempDir()
	in := inputFiles{
		dir:   dir,
		mask1: filepath.Join(dir, "mask1.txt"),
		map1:  filepath.Join(dir, "map1.bin"),
		mask2: filepath.Join(dir, "mask2.txt"),
		map2:  filepath.Join(dir, "map2.bin"),
		bins:  filepath.Join(dir, "bins.txt"),
	}
	require.NoError(t, skymap.Write(in.mask1, testutil.StripMask(testNside, 0.2)))
	require.NoError(t, skymap.Write(in.map1, testutil.GaussianSky(testNside, 1, flatCl)))
	require.NoError(t, skymap.Write(in.mask2, testutil.StripMask(testNside, 0.3)))
	require.NoError(t, skymap.Write(in.map2, testutil.GaussianSky(testNside, 2, flatCl)))
	require.NoError(t, os.WriteFile(in.bins, []byte("# lmin lmax\n2 5\n6 11\n12 17\n18 23\n"), 0o644))
	return in
}
