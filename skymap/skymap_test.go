package skymap

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-pcl/healpix"
)

func rampMap(n int) []float64 {
	m := make([]float64, n)
	for i := range m {
		m[i] = float64(i)*0.25 - 3
	}
	return m
}

func TestFormatFor(t *testing.T) {
	tests := map[string]Format{
		"mask.bin":   FormatBinary,
		"mask.F64":   FormatBinary,
		"a/b/c.raw":  FormatBinary,
		"map.txt":    FormatText,
		"map.dat":    FormatText,
		"map":        FormatText,
		"map.fits.x": FormatText,
	}
	for path, want := range tests {
		if got := FormatFor(path); got != want {
			t.Fatalf("FormatFor(%q)=%v want=%v", path, got, want)
		}
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := rampMap(48)

	for _, name := range []string{"m.txt", "m.bin"} {
		path := filepath.Join(dir, name)
		if err := Write(path, want); err != nil {
			t.Fatalf("%s: Write error: %v", name, err)
		}
		got, err := ReadNside(path, 2)
		if err != nil {
			t.Fatalf("%s: ReadNside error: %v", name, err)
		}
		if len(got) != len(want) {
			t.Fatalf("%s: length %d want %d", name, len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("%s: index %d: got %v want %v", name, i, got[i], want[i])
			}
		}
	}
}

func TestReadTextComments(t *testing.T) {
	in := "# header\n1 2 3\n\n4 # trailing\n5e-1\n"
	got, err := ReadText(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadText error: %v", err)
	}
	want := []float64{1, 2, 3, 4, 0.5}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestReadErrors(t *testing.T) {
	if _, err := ReadText(strings.NewReader("# nothing\n")); !errors.Is(err, ErrEmptyMap) {
		t.Fatalf("expected ErrEmptyMap, got %v", err)
	}
	if _, err := ReadText(strings.NewReader("1 x 3")); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := ReadBinary(bytes.NewReader(make([]byte, 12))); !errors.Is(err, ErrTrailingBytes) {
		t.Fatalf("expected ErrTrailingBytes, got %v", err)
	}

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.txt")
	if err := os.WriteFile(bad, []byte("1 2 3 4 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Read(bad); !errors.Is(err, healpix.ErrInvalidPixelCount) {
		t.Fatalf("expected ErrInvalidPixelCount, got %v", err)
	}

	good := filepath.Join(dir, "good.bin")
	if err := Write(good, rampMap(12)); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadNside(good, 2); !errors.Is(err, ErrNsideMismatch) {
		t.Fatalf("expected ErrNsideMismatch, got %v", err)
	}

	if _, err := Read(filepath.Join(dir, "missing.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}
