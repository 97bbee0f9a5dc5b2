package estimate

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func TestWriteSpectrumToHalfWidths(t *testing.T) {
	s := Spectrum{Ell: []float64{3, 7}, Cl: []float64{1e-3, 2e-4}}

	var buf bytes.Buffer
	if err := WriteSpectrumTo(&buf, s, BinSpec{{2, 4}, {5, 9}}); err != nil {
		t.Fatalf("WriteSpectrumTo error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines want 3:\n%s", len(lines), buf.String())
	}
	if lines[0] != "# ell   cl   xerr" {
		t.Fatalf("header=%q", lines[0])
	}

	wantXerr := []float64{1.5, 2.5}
	for i, line := range lines[1:] {
		cols := strings.Fields(line)
		if len(cols) != 3 {
			t.Fatalf("row %d: got %d columns", i, len(cols))
		}
		vals := make([]float64, 3)
		for j, c := range cols {
			v, err := strconv.ParseFloat(c, 64)
			if err != nil {
				t.Fatalf("row %d col %d: %v", i, j, err)
			}
			vals[j] = v
		}
		if vals[0] != s.Ell[i] || vals[1] != s.Cl[i] || vals[2] != wantXerr[i] {
			t.Fatalf("row %d: got %v", i, vals)
		}
	}
}

func TestWriteSpectrumLengthMismatchCreatesNoFile(t *testing.T) {
	dir := t.TempDir()
	bins := filepath.Join(dir, "bins.txt")
	if err := os.WriteFile(bins, []byte("2 4\n5 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "cl.txt")

	err := WriteSpectrum(out, Spectrum{Ell: []float64{3}, Cl: []float64{1}}, bins)
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
	if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("output file should not exist, stat err=%v", err)
	}
}

func TestWriteSpectrumFile(t *testing.T) {
	dir := t.TempDir()
	bins := filepath.Join(dir, "bins.txt")
	if err := os.WriteFile(bins, []byte("10 19\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "cl.txt")

	if err := WriteSpectrum(out, Spectrum{Ell: []float64{14.5}, Cl: []float64{0.25}}, bins); err != nil {
		t.Fatalf("WriteSpectrum error: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	want := "# ell   cl   xerr\n1.450000000000000000e+01 2.500000000000000000e-01 5.000000000000000000e+00\n"
	if string(data) != want {
		t.Fatalf("got %q want %q", data, want)
	}
}
