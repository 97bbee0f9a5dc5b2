package healpix

import (
	"math"
	"testing"
)

func TestGaussianBeam(t *testing.T) {
	bl, err := GaussianBeam(DegToRad(5), 20)
	if err != nil {
		t.Fatalf("GaussianBeam error: %v", err)
	}
	if bl[0] != 1 {
		t.Fatalf("b(0)=%v want=1", bl[0])
	}
	for l := 1; l < len(bl); l++ {
		if !(bl[l] < bl[l-1]) {
			t.Fatalf("beam not decreasing at l=%d", l)
		}
	}

	flat, err := GaussianBeam(0, 10)
	if err != nil {
		t.Fatalf("GaussianBeam error: %v", err)
	}
	for l, v := range flat {
		if v != 1 {
			t.Fatalf("zero-width beam b(%d)=%v want=1", l, v)
		}
	}

	if _, err := GaussianBeam(-1, 10); err == nil {
		t.Fatalf("expected error for negative fwhm")
	}
}

func TestSmoothPreservesConstantMap(t *testing.T) {
	g, err := NewGeometry(16)
	if err != nil {
		t.Fatalf("NewGeometry error: %v", err)
	}

	const c = 2.0
	m := make([]float64, g.Npix())
	for i := range m {
		m[i] = c
	}

	out, err := Smooth(g, m, DegToRad(30))
	if err != nil {
		t.Fatalf("Smooth error: %v", err)
	}
	if len(out) != len(m) {
		t.Fatalf("length mismatch: got %d want %d", len(out), len(m))
	}
	for i, v := range out {
		if math.Abs(v-c) > 0.05*c {
			t.Fatalf("pixel %d: got %v want %v", i, v, c)
		}
	}
	if m[0] != c {
		t.Fatalf("input map was modified")
	}
}

func TestDegToRad(t *testing.T) {
	if got := DegToRad(180); math.Abs(got-math.Pi) > 1e-15 {
		t.Fatalf("DegToRad(180)=%v want=pi", got)
	}
}
