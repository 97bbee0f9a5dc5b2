package testutil

import (
	"math"
	"testing"
)

func TestConstantMap(t *testing.T) {
	m := ConstantMap(2, 3.5)
	if len(m) != 48 {
		t.Fatalf("len = %d, want 48", len(m))
	}
	for i, v := range m {
		if v != 3.5 {
			t.Fatalf("m[%d] = %v, want 3.5", i, v)
		}
	}
}

func TestStripMaskIsBinaryAndSymmetric(t *testing.T) {
	m := StripMask(4, 0.3)
	kept := 0
	for i, v := range m {
		if v != 0 && v != 1 {
			t.Fatalf("m[%d] = %v, want 0 or 1", i, v)
		}
		if v != m[len(m)-1-i] {
			t.Fatalf("mask not north/south symmetric at %d", i)
		}
		if v == 1 {
			kept++
		}
	}
	if kept == 0 || kept == len(m) {
		t.Fatalf("strip mask kept %d of %d pixels", kept, len(m))
	}
}

func TestCapMaskKeepsNorthOnly(t *testing.T) {
	m := CapMask(4, 0.5)
	if m[0] != 1 {
		t.Fatalf("north pole pixel should be kept")
	}
	if m[len(m)-1] != 0 {
		t.Fatalf("south pole pixel should be masked")
	}
}

func TestGaussianSkyReproducible(t *testing.T) {
	cl := func(l int) float64 { return 1 / float64(l+1) }
	a := GaussianSky(4, 11, cl)
	b := GaussianSky(4, 11, cl)
	if len(a) != 192 {
		t.Fatalf("len = %d, want 192", len(a))
	}
	RequireFinite(t, a)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("non-deterministic at index %d", i)
		}
	}
}

func TestWhiteNoiseMapReproducible(t *testing.T) {
	a := WhiteNoiseMap(4, 42, 2)
	b := WhiteNoiseMap(4, 42, 2)
	if len(a) != 192 {
		t.Fatalf("len=%d want 192", len(a))
	}
	var sum2 float64
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("non-deterministic at index %d", i)
		}
		sum2 += a[i] * a[i]
	}
	if rms := math.Sqrt(sum2 / float64(len(a))); math.Abs(rms-2) > 0.5 {
		t.Fatalf("rms=%v want about 2", rms)
	}
}
