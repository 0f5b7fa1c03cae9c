package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine32(t *testing.T) {
	s := DeterministicSine32(1000, 48000, 1.0, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}
	if s[0] != 0 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	for i, v := range s {
		if v < -1 || v > 1 {
			t.Fatalf("s[%d] = %v out of range", i, v)
		}
	}
	// Quarter period of 1 kHz at 48 kHz is 12 samples.
	if math.Abs(float64(s[12])-1) > 1e-6 {
		t.Fatalf("s[12] = %v, want 1", s[12])
	}
}

func TestDeterministicNoise32Reproducible(t *testing.T) {
	a := DeterministicNoise32(42, 2, 256)
	b := DeterministicNoise32(42, 2, 256)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("non-deterministic at index %d", i)
		}
		if a[i] < -2 || a[i] > 2 {
			t.Fatalf("a[%d] = %v out of range", i, a[i])
		}
	}
}

func TestRamp32(t *testing.T) {
	r := Ramp32(-1, 1, 5)
	want := []float32{-1, -0.5, 0, 0.5, 1}
	RequireSliceNearlyEqual32(t, r, want, 0)

	if one := Ramp32(3, 4, 1); one[0] != 3 {
		t.Fatalf("Ramp32 single = %v", one)
	}
}
