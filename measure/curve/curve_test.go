package curve

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-clip/dsp/effects/clip"
	"github.com/cwbudde/algo-clip/internal/testutil"
)

func TestSampleValidation(t *testing.T) {
	snap := clip.SimpleSnapshot(1, 0.5)

	if _, err := Sample(snap, 1, -1, 10); err == nil {
		t.Fatal("expected error for decreasing range")
	}
	if _, err := Sample(snap, -1, 1, 1); err == nil {
		t.Fatal("expected error for a single point")
	}
}

func TestSimpleCurve(t *testing.T) {
	pts, err := Sample(clip.SimpleSnapshot(1, 0.5), -2, 2, 401)
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}

	if len(pts) != 401 || pts[0].In != -2 || pts[400].In != 2 {
		t.Fatalf("unexpected grid: len=%d first=%v last=%v", len(pts), pts[0], pts[400])
	}

	props := Describe(pts)
	if !props.Monotonic {
		t.Fatalf("hard clip should be monotonic, fold onset %g", props.FoldOnset)
	}
	if !math.IsNaN(float64(props.FoldOnset)) {
		t.Fatalf("FoldOnset = %g, want NaN", props.FoldOnset)
	}
	if props.Peak != 0.5 {
		t.Fatalf("Peak = %g, want 0.5", props.Peak)
	}
	if props.SymmetryError > 1e-6 {
		t.Fatalf("SymmetryError = %g, want ~0", props.SymmetryError)
	}
}

func TestFoldingCurveTurnsAtThreshold(t *testing.T) {
	pts, err := Sample(clip.FoldingSnapshot(0.5, 0.5, 0.5, 1), -1, 1, 201)
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}

	props := Describe(pts)
	if props.Monotonic {
		t.Fatal("fold > 0 should not be monotonic")
	}

	// The first decrease starts on the negative side, right at -lower_threshold.
	if math.Abs(float64(props.FoldOnset)+1) > 1e-6 {
		t.Fatalf("FoldOnset = %g, want -1 (output rises toward -lower_threshold)", props.FoldOnset)
	}
	if math.Abs(float64(props.Peak)-1) > 1e-6 {
		t.Fatalf("Peak = %g, want 1", props.Peak)
	}
}

func TestFoldingPositiveOnset(t *testing.T) {
	pts, err := Sample(clip.FoldingSnapshot(0.5, 0.5, 0.5, 1), 0, 1, 101)
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}

	props := Describe(pts)
	if math.Abs(float64(props.FoldOnset)-0.5) > 1e-6 {
		t.Fatalf("FoldOnset = %g, want 0.5", props.FoldOnset)
	}
	if !math.IsNaN(float64(props.SymmetryError)) {
		t.Fatalf("SymmetryError = %g, want NaN for a one-sided grid", props.SymmetryError)
	}
}

func TestAsymmetricCurve(t *testing.T) {
	pts, err := Sample(clip.FoldingSnapshot(0.8, 0.2, 0, 1), -1, 1, 101)
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}

	props := Describe(pts)
	if !props.Monotonic {
		t.Fatal("fold = 0 should be monotonic")
	}
	if props.SymmetryError < 0.1 {
		t.Fatalf("SymmetryError = %g, want visible asymmetry", props.SymmetryError)
	}
}

func TestDescribeEmpty(t *testing.T) {
	props := Describe(nil)
	if !props.Monotonic || props.Peak != 0 || !math.IsNaN(float64(props.SymmetryError)) {
		t.Fatalf("Describe(nil) = %+v", props)
	}
}

func TestSampleMatchesSnapshot(t *testing.T) {
	snap := clip.FoldingSnapshot(0.6, 0.4, -0.5, 0.8)

	pts, err := Sample(snap, -1.5, 1.5, 64)
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}

	in := testutil.Ramp32(-1.5, 1.5, 64)
	want := make([]float32, len(in))
	snap.ApplyBlock(want, in)

	got := make([]float32, len(pts))
	for i, p := range pts {
		got[i] = p.Out
	}

	testutil.RequireSliceNearlyEqual32(t, got, want, 1e-6)
	testutil.RequireBounded32(t, got, float64(Describe(pts).Peak))
}
