package window

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestGenerateAllTypes(t *testing.T) {
	for _, typ := range Types() {
		t.Run(Info(typ).Name, func(t *testing.T) {
			w := Generate(typ, 64)
			if len(w) != 64 {
				t.Fatalf("len=%d, want 64", len(w))
			}

			for i, v := range w {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("coefficient[%d] invalid: %v", i, v)
				}
			}
		})
	}
}

func TestGenerateEmpty(t *testing.T) {
	if w := Generate(TypeHann, 0); w != nil {
		t.Fatalf("Generate(0) = %v, want nil", w)
	}
}

func TestPeriodicDiffersFromSymmetric(t *testing.T) {
	a := Generate(TypeHann, 16)
	b := Generate(TypeHann, 16, WithPeriodic())

	if !almostEqual(a[15], 0, 1e-12) {
		t.Fatalf("symmetric end coefficient = %v, want 0", a[15])
	}
	if almostEqual(a[15], b[15], 1e-12) {
		t.Fatal("expected different end coefficient for periodic form")
	}
}

func TestMetadataMatchesCoefficients(t *testing.T) {
	const n = 4096

	for _, typ := range Types() {
		m := Info(typ)
		w := Generate(typ, n, WithPeriodic())

		sum, sumSq := 0.0, 0.0
		for _, v := range w {
			sum += v
			sumSq += v * v
		}

		if cg := sum / n; !almostEqual(cg, m.CoherentGain, 1e-9) {
			t.Errorf("%s coherent gain = %v, metadata %v", m.Name, cg, m.CoherentGain)
		}
		if enbw := n * sumSq / (sum * sum); !almostEqual(enbw, m.ENBW, 1e-3) {
			t.Errorf("%s ENBW = %v, metadata %v", m.Name, enbw, m.ENBW)
		}
		if m.MainLobeBins < 1 {
			t.Errorf("%s main lobe bins = %d", m.Name, m.MainLobeBins)
		}
	}
}

func TestApplyInPlaceByType(t *testing.T) {
	buf := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	Apply(TypeRectangular, buf)

	for i, v := range buf {
		if v != float64(i+1) {
			t.Fatalf("rectangular should be passthrough at %d: %v", i, v)
		}
	}

	Apply(TypeHann, buf)

	if buf[0] != 0 {
		t.Fatalf("hann first sample should be 0, got %v", buf[0])
	}
}

func TestParseType(t *testing.T) {
	for _, typ := range Types() {
		got, err := ParseType(typ.String())
		if err != nil || got != typ {
			t.Fatalf("ParseType(%q) = %v, %v", typ.String(), got, err)
		}
	}

	if got, err := ParseType(" FlatTop "); err != nil || got != TypeFlatTop {
		t.Fatalf("ParseType is case-insensitive: %v, %v", got, err)
	}
	if _, err := ParseType("kaiser"); err == nil {
		t.Fatal("expected error for unknown window")
	}
	if Type(99).String() != "window(99)" {
		t.Fatalf("String() = %q", Type(99).String())
	}
}
