// Package curve samples and describes the static transfer curve of a clip
// snapshot.
package curve

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-clip/dsp/effects/clip"
	"github.com/cwbudde/algo-clip/dsp/signal"
)

// Point is one input/output pair of a transfer curve.
type Point struct {
	In  float32
	Out float32
}

// Properties summarises a sampled transfer curve.
type Properties struct {
	// Peak is the largest output magnitude.
	Peak float32
	// Monotonic reports whether the output never decreases as input rises.
	Monotonic bool
	// FoldOnset is the first input after which the output decreases, or NaN
	// for a monotonic curve.
	FoldOnset float32
	// SymmetryError is the largest |f(x) + f(-x)| over mirrored points. It
	// is 0 for an odd curve and NaN when the sample grid is not symmetric.
	SymmetryError float32
}

// Sample evaluates snap at points evenly spaced inputs from lo to hi.
func Sample(snap clip.Snapshot, lo, hi float64, points int) ([]Point, error) {
	if lo >= hi {
		return nil, fmt.Errorf("curve range must be increasing: [%g, %g]", lo, hi)
	}

	in, err := signal.Ramp(lo, hi, points)
	if err != nil {
		return nil, fmt.Errorf("curve inputs: %w", err)
	}

	out := make([]float32, len(in))
	snap.ApplyBlock(out, in)

	pts := make([]Point, len(in))
	for i := range in {
		pts[i] = Point{In: in[i], Out: out[i]}
	}

	return pts, nil
}

// Describe computes curve properties. pts must be sorted by input.
func Describe(pts []Point) Properties {
	props := Properties{
		Monotonic:     true,
		FoldOnset:     float32(math.NaN()),
		SymmetryError: float32(math.NaN()),
	}

	for i, p := range pts {
		props.Peak = max(props.Peak, float32(math.Abs(float64(p.Out))))

		if i > 0 && p.Out < pts[i-1].Out && props.Monotonic {
			props.Monotonic = false
			props.FoldOnset = pts[i-1].In
		}
	}

	if symmetricGrid(pts) {
		var worst float32

		for i := range len(pts) / 2 {
			j := len(pts) - 1 - i
			d := float32(math.Abs(float64(pts[i].Out + pts[j].Out)))
			worst = max(worst, d)
		}

		props.SymmetryError = worst
	}

	return props
}

func symmetricGrid(pts []Point) bool {
	if len(pts) < 2 {
		return false
	}

	const tol = 1e-6

	for i := range len(pts) / 2 {
		j := len(pts) - 1 - i
		if math.Abs(float64(pts[i].In+pts[j].In)) > tol {
			return false
		}
	}

	return true
}
