package clip

import (
	"math"

	"github.com/cwbudde/algo-clip/dsp/param"
)

// Snapshot is the set of parameter values used for one processing block.
// For KindSimple only Threshold and Gain are meaningful; LowerThreshold
// mirrors Threshold and Fold stays 0.
type Snapshot struct {
	Kind           Kind
	Threshold      float32
	LowerThreshold float32
	Fold           float32
	Gain           float32
}

// SimpleSnapshot builds a KindSimple snapshot, applying the same clamps as
// the parameter store.
func SimpleSnapshot(threshold, gain float32) Snapshot {
	specs := KindSimple.Specs()
	t := constrain(specs[SimpleThreshold], threshold)

	return Snapshot{
		Kind:           KindSimple,
		Threshold:      t,
		LowerThreshold: t,
		Gain:           constrain(specs[SimpleGain], gain),
	}
}

// FoldingSnapshot builds a KindFolding snapshot, applying the same clamps as
// the parameter store.
func FoldingSnapshot(threshold, lowerThreshold, fold, gain float32) Snapshot {
	specs := KindFolding.Specs()

	return Snapshot{
		Kind:           KindFolding,
		Threshold:      constrain(specs[FoldThreshold], threshold),
		LowerThreshold: constrain(specs[FoldLowerThreshold], lowerThreshold),
		Fold:           constrain(specs[FoldAmount], fold),
		Gain:           constrain(specs[FoldGain], gain),
	}
}

// constrain clamps like param.Store.Set, falling back to the default for NaN.
func constrain(s param.Spec, v float32) float32 {
	if math.IsNaN(float64(v)) {
		return s.Default
	}

	return s.Constrain(v)
}

// readSnapshot loads the kind's parameters from st, one atomic load each.
func readSnapshot(kind Kind, st *param.Store) Snapshot {
	switch kind {
	case KindFolding:
		return Snapshot{
			Kind:           KindFolding,
			Threshold:      st.Get(FoldThreshold),
			LowerThreshold: st.Get(FoldLowerThreshold),
			Fold:           st.Get(FoldAmount),
			Gain:           st.Get(FoldGain),
		}
	default:
		t := st.Get(SimpleThreshold)

		return Snapshot{
			Kind:           KindSimple,
			Threshold:      t,
			LowerThreshold: t,
			Gain:           st.Get(SimpleGain),
		}
	}
}

// Apply runs the kind's transfer function on x.
func (s Snapshot) Apply(x float32) float32 {
	if s.Kind == KindFolding {
		return Fold(x, s.Threshold, s.LowerThreshold, s.Fold, s.Gain)
	}

	return HardClip(x, s.Threshold/simpleThresholdScale, s.Gain)
}

// ApplyBlock writes Apply(src[i]) to dst[i] for the common length of both
// slices and returns that length. dst and src may alias.
func (s Snapshot) ApplyBlock(dst, src []float32) int {
	n := min(len(dst), len(src))
	src = src[:n]
	dst = dst[:n]

	if s.Kind == KindFolding {
		for i, x := range src {
			dst[i] = Fold(x, s.Threshold, s.LowerThreshold, s.Fold, s.Gain)
		}

		return n
	}

	t := s.Threshold / simpleThresholdScale
	for i, x := range src {
		dst[i] = HardClip(x, t, s.Gain)
	}

	return n
}

// Peak returns the largest output magnitude the snapshot can produce for
// input within [-1, 1].
func (s Snapshot) Peak() float32 {
	var peak float32

	for _, x := range []float32{-1, 1, s.Threshold, -s.LowerThreshold, s.Threshold / simpleThresholdScale} {
		if x < -1 || x > 1 {
			continue
		}

		y := s.Apply(x)
		if y < 0 {
			y = -y
		}

		peak = max(peak, y)
	}

	return peak
}
