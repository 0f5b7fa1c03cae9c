package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine32 generates a deterministic float32 sine wave.
func DeterministicSine32(freqHz, sampleRate, amplitude float64, length int) []float32 {
	out := make([]float32, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = float32(amplitude * math.Sin(step*float64(i)))
	}
	return out
}

// DeterministicNoise32 generates white noise in [-amplitude, amplitude] with
// a fixed seed.
func DeterministicNoise32(seed int64, amplitude float64, length int) []float32 {
	out := make([]float32, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = float32((rng.Float64()*2 - 1) * amplitude)
	}
	return out
}

// Ramp32 generates length evenly spaced values from lo to hi inclusive.
func Ramp32(lo, hi float64, length int) []float32 {
	out := make([]float32, length)
	if length == 1 {
		out[0] = float32(lo)
		return out
	}
	step := (hi - lo) / float64(length-1)
	for i := range out {
		out[i] = float32(lo + step*float64(i))
	}
	return out
}
