package core

import "math"

const defaultEpsilon = 1e-6

// AtLeast returns value raised to floor when it lies below it.
// NaN values are returned unchanged so callers can decide how to treat them.
func AtLeast(value, floor float32) float32 {
	if value < floor {
		return floor
	}

	return value
}

// AtMost returns value lowered to ceiling when it lies above it.
func AtMost(value, ceiling float32) float32 {
	if value > ceiling {
		return ceiling
	}

	return value
}

// Clamp32 limits value to the inclusive range [lo, hi]. Either bound may be
// infinite to leave that side open.
func Clamp32(value, lo, hi float32) float32 {
	if lo > hi {
		lo, hi = hi, lo
	}

	return AtMost(AtLeast(value, lo), hi)
}

// IsFinite32 reports whether x is neither NaN nor an infinity.
func IsFinite32(x float32) bool {
	return !math.IsNaN(float64(x)) && !math.IsInf(float64(x), 0)
}

// NearlyEqual32 reports whether a and b are equal within eps, using an
// absolute test near zero and a relative one elsewhere.
func NearlyEqual32(a, b, eps float32) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := float32(math.Abs(float64(a - b)))
	if diff <= eps {
		return true
	}

	largest := float32(math.Max(math.Abs(float64(a)), math.Abs(float64(b))))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}
