package clip

// HardClip limits x to [-threshold, threshold] and renormalises so the clip
// point maps to gain. threshold must be > 0; the parameter store floors it.
func HardClip(x, threshold, gain float32) float32 {
	if x >= 0 {
		return min(x, threshold) / threshold * gain
	}

	return max(x, -threshold) / threshold * gain
}

// Fold is an asymmetric hard clip with linear fold-back. Positive input is
// bounded by threshold and negative input by lowerThreshold. Input beyond the
// bound has its overshoot, weighted by fold, subtracted from the clipped
// value, so the output turns back toward zero as the input keeps rising.
// fold = 0 reduces to HardClip; negative fold pushes the output beyond gain.
//
// Input equal to a bound is not clipped.
func Fold(x, threshold, lowerThreshold, fold, gain float32) float32 {
	if x >= 0 {
		if x > threshold {
			difference := x - threshold
			return (threshold - difference*fold) / threshold * gain
		}

		return x / threshold * gain
	}

	if x < -lowerThreshold {
		difference := x + lowerThreshold
		return (-lowerThreshold - difference*fold) / lowerThreshold * gain
	}

	return x / lowerThreshold * gain
}
