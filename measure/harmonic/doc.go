// Package harmonic measures the harmonic content a clip snapshot adds to a
// pure tone.
//
// Analyze shapes a coherently sampled sine with the snapshot and hands the
// result to measure/thd, which windows it, runs the FFT and sums the bins
// around each harmonic. Levels are reported as amplitude ratios to the
// fundamental. Aliased components of the hard clip are not filtered out.
package harmonic
