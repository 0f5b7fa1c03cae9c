// Package thd computes total harmonic distortion from a spectrum or a
// windowed time-domain signal.
//
// Harmonic and noise levels are summed magnitudes over a small band of bins
// around each peak, so THD is the linear sum of the harmonic ratios rather
// than their root sum of squares. THD+N counts every bin in the analysis
// range except the fundamental band.
package thd
