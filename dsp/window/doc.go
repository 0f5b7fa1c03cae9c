// Package window generates the cosine-sum analysis windows used ahead of an
// FFT when measuring the harmonics of a clipped tone.
package window
