// Package level computes time-domain level statistics of audio blocks and
// meters a running stream.
package level

import (
	"math"
	"sync"

	"github.com/meko-christian/algo-approx"
)

const ln10 = 2.302585092994045684017991454684

// Sample is the element type accepted by Calculate.
type Sample interface {
	~float32 | ~float64
}

// Stats holds level statistics of a signal.
type Stats struct {
	Length        int
	DC            float64 // mean
	RMS           float64
	RMSdB         float64
	Peak          float64 // max |x|
	PeakdB        float64
	CrestFactor   float64 // peak / RMS (linear)
	CrestFactordB float64
	ZeroCrossings int
}

// RatioToDB converts a linear ratio to decibels: 20 * log10(value).
// Zero and negative values map to -Inf.
func RatioToDB(value float64) float64 {
	if value <= 0 {
		return math.Inf(-1)
	}

	return 20 * approx.FastLog(value) / ln10
}

// AmpToDB converts an amplitude to decibels full scale using |value|.
func AmpToDB(value float64) float64 {
	return RatioToDB(math.Abs(value))
}

func emptyStats() Stats {
	return Stats{
		RMSdB:  math.Inf(-1),
		PeakdB: math.Inf(-1),
	}
}

// Calculate computes all statistics in a single pass.
func Calculate[S Sample](signal []S) Stats {
	var acc accumulator
	for _, x := range signal {
		acc.add(float64(x))
	}

	return acc.stats()
}

// RMS returns the root-mean-square of the signal.
func RMS[S Sample](signal []S) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range signal {
		v := float64(x)
		sumSq += v * v
	}

	return math.Sqrt(sumSq / float64(len(signal)))
}

// Peak returns the largest absolute sample value.
func Peak[S Sample](signal []S) float64 {
	var peak float64
	for _, x := range signal {
		peak = max(peak, math.Abs(float64(x)))
	}

	return peak
}

// accumulator is the shared single-pass state of Calculate and Meter.
type accumulator struct {
	n             int
	sum           float64
	comp          float64 // Kahan compensation of sum
	sumSq         float64
	peak          float64
	zeroCrossings int
	last          float64
}

func (a *accumulator) add(x float64) {
	y := x - a.comp
	t := a.sum + y
	a.comp = (t - a.sum) - y
	a.sum = t

	a.sumSq += x * x
	a.peak = max(a.peak, math.Abs(x))

	if a.n > 0 && a.last*x < 0 {
		a.zeroCrossings++
	}

	a.last = x
	a.n++
}

func (a *accumulator) stats() Stats {
	if a.n == 0 {
		return emptyStats()
	}

	nf := float64(a.n)
	rms := math.Sqrt(a.sumSq / nf)

	s := Stats{
		Length:        a.n,
		DC:            a.sum / nf,
		RMS:           rms,
		RMSdB:         AmpToDB(rms),
		Peak:          a.peak,
		PeakdB:        AmpToDB(a.peak),
		ZeroCrossings: a.zeroCrossings,
	}

	if rms > 0 {
		s.CrestFactor = a.peak / rms
		s.CrestFactordB = RatioToDB(s.CrestFactor)
	}

	return s
}

// Meter accumulates statistics across blocks. Update may be called from the
// audio goroutine while another goroutine reads results.
type Meter struct {
	mu  sync.Mutex
	acc accumulator
}

// NewMeter creates an empty meter.
func NewMeter() *Meter {
	return &Meter{}
}

// Update adds a block of samples.
func (m *Meter) Update(block []float32) {
	m.mu.Lock()
	for _, x := range block {
		m.acc.add(float64(x))
	}
	m.mu.Unlock()
}

// Take returns the current statistics and starts a new measurement window.
func (m *Meter) Take() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.acc.stats()
	m.acc = accumulator{}

	return s
}

// Reset clears all accumulated data.
func (m *Meter) Reset() {
	m.mu.Lock()
	m.acc = accumulator{}
	m.mu.Unlock()
}
