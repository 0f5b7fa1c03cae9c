package signal

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-clip/dsp/core"
)

// Generator renders finite test signals at a configured sample rate.
type Generator struct {
	cfg core.ProcessorConfig
}

// NewGenerator creates a generator; only the sample rate of opts is used.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return &Generator{cfg: core.ApplyProcessorOptions(opts...)}
}

// Config returns the generator configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Sine renders samples of a zero-phase sine. Frequencies above Nyquist are
// rejected rather than aliased.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float32, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("sine samples must be > 0: %d", samples)
	}

	nyquist := g.cfg.SampleRate / 2
	if freqHz < 0 || freqHz > nyquist || math.IsNaN(freqHz) {
		return nil, fmt.Errorf("sine frequency must be in [0, %g]: %f", nyquist, freqHz)
	}

	w := 2 * math.Pi * freqHz / g.cfg.SampleRate

	out := make([]float32, samples)
	for i := range out {
		out[i] = float32(amplitude * math.Sin(w*float64(i)))
	}

	return out, nil
}

// Ramp returns samples values spaced evenly from lo to hi, both included.
// It is the input grid for transfer curve plots.
func Ramp(lo, hi float64, samples int) ([]float32, error) {
	if samples < 2 {
		return nil, fmt.Errorf("ramp needs at least 2 samples: %d", samples)
	}

	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil, fmt.Errorf("ramp bounds must be finite: [%f, %f]", lo, hi)
	}

	step := (hi - lo) / float64(samples-1)

	out := make([]float32, samples)
	for i := range out {
		out[i] = float32(lo + step*float64(i))
	}

	return out, nil
}
