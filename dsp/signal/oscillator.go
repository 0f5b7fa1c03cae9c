package signal

import (
	"fmt"
	"math"
)

// Oscillator is a phase-continuous sine source for streaming use. Successive
// Fill calls continue where the previous call stopped.
type Oscillator struct {
	sampleRate float64
	freq       float64
	amplitude  float64
	phase      float64
	step       float64
}

// NewOscillator creates a sine oscillator.
func NewOscillator(sampleRate, freqHz, amplitude float64) (*Oscillator, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("oscillator sample rate must be > 0 and finite: %f", sampleRate)
	}

	o := &Oscillator{sampleRate: sampleRate, amplitude: amplitude}
	if err := o.SetFrequency(freqHz); err != nil {
		return nil, err
	}

	return o, nil
}

// SetFrequency changes the frequency without resetting the phase.
func (o *Oscillator) SetFrequency(freqHz float64) error {
	if freqHz < 0 || freqHz > o.sampleRate/2 || math.IsNaN(freqHz) {
		return fmt.Errorf("oscillator frequency must be in [0, %g]: %f", o.sampleRate/2, freqHz)
	}

	o.freq = freqHz
	o.step = 2 * math.Pi * freqHz / o.sampleRate

	return nil
}

// SetAmplitude sets the peak amplitude.
func (o *Oscillator) SetAmplitude(amplitude float64) { o.amplitude = amplitude }

// Frequency returns the frequency in Hz.
func (o *Oscillator) Frequency() float64 { return o.freq }

// Amplitude returns the peak amplitude.
func (o *Oscillator) Amplitude() float64 { return o.amplitude }

// Reset rewinds the phase to 0.
func (o *Oscillator) Reset() { o.phase = 0 }

// Fill writes interleaved frames into dst, copying the same sample to every
// channel. Trailing samples that do not form a full frame are zeroed.
func (o *Oscillator) Fill(dst []float32, channels int) {
	if channels <= 0 {
		return
	}

	frames := len(dst) / channels
	for i := range frames {
		v := float32(o.amplitude * math.Sin(o.phase))
		for c := range channels {
			dst[i*channels+c] = v
		}

		o.phase += o.step
		if o.phase >= 2*math.Pi {
			o.phase -= 2 * math.Pi
		}
	}

	for i := frames * channels; i < len(dst); i++ {
		dst[i] = 0
	}
}
