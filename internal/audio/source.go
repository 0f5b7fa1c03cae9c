// Package audio streams a sample source through the clip engine as raw
// little-endian float32 bytes. Playback on a device lives in
// internal/audio/device so this package builds without audio headers.
package audio

import (
	"fmt"
	"sync"

	"github.com/cwbudde/algo-clip/dsp/signal"
)

// Source produces interleaved float32 samples.
type Source interface {
	Process(dst []float32)
}

// Processor shapes an interleaved block in place. *clip.Engine satisfies it.
type Processor interface {
	ProcessInterleaved(buf []float32)
}

// ToneSource is an interleaved multi-channel sine source. Frequency and
// amplitude may be changed from another goroutine while it is streaming.
type ToneSource struct {
	mu       sync.Mutex
	osc      *signal.Oscillator
	channels int
}

// NewToneSource creates a sine source writing the same signal to every channel.
func NewToneSource(sampleRate, freqHz, amplitude float64, channels int) (*ToneSource, error) {
	if channels < 1 {
		return nil, fmt.Errorf("tone channels must be >= 1: %d", channels)
	}

	osc, err := signal.NewOscillator(sampleRate, freqHz, amplitude)
	if err != nil {
		return nil, err
	}

	return &ToneSource{osc: osc, channels: channels}, nil
}

// Process fills dst with interleaved frames.
func (s *ToneSource) Process(dst []float32) {
	s.mu.Lock()
	s.osc.Fill(dst, s.channels)
	s.mu.Unlock()
}

// Channels returns the channel count.
func (s *ToneSource) Channels() int { return s.channels }

// SetFrequency changes the tone frequency without a phase jump.
func (s *ToneSource) SetFrequency(freqHz float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.osc.SetFrequency(freqHz)
}

// SetAmplitude changes the tone amplitude.
func (s *ToneSource) SetAmplitude(amplitude float64) {
	s.mu.Lock()
	s.osc.SetAmplitude(amplitude)
	s.mu.Unlock()
}

// Frequency returns the tone frequency in Hz.
func (s *ToneSource) Frequency() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.osc.Frequency()
}

// Amplitude returns the tone amplitude.
func (s *ToneSource) Amplitude() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.osc.Amplitude()
}
