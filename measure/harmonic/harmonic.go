package harmonic

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-clip/dsp/core"
	"github.com/cwbudde/algo-clip/dsp/effects/clip"
	"github.com/cwbudde/algo-clip/dsp/signal"
	"github.com/cwbudde/algo-clip/dsp/window"
	"github.com/cwbudde/algo-clip/measure/thd"
	"github.com/cwbudde/algo-clip/stats/level"
)

const (
	defaultSampleRate   = 48000.0
	defaultFFTSize      = 8192
	defaultFundamental  = 1000.0
	defaultAmplitude    = 0.9
	defaultMaxHarmonics = 10
)

// ErrInvalidConfig is returned for configurations that cannot be analysed.
var ErrInvalidConfig = errors.New("invalid harmonic analysis config")

// Config holds analysis parameters. Zero fields take defaults; the zero
// Window is Hann.
type Config struct {
	SampleRate   float64
	FFTSize      int
	Fundamental  float64
	Amplitude    float64
	MaxHarmonics int
	Window       window.Type
}

// DefaultConfig returns a 1 kHz, 0.9 amplitude, 8192-point analysis at 48 kHz.
func DefaultConfig() Config {
	return Config{
		SampleRate:   defaultSampleRate,
		FFTSize:      defaultFFTSize,
		Fundamental:  defaultFundamental,
		Amplitude:    defaultAmplitude,
		MaxHarmonics: defaultMaxHarmonics,
	}
}

// Result holds harmonic measurement results.
type Result struct {
	// Fundamental is the analysed frequency after snapping to a bin centre.
	Fundamental float64
	// FundamentalLevel is the estimated output amplitude of the fundamental.
	FundamentalLevel float64
	// Harmonics[i] is the amplitude of order i+2 relative to the fundamental.
	Harmonics []float64
	THD       float64
	THDdB     float64
	THDN      float64
	SINAD     float64
	OddHD     float64
	EvenHD    float64
	// DC is the mean of the shaped signal.
	DC   float64
	Peak float64
}

// Level returns the relative level of the given harmonic order (2, 3, ...),
// or 0 when the order was not measured.
func (r Result) Level(order int) float64 {
	i := order - 2
	if i < 0 || i >= len(r.Harmonics) {
		return 0
	}

	return r.Harmonics[i]
}

// Analyze measures the harmonics snap adds to a sine at cfg.Fundamental.
func Analyze(snap clip.Snapshot, cfg Config) (Result, error) {
	cfg, err := normalizeConfig(cfg)
	if err != nil {
		return Result{}, err
	}

	gen := signal.NewGenerator(core.WithSampleRate(cfg.SampleRate))

	tone, err := gen.Sine(binFrequency(cfg), cfg.Amplitude, cfg.FFTSize)
	if err != nil {
		return Result{}, fmt.Errorf("harmonic test tone: %w", err)
	}

	snap.ApplyBlock(tone, tone)

	shaped := make([]float64, len(tone))
	for i, v := range tone {
		shaped[i] = float64(v)
	}

	return analyze(shaped, cfg)
}

// AnalyzeSignal measures harmonics of an already shaped, coherently sampled
// signal whose fundamental sits on bin cfg.Fundamental*FFTSize/SampleRate.
// The signal length must equal cfg.FFTSize.
func AnalyzeSignal(shaped []float64, cfg Config) (Result, error) {
	cfg, err := normalizeConfig(cfg)
	if err != nil {
		return Result{}, err
	}

	if len(shaped) != cfg.FFTSize {
		return Result{}, fmt.Errorf("%w: signal length %d != fft size %d", ErrInvalidConfig, len(shaped), cfg.FFTSize)
	}

	return analyze(shaped, cfg)
}

func analyze(shaped []float64, cfg Config) (Result, error) {
	lvl := level.Calculate(shaped)
	freq := binFrequency(cfg)
	binHz := cfg.SampleRate / float64(cfg.FFTSize)

	// Orders whose capture band would reach Nyquist are left out.
	top := cfg.FFTSize/2 - window.Info(cfg.Window).MainLobeBins

	m, err := thd.AnalyzeSignal(shaped, thd.Config{
		SampleRate:      cfg.SampleRate,
		FFTSize:         cfg.FFTSize,
		FundamentalFreq: freq,
		RangeUpperFreq:  float64(top) * binHz,
		MaxHarmonics:    cfg.MaxHarmonics - 1,
		Window:          cfg.Window,
	})
	if err != nil {
		return Result{}, fmt.Errorf("harmonic analysis: %w", err)
	}

	harmonics := m.Harmonics
	if harmonics == nil {
		harmonics = make([]float64, 0)
	}

	return Result{
		Fundamental:      freq,
		FundamentalLevel: m.FundamentalAmplitude,
		Harmonics:        harmonics,
		THD:              m.THD,
		THDdB:            m.THDdB,
		THDN:             m.THDN,
		SINAD:            m.SINAD,
		OddHD:            m.OddHD,
		EvenHD:           m.EvenHD,
		DC:               lvl.DC,
		Peak:             lvl.Peak,
	}, nil
}

// ToDB converts an amplitude ratio to decibels; 0 maps to -Inf.
func ToDB(ratio float64) float64 {
	return level.RatioToDB(ratio)
}

func fundamentalBin(cfg Config) int {
	return max(int(math.Round(cfg.Fundamental*float64(cfg.FFTSize)/cfg.SampleRate)), 1)
}

func binFrequency(cfg Config) float64 {
	return float64(fundamentalBin(cfg)) * cfg.SampleRate / float64(cfg.FFTSize)
}

func normalizeConfig(cfg Config) (Config, error) {
	def := DefaultConfig()

	if cfg.SampleRate == 0 {
		cfg.SampleRate = def.SampleRate
	}
	if cfg.FFTSize == 0 {
		cfg.FFTSize = def.FFTSize
	}
	if cfg.Fundamental == 0 {
		cfg.Fundamental = def.Fundamental
	}
	if cfg.Amplitude == 0 {
		cfg.Amplitude = def.Amplitude
	}
	if cfg.MaxHarmonics == 0 {
		cfg.MaxHarmonics = def.MaxHarmonics
	}

	if cfg.SampleRate < 0 || math.IsNaN(cfg.SampleRate) || math.IsInf(cfg.SampleRate, 0) {
		return cfg, fmt.Errorf("%w: sample rate %f", ErrInvalidConfig, cfg.SampleRate)
	}
	if cfg.FFTSize < 64 || cfg.FFTSize&(cfg.FFTSize-1) != 0 {
		return cfg, fmt.Errorf("%w: fft size must be a power of two >= 64: %d", ErrInvalidConfig, cfg.FFTSize)
	}
	if cfg.Fundamental < 0 || cfg.Fundamental >= cfg.SampleRate/2 {
		return cfg, fmt.Errorf("%w: fundamental %g Hz outside (0, %g)", ErrInvalidConfig, cfg.Fundamental, cfg.SampleRate/2)
	}
	if cfg.Amplitude < 0 || math.IsNaN(cfg.Amplitude) || math.IsInf(cfg.Amplitude, 0) {
		return cfg, fmt.Errorf("%w: amplitude %f", ErrInvalidConfig, cfg.Amplitude)
	}
	if cfg.MaxHarmonics < 2 {
		return cfg, fmt.Errorf("%w: max harmonics must be >= 2: %d", ErrInvalidConfig, cfg.MaxHarmonics)
	}
	if window.Info(cfg.Window).Name == "" {
		return cfg, fmt.Errorf("%w: %v", ErrInvalidConfig, cfg.Window)
	}

	lobe := window.Info(cfg.Window).MainLobeBins
	if bin := fundamentalBin(cfg); bin+lobe >= cfg.FFTSize/2 || bin < 2*lobe {
		return cfg, fmt.Errorf("%w: fundamental %g Hz does not resolve with a %s window at fft size %d",
			ErrInvalidConfig, cfg.Fundamental, cfg.Window, cfg.FFTSize)
	}

	return cfg, nil
}
