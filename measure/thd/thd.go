package thd

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-clip/dsp/window"
	"github.com/cwbudde/algo-clip/stats/level"
)

const (
	defaultRangeLowerHz = 20.0
	defaultRangeUpperHz = 20000.0
)

// ErrSignal is returned when a time-domain signal cannot be analysed.
var ErrSignal = errors.New("thd: invalid signal")

// Config holds THD calculation parameters.
type Config struct {
	SampleRate float64
	FFTSize    int
	// FundamentalFreq selects the fundamental. Zero searches for the
	// strongest bin inside the analysis range.
	FundamentalFreq float64
	RangeLowerFreq  float64
	RangeUpperFreq  float64
	// CaptureBins is the half width summed around each peak. Zero uses the
	// main lobe width of Window.
	CaptureBins int
	// MaxHarmonics limits the number of harmonics evaluated. Zero means
	// every harmonic inside the range.
	MaxHarmonics int
	Window       window.Type
}

// Result holds THD measurement results. Ratios are relative to the
// fundamental level.
type Result struct {
	FundamentalFreq float64
	// FundamentalLevel is the summed magnitude over the capture bins.
	FundamentalLevel float64
	// FundamentalAmplitude is the time-domain peak amplitude estimated from
	// the centre bin. Only AnalyzeSignal fills it in.
	FundamentalAmplitude float64
	THD                  float64
	THDN                 float64
	THDdB                float64
	THDNdB               float64
	OddHD                float64
	EvenHD               float64
	Noise                float64
	// Harmonics[i] is the ratio of order i+2.
	Harmonics []float64
	SINAD     float64
}

// Calculator performs THD analysis on frequency-domain data.
type Calculator struct {
	cfg Config
}

// NewCalculator creates a new THD calculator.
func NewCalculator(cfg Config) *Calculator {
	return &Calculator{cfg: normalizeConfig(cfg)}
}

// AnalyzeSignal performs one-shot THD analysis from a time-domain signal.
func AnalyzeSignal(signal []float64, cfg Config) (Result, error) {
	return NewCalculator(cfg).AnalyzeSignal(signal)
}

// AnalyzeSignal windows signal with the periodic form of the configured
// window, zero pads it to FFTSize and evaluates the spectrum.
func (c *Calculator) AnalyzeSignal(signal []float64) (Result, error) {
	if len(signal) == 0 {
		return Result{}, fmt.Errorf("%w: empty", ErrSignal)
	}

	cfg := c.cfg

	fftSize := cfg.FFTSize
	if fftSize <= 0 {
		fftSize = nextPowerOf2(len(signal))
	}

	if len(signal) > fftSize {
		return Result{}, fmt.Errorf("%w: length %d exceeds fft size %d", ErrSignal, len(signal), fftSize)
	}

	windowed := append([]float64(nil), signal...)
	window.Apply(cfg.Window, windowed, window.WithPeriodic())

	in := make([]complex128, fftSize)
	for i, v := range windowed {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Result{}, fmt.Errorf("thd fft plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return Result{}, fmt.Errorf("thd fft: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)

	for i := range bins {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	magSquared := make([]float64, bins)
	vecmath.Power(magSquared, re, im)

	cfg.FFTSize = fftSize
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = float64(fftSize)
	}

	calc := Calculator{cfg: cfg}
	res := calc.CalculateFromMagnitude(magSquared)

	if gain := window.Info(cfg.Window).CoherentGain * float64(len(signal)); gain > 0 && res.FundamentalFreq > 0 {
		bin := int(math.Round(res.FundamentalFreq * float64(fftSize) / cfg.SampleRate))
		if bin >= 0 && bin < bins {
			res.FundamentalAmplitude = 2 * sqrtPositive(magSquared[bin]) / gain
		}
	}

	return res, nil
}

// CalculateFromMagnitude computes THD metrics from a squared-magnitude spectrum.
// magSquared is expected to contain non-negative-frequency bins [0..Nyquist].
func (c *Calculator) CalculateFromMagnitude(magSquared []float64) Result {
	if len(magSquared) <= 1 {
		return Result{}
	}

	cfg := c.cfg
	if cfg.FFTSize <= 0 {
		cfg.FFTSize = 2 * (len(magSquared) - 1)
	}

	if cfg.SampleRate <= 0 {
		cfg.SampleRate = float64(cfg.FFTSize)
	}

	maxBin := len(magSquared) - 1

	binHz := cfg.SampleRate / float64(cfg.FFTSize)
	if binHz <= 0 || math.IsNaN(binHz) || math.IsInf(binHz, 0) {
		return Result{}
	}

	lowerBin := clampInt(int(math.Round(cfg.RangeLowerFreq/binHz)), 1, maxBin)
	upperBin := clampInt(int(math.Round(cfg.RangeUpperFreq/binHz)), lowerBin, maxBin)

	fundamentalBin := findFundamentalBin(magSquared, cfg.FundamentalFreq/binHz, lowerBin, upperBin)

	captureBins := cfg.CaptureBins
	if captureBins <= 0 {
		captureBins = window.Info(cfg.Window).MainLobeBins
	}

	if captureBins*2 > fundamentalBin {
		captureBins = fundamentalBin / 2
	}

	res := Result{FundamentalFreq: float64(fundamentalBin) * binHz}

	fundamentalLevel := binValue(magSquared, fundamentalBin, captureBins)
	if fundamentalLevel <= 0 {
		return res
	}

	var harmonicAbs, oddAbs, evenAbs float64

	harmonics := make([]float64, 0, 8)

	for k := 2; cfg.MaxHarmonics == 0 || k-1 <= cfg.MaxHarmonics; k++ {
		bin := k * fundamentalBin
		if bin > upperBin {
			break
		}

		value := binValue(magSquared, bin, captureBins)

		harmonicAbs += value
		if k%2 == 0 {
			evenAbs += value
		} else {
			oddAbs += value
		}

		harmonics = append(harmonics, value/fundamentalLevel)
	}

	totalAbs := 0.0
	for i := lowerBin; i <= upperBin; i++ {
		totalAbs += sqrtPositive(magSquared[i])
	}

	thdnAbs := max(totalAbs-fundamentalLevel, 0)
	noiseAbs := max(thdnAbs-harmonicAbs, 0)

	res.FundamentalLevel = fundamentalLevel
	res.THD = harmonicAbs / fundamentalLevel
	res.THDN = thdnAbs / fundamentalLevel
	res.THDdB = level.RatioToDB(res.THD)
	res.THDNdB = level.RatioToDB(res.THDN)
	res.OddHD = oddAbs / fundamentalLevel
	res.EvenHD = evenAbs / fundamentalLevel
	res.Noise = noiseAbs / fundamentalLevel
	res.Harmonics = harmonics

	res.SINAD = math.Inf(1)
	if res.THDN > 0 {
		res.SINAD = -res.THDNdB
	}

	return res
}

// findFundamentalBin rounds a requested bin position, or picks the strongest
// bin in range when none was requested. A requested fundamental may sit
// outside the analysis range.
func findFundamentalBin(magSquared []float64, requested float64, lowerBin, upperBin int) int {
	if requested > 0 {
		return clampInt(int(math.Round(requested)), 1, len(magSquared)-1)
	}

	bestBin := lowerBin
	bestVal := -1.0

	for i := lowerBin; i <= upperBin; i++ {
		if v := magSquared[i]; v > bestVal {
			bestVal = v
			bestBin = i
		}
	}

	return bestBin
}

func normalizeConfig(cfg Config) Config {
	if cfg.RangeLowerFreq <= 0 {
		cfg.RangeLowerFreq = defaultRangeLowerHz
	}

	if cfg.RangeUpperFreq <= 0 {
		cfg.RangeUpperFreq = defaultRangeUpperHz
	}

	if cfg.RangeUpperFreq < cfg.RangeLowerFreq {
		cfg.RangeUpperFreq = cfg.RangeLowerFreq
	}

	cfg.CaptureBins = max(cfg.CaptureBins, 0)
	cfg.MaxHarmonics = max(cfg.MaxHarmonics, 0)

	return cfg
}

func binValue(magSquared []float64, bin, captureBins int) float64 {
	if bin < 0 || bin >= len(magSquared) {
		return 0
	}

	lo := max(bin-captureBins, 0)
	hi := min(bin+captureBins, len(magSquared)-1)

	sum := 0.0
	for i := lo; i <= hi; i++ {
		sum += sqrtPositive(magSquared[i])
	}

	return sum
}

func sqrtPositive(v float64) float64 {
	if v <= 0 {
		return 0
	}

	return math.Sqrt(v)
}

func clampInt(val, lo, hi int) int {
	return min(max(val, lo), hi)
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
