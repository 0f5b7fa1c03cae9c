package window

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies an analysis window.
type Type int

// Hann is the zero value so that an unset Type selects it.
const (
	TypeHann Type = iota
	TypeHamming
	TypeBlackman
	TypeBlackmanHarris4Term
	TypeFlatTop
	TypeRectangular
)

// Metadata holds spectral properties of a window type.
type Metadata struct {
	Name string
	// Key is the short lowercase name accepted by ParseType.
	Key             string
	ENBW            float64
	HighestSidelobe float64
	// CoherentGain is the mean of the periodic coefficients, which equals
	// the zeroth cosine term.
	CoherentGain float64
	// MainLobeBins is the half width of the main lobe in bins. A coherently
	// sampled tone leaks into at most MainLobeBins-1 neighbours on each side.
	MainLobeBins int
}

var (
	hannCoeffs            = []float64{0.5, -0.5}
	hammingCoeffs         = []float64{0.54, -0.46}
	blackmanCoeffs        = []float64{0.42, -0.5, 0.08}
	blackmanHarris4Coeffs = []float64{0.35875, -0.48829, 0.14128, -0.01168}
	flatTopCoeffs         = []float64{0.21557895, -0.41663158, 0.277263158, -0.083578947, 0.006947368}
)

var metadataByType = map[Type]Metadata{
	TypeHann:                {Name: "Hann", Key: "hann", ENBW: 1.5, HighestSidelobe: -31.5, CoherentGain: 0.5, MainLobeBins: 2},
	TypeHamming:             {Name: "Hamming", Key: "hamming", ENBW: 1.3628, HighestSidelobe: -42.7, CoherentGain: 0.54, MainLobeBins: 2},
	TypeBlackman:            {Name: "Blackman", Key: "blackman", ENBW: 1.7268, HighestSidelobe: -58.1, CoherentGain: 0.42, MainLobeBins: 3},
	TypeBlackmanHarris4Term: {Name: "Blackman-Harris", Key: "blackman-harris", ENBW: 2.0043, HighestSidelobe: -92.0, CoherentGain: 0.35875, MainLobeBins: 4},
	TypeFlatTop:             {Name: "Flat top", Key: "flattop", ENBW: 3.7702, HighestSidelobe: -93.6, CoherentGain: 0.21557895, MainLobeBins: 5},
	TypeRectangular:         {Name: "Rectangular", Key: "rect", ENBW: 1, HighestSidelobe: -13.3, CoherentGain: 1, MainLobeBins: 1},
}

// Types lists every supported window in declaration order.
func Types() []Type {
	return []Type{TypeHann, TypeHamming, TypeBlackman, TypeBlackmanHarris4Term, TypeFlatTop, TypeRectangular}
}

// Info returns static metadata for a window type.
func Info(t Type) Metadata {
	if m, ok := metadataByType[t]; ok {
		return m
	}

	return Metadata{}
}

func (t Type) String() string {
	if m, ok := metadataByType[t]; ok {
		return m.Key
	}

	return fmt.Sprintf("window(%d)", int(t))
}

// ParseType resolves a window key such as "hann" or "flattop".
func ParseType(name string) (Type, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, t := range Types() {
		if metadataByType[t].Key == key {
			return t, nil
		}
	}

	return 0, fmt.Errorf("unknown window %q", name)
}

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic configures periodic form (FFT framing) instead of symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given length.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	var cfg config

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	for i := range out {
		out[i] = evalWindow(t, samplePosition(i, length, cfg.periodic))
	}

	return out
}

// Apply multiplies buf in-place by the selected window.
func Apply(t Type, buf []float64, opts ...Option) {
	if len(buf) == 0 {
		return
	}

	vecmath.MulBlockInPlace(buf, Generate(t, len(buf), opts...))
}

func evalWindow(t Type, x float64) float64 {
	switch t {
	case TypeHann:
		return cosineSum(x, hannCoeffs)
	case TypeHamming:
		return cosineSum(x, hammingCoeffs)
	case TypeBlackman:
		return cosineSum(x, blackmanCoeffs)
	case TypeBlackmanHarris4Term:
		return cosineSum(x, blackmanHarris4Coeffs)
	case TypeFlatTop:
		return cosineSum(x, flatTopCoeffs)
	default:
		return 1
	}
}

func cosineSum(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}
