package clip

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cwbudde/algo-clip/dsp/param"
)

// Kind selects the engine variant. Each kind fixes its parameter layout and
// transfer function at construction time.
type Kind int

const (
	// KindSimple is the symmetric hard clip with threshold and gain.
	KindSimple Kind = iota
	// KindFolding is the asymmetric hard clip with fold-back.
	KindFolding
)

// ErrInvalidKind is returned when a Kind value or name is not known.
var ErrInvalidKind = errors.New("invalid clip kind")

// Parameter indices of KindSimple.
const (
	SimpleThreshold = iota
	SimpleGain
	simpleCount
)

// Parameter indices of KindFolding.
const (
	FoldThreshold = iota
	FoldLowerThreshold
	FoldAmount
	FoldGain
	foldCount
)

const (
	simpleThresholdFloor = 0.001
	simpleGainFloor      = 0.001

	foldThresholdFloor = 0.05
	foldAmountCeiling  = 0.5
	foldGainFloor      = 0.01

	defaultThreshold = 1.0
	defaultGain      = 0.5
	defaultFold      = 0.0

	// simpleThresholdScale maps the displayed threshold onto the effective
	// clip point of KindSimple.
	simpleThresholdScale = 3.0
)

// Specs returns the parameter layout of the kind in index order, or nil for
// an invalid kind.
func (k Kind) Specs() []param.Spec {
	open := param.Unbounded()

	switch k {
	case KindSimple:
		return []param.Spec{
			SimpleThreshold: param.Percent("threshold", defaultThreshold, simpleThresholdFloor, open),
			SimpleGain:      param.Percent("gain", defaultGain, simpleGainFloor, open),
		}
	case KindFolding:
		return []param.Spec{
			FoldThreshold:      param.Percent("threshold", defaultThreshold, foldThresholdFloor, open),
			FoldLowerThreshold: param.Percent("lower_threshold", defaultThreshold, foldThresholdFloor, open),
			FoldAmount:         param.Percent("fold", defaultFold, -open, foldAmountCeiling),
			FoldGain:           param.Percent("gain", defaultGain, foldGainFloor, open),
		}
	default:
		return nil
	}
}

// ParamCount returns the number of parameters of the kind, or 0 when invalid.
func (k Kind) ParamCount() int {
	switch k {
	case KindSimple:
		return simpleCount
	case KindFolding:
		return foldCount
	default:
		return 0
	}
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindSimple || k == KindFolding
}

func (k Kind) String() string {
	switch k {
	case KindSimple:
		return "simple"
	case KindFolding:
		return "folding"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps "simple" or "folding" (case-insensitive, "fold" accepted)
// to a Kind.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "simple", "clip":
		return KindSimple, nil
	case "folding", "fold":
		return KindFolding, nil
	default:
		return 0, fmt.Errorf("%w: %q (expected simple|folding)", ErrInvalidKind, name)
	}
}
