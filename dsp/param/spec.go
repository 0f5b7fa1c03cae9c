package param

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-clip/dsp/core"
)

// PercentLabel is the unit label shown next to percentage parameters.
const PercentLabel = "%"

// Spec describes one parameter: how it is displayed and which values it may
// hold. Floor and Ceiling are inclusive; use Unbounded for an open side.
type Spec struct {
	Name    string
	Label   string
	Default float32
	Floor   float32
	Ceiling float32
}

// Unbounded returns +Inf, for use as an open Ceiling (or negated as an open Floor).
func Unbounded() float32 {
	return float32(math.Inf(1))
}

// Percent returns a percentage-labelled spec.
func Percent(name string, def, floor, ceiling float32) Spec {
	return Spec{
		Name:    name,
		Label:   PercentLabel,
		Default: def,
		Floor:   floor,
		Ceiling: ceiling,
	}
}

// Constrain clamps v into [Floor, Ceiling].
func (s Spec) Constrain(v float32) float32 {
	return core.Clamp32(v, s.Floor, s.Ceiling)
}

func (s Spec) validate() error {
	if s.Name == "" {
		return fmt.Errorf("parameter name must not be empty")
	}

	if math.IsNaN(float64(s.Floor)) || math.IsNaN(float64(s.Ceiling)) {
		return fmt.Errorf("parameter %q bounds must not be NaN", s.Name)
	}

	if s.Floor > s.Ceiling {
		return fmt.Errorf("parameter %q floor %g exceeds ceiling %g", s.Name, s.Floor, s.Ceiling)
	}

	if !core.IsFinite32(s.Default) {
		return fmt.Errorf("parameter %q default must be finite: %g", s.Name, s.Default)
	}

	if s.Constrain(s.Default) != s.Default {
		return fmt.Errorf("parameter %q default %g outside [%g, %g]", s.Name, s.Default, s.Floor, s.Ceiling)
	}

	return nil
}
