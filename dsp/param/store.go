package param

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrIndexOutOfRange is returned by the control-path helpers that report
// errors when the index does not address a parameter.
var ErrIndexOutOfRange = errors.New("parameter index out of range")

// ErrUnknownName is returned by Assign when no parameter has the given name.
var ErrUnknownName = errors.New("unknown parameter")

// Store holds the current value of each parameter in a fixed set.
//
// The set is fixed at construction. Get, Load and the display accessors are
// safe to call from the audio thread; none of them lock or allocate except
// DisplayText, which builds a string and belongs on the control side.
type Store struct {
	specs []Spec
	cells []Cell
}

// NewStore builds a store from specs with every cell at its default value.
func NewStore(specs ...Spec) (*Store, error) {
	if len(specs) == 0 {
		return nil, errors.New("parameter store needs at least one parameter")
	}

	seen := make(map[string]struct{}, len(specs))
	for i, s := range specs {
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("parameter %d: %w", i, err)
		}

		if _, dup := seen[s.Name]; dup {
			return nil, fmt.Errorf("duplicate parameter name %q", s.Name)
		}

		seen[s.Name] = struct{}{}
	}

	st := &Store{
		specs: append([]Spec(nil), specs...),
		cells: make([]Cell, len(specs)),
	}
	st.Reset()

	return st, nil
}

// MustNewStore is like NewStore but panics on error. It is meant for
// package-level parameter layouts that are known to be valid.
func MustNewStore(specs ...Spec) *Store {
	st, err := NewStore(specs...)
	if err != nil {
		panic("param: " + err.Error())
	}

	return st
}

// Count returns the number of parameters.
func (s *Store) Count() int { return len(s.specs) }

func (s *Store) valid(index int) bool {
	return index >= 0 && index < len(s.specs)
}

// Get returns the current value of the parameter at index, or 0 when the
// index is out of range.
func (s *Store) Get(index int) float32 {
	if !s.valid(index) {
		return 0
	}

	return s.cells[index].Load()
}

// Set clamps value to the parameter's bounds and stores it. Out-of-range
// indices are ignored, and so are NaN values, which no clamp can bound.
func (s *Store) Set(index int, value float32) {
	if !s.valid(index) || math.IsNaN(float64(value)) {
		return
	}

	s.cells[index].Store(s.specs[index].Constrain(value))
}

// Name returns the display name of the parameter, or "" when out of range.
func (s *Store) Name(index int) string {
	if !s.valid(index) {
		return ""
	}

	return s.specs[index].Name
}

// Label returns the unit label of the parameter, or "" when out of range.
func (s *Store) Label(index int) string {
	if !s.valid(index) {
		return ""
	}

	return s.specs[index].Label
}

// DisplayText renders the current value as a percentage (value * 100) in
// shortest round-trip form, e.g. "100" or "12.5". Out of range returns "".
func (s *Store) DisplayText(index int) string {
	if !s.valid(index) {
		return ""
	}

	return FormatPercent(s.cells[index].Load())
}

// SetText parses a percentage such as "50", "50%" or "12.5 %" and stores
// value/100 through Set.
func (s *Store) SetText(index int, text string) error {
	if !s.valid(index) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}

	v, err := ParsePercent(text)
	if err != nil {
		return fmt.Errorf("parameter %q: %w", s.specs[index].Name, err)
	}

	s.Set(index, v)

	return nil
}

// Assign applies a "name=percent" expression such as "fold=25" or
// "gain = 80%" through SetText.
func (s *Store) Assign(expr string) error {
	name, text, ok := strings.Cut(expr, "=")
	if !ok {
		return fmt.Errorf("invalid assignment %q (expected name=percent)", expr)
	}

	name = strings.TrimSpace(name)

	idx := s.Index(name)
	if idx < 0 {
		return fmt.Errorf("%w %q", ErrUnknownName, name)
	}

	return s.SetText(idx, text)
}

// Default returns the default value of the parameter, or 0 when out of range.
func (s *Store) Default(index int) float32 {
	if !s.valid(index) {
		return 0
	}

	return s.specs[index].Default
}

// Spec returns the descriptor of the parameter at index.
func (s *Store) Spec(index int) (Spec, bool) {
	if !s.valid(index) {
		return Spec{}, false
	}

	return s.specs[index], true
}

// Index returns the index of the named parameter, or -1.
func (s *Store) Index(name string) int {
	for i, sp := range s.specs {
		if sp.Name == name {
			return i
		}
	}

	return -1
}

// Reset restores every parameter to its default.
func (s *Store) Reset() {
	for i := range s.cells {
		s.cells[i].Store(s.specs[i].Default)
	}
}

// Load copies every current value into dst in index order and returns the
// number of values copied. Each value is loaded once; values are not taken
// atomically as a group.
func (s *Store) Load(dst []float32) int {
	n := min(len(dst), len(s.cells))
	for i := range n {
		dst[i] = s.cells[i].Load()
	}

	return n
}

// FormatPercent renders v*100 without a fixed precision.
func FormatPercent(v float32) string {
	return strconv.FormatFloat(float64(v*100), 'f', -1, 32)
}

// ParsePercent parses a percentage text into a fraction (50 -> 0.5).
func ParsePercent(text string) (float32, error) {
	str := strings.TrimSuffix(strings.TrimSpace(text), PercentLabel)

	v, err := strconv.ParseFloat(strings.TrimSpace(str), 32)
	if err != nil {
		return 0, fmt.Errorf("invalid percentage %q: %w", text, err)
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("percentage must be finite: %q", text)
	}

	return float32(v) / 100, nil
}
