package clip

import (
	"fmt"

	"github.com/cwbudde/algo-clip/dsp/param"
)

// Option mutates construction-time engine settings.
type Option func(*engineConfig) error

type engineConfig struct {
	initial     []initialValue
	assignments []string
}

type initialValue struct {
	index int
	value float32
}

// WithParameter seeds the parameter at index with value. The value goes
// through the same clamp as Store.Set.
func WithParameter(index int, value float32) Option {
	return func(cfg *engineConfig) error {
		if index < 0 {
			return fmt.Errorf("clip parameter index must be >= 0: %d", index)
		}

		cfg.initial = append(cfg.initial, initialValue{index: index, value: value})

		return nil
	}
}

// WithAssignments applies "name=percent" overrides after the defaults and
// any WithParameter values, in order. See param.Store.Assign.
func WithAssignments(exprs ...string) Option {
	return func(cfg *engineConfig) error {
		cfg.assignments = append(cfg.assignments, exprs...)
		return nil
	}
}

// Engine applies a clip transfer function block by block.
//
// Parameters live in a param.Store that any goroutine may write. The
// Process methods read one snapshot per call and never lock or allocate.
type Engine struct {
	kind   Kind
	params *param.Store
}

// New creates an engine of the given kind with default parameter values.
func New(kind Kind, opts ...Option) (*Engine, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKind, int(kind))
	}

	var cfg engineConfig

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	st, err := param.NewStore(kind.Specs()...)
	if err != nil {
		return nil, fmt.Errorf("clip %s parameters: %w", kind, err)
	}

	for _, iv := range cfg.initial {
		if iv.index >= st.Count() {
			return nil, fmt.Errorf("clip %s has %d parameters: %w: %d",
				kind, st.Count(), param.ErrIndexOutOfRange, iv.index)
		}

		st.Set(iv.index, iv.value)
	}

	for _, expr := range cfg.assignments {
		if err := st.Assign(expr); err != nil {
			return nil, fmt.Errorf("clip %s: %w", kind, err)
		}
	}

	return &Engine{kind: kind, params: st}, nil
}

// Kind returns the engine variant.
func (e *Engine) Kind() Kind { return e.kind }

// Params returns the parameter store shared with control code.
func (e *Engine) Params() *param.Store { return e.params }

// Snapshot reads the current parameter values.
func (e *Engine) Snapshot() Snapshot {
	return readSnapshot(e.kind, e.params)
}

// Process shapes in into out channel by channel. Channels and samples beyond
// the shorter of the two sides are left untouched. in and out may share
// backing arrays.
func (e *Engine) Process(in, out [][]float32) {
	snap := e.Snapshot()

	n := min(len(in), len(out))
	for c := range n {
		snap.ApplyBlock(out[c], in[c])
	}
}

// ProcessInPlace shapes every channel of buf in place.
func (e *Engine) ProcessInPlace(buf [][]float32) {
	snap := e.Snapshot()

	for _, ch := range buf {
		snap.ApplyBlock(ch, ch)
	}
}

// ProcessInterleaved shapes an interleaved block in place. The channel
// layout is irrelevant because every sample is shaped independently.
func (e *Engine) ProcessInterleaved(buf []float32) {
	e.Snapshot().ApplyBlock(buf, buf)
}

// ProcessSample shapes one sample using the current parameter values.
func (e *Engine) ProcessSample(x float32) float32 {
	return e.Snapshot().Apply(x)
}
