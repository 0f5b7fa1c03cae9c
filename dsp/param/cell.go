package param

import (
	"math"
	"sync/atomic"
)

// Cell is an atomically readable and writable float32.
type Cell struct {
	bits atomic.Uint32
}

// Load returns the current value.
func (c *Cell) Load() float32 {
	return math.Float32frombits(c.bits.Load())
}

// Store replaces the current value.
func (c *Cell) Store(v float32) {
	c.bits.Store(math.Float32bits(v))
}
