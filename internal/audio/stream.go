package audio

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/cwbudde/algo-clip/dsp/core"
)

const bytesPerSample = 4

// Tap observes processed blocks. It is called on the audio goroutine and must
// not retain the block.
type Tap interface {
	Update(block []float32)
}

// StreamReader is an io.Reader producing little-endian float32 samples. Each
// Read pulls a block from the source and runs it through the processor.
type StreamReader struct {
	mu       sync.Mutex
	source   Source
	proc     Processor
	channels int
	buf      []float32
	tap      Tap
}

// NewStreamReader creates a reader. The internal block buffer is sized from
// cfg and grows only when a Read asks for more. proc may be nil for a dry
// signal.
func NewStreamReader(source Source, proc Processor, opts ...core.ProcessorOption) *StreamReader {
	cfg := core.ApplyProcessorOptions(opts...)

	return &StreamReader{
		source:   source,
		proc:     proc,
		channels: cfg.Channels,
		buf:      make([]float32, cfg.Samples()),
	}
}

// Read fills p with whole frames. A p shorter than one frame reads nothing.
func (r *StreamReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	frameBytes := r.channels * bytesPerSample
	frames := len(p) / frameBytes
	if frames == 0 {
		return 0, nil
	}

	need := frames * r.channels
	r.buf = core.EnsureLen(r.buf, need)
	block := r.buf[:need]

	r.source.Process(block)
	if r.proc != nil {
		r.proc.ProcessInterleaved(block)
	}
	if r.tap != nil {
		r.tap.Update(block)
	}

	for i, v := range block {
		binary.LittleEndian.PutUint32(p[i*bytesPerSample:], math.Float32bits(v))
	}

	return need * bytesPerSample, nil
}

// SetTap installs t to observe every processed block; nil removes it.
func (r *StreamReader) SetTap(t Tap) {
	r.mu.Lock()
	r.tap = t
	r.mu.Unlock()
}

// Channels returns the interleaved channel count.
func (r *StreamReader) Channels() int { return r.channels }

// Close implements io.Closer.
func (r *StreamReader) Close() error { return nil }
