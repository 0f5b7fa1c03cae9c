package main

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"

	"github.com/cwbudde/algo-clip/dsp/effects/clip"
	"github.com/cwbudde/algo-clip/internal/audio"
	"github.com/cwbudde/algo-clip/stats/level"
)

func newTestController(t *testing.T, kind clip.Kind) *controller {
	t.Helper()

	eng, err := clip.New(kind)
	if err != nil {
		t.Fatalf("clip.New() error = %v", err)
	}

	tone, err := audio.NewToneSource(48000, 220, 0.5, 2)
	if err != nil {
		t.Fatalf("NewToneSource() error = %v", err)
	}

	return newController(eng, tone, nil, nil)
}

func TestControllerSelectAndNudge(t *testing.T) {
	c := newTestController(t, clip.KindFolding)
	st := c.eng.Params()

	c.HandleKey('3')
	if c.selected != clip.FoldAmount {
		t.Fatalf("selected = %d, want %d", c.selected, clip.FoldAmount)
	}

	c.HandleKey(']')
	c.HandleKey('+')
	if got := st.Get(clip.FoldAmount); math.Abs(float64(got)-0.11) > 1e-6 {
		t.Fatalf("fold = %g, want 0.11", got)
	}

	// Fold is capped at 50%.
	for range 10 {
		c.HandleKey(']')
	}
	if got := st.Get(clip.FoldAmount); got != 0.5 {
		t.Fatalf("fold = %g, want 0.5", got)
	}

	c.HandleKey('r')
	if got := st.Get(clip.FoldAmount); got != 0 {
		t.Fatalf("fold after reset = %g, want 0", got)
	}
}

func TestControllerIgnoresMissingParameter(t *testing.T) {
	c := newTestController(t, clip.KindSimple)

	c.HandleKey('4')
	if c.selected != 0 {
		t.Fatalf("selected = %d, want 0", c.selected)
	}

	c.HandleKey('\t')
	c.HandleKey('\t')
	if c.selected != 0 {
		t.Fatalf("tab should wrap, selected = %d", c.selected)
	}
}

func TestControllerFloorsThreshold(t *testing.T) {
	c := newTestController(t, clip.KindSimple)

	for range 20 {
		c.HandleKey('[')
	}

	if got := c.eng.Params().Get(clip.SimpleThreshold); math.Abs(float64(got)-0.001) > 1e-7 {
		t.Fatalf("threshold = %g, want floor 0.001", got)
	}
}

func TestControllerTone(t *testing.T) {
	c := newTestController(t, clip.KindSimple)

	for range 12 {
		c.HandleKey('F')
	}
	if got := c.tone.Frequency(); math.Abs(got-440) > 1e-6 {
		t.Fatalf("frequency = %g, want 440", got)
	}

	c.HandleKey('a')
	if got := c.tone.Amplitude(); math.Abs(got-0.4) > 1e-9 {
		t.Fatalf("amplitude = %g, want 0.4", got)
	}
}

func TestControllerQuitKeys(t *testing.T) {
	c := newTestController(t, clip.KindSimple)

	for _, key := range []byte{'q', 0x03, 0x1b} {
		if !c.HandleKey(key) {
			t.Errorf("key %#x should quit", key)
		}
	}
	if c.HandleKey('x') {
		t.Error("unbound key should not quit")
	}
}

func TestControllerStatus(t *testing.T) {
	c := newTestController(t, clip.KindFolding)
	c.HandleKey('2')

	status := c.Status()
	for _, want := range []string{"threshold=100%", "[lower_threshold=100%]", "fold=0%", "gain=50%", "tone=220.0Hz/0.50"} {
		if !strings.Contains(status, want) {
			t.Errorf("Status() = %q, missing %q", status, want)
		}
	}
}

func TestNewEngineOverrides(t *testing.T) {
	eng, err := newEngine("fold", []string{"fold=-20", "gain = 80%"})
	if err != nil {
		t.Fatalf("newEngine() error = %v", err)
	}

	if got := eng.Params().DisplayText(clip.FoldAmount); got != "-20" {
		t.Fatalf("fold = %q, want -20", got)
	}

	if _, err := newEngine("simple", []string{"lower_threshold=10"}); err == nil {
		t.Fatal("expected error for parameter of another kind")
	}
}

func TestControllerStatusMeter(t *testing.T) {
	c := newTestController(t, clip.KindSimple)
	c.meter = level.NewMeter()

	if strings.Contains(c.Status(), "out=") {
		t.Fatal("empty meter should not be shown")
	}

	c.meter.Update([]float32{0.5, -0.5})
	if status := c.Status(); !strings.Contains(status, "out=") {
		t.Fatalf("Status() = %q, missing output level", status)
	}
	if strings.Contains(c.Status(), "out=") {
		t.Fatal("Status() should start a new meter window")
	}
}

type fakeTransport struct {
	playing bool
}

func (f *fakeTransport) Play()           { f.playing = true }
func (f *fakeTransport) Pause()          { f.playing = false }
func (f *fakeTransport) IsPlaying() bool { return f.playing }

func TestControllerPause(t *testing.T) {
	c := newTestController(t, clip.KindSimple)
	p := &fakeTransport{playing: true}
	c.player = p

	c.HandleKey(' ')
	if p.playing {
		t.Fatal("space should pause")
	}
	if !strings.HasPrefix(c.Status(), "paused ") {
		t.Fatalf("Status() = %q, want paused prefix", c.Status())
	}

	c.HandleKey(' ')
	if !p.playing || strings.Contains(c.Status(), "paused") {
		t.Fatal("second space should resume")
	}
}

func TestControllerRejectedPitch(t *testing.T) {
	c := newTestController(t, clip.KindSimple)
	if err := c.tone.SetFrequency(23000); err != nil {
		t.Fatalf("SetFrequency() error = %v", err)
	}

	c.HandleKey('F')
	if got := c.tone.Frequency(); got != 23000 {
		t.Fatalf("frequency = %g, want unchanged 23000", got)
	}
	if status := c.Status(); !strings.Contains(status, "! ") {
		t.Fatalf("Status() = %q, want rejection notice", status)
	}

	c.HandleKey('f')
	if strings.Contains(c.Status(), "! ") {
		t.Fatal("notice should clear on the next key")
	}
}

func TestControllerResetClearsMeter(t *testing.T) {
	c := newTestController(t, clip.KindSimple)
	c.meter = level.NewMeter()
	c.meter.Update([]float32{0.5})

	c.HandleKey('r')
	if strings.Contains(c.Status(), "out=") {
		t.Fatal("reset should clear the meter window")
	}
}

func TestCLIValidate(t *testing.T) {
	base := CLI{SampleRate: 48000, Channels: 2, BlockSize: 512}
	if err := base.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	for _, mutate := range []func(*CLI){
		func(c *CLI) { c.Channels = 0 },
		func(c *CLI) { c.Channels = -1 },
		func(c *CLI) { c.SampleRate = 0 },
		func(c *CLI) { c.BlockSize = 0 },
		func(c *CLI) { c.Duration = -time.Second },
	} {
		c := base
		mutate(&c)
		if err := c.Validate(); err == nil {
			t.Fatalf("Validate(%+v) expected error", c)
		}
	}
}

func TestCLIRejectsZeroChannels(t *testing.T) {
	parse := func(args ...string) error {
		parser, err := kong.New(&CLI{}, kong.Name("clipplay"), kong.Exit(func(int) {}))
		if err != nil {
			t.Fatalf("kong.New() error = %v", err)
		}

		_, err = parser.Parse(args)

		return err
	}

	if err := parse("--channels", "0"); err == nil {
		t.Fatal("expected parse error for zero channels")
	}
	if err := parse("simple", "--channels", "1"); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
}
