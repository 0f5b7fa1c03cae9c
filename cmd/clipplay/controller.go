package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-clip/dsp/effects/clip"
	"github.com/cwbudde/algo-clip/internal/audio"
	"github.com/cwbudde/algo-clip/stats/level"
)

const (
	fineStep   = 0.01
	coarseStep = 0.1
	semitone   = 1.0594630943592953
)

// transport is the playback control the device player offers.
type transport interface {
	Play()
	Pause()
	IsPlaying() bool
}

// controller maps key presses to parameter and tone changes. It runs on the
// control goroutine; the audio goroutine only reads the parameter store.
type controller struct {
	eng      *clip.Engine
	tone     *audio.ToneSource
	meter    *level.Meter
	player   transport
	selected int
	// notice is the last rejected change, shown until the next key.
	notice string
}

func newController(eng *clip.Engine, tone *audio.ToneSource, meter *level.Meter, player transport) *controller {
	return &controller{eng: eng, tone: tone, meter: meter, player: player}
}

// HandleKey applies one key press and reports whether playback should stop.
func (c *controller) HandleKey(key byte) bool {
	st := c.eng.Params()
	c.notice = ""

	switch {
	case key == 'q' || key == 0x03 || key == 0x1b:
		return true
	case key >= '1' && key <= '9':
		if idx := int(key - '1'); idx < st.Count() {
			c.selected = idx
		}
	case key == '\t':
		c.selected = (c.selected + 1) % st.Count()
	case key == '+' || key == '=':
		c.nudge(fineStep)
	case key == '-' || key == '_':
		c.nudge(-fineStep)
	case key == ']':
		c.nudge(coarseStep)
	case key == '[':
		c.nudge(-coarseStep)
	case key == 'r':
		st.Reset()
		if c.meter != nil {
			c.meter.Reset()
		}
	case key == ' ':
		c.togglePlayback()
	case key == 'F':
		c.setFrequency(c.tone.Frequency() * semitone)
	case key == 'f':
		c.setFrequency(c.tone.Frequency() / semitone)
	case key == 'A':
		c.tone.SetAmplitude(math.Min(c.tone.Amplitude()+coarseStep, 2))
	case key == 'a':
		c.tone.SetAmplitude(math.Max(c.tone.Amplitude()-coarseStep, 0))
	}

	return false
}

func (c *controller) setFrequency(hz float64) {
	if err := c.tone.SetFrequency(hz); err != nil {
		c.notice = err.Error()
	}
}

func (c *controller) togglePlayback() {
	if c.player == nil {
		return
	}

	if c.player.IsPlaying() {
		c.player.Pause()
	} else {
		c.player.Play()
	}
}

func (c *controller) nudge(step float32) {
	st := c.eng.Params()
	st.Set(c.selected, st.Get(c.selected)+step)
}

// Status renders the current parameter values on one line, marking the
// selected parameter. The output level covers the time since the previous
// call.
func (c *controller) Status() string {
	st := c.eng.Params()

	parts := make([]string, 0, st.Count()+4)
	if c.player != nil && !c.player.IsPlaying() {
		parts = append(parts, "paused")
	}

	for i := range st.Count() {
		item := fmt.Sprintf("%s=%s%s", st.Name(i), st.DisplayText(i), st.Label(i))
		if i == c.selected {
			item = "[" + item + "]"
		}
		parts = append(parts, item)
	}

	parts = append(parts, fmt.Sprintf("tone=%.1fHz/%.2f", c.tone.Frequency(), c.tone.Amplitude()))

	if c.meter != nil {
		if s := c.meter.Take(); s.Length > 0 {
			parts = append(parts, fmt.Sprintf("out=%s/%sdB", formatDB(s.PeakdB), formatDB(s.RMSdB)))
		}
	}

	if c.notice != "" {
		parts = append(parts, "! "+c.notice)
	}

	return strings.Join(parts, " ")
}

// Help lists the key bindings.
func (c *controller) Help() string {
	return "keys: 1-9/tab select  +/- 1%  ]/[ 10%  r reset  space pause  f/F tone pitch  a/A tone level  q quit\n"
}

func formatDB(db float64) string {
	if math.IsInf(db, -1) {
		return "-inf"
	}

	return fmt.Sprintf("%+.1f", db)
}
