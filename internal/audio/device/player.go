// Package device plays an audio.StreamReader on the default output device
// through oto. It is the only package that links the platform audio
// libraries.
package device

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/cwbudde/algo-clip/internal/audio"
)

// Player plays a StreamReader on the default output device.
type Player struct {
	player *oto.Player
	reader *audio.StreamReader
}

var (
	contextOnce       sync.Once
	audioContext      *oto.Context
	contextErr        error
	contextSampleRate int
	contextChannels   int
)

// sharedContext returns the process-wide oto context. oto allows a single
// context, so later calls must request the same format.
func sharedContext(sampleRate, channels int) (*oto.Context, error) {
	contextOnce.Do(func() {
		contextSampleRate = sampleRate
		contextChannels = channels

		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channels,
			Format:       oto.FormatFloat32LE,
			BufferSize:   20 * time.Millisecond,
		})
		if err != nil {
			contextErr = err
			return
		}
		<-ready

		audioContext = ctx
	})

	if contextErr != nil {
		return nil, contextErr
	}
	if sampleRate != contextSampleRate || channels != contextChannels {
		return nil, fmt.Errorf("audio context already initialized at %d Hz/%d ch (requested %d Hz/%d ch)",
			contextSampleRate, contextChannels, sampleRate, channels)
	}

	return audioContext, nil
}

// NewPlayer opens the output device at sampleRate and attaches reader.
func NewPlayer(sampleRate int, reader *audio.StreamReader) (*Player, error) {
	ctx, err := sharedContext(sampleRate, reader.Channels())
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}

	return &Player{player: ctx.NewPlayer(reader), reader: reader}, nil
}

func (p *Player) Play()  { p.player.Play() }
func (p *Player) Pause() { p.player.Pause() }

// IsPlaying reports whether the device is pulling samples.
func (p *Player) IsPlaying() bool { return p.player.IsPlaying() }

// Close stops playback and releases the player.
func (p *Player) Close() error {
	p.player.Pause()
	if err := p.player.Close(); err != nil {
		return err
	}

	return p.reader.Close()
}
