// Command clipplay plays a test tone through a clip processor and lets the
// parameters be changed from the keyboard while audio is running.
//
// Usage:
//
//	clipplay [flags] [kind]
//
// Examples:
//
//	clipplay folding --set fold=30
//	clipplay simple -f 220 -a 0.8 --duration 10s
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"golang.org/x/term"

	"github.com/cwbudde/algo-clip/dsp/core"
	"github.com/cwbudde/algo-clip/dsp/effects/clip"
	"github.com/cwbudde/algo-clip/internal/audio"
	"github.com/cwbudde/algo-clip/internal/audio/device"
	"github.com/cwbudde/algo-clip/internal/cli"
	"github.com/cwbudde/algo-clip/stats/level"
)

var version = "0.1.0"

// CLI defines the command-line interface.
type CLI struct {
	Version bool `short:"v" help:"Show version information."`

	Kind       string        `arg:"" optional:"" default:"folding" help:"Processor kind: simple or folding."`
	Set        []string      `short:"s" placeholder:"name=percent" help:"Initial parameter override, e.g. --set fold=25."`
	Freq       float64       `short:"f" default:"220" help:"Tone frequency in Hz."`
	Amp        float64       `short:"a" default:"0.8" help:"Tone peak amplitude."`
	SampleRate int           `default:"48000" help:"Output sample rate in Hz."`
	Channels   int           `default:"2" help:"Output channel count."`
	BlockSize  int           `default:"512" help:"Frames rendered per device read."`
	Duration   time.Duration `short:"d" default:"0s" help:"Stop after this long (0 plays until q)."`
}

// Validate rejects output formats the device and tone source cannot share.
func (c *CLI) Validate() error {
	switch {
	case c.Channels < 1:
		return fmt.Errorf("--channels must be >= 1: %d", c.Channels)
	case c.SampleRate < 1:
		return fmt.Errorf("--sample-rate must be > 0: %d", c.SampleRate)
	case c.BlockSize < 1:
		return fmt.Errorf("--block-size must be > 0: %d", c.BlockSize)
	case c.Duration < 0:
		return fmt.Errorf("--duration must not be negative: %s", c.Duration)
	}

	return nil
}

func main() {
	cliArgs := &CLI{}
	kong.Parse(cliArgs,
		kong.Name("clipplay"),
		kong.Description("Play a test tone through a clip processor"),
		kong.UsageOnError(),
		kong.Help(cli.StyledHelpPrinter("clipplay", "Play a test tone through a clip processor")),
	)

	if cliArgs.Version {
		cli.PrintVersion(os.Stdout, "clipplay", version)
		os.Exit(0)
	}

	eng, err := newEngine(cliArgs.Kind, cliArgs.Set)
	if err != nil {
		log.Fatal(err)
	}

	tone, err := audio.NewToneSource(float64(cliArgs.SampleRate), cliArgs.Freq, cliArgs.Amp, cliArgs.Channels)
	if err != nil {
		log.Fatal(err)
	}

	reader := audio.NewStreamReader(tone, eng,
		core.WithSampleRate(float64(cliArgs.SampleRate)),
		core.WithBlockSize(cliArgs.BlockSize),
		core.WithChannels(cliArgs.Channels),
	)

	meter := level.NewMeter()
	reader.SetTap(meter)

	player, err := device.NewPlayer(cliArgs.SampleRate, reader)
	if err != nil {
		log.Fatal(err)
	}
	defer player.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cliArgs.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cliArgs.Duration)
		defer cancel()
	}

	ctrl := newController(eng, tone, meter, player)
	cli.PrintInfo(fmt.Sprintf("%s at %.1f Hz, %d Hz / %d ch", eng.Info().Name, tone.Frequency(), cliArgs.SampleRate, cliArgs.Channels))

	player.Play()

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		cli.PrintInfo("stdin is not a terminal, keyboard control disabled")
		<-ctx.Done()
		return
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		cli.PrintError(fmt.Sprintf("failed to set raw mode: %v", err))
		<-ctx.Done()
		return
	}
	defer term.Restore(fd, oldState)

	fmt.Fprint(os.Stderr, strings.ReplaceAll(ctrl.Help(), "\n", "\r\n"))
	fmt.Fprint(os.Stderr, "\r\n"+ctrl.Status())

	refresh := time.NewTicker(250 * time.Millisecond)
	defer refresh.Stop()

	keys := readKeys(os.Stdin)
	for {
		select {
		case <-refresh.C:
			fmt.Fprint(os.Stderr, "\r\033[K"+ctrl.Status())
		case <-ctx.Done():
			fmt.Fprint(os.Stderr, "\r\n")
			return
		case key, ok := <-keys:
			if !ok {
				return
			}

			if quit := ctrl.HandleKey(key); quit {
				fmt.Fprint(os.Stderr, "\r\n")
				return
			}

			fmt.Fprint(os.Stderr, "\r\033[K"+ctrl.Status())
		}
	}
}

// readKeys forwards bytes read from f until a read fails.
func readKeys(f *os.File) <-chan byte {
	keys := make(chan byte, 16)

	go func() {
		defer close(keys)

		buf := make([]byte, 1)
		for {
			n, err := f.Read(buf)
			if n > 0 {
				keys <- buf[0]
			}
			if err != nil {
				return
			}
		}
	}()

	return keys
}

func newEngine(kindName string, overrides []string) (*clip.Engine, error) {
	kind, err := clip.ParseKind(kindName)
	if err != nil {
		return nil, err
	}

	return clip.New(kind, clip.WithAssignments(overrides...))
}
