package main

import (
	"fmt"
	"math"
	"strconv"

	"github.com/cwbudde/algo-clip/dsp/effects/clip"
	"github.com/cwbudde/algo-clip/dsp/param"
	"github.com/cwbudde/algo-clip/dsp/window"
	"github.com/cwbudde/algo-clip/internal/cli"
	"github.com/cwbudde/algo-clip/measure/curve"
	"github.com/cwbudde/algo-clip/measure/harmonic"
)

// EngineFlags selects a processor kind and parameter overrides.
type EngineFlags struct {
	Kind string   `arg:"" optional:"" default:"simple" help:"Processor kind: simple or folding."`
	Set  []string `short:"s" placeholder:"name=percent" help:"Override a parameter, e.g. --set threshold=25."`
}

func (f *EngineFlags) engine() (*clip.Engine, error) {
	kind, err := clip.ParseKind(f.Kind)
	if err != nil {
		return nil, err
	}

	return clip.New(kind, clip.WithAssignments(f.Set...))
}

// ParamsCmd lists the parameter table.
type ParamsCmd struct {
	EngineFlags `embed:""`
}

func (c *ParamsCmd) Run(rc *runContext) error {
	eng, err := c.engine()
	if err != nil {
		return err
	}

	st := eng.Params()
	tbl := cli.Table{Headers: []string{"#", "name", "value", "default", "floor", "ceiling"}}

	for i := range st.Count() {
		spec, _ := st.Spec(i)
		tbl.AddRow(
			strconv.Itoa(i),
			st.Name(i),
			st.DisplayText(i)+st.Label(i),
			formatBound(spec.Default),
			formatBound(spec.Floor),
			formatBound(spec.Ceiling),
		)
	}

	fmt.Fprint(rc.Out, tbl.Render())

	return nil
}

func formatBound(v float32) string {
	switch {
	case math.IsInf(float64(v), 1):
		return "+inf"
	case math.IsInf(float64(v), -1):
		return "-inf"
	default:
		return param.FormatPercent(v) + param.PercentLabel
	}
}

// CurveCmd prints input/output pairs of the transfer curve.
type CurveCmd struct {
	EngineFlags `embed:""`

	Lo     float64 `default:"-1" help:"Lowest input value."`
	Hi     float64 `default:"1" help:"Highest input value."`
	Points int     `short:"n" default:"21" help:"Number of evenly spaced inputs."`
	CSV    bool    `help:"Print comma separated values without the summary."`
}

func (c *CurveCmd) Run(rc *runContext) error {
	eng, err := c.engine()
	if err != nil {
		return err
	}

	pts, err := curve.Sample(eng.Snapshot(), c.Lo, c.Hi, c.Points)
	if err != nil {
		return err
	}

	if c.CSV {
		fmt.Fprintln(rc.Out, "in,out")
		for _, p := range pts {
			fmt.Fprintf(rc.Out, "%g,%g\n", p.In, p.Out)
		}

		return nil
	}

	tbl := cli.Table{Headers: []string{"in", "out"}}
	for _, p := range pts {
		tbl.AddRow(fmt.Sprintf("%+.4f", p.In), fmt.Sprintf("%+.4f", p.Out))
	}

	fmt.Fprint(rc.Out, tbl.Render())
	fmt.Fprintln(rc.Out)

	props := curve.Describe(pts)
	cli.PrintKeyValue(rc.Out, "Peak", fmt.Sprintf("%.4f", props.Peak))
	cli.PrintKeyValue(rc.Out, "Monotonic", props.Monotonic)
	if !props.Monotonic {
		cli.PrintKeyValue(rc.Out, "Fold onset", fmt.Sprintf("%+.4f", props.FoldOnset))
	}
	if !math.IsNaN(float64(props.SymmetryError)) {
		cli.PrintKeyValue(rc.Out, "Symmetry error", fmt.Sprintf("%.4f", props.SymmetryError))
	}

	return nil
}

// HarmonicsCmd runs a harmonic analysis of the shaped sine.
type HarmonicsCmd struct {
	EngineFlags `embed:""`

	SampleRate  float64 `default:"48000" help:"Analysis sample rate in Hz."`
	FFTSize     int     `name:"fft-size" default:"8192" help:"FFT length (power of two)."`
	Fundamental float64 `short:"f" default:"1000" help:"Test tone frequency in Hz."`
	Amplitude   float64 `short:"a" default:"0.9" help:"Test tone peak amplitude."`
	Orders      int     `default:"10" help:"Highest harmonic order to report."`
	Window      string  `short:"w" default:"hann" enum:"hann,hamming,blackman,blackman-harris,flattop,rect" help:"Analysis window (${enum})."`
}

func (c *HarmonicsCmd) Run(rc *runContext) error {
	eng, err := c.engine()
	if err != nil {
		return err
	}

	win, err := window.ParseType(c.Window)
	if err != nil {
		return err
	}

	res, err := harmonic.Analyze(eng.Snapshot(), harmonic.Config{
		SampleRate:   c.SampleRate,
		FFTSize:      c.FFTSize,
		Fundamental:  c.Fundamental,
		Amplitude:    c.Amplitude,
		MaxHarmonics: c.Orders,
		Window:       win,
	})
	if err != nil {
		return err
	}

	tbl := cli.Table{Headers: []string{"order", "freq [Hz]", "level [dB]"}}
	for i, h := range res.Harmonics {
		order := i + 2
		tbl.AddRow(
			strconv.Itoa(order),
			fmt.Sprintf("%.1f", res.Fundamental*float64(order)),
			formatDB(harmonic.ToDB(h)),
		)
	}

	cli.PrintKeyValue(rc.Out, "Fundamental", fmt.Sprintf("%.2f Hz at %.4f", res.Fundamental, res.FundamentalLevel))
	fmt.Fprintln(rc.Out)
	fmt.Fprint(rc.Out, tbl.Render())
	fmt.Fprintln(rc.Out)
	cli.PrintKeyValue(rc.Out, "THD", fmt.Sprintf("%.4f%% (%s dB)", res.THD*100, formatDB(res.THDdB)))
	cli.PrintKeyValue(rc.Out, "THD+N", fmt.Sprintf("%.4f%% (SINAD %s dB)", res.THDN*100, formatDB(res.SINAD)))
	cli.PrintKeyValue(rc.Out, "Odd / even", fmt.Sprintf("%s / %s dB", formatDB(harmonic.ToDB(res.OddHD)), formatDB(harmonic.ToDB(res.EvenHD))))
	cli.PrintKeyValue(rc.Out, "DC", fmt.Sprintf("%+.5f", res.DC))
	cli.PrintKeyValue(rc.Out, "Peak", fmt.Sprintf("%.4f", res.Peak))

	return nil
}

func formatDB(db float64) string {
	if math.IsInf(db, -1) {
		return "-inf"
	}

	return fmt.Sprintf("%.2f", db)
}

// InfoCmd prints plugin metadata.
type InfoCmd struct {
	EngineFlags `embed:""`
}

func (c *InfoCmd) Run(rc *runContext) error {
	eng, err := c.engine()
	if err != nil {
		return err
	}

	info := eng.Info()
	cli.PrintTitle(rc.Out, info.Name)
	cli.PrintKeyValue(rc.Out, "Vendor", info.Vendor)
	cli.PrintKeyValue(rc.Out, "Unique ID", info.UniqueID)
	cli.PrintKeyValue(rc.Out, "Category", info.Category)
	cli.PrintKeyValue(rc.Out, "Inputs", info.Inputs)
	cli.PrintKeyValue(rc.Out, "Outputs", info.Outputs)
	cli.PrintKeyValue(rc.Out, "Parameters", info.Parameters)
	cli.PrintKeyValue(rc.Out, "Output peak", fmt.Sprintf("%.4f", eng.Snapshot().Peak()))

	return nil
}

// VersionCmd prints the program version.
type VersionCmd struct{}

func (c *VersionCmd) Run(rc *runContext) error {
	cli.PrintVersion(rc.Out, "clipinfo", version)
	return nil
}
