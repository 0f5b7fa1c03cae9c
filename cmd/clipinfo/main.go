// Command clipinfo inspects the clip processors offline.
//
// Usage:
//
//	clipinfo <command> [flags] [kind]
//
// Examples:
//
//	clipinfo params folding
//	clipinfo curve simple --points 17 --set threshold=30
//	clipinfo harmonics folding -s fold=25 -s lower_threshold=40
//	clipinfo info folding
package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/cwbudde/algo-clip/internal/cli"
)

var version = "0.1.0"

// CLI defines the command-line interface.
type CLI struct {
	Params    ParamsCmd    `cmd:"" help:"List parameters with current, default and bound values."`
	Curve     CurveCmd     `cmd:"" help:"Print the static transfer curve."`
	Harmonics HarmonicsCmd `cmd:"" help:"Measure the harmonics added to a sine."`
	Info      InfoCmd      `cmd:"" help:"Print plugin metadata."`
	Version   VersionCmd   `cmd:"" help:"Show version information."`
}

// runContext is bound into every command's Run method.
type runContext struct {
	Out io.Writer
}

func main() {
	cliArgs := &CLI{}
	ctx := kong.Parse(cliArgs,
		kong.Name("clipinfo"),
		kong.Description("Inspect hard clip and fold-back processors"),
		kong.UsageOnError(),
		kong.Help(cli.StyledHelpPrinter("clipinfo", "Inspect hard clip and fold-back processors")),
	)

	if err := ctx.Run(&runContext{Out: os.Stdout}); err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
}
