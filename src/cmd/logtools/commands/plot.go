// FILE: logtools/src/cmd/logtools/commands/plot.go
package commands

import (
	"errors"
	"fmt"
	"io"
	"time"

	"logtools/src/internal/chart"

	"github.com/spf13/pflag"
)

// PlotCommand renders the per-second entry rate of a log as a chart.
type PlotCommand struct {
	env *Env
}

func NewPlotCommand(env *Env) *PlotCommand {
	return &PlotCommand{env: env}
}

func (c *PlotCommand) Execute(args []string) error {
	cfg := *c.env.Config
	logger := c.env.Logger

	var (
		output   string
		maxValue int
	)

	fs := pflag.NewFlagSet("plot", pflag.ContinueOnError)
	fs.StringVarP(&output, "output-file", "o", "", "Chart file; the extension selects svg, png, pdf, eps, jpg or tif")
	fs.Int64VarP(&cfg.Plot.Width, "chart-width", "w", cfg.Plot.Width, "Chart width in pixels")
	fs.Int64VarP(&cfg.Plot.Height, "chart-height", "h", cfg.Plot.Height, "Chart height in pixels")
	fs.StringVarP(&cfg.Plot.Colour, "series-colour", "c", cfg.Plot.Colour, "Series colour: red, blue or green")
	fs.IntVar(&maxValue, "max-value", 0, "Upper bound of the Y axis instead of the largest count")
	bindEntryFlags(fs, &cfg.Entry)

	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if output == "" {
		return usageErrorf("plot: --output-file is required")
	}
	input, err := requiredArg(fs, "input file")
	if err != nil {
		return err
	}

	opts := chart.Options{
		Width:    int(cfg.Plot.Width),
		Height:   int(cfg.Plot.Height),
		Colour:   cfg.Plot.Colour,
		MaxValue: maxValue,
	}
	if err := opts.Validate(output); err != nil {
		return &UsageError{Err: err}
	}

	re, parser, err := compileEntry(cfg.Entry, false, true)
	if err != nil {
		return err
	}
	lx, err := openEntries(input, re, parser, logger)
	if err != nil {
		return err
	}
	defer lx.Close()

	var series chart.Series
	for {
		e, err := lx.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			logger.Warn("msg", "Reading input failed",
				"component", "plot",
				"input", lx.Name(),
				"error", err)
			continue
		}
		if !e.HasTime() {
			continue
		}
		series.Add(e.Time)
	}
	logLexerStats(logger, lx, "plot")

	fmt.Fprintf(c.env.Stdout, "Chart is %dx%d\n", opts.Width, opts.Height)
	sum, err := chart.Render(series.Buckets(), output, opts)
	if err != nil {
		return err
	}

	const layout = time.DateTime + " UTC"
	fmt.Fprintf(c.env.Stdout, "X: %s to %s\n", sum.From.UTC().Format(layout), sum.To.UTC().Format(layout))
	fmt.Fprintf(c.env.Stdout, "Y: %d to %d\n", 0, sum.MaxValue)
	return nil
}

func (c *PlotCommand) Description() string {
	return "Chart the number of entries per second"
}

func (c *PlotCommand) Help() string {
	return `Plot Command - Chart the entry rate of a log

Usage:
  logtools plot -o <chart-file> [options] <input-file>

Counts entries per second (consecutive entries within the same second share
a point) and draws them as a line chart. Entries without a timestamp are
ignored. Sizes are rounded down to a multiple of 8.

Options:
  -o, --output-file <file>     Chart file; the extension selects the type
                               (svg, png, pdf, eps, jpg, tif)
  -w, --chart-width <px>       Chart width (default: 1024, config: plot.width)
  -h, --chart-height <px>      Chart height (default: 768, config: plot.height)
  -c, --series-colour <name>   red, blue or green (default: red, config: plot.colour)
      --max-value <n>          Upper bound of the Y axis instead of the largest count

Use --help for this message; -h sets the chart height.

` + entryFlagsHelp + `
Examples:
  logtools plot -o rate.svg -w 1600 -c blue app.log
`
}
