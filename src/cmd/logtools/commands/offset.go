// FILE: logtools/src/cmd/logtools/commands/offset.go
package commands

import (
	"errors"
	"fmt"
	"io"

	"logtools/src/internal/core"
	"logtools/src/internal/offset"

	"github.com/spf13/pflag"
)

// OffsetCommand moves every entry timestamp by a whole number of hours.
type OffsetCommand struct {
	env *Env
}

func NewOffsetCommand(env *Env) *OffsetCommand {
	return &OffsetCommand{env: env}
}

func (c *OffsetCommand) Execute(args []string) error {
	cfg := *c.env.Config
	logger := c.env.Logger

	var (
		hours  string
		output string
	)

	fs := pflag.NewFlagSet("offset", pflag.ContinueOnError)
	fs.StringVar(&hours, "offset-hours", "", "Signed number of hours to add to each timestamp")
	bindEntryFlags(fs, &cfg.Entry)
	bindOutputFlags(fs, &output, &cfg.Output)

	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if hours == "" {
		return usageErrorf("offset: --offset-hours is required")
	}
	delta, err := offset.ParseHours(hours)
	if err != nil {
		return &UsageError{Err: err}
	}
	input, err := optionalInput(fs)
	if err != nil {
		return err
	}

	re, parser, err := compileEntry(cfg.Entry, false, true)
	if err != nil {
		return err
	}
	shifter := offset.New(parser, delta)

	lx, err := openEntries(input, re, parser, logger)
	if err != nil {
		return err
	}
	defer lx.Close()

	out, err := openOutput(output, &cfg.Output, logger)
	if err != nil {
		return err
	}

	var unchanged uint64
	for {
		e, err := lx.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			logger.Warn("msg", "Reading input failed",
				"component", "offset",
				"input", lx.Name(),
				"error", err)
			continue
		}

		shifted, err := shifter.Shift(e)
		if err != nil {
			unchanged++
			logger.Warn("msg", "Entry timestamp not shifted",
				"component", "offset",
				"entry", e.FirstLine(),
				"error", err)
			shifted = e
		}
		if err := out.Write(core.LabeledEntry{Entry: shifted}); err != nil {
			out.Close()
			return fmt.Errorf("writing output: %w", err)
		}
	}

	logLexerStats(logger, lx, "offset")
	logger.Debug("msg", "Offset complete",
		"component", "offset",
		"delta", delta.String(),
		"unchanged", unchanged)
	return out.Close()
}

func (c *OffsetCommand) Description() string {
	return "Shift entry timestamps by whole hours"
}

func (c *OffsetCommand) Help() string {
	return `Offset Command - Shift the timestamp of every entry

Usage:
  logtools offset --offset-hours <n> [options] [input-file]

Reads entries from input-file (default: stdin) and rewrites the 'timestamp'
capture of each entry's first line with the shifted time, formatted with the
timestamp pattern. Every other byte is kept. Entries whose timestamp cannot
be found or parsed are written unchanged.

Options:
      --offset-hours <n>       Signed integer number of hours, e.g. -3 or +1

` + entryFlagsHelp + `
` + outputFlagsHelp + `
Examples:
  logtools offset --offset-hours -2 app.log > app-utc.log
`
}
