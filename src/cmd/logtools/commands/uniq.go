// FILE: logtools/src/cmd/logtools/commands/uniq.go
package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"logtools/src/internal/core"
	"logtools/src/internal/uniq"

	"github.com/spf13/pflag"
)

// UniqCommand counts entries that differ only in numbers.
type UniqCommand struct {
	env *Env
}

func NewUniqCommand(env *Env) *UniqCommand {
	return &UniqCommand{env: env}
}

func (c *UniqCommand) Execute(args []string) error {
	cfg := *c.env.Config
	logger := c.env.Logger

	var output string

	fs := pflag.NewFlagSet("uniq", pflag.ContinueOnError)
	fs.StringVarP(&output, "output-file", "o", "", "Write counts to this file (default: stdout)")
	bindEntryFlags(fs, &cfg.Entry)

	if err := parseFlags(fs, args); err != nil {
		return err
	}
	input, err := optionalInput(fs)
	if err != nil {
		return err
	}

	re, _, err := compileEntry(cfg.Entry, false, false)
	if err != nil {
		return err
	}
	counter, err := uniq.New(re)
	if err != nil {
		return err
	}

	lx, err := openEntries(input, re, nil, logger)
	if err != nil {
		return err
	}
	defer lx.Close()

	for {
		e, err := lx.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			logger.Warn("msg", "Reading input failed",
				"component", "uniq",
				"input", lx.Name(),
				"error", err)
			continue
		}
		if err := counter.Add(e); err != nil {
			logger.Warn("msg", "Entry skipped",
				"component", "uniq",
				"entry", e.FirstLine(),
				"error", err)
		}
	}
	logLexerStats(logger, lx, "uniq")

	w := c.env.Stdout
	var file *os.File
	if output != "" && output != "-" {
		file, err = os.Create(output)
		if err != nil {
			return fmt.Errorf("opening output: %w: %v", core.ErrIO, err)
		}
		w = file
	}

	bw := bufio.NewWriter(w)
	_, err = counter.WriteTo(bw)
	if err == nil {
		if ferr := bw.Flush(); ferr != nil {
			err = fmt.Errorf("%w: writing counts: %v", core.ErrIO, ferr)
		}
	}
	if file != nil {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: closing %s: %v", core.ErrIO, output, cerr)
		}
	}
	if err != nil {
		return err
	}

	logger.Debug("msg", "Counting complete",
		"component", "uniq",
		"distinct", len(counter.Results()),
		"skipped", counter.Skipped())
	return nil
}

func (c *UniqCommand) Description() string {
	return "Count entries that differ only in numbers"
}

func (c *UniqCommand) Help() string {
	return `Uniq Command - Count similar entries

Usage:
  logtools uniq [options] [input-file]

Reads entries from input-file (default: stdin). Each entry is keyed by its
'timestamp' capture and its 'message' capture with every run of digits
replaced by <num>. Keys are printed with their counts, least frequent first:

       3 2024-01-01 10:00:00,000 request <num> done

The entry pattern must define both capture groups. Entries whose first line
does not provide them are skipped.

Options:
  -o, --output-file <file>     Write counts to this file (default: stdout)

` + entryFlagsHelp + `
Examples:
  logtools uniq app.log | tail
`
}
