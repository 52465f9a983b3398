// FILE: logtools/src/cmd/logtools/commands/grep.go
package commands

import (
	"errors"
	"fmt"
	"io"

	"logtools/src/internal/config"
	"logtools/src/internal/core"
	"logtools/src/internal/filter"

	"github.com/spf13/pflag"
)

// GrepCommand writes the entries that pass the include and exclude matchers.
type GrepCommand struct {
	env *Env
}

func NewGrepCommand(env *Env) *GrepCommand {
	return &GrepCommand{env: env}
}

func (c *GrepCommand) Execute(args []string) error {
	cfg := *c.env.Config
	logger := c.env.Logger

	var (
		includes, includeRegexes []string
		excludes, excludeRegexes []string
		skipSource               bool
		output                   string
	)

	fs := pflag.NewFlagSet("grep", pflag.ContinueOnError)
	fs.StringArrayVarP(&includes, "verbatim-include", "f", nil, "Output entries containing this string")
	fs.StringArrayVarP(&includeRegexes, "regex-include", "r", nil, "Output entries matching this regex")
	fs.StringArrayVarP(&excludes, "verbatim-exclude", "F", nil, "Drop entries containing this string")
	fs.StringArrayVarP(&excludeRegexes, "regex-exclude", "R", nil, "Drop entries matching this regex")
	fs.BoolVarP(&skipSource, "skip-entry-source", "L", false, "Accept a '<source>: ' prefix before the entry pattern")
	bindEntryFlags(fs, &cfg.Entry)
	bindOutputFlags(fs, &output, &cfg.Output)

	if err := parseFlags(fs, args); err != nil {
		return err
	}
	input, err := optionalInput(fs)
	if err != nil {
		return err
	}

	filters := append([]config.FilterConfig(nil), cfg.Grep.Filters...)
	if len(includes)+len(includeRegexes) > 0 {
		filters = append(filters, config.FilterConfig{
			Type:      config.FilterTypeInclude,
			Logic:     config.FilterLogicOr,
			Verbatims: includes,
			Patterns:  includeRegexes,
		})
	}
	if len(excludes)+len(excludeRegexes) > 0 {
		filters = append(filters, config.FilterConfig{
			Type:      config.FilterTypeExclude,
			Logic:     config.FilterLogicOr,
			Verbatims: excludes,
			Patterns:  excludeRegexes,
		})
	}
	chain, err := filter.NewChain(filters, logger)
	if err != nil {
		return err
	}

	re, _, err := compileEntry(cfg.Entry, skipSource, false)
	if err != nil {
		return err
	}
	lx, err := openEntries(input, re, nil, logger)
	if err != nil {
		return err
	}
	defer lx.Close()

	out, err := openOutput(output, &cfg.Output, logger)
	if err != nil {
		return err
	}

	entries := chain.Wrap(lx)
	for {
		e, err := entries.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			logger.Warn("msg", "Reading input failed",
				"component", "grep",
				"input", lx.Name(),
				"error", err)
			continue
		}
		if err := out.Write(core.LabeledEntry{Entry: e}); err != nil {
			out.Close()
			return fmt.Errorf("writing output: %w", err)
		}
	}

	logLexerStats(logger, lx, "grep")
	logger.Debug("msg", "Filtering complete",
		"component", "grep",
		"filters", chain.GetStats())
	return out.Close()
}

func (c *GrepCommand) Description() string {
	return "Filter entries by substrings and regexes"
}

func (c *GrepCommand) Help() string {
	return `Grep Command - Grep that knows what a log entry is

Usage:
  logtools grep [options] [input-file]

Reads entries from input-file (default: stdin). An entry is written when it
matches any include (or no includes are given) and matches no exclude.
Matching runs on the whole entry text, continuation lines included.
Filters from the [grep] configuration section are applied first.

Options:
  -f, --verbatim-include <string>   Output entries containing this string
  -r, --regex-include <regex>       Output entries matching this regex
  -F, --verbatim-exclude <string>   Drop entries containing this string
  -R, --regex-exclude <regex>       Drop entries matching this regex
  -L, --skip-entry-source           Accept the '<source>: ' prefix written by
                                    'logtools merge' before the entry pattern

Each matcher option may be repeated.

` + entryFlagsHelp + `
` + outputFlagsHelp + `
Examples:
  logtools grep -f ERROR -F heartbeat app.log
  logtools merge logs/ | logtools grep -L -r 'user=\d+'
`
}
