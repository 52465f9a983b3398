// FILE: logtools/src/cmd/logtools/commands/shared.go
package commands

import (
	"fmt"
	"regexp"

	"logtools/src/internal/config"
	"logtools/src/internal/format"
	"logtools/src/internal/lexer"
	"logtools/src/internal/sink"
	"logtools/src/internal/source"
	"logtools/src/internal/timestamp"

	"github.com/lixenwraith/log"
	"github.com/spf13/pflag"
)

const entryFlagsHelp = `Entry Options:
  --entry-pattern <regex>      Regex matching the first line of an entry,
                               anchored at line start (config: entry.pattern)
  --timestamp-pattern <fmt>    strftime-style format of the 'timestamp'
                               capture (config: entry.timestamp_format)
  --timezone <zone>            Zone for timestamps without an offset
                               (config: entry.timezone)
`

const outputFlagsHelp = `Output Options:
  -o, --output-file <target>   File, http(s) URL or '-' (default: stdout)
      --format <name>          raw, json or text (config: output.format)
`

// bindEntryFlags binds the entry options onto cfg so flags override the
// loaded configuration.
func bindEntryFlags(fs *pflag.FlagSet, cfg *config.EntryConfig) {
	fs.StringVar(&cfg.Pattern, "entry-pattern", cfg.Pattern, "Regex matching the first line of an entry")
	fs.StringVar(&cfg.TimestampFormat, "timestamp-pattern", cfg.TimestampFormat, "Format of the 'timestamp' capture")
	fs.StringVar(&cfg.Timezone, "timezone", cfg.Timezone, "Zone for timestamps without an offset")
}

func bindOutputFlags(fs *pflag.FlagSet, target *string, cfg *config.OutputConfig) {
	fs.StringVarP(target, "output-file", "o", "", "Output file, http(s) URL or '-'")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "Output format: raw, json, text")
}

// compileEntry builds the entry-start pattern and, when withTime is set, a
// timestamp parser over it.
func compileEntry(cfg config.EntryConfig, stripSource, withTime bool) (*regexp.Regexp, *timestamp.Parser, error) {
	re, err := lexer.CompilePattern(cfg.Pattern, stripSource)
	if err != nil {
		return nil, nil, err
	}
	if !withTime {
		return re, nil, nil
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}
	parser, err := timestamp.New(re, cfg.TimestampFormat, loc)
	if err != nil {
		return nil, nil, err
	}
	return re, parser, nil
}

// openEntries opens path ("" or "-" for stdin) as an entry stream.
func openEntries(path string, re *regexp.Regexp, parser *timestamp.Parser, logger *log.Logger) (*lexer.Lexer, error) {
	rc, name, err := source.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	return lexer.New(rc, lexer.Options{
		Pattern:    re,
		Timestamps: parser,
		Name:       name,
		Logger:     logger,
	}), nil
}

// openOutput builds the formatter named by cfg.Format and the sink for target.
func openOutput(target string, cfg *config.OutputConfig, logger *log.Logger) (sink.Sink, error) {
	formatter, err := format.NewFormatter(cfg.Format, cfg, logger)
	if err != nil {
		return nil, &UsageError{Err: err}
	}
	return sink.Open(target, formatter, cfg, logger)
}

// optionalInput returns the single positional argument, or "" for stdin.
func optionalInput(fs *pflag.FlagSet) (string, error) {
	switch fs.NArg() {
	case 0:
		return "", nil
	case 1:
		return fs.Arg(0), nil
	default:
		return "", usageErrorf("%s: expected at most one input file, got %d", fs.Name(), fs.NArg())
	}
}

// requiredArg returns the single positional argument.
func requiredArg(fs *pflag.FlagSet, what string) (string, error) {
	if fs.NArg() != 1 {
		return "", usageErrorf("%s: expected exactly one %s", fs.Name(), what)
	}
	return fs.Arg(0), nil
}

func logLexerStats(logger *log.Logger, lx *lexer.Lexer, command string) {
	stats := lx.Stats()
	logger.Debug("msg", "Input consumed",
		"component", command,
		"input", lx.Name(),
		"lines_read", stats.LinesRead,
		"entries", stats.EntriesEmitted,
		"lines_dropped", stats.LinesDropped,
		"timestamp_failures", stats.TimestampFailures)
}
