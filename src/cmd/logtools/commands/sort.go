// FILE: logtools/src/cmd/logtools/commands/sort.go
package commands

import (
	"errors"
	"fmt"
	"io"

	"logtools/src/internal/core"
	"logtools/src/internal/extsort"

	"github.com/spf13/pflag"
)

// SortCommand sorts one file of any size by entry timestamp.
type SortCommand struct {
	env *Env
}

func NewSortCommand(env *Env) *SortCommand {
	return &SortCommand{env: env}
}

func (c *SortCommand) Execute(args []string) error {
	cfg := *c.env.Config
	logger := c.env.Logger

	var (
		noCompress bool
		output     string
	)

	fs := pflag.NewFlagSet("sort", pflag.ContinueOnError)
	fs.Int64Var(&cfg.Sort.MemoryBudgetKB, "memory-budget-kb", cfg.Sort.MemoryBudgetKB, "Entry text held in memory before spilling a run, in KiB")
	fs.StringVar(&cfg.Sort.TempDir, "temp-dir", cfg.Sort.TempDir, "Directory for sorted runs")
	fs.StringVar(&cfg.Sort.MissingTimestamps, "missing", cfg.Sort.MissingTimestamps, "Entries without timestamp: skip, first or last")
	fs.BoolVar(&noCompress, "no-compress", false, "Store runs uncompressed")
	bindEntryFlags(fs, &cfg.Entry)
	bindOutputFlags(fs, &output, &cfg.Output)

	if err := parseFlags(fs, args); err != nil {
		return err
	}
	input, err := requiredArg(fs, "input file")
	if err != nil {
		return err
	}
	if noCompress {
		cfg.Sort.Compress = false
	}
	missing, err := core.ParseMissingPolicy(cfg.Sort.MissingTimestamps)
	if err != nil {
		return &UsageError{Err: err}
	}
	if cfg.Sort.MemoryBudgetKB < 1 {
		return usageErrorf("sort: memory budget must be at least 1 KiB, got %d", cfg.Sort.MemoryBudgetKB)
	}

	sorter, err := extsort.New(extsort.Options{
		MemoryBudget: cfg.Sort.MemoryBudgetKB * 1024,
		TempDir:      cfg.Sort.TempDir,
		Compress:     cfg.Sort.Compress,
		Missing:      missing,
	}, logger)
	if err != nil {
		return err
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

	sorted, err := sorter.Sort(lx)
	if err != nil {
		return fmt.Errorf("sorting %s: %w", input, err)
	}
	// Cleanup failures are logged by Close and never fail the command
	defer sorted.Close()
	logLexerStats(logger, lx, "sort")

	out, err := openOutput(output, &cfg.Output, logger)
	if err != nil {
		return err
	}

	for {
		e, err := sorted.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			out.Close()
			return fmt.Errorf("reading sorted runs: %w", err)
		}
		if err := out.Write(core.LabeledEntry{Entry: e}); err != nil {
			out.Close()
			return fmt.Errorf("writing output: %w", err)
		}
	}

	stats := sorted.Stats()
	logger.Debug("msg", "Sort complete",
		"component", "sort",
		"entries", stats.Entries,
		"runs", stats.Runs,
		"untimed", stats.Untimed,
		"skipped_untimed", stats.SkippedUntimed)
	return out.Close()
}

func (c *SortCommand) Description() string {
	return "Sort an arbitrarily large log file by timestamp"
}

func (c *SortCommand) Help() string {
	return `Sort Command - Sort an arbitrary-sized log file

Usage:
  logtools sort [options] <input-file>

Entries are buffered up to the memory budget, spilled to sorted run files in
the temp directory and merged back. The sort is stable: entries with equal
timestamps keep their input order. Run files are removed on exit.

Options:
      --memory-budget-kb <n>   Entry text held in memory before spilling a
                               run, in KiB (default: 1024, config: sort.memory_budget_kb)
      --temp-dir <dir>         Directory for sorted runs (default: OS temp dir)
      --missing <policy>       Entries without timestamp: skip, first or last
                               (default: skip, config: sort.missing_timestamps)
      --no-compress            Store runs uncompressed

` + entryFlagsHelp + `
` + outputFlagsHelp + `
Examples:
  logtools sort -o sorted.log huge.log
  logtools sort --memory-budget-kb 65536 --missing last huge.log > sorted.log
`
}
