// FILE: logtools/src/cmd/logtools/commands/merge.go
package commands

import (
	"errors"
	"fmt"
	"io"

	"logtools/src/internal/config"
	"logtools/src/internal/merge"
	"logtools/src/internal/source"

	"github.com/spf13/pflag"
)

// MergeCommand merges the log files of a directory chronologically.
type MergeCommand struct {
	env *Env
}

func NewMergeCommand(env *Env) *MergeCommand {
	return &MergeCommand{env: env}
}

func (c *MergeCommand) Execute(args []string) error {
	cfg := *c.env.Config
	logger := c.env.Logger

	var (
		truncate bool
		noSource bool
		output   string
	)

	fs := pflag.NewFlagSet("merge", pflag.ContinueOnError)
	fs.StringVarP(&cfg.Merge.IncludeGlob, "include-glob", "i", cfg.Merge.IncludeGlob, "Only merge files matching this glob")
	fs.StringVarP(&cfg.Merge.ExcludeGlob, "exclude-glob", "x", cfg.Merge.ExcludeGlob, "Skip files matching this glob")
	fs.BoolVarP(&truncate, "truncate-last-dir", "S", false, "Label entries with parent directory and file name")
	fs.BoolVarP(&noSource, "no-entry-source", "s", false, "Don't label entries with their source")
	bindEntryFlags(fs, &cfg.Entry)
	bindOutputFlags(fs, &output, &cfg.Output)

	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if truncate && noSource {
		return usageErrorf("merge: --truncate-last-dir and --no-entry-source are mutually exclusive")
	}
	switch {
	case truncate:
		cfg.Merge.LabelMode = config.LabelTruncate
	case noSource:
		cfg.Merge.LabelMode = config.LabelNone
	}
	dir, err := requiredArg(fs, "directory")
	if err != nil {
		return err
	}

	re, parser, err := compileEntry(cfg.Entry, false, true)
	if err != nil {
		return err
	}

	files, err := source.Scan(dir, source.ScanOptions{
		Include:   cfg.Merge.IncludeGlob,
		Exclude:   cfg.Merge.ExcludeGlob,
		LabelMode: cfg.Merge.LabelMode,
	}, logger)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", dir, err)
	}

	sources := make([]merge.Source, 0, len(files))
	for _, f := range files {
		lx, err := openEntries(f.Path, re, parser, logger)
		if source.IsDescriptorLimit(err) {
			for _, opened := range sources {
				opened.Stream.Close()
			}
			return fmt.Errorf("merging %d files needs one open file each, the limit was reached after %d (raise it with 'ulimit -n' or narrow the globs): %w",
				len(files), len(sources), err)
		}
		if err != nil {
			logger.Warn("msg", "Skipping unreadable file",
				"component", "merge",
				"path", f.Path,
				"error", err)
			continue
		}
		sources = append(sources, merge.Source{Stream: lx, Label: f.Label, Name: f.Path})
	}
	logger.Debug("msg", "Merging files",
		"component", "merge",
		"directory", dir,
		"matched", len(files),
		"opened", len(sources))

	merger := merge.New(sources, logger)
	defer merger.Close()

	out, err := openOutput(output, &cfg.Output, logger)
	if err != nil {
		return err
	}

	for {
		e, err := merger.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			out.Close()
			return err
		}
		if err := out.Write(e); err != nil {
			out.Close()
			return fmt.Errorf("writing output: %w", err)
		}
	}

	stats := merger.Stats()
	logger.Debug("msg", "Merge complete",
		"component", "merge",
		"emitted", stats.Emitted,
		"skipped_untimed", stats.SkippedUntimed,
		"failed_sources", stats.FailedSources)
	return out.Close()
}

func (c *MergeCommand) Description() string {
	return "Merge a directory of logs in chronological order"
}

func (c *MergeCommand) Help() string {
	return `Merge Command - Merge log files keeping chronological order of the entries

Usage:
  logtools merge [options] <directory>

Walks directory recursively (the directory itself excluded) in lexical order
and merges every matching file. Globs match the path relative to directory
or the file's base name. Entries with equal timestamps keep the order of the
files they come from. Entries without a timestamp are skipped.

Every matching file stays open for the whole merge. When the open file limit
(ulimit -n) is reached the merge fails rather than leaving files out.
Unreadable files are skipped with a warning.

Each entry is written as '<source>: <text>' unless -s is given.

Options:
  -i, --include-glob <glob>    Only merge files matching this glob
                               (default: *.{log,log.[0-9]*}, config: merge.include_glob)
  -x, --exclude-glob <glob>    Skip files matching this glob (config: merge.exclude_glob)
  -S, --truncate-last-dir      Label entries with parent directory and file name
  -s, --no-entry-source        Don't label entries with their source

` + entryFlagsHelp + `
` + outputFlagsHelp + `
Examples:
  logtools merge -S /var/log/app
  logtools merge -x 'debug*' -o merged.log logs/
`
}
