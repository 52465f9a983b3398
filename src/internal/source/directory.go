// FILE: logtools/src/internal/source/directory.go
package source

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"logtools/src/internal/core"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/lixenwraith/log"
)

// File is one input found by Scan.
type File struct {
	Path  string
	Label string
}

// ScanOptions selects the files Scan returns.
type ScanOptions struct {
	// Include is required; a file is selected when it matches by relative
	// path or by base name.
	Include string
	// Exclude removes files matched the same way. Empty excludes nothing.
	Exclude string
	// LabelMode is one of config.LabelFull, LabelTruncate or LabelNone.
	LabelMode string
}

// Scan walks root in lexical order and returns the regular files below it.
// Root itself is never returned. Unreadable subtrees are logged and skipped.
func Scan(root string, opts ScanOptions, logger *log.Logger) ([]File, error) {
	if !doublestar.ValidatePattern(opts.Include) {
		return nil, fmt.Errorf("%w: invalid include glob '%s'", core.ErrPatternCompile, opts.Include)
	}
	if opts.Exclude != "" && !doublestar.ValidatePattern(opts.Exclude) {
		return nil, fmt.Errorf("%w: invalid exclude glob '%s'", core.ErrPatternCompile, opts.Exclude)
	}

	var files []File
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return fmt.Errorf("%w: %v", core.ErrIO, err)
			}
			logger.Warn("msg", "Skipping unreadable path",
				"component", "directory_scan",
				"path", path,
				"error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if path == root || !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		name := d.Name()

		if !matches(opts.Include, rel, name) {
			return nil
		}
		if opts.Exclude != "" && matches(opts.Exclude, rel, name) {
			logger.Debug("msg", "Excluded file",
				"component", "directory_scan",
				"path", path)
			return nil
		}

		files = append(files, File{Path: path, Label: Label(path, opts.LabelMode)})
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("msg", "Directory scanned",
		"component", "directory_scan",
		"root", root,
		"include", opts.Include,
		"exclude", opts.Exclude,
		"files", len(files))
	return files, nil
}

func matches(pattern, rel, name string) bool {
	if ok, _ := doublestar.Match(pattern, rel); ok {
		return true
	}
	ok, _ := doublestar.Match(pattern, name)
	return ok
}
