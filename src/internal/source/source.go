// FILE: logtools/src/internal/source/source.go
package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"logtools/src/internal/config"
	"logtools/src/internal/core"
)

// StdinName is the display name of standard input.
const StdinName = "<stdin>"

// Open returns a reader for path. "" and "-" select standard input, which is
// never closed by the returned reader.
func Open(path string) (io.ReadCloser, string, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), StdinName, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, path, fmt.Errorf("%w: %w", core.ErrIO, err)
	}
	return f, path, nil
}

// IsDescriptorLimit reports whether err was caused by the process or the
// system running out of file descriptors.
func IsDescriptorLimit(err error) bool {
	return errors.Is(err, syscall.EMFILE) || errors.Is(err, syscall.ENFILE)
}

// Label returns the source label for path under the given label mode.
func Label(path, mode string) string {
	switch mode {
	case config.LabelNone:
		return ""
	case config.LabelTruncate:
		parent := filepath.Base(filepath.Dir(path))
		switch parent {
		case ".", "..", string(filepath.Separator):
			parent = "."
		}
		return parent + string(filepath.Separator) + filepath.Base(path)
	default:
		return path
	}
}
