// FILE: logtools/src/internal/format/raw.go
package format

import (
	"logtools/src/internal/core"

	"github.com/lixenwraith/log"
)

// RawFormatter writes the entry text, prefixed with "<label>: " when the
// entry is labeled.
type RawFormatter struct {
	logger *log.Logger
}

// NewRawFormatter creates a raw formatter.
func NewRawFormatter(logger *log.Logger) (*RawFormatter, error) {
	return &RawFormatter{
		logger: logger,
	}, nil
}

// Format returns the entry text with a trailing newline.
func (f *RawFormatter) Format(entry core.LabeledEntry) ([]byte, error) {
	out := make([]byte, 0, len(entry.Label)+len(entry.Text)+3)
	if entry.Label != "" {
		out = append(out, entry.Label...)
		out = append(out, ':', ' ')
	}
	out = append(out, entry.Text...)
	return append(out, '\n'), nil
}

// Name returns the formatter name.
func (f *RawFormatter) Name() string {
	return "raw"
}
