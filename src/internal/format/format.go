// FILE: logtools/src/internal/format/format.go
package format

import (
	"fmt"

	"logtools/src/internal/config"
	"logtools/src/internal/core"

	"github.com/lixenwraith/log"
)

// Formatter turns an entry into the bytes written to an output.
type Formatter interface {
	// Format renders one entry, newline terminated.
	Format(entry core.LabeledEntry) ([]byte, error)

	// Name returns the formatter type name
	Name() string
}

// BatchFormatter renders several entries as one payload.
type BatchFormatter interface {
	Formatter
	FormatBatch(entries []core.LabeledEntry) ([]byte, error)
}

// NewFormatter creates a Formatter by name using the output configuration.
// A nil cfg selects the built-in defaults.
func NewFormatter(name string, cfg *config.OutputConfig, logger *log.Logger) (Formatter, error) {
	if cfg == nil {
		cfg = &config.Default().Output
	}
	if name == "" {
		name = "raw"
	}

	switch name {
	case "json":
		return NewJSONFormatter(cfg.JSON, logger)
	case "text":
		return NewTextFormatter(cfg.Text, logger)
	case "raw":
		return NewRawFormatter(logger)
	default:
		return nil, fmt.Errorf("unknown formatter type: %s", name)
	}
}
