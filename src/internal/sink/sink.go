// FILE: logtools/src/internal/sink/sink.go
package sink

import (
	"fmt"
	"os"
	"time"

	"logtools/src/internal/config"
	"logtools/src/internal/core"
	"logtools/src/internal/format"

	"github.com/lixenwraith/log"
)

// Sink is an output destination for entries. Writes are synchronous.
type Sink interface {
	// Write formats and emits one entry
	Write(entry core.LabeledEntry) error

	// Flush pushes buffered output to the destination
	Flush() error

	// Close flushes and releases the destination
	Close() error

	// GetStats returns sink statistics
	GetStats() SinkStats
}

// SinkStats contains statistics about a sink
type SinkStats struct {
	Type           string
	TotalProcessed uint64
	StartTime      time.Time
	LastProcessed  time.Time
	Details        map[string]any
}

// Open selects the destination from target: "" or "-" is standard output,
// an http(s) URL is a remote endpoint, anything else a file path that is
// created or truncated.
func Open(target string, formatter format.Formatter, cfg *config.OutputConfig, logger *log.Logger) (Sink, error) {
	switch {
	case target == "" || target == "-":
		return NewConsoleSink(os.Stdout, formatter, logger), nil
	case config.IsHTTPTarget(target):
		if err := config.ValidateHTTPTarget(target); err != nil {
			return nil, err
		}
		var opts *config.HTTPOutputOptions
		if cfg != nil {
			opts = cfg.HTTP
		}
		return NewHTTPSink(target, opts, formatter, logger)
	default:
		s, err := NewFileSink(target, formatter, logger)
		if err != nil {
			return nil, fmt.Errorf("opening output: %w", err)
		}
		return s, nil
	}
}
