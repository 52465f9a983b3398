// FILE: logtools/src/internal/format/json.go
package format

import (
	"encoding/json"
	"fmt"
	"time"

	"logtools/src/internal/config"
	"logtools/src/internal/core"

	"github.com/lixenwraith/log"
)

// JSONFormatter writes one JSON object per entry.
type JSONFormatter struct {
	config *config.JSONFormatterOptions
	logger *log.Logger
}

// NewJSONFormatter creates a JSON formatter. Empty field names fall back to
// time, source and text.
func NewJSONFormatter(opts *config.JSONFormatterOptions, logger *log.Logger) (*JSONFormatter, error) {
	cfg := config.JSONFormatterOptions{}
	if opts != nil {
		cfg = *opts
	}
	if cfg.TimestampField == "" {
		cfg.TimestampField = "time"
	}
	if cfg.SourceField == "" {
		cfg.SourceField = "source"
	}
	if cfg.TextField == "" {
		cfg.TextField = "text"
	}
	if cfg.TimestampField == cfg.SourceField || cfg.TimestampField == cfg.TextField || cfg.SourceField == cfg.TextField {
		return nil, fmt.Errorf("json field names must be distinct")
	}

	return &JSONFormatter{
		config: &cfg,
		logger: logger,
	}, nil
}

func (f *JSONFormatter) object(entry core.LabeledEntry) map[string]any {
	output := make(map[string]any, 3)
	if entry.HasTime() {
		output[f.config.TimestampField] = entry.Time.Format(time.RFC3339Nano)
	}
	if entry.Label != "" {
		output[f.config.SourceField] = entry.Label
	}
	output[f.config.TextField] = entry.Text
	return output
}

// Format transforms a single entry into a JSON line.
func (f *JSONFormatter) Format(entry core.LabeledEntry) ([]byte, error) {
	var result []byte
	var err error
	if f.config.Pretty {
		result, err = json.MarshalIndent(f.object(entry), "", "  ")
	} else {
		result, err = json.Marshal(f.object(entry))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return append(result, '\n'), nil
}

// Name returns the formatter's type name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// FormatBatch renders entries as a single JSON array.
func (f *JSONFormatter) FormatBatch(entries []core.LabeledEntry) ([]byte, error) {
	batch := make([]map[string]any, 0, len(entries))
	for _, entry := range entries {
		batch = append(batch, f.object(entry))
	}

	var result []byte
	var err error
	if f.config.Pretty {
		result, err = json.MarshalIndent(batch, "", "  ")
	} else {
		result, err = json.Marshal(batch)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON batch: %w", err)
	}
	return result, nil
}
