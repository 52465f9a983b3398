// FILE: logtools/src/internal/format/text.go
package format

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"logtools/src/internal/config"
	"logtools/src/internal/core"

	"github.com/lixenwraith/log"
)

// TextFormatter renders entries through a text/template.
type TextFormatter struct {
	config   *config.TextFormatterOptions
	template *template.Template
	logger   *log.Logger
}

// NewTextFormatter creates a template formatter. The template sees
// .Timestamp, .Source, .Text and .FirstLine.
func NewTextFormatter(opts *config.TextFormatterOptions, logger *log.Logger) (*TextFormatter, error) {
	cfg := *config.Default().Output.Text
	if opts != nil {
		if opts.Template != "" {
			cfg.Template = opts.Template
		}
		if opts.TimestampFormat != "" {
			cfg.TimestampFormat = opts.TimestampFormat
		}
	}

	f := &TextFormatter{
		config: &cfg,
		logger: logger,
	}

	funcMap := template.FuncMap{
		"FmtTime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format(f.config.TimestampFormat)
		},
		"ToUpper":   strings.ToUpper,
		"ToLower":   strings.ToLower,
		"TrimSpace": strings.TrimSpace,
	}

	tmpl, err := template.New("entry").Funcs(funcMap).Parse(f.config.Template)
	if err != nil {
		return nil, fmt.Errorf("invalid template: %w", err)
	}

	f.template = tmpl
	return f, nil
}

// Format renders the entry using the template.
func (f *TextFormatter) Format(entry core.LabeledEntry) ([]byte, error) {
	data := map[string]any{
		"Timestamp": entry.Time,
		"Source":    entry.Label,
		"Text":      entry.Text,
		"FirstLine": entry.FirstLine(),
	}

	var buf bytes.Buffer
	if err := f.template.Execute(&buf, data); err != nil {
		f.logger.Debug("msg", "Template execution failed, using fallback",
			"component", "text_formatter",
			"error", err)

		raw, _ := (&RawFormatter{}).Format(entry)
		return raw, nil
	}

	result := buf.Bytes()
	if len(result) == 0 || result[len(result)-1] != '\n' {
		result = append(result, '\n')
	}

	return result, nil
}

// Name returns the formatter name.
func (f *TextFormatter) Name() string {
	return "text"
}
