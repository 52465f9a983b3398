// FILE: logtools/src/internal/config/config.go
package config

import (
	"fmt"
	"time"

	"logtools/src/internal/core"
)

// Config is the complete logtools configuration. Every command reads the
// sections it needs; command flags override the loaded values.
type Config struct {
	Logging *LogConfig   `toml:"logging"`
	Entry   EntryConfig  `toml:"entry"`
	Merge   MergeConfig  `toml:"merge"`
	Sort    SortConfig   `toml:"sort"`
	Output  OutputConfig `toml:"output"`
	Grep    GrepConfig   `toml:"grep"`
	Plot    PlotConfig   `toml:"plot"`
}

// EntryConfig describes how raw lines are segmented and timestamped.
type EntryConfig struct {
	// Regex matching the first line of an entry, anchored at line start
	Pattern string `toml:"pattern"`

	// strftime-style format of the `timestamp` capture
	TimestampFormat string `toml:"timestamp_format"`

	// IANA zone attached to timestamps without an offset
	Timezone string `toml:"timezone"`
}

// Location resolves the configured timezone.
func (e EntryConfig) Location() (*time.Location, error) {
	if e.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(e.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone '%s': %w", e.Timezone, err)
	}
	return loc, nil
}

// Source label modes
const (
	LabelFull     = "full"
	LabelTruncate = "truncate"
	LabelNone     = "none"
)

type MergeConfig struct {
	// Files whose relative path or base name match are merged
	IncludeGlob string `toml:"include_glob"`

	// Files matching this glob are skipped (empty disables)
	ExcludeGlob string `toml:"exclude_glob"`

	// "full", "truncate" or "none"
	LabelMode string `toml:"label_mode"`
}

type SortConfig struct {
	MemoryBudgetKB int64 `toml:"memory_budget_kb"`

	// Directory for spilled runs, empty for the OS default
	TempDir string `toml:"temp_dir"`

	// zstd-compress spilled runs
	Compress bool `toml:"compress"`

	// "skip", "first" or "last"
	MissingTimestamps string `toml:"missing_timestamps"`
}

type OutputConfig struct {
	// "raw", "json" or "text"
	Format string `toml:"format"`

	JSON *JSONFormatterOptions `toml:"json"`
	Text *TextFormatterOptions `toml:"text"`
	HTTP *HTTPOutputOptions    `toml:"http"`
}

type JSONFormatterOptions struct {
	Pretty         bool   `toml:"pretty"`
	TimestampField string `toml:"timestamp_field"`
	SourceField    string `toml:"source_field"`
	TextField      string `toml:"text_field"`
}

type TextFormatterOptions struct {
	Template        string `toml:"template"`
	TimestampFormat string `toml:"timestamp_format"`
}

// HTTPOutputOptions applies when the output target is an http(s) URL.
type HTTPOutputOptions struct {
	BatchSize      int64 `toml:"batch_size"`
	TimeoutSeconds int64 `toml:"timeout_seconds"`
	MaxRetries     int64 `toml:"max_retries"`
	RetryDelayMS   int64 `toml:"retry_delay_ms"`
	InsecureSkip   bool  `toml:"insecure_skip_verify"`

	// Upper bound on POST requests per second, retries included. 0 is unlimited.
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

type GrepConfig struct {
	// Filters always applied by grep, before command-line matchers
	Filters []FilterConfig `toml:"filters"`
}

type PlotConfig struct {
	Width  int64  `toml:"width"`
	Height int64  `toml:"height"`
	Colour string `toml:"colour"`
}

func defaults() *Config {
	return &Config{
		Logging: DefaultLogConfig(),
		Entry: EntryConfig{
			Pattern:         core.DefaultEntryPattern,
			TimestampFormat: core.DefaultTimestampFormat,
			Timezone:        core.DefaultTimezone,
		},
		Merge: MergeConfig{
			IncludeGlob: core.DefaultIncludeGlob,
			LabelMode:   LabelFull,
		},
		Sort: SortConfig{
			MemoryBudgetKB:    core.DefaultMemoryBudgetKB,
			Compress:          true,
			MissingTimestamps: string(core.MissingSkip),
		},
		Output: OutputConfig{
			Format: "raw",
			JSON: &JSONFormatterOptions{
				TimestampField: "time",
				SourceField:    "source",
				TextField:      "text",
			},
			Text: &TextFormatterOptions{
				Template:        "{{with FmtTime .Timestamp}}[{{.}}] {{end}}{{if .Source}}{{.Source}}: {{end}}{{.Text}}",
				TimestampFormat: time.RFC3339Nano,
			},
			HTTP: &HTTPOutputOptions{
				BatchSize:      100,
				TimeoutSeconds: 30,
				MaxRetries:     3,
				RetryDelayMS:   1000,
			},
		},
		Plot: PlotConfig{
			Width:  1024,
			Height: 768,
			Colour: "red",
		},
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	return defaults()
}
