// FILE: logtools/src/internal/config/validation.go
package config

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"

	"logtools/src/internal/core"
	"logtools/src/internal/timefmt"

	"github.com/bmatcuk/doublestar/v4"
	lconfig "github.com/lixenwraith/config"
)

// Validate checks every section. Errors for patterns and formats wrap
// core.ErrPatternCompile.
func (c *Config) Validate() error {
	return validateConfig(c)
}

func validateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	if err := validateLogConfig(cfg.Logging); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}
	if err := validateEntry(&cfg.Entry); err != nil {
		return fmt.Errorf("entry config: %w", err)
	}
	if err := validateMerge(&cfg.Merge); err != nil {
		return fmt.Errorf("merge config: %w", err)
	}
	if err := validateSort(&cfg.Sort); err != nil {
		return fmt.Errorf("sort config: %w", err)
	}
	if err := validateOutput(&cfg.Output); err != nil {
		return fmt.Errorf("output config: %w", err)
	}
	for i := range cfg.Grep.Filters {
		if err := validateFilter(i, &cfg.Grep.Filters[i]); err != nil {
			return fmt.Errorf("grep config: %w", err)
		}
	}
	if err := validatePlot(&cfg.Plot); err != nil {
		return fmt.Errorf("plot config: %w", err)
	}

	return nil
}

func validateEntry(e *EntryConfig) error {
	if err := lconfig.NonEmpty(e.Pattern); err != nil {
		return fmt.Errorf("%w: pattern must not be empty", core.ErrPatternCompile)
	}
	if _, err := regexp.Compile(e.Pattern); err != nil {
		return fmt.Errorf("%w: pattern '%s': %v", core.ErrPatternCompile, e.Pattern, err)
	}
	if _, err := timefmt.Compile(e.TimestampFormat); err != nil {
		return err
	}
	if _, err := e.Location(); err != nil {
		return err
	}
	return nil
}

func validateMerge(m *MergeConfig) error {
	if err := lconfig.NonEmpty(m.IncludeGlob); err != nil {
		return fmt.Errorf("%w: include_glob must not be empty", core.ErrPatternCompile)
	}
	if !doublestar.ValidatePattern(m.IncludeGlob) {
		return fmt.Errorf("%w: include_glob '%s'", core.ErrPatternCompile, m.IncludeGlob)
	}
	if m.ExcludeGlob != "" && !doublestar.ValidatePattern(m.ExcludeGlob) {
		return fmt.Errorf("%w: exclude_glob '%s'", core.ErrPatternCompile, m.ExcludeGlob)
	}

	switch m.LabelMode {
	case LabelFull, LabelTruncate, LabelNone:
	default:
		return fmt.Errorf("invalid label_mode '%s' (valid: full, truncate, none)", m.LabelMode)
	}
	return nil
}

func validateSort(s *SortConfig) error {
	if s.MemoryBudgetKB < 1 {
		return fmt.Errorf("memory_budget_kb must be positive: %d", s.MemoryBudgetKB)
	}
	if _, err := core.ParseMissingPolicy(s.MissingTimestamps); err != nil {
		return err
	}
	if s.TempDir != "" {
		info, err := os.Stat(s.TempDir)
		if err != nil {
			return fmt.Errorf("temp_dir '%s': %w", s.TempDir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("temp_dir '%s' is not a directory", s.TempDir)
		}
	}
	return nil
}

func validateOutput(o *OutputConfig) error {
	switch o.Format {
	case "raw", "json", "text", "":
	default:
		return fmt.Errorf("unknown output format '%s' (valid: raw, json, text)", o.Format)
	}

	if o.HTTP != nil {
		if o.HTTP.BatchSize < 1 {
			return fmt.Errorf("http batch_size must be positive: %d", o.HTTP.BatchSize)
		}
		if o.HTTP.TimeoutSeconds < 1 {
			return fmt.Errorf("http timeout_seconds must be positive: %d", o.HTTP.TimeoutSeconds)
		}
		if o.HTTP.MaxRetries < 0 {
			return fmt.Errorf("http max_retries must not be negative: %d", o.HTTP.MaxRetries)
		}
		if o.HTTP.RetryDelayMS < 0 {
			return fmt.Errorf("http retry_delay_ms must not be negative: %d", o.HTTP.RetryDelayMS)
		}
		if o.HTTP.RequestsPerSecond < 0 {
			return fmt.Errorf("http requests_per_second must not be negative: %g", o.HTTP.RequestsPerSecond)
		}
	}
	return nil
}

func validatePlot(p *PlotConfig) error {
	if p.Width < 8 || p.Height < 8 {
		return fmt.Errorf("chart size must be at least 8x8, got %dx%d", p.Width, p.Height)
	}
	switch p.Colour {
	case "red", "blue", "green":
	default:
		return fmt.Errorf("unknown colour '%s' (valid: red, blue, green)", p.Colour)
	}
	return nil
}

// ValidateHTTPTarget checks an http(s) output URL.
func ValidateHTTPTarget(target string) error {
	u, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("invalid output URL '%s': %w", target, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("output URL must use http or https: %s", target)
	}
	if u.Host == "" {
		return fmt.Errorf("output URL has no host: %s", target)
	}
	return nil
}

// IsHTTPTarget reports whether an output target names an HTTP endpoint.
func IsHTTPTarget(target string) bool {
	return strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://")
}
