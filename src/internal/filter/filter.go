// FILE: logtools/src/internal/filter/filter.go
package filter

import (
	"fmt"
	"regexp"
	"strings"
	"sync/atomic"

	"logtools/src/internal/config"
	"logtools/src/internal/core"

	"github.com/lixenwraith/log"
)

// Kind selects how a Matcher compares text.
type Kind int

const (
	// Verbatim matches a plain substring.
	Verbatim Kind = iota
	// Regex matches a regular expression anywhere in the text.
	Regex
)

func (k Kind) String() string {
	switch k {
	case Verbatim:
		return "verbatim"
	case Regex:
		return "regex"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Matcher reports whether text matches. New kinds extend the switch in Match.
type Matcher struct {
	kind  Kind
	text  string
	regex *regexp.Regexp
}

// NewVerbatim creates a substring matcher.
func NewVerbatim(s string) Matcher {
	return Matcher{kind: Verbatim, text: s}
}

// NewRegex compiles a regular expression matcher.
func NewRegex(expr string) (Matcher, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Matcher{}, fmt.Errorf("%w: invalid regex pattern '%s': %v", core.ErrPatternCompile, expr, err)
	}
	return Matcher{kind: Regex, text: expr, regex: re}, nil
}

// Match reports whether text satisfies the matcher.
func (m Matcher) Match(text string) bool {
	switch m.kind {
	case Verbatim:
		return strings.Contains(text, m.text)
	case Regex:
		return m.regex.MatchString(text)
	default:
		return false
	}
}

// Kind returns the matcher kind.
func (m Matcher) Kind() Kind {
	return m.kind
}

func (m Matcher) String() string {
	return m.kind.String() + ":" + m.text
}

// Filter keeps or drops entries depending on whether their text matches
// its matchers.
type Filter struct {
	config   config.FilterConfig
	matchers []Matcher
	logger   *log.Logger

	// Statistics
	totalProcessed atomic.Uint64
	totalMatched   atomic.Uint64
	totalDropped   atomic.Uint64
}

// NewFilter creates a filter from configuration.
func NewFilter(cfg config.FilterConfig, logger *log.Logger) (*Filter, error) {
	if cfg.Type == "" {
		cfg.Type = config.FilterTypeInclude
	}
	if cfg.Logic == "" {
		cfg.Logic = config.FilterLogicOr
	}

	f := &Filter{
		config:   cfg,
		matchers: make([]Matcher, 0, len(cfg.Verbatims)+len(cfg.Patterns)),
		logger:   logger,
	}

	for _, s := range cfg.Verbatims {
		f.matchers = append(f.matchers, NewVerbatim(s))
	}
	for i, pattern := range cfg.Patterns {
		m, err := NewRegex(pattern)
		if err != nil {
			return nil, fmt.Errorf("pattern[%d]: %w", i, err)
		}
		f.matchers = append(f.matchers, m)
	}

	logger.Debug("msg", "Filter created",
		"component", "filter",
		"type", cfg.Type,
		"logic", cfg.Logic,
		"matcher_count", len(f.matchers))

	return f, nil
}

// Apply reports whether the entry passes the filter. A filter without
// matchers passes everything.
func (f *Filter) Apply(entry core.Entry) bool {
	f.totalProcessed.Add(1)

	if len(f.matchers) == 0 {
		return true
	}

	matched := f.matches(entry.Text)
	if matched {
		f.totalMatched.Add(1)
	}

	shouldPass := false
	switch f.config.Type {
	case config.FilterTypeInclude:
		shouldPass = matched
	case config.FilterTypeExclude:
		shouldPass = !matched
	}

	if !shouldPass {
		f.totalDropped.Add(1)
	}

	return shouldPass
}

// matches checks text against the matchers according to the logic.
func (f *Filter) matches(text string) bool {
	switch f.config.Logic {
	case config.FilterLogicOr:
		for _, m := range f.matchers {
			if m.Match(text) {
				return true
			}
		}
		return false

	case config.FilterLogicAnd:
		for _, m := range f.matchers {
			if !m.Match(text) {
				return false
			}
		}
		return true

	default:
		f.logger.Warn("msg", "Unknown filter logic",
			"component", "filter",
			"logic", f.config.Logic)
		return false
	}
}

// GetStats returns filter statistics.
func (f *Filter) GetStats() map[string]any {
	return map[string]any{
		"type":            f.config.Type,
		"logic":           f.config.Logic,
		"matcher_count":   len(f.matchers),
		"total_processed": f.totalProcessed.Load(),
		"total_matched":   f.totalMatched.Load(),
		"total_dropped":   f.totalDropped.Load(),
	}
}
