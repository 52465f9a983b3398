// FILE: logtools/src/internal/filter/filter_test.go
package filter

import (
	"errors"
	"testing"

	"logtools/src/internal/config"
	"logtools/src/internal/core"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *log.Logger {
	return log.NewLogger()
}

func TestMatcher(t *testing.T) {
	t.Run("Verbatim", func(t *testing.T) {
		m := NewVerbatim("a.b")
		assert.Equal(t, Verbatim, m.Kind())
		assert.True(t, m.Match("xa.bx"))
		assert.False(t, m.Match("axb"), "no regex semantics")
	})

	t.Run("Regex", func(t *testing.T) {
		m, err := NewRegex(`a.b`)
		require.NoError(t, err)
		assert.Equal(t, Regex, m.Kind())
		assert.True(t, m.Match("axb"))
		assert.False(t, m.Match("ab"))
	})

	t.Run("InvalidRegex", func(t *testing.T) {
		_, err := NewRegex("[")
		require.Error(t, err)
		assert.True(t, errors.Is(err, core.ErrPatternCompile))
	})

	t.Run("MultiLineText", func(t *testing.T) {
		m := NewVerbatim("Exception")
		assert.True(t, m.Match("2020-01-01 00:00:00,000 failed\njava.lang.Exception: boom"))
	})
}

func TestNewFilter(t *testing.T) {
	logger := newTestLogger()

	t.Run("SuccessWithDefaults", func(t *testing.T) {
		cfg := config.FilterConfig{Patterns: []string{"test"}}
		f, err := NewFilter(cfg, logger)
		assert.NoError(t, err)
		assert.NotNil(t, f)
		assert.Equal(t, config.FilterTypeInclude, f.config.Type)
		assert.Equal(t, config.FilterLogicOr, f.config.Logic)
	})

	t.Run("SuccessWithCustomConfig", func(t *testing.T) {
		cfg := config.FilterConfig{
			Type:      config.FilterTypeExclude,
			Logic:     config.FilterLogicAnd,
			Verbatims: []string{"plain"},
			Patterns:  []string{"test", "pattern"},
		}
		f, err := NewFilter(cfg, logger)
		assert.NoError(t, err)
		assert.NotNil(t, f)
		assert.Equal(t, config.FilterTypeExclude, f.config.Type)
		assert.Equal(t, config.FilterLogicAnd, f.config.Logic)
		assert.Len(t, f.matchers, 3)
	})

	t.Run("ErrorInvalidRegex", func(t *testing.T) {
		cfg := config.FilterConfig{Patterns: []string{"["}}
		f, err := NewFilter(cfg, logger)
		assert.Error(t, err)
		assert.Nil(t, f)
		assert.Contains(t, err.Error(), "invalid regex pattern")
	})
}

func TestFilter_Apply(t *testing.T) {
	logger := newTestLogger()

	tests := []struct {
		name string
		cfg  config.FilterConfig
		text string
		want bool
	}{
		{"NoMatchersPass", config.FilterConfig{}, "anything", true},
		{"IncludeOrMatch", config.FilterConfig{Verbatims: []string{"x", "error"}}, "an error", true},
		{"IncludeOrNoMatch", config.FilterConfig{Patterns: []string{"^warn"}}, "an error", false},
		{"IncludeAndAll", config.FilterConfig{Logic: config.FilterLogicAnd, Verbatims: []string{"an", "error"}}, "an error", true},
		{"IncludeAndPartial", config.FilterConfig{Logic: config.FilterLogicAnd, Verbatims: []string{"an", "warn"}}, "an error", false},
		{"ExcludeMatch", config.FilterConfig{Type: config.FilterTypeExclude, Patterns: []string{"err"}}, "an error", false},
		{"ExcludeNoMatch", config.FilterConfig{Type: config.FilterTypeExclude, Verbatims: []string{"warn"}}, "an error", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f, err := NewFilter(tc.cfg, logger)
			require.NoError(t, err)
			assert.Equal(t, tc.want, f.Apply(core.Entry{Text: tc.text}))
		})
	}
}

func TestFilter_GetStats(t *testing.T) {
	f, err := NewFilter(config.FilterConfig{Type: config.FilterTypeExclude, Verbatims: []string{"drop"}}, newTestLogger())
	require.NoError(t, err)

	f.Apply(core.Entry{Text: "keep me"})
	f.Apply(core.Entry{Text: "drop me"})

	stats := f.GetStats()
	assert.Equal(t, uint64(2), stats["total_processed"])
	assert.Equal(t, uint64(1), stats["total_matched"])
	assert.Equal(t, uint64(1), stats["total_dropped"])
	assert.Equal(t, 1, stats["matcher_count"])
}
