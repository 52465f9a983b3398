// FILE: logtools/src/internal/filter/chain_test.go
package filter

import (
	"errors"
	"io"
	"testing"

	"logtools/src/internal/config"
	"logtools/src/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChain(t *testing.T) {
	logger := newTestLogger()

	t.Run("Success", func(t *testing.T) {
		configs := []config.FilterConfig{
			{Type: config.FilterTypeInclude, Patterns: []string{"apple"}},
			{Type: config.FilterTypeExclude, Verbatims: []string{"banana"}},
		}
		chain, err := NewChain(configs, logger)
		assert.NoError(t, err)
		assert.NotNil(t, chain)
		assert.Equal(t, 2, chain.Len())
	})

	t.Run("ErrorInvalidRegexInChain", func(t *testing.T) {
		configs := []config.FilterConfig{
			{Patterns: []string{"apple"}},
			{Patterns: []string{"["}},
		}
		chain, err := NewChain(configs, logger)
		assert.Error(t, err)
		assert.Nil(t, chain)
		assert.Contains(t, err.Error(), "filter[1]")
	})
}

func TestChain_Apply(t *testing.T) {
	logger := newTestLogger()
	entry := core.Entry{Text: "an apple a day"}

	t.Run("EmptyChain", func(t *testing.T) {
		chain, err := NewChain([]config.FilterConfig{}, logger)
		assert.NoError(t, err)
		assert.True(t, chain.Apply(entry))
	})

	t.Run("AllFiltersPass", func(t *testing.T) {
		configs := []config.FilterConfig{
			{Type: config.FilterTypeInclude, Patterns: []string{"apple"}},
			{Type: config.FilterTypeInclude, Verbatims: []string{"day"}},
			{Type: config.FilterTypeExclude, Patterns: []string{"banana"}},
		}
		chain, err := NewChain(configs, logger)
		assert.NoError(t, err)
		assert.True(t, chain.Apply(entry))
	})

	t.Run("OneFilterFails", func(t *testing.T) {
		configs := []config.FilterConfig{
			{Type: config.FilterTypeInclude, Patterns: []string{"apple"}},
			{Type: config.FilterTypeExclude, Verbatims: []string{"day"}},
			{Type: config.FilterTypeInclude, Patterns: []string{"a"}},
		}
		chain, err := NewChain(configs, logger)
		assert.NoError(t, err)
		assert.False(t, chain.Apply(entry))
	})
}

func TestChain_GrepScenario(t *testing.T) {
	chain, err := NewChain([]config.FilterConfig{
		{Type: config.FilterTypeInclude, Verbatims: []string{"foo"}},
		{Type: config.FilterTypeExclude, Patterns: []string{"baz"}},
	}, newTestLogger())
	require.NoError(t, err)

	var out []string
	for _, text := range []string{"foo bar", "foo baz", "qux"} {
		if chain.Apply(core.Entry{Text: text}) {
			out = append(out, text)
		}
	}
	assert.Equal(t, []string{"foo bar"}, out)

	stats := chain.GetStats()
	assert.Equal(t, uint64(3), stats["total_processed"])
	assert.Equal(t, uint64(1), stats["total_passed"])
}

type sliceStream struct {
	entries []core.Entry
	errAt   int
	closed  bool
}

func (s *sliceStream) Next() (core.Entry, error) {
	if s.errAt == 0 {
		s.errAt = -1
		return core.Entry{}, errors.New("read failed")
	}
	if len(s.entries) == 0 {
		return core.Entry{}, io.EOF
	}
	e := s.entries[0]
	s.entries = s.entries[1:]
	s.errAt--
	return e, nil
}

func (s *sliceStream) Close() error {
	s.closed = true
	return nil
}

func TestChain_Wrap(t *testing.T) {
	chain, err := NewChain([]config.FilterConfig{
		{Type: config.FilterTypeInclude, Verbatims: []string{"foo"}},
		{Type: config.FilterTypeExclude, Patterns: []string{"baz"}},
	}, newTestLogger())
	require.NoError(t, err)

	in := &sliceStream{
		entries: []core.Entry{{Text: "qux"}, {Text: "foo baz"}, {Text: "foo bar"}, {Text: "foo"}},
		errAt:   2,
	}
	stream := chain.Wrap(in)

	e, err := stream.Next()
	require.Error(t, err, "read errors reach the caller")
	assert.NotErrorIs(t, err, io.EOF)

	e, err = stream.Next()
	require.NoError(t, err)
	assert.Equal(t, "foo bar", e.Text)

	e, err = stream.Next()
	require.NoError(t, err)
	assert.Equal(t, "foo", e.Text)

	_, err = stream.Next()
	assert.ErrorIs(t, err, io.EOF)

	require.NoError(t, stream.Close())
	assert.True(t, in.closed)

	stats := chain.GetStats()
	filters := stats["filters"].([]map[string]any)
	assert.Equal(t, uint64(1), filters[0]["rejected"])
	assert.Equal(t, uint64(1), filters[1]["rejected"])
	assert.Equal(t, uint64(2), stats["total_passed"])
}
