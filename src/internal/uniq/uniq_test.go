// FILE: logtools/src/internal/uniq/uniq_test.go
package uniq

import (
	"bytes"
	"errors"
	"regexp"
	"testing"

	"logtools/src/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	_, err := New(regexp.MustCompile(`^(?P<timestamp>\S+) `))
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrPatternCompile))
}

func TestCounter(t *testing.T) {
	c, err := New(regexp.MustCompile(`^(?P<timestamp>\S+) (?P<message>.*)`))
	require.NoError(t, err)

	entries := []string{
		"t1 user 42 logged in",
		"t1 user 7 logged in",
		"t1 user 1000 logged in\ncontinuation 99",
		"t2 disk 90% full",
		"t1 user 5 logged out",
		"t1 user 6 logged out",
	}
	for _, text := range entries {
		require.NoError(t, c.Add(core.Entry{Text: text}))
	}
	assert.Error(t, c.Add(core.Entry{Text: "nospace"}))
	assert.Equal(t, uint64(1), c.Skipped())

	assert.Equal(t, []Count{
		{Key: "t2 disk <num>% full", Count: 1},
		{Key: "t1 user <num> logged out", Count: 2},
		{Key: "t1 user <num> logged in", Count: 3},
	}, c.Results())

	var buf bytes.Buffer
	_, err = c.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t,
		"       1 t2 disk <num>% full\n"+
			"       2 t1 user <num> logged out\n"+
			"       3 t1 user <num> logged in\n",
		buf.String())
}

func TestCounter_TimestampKeptVerbatim(t *testing.T) {
	c, err := New(regexp.MustCompile(`^` + core.DefaultEntryPattern))
	require.NoError(t, err)

	key, err := c.Key(core.Entry{Text: "2020-01-01 00:00:00,000 request 12 took 30ms"})
	require.NoError(t, err)
	assert.Equal(t, "2020-01-01 00:00:00,000 request <num> took <num>ms", key)
}
