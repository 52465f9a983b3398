// FILE: logtools/src/internal/format/raw_test.go
package format

import (
	"testing"
	"time"

	"logtools/src/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawFormatter_Format(t *testing.T) {
	formatter, err := NewRawFormatter(newTestLogger())
	require.NoError(t, err)

	entry := core.Entry{Time: time.Now(), Text: "2020-01-01 00:00:00,000 first\n  second"}

	t.Run("Unlabeled", func(t *testing.T) {
		output, err := formatter.Format(core.LabeledEntry{Entry: entry})
		require.NoError(t, err)
		assert.Equal(t, "2020-01-01 00:00:00,000 first\n  second\n", string(output))
	})

	t.Run("Labeled", func(t *testing.T) {
		output, err := formatter.Format(core.LabeledEntry{Entry: entry, Label: "app/server.log"})
		require.NoError(t, err)
		assert.Equal(t, "app/server.log: 2020-01-01 00:00:00,000 first\n  second\n", string(output))
	})
}
