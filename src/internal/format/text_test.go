// FILE: logtools/src/internal/format/text_test.go
package format

import (
	"testing"
	"time"

	"logtools/src/internal/config"
	"logtools/src/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTextFormatter(t *testing.T) {
	t.Run("InvalidTemplate", func(t *testing.T) {
		_, err := NewTextFormatter(&config.TextFormatterOptions{Template: "{{ .Timestamp | InvalidFunc }}"}, newTestLogger())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid template")
	})
}

func TestTextFormatter_Format(t *testing.T) {
	logger := newTestLogger()
	testTime := time.Date(2023, 10, 27, 10, 30, 0, 0, time.UTC)
	entry := core.LabeledEntry{
		Entry: core.Entry{Time: testTime, Text: "rate limit exceeded"},
		Label: "api.log",
	}

	t.Run("DefaultTemplate", func(t *testing.T) {
		formatter, err := NewTextFormatter(nil, logger)
		require.NoError(t, err)

		output, err := formatter.Format(entry)
		require.NoError(t, err)
		assert.Equal(t, "[2023-10-27T10:30:00Z] api.log: rate limit exceeded\n", string(output))
	})

	t.Run("DefaultTemplateWithoutTimeOrLabel", func(t *testing.T) {
		formatter, err := NewTextFormatter(nil, logger)
		require.NoError(t, err)

		output, err := formatter.Format(core.LabeledEntry{Entry: core.Entry{Text: "bare"}})
		require.NoError(t, err)
		assert.Equal(t, "bare\n", string(output))
	})

	t.Run("CustomTemplate", func(t *testing.T) {
		formatter, err := NewTextFormatter(&config.TextFormatterOptions{Template: "{{.Source}}|{{ToUpper .FirstLine}}"}, logger)
		require.NoError(t, err)

		output, err := formatter.Format(entry)
		require.NoError(t, err)
		assert.Equal(t, "api.log|RATE LIMIT EXCEEDED\n", string(output))
	})

	t.Run("CustomTimestampFormat", func(t *testing.T) {
		formatter, err := NewTextFormatter(&config.TextFormatterOptions{TimestampFormat: "2006-01-02"}, logger)
		require.NoError(t, err)

		output, err := formatter.Format(entry)
		require.NoError(t, err)
		assert.Equal(t, "[2023-10-27] api.log: rate limit exceeded\n", string(output))
	})
}
