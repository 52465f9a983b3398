// FILE: logtools/src/cmd/logtools/commands/commands_test.go
package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"logtools/src/internal/config"
	"logtools/src/internal/core"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*CommandRouter, *bytes.Buffer) {
	t.Helper()
	var stdout bytes.Buffer
	env := &Env{
		Config: config.Default(),
		Logger: log.NewLogger(),
		Stdout: &stdout,
		Stderr: &bytes.Buffer{},
	}
	return NewCommandRouter(env), &stdout
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRouter(t *testing.T) {
	router, stdout := newTestRouter(t)

	t.Run("NoCommand", func(t *testing.T) {
		err := router.Route(nil)
		assert.True(t, IsUsageError(err))
	})

	t.Run("UnknownCommand", func(t *testing.T) {
		err := router.Route([]string{"frobnicate"})
		assert.True(t, IsUsageError(err))
	})

	t.Run("BadFlag", func(t *testing.T) {
		err := router.Route([]string{"grep", "--no-such-flag"})
		assert.True(t, IsUsageError(err))
	})

	t.Run("CommandHelp", func(t *testing.T) {
		stdout.Reset()
		require.NoError(t, router.Route([]string{"merge", "--help"}))
		assert.Contains(t, stdout.String(), "Merge Command")
	})

	t.Run("GeneralHelp", func(t *testing.T) {
		stdout.Reset()
		require.NoError(t, router.Route([]string{"help"}))
		for _, name := range []string{"grep", "merge", "sort", "offset", "uniq", "plot", "config", "version"} {
			assert.Contains(t, stdout.String(), "  "+name)
		}

		stdout.Reset()
		require.NoError(t, router.Route([]string{"help", "sort"}))
		assert.Contains(t, stdout.String(), "Sort Command")

		assert.True(t, IsUsageError(router.Route([]string{"help", "nope"})))
	})

	t.Run("Version", func(t *testing.T) {
		stdout.Reset()
		require.NoError(t, router.Route([]string{"version"}))
		assert.Contains(t, stdout.String(), "logtools dev")
	})
}

const grepInput = "2024-01-01 10:00:00,000 foo bar\n" +
	"2024-01-01 10:00:01,000 foo baz\n" +
	"  continued\n" +
	"2024-01-01 10:00:02,000 qux\n"

func TestGrep(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.log")
	writeFile(t, input, grepInput)

	testCases := []struct {
		name     string
		args     []string
		expected string
	}{
		{
			name:     "IncludeVerbatimExcludeRegex",
			args:     []string{"-f", "foo", "-R", "ba[z]"},
			expected: "2024-01-01 10:00:00,000 foo bar\n",
		},
		{
			name:     "NoMatchersPassEverything",
			args:     nil,
			expected: grepInput,
		},
		{
			name:     "ContinuationLinesMatch",
			args:     []string{"--verbatim-include", "continued"},
			expected: "2024-01-01 10:00:01,000 foo baz\n  continued\n",
		},
		{
			name:     "AnyIncludeMatches",
			args:     []string{"-f", "qux", "-r", `bar$`},
			expected: "2024-01-01 10:00:00,000 foo bar\n2024-01-01 10:00:02,000 qux\n",
		},
		{
			name:     "ExcludeOnly",
			args:     []string{"-F", "foo"},
			expected: "2024-01-01 10:00:02,000 qux\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router, _ := newTestRouter(t)
			out := filepath.Join(t.TempDir(), "out.log")

			args := append([]string{"grep", "-o", out}, tc.args...)
			args = append(args, input)
			require.NoError(t, router.Route(args))
			assert.Equal(t, tc.expected, readFile(t, out))
		})
	}
}

func TestGrepSkipEntrySource(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "merged.log")
	writeFile(t, input, "a.log: 2024-01-01 10:00:00,000 one\n"+
		"  detail\n"+
		"b.log: 2024-01-01 10:00:01,000 two\n")
	out := filepath.Join(dir, "out.log")

	router, _ := newTestRouter(t)
	require.NoError(t, router.Route([]string{"grep", "-L", "-f", "detail", "-o", out, input}))
	assert.Equal(t, "a.log: 2024-01-01 10:00:00,000 one\n  detail\n", readFile(t, out))
}

func TestGrepErrors(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.log")
	writeFile(t, input, grepInput)
	router, _ := newTestRouter(t)

	err := router.Route([]string{"grep", "-r", "(", input})
	assert.ErrorIs(t, err, core.ErrPatternCompile)
	assert.False(t, IsUsageError(err))

	err = router.Route([]string{"grep", filepath.Join(dir, "missing.log")})
	assert.ErrorIs(t, err, core.ErrIO)

	err = router.Route([]string{"grep", input, input})
	assert.True(t, IsUsageError(err))

	err = router.Route([]string{"grep", "--format", "xml", input})
	assert.True(t, IsUsageError(err))
}

func TestMerge(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.log"), "2024-01-01 10:00:00,000 a1\n"+
		"2024-01-01 10:00:02,000 a2\n")
	writeFile(t, filepath.Join(dir, "b.log"), "2024-01-01 10:00:01,000 b1\n"+
		"  b1 detail\n"+
		"2024-01-01 10:00:02,000 b2\n")
	writeFile(t, filepath.Join(dir, "sub", "c.log.1"), "2024-01-01 09:59:59,000 c1\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "2024-01-01 09:00:00,000 ignored\n")

	t.Run("NoSource", func(t *testing.T) {
		router, _ := newTestRouter(t)
		out := filepath.Join(t.TempDir(), "out.log")
		require.NoError(t, router.Route([]string{"merge", "-s", "-o", out, dir}))
		assert.Equal(t, "2024-01-01 09:59:59,000 c1\n"+
			"2024-01-01 10:00:00,000 a1\n"+
			"2024-01-01 10:00:01,000 b1\n  b1 detail\n"+
			"2024-01-01 10:00:02,000 a2\n"+
			"2024-01-01 10:00:02,000 b2\n", readFile(t, out))
	})

	t.Run("TruncatedLabels", func(t *testing.T) {
		router, _ := newTestRouter(t)
		out := filepath.Join(t.TempDir(), "out.log")
		require.NoError(t, router.Route([]string{"merge", "-S", "-x", "c.*", "-o", out, dir}))

		sep := string(filepath.Separator)
		base := filepath.Base(dir)
		assert.Equal(t, base+sep+"a.log: 2024-01-01 10:00:00,000 a1\n"+
			base+sep+"b.log: 2024-01-01 10:00:01,000 b1\n  b1 detail\n"+
			base+sep+"a.log: 2024-01-01 10:00:02,000 a2\n"+
			base+sep+"b.log: 2024-01-01 10:00:02,000 b2\n", readFile(t, out))
	})

	t.Run("FullLabels", func(t *testing.T) {
		router, _ := newTestRouter(t)
		out := filepath.Join(t.TempDir(), "out.log")
		require.NoError(t, router.Route([]string{"merge", "-i", "a.log", "-o", out, dir}))
		assert.Equal(t, filepath.Join(dir, "a.log")+": 2024-01-01 10:00:00,000 a1\n"+
			filepath.Join(dir, "a.log")+": 2024-01-01 10:00:02,000 a2\n", readFile(t, out))
	})

	t.Run("ConflictingLabelFlags", func(t *testing.T) {
		router, _ := newTestRouter(t)
		assert.True(t, IsUsageError(router.Route([]string{"merge", "-S", "-s", dir})))
	})

	t.Run("MissingDirectoryArgument", func(t *testing.T) {
		router, _ := newTestRouter(t)
		assert.True(t, IsUsageError(router.Route([]string{"merge"})))
	})

	t.Run("MissingDirectory", func(t *testing.T) {
		router, _ := newTestRouter(t)
		err := router.Route([]string{"merge", filepath.Join(dir, "absent")})
		assert.ErrorIs(t, err, core.ErrIO)
	})
}

func TestSort(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.log")
	writeFile(t, input, "2024-01-01 10:00:02,000 c\n"+
		"2024-13-45 10:00:00,000 untimed\n"+
		"2024-01-01 10:00:00,000 a\n"+
		"  a detail\n"+
		"2024-01-01 10:00:01,000 b1\n"+
		"2024-01-01 10:00:01,000 b2\n")

	testCases := []struct {
		name     string
		args     []string
		expected string
	}{
		{
			name: "Skip",
			args: []string{"--memory-budget-kb", "1"},
			expected: "2024-01-01 10:00:00,000 a\n  a detail\n" +
				"2024-01-01 10:00:01,000 b1\n" +
				"2024-01-01 10:00:01,000 b2\n" +
				"2024-01-01 10:00:02,000 c\n",
		},
		{
			name: "LastUncompressed",
			args: []string{"--missing", "last", "--no-compress"},
			expected: "2024-01-01 10:00:00,000 a\n  a detail\n" +
				"2024-01-01 10:00:01,000 b1\n" +
				"2024-01-01 10:00:01,000 b2\n" +
				"2024-01-01 10:00:02,000 c\n" +
				"2024-13-45 10:00:00,000 untimed\n",
		},
		{
			name: "First",
			args: []string{"--missing", "first"},
			expected: "2024-13-45 10:00:00,000 untimed\n" +
				"2024-01-01 10:00:00,000 a\n  a detail\n" +
				"2024-01-01 10:00:01,000 b1\n" +
				"2024-01-01 10:00:01,000 b2\n" +
				"2024-01-01 10:00:02,000 c\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router, _ := newTestRouter(t)
			tmp := t.TempDir()
			out := filepath.Join(t.TempDir(), "out.log")

			args := append([]string{"sort", "--temp-dir", tmp, "-o", out}, tc.args...)
			args = append(args, input)
			require.NoError(t, router.Route(args))
			assert.Equal(t, tc.expected, readFile(t, out))

			leftovers, err := os.ReadDir(tmp)
			require.NoError(t, err)
			assert.Empty(t, leftovers, "run files are removed")
		})
	}

	t.Run("BadPolicy", func(t *testing.T) {
		router, _ := newTestRouter(t)
		assert.True(t, IsUsageError(router.Route([]string{"sort", "--missing", "middle", input})))
	})

	t.Run("BadBudget", func(t *testing.T) {
		router, _ := newTestRouter(t)
		assert.True(t, IsUsageError(router.Route([]string{"sort", "--memory-budget-kb", "0", input})))
	})

	t.Run("InputRequired", func(t *testing.T) {
		router, _ := newTestRouter(t)
		assert.True(t, IsUsageError(router.Route([]string{"sort"})))
	})
}

func TestOffset(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.log")
	writeFile(t, input, "2024-01-01 23:30:00,250 late 2024-01-01 23:30:00,250\n"+
		"  detail\n"+
		"2024-13-45 10:00:00,000 broken\n")

	t.Run("Forward", func(t *testing.T) {
		router, _ := newTestRouter(t)
		out := filepath.Join(t.TempDir(), "out.log")
		require.NoError(t, router.Route([]string{"offset", "--offset-hours", "+1", "-o", out, input}))
		assert.Equal(t, "2024-01-02 00:30:00,250 late 2024-01-01 23:30:00,250\n"+
			"  detail\n"+
			"2024-13-45 10:00:00,000 broken\n", readFile(t, out))
	})

	t.Run("RoundTrip", func(t *testing.T) {
		router, _ := newTestRouter(t)
		shifted := filepath.Join(t.TempDir(), "shifted.log")
		back := filepath.Join(t.TempDir(), "back.log")
		require.NoError(t, router.Route([]string{"offset", "--offset-hours", "5", "-o", shifted, input}))
		require.NoError(t, router.Route([]string{"offset", "--offset-hours", "-5", "-o", back, shifted}))
		assert.Equal(t, readFile(t, input), readFile(t, back))
	})

	t.Run("UsageErrors", func(t *testing.T) {
		router, _ := newTestRouter(t)
		assert.True(t, IsUsageError(router.Route([]string{"offset", input})))
		assert.True(t, IsUsageError(router.Route([]string{"offset", "--offset-hours", "1.5", input})))
	})
}

func TestUniq(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.log")
	writeFile(t, input, "2024-01-01 10:00:00,000 request 17 done\n"+
		"2024-01-01 10:00:00,000 request 4242 done\n"+
		"  detail 99\n"+
		"2024-01-01 10:00:01,000 other\n")

	router, _ := newTestRouter(t)
	out := filepath.Join(dir, "counts.txt")
	require.NoError(t, router.Route([]string{"uniq", "-o", out, input}))
	assert.Equal(t, "       1 2024-01-01 10:00:01,000 other\n"+
		"       2 2024-01-01 10:00:00,000 request <num> done\n", readFile(t, out))

	err := router.Route([]string{"uniq", "--entry-pattern", `(?P<timestamp>\S+) `, input})
	assert.ErrorIs(t, err, core.ErrPatternCompile)
}

func TestPlot(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.log")
	writeFile(t, input, "2024-01-01 10:00:00,000 a\n"+
		"2024-01-01 10:00:00,500 b\n"+
		"2024-01-01 10:00:01,000 c\n")

	t.Run("Render", func(t *testing.T) {
		router, stdout := newTestRouter(t)
		chartPath := filepath.Join(t.TempDir(), "rate.svg")
		require.NoError(t, router.Route([]string{"plot", "-o", chartPath, "-w", "403", "-h", "300", "-c", "blue", input}))

		assert.Equal(t, "Chart is 400x296\n"+
			"X: 2024-01-01 10:00:00 UTC to 2024-01-01 10:00:01 UTC\n"+
			"Y: 0 to 2\n", stdout.String())

		info, err := os.Stat(chartPath)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	})

	t.Run("MaxValue", func(t *testing.T) {
		router, stdout := newTestRouter(t)
		chartPath := filepath.Join(t.TempDir(), "rate.png")
		require.NoError(t, router.Route([]string{"plot", "-o", chartPath, "--max-value", "10", input}))
		assert.Contains(t, stdout.String(), "Chart is 1024x768\n")
		assert.Contains(t, stdout.String(), "Y: 0 to 10\n")
	})

	t.Run("UsageErrors", func(t *testing.T) {
		router, _ := newTestRouter(t)
		chartPath := filepath.Join(t.TempDir(), "rate.svg")
		assert.True(t, IsUsageError(router.Route([]string{"plot", input})))
		assert.True(t, IsUsageError(router.Route([]string{"plot", "-o", chartPath, "-c", "purple", input})))
		assert.True(t, IsUsageError(router.Route([]string{"plot", "-o", filepath.Join(t.TempDir(), "rate.gif"), input})))
	})
}

func TestConfigCommand(t *testing.T) {
	router, stdout := newTestRouter(t)
	path := filepath.Join(t.TempDir(), "logtools.toml")

	require.NoError(t, router.Route([]string{"config", "--defaults", path}))
	assert.Contains(t, stdout.String(), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	assert.True(t, IsUsageError(router.Route([]string{"config"})))
}
