// FILE: logtools/src/cmd/logtools/commands/merge_linux_test.go
//go:build linux

package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"logtools/src/internal/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_OpenFileLimit(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 64; i++ {
		writeFile(t, filepath.Join(dir, fmt.Sprintf("%02d.log", i)), "2024-01-01 10:00:00,000 x\n")
	}

	open, err := os.ReadDir("/proc/self/fd")
	require.NoError(t, err)

	var limit syscall.Rlimit
	require.NoError(t, syscall.Getrlimit(syscall.RLIMIT_NOFILE, &limit))
	lowered := limit
	lowered.Cur = uint64(len(open) + 16)
	require.NoError(t, syscall.Setrlimit(syscall.RLIMIT_NOFILE, &lowered))
	t.Cleanup(func() {
		_ = syscall.Setrlimit(syscall.RLIMIT_NOFILE, &limit)
	})

	router, stdout := newTestRouter(t)
	err = router.Route([]string{"merge", "-s", dir})
	require.Error(t, err)
	assert.True(t, source.IsDescriptorLimit(err))
	assert.False(t, IsUsageError(err))
	assert.Contains(t, err.Error(), "merging 64 files")
	assert.Empty(t, stdout.String(), "no partial merge is written")
}
