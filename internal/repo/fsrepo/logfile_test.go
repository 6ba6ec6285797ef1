package fsrepo_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Egor213/LogLens/internal/repo/fsrepo"
	"github.com/Egor213/LogLens/internal/repo/repoerrs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "debug.log")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLogFile_SizeAndRead(t *testing.T) {
	ctx := context.Background()
	content := "[29-Jan-2022 16:02:00 UTC] PHP Notice:  x\n"
	repo := fsrepo.NewLogFile(writeLog(t, content))

	size, err := repo.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), size)

	data, err := repo.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestLogFile_Missing(t *testing.T) {
	ctx := context.Background()
	repo := fsrepo.NewLogFile(filepath.Join(t.TempDir(), "missing.log"))

	_, err := repo.Size(ctx)
	assert.ErrorIs(t, err, repoerrs.ErrNotFound)

	_, err = repo.Read(ctx)
	assert.ErrorIs(t, err, repoerrs.ErrNotFound)

	err = repo.Truncate(ctx)
	assert.ErrorIs(t, err, repoerrs.ErrNotFound)
}

func TestLogFile_ReadEmpty(t *testing.T) {
	repo := fsrepo.NewLogFile(writeLog(t, ""))

	_, err := repo.Read(context.Background())
	assert.ErrorIs(t, err, repoerrs.ErrEmpty)
}

func TestLogFile_Truncate(t *testing.T) {
	ctx := context.Background()
	path := writeLog(t, "[t1] something\n")
	repo := fsrepo.NewLogFile(path)

	require.NoError(t, repo.Truncate(ctx))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
	assert.Equal(t, path, repo.Path())
}

func TestLogFile_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	repo := fsrepo.NewLogFile(writeLog(t, "x"))

	_, err := repo.Read(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
