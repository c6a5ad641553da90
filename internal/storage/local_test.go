package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalUploaderWritesFile(t *testing.T) {
	dir := t.TempDir()
	uploader, err := NewLocalUploader(dir, "/uploads/")
	require.NoError(t, err)

	url, err := uploader.Upload(context.Background(), "pitch.png", "image/png", strings.NewReader("fake image bytes"))
	require.NoError(t, err)
	assert.Regexp(t, `^/uploads/\d+-pitch\.png$`, url)

	data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))
}

func TestLocalUploaderStripsPathComponents(t *testing.T) {
	dir := t.TempDir()
	uploader, err := NewLocalUploader(dir, "/uploads")
	require.NoError(t, err)

	// 客户端提交的路径片段不得逃出存储目录
	url, err := uploader.Upload(context.Background(), "../../etc/passwd", "text/plain", strings.NewReader("x"))
	require.NoError(t, err)
	assert.NotContains(t, url, "..")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), "-passwd"))
}

func TestLocalUploaderCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	_, err := NewLocalUploader(dir, "/uploads")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
