package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	s, err := NewLocalStorage(Config{
		BasePath: t.TempDir(),
		BaseURL:  "/api/v1/files",
	})
	require.NoError(t, err)
	return s
}

func TestLocalStorage_SaveGetDelete(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	err := s.Save(ctx, "portfolio/test.txt", strings.NewReader("hello"), "text/plain")
	require.NoError(t, err)

	exists, err := s.Exists(ctx, "portfolio/test.txt")
	require.NoError(t, err)
	assert.True(t, exists)

	size, err := s.GetSize(ctx, "portfolio/test.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)

	reader, err := s.Get(ctx, "portfolio/test.txt")
	require.NoError(t, err)
	content, err := io.ReadAll(reader)
	reader.Close()
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))

	require.NoError(t, s.Delete(ctx, "portfolio/test.txt"))

	exists, err = s.Exists(ctx, "portfolio/test.txt")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalStorage_DeleteMissingIsNoop(t *testing.T) {
	s := newTestStorage(t)

	assert.NoError(t, s.Delete(context.Background(), "never/existed.bin"))
}

func TestLocalStorage_GetURL(t *testing.T) {
	s := newTestStorage(t)

	url, err := s.GetURL(context.Background(), "abc-123")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/files/abc-123", url)

	url, err = s.GetURL(context.Background(), "/abc-123")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/files/abc-123", url)
}
