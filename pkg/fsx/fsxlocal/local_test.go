package fsxlocal

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/fsx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFileSystemRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalFileSystem(t.TempDir(), "")
	require.NoError(t, err)

	key := store.Join("uploads", "user-1", "cv.pdf")
	require.NoError(t, store.WriteFile(ctx, key, []byte("hello")))

	ok, err := store.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)

	data, err := store.ReadFile(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	require.NoError(t, store.WriteFileStream(ctx, key, strings.NewReader("replaced")))
	data, err = store.ReadFile(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "replaced", string(data))

	require.NoError(t, store.DeleteFile(ctx, key))
	require.NoError(t, store.DeleteFile(ctx, key), "deleting twice is not an error")

	_, err = store.ReadFile(ctx, key)
	assert.ErrorIs(t, err, fsx.ErrNotExist)
}

func TestLocalFileSystemRejectsEscapes(t *testing.T) {
	store, err := NewLocalFileSystem(t.TempDir(), "")
	require.NoError(t, err)

	// cleaned relative to root, so it stays inside
	require.NoError(t, store.WriteFile(context.Background(), "../../etc/x", []byte("x")))
	ok, err := store.Exists(context.Background(), "etc/x")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLocalFileSystemURL(t *testing.T) {
	store, err := NewLocalFileSystem(t.TempDir(), "http://localhost:8080/files/")
	require.NoError(t, err)

	u, err := store.URL(context.Background(), "/uploads/a b.pdf")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/files/uploads/a%20b.pdf", u)

	_, err = store.PresignUpload(context.Background(), "x", "application/pdf", time.Minute)
	assert.ErrorIs(t, err, fsx.ErrNotSupported)
}
