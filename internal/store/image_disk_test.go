package store

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/placerhq/placer-server/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDiskStore(t *testing.T) (ImageStore, string) {
	dir := t.TempDir()
	store, err := NewDiskImageStore(dir, logger.Nop())
	require.NoError(t, err)
	return store, dir
}

func TestDiskImageStore_SaveAndOpen(t *testing.T) {
	store, _ := newTestDiskStore(t)
	ctx := context.Background()

	content := "fake image bytes"
	err := store.Save(ctx, "place.jpg", strings.NewReader(content), int64(len(content)))
	require.NoError(t, err)

	reader, err := store.Open(ctx, "place.jpg")
	require.NoError(t, err)
	defer reader.Close()

	got, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
}

// A traversal-style name must not escape the images directory.
func TestDiskImageStore_Save_FlattensPath(t *testing.T) {
	store, dir := newTestDiskStore(t)
	ctx := context.Background()

	err := store.Save(ctx, "../../etc/evil.jpg", strings.NewReader("data"), 4)
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "evil.jpg"))
	assert.NoError(t, statErr)
}

func TestDiskImageStore_Open_NotFound(t *testing.T) {
	store, _ := newTestDiskStore(t)

	_, err := store.Open(context.Background(), "missing.jpg")

	assert.ErrorIs(t, err, ErrImageNotFound)
}

func TestDiskImageStore_Delete(t *testing.T) {
	store, dir := newTestDiskStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "place.jpg", strings.NewReader("data"), 4))
	require.NoError(t, store.Delete(ctx, "place.jpg"))

	_, statErr := os.Stat(filepath.Join(dir, "place.jpg"))
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestDiskImageStore_Delete_MissingIsNoop(t *testing.T) {
	store, _ := newTestDiskStore(t)

	assert.NoError(t, store.Delete(context.Background(), "missing.jpg"))
}

func TestNewDiskImageStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")

	_, err := NewDiskImageStore(dir, logger.Nop())
	require.NoError(t, err)

	info, statErr := os.Stat(dir)
	require.NoError(t, statErr)
	assert.True(t, info.IsDir())
}
