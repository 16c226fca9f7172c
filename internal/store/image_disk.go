package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/placerhq/placer-server/internal/logger"
)

// diskImageStore keeps uploaded images as plain files under a single
// directory. Object names are flattened with filepath.Base so a crafted
// name can never escape the directory.
type diskImageStore struct {
	dir    string
	logger *logger.Logger
}

// NewDiskImageStore constructs an [ImageStore] backed by the local
// filesystem, creating the target directory if needed.
func NewDiskImageStore(dir string, logger *logger.Logger) (ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create images directory %q: %w", dir, err)
	}

	logger.Debug().Str("dir", dir).Msg("disk image store created")
	return &diskImageStore{
		dir:    dir,
		logger: logger,
	}, nil
}

func (s *diskImageStore) path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}

// Save writes the image data to a file named after the object key.
// A partially written file is removed on failure.
func (s *diskImageStore) Save(ctx context.Context, name string, data io.Reader, size int64) error {
	log := logger.FromContext(ctx)

	path := s.path(name)
	file, err := os.Create(path)
	if err != nil {
		log.Err(err).Str("func", "diskImageStore.Save").Str("name", name).Msg("failed to create image file")
		return fmt.Errorf("failed to create image file: %w", err)
	}

	if _, err = io.Copy(file, data); err != nil {
		file.Close()
		os.Remove(path)
		log.Err(err).Str("func", "diskImageStore.Save").Str("name", name).Msg("failed to write image file")
		return fmt.Errorf("failed to write image file: %w", err)
	}

	return file.Close()
}

// Open returns a reader over the stored image.
// Returns [ErrImageNotFound] when no such file exists.
func (s *diskImageStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	file, err := os.Open(s.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrImageNotFound
		}
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}

	return file, nil
}

// Delete removes the stored image. Deleting a missing image is not an error.
func (s *diskImageStore) Delete(ctx context.Context, name string) error {
	err := os.Remove(s.path(name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete image file: %w", err)
	}

	return nil
}
