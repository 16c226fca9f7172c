package store

import (
	"context"
	"fmt"

	"github.com/placerhq/placer-server/internal/config"
	"github.com/placerhq/placer-server/internal/logger"
)

// Storages bundles every persistence backend the services depend on.
type Storages struct {
	UserRepository  UserRepository
	PlaceRepository PlaceRepository
	ImageStore      ImageStore
}

// NewStorages assembles the repositories on top of the given database
// connection and constructs the image store selected by configuration.
func NewStorages(ctx context.Context, db *DB, cfg config.Images, log *logger.Logger) (*Storages, error) {
	imageStore, err := NewImageStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	return &Storages{
		UserRepository:  NewUserRepository(db, log),
		PlaceRepository: NewPlaceRepository(db, log),
		ImageStore:      imageStore,
	}, nil
}

// NewImageStore constructs the image store backend named in configuration.
func NewImageStore(ctx context.Context, cfg config.Images, log *logger.Logger) (ImageStore, error) {
	switch cfg.Backend {
	case "disk":
		return NewDiskImageStore(cfg.Dir, log)
	case "minio":
		return NewMinioImageStore(ctx, cfg.MinIO, log)
	default:
		return nil, fmt.Errorf("unknown image store backend %q", cfg.Backend)
	}
}
