package store

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/placerhq/placer-server/internal/config"
	"github.com/placerhq/placer-server/internal/logger"
)

// minioAPI is the subset of *minio.Client used by the image store. Keeping
// it as an interface enables tests without a running MinIO server.
type minioAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (*minio.Object, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// minioImageStore keeps uploaded images as objects in a MinIO bucket.
type minioImageStore struct {
	api    minioAPI
	bucket string
	logger *logger.Logger
}

// NewMinioImageStore connects to MinIO using the given settings, makes sure
// the configured bucket exists, and returns an [ImageStore] backed by it.
func NewMinioImageStore(ctx context.Context, cfg config.MinIO, logger *logger.Logger) (ImageStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return newMinioImageStoreWithAPI(ctx, client, cfg.Bucket, logger)
}

// newMinioImageStoreWithAPI allows injecting a mockable API (used in tests).
func newMinioImageStoreWithAPI(ctx context.Context, api minioAPI, bucket string, logger *logger.Logger) (ImageStore, error) {
	s := &minioImageStore{
		api:    api,
		bucket: bucket,
		logger: logger,
	}

	if err := s.ensureBucketExists(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	logger.Debug().Str("bucket", bucket).Msg("minio image store created")
	return s, nil
}

// ensureBucketExists creates the bucket if it doesn't exist.
func (s *minioImageStore) ensureBucketExists(ctx context.Context) error {
	exists, err := s.api.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err = s.api.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// Save uploads the image data as an object named after the key.
func (s *minioImageStore) Save(ctx context.Context, name string, data io.Reader, size int64) error {
	_, err := s.api.PutObject(ctx, s.bucket, name, data, size, minio.PutObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to upload image object: %w", err)
	}

	return nil
}

// Open returns a reader over the stored image object.
// Returns [ErrImageNotFound] when the object does not exist.
func (s *minioImageStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	obj, err := s.api.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		if isMinioNotFound(err) {
			return nil, ErrImageNotFound
		}
		return nil, fmt.Errorf("failed to get image object: %w", err)
	}

	// GetObject is lazy: a missing key only surfaces on the first read.
	if _, err = obj.Stat(); err != nil {
		obj.Close()
		if isMinioNotFound(err) {
			return nil, ErrImageNotFound
		}
		return nil, fmt.Errorf("failed to stat image object: %w", err)
	}

	return obj, nil
}

// Delete removes the stored image object.
func (s *minioImageStore) Delete(ctx context.Context, name string) error {
	if err := s.api.RemoveObject(ctx, s.bucket, name, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete image object: %w", err)
	}

	return nil
}

func isMinioNotFound(err error) bool {
	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		return resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket"
	}

	return false
}
