package store

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/placerhq/placer-server/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository is the persistence contract for user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
}

// PlaceRepository is the persistence contract for places.
//
// CreatePlace and DeletePlace also maintain the owning user's places
// collection. Both writes happen inside a single transaction: either the
// place row and the collection entry change together, or neither does.
type PlaceRepository interface {
	CreatePlace(ctx context.Context, place models.Place) (models.Place, error)
	GetPlaceByID(ctx context.Context, placeID uuid.UUID) (models.Place, error)
	GetPlacesByCreator(ctx context.Context, creator uuid.UUID) ([]models.Place, error)
	UpdatePlace(ctx context.Context, update models.PlaceUpdate) (models.Place, error)
	DeletePlace(ctx context.Context, place models.Place) error
}

// ImageStore abstracts the backend that keeps uploaded image files.
// Implementations exist for the local filesystem and for MinIO.
type ImageStore interface {
	Save(ctx context.Context, name string, data io.Reader, size int64) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Delete(ctx context.Context, name string) error
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
