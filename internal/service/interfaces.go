package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/placerhq/placer-server/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService owns the account lifecycle: registration, credential
// verification, and JWT issuance and validation.
type AuthService interface {
	Signup(ctx context.Context, user models.User, password string) (models.User, models.Token, error)
	Login(ctx context.Context, email, password string) (models.User, models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// PlaceService owns place CRUD including geocoding, creator authorization,
// and the image cleanup that follows a delete.
type PlaceService interface {
	GetPlaceByID(ctx context.Context, placeID uuid.UUID) (models.Place, error)
	GetPlacesByUser(ctx context.Context, userID uuid.UUID) ([]models.Place, error)
	CreatePlace(ctx context.Context, place models.Place) (models.Place, error)
	UpdatePlace(ctx context.Context, authUserID uuid.UUID, update models.PlaceUpdate) (models.Place, error)
	DeletePlace(ctx context.Context, authUserID, placeID uuid.UUID) error
}

// UserService owns read access to the user listing.
type UserService interface {
	GetAllUsers(ctx context.Context) ([]models.User, error)
}

// PasswordHasher abstracts the one-way password hashing scheme.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
