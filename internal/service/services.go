package service

import (
	"github.com/placerhq/placer-server/internal/config"
	"github.com/placerhq/placer-server/internal/geocoder"
	"github.com/placerhq/placer-server/internal/logger"
	"github.com/placerhq/placer-server/internal/store"
)

// Services bundles every application service the HTTP layer depends on.
type Services struct {
	AuthService  AuthService
	PlaceService PlaceService
	UserService  UserService
}

// NewServices wires the services to their storages and collaborators.
func NewServices(storages *store.Storages, geo geocoder.Geocoder, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	hasher := NewBcryptHasher(cfg.App.BcryptCost)

	return &Services{
		AuthService:  NewAuthService(storages.UserRepository, hasher, cfg.App, logger),
		PlaceService: NewPlaceService(storages, geo, logger),
		UserService:  NewUserService(storages.UserRepository, logger),
	}
}
