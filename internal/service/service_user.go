package service

import (
	"context"
	"net/http"

	"github.com/placerhq/placer-server/internal/logger"
	"github.com/placerhq/placer-server/internal/store"
	"github.com/placerhq/placer-server/models"
)

// userService is the concrete implementation of UserService.
type userService struct {
	userRepository store.UserRepository
	logger         *logger.Logger
}

// NewUserService constructs a UserService wired to the given UserRepository.
func NewUserService(userRepository store.UserRepository, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		logger:         logger,
	}
}

// GetAllUsers returns every registered account. Password hashes stay inside
// the model and are dropped at the JSON boundary.
func (u *userService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	users, err := u.userRepository.GetAllUsers(ctx)
	if err != nil {
		log.Err(err).Str("func", "userService.GetAllUsers").Msg("fetching users failed")
		return nil, models.WrapHTTPError(err,
			"Fetching users failed, please try again later", http.StatusInternalServerError)
	}

	return users, nil
}
