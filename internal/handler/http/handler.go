package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/placerhq/placer-server/internal/logger"
	"github.com/placerhq/placer-server/internal/service"
	"github.com/placerhq/placer-server/internal/store"
)

// Handler bundles the services, the image backend, and the request
// validator behind the route handlers.
type Handler struct {
	services *service.Services
	images   store.ImageStore
	validate *validator.Validate

	logger *logger.Logger
}

func NewHandler(services *service.Services, images store.ImageStore, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		images:   images,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}
