package handler

import (
	"errors"

	"github.com/placerhq/placer-server/internal/config"
	"github.com/placerhq/placer-server/internal/handler/http"
	"github.com/placerhq/placer-server/internal/logger"
	"github.com/placerhq/placer-server/internal/service"
	"github.com/placerhq/placer-server/internal/store"
)

var errNoHandlersAreCreated = errors.New("no handlers are created")

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, images store.ImageStore, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, images, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
