package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/placerhq/placer-server/internal/geocoder"
	"github.com/placerhq/placer-server/internal/logger"
	"github.com/placerhq/placer-server/internal/store"
	"github.com/placerhq/placer-server/internal/utils"
	"github.com/placerhq/placer-server/models"
)

// placeService is the concrete implementation of PlaceService.
//
// The place row and the owner's places collection always change inside the
// same repository transaction; this layer adds geocoding, the
// creator-only authorization checks, and image cleanup after deletes.
type placeService struct {
	placeRepository store.PlaceRepository
	userRepository  store.UserRepository
	imageStore      store.ImageStore
	geocoder        geocoder.Geocoder
	uuidGenerator   *utils.UUIDGenerator
	logger          *logger.Logger
}

// NewPlaceService constructs a PlaceService wired to the given storages and
// geocoder.
func NewPlaceService(storages *store.Storages, geo geocoder.Geocoder, logger *logger.Logger) PlaceService {
	return &placeService{
		placeRepository: storages.PlaceRepository,
		userRepository:  storages.UserRepository,
		imageStore:      storages.ImageStore,
		geocoder:        geo,
		uuidGenerator:   utils.NewUUIDGenerator(),
		logger:          logger,
	}
}

// GetPlaceByID returns a single place.
func (p *placeService) GetPlaceByID(ctx context.Context, placeID uuid.UUID) (models.Place, error) {
	place, err := p.placeRepository.GetPlaceByID(ctx, placeID)
	if err != nil {
		if errors.Is(err, store.ErrNoPlaceWasFound) {
			return models.Place{}, models.WrapHTTPError(err,
				"Could not find a place for the provided id", http.StatusNotFound)
		}
		return models.Place{}, models.WrapHTTPError(err,
			"Something went wrong, please try again", http.StatusInternalServerError)
	}

	return place, nil
}

// GetPlacesByUser returns every place created by the given user. A user
// with no places is answered with 404 rather than an empty list; clients
// rely on that contract.
func (p *placeService) GetPlacesByUser(ctx context.Context, userID uuid.UUID) ([]models.Place, error) {
	places, err := p.placeRepository.GetPlacesByCreator(ctx, userID)
	if err != nil {
		return nil, models.WrapHTTPError(err,
			"Something went wrong, please try again", http.StatusInternalServerError)
	}

	if len(places) == 0 {
		return nil, models.NewHTTPError(
			"Could not find places for the provided user id", http.StatusNotFound)
	}

	return places, nil
}

// CreatePlace geocodes the address, verifies the creator exists, and
// persists the place.
//
// Geocoder failures are returned unchanged: the geocoder already speaks in
// *models.HTTPError and owns its status codes.
func (p *placeService) CreatePlace(ctx context.Context, place models.Place) (models.Place, error) {
	log := logger.FromContext(ctx)

	location, err := p.geocoder.GeocodeAddress(ctx, place.Address)
	if err != nil {
		return models.Place{}, err
	}
	place.Location = location

	if _, err = p.userRepository.FindUserByID(ctx, place.Creator); err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.Place{}, models.WrapHTTPError(err,
				"Could not find user for provided id", http.StatusNotFound)
		}
		log.Err(err).Str("creator", place.Creator.String()).Msg("creator lookup failed")
		return models.Place{}, models.WrapHTTPError(err,
			"Creating place failed, please try again later", http.StatusInternalServerError)
	}

	place.PlaceID = p.uuidGenerator.Generate()

	created, err := p.placeRepository.CreatePlace(ctx, place)
	if err != nil {
		// The creator can disappear between the lookup and the insert.
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.Place{}, models.WrapHTTPError(err,
				"Could not find user for provided id", http.StatusNotFound)
		}
		log.Err(err).Str("creator", place.Creator.String()).Msg("place creation failed")
		return models.Place{}, models.WrapHTTPError(err,
			"Creating place failed, please try again", http.StatusInternalServerError)
	}

	return created, nil
}

// UpdatePlace applies a partial update after verifying the requester is
// the creator of the place.
func (p *placeService) UpdatePlace(ctx context.Context, authUserID uuid.UUID, update models.PlaceUpdate) (models.Place, error) {
	place, err := p.placeRepository.GetPlaceByID(ctx, update.PlaceID)
	if err != nil {
		if errors.Is(err, store.ErrNoPlaceWasFound) {
			return models.Place{}, models.WrapHTTPError(err,
				"Could not find a place for the provided id", http.StatusNotFound)
		}
		return models.Place{}, models.WrapHTTPError(err,
			"Something went wrong, please try again", http.StatusInternalServerError)
	}

	if place.Creator != authUserID {
		return models.Place{}, models.NewHTTPError(
			"You are not allowed to edit this place", http.StatusUnauthorized)
	}

	updated, err := p.placeRepository.UpdatePlace(ctx, update)
	if err != nil {
		if errors.Is(err, store.ErrNoPlaceWasFound) {
			return models.Place{}, models.WrapHTTPError(err,
				"Could not find a place for the provided id", http.StatusNotFound)
		}
		return models.Place{}, models.WrapHTTPError(err,
			"Something went wrong, please try again", http.StatusInternalServerError)
	}

	return updated, nil
}

// DeletePlace removes a place after verifying the requester is its
// creator, then deletes the stored image in the background. A failed image
// delete is logged and never surfaced; the place row is already gone and
// must stay gone.
func (p *placeService) DeletePlace(ctx context.Context, authUserID, placeID uuid.UUID) error {
	log := logger.FromContext(ctx)

	place, err := p.placeRepository.GetPlaceByID(ctx, placeID)
	if err != nil {
		if errors.Is(err, store.ErrNoPlaceWasFound) {
			return models.WrapHTTPError(err,
				"Could not find a place by that id", http.StatusNotFound)
		}
		return models.WrapHTTPError(err,
			"Something went wrong, could not delete place", http.StatusInternalServerError)
	}

	if place.Creator != authUserID {
		return models.NewHTTPError(
			"You are not allowed to delete this place", http.StatusUnauthorized)
	}

	if err = p.placeRepository.DeletePlace(ctx, place); err != nil {
		if errors.Is(err, store.ErrNoPlaceWasFound) {
			return models.WrapHTTPError(err,
				"Could not find a place by that id", http.StatusNotFound)
		}
		return models.WrapHTTPError(err,
			"Something went wrong, could not delete place", http.StatusInternalServerError)
	}

	if place.Image != "" {
		p.deleteImageAsync(log, place.Image)
	}

	return nil
}

// deleteImageAsync removes the image in the background with its own
// deadline, detached from the request context which is about to end.
func (p *placeService) deleteImageAsync(log *logger.Logger, image string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := p.imageStore.Delete(ctx, image); err != nil {
			log.Err(err).Str("image", image).Msg("failed to delete place image")
		}
	}()
}
