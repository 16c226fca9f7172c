package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/placerhq/placer-server/internal/logger"
	"github.com/placerhq/placer-server/internal/utils"
	"github.com/placerhq/placer-server/models"
)

// getPlaceByID handles GET /api/places/{pid}.
func (h *Handler) getPlaceByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	placeID, err := uuid.Parse(chi.URLParam(r, "pid"))
	if err != nil {
		writeError(w, r, models.WrapHTTPError(err,
			"Could not find a place for the provided id", http.StatusNotFound))
		return
	}

	place, err := h.services.PlaceService.GetPlaceByID(ctx, placeID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.PlaceResponse{Place: place}, http.StatusOK)
}

// getPlacesByUser handles GET /api/places/user/{uid}.
func (h *Handler) getPlacesByUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := uuid.Parse(chi.URLParam(r, "uid"))
	if err != nil {
		writeError(w, r, models.WrapHTTPError(err,
			"Could not find places for the provided user id", http.StatusNotFound))
		return
	}

	places, err := h.services.PlaceService.GetPlacesByUser(ctx, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.PlacesResponse{Places: places}, http.StatusOK)
}

// createPlace handles POST /api/places. The body is a multipart form with
// the place fields plus the image file; the creator comes from the token,
// never from the form.
func (h *Handler) createPlace(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	authUserID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeError(w, r, models.NewHTTPError("Authentication failed", http.StatusUnauthorized))
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeInvalidInputs(w, r, err)
		return
	}

	req := createPlaceRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Address:     r.FormValue("address"),
	}
	if err := h.validate.Struct(req); err != nil {
		writeInvalidInputs(w, r, err)
		return
	}

	image, err := h.saveUpload(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	place, err := h.services.PlaceService.CreatePlace(ctx, models.Place{
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		Image:       image,
		Creator:     authUserID,
	})
	if err != nil {
		h.removeUploadAsync(log, image)
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.PlaceResponse{Place: place}, http.StatusCreated)
}

// updatePlace handles PATCH /api/places/{pid}. Only title and description
// are mutable.
func (h *Handler) updatePlace(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	authUserID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeError(w, r, models.NewHTTPError("Authentication failed", http.StatusUnauthorized))
		return
	}

	placeID, err := uuid.Parse(chi.URLParam(r, "pid"))
	if err != nil {
		writeError(w, r, models.WrapHTTPError(err,
			"Could not find a place for the provided id", http.StatusNotFound))
		return
	}

	var req updatePlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeInvalidInputs(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeInvalidInputs(w, r, err)
		return
	}

	place, err := h.services.PlaceService.UpdatePlace(ctx, authUserID, models.PlaceUpdate{
		PlaceID:     placeID,
		Title:       &req.Title,
		Description: &req.Description,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.PlaceResponse{Place: place}, http.StatusOK)
}

// deletePlace handles DELETE /api/places/{pid}.
func (h *Handler) deletePlace(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	authUserID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeError(w, r, models.NewHTTPError("Authentication failed", http.StatusUnauthorized))
		return
	}

	placeID, err := uuid.Parse(chi.URLParam(r, "pid"))
	if err != nil {
		writeError(w, r, models.WrapHTTPError(err,
			"Could not find a place by that id", http.StatusNotFound))
		return
	}

	if err := h.services.PlaceService.DeletePlace(ctx, authUserID, placeID); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Msg: "Place deleted"}, http.StatusOK)
}
