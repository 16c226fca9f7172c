package http

import (
	"errors"
	"net/http"

	"github.com/placerhq/placer-server/internal/logger"
	"github.com/placerhq/placer-server/internal/service"
	"github.com/placerhq/placer-server/internal/store"
	"github.com/placerhq/placer-server/internal/utils"
	"github.com/placerhq/placer-server/models"
)

// msgInvalidInputs is the uniform body for any request validation failure.
// No field detail is surfaced.
const msgInvalidInputs = "Invalid inputs passed, please check your data"

// errorStatusMap maps sentinel errors that escape the service layer
// unwrapped to their response status and message. Most failures arrive as
// *models.HTTPError and never consult this map.
var errorStatusMap = map[error]models.HTTPError{
	store.ErrNoPlaceWasFound:             {Msg: "Could not find a place for the provided id", Code: http.StatusNotFound},
	store.ErrNoUserWasFound:              {Msg: "Could not find user for provided id", Code: http.StatusNotFound},
	store.ErrEmailAlreadyExists:          {Msg: "User already exists, please login instead", Code: http.StatusUnprocessableEntity},
	store.ErrImageNotFound:               {Msg: "Could not find this route", Code: http.StatusNotFound},
	service.ErrInvalidDataProvided:       {Msg: msgInvalidInputs, Code: http.StatusUnprocessableEntity},
	service.ErrTokenIsExpiredOrInvalid:   {Msg: "Authentication failed", Code: http.StatusUnauthorized},
	ErrEmptyAuthorizationHeader:          {Msg: "Authentication failed", Code: http.StatusUnauthorized},
	ErrInvalidAuthorizationHeader:        {Msg: "Authentication failed", Code: http.StatusUnauthorized},
	ErrEmptyToken:                        {Msg: "Authentication failed", Code: http.StatusUnauthorized},
}

// writeError renders any error as the uniform `{msg}` body.
//
// *models.HTTPError values carry their own message and status and are
// written as-is. Bare sentinels fall back to errorStatusMap, and anything
// unrecognized becomes a 500 with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	var httpErr *models.HTTPError
	if errors.As(err, &httpErr) {
		log.Err(err).Int("status", httpErr.StatusCode()).Msg(httpErr.Msg)
		utils.WriteJSON(w, httpErr, httpErr.StatusCode())
		return
	}

	for sentinel, mapped := range errorStatusMap {
		if errors.Is(err, sentinel) {
			log.Err(err).Int("status", mapped.StatusCode()).Msg(mapped.Msg)
			utils.WriteJSON(w, mapped, mapped.StatusCode())
			return
		}
	}

	log.Err(err).Msg("unexpected error occurred during request handling")
	utils.WriteJSON(w,
		models.MessageResponse{Msg: "An unknown error occurred"},
		http.StatusInternalServerError)
}

// writeInvalidInputs is the shorthand for validation failures.
func writeInvalidInputs(w http.ResponseWriter, r *http.Request, err error) {
	writeError(w, r, models.WrapHTTPError(err, msgInvalidInputs, http.StatusUnprocessableEntity))
}
