package http

import (
	"encoding/json"
	"net/http"

	"github.com/placerhq/placer-server/internal/logger"
	"github.com/placerhq/placer-server/internal/utils"
	"github.com/placerhq/placer-server/models"
)

// getUsers handles GET /api/users.
func (h *Handler) getUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.services.UserService.GetAllUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.UsersResponse{Users: users}, http.StatusOK)
}

// signup handles POST /api/users/signup. The body is a multipart form with
// name, email, password, and the avatar image.
func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeInvalidInputs(w, r, err)
		return
	}

	req := signupRequest{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
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

	user, token, err := h.services.AuthService.Signup(ctx, models.User{
		Name:  req.Name,
		Email: req.Email,
		Image: image,
	}, req.Password)
	if err != nil {
		h.removeUploadAsync(log, image)
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.AuthResponse{
		UserID: user.UserID,
		Email:  user.Email,
		Token:  token.SignedString,
	}, http.StatusCreated)
}

// login handles POST /api/users/login.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeInvalidInputs(w, r, err)
		return
	}

	user, token, err := h.services.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.AuthResponse{
		UserID: user.UserID,
		Email:  user.Email,
		Token:  token.SignedString,
	}, http.StatusOK)
}
