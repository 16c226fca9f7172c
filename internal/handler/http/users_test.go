package http

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/placerhq/placer-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestGetUsers_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mocks := newTestHandler(t, ctrl)
	users := []models.User{
		{UserID: uuid.New(), Name: "John", Email: "john@example.com"},
		{UserID: uuid.New(), Name: "Jane", Email: "jane@example.com"},
	}

	mocks.user.EXPECT().GetAllUsers(gomock.Any()).Return(users, nil)

	rec := serve(router, http.MethodGet, "/api/users", nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	got, ok := decodeBody(t, rec)["users"].([]any)
	require.True(t, ok)
	assert.Len(t, got, 2)

	// the password hash must never leak into the listing
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestGetUsers_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mocks := newTestHandler(t, ctrl)

	mocks.user.EXPECT().GetAllUsers(gomock.Any()).
		Return(nil, models.NewHTTPError(
			"Fetching users failed, please try again later", http.StatusInternalServerError))

	rec := serve(router, http.MethodGet, "/api/users", nil, nil)

	requireMsg(t, rec, http.StatusInternalServerError,
		"Fetching users failed, please try again later")
}

func TestSignup_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mocks := newTestHandler(t, ctrl)
	userID := uuid.New()

	mocks.images.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)
	mocks.auth.EXPECT().Signup(gomock.Any(), gomock.Any(), "secret-password").
		DoAndReturn(func(_ context.Context, u models.User, _ string) (models.User, models.Token, error) {
			assert.Equal(t, "John", u.Name)
			assert.Equal(t, "john@example.com", u.Email)
			assert.NotEmpty(t, u.Image)
			u.UserID = userID
			return u, models.Token{SignedString: "signed.jwt.token", UserID: userID}, nil
		})

	body, contentType := multipartBody(t, map[string]string{
		"name":     "John",
		"email":    "john@example.com",
		"password": "secret-password",
	})

	rec := serve(router, http.MethodPost, "/api/users/signup", body, map[string]string{
		"Content-Type": contentType,
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	got := decodeBody(t, rec)
	assert.Equal(t, userID.String(), got["userId"])
	assert.Equal(t, "john@example.com", got["email"])
	assert.Equal(t, "signed.jwt.token", got["token"])
}

func TestSignup_DuplicateEmailCleansUpload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mocks := newTestHandler(t, ctrl)
	uploadRemoved := make(chan struct{})

	mocks.images.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)
	mocks.auth.EXPECT().Signup(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.User{}, models.Token{}, models.NewHTTPError(
			"User already exists, please login instead", http.StatusUnprocessableEntity))
	mocks.images.EXPECT().Delete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string) error {
			close(uploadRemoved)
			return nil
		})

	body, contentType := multipartBody(t, map[string]string{
		"name":     "John",
		"email":    "john@example.com",
		"password": "secret-password",
	})

	rec := serve(router, http.MethodPost, "/api/users/signup", body, map[string]string{
		"Content-Type": contentType,
	})

	requireMsg(t, rec, http.StatusUnprocessableEntity,
		"User already exists, please login instead")
	select {
	case <-uploadRemoved:
	case <-time.After(time.Second):
		t.Fatal("orphaned upload was never removed")
	}
}

func TestSignup_ValidationFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := newTestHandler(t, ctrl)

	// malformed email, password too short
	body, contentType := multipartBody(t, map[string]string{
		"name":     "John",
		"email":    "not-an-email",
		"password": "short",
	})

	rec := serve(router, http.MethodPost, "/api/users/signup", body, map[string]string{
		"Content-Type": contentType,
	})

	requireMsg(t, rec, http.StatusUnprocessableEntity, msgInvalidInputs)
}

func TestLogin_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mocks := newTestHandler(t, ctrl)
	userID := uuid.New()

	mocks.auth.EXPECT().Login(gomock.Any(), "john@example.com", "secret-password").
		Return(
			models.User{UserID: userID, Email: "john@example.com"},
			models.Token{SignedString: "signed.jwt.token", UserID: userID},
			nil,
		)

	body := strings.NewReader(`{"email":"john@example.com","password":"secret-password"}`)
	rec := serve(router, http.MethodPost, "/api/users/login", body, map[string]string{
		"Content-Type": "application/json",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody(t, rec)
	assert.Equal(t, userID.String(), got["userId"])
	assert.Equal(t, "signed.jwt.token", got["token"])
}

func TestLogin_UnknownEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mocks := newTestHandler(t, ctrl)

	mocks.auth.EXPECT().Login(gomock.Any(), "nobody@example.com", gomock.Any()).
		Return(models.User{}, models.Token{}, models.NewHTTPError(
			"Invalid credentials, could not log in", http.StatusUnauthorized))

	body := strings.NewReader(`{"email":"nobody@example.com","password":"secret-password"}`)
	rec := serve(router, http.MethodPost, "/api/users/login", body, map[string]string{
		"Content-Type": "application/json",
	})

	requireMsg(t, rec, http.StatusUnauthorized, "Invalid credentials, could not log in")
}

func TestLogin_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mocks := newTestHandler(t, ctrl)

	mocks.auth.EXPECT().Login(gomock.Any(), "john@example.com", "wrong-password").
		Return(models.User{}, models.Token{}, models.NewHTTPError(
			"Invalid credentials, could not log in", http.StatusForbidden))

	body := strings.NewReader(`{"email":"john@example.com","password":"wrong-password"}`)
	rec := serve(router, http.MethodPost, "/api/users/login", body, map[string]string{
		"Content-Type": "application/json",
	})

	requireMsg(t, rec, http.StatusForbidden, "Invalid credentials, could not log in")
}

func TestLogin_InvalidJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := newTestHandler(t, ctrl)

	rec := serve(router, http.MethodPost, "/api/users/login",
		strings.NewReader("{not json"), map[string]string{
			"Content-Type": "application/json",
		})

	requireMsg(t, rec, http.StatusUnprocessableEntity, msgInvalidInputs)
}
