package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/placerhq/placer-server/internal/config"
	"github.com/placerhq/placer-server/internal/logger"
	"github.com/placerhq/placer-server/internal/store"
	"github.com/placerhq/placer-server/internal/utils"
	"github.com/placerhq/placer-server/models"
)

// authService is the concrete implementation of AuthService.
// It handles signup, credential verification, and JWT token lifecycle
// using a UserRepository for persistence and bcrypt for password hashing.
//
// Failures are returned as *models.HTTPError carrying the status and
// message the HTTP layer answers with. Notably, an unknown email on login
// yields 401 while a wrong password yields 403; the two cases are kept
// distinguishable on purpose.
type authService struct {
	userRepository store.UserRepository
	hasher         PasswordHasher
	uuidGenerator  *utils.UUIDGenerator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, hasher PasswordHasher, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		hasher:         hasher,
		uuidGenerator:  utils.NewUUIDGenerator(),
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// Signup registers a new account and returns it together with a freshly
// signed token.
//
// The email is checked for uniqueness both by a lookup before the insert
// and by the unique index behind the insert itself; either path yields the
// same 422 answer.
func (a *authService) Signup(ctx context.Context, user models.User, password string) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	if user.Email == "" || password == "" {
		log.Error().Str("email", user.Email).Msg("invalid signup data provided")
		return models.User{}, models.Token{}, models.WrapHTTPError(ErrInvalidDataProvided,
			"Invalid inputs passed, please check your data", http.StatusUnprocessableEntity)
	}

	_, err := a.userRepository.FindUserByEmail(ctx, user.Email)
	if err == nil {
		return models.User{}, models.Token{}, models.NewHTTPError(
			"User already exists, please login instead", http.StatusUnprocessableEntity)
	}
	if !errors.Is(err, store.ErrNoUserWasFound) {
		log.Err(err).Str("email", user.Email).Msg("signup email lookup failed")
		return models.User{}, models.Token{}, models.WrapHTTPError(err,
			"Signing up failed, please try again later", http.StatusInternalServerError)
	}

	user.PasswordHash, err = a.hasher.Hash(password)
	if err != nil {
		log.Err(err).Str("email", user.Email).Msg("password hashing failed")
		return models.User{}, models.Token{}, models.WrapHTTPError(err,
			"Could not create user, please try again", http.StatusInternalServerError)
	}

	user.UserID = a.uuidGenerator.Generate()

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			return models.User{}, models.Token{}, models.WrapHTTPError(err,
				"User already exists, please login instead", http.StatusUnprocessableEntity)
		}
		log.Err(err).Str("email", user.Email).Msg("user creation ended with error")
		return models.User{}, models.Token{}, models.WrapHTTPError(err,
			"Signing up failed, please try again later", http.StatusInternalServerError)
	}

	token, err := a.createToken(registeredUser)
	if err != nil {
		log.Err(err).Str("email", user.Email).Msg("token creation after signup failed")
		return models.User{}, models.Token{}, models.WrapHTTPError(err,
			"Signing up failed, please try again later", http.StatusInternalServerError)
	}

	return registeredUser, token, nil
}

// Login authenticates an existing account and returns it together with a
// freshly signed token.
func (a *authService) Login(ctx context.Context, email, password string) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	foundUser, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, models.Token{}, models.WrapHTTPError(err,
				"Invalid credentials, could not log in", http.StatusUnauthorized)
		}
		log.Err(err).Str("email", email).Msg("login email lookup failed")
		return models.User{}, models.Token{}, models.WrapHTTPError(err,
			"Logging in failed, please try again later", http.StatusInternalServerError)
	}

	if err = a.hasher.Compare(foundUser.PasswordHash, password); err != nil {
		if errors.Is(err, ErrPasswordMismatch) {
			return models.User{}, models.Token{}, models.WrapHTTPError(err,
				"Invalid credentials, could not log in", http.StatusForbidden)
		}
		log.Err(err).Str("email", email).Msg("password comparison failed")
		return models.User{}, models.Token{}, models.WrapHTTPError(err,
			"Could not log in, please try again", http.StatusInternalServerError)
	}

	token, err := a.createToken(foundUser)
	if err != nil {
		log.Err(err).Str("email", email).Msg("token creation after login failed")
		return models.User{}, models.Token{}, models.WrapHTTPError(err,
			"Could not log in, please try again", http.StatusInternalServerError)
	}

	return foundUser, token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed) is normalised
// to ErrTokenIsExpiredOrInvalid so that callers do not need to inspect
// low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// createToken issues a signed JWT carrying the account's id and email.
func (a *authService) createToken(user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, user.Email, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}
