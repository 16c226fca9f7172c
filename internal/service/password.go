package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordMismatch is returned by [PasswordHasher.Compare] when the
// password does not match the stored hash.
var ErrPasswordMismatch = errors.New("password does not match")

// bcryptHasher implements [PasswordHasher] on top of bcrypt.
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher constructs a [PasswordHasher] using the given bcrypt cost.
func NewBcryptHasher(cost int) PasswordHasher {
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// Compare returns [ErrPasswordMismatch] when the password is wrong, and a
// different error when the stored hash itself is unusable. Callers map the
// two cases to different HTTP statuses.
func (h *bcryptHasher) Compare(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return fmt.Errorf("failed to compare password: %w", err)
	}

	return nil
}
