package core

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrCorruptCredential signals a stored hash that bcrypt cannot parse.
// This is upstream data corruption, not a login failure.
var ErrCorruptCredential = errors.New("stored credential hash is corrupt")

// HashPassword applies a salted adaptive-cost hash. Password strength is
// enforced by the validation stage before this is called.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compares a candidate password against a stored hash.
// A mismatch is a clean false; only a malformed stored hash is an error.
func VerifyPassword(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, ErrCorruptCredential
	}
}
