package core

import (
	"context"
	"errors"
)

// ErrInvalidCredentials is returned when email/password is wrong. It is
// deliberately the same for an unknown email and a wrong password so the
// login form cannot be used to enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService defines credential verification behaviour.
type AuthService interface {
	Authenticate(ctx context.Context, email, password string) (AccountRecord, error)
}
