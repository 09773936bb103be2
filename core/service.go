package core

import (
	"context"
	"errors"
	"strings"
)

// RepositoryAuthService verifies credentials against the account repository.
type RepositoryAuthService struct {
	accounts AccountRepository
}

func NewRepositoryAuthService(accounts AccountRepository) *RepositoryAuthService {
	return &RepositoryAuthService{accounts: accounts}
}

// Authenticate looks up the account by email and compares the password.
// Unknown email and wrong password both come back as ErrInvalidCredentials;
// a corrupt stored hash surfaces as ErrCorruptCredential for the boundary
// to log at error level.
func (s *RepositoryAuthService) Authenticate(ctx context.Context, email, password string) (AccountRecord, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return AccountRecord{}, ErrInvalidCredentials
	}

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return AccountRecord{}, ErrInvalidCredentials
		}
		return AccountRecord{}, err
	}

	ok, err := VerifyPassword(password, account.PasswordHash)
	if err != nil {
		return AccountRecord{}, err
	}
	if !ok {
		return AccountRecord{}, ErrInvalidCredentials
	}
	return account, nil
}
