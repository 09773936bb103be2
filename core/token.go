package core

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenInvalid covers every verification failure: bad signature,
// malformed structure, wrong algorithm, or expiry. Callers must not be able
// to tell which, so a stolen cookie cannot be used as an oracle.
var ErrTokenInvalid = errors.New("invalid token")

// AccountClaims is the full claim set carried by a bearer token. It mirrors
// the authentication context exactly; no extra PII rides along.
type AccountClaims struct {
	AccountID        int64  `json:"account_id"`
	AccountFirstname string `json:"account_firstname"`
	AccountLastname  string `json:"account_lastname"`
	AccountEmail     string `json:"account_email"`
	AccountType      string `json:"account_type"`
	jwt.RegisteredClaims
}

// Role parses the claimed account type against the closed role set.
func (c *AccountClaims) Role() Role {
	return ParseRole(c.AccountType)
}

// TokenService signs and verifies bearer tokens with a process-wide secret.
// The secret is injected once at construction and immutable afterwards.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService builds a TokenService from configuration.
func NewTokenService(cfg Config) *TokenService {
	return &TokenService{secret: []byte(cfg.TokenSecret), ttl: cfg.TokenTTL, now: time.Now}
}

// Issue signs the account's claims with iat/exp set from the configured TTL.
func (s *TokenService) Issue(account AccountRecord) (string, error) {
	return s.IssueClaims(AccountClaims{
		AccountID:        account.ID,
		AccountFirstname: account.Firstname,
		AccountLastname:  account.Lastname,
		AccountEmail:     account.Email,
		AccountType:      string(account.Type),
	})
}

// IssueClaims signs an explicit claim set, overwriting iat/exp from the
// configured TTL.
func (s *TokenService) IssueClaims(claims AccountClaims) (string, error) {
	now := s.now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the embedded claims.
// The expiry boundary is exclusive: a token presented at exactly exp fails.
func (s *TokenService) Verify(tokenString string) (*AccountClaims, error) {
	claims := &AccountClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
