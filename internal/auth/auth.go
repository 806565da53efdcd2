package auth

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrInvalidCredentials is returned by Login when the username or password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken is returned when a token is malformed, badly signed, expired or has no subject.
	ErrInvalidToken = errors.New("invalid token")
	// ErrForbidden is returned when a valid token belongs to the wrong subject.
	ErrForbidden = errors.New("forbidden")
)

// DefaultTokenTTL is the access token lifetime when none is configured.
const DefaultTokenTTL = 30 * time.Minute

// Token is an issued access token. Nothing about it is stored server-side.
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int       `json:"expires_in"`
	ExpiresAt   time.Time `json:"expires_at"`
	Subject     string    `json:"-"`
	IssuedAt    time.Time `json:"-"`
}

// CredentialVerifier checks a username/password pair and returns the token subject.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (string, error)
}

// KeyProvider supplies the token signing key.
type KeyProvider interface {
	SigningKey(ctx context.Context) ([]byte, error)
}
