package auth

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/Lorrany-Marra/tech-challenge-fase1/internal/platform/crypto"
)

// StaticCredentials accepts a single configured username/password pair.
type StaticCredentials struct {
	username     string
	passwordHash string
	subject      string
}

// NewStaticCredentials hashes password once at construction.
func NewStaticCredentials(username, password, subject string) (*StaticCredentials, error) {
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return NewStaticCredentialsFromHash(username, hash, subject), nil
}

// NewStaticCredentialsFromHash uses an existing bcrypt hash. An empty subject defaults to the username.
func NewStaticCredentialsFromHash(username, passwordHash, subject string) *StaticCredentials {
	if subject == "" {
		subject = username
	}
	return &StaticCredentials{username: username, passwordHash: passwordHash, subject: subject}
}

func (c *StaticCredentials) Verify(_ context.Context, username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.username)) == 1
	// Always run bcrypt so a wrong username costs the same as a wrong password.
	passOK := crypto.VerifyPassword(c.passwordHash, password)
	if !userOK || !passOK {
		return "", ErrInvalidCredentials
	}
	return c.subject, nil
}

// StaticKey serves a fixed signing key.
type StaticKey []byte

func (k StaticKey) SigningKey(context.Context) ([]byte, error) {
	if len(k) == 0 {
		return nil, errors.New("auth: signing key is not configured")
	}
	return []byte(k), nil
}
