package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Lorrany-Marra/tech-challenge-fase1/internal/platform/crypto"
)

// Service issues and checks stateless access tokens. Tokens are never revoked;
// they stay valid until their own expiry, including after a refresh.
type Service struct {
	credentials CredentialVerifier
	keys        KeyProvider
	ttl         time.Duration
	now         func() time.Time
}

type Option func(*Service)

// WithTTL overrides DefaultTokenTTL.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(credentials CredentialVerifier, keys KeyProvider, opts ...Option) *Service {
	s := &Service{
		credentials: credentials,
		keys:        keys,
		ttl:         DefaultTokenTTL,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TTL returns the lifetime of issued tokens.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Login exchanges valid credentials for a new token.
func (s *Service) Login(ctx context.Context, username, password string) (Token, error) {
	subject, err := s.credentials.Verify(ctx, username, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return Token{}, ErrInvalidCredentials
		}
		return Token{}, fmt.Errorf("verify credentials: %w", err)
	}
	return s.issue(ctx, subject)
}

// Refresh issues a token with a fresh expiry for the subject of a valid token.
// The presented token is left untouched.
func (s *Service) Refresh(ctx context.Context, token string) (Token, error) {
	claims, err := s.parse(ctx, token)
	if err != nil {
		return Token{}, err
	}
	return s.issue(ctx, claims.Subject)
}

// Authorize verifies the token and returns its subject. When requiredSubject is
// non-empty the subject must match it exactly.
func (s *Service) Authorize(ctx context.Context, token, requiredSubject string) (string, error) {
	claims, err := s.parse(ctx, token)
	if err != nil {
		return "", err
	}
	if requiredSubject != "" && claims.Subject != requiredSubject {
		return claims.Subject, ErrForbidden
	}
	return claims.Subject, nil
}

func (s *Service) issue(ctx context.Context, subject string) (Token, error) {
	key, err := s.keys.SigningKey(ctx)
	if err != nil {
		return Token{}, fmt.Errorf("signing key: %w", err)
	}

	// JWT timestamps have second precision.
	issuedAt := s.now().Truncate(time.Second)
	signed, _, err := crypto.GenerateToken(key, subject, issuedAt, s.ttl)
	if err != nil {
		return Token{}, fmt.Errorf("sign token: %w", err)
	}

	return Token{
		AccessToken: signed,
		TokenType:   "bearer",
		ExpiresIn:   int(s.ttl.Seconds()),
		ExpiresAt:   issuedAt.Add(s.ttl).UTC(),
		Subject:     subject,
		IssuedAt:    issuedAt.UTC(),
	}, nil
}

func (s *Service) parse(ctx context.Context, token string) (*crypto.Claims, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	key, err := s.keys.SigningKey(ctx)
	if err != nil {
		return nil, fmt.Errorf("signing key: %w", err)
	}

	claims, err := crypto.ParseToken(key, token, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims, nil
}
