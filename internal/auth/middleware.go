package auth

import (
	"errors"
	"net/http"

	"github.com/Lorrany-Marra/tech-challenge-fase1/internal/httpx"
	"github.com/Lorrany-Marra/tech-challenge-fase1/internal/logging"
)

// RequireToken rejects requests without a valid bearer token. A non-empty
// requiredSubject restricts the route to that single subject.
func RequireToken(svc *Service, requiredSubject string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := httpx.BearerToken(r)
			if !ok {
				writeAuthError(w, r, ErrInvalidToken)
				return
			}

			subject, err := svc.Authorize(r.Context(), token, requiredSubject)
			if err != nil {
				writeAuthError(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(httpx.ContextWithSubject(r.Context(), subject)))
		})
	}
}

func writeAuthError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		w.Header().Set("WWW-Authenticate", "Bearer")
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid username or password", nil)
	case errors.Is(err, ErrInvalidToken):
		w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token", nil)
	case errors.Is(err, ErrForbidden):
		httpx.JSONError(w, r, http.StatusForbidden, "FORBIDDEN", "Not allowed to perform this action", nil)
	default:
		logging.Error().Err(err).Str("path", r.URL.Path).Msg("auth failure")
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}
