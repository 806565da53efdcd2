package auth

import (
	"net/http"
	"strings"

	"github.com/Lorrany-Marra/tech-challenge-fase1/internal/httpx"
	"github.com/Lorrany-Marra/tech-challenge-fase1/internal/logging"
)

const maxLoginMemory = 1 << 16

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type LoginForm struct {
	Username string `form:"username" validate:"notblank,max=128"`
	Password string `form:"password" validate:"notblank,max=128"`
}

// Login handles POST /auth/login with form fields username and password.
// @Summary Log in
// @Description Exchange username and password for a bearer token valid for 30 minutes
// @Tags auth
// @Accept x-www-form-urlencoded,mpfd
// @Produce json
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Success 200 {object} httpx.SuccessResponse{data=auth.Token}
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Failure 429 {object} httpx.ErrorResponse
// @Router /auth/login [post]
func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid form body", nil)
		return
	}

	form := LoginForm{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}
	if validationErrors := httpx.ValidateStruct(form); len(validationErrors) > 0 {
		httpx.ValidationFailed(w, r, validationErrors)
		return
	}

	token, err := h.service.Login(r.Context(), form.Username, form.Password)
	if err != nil {
		logging.Warn().Str("username", form.Username).Str("ip", httpx.ClientIP(r)).Msg("login rejected")
		writeAuthError(w, r, err)
		return
	}

	httpx.JSONSuccess(w, r, token, nil)
}

// Refresh handles POST /auth/refresh. The current token travels in the Authorization header.
// @Summary Refresh token
// @Description Issue a new token for the subject of a valid one. The old token stays valid until it expires.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} httpx.SuccessResponse{data=auth.Token}
// @Failure 401 {object} httpx.ErrorResponse
// @Router /auth/refresh [post]
func (h *HTTPHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	current, ok := httpx.BearerToken(r)
	if !ok {
		writeAuthError(w, r, ErrInvalidToken)
		return
	}

	token, err := h.service.Refresh(r.Context(), current)
	if err != nil {
		writeAuthError(w, r, err)
		return
	}

	httpx.JSONSuccess(w, r, token, nil)
}

func parseForm(r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(maxLoginMemory)
	}
	return r.ParseForm()
}
