package scrape

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Lorrany-Marra/tech-challenge-fase1/internal/httpx"
	"github.com/Lorrany-Marra/tech-challenge-fase1/internal/logging"
)

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

// Trigger handles POST /scraping/trigger. Callers must already be authorized as the privileged subject.
// @Summary Trigger scraping
// @Description Records a scrape run and dispatches it to the scraper. Restricted to the privileged subject.
// @Tags scraping
// @Produce json
// @Security BearerAuth
// @Success 202 {object} httpx.SuccessResponse{data=scrape.Run}
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 502 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /scraping/trigger [post]
func (h *HTTPHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	subject := httpx.SubjectFrom(r)

	run, err := h.svc.Trigger(r.Context(), subject)
	if err != nil {
		if run.ID != "" {
			logging.Warn().Err(err).Str("run_id", run.ID).Msg("scrape dispatch failed")
			httpx.JSONError(w, r, http.StatusBadGateway, "SCRAPER_UNAVAILABLE", "Scraper could not be started", []httpx.ErrorDetail{
				{Field: "run_id", Message: run.ID},
			})
			return
		}
		logging.Error().Err(err).Msg("scrape trigger failed")
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	logging.Info().Str("run_id", run.ID).Str("requested_by", subject).Msg("scrape dispatched")
	httpx.JSONStatus(w, r, http.StatusAccepted, run, map[string]any{"message": "Scraping started"})
}

// ListRuns handles GET /scraping/runs?limit=
// @Summary List scrape runs
// @Description Most recent runs first
// @Tags scraping
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum runs (1-100)" default(20)
// @Success 200 {object} httpx.SuccessResponse{data=[]scrape.Run}
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /scraping/runs [get]
func (h *HTTPHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit := DefaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > MaxListLimit {
			httpx.ValidationFailed(w, r, []httpx.ErrorDetail{{Field: "limit", Message: "limit must be between 1 and 100"}})
			return
		}
		limit = n
	}

	runs, err := h.svc.List(r.Context(), limit)
	if err != nil {
		logging.Error().Err(err).Msg("list scrape runs failed")
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(w, r, runs, map[string]any{"count": len(runs)})
}

// GetRun handles GET /scraping/runs/{id}
// @Summary Get scrape run
// @Tags scraping
// @Produce json
// @Security BearerAuth
// @Param id path string true "Run ID" format(uuid)
// @Success 200 {object} httpx.SuccessResponse{data=scrape.Run}
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /scraping/runs/{id} [get]
func (h *HTTPHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Scrape run not found", nil)
		return
	}

	run, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrRunNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Scrape run not found", nil)
			return
		}
		logging.Error().Err(err).Msg("get scrape run failed")
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(w, r, run, nil)
}
