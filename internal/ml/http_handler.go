package ml

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/Lorrany-Marra/tech-challenge-fase1/internal/book"
	"github.com/Lorrany-Marra/tech-challenge-fase1/internal/httpx"
	"github.com/Lorrany-Marra/tech-challenge-fase1/internal/logging"
	"github.com/Lorrany-Marra/tech-challenge-fase1/internal/metrics"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Features handles GET /ml/features
// @Summary Model features
// @Description Reduced projection of every book. Unparsable prices are 0.
// @Tags ml
// @Produce json
// @Success 200 {object} httpx.SuccessResponse{data=[]ml.Feature}
// @Failure 500 {object} httpx.ErrorResponse
// @Router /ml/features [get]
func (h *HTTPHandler) Features(w http.ResponseWriter, r *http.Request) {
	features, err := h.service.Features(r.Context())
	if err != nil {
		writeLoadError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, features, map[string]any{"count": len(features)})
}

// TrainingData handles GET /ml/training-data
// @Summary Training data
// @Description Raw rows keyed by the original header names
// @Tags ml
// @Produce json
// @Success 200 {object} httpx.SuccessResponse{data=[]map[string]string}
// @Failure 500 {object} httpx.ErrorResponse
// @Router /ml/training-data [get]
func (h *HTTPHandler) TrainingData(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.TrainingData(r.Context())
	if err != nil {
		writeLoadError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, rows, map[string]any{"count": len(rows)})
}

// Predict handles POST /ml/predictions
// @Summary Predict price tier
// @Description Labels a book luxury when its price is above 50, popular otherwise
// @Tags ml
// @Accept json
// @Produce json
// @Param request body ml.PredictionInput true "Book to classify"
// @Success 200 {object} httpx.SuccessResponse{data=ml.Prediction}
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /ml/predictions [post]
func (h *HTTPHandler) Predict(w http.ResponseWriter, r *http.Request) {
	var in PredictionInput
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	if validationErrors := httpx.ValidateStruct(in); len(validationErrors) > 0 {
		httpx.ValidationFailed(w, r, validationErrors)
		return
	}

	httpx.JSONSuccess(w, r, Predict(in), nil)
}

func writeLoadError(w http.ResponseWriter, r *http.Request, err error) {
	kind, code, message := "unavailable", "DATA_UNAVAILABLE", "Book store is unavailable"
	if errors.Is(err, book.ErrDataCorrupt) {
		kind, code, message = "corrupt", "DATA_CORRUPT", "Book store could not be parsed"
	}
	metrics.DatasetLoadErrors.WithLabelValues(kind).Inc()
	logging.Error().Err(err).Str("path", r.URL.Path).Msg("ml dataset load failed")
	httpx.JSONError(w, r, http.StatusInternalServerError, code, message, nil)
}
