package book

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

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

// List handles GET /books
// @Summary List books
// @Description Returns every book in store order
// @Tags books
// @Produce json
// @Success 200 {object} httpx.SuccessResponse{data=[]book.Book}
// @Failure 500 {object} httpx.ErrorResponse "Book store unavailable or corrupt"
// @Router /books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, books, map[string]any{"count": len(books)})
}

// GetByID handles GET /books/{id}. The id is a position in the current store.
// @Summary Get book by position
// @Description Returns the book at a zero-based position. Positions are only stable while the store is unchanged.
// @Tags books
// @Produce json
// @Param id path int true "Zero-based position"
// @Success 200 {object} httpx.SuccessResponse{data=book.Book}
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse "Book store unavailable or corrupt"
// @Router /books/{id} [get]
func (h *HTTPHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		httpx.ValidationFailed(w, r, []httpx.ErrorDetail{{Field: "id", Message: "id must be an integer"}})
		return
	}

	b, err := h.service.GetByIndex(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// Search handles GET /books/search?title=&category=
// @Summary Search books
// @Description Case-insensitive title substring and exact category match. Omitted filters match everything.
// @Tags books
// @Produce json
// @Param title query string false "Title substring"
// @Param category query string false "Category"
// @Success 200 {object} httpx.SuccessResponse{data=[]book.Book}
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse "Book store unavailable or corrupt"
// @Router /books/search [get]
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	books, err := h.service.Search(r.Context(), SearchQuery{
		Title:    q.Get("title"),
		Category: q.Get("category"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, books, map[string]any{"count": len(books)})
}

// Categories handles GET /categories
// @Summary List categories
// @Description Distinct non-empty categories in ascending order
// @Tags books
// @Produce json
// @Success 200 {object} httpx.SuccessResponse{data=[]string}
// @Failure 500 {object} httpx.ErrorResponse "Book store unavailable or corrupt"
// @Router /categories [get]
func (h *HTTPHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, categories, map[string]any{"count": len(categories)})
}

// PriceRange handles GET /books/price-range?min=&max=
// @Summary Filter books by price
// @Description Books priced within [min, max]. Books without a parsable price are skipped.
// @Tags books
// @Produce json
// @Param min query number true "Lower bound"
// @Param max query number true "Upper bound"
// @Success 200 {object} httpx.SuccessResponse{data=[]book.Book}
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse "Book store unavailable or corrupt"
// @Router /books/price-range [get]
func (h *HTTPHandler) PriceRange(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var details []httpx.ErrorDetail
	min, ok := parseBound(q.Get("min"))
	if !ok {
		details = append(details, httpx.ErrorDetail{Field: "min", Message: "min must be a number"})
	}
	max, ok := parseBound(q.Get("max"))
	if !ok {
		details = append(details, httpx.ErrorDetail{Field: "max", Message: "max must be a number"})
	}
	if len(details) > 0 {
		httpx.ValidationFailed(w, r, details)
		return
	}

	books, err := h.service.PriceRange(r.Context(), min, max)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, books, map[string]any{"count": len(books)})
}

// TopRated handles GET /books/top-rated
// @Summary Top rated books
// @Description Every book tied at the highest rating in the store
// @Tags books
// @Produce json
// @Success 200 {object} httpx.SuccessResponse{data=[]book.Book}
// @Failure 500 {object} httpx.ErrorResponse "Book store unavailable or corrupt"
// @Router /books/top-rated [get]
func (h *HTTPHandler) TopRated(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.TopRated(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, books, map[string]any{"count": len(books)})
}

// StatsOverview handles GET /stats/overview
// @Summary Catalog overview
// @Description Total books, average price and rating distribution
// @Tags stats
// @Produce json
// @Success 200 {object} httpx.SuccessResponse{data=book.Overview}
// @Failure 500 {object} httpx.ErrorResponse "Book store unavailable or corrupt"
// @Router /stats/overview [get]
func (h *HTTPHandler) StatsOverview(w http.ResponseWriter, r *http.Request) {
	ov, err := h.service.Overview(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, ov, nil)
}

// StatsCategories handles GET /stats/categories
// @Summary Per-category statistics
// @Description Book count and average price per category
// @Tags stats
// @Produce json
// @Success 200 {object} httpx.SuccessResponse{data=[]book.CategoryCount}
// @Failure 500 {object} httpx.ErrorResponse "Book store unavailable or corrupt"
// @Router /stats/categories [get]
func (h *HTTPHandler) StatsCategories(w http.ResponseWriter, r *http.Request) {
	groups, err := h.service.ByCategory(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, groups, map[string]any{"count": len(groups)})
}

// Health handles GET /health
// @Summary Health check
// @Description Liveness plus the number of books in the store
// @Tags health
// @Produce json
// @Success 200 {object} httpx.SuccessResponse
// @Failure 500 {object} httpx.ErrorResponse "Book store unavailable or corrupt"
// @Router /health [get]
func (h *HTTPHandler) Health(w http.ResponseWriter, r *http.Request) {
	n, err := h.service.Count(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, map[string]any{"status": "ok", "books": n}, nil)
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "No books found", nil)
	case errors.Is(err, ErrDataCorrupt):
		metrics.DatasetLoadErrors.WithLabelValues("corrupt").Inc()
		logging.Error().Err(err).Str("path", r.URL.Path).Msg("book store is corrupt")
		httpx.JSONError(w, r, http.StatusInternalServerError, "DATA_CORRUPT", "Book store could not be parsed", nil)
	case errors.Is(err, ErrDataUnavailable):
		metrics.DatasetLoadErrors.WithLabelValues("unavailable").Inc()
		logging.Error().Err(err).Str("path", r.URL.Path).Msg("book store is unavailable")
		httpx.JSONError(w, r, http.StatusInternalServerError, "DATA_UNAVAILABLE", "Book store is unavailable", nil)
	default:
		logging.Error().Err(err).Str("path", r.URL.Path).Msg("book request failed")
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}

// parseBound accepts "10", "10.5" and "10,5".
func parseBound(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	return ParsePrice(s)
}
