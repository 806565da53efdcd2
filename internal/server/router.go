// Package server assembles the /api/v1 HTTP surface.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/Lorrany-Marra/tech-challenge-fase1/docs" // generated swagger docs
	"github.com/Lorrany-Marra/tech-challenge-fase1/internal/auth"
	"github.com/Lorrany-Marra/tech-challenge-fase1/internal/book"
	"github.com/Lorrany-Marra/tech-challenge-fase1/internal/httpx"
	"github.com/Lorrany-Marra/tech-challenge-fase1/internal/ml"
	"github.com/Lorrany-Marra/tech-challenge-fase1/internal/scrape"
)

const maxBodyBytes = 1 << 20

// docsCSP loosens the API's default-src 'none' so the Swagger UI can load its own assets.
const docsCSP = "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data:"

// Deps are the collaborators the router wires together.
type Deps struct {
	Books       *book.HTTPHandler
	Auth        *auth.HTTPHandler
	AuthService *auth.Service
	ML          *ml.HTTPHandler
	Scrape      *scrape.HTTPHandler

	AccessLog httpx.Recorder
	RateLimit *httpx.RateLimitMiddleware // nil disables the per-client limit

	AdminSubject       string
	LoginRateLimit     int // login attempts per minute per client; 0 disables
	CORSAllowedOrigins []string
	EnableHSTS         bool

	// TrustProxyHeaders takes the client address from X-Forwarded-For or X-Real-IP.
	// Enable it only behind a proxy that overwrites those headers; otherwise any
	// client can choose the address that is logged and rate limited.
	TrustProxyHeaders bool
}

// NewRouter returns the API handler. Every request, including 404s and panics,
// passes through the access log.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(httpx.RequestIDMiddleware)
	if d.TrustProxyHeaders {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(httpx.AccessLogMiddleware(d.AccessLog))
	r.Use(httpx.RecoveryMiddleware)
	r.Use(httpx.SecurityHeadersMiddleware(d.EnableHSTS))
	if len(d.CORSAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: d.CORSAllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-Id"},
			ExposedHeaders: []string{httpx.ResponseTimeHeader, "X-Request-Id"},
			MaxAge:         300,
		}))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Resource not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/docs/index.html", http.StatusMovedPermanently)
	})
	r.With(docsHeaders).Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	r.Route("/api/v1", func(r chi.Router) {
		if d.RateLimit != nil {
			r.Use(d.RateLimit.Middleware)
		}
		r.Use(httpx.RequestSizeLimitMiddleware(maxBodyBytes))

		r.Get("/health", d.Books.Health)

		r.Route("/auth", func(r chi.Router) {
			r.With(loginLimiter(d.LoginRateLimit)).Post("/login", d.Auth.Login)
			r.Post("/refresh", d.Auth.Refresh)
		})

		r.Route("/scraping", func(r chi.Router) {
			r.Use(auth.RequireToken(d.AuthService, d.AdminSubject))
			r.Post("/trigger", d.Scrape.Trigger)
			r.Get("/runs", d.Scrape.ListRuns)
			r.Get("/runs/{id}", d.Scrape.GetRun)
		})

		r.Route("/books", func(r chi.Router) {
			r.Get("/", d.Books.List)
			r.Get("/search", d.Books.Search)
			r.Get("/top-rated", d.Books.TopRated)
			r.Get("/price-range", d.Books.PriceRange)
			r.Get("/{id}", d.Books.GetByID)
		})
		r.Get("/categories", d.Books.Categories)

		r.Route("/stats", func(r chi.Router) {
			r.Get("/overview", d.Books.StatsOverview)
			r.Get("/categories", d.Books.StatsCategories)
		})

		r.Route("/ml", func(r chi.Router) {
			r.Get("/features", d.ML.Features)
			r.Get("/training-data", d.ML.TrainingData)
			r.Post("/predictions", d.ML.Predict)
		})
	})

	return r
}

func docsHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", docsCSP)
		next.ServeHTTP(w, r)
	})
}

func loginLimiter(perMinute int) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		perMinute,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			httpx.JSONError(w, r, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Too many login attempts", nil)
		}),
	)
}
