package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/Lorrany-Marra/tech-challenge-fase1/internal/accesslog"
	"github.com/Lorrany-Marra/tech-challenge-fase1/internal/auth"
	"github.com/Lorrany-Marra/tech-challenge-fase1/internal/book"
	"github.com/Lorrany-Marra/tech-challenge-fase1/internal/config"
	"github.com/Lorrany-Marra/tech-challenge-fase1/internal/httpx"
	"github.com/Lorrany-Marra/tech-challenge-fase1/internal/logging"
	"github.com/Lorrany-Marra/tech-challenge-fase1/internal/ml"
	"github.com/Lorrany-Marra/tech-challenge-fase1/internal/platform/crypto"
	"github.com/Lorrany-Marra/tech-challenge-fase1/internal/platform/scraper"
	"github.com/Lorrany-Marra/tech-challenge-fase1/internal/scrape"
	"github.com/Lorrany-Marra/tech-challenge-fase1/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config.LoadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("cannot load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logging.Fatal().Err(err).Msg("server stopped with error")
	}
	logging.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg config.Config) error {
	accessLog, err := accesslog.Open(cfg.AccessLogPath)
	if err != nil {
		return err
	}
	defer accessLog.Close()

	authSvc, err := newAuthService(cfg)
	if err != nil {
		return err
	}

	scrapeRepo, closeRepo, err := newScrapeRepo(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	var dispatcher scrape.Dispatcher = scrape.LogDispatcher{}
	if cfg.ScraperURL != "" {
		dispatcher = scrape.NewHTTPDispatcher(scraper.NewClient(cfg.ScraperURL, "books-api/1.0", 1, 2))
	}

	rateLimit := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer rateLimit.Stop()

	loader := book.NewCSVLoader(cfg.DataPath)
	router := server.NewRouter(server.Deps{
		Books:              book.NewHTTPHandler(book.NewService(loader)),
		Auth:               auth.NewHTTPHandler(authSvc),
		AuthService:        authSvc,
		ML:                 ml.NewHTTPHandler(ml.NewService(loader)),
		Scrape:             scrape.NewHTTPHandler(scrape.NewService(scrapeRepo, dispatcher)),
		AccessLog:          accessLog,
		RateLimit:          rateLimit,
		AdminSubject:       cfg.AdminSubject,
		LoginRateLimit:     cfg.LoginRateLimit,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		EnableHSTS:         cfg.EnableHSTS,
		TrustProxyHeaders:  cfg.TrustProxyHeaders,
	})

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logging.Info().
			Str("addr", cfg.Addr).
			Str("data_path", cfg.DataPath).
			Str("access_log", cfg.AccessLogPath).
			Msg("starting server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logging.Info().Msg("shutting down")
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func newAuthService(cfg config.Config) (*auth.Service, error) {
	var creds *auth.StaticCredentials
	if cfg.AuthPasswordHash != "" {
		creds = auth.NewStaticCredentialsFromHash(cfg.AuthUsername, cfg.AuthPasswordHash, cfg.AdminSubject)
	} else {
		if err := crypto.ValidatePasswordStrength(cfg.AuthPassword); err != nil {
			logging.Warn().Err(err).Msg("configured AUTH_PASSWORD is weak; set AUTH_PASSWORD_HASH for real deployments")
		}
		var err error
		creds, err = auth.NewStaticCredentials(cfg.AuthUsername, cfg.AuthPassword, cfg.AdminSubject)
		if err != nil {
			return nil, err
		}
	}
	return auth.NewService(creds, auth.StaticKey(cfg.JWTSecret), auth.WithTTL(cfg.TokenTTL)), nil
}

func newScrapeRepo(ctx context.Context, cfg config.Config) (scrape.Repository, func(), error) {
	if cfg.DBDSN == "" {
		logging.Info().Msg("DB_DSN not set; scrape runs are kept in memory")
		return scrape.NewMemoryRepo(), func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		return nil, nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		logging.Error().Str("dsn", config.RedactDSN(cfg.DBDSN)).Err(err).Msg("cannot ping database")
		return nil, nil, err
	}
	logging.Info().Str("dsn", config.RedactDSN(cfg.DBDSN)).Msg("database connection OK")
	return scrape.NewPostgresRepo(pool), pool.Close, nil
}
