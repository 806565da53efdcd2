// Package config reads the API settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Lorrany-Marra/tech-challenge-fase1/internal/platform/crypto"
)

type Config struct {
	Addr          string
	DataPath      string
	AccessLogPath string

	JWTSecret        string
	TokenTTL         time.Duration
	AuthUsername     string
	AuthPassword     string
	AuthPasswordHash string
	AdminSubject     string

	DBDSN      string
	ScraperURL string

	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int
	LoginRateLimit     int
	EnableHSTS         bool
	TrustProxyHeaders  bool

	LogLevel  string
	LogFormat string
}

// LoadEnvFiles seeds the environment from .env and .env.local.
// Variables already set by the runtime are never overridden.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load reads and validates the configuration.
func Load() (Config, error) {
	var errs []error

	cfg := Config{
		Addr:             getEnv("APP_ADDR", ":8000"),
		DataPath:         getEnv("DATA_PATH", "data/livros_completo.csv"),
		AccessLogPath:    getEnv("ACCESS_LOG_PATH", "logs_api.json"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		AuthUsername:     getEnv("AUTH_USERNAME", "admin"),
		AuthPassword:     getEnv("AUTH_PASSWORD", "admin123"),
		AuthPasswordHash: os.Getenv("AUTH_PASSWORD_HASH"),
		AdminSubject:     getEnv("ADMIN_SUBJECT", "admin"),
		DBDSN:            os.Getenv("DB_DSN"),
		ScraperURL:       os.Getenv("SCRAPER_URL"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "json"),
	}

	if cfg.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}

	var err error
	if cfg.TokenTTL, err = getDuration("TOKEN_TTL", 30*time.Minute); err != nil {
		errs = append(errs, err)
	} else if cfg.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	if cfg.RateLimitRPS, err = getFloat("RATE_LIMIT_RPS", 20); err != nil {
		errs = append(errs, err)
	}
	if cfg.RateLimitBurst, err = getInt("RATE_LIMIT_BURST", 40); err != nil {
		errs = append(errs, err)
	}
	// 0 turns the login limit off.
	if cfg.LoginRateLimit, err = getIntAtLeast("LOGIN_RATE_LIMIT", 10, 0); err != nil {
		errs = append(errs, err)
	}
	if cfg.EnableHSTS, err = getBool("ENABLE_HSTS", false); err != nil {
		errs = append(errs, err)
	}
	if cfg.TrustProxyHeaders, err = getBool("TRUST_PROXY_HEADERS", false); err != nil {
		errs = append(errs, err)
	}
	cfg.CORSAllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))

	if cfg.AuthUsername == "" {
		errs = append(errs, errors.New("AUTH_USERNAME must not be empty"))
	}
	if cfg.AuthPasswordHash != "" && !crypto.IsBcryptHash(cfg.AuthPasswordHash) {
		errs = append(errs, errors.New("AUTH_PASSWORD_HASH must be a bcrypt hash"))
	}
	if cfg.AdminSubject == "" {
		errs = append(errs, errors.New("ADMIN_SUBJECT must not be empty"))
	}
	switch cfg.LogFormat {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be json or console, got %q", cfg.LogFormat))
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func getInt(key string, def int) (int, error) {
	return getIntAtLeast(key, def, 1)
}

func getIntAtLeast(key string, def, min int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < min {
		if min == 1 {
			return 0, fmt.Errorf("%s must be a positive integer, got %q", key, v)
		}
		return 0, fmt.Errorf("%s must be an integer >= %d, got %q", key, min, v)
	}
	return n, nil
}

func getFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("%s must be a positive number, got %q", key, v)
	}
	return f, nil
}

func getBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// RedactDSN hides the credentials of a connection string for logging.
func RedactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
