package main

import (
	"errors"
	"os"

	"github.com/Lorrany-Marra/tech-challenge-fase1/internal/config"
)

var errMissingDSN = errors.New("DB_DSN is required to run migrations")

func loadEnvFiles() {
	config.LoadEnvFiles()
}

func migrationsDir() string {
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return "db/migrations"
}

// databaseDSN returns DB_DSN. Scrape runs are kept in memory when it is unset,
// so migrating without it is a configuration mistake.
func databaseDSN() (string, error) {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		return "", errMissingDSN
	}
	return dsn, nil
}
