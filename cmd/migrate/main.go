package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"encore/shared/go/config"
	"encore/shared/go/logging"
)

func main() {
	logging.SetGlobalLogger(logging.New(logging.Config{Format: "text"}))

	if len(os.Args) != 2 || (os.Args[1] != "up" && os.Args[1] != "down") {
		log.Fatal().Msg("usage: migrate [up|down]")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load configuration")
	}

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("create postgres driver")
	}

	sourceURL, err := migrationsSource()
	if err != nil {
		log.Fatal().Err(err).Msg("locate migrations")
	}

	m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		log.Fatal().Err(err).Msg("create migrate instance")
	}

	if os.Args[1] == "up" {
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal().Err(err).Msg("apply migrations")
		}
		log.Info().Msg("migrations applied")
		return
	}

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal().Err(err).Msg("roll back migrations")
	}
	log.Info().Msg("migrations rolled back")
}

// migrationsSource resolves the migrations directory from MIGRATIONS_DIR, the
// working directory, or two levels up when run from cmd/migrate.
func migrationsSource() (string, error) {
	dir := os.Getenv("MIGRATIONS_DIR")
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		dir = filepath.Join(wd, "migrations")
		if _, err := os.Stat(dir); err != nil {
			dir = filepath.Join(filepath.Dir(filepath.Dir(wd)), "migrations")
		}
	}

	absPath, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve migrations path: %w", err)
	}
	return "file://" + filepath.ToSlash(absPath), nil
}
