package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"encore/internal/store"
	"encore/shared/go/config"
	"encore/shared/go/database"
	"encore/shared/go/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New(logging.Config{}).Fatal(err, "load configuration")
	}

	logger := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	logging.SetGlobalLogger(logger)
	log := logger.Component("encore")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.Database.URL, database.ServerOptions())
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer db.Close()

	dataStore := store.New(db)

	if cfg.SeedDemo {
		if err := bootstrapDemoData(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("seed demo data")
		}
	}

	handler, err := newHTTPHandler(cfg, db, dataStore)
	if err != nil {
		log.Fatal().Err(err).Msg("build http handler")
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown http server")
		}
	}()

	log.Info().Str("addr", srv.Addr).Msg("API listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server error")
	}
	log.Info().Msg("server stopped")
}
