// Package database opens the Postgres pool shared by the server and the CLI.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"encore/shared/go/logging"
)

// Options tunes the pool and the startup wait.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	// MaxWait bounds how long Open keeps pinging an unreachable instance.
	// Zero means a single attempt.
	MaxWait        time.Duration
	PingTimeout    time.Duration
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// ServerOptions suits the long-running API process, which may start before
// Postgres accepts connections.
func ServerOptions() Options {
	return Options{
		MaxOpenConns:    20,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
		MaxWait:         30 * time.Second,
		PingTimeout:     5 * time.Second,
		InitialBackoff:  500 * time.Millisecond,
		MaxBackoff:      5 * time.Second,
	}
}

// CLIOptions keeps a one-shot command small and quick to fail.
func CLIOptions() Options {
	return Options{
		MaxOpenConns:   2,
		MaxIdleConns:   1,
		MaxWait:        5 * time.Second,
		PingTimeout:    3 * time.Second,
		InitialBackoff: 250 * time.Millisecond,
		MaxBackoff:     time.Second,
	}
}

// Open connects through the pgx driver and waits until the instance responds.
func Open(ctx context.Context, dsn string, opts Options) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(opts.MaxIdleConns)
	db.SetConnMaxLifetime(opts.ConnMaxLifetime)

	if err := waitForPing(ctx, db, opts, time.Sleep); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

type pinger interface {
	PingContext(ctx context.Context) error
}

// waitForPing pings with exponential backoff until the database answers,
// the caller cancels, or MaxWait elapses.
func waitForPing(ctx context.Context, db pinger, opts Options, sleep func(time.Duration)) error {
	pingTimeout := opts.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 5 * time.Second
	}

	log := logging.WithContext(ctx)
	deadline := time.Now().Add(opts.MaxWait)
	backoff := opts.InitialBackoff
	var lastErr error

	for attempt := 1; ; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = db.PingContext(pingCtx)
		cancel()

		if lastErr == nil {
			if attempt > 1 {
				log.Info().Int("attempt", attempt).Msg("database reachable")
			}
			return nil
		}

		if ctx.Err() != nil || !time.Now().Add(backoff).Before(deadline) {
			break
		}

		log.Warn().
			Err(lastErr).
			Int("attempt", attempt).
			Dur("retry_in", backoff).
			Msg("database not ready, retrying")

		sleep(backoff)
		backoff *= 2
		if opts.MaxBackoff > 0 && backoff > opts.MaxBackoff {
			backoff = opts.MaxBackoff
		}
	}

	return fmt.Errorf("ping database: %w", lastErr)
}
