package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"encore/internal/app/stats"
	"encore/internal/store"
	"encore/shared/go/config"
	"encore/shared/go/database"
	"encore/shared/go/logging"
)

type rootOptions struct {
	databaseURL string
	timezone    string
	logLevel    string

	db    *sql.DB
	stats stats.Service
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "encorectl",
		Short:         "Inspect setlist statistics",
		Long:          `Computes song, venue and tour statistics from the archive and prints them as tables.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.connect(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if opts.db != nil {
				return opts.db.Close()
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.databaseURL, "database-url", "", "PostgreSQL URL (defaults to the service configuration)")
	cmd.PersistentFlags().StringVar(&opts.timezone, "timezone", "", "time zone whose calendar defines whole days")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level")

	cmd.AddCommand(
		newSongsCmd(opts),
		newVenuesCmd(opts),
		newToursCmd(opts),
		newGapCmd(opts),
	)
	return cmd
}

// connect opens the database and builds the statistics service.
func (o *rootOptions) connect(ctx context.Context) error {
	logging.SetGlobalLogger(logging.New(logging.Config{Level: o.logLevel, Format: "text"}))

	dsn, loc, err := o.settings()
	if err != nil {
		return err
	}

	db, err := database.Open(ctx, dsn, database.CLIOptions())
	if err != nil {
		return err
	}

	o.db = db
	o.stats = stats.New(store.New(db), stats.WithLocation(loc))
	return nil
}

// settings layers the flags over the shared configuration, so a URL given on
// the command line still honours STATS_TIMEZONE and the config file.
func (o *rootOptions) settings() (string, *time.Location, error) {
	cfg, err := config.Read()
	if err != nil {
		return "", nil, err
	}

	if o.databaseURL != "" {
		cfg.Database.URL = o.databaseURL
	}
	if o.timezone != "" {
		cfg.Stats.Timezone = o.timezone
	}

	if err := cfg.Validate(); err != nil {
		return "", nil, err
	}

	loc, err := cfg.Stats.Location()
	if err != nil {
		return "", nil, fmt.Errorf("load timezone %q: %w", cfg.Stats.Timezone, err)
	}
	return cfg.Database.URL, loc, nil
}
