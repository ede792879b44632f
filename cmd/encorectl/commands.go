package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"encore/internal/app/stats"
	"encore/internal/catalog"
	aggregate "encore/internal/stats"
)

func newSongsCmd(opts *rootOptions) *cobra.Command {
	var sortBy string

	cmd := &cobra.Command{
		Use:   "songs",
		Short: "List songs with play counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := catalog.ParsePolicy(sortBy)
			if err != nil {
				return fmt.Errorf("%w: %q (want one of %v)", err, sortBy, catalog.Policies())
			}

			reports, err := opts.stats.Songs(cmd.Context(), policy)
			if err != nil {
				return err
			}
			return writeSongs(cmd.OutOrStdout(), reports)
		},
	}

	cmd.Flags().StringVar(&sortBy, "sort", string(catalog.PolicyByPlayCount), "sort policy")
	return cmd
}

func newVenuesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "venues",
		Short: "Show and song counts per location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			venues, err := opts.stats.Venues(cmd.Context())
			if err != nil {
				return err
			}
			return writeVenues(cmd.OutOrStdout(), venues)
		},
	}
}

func newToursCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tours",
		Short: "Show and song counts per tour",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tours, err := opts.stats.Tours(cmd.Context())
			if err != nil {
				return err
			}
			return writeTours(cmd.OutOrStdout(), tours)
		},
	}
}

func newGapCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "gap <song-id>",
		Short: "How long since a song was last played",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid song id %q: %w", args[0], err)
			}

			report, err := opts.stats.Gap(cmd.Context(), id)
			if err != nil {
				return err
			}
			return writeGap(cmd.OutOrStdout(), report, opts.stats.Now())
		},
	}
}

func writeSongs(out io.Writer, reports []stats.SongReport) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tPLAYS\tLAST PLAYED\tDAYS SINCE")
	for _, r := range reports {
		last, since := "-", "-"
		if r.Stats.LastPlayed != nil {
			last = r.Stats.LastPlayed.Date.Format(time.DateOnly)
		}
		if r.Stats.DaysSinceLastPlayed != nil {
			since = humanize.Comma(int64(*r.Stats.DaysSinceLastPlayed))
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n", r.Song.ID, r.Song.Title, r.Stats.PlayCount, last, since)
	}
	return w.Flush()
}

func writeVenues(out io.Writer, venues []aggregate.VenueStats) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLOCATION\tSHOWS\tSONGS\tLAST SHOW")
	for _, v := range venues {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\n",
			v.LocationID, v.LocationName, v.ShowCount, v.SongCount, v.LastShow.Format(time.DateOnly))
	}
	return w.Flush()
}

func writeTours(out io.Writer, tours []aggregate.TourStats) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTOUR\tSHOWS\tSONGS\tUNIQUE")
	for _, t := range tours {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\n",
			t.TourID, t.TourName, t.ShowCount, t.SongCount, t.UniqueSongCount)
	}
	return w.Flush()
}

func writeGap(out io.Writer, report stats.GapReport, now time.Time) error {
	if !report.Played || report.Gap == nil {
		_, err := fmt.Fprintf(out, "%s: not yet played\n", report.Song.Title)
		return err
	}

	gap := report.Gap
	_, err := fmt.Fprintf(out, "%s: %s days since last played (%s), %s\n",
		report.Song.Title,
		humanize.Comma(int64(gap.DaysSince)),
		humanize.RelTime(gap.LastPlayed, now, "ago", "from now"),
		pluralPlays(gap.PlayCount),
	)
	return err
}

func pluralPlays(n int) string {
	if n == 1 {
		return "played once"
	}
	return "played " + humanize.Comma(int64(n)) + " times"
}
