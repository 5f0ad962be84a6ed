package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"apnea/internal/bootstrap"
	"apnea/internal/platform/duration"
)

func newProgressCmd(opts *rootOptions) *cobra.Command {
	var profileID string
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Training statistics for a profile",
		RunE: withApp(opts, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			out, err := app.ProgressCLI.Stats(ctx, profileID)
			if err != nil {
				return err
			}
			s := out.Stats
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "%s\n", out.Profile)
			_, _ = fmt.Fprintf(w, "sessions   %d/%d completed (%d%%)\n", s.CompletedSessions, s.TotalSessions, s.CompletionRate)
			_, _ = fmt.Fprintf(w, "best hold  %s\n", duration.Format(s.BestMaxHold))
			_, _ = fmt.Fprintf(w, "avg hold   %s\n", duration.Format(s.AverageMaxHold))
			_, _ = fmt.Fprintf(w, "trained    %dmin\n", s.TotalTrainingSeconds/60)
			if len(s.Trend) > 0 {
				_, _ = fmt.Fprintln(w, "\ntrend")
				for _, p := range s.Trend {
					_, _ = fmt.Fprintf(w, "  %s  %s  %s\n", p.Date, duration.Format(p.MaxHold), strings.Repeat("▇", max(p.MaxHold/15, 1)))
				}
			}
			if len(s.FocusDistribution) > 0 {
				_, _ = fmt.Fprintln(w, "\nfocus")
				for _, f := range s.FocusDistribution {
					_, _ = fmt.Fprintf(w, "  %-24s %d\n", f.Focus, f.Count)
				}
			}
			return nil
		}),
	}
	cmd.Flags().StringVar(&profileID, "profile", "", "profile id (defaults to the current profile)")
	return cmd
}

func newJournalCmd(opts *rootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "List journaled sessions, newest first",
		RunE: withApp(opts, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			entries, err := app.SessionCLI.Journal(ctx, limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions journaled")
				return nil
			}
			for _, e := range entries {
				flags := ""
				if e.EndedEarly {
					flags += " ended-early"
				}
				if e.PersonalBest {
					flags += " pb"
				}
				hold := ""
				if e.BestHold > 0 {
					hold = " hold " + duration.Format(e.BestHold)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s %-22s %s %d/%d%s%s\n  %s\n",
					e.Date, e.StartedAt.Format("15:04"), e.Focus, duration.Format(e.TotalTime),
					e.CompletedPhases, e.TotalPhases, hold, flags, e.Path)
			}
			return nil
		}),
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "entries to show, 0 for all")
	return cmd
}

func newReindexCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the SQLite record index from the profile store",
		RunE: withApp(opts, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			if err := app.ProfileCLI.Reindex(ctx); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "reindex completed")
			return nil
		}),
	}
}
