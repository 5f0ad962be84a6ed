package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"apnea/internal/bootstrap"
	plan "apnea/internal/modules/plan/domain"
	profiledto "apnea/internal/modules/profile/dto"
	"apnea/internal/platform/duration"
)

func newScheduleCmd(opts *rootOptions) *cobra.Command {
	schedule := &cobra.Command{Use: "schedule", Short: "Training calendar"}

	var from, to string
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Add rotation days to the calendar without touching existing ones",
		RunE: withApp(opts, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			out, err := app.ProfileCLI.GenerateSchedule(ctx, from, to)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %d days (%d in range)\n", out.Added, len(out.Records))
			return nil
		}),
	}
	generate.Flags().StringVar(&from, "from", "", "first day YYYY-MM-DD (defaults to today)")
	generate.Flags().StringVar(&to, "to", "", "last day YYYY-MM-DD (defaults to 30 days later)")

	var showFrom, showTo string
	show := &cobra.Command{
		Use:   "show",
		Short: "List calendar days",
		RunE: withApp(opts, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			records, err := app.ProfileCLI.Records(ctx, showFrom, showTo)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no scheduled days")
				return nil
			}
			for _, r := range records {
				printRecord(cmd.OutOrStdout(), r)
			}
			return nil
		}),
	}
	show.Flags().StringVar(&showFrom, "from", "", "first day YYYY-MM-DD")
	show.Flags().StringVar(&showTo, "to", "", "last day YYYY-MM-DD")

	setDay := &cobra.Command{
		Use:   "set-day <weekday> [session-type]",
		Short: "Change the focus generated for a weekday; no type restores the default",
		Args:  cobra.RangeArgs(1, 2),
		RunE: withApp(opts, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, args []string) error {
			sessionType := ""
			if len(args) == 2 {
				sessionType = args[1]
			}
			out, err := app.ProfileCLI.SetDay(ctx, args[0], sessionType)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "weekly overrides for %s: %v\n", out.Name, out.WeeklySchedule)
			return nil
		}),
	}

	schedule.AddCommand(generate, show, setDay)
	return schedule
}

func newRecordCmd(opts *rootOptions) *cobra.Command {
	record := &cobra.Command{Use: "record", Short: "Edit a calendar day"}

	record.AddCommand(&cobra.Command{
		Use:   "show <date>",
		Short: "Show one day",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, args []string) error {
			r, err := app.ProfileCLI.Record(ctx, args[0])
			if err != nil {
				return err
			}
			printRecord(cmd.OutOrStdout(), r)
			if r.Details != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", r.Details)
			}
			if r.Notes != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  notes: %s\n", r.Notes)
			}
			return nil
		}),
	})

	record.AddCommand(&cobra.Command{
		Use:   "set-max-hold <date> <seconds|m:ss|clear>",
		Short: "Record the max hold achieved on a day",
		Args:  cobra.ExactArgs(2),
		RunE: withApp(opts, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, args []string) error {
			var out profiledto.UpdateRecordOutput
			var err error
			if args[1] == "clear" {
				out, err = app.ProfileCLI.ClearRecordMaxHold(ctx, args[0])
			} else {
				seconds, perr := duration.Parse(args[1])
				if perr != nil {
					return perr
				}
				out, err = app.ProfileCLI.SetRecordMaxHold(ctx, args[0], seconds)
			}
			if err != nil {
				return err
			}
			printRecord(cmd.OutOrStdout(), out.Record)
			if out.PersonalBest && out.MaxHold != nil {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "new personal best, max hold is now %s\n", duration.Format(*out.MaxHold))
			}
			return nil
		}),
	})

	record.AddCommand(&cobra.Command{
		Use:   "toggle <date>",
		Short: "Flip a day's completed flag",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, args []string) error {
			r, err := app.ProfileCLI.Toggle(ctx, args[0])
			if err != nil {
				return err
			}
			printRecord(cmd.OutOrStdout(), r)
			return nil
		}),
	})

	record.AddCommand(&cobra.Command{
		Use:   "note <date> <text>",
		Short: "Replace a day's notes",
		Args:  cobra.MinimumNArgs(2),
		RunE: withApp(opts, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, args []string) error {
			out, err := app.ProfileCLI.Note(ctx, args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			printRecord(cmd.OutOrStdout(), out.Record)
			return nil
		}),
	})
	return record
}

func newMaxHoldCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "maxhold [seconds|m:ss]",
		Short: "Show or set the current profile's max hold",
		Args:  cobra.MaximumNArgs(1),
		RunE: withApp(opts, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, args []string) error {
			var out profiledto.ProfileOutput
			var err error
			if len(args) == 0 {
				out, err = app.ProfileCLI.Current(ctx)
			} else {
				seconds, perr := duration.Parse(args[0])
				if perr != nil {
					return perr
				}
				out, err = app.ProfileCLI.SetMaxHold(ctx, seconds)
			}
			if err != nil {
				return err
			}
			if !out.HasMaxHold {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: no max hold set\n", out.Name)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: max hold %s (%ds)\n", out.Name, duration.Format(out.MaxHold), out.MaxHold)
			return nil
		}),
	}
}

func newProfileCmd(opts *rootOptions) *cobra.Command {
	profile := &cobra.Command{Use: "profile", Short: "Training profiles"}

	profile.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List profiles",
		RunE: withApp(opts, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			profiles, err := app.ProfileCLI.List(ctx)
			if err != nil {
				return err
			}
			for _, p := range profiles {
				mark := " "
				if p.Current {
					mark = "*"
				}
				hold := "--:--"
				if p.HasMaxHold {
					hold = duration.Format(p.MaxHold)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %-28s %-16s %s  %d/%d done\n", mark, p.ID, p.Name, hold, p.Completed, p.Sessions)
			}
			return nil
		}),
	})

	var createMaxHold int
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a profile with a fresh 31-day calendar",
		Args:  cobra.MinimumNArgs(1),
		RunE: withApp(opts, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, args []string) error {
			out, err := app.ProfileCLI.Create(ctx, strings.Join(args, " "), createMaxHold)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", out.Name, out.ID)
			return nil
		}),
	}
	create.Flags().IntVar(&createMaxHold, "max-hold", 0, "initial max hold in seconds")
	profile.AddCommand(create)

	profile.AddCommand(&cobra.Command{
		Use:   "use <id|name>",
		Short: "Switch the current profile",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, args []string) error {
			out, err := app.ProfileCLI.Use(ctx, args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "using %s\n", out.Name)
			return nil
		}),
	})

	profile.AddCommand(&cobra.Command{
		Use:   "delete <id|name>",
		Short: "Delete a profile",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, args []string) error {
			if err := app.ProfileCLI.Delete(ctx, args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		}),
	})

	profile.AddCommand(&cobra.Command{
		Use:   "export <file>",
		Short: "Write the current profile's records as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, args []string) error {
			out, err := app.ProfileCLI.Export(ctx, args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d sessions to %s\n", out.Sessions, out.Path)
			return nil
		}),
	})

	profile.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: "Replace the current profile's records from JSON",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, args []string) error {
			out, err := app.ProfileCLI.Import(ctx, args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %d sessions from %s\n", out.Sessions, out.Path)
			return nil
		}),
	})
	return profile
}

func newCustomCmd(opts *rootOptions) *cobra.Command {
	custom := &cobra.Command{Use: "custom", Short: "Custom sessions of the current profile"}

	custom.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List custom sessions",
		RunE: withApp(opts, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			defs, err := app.ProfileCLI.CustomSessions(ctx)
			if err != nil {
				return err
			}
			if len(defs) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no custom sessions")
				return nil
			}
			for _, d := range defs {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-24s %d phases\n", d.Definition.Name, len(d.Definition.Phases))
			}
			return nil
		}),
	})

	var file string
	add := &cobra.Command{
		Use:   "add --file <definition.yaml>",
		Short: "Add or replace a custom session",
		RunE: withApp(opts, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			if file == "" {
				return fmt.Errorf("--file is required")
			}
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("open %s: %w", file, err)
			}
			defer f.Close()
			def, err := decodeDefinition(f)
			if err != nil {
				return err
			}
			out, err := app.ProfileCLI.SaveCustomSession(ctx, profiledto.CustomSessionInput{Definition: def})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", out.Definition.Name)
			return nil
		}),
	}
	add.Flags().StringVar(&file, "file", "", "YAML or JSON definition")
	custom.AddCommand(add)

	custom.AddCommand(&cobra.Command{
		Use:   "remove <name>",
		Short: "Delete a custom session",
		Args:  cobra.MinimumNArgs(1),
		RunE: withApp(opts, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, args []string) error {
			name := strings.Join(args, " ")
			if err := app.ProfileCLI.RemoveCustomSession(ctx, name); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", name)
			return nil
		}),
	})
	return custom
}

// decodeDefinition reads YAML (JSON being a subset) using the same camelCase
// keys as the profile store.
func decodeDefinition(r io.Reader) (plan.CustomSessionDefinition, error) {
	var raw any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return plan.CustomSessionDefinition{}, fmt.Errorf("decode definition: %w", err)
	}
	buf, err := json.Marshal(raw)
	if err != nil {
		return plan.CustomSessionDefinition{}, fmt.Errorf("decode definition: %w", err)
	}
	var def plan.CustomSessionDefinition
	if err := json.Unmarshal(buf, &def); err != nil {
		return plan.CustomSessionDefinition{}, fmt.Errorf("decode definition: %w", err)
	}
	return def, nil
}

func printRecord(w io.Writer, r profiledto.RecordOutput) {
	done := " "
	if r.Completed {
		done = "x"
	}
	hold := ""
	if r.ActualMaxHold != nil {
		hold = "  max " + duration.Format(*r.ActualMaxHold)
	}
	took := ""
	if r.SessionTime > 0 {
		took = "  " + strconv.Itoa(r.SessionTime/60) + "min"
	}
	_, _ = fmt.Fprintf(w, "[%s] %s %-9s %s%s%s\n", done, r.Date, r.Day, r.Focus, hold, took)
}
