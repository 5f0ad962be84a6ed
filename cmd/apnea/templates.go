package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"apnea/internal/bootstrap"
	"apnea/internal/platform/duration"
)

func newTemplatesCmd(opts *rootOptions) *cobra.Command {
	templates := &cobra.Command{Use: "templates", Short: "Session templates"}

	templates.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List session templates by category",
		RunE: withApp(opts, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			list, err := app.CatalogCLI.List(ctx)
			if err != nil {
				return err
			}
			for _, t := range list {
				mark := ""
				if t.Overridden {
					mark = " *"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-14s %-22s %s%s\n", t.Category, t.Name, t.Strategy, mark)
			}
			return nil
		}),
	})

	templates.AddCommand(&cobra.Command{
		Use:   "show <name>",
		Short: "Print a template as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, args []string) error {
			raw, err := app.CatalogCLI.ShowYAML(ctx, args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), raw)
			return nil
		}),
	})

	var file string
	set := &cobra.Command{
		Use:   "set <name> --file <template.yaml>",
		Short: "Override template parameters",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, args []string) error {
			if file == "" {
				return fmt.Errorf("--file is required")
			}
			raw, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read %s: %w", file, err)
			}
			out, err := app.CatalogCLI.Apply(ctx, args[0], raw)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "template %s updated\n", out.Name)
			return nil
		}),
	}
	set.Flags().StringVar(&file, "file", "", "YAML file with the fields to change")
	templates.AddCommand(set)

	templates.AddCommand(&cobra.Command{
		Use:   "reset <name>",
		Short: "Restore the built-in template",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, args []string) error {
			out, err := app.CatalogCLI.Reset(ctx, args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "template %s reset\n", out.Name)
			return nil
		}),
	})
	return templates
}

func newPlanCmd(opts *rootOptions) *cobra.Command {
	var maxHold int
	var box string
	cmd := &cobra.Command{
		Use:   "plan <session-type>",
		Short: "Print the phase list for a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, cleanup, err := loadApp(ctx, opts, loadOptions{box: box})
			if err != nil {
				return err
			}
			defer cleanup()
			out, err := app.PlanCLI.Preview(ctx, args[0], maxHold)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if out.MaxHoldMissing {
				_, _ = fmt.Fprintf(w, "%s needs a max hold: run `apnea maxhold <seconds>` or pass --max-hold\n", out.Plan.SessionType)
				return nil
			}
			_, _ = fmt.Fprintf(w, "%s  max hold %s  total %s", out.Plan.SessionType, duration.Format(out.Plan.MaxHold), duration.Format(out.TotalSeconds))
			if out.Indefinite > 0 {
				_, _ = fmt.Fprintf(w, " + %d open-ended", out.Indefinite)
			}
			_, _ = fmt.Fprintln(w)
			for i, ph := range out.Plan.Phases {
				length := "  open"
				if ph.Duration > 0 {
					length = duration.Format(ph.Duration)
				}
				_, _ = fmt.Fprintf(w, "%3d  %-21s %s  %s\n", i+1, ph.Kind, length, ph.Description)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&maxHold, "max-hold", 0, "max hold in seconds (defaults to the profile's)")
	cmd.Flags().StringVar(&box, "box", "", "box breathing layout: merged|discrete")
	return cmd
}
