package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"apnea/internal/bootstrap"
	"apnea/internal/platform/config"
	applog "apnea/internal/platform/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	dataDir  string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "apnea",
		Short:         "Breath-hold training tables and live sessions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.dataDir, "data", config.DefaultDataDir(), "data directory")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(newTemplatesCmd(opts))
	root.AddCommand(newPlanCmd(opts))
	root.AddCommand(newRunCmd(opts))
	root.AddCommand(newScheduleCmd(opts))
	root.AddCommand(newRecordCmd(opts))
	root.AddCommand(newMaxHoldCmd(opts))
	root.AddCommand(newProgressCmd(opts))
	root.AddCommand(newProfileCmd(opts))
	root.AddCommand(newCustomCmd(opts))
	root.AddCommand(newJournalCmd(opts))
	root.AddCommand(newReindexCmd(opts))
	return root
}

type loadOptions struct {
	// tui sends logs to the log file so they do not tear the alt screen.
	tui bool
	box string
}

// loadApp returns the wired app and a cleanup func that closes the index and
// any log file.
func loadApp(ctx context.Context, opts *rootOptions, lo loadOptions) (*bootstrap.App, func(), error) {
	cfg, err := config.Load(opts.dataDir)
	if err != nil {
		return nil, nil, err
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if lo.box != "" {
		cfg.BoxBreathing = lo.box
		if err := cfg.Validate(); err != nil {
			return nil, nil, err
		}
	}

	var logOut io.Writer = os.Stderr
	var logFile *os.File
	if lo.tui {
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create data dir: %w", err)
		}
		logFile, err = os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log: %w", err)
		}
		logOut = logFile
	}
	applog.Configure(applog.Config{Level: cfg.LogLevel, Output: logOut})

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		if logFile != nil {
			_ = logFile.Close()
		}
		return nil, nil, err
	}
	cleanup := func() {
		_ = app.Close()
		if logFile != nil {
			_ = logFile.Close()
		}
	}
	return app, cleanup, nil
}

// withApp is the common RunE body for commands that only need the app.
func withApp(opts *rootOptions, fn func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		app, cleanup, err := loadApp(ctx, opts, loadOptions{})
		if err != nil {
			return err
		}
		defer cleanup()
		return fn(ctx, cmd, app, args)
	}
}
