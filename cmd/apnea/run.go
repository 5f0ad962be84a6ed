package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"apnea/internal/bootstrap"
	sessiondomain "apnea/internal/modules/session/domain"
	sessiondto "apnea/internal/modules/session/dto"
	"apnea/internal/platform/duration"
	apperrors "apnea/internal/platform/errors"
)

func newRunCmd(opts *rootOptions) *cobra.Command {
	var date string
	var maxHold int
	var plain bool

	cmd := &cobra.Command{
		Use:   "run [session-type]",
		Short: "Run a session live (defaults to the day's scheduled focus)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			app, cleanup, err := loadApp(ctx, opts, loadOptions{tui: !plain})
			if err != nil {
				return err
			}
			defer cleanup()

			sessionType := ""
			if len(args) == 1 {
				sessionType = args[0]
			}

			if !plain && sessionType == "" && date == "" && maxHold <= 0 {
				return bootstrap.RunTUI(app, nil, "")
			}
			prepared, err := app.SessionCLI.Prepare(ctx, sessionType, date, maxHold)
			if errors.Is(err, apperrors.ErrNotFound) && !plain {
				return bootstrap.RunTUI(app, nil, date)
			}
			if err != nil {
				return err
			}
			if plain {
				return runPlain(ctx, cmd.OutOrStdout(), cmd.InOrStdin(), app, prepared)
			}
			return bootstrap.RunTUI(app, &prepared, prepared.Date)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "record day YYYY-MM-DD (defaults to today)")
	cmd.Flags().IntVar(&maxHold, "max-hold", 0, "max hold in seconds (defaults to the profile's)")
	cmd.Flags().BoolVar(&plain, "plain", false, "line-oriented runner without the terminal UI")
	return cmd
}

// runPlain reads one command per line from in (p, n, c, m, e, r) and prints
// every phase change.
func runPlain(ctx context.Context, w io.Writer, in io.Reader, app *bootstrap.App, prepared sessiondto.PrepareOutput) error {
	if prepared.MaxHoldMissing {
		return fmt.Errorf("%w: run `apnea maxhold <seconds>` first", apperrors.ErrMaxHoldRequired)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	commands := readCommands(ctx, in, w)

	ticker := time.NewTicker(app.Config.TickInterval)
	defer ticker.Stop()

	p := prepared.Plan
	_, _ = fmt.Fprintf(w, "%s  %d phases  %s\n", p.SessionType, len(p.Phases), duration.Format(p.TotalSeconds()))
	last := -1
	status := sessiondomain.StatusIdle
	observer := func(s sessiondomain.State) {
		if s.Status != status {
			status = s.Status
			if status == sessiondomain.StatusPaused {
				_, _ = fmt.Fprintln(w, "paused")
			}
		}
		if s.PhaseIndex == last || s.Status == sessiondomain.StatusCompleted || s.Status == sessiondomain.StatusIdle {
			return
		}
		last = s.PhaseIndex
		ph := p.Phases[s.PhaseIndex]
		length := "open"
		if ph.Duration > 0 {
			length = duration.Format(ph.Duration)
		}
		_, _ = fmt.Fprintf(w, "[%d/%d] %s %s  %s\n", s.PhaseIndex+1, s.TotalPhases, ph.Kind, length, ph.Description)
		switch {
		case ph.IsMaxHold():
			_, _ = fmt.Fprintln(w, "  type m when you breathe")
		case ph.IsStretchConfirmation():
			_, _ = fmt.Fprintln(w, "  type c when the stretch is done")
		}
	}

	out, err := app.SessionCLI.Run(ctx, sessiondto.RunInput{
		Plan:     p,
		Date:     prepared.Date,
		Strict:   app.Config.StrictRuntime,
		Ticks:    ticker.C,
		Commands: commands,
		Observer: observer,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			_, _ = fmt.Fprintln(w, "interrupted, session not saved")
			return nil
		}
		return err
	}
	if !out.Completed {
		_, _ = fmt.Fprintln(w, "session not saved")
		return nil
	}
	s := out.Summary
	_, _ = fmt.Fprintf(w, "done: %s, %d/%d phases", duration.Format(s.TotalTime), s.CompletedPhases, s.TotalPhases)
	if best := s.BestHold(); best > 0 {
		_, _ = fmt.Fprintf(w, ", best hold %s", duration.Format(best))
	}
	if out.Finish.PersonalBest {
		_, _ = fmt.Fprint(w, " (personal best)")
	}
	_, _ = fmt.Fprintln(w)
	if out.Finish.Path != "" {
		_, _ = fmt.Fprintf(w, "journal: %s\n", out.Finish.Path)
	}
	return nil
}

// readCommands parses one command per line until in runs dry or ctx ends.
// A closable in is closed once ctx ends so a pending read returns; the
// channel closes when the reader stops.
func readCommands(ctx context.Context, in io.Reader, w io.Writer) <-chan sessiondomain.Command {
	commands := make(chan sessiondomain.Command)
	if c, ok := in.(io.Closer); ok {
		context.AfterFunc(ctx, func() { _ = c.Close() })
	}
	go func() {
		defer close(commands)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			c, err := sessiondomain.ParseCommand(scanner.Text())
			if err != nil {
				_, _ = fmt.Fprintln(w, err)
				continue
			}
			select {
			case commands <- c:
			case <-ctx.Done():
				return
			}
		}
	}()
	return commands
}
