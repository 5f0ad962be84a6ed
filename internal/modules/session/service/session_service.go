package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	plan "apnea/internal/modules/plan/domain"
	"apnea/internal/modules/session/domain"
	sessionout "apnea/internal/modules/session/port/out"
	"apnea/internal/platform/clock"
	apperrors "apnea/internal/platform/errors"
	"apnea/internal/platform/id"
	applog "apnea/internal/platform/log"
)

const dateLayout = "2006-01-02"

type SessionService struct {
	clock   clock.Clock
	idGen   id.Generator
	journal sessionout.JournalStore
	records sessionout.RecordSink
	plans   sessionout.PlanSource
}

func NewSessionService(clock clock.Clock, idGen id.Generator, journal sessionout.JournalStore, records sessionout.RecordSink, plans sessionout.PlanSource) *SessionService {
	return &SessionService{clock: clock, idGen: idGen, journal: journal, records: records, plans: plans}
}

func (s *SessionService) dateKey(date string) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return clock.Today(s.clock).Format(dateLayout), nil
	}
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", fmt.Errorf("%w: date %q, want YYYY-MM-DD", apperrors.ErrInvalidInput, date)
	}
	return t.Format(dateLayout), nil
}

// Prepare builds the plan for a run. An empty session type picks the focus
// scheduled for date.
func (s *SessionService) Prepare(ctx context.Context, sessionType, date string, maxHold *int) (plan.Plan, string, bool, error) {
	key, err := s.dateKey(date)
	if err != nil {
		return plan.Plan{}, "", false, err
	}
	if strings.TrimSpace(sessionType) == "" {
		focus, ok, err := s.records.ScheduledFocus(ctx, key)
		if err != nil {
			return plan.Plan{}, "", false, err
		}
		if !ok {
			return plan.Plan{}, "", false, fmt.Errorf("%w: nothing scheduled on %s", apperrors.ErrNotFound, key)
		}
		sessionType = focus
	}
	p, missing, err := s.plans.Build(ctx, sessionType, maxHold)
	if err != nil {
		return plan.Plan{}, "", false, err
	}
	return p, key, missing, nil
}

// Finish stores a completed summary: the day's record and a journal note.
// Summaries with no elapsed time are dropped and report false.
func (s *SessionService) Finish(ctx context.Context, date string, summary domain.Summary, notes string) (domain.JournalEntry, bool, error) {
	if summary.TotalTime <= 0 {
		return domain.JournalEntry{}, false, nil
	}
	key, err := s.dateKey(date)
	if err != nil {
		return domain.JournalEntry{}, false, err
	}
	entryID := summary.ID
	if entryID == "" {
		entryID = s.idGen.New()
	}
	if summary.StartedAt.IsZero() {
		summary.StartedAt = s.clock.Now()
	}
	if summary.EndedAt.IsZero() {
		summary.EndedAt = summary.StartedAt.Add(time.Duration(summary.TotalTime) * time.Second)
	}
	entry := domain.NewJournalEntry(entryID, key, summary)
	entry.Notes = notes

	logger := applog.WithComponent("session")
	best, err := s.records.RecordResult(ctx, key, summary.Focus, summary.TotalTime, summary.BestHold())
	if err != nil {
		logger.Warn().Err(err).Str("date", key).Msg("record session result")
		return domain.JournalEntry{}, false, fmt.Errorf("record session: %w", err)
	}
	entry.PersonalBest = best
	path, err := s.journal.Save(ctx, entry)
	if err != nil {
		logger.Warn().Err(err).Str("id", entryID).Msg("write journal note")
		return domain.JournalEntry{}, true, fmt.Errorf("journal session: %w", err)
	}
	entry.Path = path
	logger.Info().Str("id", entryID).Str("focus", entry.Focus).Int("total_time", entry.TotalTime).Msg("session saved")
	return entry, true, nil
}

// Journal lists notes newest first; limit <= 0 returns all.
func (s *SessionService) Journal(ctx context.Context, limit int) ([]domain.JournalEntry, error) {
	entries, err := s.journal.List(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Drive owns rt until the session completes, is reset, ticks closes or ctx
// ends. Each received tick is one second; ticks arriving while not Active are
// dropped. Rejected commands are logged and the loop continues.
func Drive(ctx context.Context, rt *domain.Runtime, ticks <-chan time.Time, commands <-chan domain.Command) error {
	logger := applog.WithComponent("driver")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-ticks:
			if !ok {
				return nil
			}
			if rt.State().Status == domain.StatusActive {
				if err := rt.Tick(); err != nil {
					return err
				}
			}
		case cmd, ok := <-commands:
			if !ok {
				commands = nil
				continue
			}
			if err := rt.Apply(cmd); err != nil {
				if !errors.Is(err, apperrors.ErrInvalidOperation) {
					return err
				}
				logger.Debug().Err(err).Str("command", string(cmd)).Msg("command rejected")
			}
		}
		switch rt.State().Status {
		case domain.StatusCompleted, domain.StatusIdle:
			return nil
		}
	}
}

type RunResult struct {
	Summary   domain.Summary
	Completed bool
	Entry     domain.JournalEntry
	Recorded  bool
}

// Run starts p on a fresh runtime, drives it and finishes it once it
// completes. A run cut short by ctx, a reset or ticks closing is not saved.
func (s *SessionService) Run(ctx context.Context, p plan.Plan, date string, strict bool, ticks <-chan time.Time, commands <-chan domain.Command, observer func(domain.State)) (RunResult, error) {
	rt := domain.NewRuntime(
		domain.WithStrict(strict),
		domain.WithClock(s.clock),
		domain.WithObserver(observer),
	)
	if err := rt.Start(p); err != nil {
		return RunResult{}, err
	}
	if err := Drive(ctx, rt, ticks, commands); err != nil {
		return RunResult{}, err
	}
	summary, ok := rt.Summary()
	if !ok {
		return RunResult{}, nil
	}
	result := RunResult{Summary: summary, Completed: true}
	entry, recorded, err := s.Finish(ctx, date, summary, "")
	result.Entry = entry
	result.Recorded = recorded
	return result, err
}
