package out

import (
	"context"

	plan "apnea/internal/modules/plan/domain"
	"apnea/internal/modules/session/domain"
)

type JournalStore interface {
	Save(ctx context.Context, entry domain.JournalEntry) (string, error)
	List(ctx context.Context) ([]domain.JournalEntry, error)
}

type PlanSource interface {
	// Build reports true when the plan is empty because no max hold is known.
	Build(ctx context.Context, sessionType string, maxHold *int) (plan.Plan, bool, error)
}

type RecordSink interface {
	// ScheduledFocus returns the focus scheduled for date, or false.
	ScheduledFocus(ctx context.Context, date string) (string, bool, error)
	// RecordResult stores a finished run and reports a new personal best.
	RecordResult(ctx context.Context, date, focus string, sessionTime, bestHold int) (bool, error)
}
