package domain_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"apnea/internal/modules/progress/domain"
)

func intp(v int) *int { return &v }

func TestAggregateEmpty(t *testing.T) {
	t.Parallel()

	got := domain.Aggregate(nil)
	want := domain.Stats{Trend: []domain.TrendPoint{}, FocusDistribution: []domain.FocusCount{}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected empty stats (-want +got):\n%s", diff)
	}
}

func TestAggregateStats(t *testing.T) {
	t.Parallel()

	records := []domain.Record{
		{Date: "2026-03-03", Focus: "O₂ Tolerance", Completed: true, SessionTime: 1200, ActualMaxHold: intp(200)},
		{Date: "2026-03-01", Focus: "CO₂ Tolerance", Completed: true, SessionTime: 555, ActualMaxHold: intp(181)},
		{Date: "2026-03-02", Focus: "Breath Control"},
		{Date: "2026-03-04", Focus: "CO₂ Tolerance", Completed: true, SessionTime: 600, ActualMaxHold: intp(0)},
	}
	got := domain.Aggregate(records)
	want := domain.Stats{
		TotalSessions:        4,
		CompletedSessions:    3,
		CompletionRate:       75,
		BestMaxHold:          200,
		AverageMaxHold:       191,
		TotalTrainingSeconds: 2355,
		Trend:                []domain.TrendPoint{{Date: "2026-03-01", MaxHold: 181}, {Date: "2026-03-03", MaxHold: 200}},
		FocusDistribution:    []domain.FocusCount{{Focus: "CO₂ Tolerance", Count: 2}, {Focus: "O₂ Tolerance", Count: 1}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected stats (-want +got):\n%s", diff)
	}
}

func TestAggregateTrendKeepsLastTen(t *testing.T) {
	t.Parallel()

	var records []domain.Record
	for day := 12; day >= 1; day-- {
		records = append(records, domain.Record{Date: fmt.Sprintf("2026-03-%02d", day), ActualMaxHold: intp(100 + day)})
	}
	got := domain.Aggregate(records).Trend
	if len(got) != domain.TrendLength {
		t.Fatalf("expected %d points, got %d", domain.TrendLength, len(got))
	}
	if got[0].Date != "2026-03-03" || got[9].Date != "2026-03-12" {
		t.Fatalf("unexpected trend window %+v", got)
	}
}
