package domain_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	catalog "apnea/internal/modules/catalog/domain"
	"apnea/internal/modules/profile/domain"
)

func TestGenerateScheduleRotation(t *testing.T) {
	t.Parallel()

	records := domain.GenerateSchedule(monday, monday.AddDate(0, 0, 6), nil, nil)
	var got []string
	for _, r := range records {
		got = append(got, r.Day+" "+r.Focus)
	}
	want := []string{
		"Monday " + catalog.CO2Tolerance,
		"Tuesday " + catalog.BreathControl,
		"Wednesday " + catalog.O2Tolerance,
		"Thursday " + catalog.MentalTechnique,
		"Friday " + catalog.AdvancedCO2Table,
		"Saturday " + catalog.MaxBreathHold,
		"Sunday " + catalog.RecoveryFlexibility,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected rotation (-want +got):\n%s", diff)
	}
}

func TestGenerateScheduleWeeklyOverride(t *testing.T) {
	t.Parallel()

	weekly := map[string]string{"monday": catalog.ComfortableCO2Training}
	records := domain.GenerateSchedule(monday, monday.AddDate(0, 0, 1), nil, weekly)
	if records[0].Focus != catalog.ComfortableCO2Training || records[0].SessionType != catalog.ComfortableCO2Training {
		t.Fatalf("expected override on monday: %+v", records[0])
	}
	if records[1].Focus != catalog.BreathControl {
		t.Fatalf("expected rotation on tuesday: %+v", records[1])
	}
}

func TestGenerateScheduleEmptyRange(t *testing.T) {
	t.Parallel()

	if got := domain.GenerateSchedule(monday, monday.AddDate(0, 0, -1), nil, nil); len(got) != 0 {
		t.Fatalf("expected no records, got %d", len(got))
	}
}

func TestMergeScheduleKeepsExisting(t *testing.T) {
	t.Parallel()

	existing := []domain.Record{{Date: "2026-03-03", Focus: "kept", Notes: "felt good", Completed: true}}
	generated := domain.GenerateSchedule(monday, monday.AddDate(0, 0, 2), nil, nil)
	merged, added := domain.MergeSchedule(existing, generated)
	if added != 2 || len(merged) != 3 {
		t.Fatalf("expected 2 added of 3, got %d of %d", added, len(merged))
	}
	if merged[1].Focus != "kept" || !merged[1].Completed {
		t.Fatalf("existing record overwritten: %+v", merged[1])
	}
	if merged[0].Date != "2026-03-02" || merged[2].Date != "2026-03-04" {
		t.Fatalf("expected sorted output: %+v", merged)
	}
}

func TestParseWeekday(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]time.Weekday{"monday": time.Monday, "Sun": time.Sunday, " FRI ": time.Friday} {
		got, err := domain.ParseWeekday(in)
		if err != nil || got != want {
			t.Fatalf("ParseWeekday(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := domain.ParseWeekday("mo"); err == nil {
		t.Fatalf("expected short prefix to fail")
	}
}

func TestSessionDetailsScalesWithMaxHold(t *testing.T) {
	t.Parallel()

	got := domain.SessionDetails(catalog.AdvancedCO2Table, intp(240))
	if got != "5× 02:30 holds. Rest: 2:00 → 0:53" {
		t.Fatalf("unexpected details %q", got)
	}
}
