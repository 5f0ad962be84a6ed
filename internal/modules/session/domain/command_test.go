package domain_test

import (
	"errors"
	"testing"

	plan "apnea/internal/modules/plan/domain"
	"apnea/internal/modules/session/domain"
	apperrors "apnea/internal/platform/errors"
)

func TestParseCommand(t *testing.T) {
	t.Parallel()

	cases := map[string]domain.Command{
		" ":       domain.CommandToggle,
		"n":       domain.CommandSkip,
		"MaxHold": domain.CommandCompleteMaxHold,
		"stop":    domain.CommandEnd,
		"confirm": domain.CommandConfirmStretch,
	}
	for in, want := range cases {
		got, err := domain.ParseCommand(in)
		if err != nil || got != want {
			t.Fatalf("ParseCommand(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := domain.ParseCommand("jump"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestApplyDrivesRuntime(t *testing.T) {
	t.Parallel()

	rt := domain.NewRuntime()
	p := plan.Plan{SessionType: "Test", Phases: []plan.Phase{
		{Kind: plan.KindStretchConfirmation},
		{Kind: plan.KindRest, Duration: 5},
		{Kind: plan.KindMaxHold, Tags: []plan.Tag{plan.TagMaxHold}},
	}}
	if err := rt.Start(p); err != nil {
		t.Fatalf("start: %v", err)
	}
	for _, c := range []domain.Command{domain.CommandConfirmStretch, domain.CommandToggle, domain.CommandToggle, domain.CommandSkip} {
		if err := rt.Apply(c); err != nil {
			t.Fatalf("apply %s: %v", c, err)
		}
	}
	if got := rt.State().PhaseIndex; got != 2 {
		t.Fatalf("expected max hold phase, got index %d", got)
	}
	if err := rt.Apply(domain.CommandCompleteMaxHold); err != nil {
		t.Fatalf("complete max hold: %v", err)
	}
	if rt.State().Status != domain.StatusCompleted {
		t.Fatalf("expected completed, got %s", rt.State().Status)
	}
	if err := rt.Apply(domain.CommandReset); err != nil || rt.State().Status != domain.StatusIdle {
		t.Fatalf("expected idle after reset")
	}
}
