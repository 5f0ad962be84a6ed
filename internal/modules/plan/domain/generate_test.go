package domain_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	catalog "apnea/internal/modules/catalog/domain"
	"apnea/internal/modules/plan/domain"
	apperrors "apnea/internal/platform/errors"
)

func durations(phases []domain.Phase) []int {
	out := make([]int, 0, len(phases))
	for _, p := range phases {
		out = append(out, p.Duration)
	}
	return out
}

func builtin(t *testing.T, name string) catalog.Template {
	t.Helper()
	tpl, ok := catalog.NewRegistry(nil).Get(name)
	if !ok {
		t.Fatalf("missing built-in %s", name)
	}
	return tpl
}

func TestProgressiveTableTotals555(t *testing.T) {
	t.Parallel()

	tpl := catalog.Template{
		Strategy:          catalog.StrategyProgressiveTable,
		HoldCount:         5,
		HoldStartDuration: 45,
		HoldIncrease:      15,
		RestDuration:      45,
	}
	phases, err := domain.Generate(catalog.CO2Tolerance, tpl, 0, domain.Options{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	want := []int{45, 45, 60, 45, 75, 45, 90, 45, 105, 180}
	if diff := cmp.Diff(want, durations(phases)); diff != "" {
		t.Fatalf("durations mismatch (-want +got):\n%s", diff)
	}
	plan := domain.Plan{Phases: phases}
	if plan.TotalSeconds() != 555 {
		t.Fatalf("expected total 555, got %d", plan.TotalSeconds())
	}
	if last := phases[len(phases)-1]; last.Kind != domain.KindCooldown {
		t.Fatalf("expected trailing cooldown, got %s", last.Kind)
	}
	if phases[0].Description != "CO₂ Hold 1/5 (00:45)" || phases[1].Description != "CO₂ Rest 1/4 (00:45)" {
		t.Fatalf("unexpected descriptions: %q / %q", phases[0].Description, phases[1].Description)
	}
}

func TestPercentageLadderScalesByMaxHold(t *testing.T) {
	t.Parallel()

	phases, err := domain.Generate(catalog.MaxBreathHold, builtin(t, catalog.MaxBreathHold), 240, domain.Options{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if phases[0].Kind != domain.KindStretchConfirmation {
		t.Fatalf("expected stretch gate first, got %s", phases[0].Kind)
	}

	var ladder []int
	for i, p := range phases {
		if p.Percentage == 0 {
			continue
		}
		ladder = append(ladder, p.Duration)
		if prev := phases[i-1]; prev.Kind != domain.KindTidalBreathing {
			t.Fatalf("ladder hold %d not preceded by tidal breathing: %s", i, prev.Kind)
		}
		if p.Percentage == 100 && (!p.IsMaxHold() || !p.Indefinite()) {
			t.Fatalf("100%% hold must be an indefinite max hold: %+v", p)
		}
	}
	if diff := cmp.Diff([]int{60, 84, 120, 156, 0, 0}, ladder); diff != "" {
		t.Fatalf("ladder mismatch (-want +got):\n%s", diff)
	}

	var tolerance int
	for _, p := range phases {
		if p.Has(domain.TagCO2Tolerance) && p.Kind == domain.KindHold {
			tolerance++
		}
	}
	if tolerance != 3 {
		t.Fatalf("expected 3 CO2 tolerance holds, got %d", tolerance)
	}
	if phases[len(phases)-1].Kind != domain.KindCooldown {
		t.Fatalf("expected cooldown last")
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	t.Parallel()

	for _, name := range catalog.Names {
		tpl := builtin(t, name)
		first, err := domain.Generate(name, tpl, 180, domain.Options{})
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		second, _ := domain.Generate(name, tpl, 180, domain.Options{})
		if diff := cmp.Diff(first, second); diff != "" {
			t.Fatalf("%s not deterministic:\n%s", name, diff)
		}
	}
}

func TestEveryBuiltinEndsWithCooldownUnlessExempt(t *testing.T) {
	t.Parallel()

	for _, name := range catalog.Names {
		phases, err := domain.Generate(name, builtin(t, name), 240, domain.Options{})
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if len(phases) == 0 {
			t.Fatalf("%s produced no phases", name)
		}
		last := phases[len(phases)-1]
		if name == catalog.BreathControl {
			if last.Kind == domain.KindCooldown {
				t.Fatalf("breath control should not end with cooldown")
			}
			continue
		}
		if last.Kind != domain.KindCooldown || last.Duration != 180 {
			t.Fatalf("%s should end with a 180s cooldown, got %+v", name, last)
		}
	}
}

func TestDecreasingRestFloorsAndRounds(t *testing.T) {
	t.Parallel()

	phases, err := domain.Generate(catalog.AdvancedCO2Table, builtin(t, catalog.AdvancedCO2Table), 240, domain.Options{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	var holds, rests []int
	for _, p := range phases {
		switch {
		case p.Kind == domain.KindHold:
			holds = append(holds, p.Duration)
		case p.Kind == domain.KindRest:
			rests = append(rests, p.Duration)
		}
	}
	if diff := cmp.Diff([]int{150, 150, 150, 150, 150}, holds); diff != "" {
		t.Fatalf("holds (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{120, 98, 75, 53}, rests); diff != "" {
		t.Fatalf("rests (-want +got):\n%s", diff)
	}

	steep := builtin(t, catalog.AdvancedCO2Table)
	steep.RestDecrease = 50
	phases, _ = domain.Generate(catalog.AdvancedCO2Table, steep, 240, domain.Options{})
	for _, p := range phases {
		if p.Kind == domain.KindRest && p.Duration < 30 {
			t.Fatalf("rest below floor: %d", p.Duration)
		}
	}
}

func TestO2TableCapsPercentage(t *testing.T) {
	t.Parallel()

	phases, err := domain.Generate(catalog.O2Tolerance, builtin(t, catalog.O2Tolerance), 200, domain.Options{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	var holds []int
	for _, p := range phases {
		if p.Kind == domain.KindHold {
			holds = append(holds, p.Duration)
		}
	}
	if diff := cmp.Diff([]int{120, 140, 160, 180, 190}, holds); diff != "" {
		t.Fatalf("holds (-want +got):\n%s", diff)
	}
}

func TestBoxModesKeepTotalDuration(t *testing.T) {
	t.Parallel()

	tpl := builtin(t, catalog.BreathControl)
	merged, err := domain.Generate(catalog.BreathControl, tpl, 0, domain.Options{BoxMode: domain.BoxMerged})
	if err != nil {
		t.Fatalf("merged: %v", err)
	}
	discrete, err := domain.Generate(catalog.BreathControl, tpl, 0, domain.Options{BoxMode: domain.BoxDiscrete})
	if err != nil {
		t.Fatalf("discrete: %v", err)
	}
	m, d := domain.Plan{Phases: merged}, domain.Plan{Phases: discrete}
	if m.TotalSeconds() != 1268 || d.TotalSeconds() != 1268 {
		t.Fatalf("expected 1268s in both modes, got %d and %d", m.TotalSeconds(), d.TotalSeconds())
	}
	if len(discrete) != len(merged)+7 {
		t.Fatalf("expected 8 discrete cycles, got %d phases vs %d", len(discrete), len(merged))
	}
}

func TestComfortableRestPatternRepeatsLastEntry(t *testing.T) {
	t.Parallel()

	tpl := builtin(t, catalog.ComfortableCO2Training)
	tpl.HoldCount = 9
	phases, err := domain.Generate(catalog.ComfortableCO2Training, tpl, 100, domain.Options{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	var rests []int
	for _, p := range phases {
		if p.Kind == domain.KindRest {
			rests = append(rests, p.Duration)
		}
	}
	if diff := cmp.Diff([]int{120, 105, 90, 75, 60, 75, 90, 90}, rests); diff != "" {
		t.Fatalf("rests (-want +got):\n%s", diff)
	}
}

func TestGenerateUnknownStrategy(t *testing.T) {
	t.Parallel()

	_, err := domain.Generate("Mystery", catalog.Template{}, 100, domain.Options{})
	if !errors.Is(err, apperrors.ErrUnknownSessionType) {
		t.Fatalf("expected ErrUnknownSessionType, got %v", err)
	}
}

func TestGuidanceFollowsExercise(t *testing.T) {
	t.Parallel()

	phases, _ := domain.Generate(catalog.MaxBreathHold, builtin(t, catalog.MaxBreathHold), 240, domain.Options{})
	if phases[0].Guidance() == phases[1].Guidance() {
		t.Fatalf("stretch and tidal breathing should carry different guidance")
	}
	if _, ok := domain.InstructionFor(domain.ExerciseBoxBreathing); !ok {
		t.Fatalf("expected box breathing instructions")
	}
	if got := domain.GuidanceFor(""); got == "" {
		t.Fatalf("expected fallback guidance")
	}
}

func TestTinyMaxHoldKeepsTimedPhasesFinite(t *testing.T) {
	t.Parallel()

	for _, name := range catalog.Names {
		phases, err := domain.Generate(name, builtin(t, name), 1, domain.Options{})
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		for i, p := range phases {
			if p.IsMaxHold() || p.IsStretchConfirmation() {
				continue
			}
			if p.Duration <= 0 {
				t.Fatalf("%s phase %d (%s) has duration %d", name, i, p.Description, p.Duration)
			}
		}
	}
}
