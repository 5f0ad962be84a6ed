package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	catalog "apnea/internal/modules/catalog/domain"
	"apnea/internal/modules/plan/domain"
	"apnea/internal/modules/plan/service"
	apperrors "apnea/internal/platform/errors"
)

type registrySource struct {
	registry *catalog.Registry
}

func (r registrySource) Template(_ context.Context, name string) (string, catalog.Template, error) {
	canonical, ok := r.registry.Canonical(name)
	if !ok {
		return "", catalog.Template{}, fmt.Errorf("%w: %s", apperrors.ErrUnknownSessionType, name)
	}
	tpl, _ := r.registry.Get(canonical)
	return canonical, tpl, nil
}

type profileSource struct {
	maxHold int
	custom  map[string]domain.CustomSessionDefinition
}

func (p profileSource) CurrentMaxHold(context.Context) (int, bool, error) {
	return p.maxHold, p.maxHold > 0, nil
}

func (p profileSource) CustomSession(_ context.Context, name string) (domain.CustomSessionDefinition, bool, error) {
	def, ok := p.custom[name]
	return def, ok, nil
}

func newService(maxHold int, custom map[string]domain.CustomSessionDefinition) *service.PlanService {
	return service.NewPlanService(
		registrySource{registry: catalog.NewRegistry(nil)},
		profileSource{maxHold: maxHold, custom: custom},
		domain.Options{BoxMode: domain.BoxMerged},
	)
}

func TestBuildUsesProfileMaxHold(t *testing.T) {
	t.Parallel()

	plan, missing, err := newService(240, nil).Build(context.Background(), "max-breath-hold", nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if missing {
		t.Fatalf("max hold should be known")
	}
	if plan.SessionType != catalog.MaxBreathHold || plan.MaxHold != 240 {
		t.Fatalf("unexpected plan header: %+v", plan)
	}
	if plan.IndefiniteCount() != 3 {
		t.Fatalf("expected stretch gate plus two max holds, got %d", plan.IndefiniteCount())
	}
}

func TestBuildWithoutMaxHoldIsEmpty(t *testing.T) {
	t.Parallel()

	plan, missing, err := newService(0, nil).Build(context.Background(), catalog.CO2Tolerance, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !missing || !plan.Empty() {
		t.Fatalf("expected empty plan flagged as missing max hold, got %+v", plan)
	}
}

func TestBuildOverrideWins(t *testing.T) {
	t.Parallel()

	override := 100
	plan, _, err := newService(240, nil).Build(context.Background(), catalog.O2Tolerance, &override)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if plan.MaxHold != 100 {
		t.Fatalf("expected override, got %d", plan.MaxHold)
	}
}

func TestBuildPrefersCustomSession(t *testing.T) {
	t.Parallel()

	custom := map[string]domain.CustomSessionDefinition{
		catalog.CO2Tolerance: {
			Name:   catalog.CO2Tolerance,
			Phases: []domain.PhaseSpec{{Kind: domain.KindHold, DurationType: domain.DurationFixed, Duration: 20}},
		},
	}
	plan, _, err := newService(120, custom).Build(context.Background(), catalog.CO2Tolerance, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !plan.Custom || len(plan.Phases) != 1 || plan.Phases[0].Duration != 20 {
		t.Fatalf("expected custom session to shadow the built-in, got %+v", plan)
	}
}

func TestBuildUnknownSessionType(t *testing.T) {
	t.Parallel()

	_, _, err := newService(120, nil).Build(context.Background(), "Spearfishing", nil)
	if !errors.Is(err, apperrors.ErrUnknownSessionType) {
		t.Fatalf("expected ErrUnknownSessionType, got %v", err)
	}
}
