package service_test

import (
	"context"
	"errors"
	"testing"

	"apnea/internal/modules/catalog/domain"
	"apnea/internal/modules/catalog/service"
	apperrors "apnea/internal/platform/errors"
)

type memoryStore struct {
	data  map[string]domain.Template
	saves int
}

func (m *memoryStore) Load(context.Context) (map[string]domain.Template, error) {
	return m.data, nil
}

func (m *memoryStore) Save(_ context.Context, overrides map[string]domain.Template) error {
	m.data = overrides
	m.saves++
	return nil
}

func TestCatalogServicePersistsEdits(t *testing.T) {
	t.Parallel()

	store := &memoryStore{}
	svc := service.NewCatalogService(store)
	ctx := context.Background()

	tpl, overridden, err := svc.Get(ctx, "o2-tolerance")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if overridden {
		t.Fatalf("fresh registry should not be overridden")
	}
	tpl.RestDuration = 120
	name, err := svc.Set(ctx, "o2-tolerance", tpl)
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if name != domain.O2Tolerance {
		t.Fatalf("expected canonical name, got %q", name)
	}
	if store.saves != 1 || store.data[domain.O2Tolerance].RestDuration != 120 {
		t.Fatalf("override not persisted: %+v", store.data)
	}

	reloaded := service.NewCatalogService(store)
	got, overridden, err := reloaded.Get(ctx, domain.O2Tolerance)
	if err != nil {
		t.Fatalf("get after reload: %v", err)
	}
	if !overridden || got.RestDuration != 120 {
		t.Fatalf("expected persisted edit, got %+v overridden=%v", got, overridden)
	}

	if _, err := reloaded.Reset(ctx, domain.O2Tolerance); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, ok := store.data[domain.O2Tolerance]; ok {
		t.Fatalf("reset did not drop override")
	}
}

func TestCatalogServiceResetWithoutEditSkipsSave(t *testing.T) {
	t.Parallel()

	store := &memoryStore{}
	svc := service.NewCatalogService(store)
	if _, err := svc.Reset(context.Background(), domain.BreathControl); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if store.saves != 0 {
		t.Fatalf("expected no save, got %d", store.saves)
	}
}

func TestCatalogServiceUnknownType(t *testing.T) {
	t.Parallel()

	svc := service.NewCatalogService(&memoryStore{})
	_, _, err := svc.Get(context.Background(), "Freediving Yoga")
	if !errors.Is(err, apperrors.ErrUnknownSessionType) {
		t.Fatalf("expected ErrUnknownSessionType, got %v", err)
	}
}

func TestCatalogServiceRejectsOutOfRangeValues(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tests := []struct {
		name string
		edit func(*domain.Template)
	}{
		{name: "negative rest", edit: func(tpl *domain.Template) { tpl.RestDuration = -30 }},
		{name: "negative count", edit: func(tpl *domain.Template) { tpl.HoldCount = -1 }},
		{name: "percentage above 100", edit: func(tpl *domain.Template) { tpl.MaxHoldPercentage = 120 }},
		{name: "percentage below 0", edit: func(tpl *domain.Template) { tpl.HoldStartPercentage = -5 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			store := &memoryStore{}
			svc := service.NewCatalogService(store)
			tpl, _, err := svc.Get(ctx, domain.O2Tolerance)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			tc.edit(&tpl)
			if _, err := svc.Set(ctx, domain.O2Tolerance, tpl); !errors.Is(err, apperrors.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if store.saves != 0 {
				t.Fatalf("rejected edit must not be saved")
			}
			if _, overridden, _ := svc.Get(ctx, domain.O2Tolerance); overridden {
				t.Fatalf("rejected edit must not shadow the built-in")
			}
		})
	}
}
