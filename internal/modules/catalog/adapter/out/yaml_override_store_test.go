package out_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	catalogout "apnea/internal/modules/catalog/adapter/out"
	"apnea/internal/modules/catalog/domain"
)

func TestYAMLOverrideStoreRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "templates.yaml")
	store := catalogout.NewYAMLOverrideStore(path)

	loaded, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load missing file: %v", err)
	}
	if len(loaded) != 0 {
		t.Fatalf("expected no overrides, got %v", loaded)
	}

	want := map[string]domain.Template{
		domain.MaxBreathHold: {
			Strategy:               domain.StrategyPercentageLadder,
			MaxHoldPercentages:     []float64{30, 60, 100},
			RoundBreathingDuration: 90,
		},
	}
	if err := store.Save(context.Background(), want); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(raw), "max_hold_percentages: [30, 60, 100]") {
		t.Fatalf("expected flow-style percentages, got:\n%s", raw)
	}

	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestYAMLOverrideStoreRejectsMalformedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "templates.yaml")
	if err := os.WriteFile(path, []byte("templates: [oops"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := catalogout.NewYAMLOverrideStore(path).Load(context.Background()); err == nil {
		t.Fatalf("expected decode error")
	}
}
