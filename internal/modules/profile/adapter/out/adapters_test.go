package out_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"apnea/internal/modules/profile/adapter/out"
	"apnea/internal/modules/profile/domain"
	"apnea/internal/platform/sqlitedb"
)

var created = time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)

func TestJSONRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "profiles.json")
	repo := out.NewJSONRepository(path)

	if _, found, err := repo.Load(ctx); err != nil || found {
		t.Fatalf("expected missing store, got found=%v err=%v", found, err)
	}
	store := domain.NewDefaultStore(created)
	if err := repo.Save(ctx, store); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, found, err := repo.Load(ctx)
	if err != nil || !found {
		t.Fatalf("load: found=%v err=%v", found, err)
	}
	if diff := cmp.Diff(store, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	for _, key := range []string{`"currentProfile": "default"`, `"sessionType"`, `"actualMaxHold": null`, `"weeklySchedule"`} {
		if !strings.Contains(string(raw), key) {
			t.Fatalf("expected %s in store file", key)
		}
	}
}

func TestJSONRepositoryRejectsGarbage(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "profiles.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := out.NewJSONRepository(path).Load(context.Background()); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestJSONExchangeDefaultsMissingFields(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "import.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	ex := out.NewJSONExchange()
	data, err := ex.Read(ctx, path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if data.Sessions == nil || len(data.Sessions) != 0 || data.CurrentMaxHold != nil {
		t.Fatalf("unexpected defaults %+v", data)
	}

	exportPath := filepath.Join(dir, "export.json")
	if err := ex.Write(ctx, exportPath, domain.ExportData{}); err != nil {
		t.Fatalf("write export: %v", err)
	}
	raw, _ := os.ReadFile(exportPath)
	if !strings.Contains(string(raw), `"sessions": []`) || !strings.Contains(string(raw), `"currentMaxHold": null`) {
		t.Fatalf("unexpected export body %s", raw)
	}
}

func TestSQLiteProjectorReplacesRows(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db, err := sqlitedb.Open(ctx, filepath.Join(t.TempDir(), "apnea.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	projector := out.NewSQLiteRecordProjector(db)

	store := domain.NewDefaultStore(created)
	if _, err := store.AddProfile("profile_1", "Ana", created, nil); err != nil {
		t.Fatalf("add profile: %v", err)
	}
	hold := 210
	store.Profiles[domain.DefaultProfileID].Sessions[0].ActualMaxHold = &hold
	if err := projector.Project(ctx, store); err != nil {
		t.Fatalf("project: %v", err)
	}
	var rows int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM session_records`).Scan(&rows); err != nil {
		t.Fatalf("count: %v", err)
	}
	if rows != 2*(domain.ScheduleHorizon+1) {
		t.Fatalf("unexpected row count %d", rows)
	}
	var got int
	if err := db.QueryRowContext(ctx, `SELECT actual_max_hold FROM session_records WHERE profile_id = ? AND date = ?`, domain.DefaultProfileID, "2026-03-02").Scan(&got); err != nil {
		t.Fatalf("select: %v", err)
	}
	if got != 210 {
		t.Fatalf("unexpected max hold %d", got)
	}

	if err := store.RemoveProfile("profile_1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := projector.Project(ctx, store); err != nil {
		t.Fatalf("reproject: %v", err)
	}
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM session_records`).Scan(&rows); err != nil {
		t.Fatalf("count: %v", err)
	}
	if rows != domain.ScheduleHorizon+1 {
		t.Fatalf("expected stale rows removed, got %d", rows)
	}
}
