package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	catalog "apnea/internal/modules/catalog/domain"
	plan "apnea/internal/modules/plan/domain"
	"apnea/internal/modules/profile/domain"
	"apnea/internal/modules/profile/service"
	apperrors "apnea/internal/platform/errors"
	"apnea/internal/platform/tx"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type seqID struct{ n int }

func (s *seqID) New() string {
	s.n++
	return fmt.Sprintf("%d", s.n)
}

// memoryRepo round-trips through JSON so callers never share pointers with
// the stored copy.
type memoryRepo struct {
	raw   []byte
	saves int
}

func (m *memoryRepo) Load(context.Context) (domain.Store, bool, error) {
	if m.raw == nil {
		return domain.Store{}, false, nil
	}
	var s domain.Store
	if err := json.Unmarshal(m.raw, &s); err != nil {
		return domain.Store{}, false, err
	}
	return s, true, nil
}

func (m *memoryRepo) Save(_ context.Context, s domain.Store) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.raw = raw
	m.saves++
	return nil
}

type countingProjector struct {
	calls int
	rows  int
	err   error
}

func (p *countingProjector) Project(_ context.Context, s domain.Store) error {
	if p.err != nil {
		return p.err
	}
	p.calls++
	p.rows = 0
	for _, prof := range s.Profiles {
		p.rows += len(prof.Sessions)
	}
	return nil
}

type memoryExchange struct {
	files map[string]domain.ExportData
}

func (e *memoryExchange) Write(_ context.Context, path string, data domain.ExportData) error {
	e.files[path] = data
	return nil
}

func (e *memoryExchange) Read(_ context.Context, path string) (domain.ExportData, error) {
	data, ok := e.files[path]
	if !ok {
		return domain.ExportData{}, fmt.Errorf("%w: %s", apperrors.ErrNotFound, path)
	}
	return data, nil
}

type catalogTypes struct{}

func (catalogTypes) Canonical(_ context.Context, name string) (string, error) {
	for _, n := range catalog.Names {
		if strings.EqualFold(n, name) {
			return n, nil
		}
	}
	return "", fmt.Errorf("%w: %s", apperrors.ErrUnknownSessionType, name)
}

type fixture struct {
	svc       *service.ProfileService
	repo      *memoryRepo
	projector *countingProjector
	exchange  *memoryExchange
}

func newFixture() fixture {
	f := fixture{
		repo:      &memoryRepo{},
		projector: &countingProjector{},
		exchange:  &memoryExchange{files: map[string]domain.ExportData{}},
	}
	now := fixedClock{now: time.Date(2026, time.March, 2, 8, 0, 0, 0, time.Local)}
	f.svc = service.NewProfileService(now, &seqID{}, f.repo, f.projector, f.exchange, catalogTypes{}, &tx.Serial{})
	return f
}

func intp(v int) *int { return &v }

func TestViewWritesDefaultStoreOnce(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	store, err := f.svc.View(ctx)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if store.CurrentProfile != domain.DefaultProfileID {
		t.Fatalf("unexpected current profile %q", store.CurrentProfile)
	}
	if _, err := f.svc.View(ctx); err != nil {
		t.Fatalf("second view: %v", err)
	}
	if f.repo.saves != 1 || f.projector.calls != 1 {
		t.Fatalf("expected one save and projection, got %d/%d", f.repo.saves, f.projector.calls)
	}
	if f.projector.rows != domain.ScheduleHorizon+1 {
		t.Fatalf("expected projected rows, got %d", f.projector.rows)
	}
}

func TestCreateUseDeleteProfile(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	store, err := f.svc.CreateProfile(ctx, "Ana", intp(150))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if store.CurrentProfile != "profile_1" {
		t.Fatalf("unexpected id %q", store.CurrentProfile)
	}
	if _, err := f.svc.UseProfile(ctx, domain.DefaultProfileID); err != nil {
		t.Fatalf("use: %v", err)
	}
	if _, err := f.svc.UseProfile(ctx, "nobody"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := f.svc.DeleteProfile(ctx, "ana"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	store, _ = f.svc.View(ctx)
	if diff := cmp.Diff([]string{domain.DefaultProfileID}, store.IDs()); diff != "" {
		t.Fatalf("unexpected profiles (-want +got):\n%s", diff)
	}
}

func TestFailedMutationLeavesStoreUntouched(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	if _, err := f.svc.View(ctx); err != nil {
		t.Fatalf("view: %v", err)
	}
	saves := f.repo.saves
	if err := f.svc.DeleteProfile(ctx, domain.DefaultProfileID); !errors.Is(err, apperrors.ErrDefaultProfile) {
		t.Fatalf("expected default profile error, got %v", err)
	}
	if f.repo.saves != saves {
		t.Fatalf("failed mutation was saved")
	}
}

func TestRecordSessionResultDefaultsToTodayAndFocus(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	store, rec, raised, err := f.svc.RecordSessionResult(ctx, "", "", 600, 300)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if rec.Date != "2026-03-02" || rec.Focus != catalog.MaximalBreathHoldTraining || !rec.Completed || rec.SessionTime != 600 {
		t.Fatalf("unexpected record %+v", rec)
	}
	if !raised || *store.Current().CurrentMaxHold != 300 {
		t.Fatalf("expected personal best over 240")
	}
	if _, _, _, err := f.svc.RecordSessionResult(ctx, "", "", 0, 0); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for empty session, got %v", err)
	}
}

func TestGenerateScheduleMerges(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	if _, _, err := f.svc.ToggleComplete(ctx, "2026-03-03"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	store, added, err := f.svc.GenerateSchedule(ctx, "2026-03-01", "2026-04-02")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	// Store already holds 03-02..04-01; adds 03-01 and 04-02.
	if added != 2 {
		t.Fatalf("expected 2 added, got %d", added)
	}
	rec, _ := store.Current().Record("2026-03-03")
	if !rec.Completed {
		t.Fatalf("existing record overwritten")
	}
	if _, _, err := f.svc.GenerateSchedule(ctx, "2026-03-05", "2026-03-01"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid range, got %v", err)
	}
}

func TestSetWeeklySchedule(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	store, err := f.svc.SetWeeklySchedule(ctx, "Mon", "co₂ tolerance")
	if err != nil {
		t.Fatalf("set day: %v", err)
	}
	if got := store.Current().WeeklySchedule["monday"]; got != catalog.CO2Tolerance {
		t.Fatalf("unexpected monday focus %q", got)
	}
	if _, err := f.svc.SetWeeklySchedule(ctx, "monday", "Yoga"); !errors.Is(err, apperrors.ErrUnknownSessionType) {
		t.Fatalf("expected unknown session type, got %v", err)
	}
	def := plan.CustomSessionDefinition{Name: "Yoga", Phases: []plan.PhaseSpec{{Kind: plan.KindBreathing, DurationType: plan.DurationFixed, Duration: 60}}}
	if _, err := f.svc.SaveCustomSession(ctx, def); err != nil {
		t.Fatalf("save custom: %v", err)
	}
	store, err = f.svc.SetWeeklySchedule(ctx, "monday", "Yoga")
	if err != nil {
		t.Fatalf("set custom day: %v", err)
	}
	if store.Current().WeeklySchedule["monday"] != "Yoga" {
		t.Fatalf("expected custom session on monday")
	}
	store, _ = f.svc.SetWeeklySchedule(ctx, "monday", "")
	if _, ok := store.Current().WeeklySchedule["monday"]; ok {
		t.Fatalf("expected monday to fall back to rotation")
	}
}

func TestExportImport(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	data, err := f.svc.Export(ctx, "out.json")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(data.Sessions) != domain.ScheduleHorizon+1 || *data.CurrentMaxHold != domain.DefaultMaxHold {
		t.Fatalf("unexpected export %d/%v", len(data.Sessions), data.CurrentMaxHold)
	}

	f.exchange.files["in.json"] = domain.ExportData{
		Sessions:       []domain.Record{{Date: "2025-01-01", Day: "Wednesday", Focus: catalog.O2Tolerance}},
		CurrentMaxHold: intp(90),
	}
	if _, err := f.svc.Import(ctx, "in.json"); err != nil {
		t.Fatalf("import: %v", err)
	}
	store, _ := f.svc.View(ctx)
	if len(store.Current().Sessions) != 1 || *store.Current().CurrentMaxHold != 90 {
		t.Fatalf("unexpected import result %+v", store.Current())
	}

	saves := f.repo.saves
	f.exchange.files["bad.json"] = domain.ExportData{Sessions: []domain.Record{{Date: "yesterday"}}}
	if _, err := f.svc.Import(ctx, "bad.json"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := f.svc.Import(ctx, "missing.json"); err == nil {
		t.Fatalf("expected missing file error")
	}
	if f.repo.saves != saves {
		t.Fatalf("failed import touched the store")
	}
}

func TestProjectionFailureIsReturned(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.projector.err = errors.New("disk full")
	if _, err := f.svc.SetMaxHold(context.Background(), 200); err == nil || !strings.Contains(err.Error(), "project records") {
		t.Fatalf("expected projection error, got %v", err)
	}
}

func TestReindexProjectsWithoutSaving(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	if _, err := f.svc.View(ctx); err != nil {
		t.Fatalf("view: %v", err)
	}
	saves := f.repo.saves
	if err := f.svc.Reindex(ctx); err != nil {
		t.Fatalf("reindex: %v", err)
	}
	if f.repo.saves != saves || f.projector.calls != 2 {
		t.Fatalf("unexpected saves=%d projections=%d", f.repo.saves, f.projector.calls)
	}
}
