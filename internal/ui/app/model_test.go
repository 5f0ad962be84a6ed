package app

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	plan "apnea/internal/modules/plan/domain"
	profiledto "apnea/internal/modules/profile/dto"
	sessiondomain "apnea/internal/modules/session/domain"
	sessiondto "apnea/internal/modules/session/dto"
	"apnea/internal/ui/components"
	pickerview "apnea/internal/ui/views/picker"
)

type fakeSession struct {
	finished []sessiondto.FinishInput
}

func (f *fakeSession) Prepare(_ context.Context, sessionType, date string, _ int) (sessiondto.PrepareOutput, error) {
	return sessiondto.PrepareOutput{Plan: testPlan(sessionType), Date: date}, nil
}

func (f *fakeSession) Finish(_ context.Context, input sessiondto.FinishInput) (sessiondto.FinishOutput, error) {
	f.finished = append(f.finished, input)
	return sessiondto.FinishOutput{EntryID: "entry-1", Recorded: true, BestHold: input.Summary.BestHold()}, nil
}

type fakeRecords struct {
	maxHolds []int
	notes    []string
	profile  int
}

func (f *fakeRecords) SetRecordMaxHold(_ context.Context, _ string, seconds int) (profiledto.UpdateRecordOutput, error) {
	f.maxHolds = append(f.maxHolds, seconds)
	return profiledto.UpdateRecordOutput{PersonalBest: true}, nil
}

func (f *fakeRecords) Note(_ context.Context, _ string, text string) (profiledto.UpdateRecordOutput, error) {
	f.notes = append(f.notes, text)
	return profiledto.UpdateRecordOutput{}, nil
}

func (f *fakeRecords) SetMaxHold(_ context.Context, seconds int) (profiledto.ProfileOutput, error) {
	f.profile = seconds
	return profiledto.ProfileOutput{MaxHold: seconds, HasMaxHold: true}, nil
}

type fakeChoices struct{}

func (fakeChoices) Choices(context.Context) ([]pickerview.Choice, error) {
	return []pickerview.Choice{{Name: "CO2 Tolerance", Category: "CO2"}}, nil
}

func (fakeChoices) Preview(_ context.Context, name string) (sessiondto.PrepareOutput, error) {
	return sessiondto.PrepareOutput{Plan: testPlan(name)}, nil
}

func testPlan(name string) plan.Plan {
	return plan.Plan{
		SessionType: name,
		MaxHold:     180,
		Phases: []plan.Phase{
			{Kind: plan.KindHold, Duration: 2, Description: "Hold"},
			{Kind: plan.KindMaxHold, Description: "Max hold", Tags: []plan.Tag{plan.TagMaxHold}},
		},
	}
}

func startedModel(t *testing.T) (Model, *fakeSession, *fakeRecords) {
	t.Helper()
	session := &fakeSession{}
	records := &fakeRecords{}
	initial := sessiondto.PrepareOutput{Plan: testPlan("CO2 Tolerance"), Date: "2026-03-02"}
	m := NewModel(Options{TickInterval: time.Millisecond}, session, records, fakeChoices{}, &initial)
	next, cmd := m.Update(pickerview.SelectedMsg{Preview: initial})
	if cmd == nil {
		t.Fatalf("expected tick command after start")
	}
	return next.(Model), session, records
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func keyPress(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTicksAdvanceAndFinishOnce(t *testing.T) {
	t.Parallel()
	m, session, _ := startedModel(t)

	m, _ = send(t, m, tickMsg(time.Now()))
	m, _ = send(t, m, tickMsg(time.Now()))
	if got := m.rt.State().PhaseIndex; got != 1 {
		t.Fatalf("phase index = %d, want 1", got)
	}
	m, _ = send(t, m, tickMsg(time.Now()))
	m, _ = send(t, m, tickMsg(time.Now()))

	m, cmd := send(t, m, keyPress("m"))
	if cmd == nil {
		t.Fatalf("expected finish command")
	}
	msg := cmd()
	m, _ = send(t, m, msg)
	// a stray tick after completion must not save twice
	m, again := send(t, m, tickMsg(time.Now()))
	if again != nil {
		t.Fatalf("tick after completion returned a command")
	}
	if m.ticking {
		t.Fatalf("tick loop still armed after completion")
	}

	if len(session.finished) != 1 {
		t.Fatalf("finish calls = %d, want 1", len(session.finished))
	}
	got := session.finished[0]
	if got.Date != "2026-03-02" {
		t.Fatalf("finish date = %q", got.Date)
	}
	if diff := cmp.Diff([]int{2}, got.Summary.MaxHoldTimes); diff != "" {
		t.Fatalf("max hold times mismatch (-want +got):\n%s", diff)
	}
	if m.result == nil || m.result.EntryID != "entry-1" {
		t.Fatalf("result not stored: %+v", m.result)
	}
}

func TestPausedTicksDoNotAdvance(t *testing.T) {
	t.Parallel()
	m, _, _ := startedModel(t)

	m, _ = send(t, m, keyPress(" "))
	if m.rt.State().Status != sessiondomain.StatusPaused {
		t.Fatalf("status = %s, want paused", m.rt.State().Status)
	}
	m, cmd := send(t, m, tickMsg(time.Now()))
	if cmd == nil {
		t.Fatalf("paused session should keep the tick loop armed")
	}
	if got := m.rt.State().PhaseElapsed; got != 0 {
		t.Fatalf("phase elapsed = %d while paused", got)
	}
}

func TestEndKeyFinishesEarly(t *testing.T) {
	t.Parallel()
	m, session, _ := startedModel(t)
	m, _ = send(t, m, tickMsg(time.Now()))

	_, cmd := send(t, m, keyPress("e"))
	if cmd == nil {
		t.Fatalf("expected finish command")
	}
	cmd()
	if len(session.finished) != 1 || !session.finished[0].Summary.EndedEarly {
		t.Fatalf("finish calls = %+v", session.finished)
	}
}

func TestPaletteCommands(t *testing.T) {
	t.Parallel()
	m, session, records := startedModel(t)

	m, _ = send(t, m, components.PaletteSubmitMsg{Input: "note felt calm"})
	m, cmd := send(t, m, components.PaletteSubmitMsg{Input: "setmax 3:30"})
	if cmd == nil {
		t.Fatalf("setmax returned no command")
	}
	m, _ = send(t, m, cmd())
	if records.profile != 210 {
		t.Fatalf("profile max hold = %d, want 210", records.profile)
	}

	m, cmd = send(t, m, components.PaletteSubmitMsg{Input: "end"})
	cmd()
	if diff := cmp.Diff("felt calm", session.finished[0].Notes); diff != "" {
		t.Fatalf("notes mismatch (-want +got):\n%s", diff)
	}

	_, cmd = send(t, m, components.PaletteSubmitMsg{Input: "maxhold 95"})
	cmd()
	if diff := cmp.Diff([]int{95}, records.maxHolds); diff != "" {
		t.Fatalf("record max holds mismatch (-want +got):\n%s", diff)
	}

	m, _ = send(t, m, components.PaletteSubmitMsg{Input: "bogus"})
	if m.status != "unknown command: bogus" {
		t.Fatalf("status = %q", m.status)
	}
}

func TestMissingMaxHoldPromptsSetmaxThenStarts(t *testing.T) {
	t.Parallel()
	records := &fakeRecords{}
	initial := sessiondto.PrepareOutput{Plan: plan.Plan{SessionType: "O2 Tolerance"}, Date: "2026-03-02", MaxHoldMissing: true}
	m := NewModel(Options{TickInterval: time.Millisecond}, &fakeSession{}, records, fakeChoices{}, &initial)

	m, _ = send(t, m, pickerview.SelectedMsg{Preview: initial})
	if got := m.rt.State().Status; got != sessiondomain.StatusIdle {
		t.Fatalf("status = %s, want idle", got)
	}
	if !m.palette.Visible() || m.palette.Value() != "setmax " {
		t.Fatalf("expected palette prefilled with setmax, got visible=%v value=%q", m.palette.Visible(), m.palette.Value())
	}
	if got := m.palette.Matches(); len(got) != 1 || got[0].Name != "setmax" {
		t.Fatalf("expected setmax offered first, got %+v", got)
	}

	for _, r := range "3:00" {
		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd = send(t, m, cmd())
	if cmd == nil {
		t.Fatalf("setmax returned no command")
	}
	m, cmd = send(t, m, cmd())
	if records.profile != 180 {
		t.Fatalf("profile max hold = %d, want 180", records.profile)
	}
	if cmd == nil {
		t.Fatalf("expected the plan to be rebuilt after setmax")
	}
	m, cmd = send(t, m, cmd())
	if m.prepared.MaxHoldMissing || len(m.prepared.Plan.Phases) == 0 {
		t.Fatalf("plan not rebuilt: %+v", m.prepared)
	}
	if cmd == nil || m.rt.State().Status != sessiondomain.StatusActive {
		t.Fatalf("expected the rebuilt plan to start, status %s", m.rt.State().Status)
	}
}

func TestPaletteSuggestionsFollowRuntime(t *testing.T) {
	t.Parallel()
	m, _, _ := startedModel(t)

	suggested := func(m Model) []string {
		var out []string
		for _, s := range m.paletteSuggestions() {
			out = append(out, s.Name)
		}
		return out
	}

	if diff := cmp.Diff([]string{"skip", "end", "note", "setmax"}, suggested(m)); diff != "" {
		t.Fatalf("running (-want +got):\n%s", diff)
	}

	m, _ = send(t, m, tickMsg(time.Now()))
	m, _ = send(t, m, tickMsg(time.Now()))
	m, _ = send(t, m, keyPress("m"))
	if diff := cmp.Diff([]string{"maxhold", "note", "restart", "setmax"}, suggested(m)); diff != "" {
		t.Fatalf("after max hold (-want +got):\n%s", diff)
	}
}

func TestTicksKeepRunningWhilePaletteOpen(t *testing.T) {
	t.Parallel()
	m, _, _ := startedModel(t)

	m, _ = send(t, m, keyPress(":"))
	if !m.palette.Visible() {
		t.Fatalf("expected palette to open")
	}
	m, cmd := send(t, m, tickMsg(time.Now()))
	if cmd == nil {
		t.Fatalf("tick loop stopped while the palette was open")
	}
	if got := m.rt.State().PhaseElapsed; got != 1 {
		t.Fatalf("phase elapsed = %d, want 1", got)
	}
}
