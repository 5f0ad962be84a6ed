package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	plan "apnea/internal/modules/plan/domain"
	profiledto "apnea/internal/modules/profile/dto"
	sessiondomain "apnea/internal/modules/session/domain"
	sessiondto "apnea/internal/modules/session/dto"
	"apnea/internal/platform/duration"
	"apnea/internal/ui/components"
	"apnea/internal/ui/theme"
	pickerview "apnea/internal/ui/views/picker"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type sessionPort interface {
	Prepare(ctx context.Context, sessionType, date string, maxHold int) (sessiondto.PrepareOutput, error)
	Finish(ctx context.Context, input sessiondto.FinishInput) (sessiondto.FinishOutput, error)
}

type recordPort interface {
	SetRecordMaxHold(ctx context.Context, date string, seconds int) (profiledto.UpdateRecordOutput, error)
	Note(ctx context.Context, date, text string) (profiledto.UpdateRecordOutput, error)
	SetMaxHold(ctx context.Context, seconds int) (profiledto.ProfileOutput, error)
}

// ─── screens ─────────────────────────────────────────────────────────────────

type screen int

const (
	screenPicker screen = iota
	screenRun
)

// ─── async messages ──────────────────────────────────────────────────────────

type tickMsg time.Time

type finishedMsg struct {
	out sessiondto.FinishOutput
	err error
}

type recordUpdatedMsg struct {
	label string
	out   profiledto.UpdateRecordOutput
	err   error
}

type maxHoldSetMsg struct {
	out profiledto.ProfileOutput
	err error
}

type replannedMsg struct {
	out   sessiondto.PrepareOutput
	start bool
	err   error
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Pause   key.Binding
	Skip    key.Binding
	Confirm key.Binding
	MaxHold key.Binding
	End     key.Binding
	Reset   key.Binding
	Start   key.Binding
	Palette key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Pause:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause/resume")),
		Skip:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "skip phase")),
		Confirm: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "stretch done")),
		MaxHold: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "max hold done")),
		End:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "end session")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Start:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Skip, k.End, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Skip, k.Confirm, k.MaxHold},
		{k.End, k.Reset, k.Start},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

type Options struct {
	TickInterval time.Duration
	// Date is the record day a finished session is logged against; empty
	// means today.
	Date string
}

// Model is the root Bubble Tea model. It owns the session runtime and the
// tick loop; persistence is delegated to the ports and the session list to
// the picker view.
type Model struct {
	opts    Options
	session sessionPort
	records recordPort

	rt       *sessiondomain.Runtime
	prepared sessiondto.PrepareOutput
	ticking  bool
	finished bool
	notes    []string
	result   *sessiondto.FinishOutput

	screen   screen
	picker   pickerview.Model
	bar      progress.Model
	keys     keyMap
	help     help.Model
	showHelp bool
	palette  components.Palette
	status   string
	width    int
	height   int
}

// NewModel opens on the picker, or straight into a run when initial carries
// a plan.
func NewModel(opts Options, session sessionPort, records recordPort, choices pickerview.Port, initial *sessiondto.PrepareOutput) Model {
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}
	m := Model{
		opts:    opts,
		session: session,
		records: records,
		rt:      sessiondomain.NewRuntime(sessiondomain.WithStrict(false)),
		picker:  pickerview.New(choices),
		bar:     progress.New(progress.WithSolidFill(string(theme.Lavender)), progress.WithoutPercentage()),
		keys:    defaultKeys(),
		help:    help.New(),
		palette: components.NewPalette(),
		status:  "ready",
		screen:  screenPicker,
	}
	if initial != nil {
		m.prepared = *initial
		m.screen = screenRun
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.screen == screenRun {
		prepared := m.prepared
		return tea.Batch(m.picker.Init(), func() tea.Msg { return pickerview.SelectedMsg{Preview: prepared} })
	}
	return m.picker.Init()
}

// ─── update ──────────────────────────────────────────────────────────────────

// Update routes keys to the open palette; everything else, ticks included,
// keeps flowing to the model underneath it.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.palette.Visible() {
		return m.update(msg)
	}
	var paletteCmd tea.Cmd
	m.palette, paletteCmd = m.palette.Update(msg)
	if _, ok := msg.(tea.KeyMsg); ok {
		return m, paletteCmd
	}
	next, cmd := m.update(msg)
	return next, tea.Batch(paletteCmd, cmd)
}

func (m Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.bar.Width = max(m.width-8, 10)
		m.picker, _ = m.picker.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height - 3})
		return m, nil

	case pickerview.SelectedMsg:
		m.prepared = msg.Preview
		m.screen = screenRun
		cmd := m.start()
		return m, cmd

	case tickMsg:
		if m.rt.State().Status == sessiondomain.StatusActive {
			_ = m.rt.Tick()
		}
		if !m.rt.State().Running() {
			m.ticking = false
			cmd := m.finishIfDone()
			return m, cmd
		}
		return m, m.tick()

	case finishedMsg:
		if msg.err != nil {
			m.status = "save failed: " + msg.err.Error()
			return m, nil
		}
		m.result = &msg.out
		switch {
		case msg.out.EntryID == "":
			m.status = "session too short to log"
		case msg.out.PersonalBest:
			m.status = "saved, new personal best " + duration.Format(msg.out.BestHold)
		default:
			m.status = "saved to journal"
		}

	case recordUpdatedMsg:
		if msg.err != nil {
			m.status = msg.label + ": " + msg.err.Error()
		} else if msg.out.PersonalBest {
			m.status = msg.label + ", new personal best"
		} else {
			m.status = msg.label
		}

	case maxHoldSetMsg:
		if msg.err != nil {
			m.status = "setmax: " + msg.err.Error()
			return m, nil
		}
		m.status = "max hold set to " + duration.Format(msg.out.MaxHold)
		if m.screen == screenRun && !m.rt.State().Running() {
			return m, m.replanCmd(m.prepared.MaxHoldMissing)
		}

	case replannedMsg:
		if msg.err != nil {
			m.status = "replan: " + msg.err.Error()
			return m, nil
		}
		m.prepared = msg.out
		if msg.start {
			cmd := m.start()
			return m, cmd
		}
		m.status = "plan rebuilt for max hold " + duration.Format(msg.out.Plan.MaxHold)

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.screen == screenPicker && m.picker.Filtering() {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "?":
			m.showHelp = true
			return m, nil
		case ":":
			cmd := m.palette.Open(m.paletteSuggestions(), "")
			return m, cmd
		}
		if m.screen == screenRun {
			return m.handleRunKey(msg.String())
		}
	}

	if m.screen == screenPicker {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleRunKey(k string) (tea.Model, tea.Cmd) {
	var c sessiondomain.Command
	switch k {
	case " ", "p":
		c = sessiondomain.CommandToggle
	case "n":
		c = sessiondomain.CommandSkip
	case "c":
		c = sessiondomain.CommandConfirmStretch
	case "m":
		c = sessiondomain.CommandCompleteMaxHold
	case "e":
		c = sessiondomain.CommandEnd
	case "r":
		m.rt.Reset()
		m.finished = false
		m.result = nil
		m.status = "reset, press s to start again"
		return m, nil
	case "s":
		if m.rt.State().Running() {
			return m, nil
		}
		cmd := m.start()
		return m, cmd
	case "b", "esc":
		if m.rt.State().Running() {
			return m, nil
		}
		m.rt.Reset()
		m.screen = screenPicker
		return m, nil
	default:
		return m, nil
	}
	_ = m.rt.Apply(c)
	cmd := m.finishIfDone()
	return m, cmd
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := m.renderHeader()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(header)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	case m.screen == screenPicker:
		content = m.picker.View()
	default:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.renderRun())
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (m Model) renderHeader() string {
	title := "apnea"
	if m.screen == screenRun && m.prepared.Plan.SessionType != "" {
		title += "  " + theme.Hot.Render(m.prepared.Plan.SessionType)
		if m.prepared.Date != "" {
			title += theme.Muted.Render("  " + m.prepared.Date)
		}
	}
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(title) + "\n"
}

func (m Model) renderRun() string {
	st := m.rt.State()
	var sb strings.Builder

	if m.prepared.MaxHoldMissing {
		sb.WriteString(theme.Bad.Render("No max hold set. Enter one with :setmax 3:00 and the session starts.") + "\n")
		return theme.Pane.Render(sb.String())
	}

	switch st.Status {
	case sessiondomain.StatusIdle:
		p := m.prepared.Plan
		sb.WriteString(theme.Title.Render("Ready") + "\n\n")
		sb.WriteString(fmt.Sprintf("%d phases, %s", len(p.Phases), duration.Format(p.TotalSeconds())))
		if n := p.IndefiniteCount(); n > 0 {
			sb.WriteString(fmt.Sprintf(" + %d open-ended", n))
		}
		sb.WriteString("\n\n" + theme.Muted.Render("s: start  b: back"))
		return theme.Pane.Render(sb.String())
	case sessiondomain.StatusCompleted:
		return theme.Pane.Render(m.renderSummary())
	}

	phase, _ := m.rt.Current()
	kind := theme.PhaseStyle(string(phase.Kind))
	label := strings.ToUpper(strings.ReplaceAll(string(phase.Kind), "_", " "))
	sb.WriteString(kind.Render(label))
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("  phase %d/%d", st.PhaseIndex+1, st.TotalPhases)))
	if st.Status == sessiondomain.StatusPaused {
		sb.WriteString("  " + theme.Hot.Render("PAUSED"))
	}
	sb.WriteString("\n\n")

	if phase.Indefinite() {
		sb.WriteString(theme.Clock.Render(duration.Format(st.PhaseElapsed)) + "\n")
		switch {
		case phase.IsMaxHold():
			sb.WriteString(theme.Muted.Render("press m when you breathe") + "\n")
		case phase.IsStretchConfirmation():
			sb.WriteString(theme.Muted.Render("press c when the stretch is done") + "\n")
		}
	} else {
		sb.WriteString(theme.Clock.Render(duration.Format(m.rt.Remaining())) + "\n")
		frac := float64(st.PhaseElapsed) / float64(phase.Duration)
		sb.WriteString(m.bar.ViewAs(min(frac, 1)) + "\n")
	}

	sb.WriteString("\n" + phase.Description + "\n")
	sb.WriteString(theme.Muted.Render(phase.Guidance()) + "\n")
	if in, ok := plan.InstructionFor(phase.Exercise); ok {
		sb.WriteString("\n" + theme.Title.Render(in.Title) + "\n")
		for i, step := range in.Steps {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, step))
		}
	}
	sb.WriteString("\n" + theme.Muted.Render("elapsed "+duration.Format(st.SessionElapsed)))
	return theme.Pane.Render(sb.String())
}

func (m Model) renderSummary() string {
	s, ok := m.rt.Summary()
	if !ok {
		return ""
	}
	var sb strings.Builder
	title := "Session complete"
	if s.EndedEarly {
		title = "Session ended"
	}
	sb.WriteString(theme.Good.Render(title) + "\n\n")
	sb.WriteString(fmt.Sprintf("time      %s\n", duration.Format(s.TotalTime)))
	sb.WriteString(fmt.Sprintf("phases    %d/%d\n", s.CompletedPhases, s.TotalPhases))
	if s.MaxHoldUsed > 0 {
		sb.WriteString(fmt.Sprintf("max hold  %s\n", duration.Format(s.MaxHoldUsed)))
	}
	for i, h := range s.MaxHoldTimes {
		sb.WriteString(fmt.Sprintf("attempt %d %s\n", i+1, duration.Format(h)))
	}
	if len(m.notes) > 0 {
		sb.WriteString("\n" + theme.Muted.Render("notes: "+strings.Join(m.notes, "; ")) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("s: again  b: sessions  :note <text>  q: quit"))
	return sb.String()
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("?:help  :::palette  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ───────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(input), parts[0]))

	switch parts[0] {
	case "maxhold":
		seconds, err := duration.Parse(rest)
		if err != nil || seconds <= 0 {
			m.status = "usage: maxhold <seconds|m:ss>"
			return m, nil
		}
		return m, m.recordMaxHoldCmd(seconds)

	case "note":
		if rest == "" {
			m.status = "usage: note <text>"
			return m, nil
		}
		if m.finished {
			return m, m.noteCmd(rest)
		}
		m.notes = append(m.notes, rest)
		m.status = "note kept for the journal"

	case "setmax":
		seconds, err := duration.Parse(rest)
		if err != nil || seconds <= 0 {
			m.status = "usage: setmax <seconds|m:ss>"
			return m, nil
		}
		return m, m.setMaxHoldCmd(seconds)

	case "skip":
		_ = m.rt.Skip()
		cmd := m.finishIfDone()
		return m, cmd

	case "end":
		_ = m.rt.End()
		cmd := m.finishIfDone()
		return m, cmd

	case "restart":
		m.rt.Reset()
		return m, m.replanCmd(true)

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// paletteSuggestions offers only the commands that apply to the current
// state: skip and end while running, maxhold once a max hold has been timed,
// setmax first when the plan is waiting for one.
func (m Model) paletteSuggestions() []components.Suggestion {
	st := m.rt.State()
	setmax := components.Suggestion{Name: "setmax", Args: "<seconds|m:ss>", About: "profile max hold"}
	var out []components.Suggestion
	if m.prepared.MaxHoldMissing {
		out = append(out, setmax)
	}
	if st.Running() {
		out = append(out,
			components.Suggestion{Name: "skip", About: "next phase"},
			components.Suggestion{Name: "end", About: "finish early"},
		)
	}
	if st.MaxHoldCompleted {
		out = append(out, components.Suggestion{Name: "maxhold", Args: "<seconds|m:ss>", About: "log today's max hold"})
	}
	out = append(out, components.Suggestion{Name: "note", Args: "<text>", About: "journal note"})
	if m.screen == screenRun && !st.Running() && !m.prepared.MaxHoldMissing {
		out = append(out, components.Suggestion{Name: "restart", About: "rebuild and run again"})
	}
	if !m.prepared.MaxHoldMissing {
		out = append(out, setmax)
	}
	return out
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// start begins the prepared plan and arms the tick loop once. A plan still
// waiting for a max hold opens the palette on setmax instead.
func (m *Model) start() tea.Cmd {
	if m.prepared.MaxHoldMissing {
		m.status = "max hold required"
		return m.palette.Open(m.paletteSuggestions(), "setmax ")
	}
	m.rt.Reset()
	if err := m.rt.Start(m.prepared.Plan); err != nil {
		m.status = err.Error()
		return nil
	}
	m.finished = false
	m.result = nil
	m.notes = nil
	m.status = "running"
	if m.ticking {
		return nil
	}
	m.ticking = true
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.opts.TickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// finishIfDone hands the summary to the session port exactly once per run.
func (m *Model) finishIfDone() tea.Cmd {
	if m.finished || m.rt.State().Status != sessiondomain.StatusCompleted {
		return nil
	}
	summary, ok := m.rt.Summary()
	if !ok {
		return nil
	}
	m.finished = true
	m.status = "saving…"
	input := sessiondto.FinishInput{
		Date:    m.recordDate(),
		Summary: summary,
		Notes:   strings.Join(m.notes, "\n"),
	}
	return func() tea.Msg {
		out, err := m.session.Finish(context.Background(), input)
		return finishedMsg{out: out, err: err}
	}
}

func (m Model) recordDate() string {
	if m.prepared.Date != "" {
		return m.prepared.Date
	}
	return m.opts.Date
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) recordMaxHoldCmd(seconds int) tea.Cmd {
	date := m.recordDate()
	return func() tea.Msg {
		out, err := m.records.SetRecordMaxHold(context.Background(), date, seconds)
		return recordUpdatedMsg{label: "max hold recorded", out: out, err: err}
	}
}

func (m Model) noteCmd(text string) tea.Cmd {
	date := m.recordDate()
	return func() tea.Msg {
		out, err := m.records.Note(context.Background(), date, text)
		return recordUpdatedMsg{label: "note saved", out: out, err: err}
	}
}

func (m Model) setMaxHoldCmd(seconds int) tea.Cmd {
	return func() tea.Msg {
		out, err := m.records.SetMaxHold(context.Background(), seconds)
		return maxHoldSetMsg{out: out, err: err}
	}
}

// replanCmd rebuilds the plan so a changed max hold takes effect, starting
// it when start is set.
func (m Model) replanCmd(start bool) tea.Cmd {
	sessionType := m.prepared.Plan.SessionType
	date := m.prepared.Date
	return func() tea.Msg {
		out, err := m.session.Prepare(context.Background(), sessionType, date, 0)
		return replannedMsg{out: out, start: start, err: err}
	}
}
