package picker

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "apnea/internal/modules/session/dto"
	"apnea/internal/platform/duration"
	"apnea/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Choice struct {
	Name     string
	Category string
	Custom   bool
}

type Port interface {
	Choices(ctx context.Context) ([]Choice, error)
	Preview(ctx context.Context, sessionType string) (sessiondto.PrepareOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type ChoicesLoadedMsg struct {
	Choices []Choice
	Err     error
}

type PreviewLoadedMsg struct {
	Name    string
	Preview sessiondto.PrepareOutput
	Err     error
}

// SelectedMsg asks the app to start a run of Preview.
type SelectedMsg struct {
	Preview sessiondto.PrepareOutput
}

// ─── list item ───────────────────────────────────────────────────────────────

type choiceItem struct {
	choice Choice
}

func (i choiceItem) Title() string { return i.choice.Name }
func (i choiceItem) Description() string {
	if i.choice.Custom {
		return "Custom session"
	}
	return i.choice.Category
}
func (i choiceItem) FilterValue() string { return i.choice.Name }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    Port
	list    list.Model
	preview viewport.Model
	spinner spinner.Model
	current PreviewLoadedMsg
	loading bool
	width   int
	height  int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Sessions"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, list: l, preview: vp, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadChoicesCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case ChoicesLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Sessions: " + msg.Err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.Choices))
		for i, c := range msg.Choices {
			items[i] = choiceItem{choice: c}
		}
		cmds = append(cmds, m.list.SetItems(items))
		if len(msg.Choices) > 0 {
			cmds = append(cmds, m.loadPreviewCmd(msg.Choices[0].Name))
		}

	case PreviewLoadedMsg:
		if item, ok := m.list.SelectedItem().(choiceItem); ok && item.choice.Name == msg.Name {
			m.current = msg
			m.preview.SetContent(m.renderPreview())
			m.preview.GotoTop()
		}

	case tea.KeyMsg:
		if msg.String() == "enter" && !m.Filtering() {
			if m.current.Err == nil && !m.current.Preview.Plan.Empty() {
				selected := m.current.Preview
				return m, func() tea.Msg { return SelectedMsg{Preview: selected} }
			}
		}

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			if item, ok := m.list.SelectedItem().(choiceItem); ok {
				cmds = append(cmds, m.loadPreviewCmd(item.choice.Name))
			}
		}

		var vCmd tea.Cmd
		m.preview, vCmd = m.preview.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading sessions…")
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.preview.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// Filtering reports whether the list's search filter is open, in which case
// the app must not treat keystrokes as shortcuts.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = detailW - 4
	m.preview.Height = m.height - 4
}

func (m Model) renderPreview() string {
	c := m.current
	if c.Err != nil {
		return theme.Bad.Render(c.Err.Error())
	}
	p := c.Preview.Plan
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(p.SessionType) + "\n\n")
	if c.Preview.MaxHoldMissing {
		sb.WriteString(theme.Hot.Render("Set your max hold first (:setmax 3:00)") + "\n")
		return sb.String()
	}
	sb.WriteString(theme.Muted.Render("max hold: ") + duration.Format(p.MaxHold) + "\n")
	total := theme.Muted.Render("total:    ") + duration.Format(p.TotalSeconds())
	if n := p.IndefiniteCount(); n > 0 {
		total += theme.Muted.Render(fmt.Sprintf(" + %d open-ended", n))
	}
	sb.WriteString(total + "\n\n")
	for i, ph := range p.Phases {
		length := "until done"
		if ph.Duration > 0 {
			length = duration.Format(ph.Duration)
		}
		sb.WriteString(fmt.Sprintf("%2d. %s %s\n", i+1,
			theme.PhaseStyle(string(ph.Kind)).Render(fmt.Sprintf("%-10s", length)),
			ph.Description))
	}
	sb.WriteString("\n" + theme.Muted.Render("enter: start  /: filter"))
	return sb.String()
}

func (m Model) loadChoicesCmd() tea.Cmd {
	return func() tea.Msg {
		choices, err := m.port.Choices(context.Background())
		return ChoicesLoadedMsg{Choices: choices, Err: err}
	}
}

func (m Model) loadPreviewCmd(name string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Preview(context.Background(), name)
		return PreviewLoadedMsg{Name: name, Preview: out, Err: err}
	}
}
