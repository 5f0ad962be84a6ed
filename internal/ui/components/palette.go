package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"apnea/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle  = lipgloss.NewStyle().Foreground(theme.Subtext0)
	emptyStyle = lipgloss.NewStyle().Foreground(theme.Subtext0).Italic(true)
)

const maxSuggestions = 5

// Suggestion is one command the palette offers. Name is the first word the
// user types; Args is shown after it as usage.
type Suggestion struct {
	Name  string
	Args  string
	About string
}

func (s Suggestion) usage() string {
	if s.Args == "" {
		return s.Name
	}
	return s.Name + " " + s.Args
}

// Palette is a one-line command prompt over bubbles/textinput. The caller
// decides which commands make sense each time it opens the palette.
type Palette struct {
	input   textinput.Model
	offered []Suggestion
	open    bool
	width   int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Prompt = ": "
	ti.CharLimit = 256
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.open }

// Open shows the palette with the given commands on offer and the input set
// to prefill, cursor at the end.
func (p *Palette) Open(offered []Suggestion, prefill string) tea.Cmd {
	p.open = true
	p.offered = offered
	p.input.Placeholder = ""
	if len(offered) > 0 {
		p.input.Placeholder = offered[0].usage()
	}
	p.input.SetValue(prefill)
	p.input.CursorEnd()
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

// Value is the text typed so far.
func (p Palette) Value() string { return p.input.Value() }

// Matches lists the offered commands whose name starts with the word typed
// so far. Once arguments follow, only the exact command is kept.
func (p Palette) Matches() []Suggestion {
	value := strings.ToLower(strings.TrimLeft(p.input.Value(), " "))
	word, _, typingArgs := strings.Cut(value, " ")
	var out []Suggestion
	for _, s := range p.offered {
		switch {
		case typingArgs && s.Name != word:
		case !strings.HasPrefix(s.Name, word):
		default:
			out = append(out, s)
		}
	}
	return out
}

func (p *Palette) close() {
	p.open = false
	p.input.Blur()
}

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.open {
		return p, nil
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.Type {
		case tea.KeyEsc:
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case tea.KeyEnter:
			input := strings.TrimSpace(p.input.Value())
			p.close()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: input} }
		case tea.KeyTab:
			if m := p.Matches(); len(m) > 0 && !strings.Contains(p.input.Value(), " ") {
				p.input.SetValue(m[0].Name + " ")
				p.input.CursorEnd()
			}
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p Palette) View() string {
	if !p.open {
		return ""
	}
	lines := []string{theme.Title.Render("Command Palette"), p.input.View(), ""}
	matches := p.Matches()
	if len(matches) == 0 {
		lines = append(lines, emptyStyle.Render("  no command fits right now"))
	}
	for i, s := range matches {
		if i == maxSuggestions {
			break
		}
		line := "  " + s.usage()
		if s.About != "" {
			line += "  " + s.About
		}
		lines = append(lines, hintStyle.Render(line))
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(strings.Join(lines, "\n"))
}
