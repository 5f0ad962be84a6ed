package theme

import "github.com/charmbracelet/lipgloss"

var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")
	Yellow   = lipgloss.Color("#f9e2af")
	Teal     = lipgloss.Color("#94e2d5")

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(1, 2)

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Good  = lipgloss.NewStyle().Foreground(Green).Bold(true)
	Bad   = lipgloss.NewStyle().Foreground(Red).Bold(true)

	Clock = lipgloss.NewStyle().Foreground(Text).Bold(true).Padding(0, 1)
)

// PhaseColor maps a phase kind to its accent. Holds are warm, breathing and
// rest are cool, gates stand out.
func PhaseColor(kind string) lipgloss.Color {
	switch kind {
	case "hold", "max_hold":
		return Peach
	case "rest", "recovery", "cooldown":
		return Green
	case "breathing", "tidal_breathing", "box", "warmup":
		return Sapphire
	case "visualization":
		return Lavender
	case "stretch", "stretch_confirmation":
		return Yellow
	default:
		return Teal
	}
}

func PhaseStyle(kind string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(PhaseColor(kind)).Bold(true)
}
