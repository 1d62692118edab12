// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import "github.com/charmbracelet/lipgloss"

// Palette defines a minimal semantic palette.
type Palette struct {
	Primary    lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Surface    lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// Default is the tokyo-night palette.
var Default = Palette{
	Primary:    lipgloss.Color("#7aa2f7"),
	Foreground: lipgloss.Color("#c0caf5"),
	Muted:      lipgloss.Color("#565f89"),
	Surface:    lipgloss.Color("#3b4261"),
	Success:    lipgloss.Color("#9ece6a"),
	Warning:    lipgloss.Color("#e0af68"),
	Error:      lipgloss.Color("#f7768e"),
}

// Icons used by the demo and the CLI printer.
var (
	IconBell    = "\uf0f3"
	IconSuccess = "\uf00c"
	IconError   = "\uf057"
	IconInfo    = "\uf05a"
)

var (
	// CLI styles.
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	InfoStyle    lipgloss.Style
	MutedStyle   lipgloss.Style

	// TUI styles.
	HeaderStyle lipgloss.Style
	StatusStyle lipgloss.Style
	ToastStyle  lipgloss.Style
)

func init() {
	SetPalette(Default)
}

// SetPalette rebuilds all styles from p.
func SetPalette(p Palette) {
	SuccessStyle = lipgloss.NewStyle().Foreground(p.Success)
	ErrorStyle = lipgloss.NewStyle().Foreground(p.Error).Bold(true)
	InfoStyle = lipgloss.NewStyle().Foreground(p.Primary)
	MutedStyle = lipgloss.NewStyle().Foreground(p.Muted)

	HeaderStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true).
		Padding(0, 1)
	StatusStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Padding(0, 1)
	ToastStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Surface).
		Padding(0, 1)
}
