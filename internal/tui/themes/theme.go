package themes

import (
	"github.com/Veraticus/bankwallet/internal/format"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Normal      lipgloss.Style
	Bold        lipgloss.Style
	Selected    lipgloss.Style
	RoundedBox  lipgloss.Style
	Header      lipgloss.Style
	StatusError lipgloss.Style
	Help        lipgloss.Style
	Primary     lipgloss.Color
	Muted       lipgloss.Color
	Border      lipgloss.Color
	Foreground  lipgloss.Color
	Error       lipgloss.Color
	Warning     lipgloss.Color
	// Value colors indexed by format.Color.
	Positive lipgloss.Color
	Outgoing lipgloss.Color
	Negative lipgloss.Color
	Unsigned lipgloss.Color
}

// Default is the default theme.
var Default = Theme{
	Primary:    lipgloss.Color("#7c3aed"),
	Muted:      lipgloss.Color("#737373"),
	Border:     lipgloss.Color("#404040"),
	Foreground: lipgloss.Color("#fafafa"),
	Error:      lipgloss.Color("#ef4444"),
	Warning:    lipgloss.Color("#f59e0b"),
	Positive:   lipgloss.Color("#10b981"),
	Outgoing:   lipgloss.Color("#fafafa"),
	Negative:   lipgloss.Color("#ef4444"),
	Unsigned:   lipgloss.Color("#f59e0b"),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fafafa")),
	Bold: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")),
	Selected: lipgloss.NewStyle().
		Background(lipgloss.Color("#7c3aed")).
		Foreground(lipgloss.Color("#fafafa")).
		Bold(true),
	RoundedBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#404040")).
		Padding(0, 1),
	Header: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7c3aed")),
	StatusError: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ef4444")).
		Bold(true),
	Help: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#737373")),
}

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = Theme{
	Primary:    lipgloss.Color("#cba6f7"),
	Muted:      lipgloss.Color("#6c7086"),
	Border:     lipgloss.Color("#45475a"),
	Foreground: lipgloss.Color("#cdd6f4"),
	Error:      lipgloss.Color("#f38ba8"),
	Warning:    lipgloss.Color("#f9e2af"),
	Positive:   lipgloss.Color("#a6e3a1"),
	Outgoing:   lipgloss.Color("#cdd6f4"),
	Negative:   lipgloss.Color("#f38ba8"),
	Unsigned:   lipgloss.Color("#f9e2af"),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#cdd6f4")),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a6adc8")),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#cdd6f4")),
	Bold: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#cdd6f4")),
	Selected: lipgloss.NewStyle().
		Background(lipgloss.Color("#cba6f7")).
		Foreground(lipgloss.Color("#1e1e2e")).
		Bold(true),
	RoundedBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#45475a")).
		Padding(0, 1),
	Header: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#cba6f7")),
	StatusError: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#f38ba8")).
		Bold(true),
	Help: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6c7086")),
}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}

// ColorFor maps a semantic value color to the theme palette.
func (t Theme) ColorFor(c format.Color) lipgloss.Color {
	switch c {
	case format.ColorPositive:
		return t.Positive
	case format.ColorOutgoing:
		return t.Outgoing
	case format.ColorNegative:
		return t.Negative
	case format.ColorUnsigned:
		return t.Unsigned
	default:
		return t.Muted
	}
}

// Value renders v in its semantic color. A nil value renders empty.
func (t Theme) Value(v *format.ColoredValue) string {
	if v == nil {
		return ""
	}
	return lipgloss.NewStyle().Foreground(t.ColorFor(v.Color)).Render(v.Value)
}

// Icons maps transaction icon names to glyphs.
var Icons = map[string]string{
	"incoming":  "↓",
	"outgoing":  "↑",
	"swap":      "⇄",
	"approve":   "✓",
	"unordered": "•",
}

// GetIcon returns a glyph for an icon name.
func GetIcon(name string) string {
	if icon, ok := Icons[name]; ok {
		return icon
	}
	return "•"
}
