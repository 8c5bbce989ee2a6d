package console

import "github.com/charmbracelet/lipgloss"

// Theme defines colors and icons for console output.
type Theme struct {
	Name    string
	Info    lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	Icons   ThemeIcons
}

// ThemeIcons defines the step markers for a theme.
type ThemeIcons struct {
	Info    string
	Success string
	Error   string
	Debug   string
}

var stepIcons = ThemeIcons{
	Info:    "•",
	Success: "✓",
	Error:   "×",
	Debug:   "·",
}

// DefaultTheme returns the colored theme.
func DefaultTheme() Theme {
	return Theme{
		Name:    "default",
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("36")),  // cyan
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("34")),  // green
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")), // red
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("242")), // gray
		Bold:    lipgloss.NewStyle().Bold(true),
		Icons:   stepIcons,
	}
}

// MonoTheme returns a theme without colors or text attributes.
func MonoTheme() Theme {
	return Theme{
		Name:    "mono",
		Info:    lipgloss.NewStyle(),
		Success: lipgloss.NewStyle(),
		Error:   lipgloss.NewStyle(),
		Muted:   lipgloss.NewStyle(),
		Bold:    lipgloss.NewStyle(),
		Icons:   stepIcons,
	}
}

// ThemeByName returns a theme by name, defaulting to DefaultTheme.
func ThemeByName(name string) Theme {
	switch name {
	case "mono":
		return MonoTheme()
	default:
		return DefaultTheme()
	}
}
