package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines a color scheme for UI output.
type Theme struct {
	// Name is the identifier of the theme.
	Name string
	// Primary is the main accent for prompts and headings.
	Primary lipgloss.Style
	// Secondary is used for less prominent elements such as limb indices.
	Secondary lipgloss.Style
	// Success indicates positive outcomes.
	Success lipgloss.Style
	// Warning is used for caution messages and truncation notices.
	Warning lipgloss.Style
	// Error indicates failures.
	Error lipgloss.Style
	// Info is used for numbers and measurements.
	Info lipgloss.Style
	// Heading is used for table headers.
	Heading lipgloss.Style
}

var (
	// DarkTheme is optimized for dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		Secondary: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("82")),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Info:      lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
		Heading:   lipgloss.NewStyle().Underline(true).Bold(true),
	}

	// LightTheme is optimized for light terminal backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   lipgloss.NewStyle().Foreground(lipgloss.Color("27")).Bold(true),
		Secondary: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("124")).Bold(true),
		Info:      lipgloss.NewStyle().Foreground(lipgloss.Color("54")),
		Heading:   lipgloss.NewStyle().Underline(true).Bold(true),
	}

	// NoColorTheme disables all styling.
	// Used when NO_COLOR is set or -no-color is given.
	NoColorTheme = Theme{
		Name:      "none",
		Primary:   lipgloss.NewStyle(),
		Secondary: lipgloss.NewStyle(),
		Success:   lipgloss.NewStyle(),
		Warning:   lipgloss.NewStyle(),
		Error:     lipgloss.NewStyle(),
		Info:      lipgloss.NewStyle(),
		Heading:   lipgloss.NewStyle(),
	}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// GetCurrentTheme returns the currently active theme in a thread-safe manner.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme sets the currently active theme in a thread-safe manner.
// This is primarily used for testing purposes to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme changes the active theme by name.
// Valid names are: "dark", "light", "none". Unknown names select dark.
func SetTheme(name string) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	switch name {
	case "light":
		currentTheme = LightTheme
	case "none":
		currentTheme = NoColorTheme
	default:
		currentTheme = DarkTheme
	}
}

// InitTheme initializes the theme based on the noColor flag and environment.
// It respects the NO_COLOR environment variable (https://no-color.org/): if
// noColor is true or NO_COLOR is set, colors are disabled.
func InitTheme(noColor bool) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	if noColor {
		currentTheme = NoColorTheme
		return
	}
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		currentTheme = NoColorTheme
		return
	}
	currentTheme = DarkTheme
}

// Render helpers apply a role of the current theme to s.

func Primary(s string) string   { return GetCurrentTheme().Primary.Render(s) }
func Secondary(s string) string { return GetCurrentTheme().Secondary.Render(s) }
func Success(s string) string   { return GetCurrentTheme().Success.Render(s) }
func Warning(s string) string   { return GetCurrentTheme().Warning.Render(s) }
func Error(s string) string     { return GetCurrentTheme().Error.Render(s) }
func Info(s string) string      { return GetCurrentTheme().Info.Render(s) }
func Heading(s string) string   { return GetCurrentTheme().Heading.Render(s) }
