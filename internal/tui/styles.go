package tui

import "github.com/charmbracelet/lipgloss"

// Colours resolve against lipgloss's dark-background flag, which the theme
// store sets on every change.
var (
	accent  = lipgloss.AdaptiveColor{Light: "#5A3FC0", Dark: "#B7A4FF"}
	muted   = lipgloss.AdaptiveColor{Light: "#6B6B6B", Dark: "#9A9A9A"}
	danger  = lipgloss.AdaptiveColor{Light: "#B00020", Dark: "#FF6B7A"}
	surface = lipgloss.AdaptiveColor{Light: "#D9D4F5", Dark: "#3A335C"}

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(accent)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(accent).MarginTop(1)
	hintStyle    = lipgloss.NewStyle().Foreground(muted)
	errorStyle   = lipgloss.NewStyle().Foreground(danger).Bold(true).MarginTop(1)
	loadingStyle = lipgloss.NewStyle().Foreground(accent).MarginTop(1)
	cardStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(surface).Padding(0, 1)
	termStyle    = lipgloss.NewStyle().Bold(true).Foreground(accent)
)
