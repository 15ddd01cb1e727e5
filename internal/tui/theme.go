package tui

import "charm.land/lipgloss/v2"

var (
	colorPrimary = lipgloss.Color("#8B5CF6")
	colorSuccess = lipgloss.Color("#22C55E")
	colorError   = lipgloss.Color("#F43F5E")
	colorAccent  = lipgloss.Color("#F97316")
	colorText    = lipgloss.Color("#F8FAFC")
	colorDim     = lipgloss.Color("#94A3B8")
	colorCard    = lipgloss.Color("#1E293B")
	colorBorder  = lipgloss.Color("#334155")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	hintStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Italic(true)

	correctStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	missingStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	imageStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	barStyle = lipgloss.NewStyle().
			Background(colorCard).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder)
)
