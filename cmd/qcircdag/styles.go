package main

import "github.com/charmbracelet/lipgloss"

// Lipgloss styles used across the inspector.
var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7aa2f7")).
			Padding(1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff9e64"))

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff9e64"))

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565f89"))

	qubitLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7dcfff"))

	gateStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#73daca"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565f89"))

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff9e64"))

	executedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ece6a"))

	readyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#e0af68"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bb9af7"))

	// One color per parallel block, cycled.
	blockColors = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("#7aa2f7")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#bb9af7")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#e0af68")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#7dcfff")),
	}
)
