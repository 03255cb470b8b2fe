package ui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary    = lipgloss.Color("#00BFFF") // Cyan, primary accent
	colorAccent     = lipgloss.Color("#FFD700") // Gold, attention
	colorSuccess    = lipgloss.Color("#00E676") // Green, passed
	colorDanger     = lipgloss.Color("#FF5252") // Red, errors
	colorMuted      = lipgloss.Color("#636363") // Gray, de-emphasized
	colorMutedLight = lipgloss.Color("#8C8C8C") // Lighter gray, normal text
	colorBlue       = lipgloss.Color("#5B8DEF") // Blue, pattern names
)

// Status icons.
const (
	iconDone   = "✓"
	iconFailed = "✗"
	iconBullet = "•"
	iconReload = "↻"
	iconChart  = "◆"
)

var (
	styleHeading = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	styleSuccess = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	styleDanger  = lipgloss.NewStyle().Foreground(colorDanger).Bold(true)
	styleWarn    = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	styleMuted   = lipgloss.NewStyle().Foreground(colorMuted)
	styleLabel   = lipgloss.NewStyle().Foreground(colorMutedLight)
	stylePattern = lipgloss.NewStyle().Foreground(colorBlue)
)
