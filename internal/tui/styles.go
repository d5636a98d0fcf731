package tui

import "github.com/charmbracelet/lipgloss"

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	borderCol = lipgloss.Color("#243141")

	appStyle   = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(baseDimFg)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171"))
	selStyle   = lipgloss.NewStyle().Foreground(accentFg).Bold(true)

	// map layers
	graveStyle   = lipgloss.NewStyle().Foreground(baseFg)
	destStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")).Bold(true)
	hoverStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500"))
	userStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E")).Bold(true)
	routeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6"))
	controlStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#0B0F14")).Background(lipgloss.Color("#E6E6E6"))
)
