package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	panelTitleStyle = lipgloss.NewStyle().Bold(true)

	fileBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("237")).
			Padding(0, 1)

	buttonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("63")).
			Padding(0, 2)

	buttonDisabledStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250")).
				Background(lipgloss.Color("240")).
				Padding(0, 2)

	userLabelStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	assistantLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	userContentStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	emptyStateStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	loadingStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	notifyInfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	notifyLoadingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	notifySuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	notifyErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)
