package ui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.Color("#4A90E2")
	colorMuted  = lipgloss.Color("#828997")
	colorDone   = lipgloss.Color("#98C379")
	colorWarn   = lipgloss.Color("#E5C07B")
	colorError  = lipgloss.Color("#E06C75")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			MarginBottom(1)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	focusedInputStyle = inputStyle.BorderForeground(colorAccent)

	rowStyle      = lipgloss.NewStyle().PaddingLeft(2)
	selectedStyle = lipgloss.NewStyle().
			PaddingLeft(1).
			Foreground(colorAccent).
			Bold(true)
	doneTextStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Strikethrough(true)
	doneMarkStyle = lipgloss.NewStyle().Foreground(colorDone)

	emptyStyle   = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	warnStyle    = lipgloss.NewStyle().Foreground(colorWarn)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	confirmStyle = lipgloss.NewStyle().Foreground(colorError)
)
