package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	ColorPrimary   = lipgloss.Color("99")  // Purple
	ColorSecondary = lipgloss.Color("241") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("160") // Red
	ColorWarning   = lipgloss.Color("214") // Orange/Yellow
	ColorText      = lipgloss.Color("252") // White/Gray
	ColorAccent    = lipgloss.Color("183") // Light purple for focused rows

	// Base Styles
	StyleTitle   = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleSubtle  = lipgloss.NewStyle().Foreground(ColorSecondary)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleText    = lipgloss.NewStyle().Foreground(ColorText)

	// Input row box; the focused field gets the primary border
	StyleInputBox = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorSecondary).
			Padding(0, 1)

	StyleInputBoxFocused = StyleInputBox.BorderForeground(ColorPrimary)

	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	StyleDateHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Underline(true)

	// "Total Study Time" badge
	StyleTotalBadge = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(ColorSuccess).
			Bold(true).
			Padding(0, 1)

	StyleCursor    = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	StyleCompleted = lipgloss.NewStyle().Foreground(ColorSecondary).Strikethrough(true)
	StyleImportant = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	StyleTimeBadge = lipgloss.NewStyle().Foreground(ColorPrimary)
	StyleRunning   = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	StylePaused    = lipgloss.NewStyle().Foreground(ColorWarning)
)
