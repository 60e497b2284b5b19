// Package ui holds the lipgloss styles used by the command-line output.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors adapt to the terminal background
var (
	ColorPrimary   lipgloss.Color
	ColorSecondary lipgloss.Color
	ColorSuccess   lipgloss.Color
	ColorWarning   lipgloss.Color
	ColorError     lipgloss.Color
	ColorTextMuted lipgloss.Color
	ColorBorder    lipgloss.Color
)

func init() {
	if lipgloss.HasDarkBackground() {
		ColorPrimary = lipgloss.Color("205") // bright magenta
		ColorSecondary = lipgloss.Color("33") // bright cyan
		ColorSuccess = lipgloss.Color("10")
		ColorWarning = lipgloss.Color("11")
		ColorError = lipgloss.Color("9")
		ColorTextMuted = lipgloss.Color("244")
		ColorBorder = lipgloss.Color("238")
	} else {
		ColorPrimary = lipgloss.Color("125")
		ColorSecondary = lipgloss.Color("24")
		ColorSuccess = lipgloss.Color("22")
		ColorWarning = lipgloss.Color("136")
		ColorError = lipgloss.Color("160")
		ColorTextMuted = lipgloss.Color("240")
		ColorBorder = lipgloss.Color("248")
	}

	StyleTitle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorSecondary).Bold(true)
	StyleMuted = lipgloss.NewStyle().Foreground(ColorTextMuted)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleError = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StyleBlock = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1)
}

// Component styles
var (
	StyleTitle   lipgloss.Style
	StyleHeader  lipgloss.Style
	StyleMuted   lipgloss.Style
	StyleSuccess lipgloss.Style
	StyleWarning lipgloss.Style
	StyleError   lipgloss.Style
	StyleBlock   lipgloss.Style
)
