// Package style holds the lipgloss styles used for terminal output.
package style

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	PathStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Italic(true)

	CountStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	DefaultDelimiterStyle = lipgloss.NewStyle().
				Foreground(DefaultDelimiterColor)

	CustomDelimiterStyle = lipgloss.NewStyle().
				Foreground(CustomDelimiterColor).
				Bold(true)
)

// Operation indicators
var (
	SuccessIndicator = SuccessStyle.Render("✓")
	SkippedIndicator = MutedStyle.Render("○")
	ErrorIndicator   = ErrorStyle.Render("✗")
)

// Indent pads s by two columns per level
func Indent(s string, level int) string {
	return lipgloss.NewStyle().PaddingLeft(level * 2).Render(s)
}

// DelimiterStyle returns the style for a delimiter of the given origin
func DelimiterStyle(origin string) lipgloss.Style {
	if origin == "custom" {
		return CustomDelimiterStyle
	}
	return DefaultDelimiterStyle
}
