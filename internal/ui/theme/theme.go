// Package theme holds the lipgloss styles used for CLI output.
package theme

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Heading = lipgloss.NewStyle().
		Bold(true).
		Foreground(Secondary)

	Label = lipgloss.NewStyle().
		Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
)

// States
var (
	OK = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Failed = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	Warning = lipgloss.NewStyle().
		Foreground(Accent)
)

// Gap thresholds for colouring skill gaps.
const (
	SmallGap = 0.3
	LargeGap = 0.5
)

// GapStyle picks a style for a gap level: green when small, orange in
// between and red when large.
func GapStyle(gap float64) lipgloss.Style {
	switch {
	case gap < SmallGap:
		return OK
	case gap < LargeGap:
		return Warning
	default:
		return Failed
	}
}

// Bar renders a horizontal bar of width cells filled to fraction, followed
// by the percentage.
func Bar(fraction float64, width int) string {
	if width < 4 {
		width = 4
	}
	filled := int(float64(width) * fraction)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	filledStr := lipgloss.NewStyle().
		Foreground(Secondary).
		Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().
		Foreground(Border).
		Render(strings.Repeat("░", width-filled))

	return filledStr + emptyStr + Label.Render(fmt.Sprintf(" %3d%%", int(fraction*100+0.5)))
}

// KV renders a dim label followed by a value.
func KV(label string, value any) string {
	return Label.Render(label+":") + " " + Body.Render(fmt.Sprint(value))
}
