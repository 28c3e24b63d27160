package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Style definitions.
var (
	// TitleStyle for the per-symbol report header.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// LabelStyle for metric names.
	LabelStyle = lipgloss.NewStyle().Faint(true).Width(24)

	// GainStyle for favorable values.
	GainStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	// LossStyle for unfavorable values.
	LossStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// FormatSignedPercent renders a ratio as a colored percentage.
func FormatSignedPercent(ratio float64) string {
	text := fmt.Sprintf("%.2f%%", ratio*100)

	if ratio >= 0 {
		return GainStyle.Render(text)
	}

	return LossStyle.Render(text)
}
