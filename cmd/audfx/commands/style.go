// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const barWidth = 30

var (
	primary = lipgloss.Color("#00ff9f")
	dim     = lipgloss.Color("#6e7681")
	warn    = lipgloss.Color("#ffb86c")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(primary)
	labelStyle = lipgloss.NewStyle().Foreground(dim).Width(12)
	barStyle   = lipgloss.NewStyle().Foreground(primary)
	dimStyle   = lipgloss.NewStyle().Foreground(dim)
	warnStyle  = lipgloss.NewStyle().Bold(true).Foreground(warn)
)

// progressLine renders "[█████·····]  50% message".
func progressLine(percent int, message string) string {
	percent = min(max(percent, 0), 100)
	filled := percent * barWidth / 100

	bar := barStyle.Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("·", barWidth-filled))

	return fmt.Sprintf("[%s] %3d%% %s", bar, percent, message)
}

// field renders one "label  value" row of a summary.
func field(label string, value any) string {
	return labelStyle.Render(label) + fmt.Sprint(value)
}
