package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/realtoken/questline/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar with an optional
// trailing annotation ("40/120 XP").
type ProgressBar struct {
	Label   string
	Percent float64
	Detail  string
	Width   int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, detail string, width int) ProgressBar {
	return ProgressBar{
		Label:   label,
		Percent: percent,
		Detail:  detail,
		Width:   width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	detail := ""
	if p.Detail != "" {
		detail = "  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(p.Detail)
	}

	barWidth := p.Width - lipgloss.Width(result) - lipgloss.Width(detail)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}

	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled))
	result += theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled))
	result += detail

	return result
}
