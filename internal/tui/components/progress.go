package components

import (
	"fmt"

	"github.com/theirongolddev/runway/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ShareColor maps the share of the balance a line item claims to a warning
// color. A small share is green; a share that eats most of the balance is red.
func ShareColor(share float64) lipgloss.Color {
	t := theme.Active
	switch {
	case share >= 0.9:
		return t.Red
	case share >= 0.7:
		return t.Orange
	case share >= 0.5:
		return t.Yellow
	}
	return t.Green
}

func clampShare(share float64) float64 {
	if share < 0 {
		return 0
	}
	if share > 1 {
		return 1
	}
	return share
}

// SpendBar renders one line of the balance breakdown:
//
//	Fixed costs  ██████░░░░░░  45%  $2,000.00
func SpendBar(label string, share float64, caption string, labelW, barWidth int) string {
	t := theme.Active
	share = clampShare(share)
	color := ShareColor(share)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	bg := lipgloss.NewStyle().Background(t.Surface)
	label = bg.Foreground(t.TextMuted).Render(fmt.Sprintf("%-*s", labelW, label))
	pct := bg.Foreground(color).Bold(true).Render(fmt.Sprintf("%3.0f%%", share*100))

	return label + bg.Render(" ") + bar.ViewAs(share) + bg.Render(" ") +
		pct + bg.Render("  ") + bg.Foreground(t.TextDim).Render(caption)
}
