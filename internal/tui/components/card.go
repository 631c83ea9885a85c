// Package components provides reusable TUI widgets for the runway dashboard.
package components

import (
	"github.com/theirongolddev/runway/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const minCardWidth = 10

// LayoutRow splits totalWidth into n widths that sum to exactly totalWidth.
// Leading items take the remainder.
func LayoutRow(totalWidth, n int) []int {
	if n <= 0 {
		return nil
	}
	widths := make([]int, n)
	for i := range widths {
		widths[i] = totalWidth / n
		if i < totalWidth%n {
			widths[i]++
		}
	}
	return widths
}

// frame is the shared card chrome. outerWidth includes the border.
func frame(border lipgloss.Border, color lipgloss.Color, outerWidth int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(color).
		Width(max(outerWidth-2, minCardWidth)).
		Padding(0, 1)
}

// CardInnerWidth returns the text width left inside a card of outerWidth
// once border and padding are taken.
func CardInnerWidth(outerWidth int) int {
	return max(outerWidth-4, minCardWidth)
}

// Metric is one tile in a MetricCardRow. Color overrides the value color.
type Metric struct {
	Label string
	Value string
	Note  string
	Color lipgloss.Color
}

func (m Metric) render(outerWidth int) string {
	t := theme.Active
	color := t.TextPrimary
	if m.Color != "" {
		color = m.Color
	}

	body := lipgloss.NewStyle().Foreground(t.TextMuted).Render(m.Label) + "\n" +
		lipgloss.NewStyle().Foreground(color).Bold(true).Render(m.Value)
	if m.Note != "" {
		body += "\n" + lipgloss.NewStyle().Foreground(t.TextDim).Render(m.Note)
	}
	return frame(lipgloss.RoundedBorder(), t.Border, outerWidth).Render(body)
}

// MetricCardRow lays metrics side by side across exactly totalWidth columns.
func MetricCardRow(metrics []Metric, totalWidth int) string {
	if len(metrics) == 0 {
		return ""
	}
	widths := LayoutRow(totalWidth, len(metrics))
	tiles := make([]string, len(metrics))
	for i, m := range metrics {
		tiles[i] = m.render(widths[i])
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
}

// ContentCard wraps body in a rounded card. An empty title is omitted.
func ContentCard(title, body string, outerWidth int) string {
	t := theme.Active
	if title != "" {
		body = lipgloss.NewStyle().Foreground(t.TextMuted).Bold(true).Render(title) + "\n" + body
	}
	return frame(lipgloss.RoundedBorder(), t.Border, outerWidth).Render(body)
}

// BannerCard is a thick-bordered alert whose border and title share color.
// Used for verdicts and budget warnings.
func BannerCard(title, body string, color lipgloss.Color, outerWidth int) string {
	content := lipgloss.NewStyle().Foreground(color).Bold(true).Render(title)
	if body != "" {
		content += "\n" + body
	}
	return frame(lipgloss.ThickBorder(), color, outerWidth).Render(content)
}
