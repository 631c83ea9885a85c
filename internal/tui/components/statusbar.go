package components

import (
	"strings"

	"github.com/theirongolddev/runway/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom bar: key hints on the left, info
// flush right.
func RenderStatusBar(width int, hints, info string) string {
	t := theme.Active

	left := " " + hints
	right := ""
	if info != "" {
		right = info + " "
	}
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)

	return lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width).
		Render(left + strings.Repeat(" ", gap) + right)
}
