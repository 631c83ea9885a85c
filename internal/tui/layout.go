package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/runway/internal/tui/components"
	"github.com/theirongolddev/runway/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

type binding struct{ key, desc string }

var helpSections = []struct {
	title    string
	bindings []binding
}{
	{"Navigation", []binding{
		{"d a b x", "Jump to tab"},
		{"← → tab", "Previous / Next tab"},
		{"j k", "Move through settings"},
	}},
	{"Afford", []binding{
		{"e Enter", "Edit item and cost"},
		{"Tab", "Next field while editing"},
		{"g", "Ask the AI advisor"},
		{"c", "Clear the query"},
	}},
	{"General", []binding{
		{"Esc", "Cancel editing"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}},
}

func (a App) viewHelp() string {
	t := theme.Active
	bg := lipgloss.NewStyle().Background(t.Surface)
	key := bg.Foreground(t.Cyan).Bold(true)
	desc := bg.Foreground(t.TextMuted)

	var b strings.Builder
	b.WriteString(bg.Foreground(t.AccentBright).Bold(true).Render("◈ Keyboard Shortcuts") + "\n")
	for _, sec := range helpSections {
		b.WriteString("\n" + bg.Foreground(t.Accent).Bold(true).Render(sec.title) + "\n")
		for _, kb := range sec.bindings {
			b.WriteString("  " + key.Render(fmt.Sprintf("%-10s", kb.key)) + "  " + desc.Render(kb.desc) + "\n")
		}
	}
	b.WriteString("\n" + bg.Foreground(t.TextDim).Render("Press any key to close"))

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3).
		Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewTooNarrow() string {
	msg := fmt.Sprintf("\n  Terminal too narrow (%d cols)\n\n  runway needs at least %d columns.\n",
		a.width, minTerminalWidth)
	return fitHeight(msg, max(a.height, 5))
}

// fitHeight cuts or pads s to exactly h lines.
func fitHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > h {
		return strings.Join(lines[:h], "\n")
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillWidth pads every line of s to w columns on bg so the background
// shows through short lines.
func fillWidth(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line, lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}

// tabAtX maps a click column on the tab bar to a tab index, or -1. Tabs are
// separated by a single column.
func (a App) tabAtX(x int) int {
	left := 0
	for i, tab := range components.Tabs {
		right := left + components.TabVisualWidth(tab, i == a.activeTab)
		if x >= left && x < right {
			return i
		}
		left = right + 1
	}
	return -1
}
