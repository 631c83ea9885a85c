package components

import (
	"strings"

	"github.com/theirongolddev/runway/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab is one entry in the tab bar. KeyPos is the index of the shortcut
// letter within Name, or -1 when the key is shown after the name.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int
}

// Tabs lists the dashboard tabs in display order.
var Tabs = []Tab{
	{Name: "Dashboard", Key: 'd', KeyPos: 0},
	{Name: "Afford", Key: 'a', KeyPos: 0},
	{Name: "Burn-down", Key: 'b', KeyPos: 0},
	{Name: "Settings", Key: 'x', KeyPos: -1},
}

// hint splits an inactive tab label around its shortcut key so
// "Afford" becomes "", "A", "fford" and "Settings" becomes "Settings", "x", "".
func (tab Tab) hint() (before, key, after string) {
	if tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name) {
		return tab.Name[:tab.KeyPos], tab.Name[tab.KeyPos : tab.KeyPos+1], tab.Name[tab.KeyPos+1:]
	}
	return tab.Name, string(tab.Key), ""
}

// TabVisualWidth returns the rendered width of a tab, including padding.
func TabVisualWidth(tab Tab, active bool) int {
	if active {
		return lipgloss.Width(tab.Name) + 2
	}
	before, key, after := tab.hint()
	return lipgloss.Width(before+"["+key+"]"+after) + 2
}

// RenderTabBar renders the tab row with activeIdx highlighted. Inactive tabs
// show their shortcut in brackets.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active
	base := lipgloss.NewStyle().Background(t.Surface)

	active := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.SurfaceHover).
		Bold(true).
		Padding(0, 1)
	name := base.Foreground(t.TextMuted)
	key := base.Foreground(t.Accent).Bold(true)
	bracket := base.Foreground(t.TextDim)

	parts := make([]string, len(Tabs))
	for i, tab := range Tabs {
		if i == activeIdx {
			parts[i] = active.Render(tab.Name)
			continue
		}
		before, k, after := tab.hint()
		parts[i] = base.Render(" ") +
			name.Render(before) + bracket.Render("[") + key.Render(k) + bracket.Render("]") + name.Render(after) +
			base.Render(" ")
	}

	sep := base.Foreground(t.Border).Render("│")
	return base.Width(width).Render(strings.Join(parts, sep))
}

// TabIdxByKey returns the index of the tab bound to key, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
