package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/theirongolddev/runway/internal/model"
)

// Palette used by plain CLI output. Matches the default TUI theme.
var (
	colorBorder    = lipgloss.Color("#282726")
	colorTextDim   = lipgloss.Color("#575653")
	colorTextMuted = lipgloss.Color("#6F6E69")
	colorText      = lipgloss.Color("#FFFCF0")
	colorAccent    = lipgloss.Color("#3AA99F")
	colorGreen     = lipgloss.Color("#879A39")
	colorYellow    = lipgloss.Color("#D0A215")
	colorOrange    = lipgloss.Color("#DA702C")
	colorRed       = lipgloss.Color("#D14D41")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	cellStyle   = lipgloss.NewStyle().Foreground(colorText)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorTextMuted)
	warnStyle   = lipgloss.NewStyle().Foreground(colorOrange)
	ruleStyle   = lipgloss.NewStyle().Foreground(colorTextDim)

	tierStyles = map[model.Tier]lipgloss.Style{
		model.TierApproved: lipgloss.NewStyle().Bold(true).Foreground(colorGreen),
		model.TierRisky:    lipgloss.NewStyle().Bold(true).Foreground(colorYellow),
		model.TierRejected: lipgloss.NewStyle().Bold(true).Foreground(colorRed),
	}
)

// titleWidth is the inner width of the RenderTitle box.
const titleWidth = 55

// separatorRow, used as a row on its own, draws a rule across the table.
const separatorRow = "---"

// Table is a bordered text table. The first column is left-aligned and the
// rest are right-aligned, which suits label/amount listings.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // computed from content when nil
}

// RenderTitle renders title centered in a rounded box.
func RenderTitle(title string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Width(titleWidth).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(titleStyle.Render(title))
}

func isSeparator(row []string) bool {
	return len(row) == 1 && row[0] == separatorRow
}

func (t Table) columnWidths() []int {
	n := len(t.Headers)
	if n == 0 && len(t.Rows) > 0 {
		n = len(t.Rows[0])
	}
	widths := make([]int, n)
	if t.Widths != nil {
		copy(widths, t.Widths)
		return widths
	}
	grow := func(cells []string) {
		for i, c := range cells {
			if i < n {
				widths[i] = max(widths[i], lipgloss.Width(c))
			}
		}
	}
	grow(t.Headers)
	for _, row := range t.Rows {
		if !isSeparator(row) {
			grow(row)
		}
	}
	return widths
}

// rule draws one horizontal border line using the given corner and junction
// runes.
func rule(widths []int, left, mid, right string) string {
	segs := make([]string, len(widths))
	for i, w := range widths {
		segs[i] = strings.Repeat("─", w+2)
	}
	return ruleStyle.Render(left+strings.Join(segs, mid)+right) + "\n"
}

func renderRow(cells []string, widths []int, style lipgloss.Style, leftAlign bool) string {
	bar := ruleStyle.Render("│")
	var b strings.Builder
	b.WriteString(bar)
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if i == 0 || leftAlign {
			cell = padRight(cell, w)
		} else {
			cell = padLeft(cell, w)
		}
		b.WriteString(style.Render(" " + cell + " "))
		b.WriteString(bar)
	}
	b.WriteString("\n")
	return b.String()
}

// RenderTable renders t with rounded borders. Rows equal to {"---"} become
// horizontal rules.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}
	widths := t.columnWidths()

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  " + headerStyle.Render(t.Title) + "\n")
	}
	b.WriteString(rule(widths, "╭", "┬", "╮"))
	if len(t.Headers) > 0 {
		b.WriteString(renderRow(t.Headers, widths, headerStyle, true))
		b.WriteString(rule(widths, "├", "┼", "┤"))
	}
	for _, r := range t.Rows {
		if isSeparator(r) {
			b.WriteString(rule(widths, "├", "┼", "┤"))
			continue
		}
		b.WriteString(renderRow(r, widths, cellStyle, false))
	}
	b.WriteString(rule(widths, "╰", "┴", "╯"))
	return b.String()
}

// Cell widths are terminal cells, so multi-byte currency symbols line up.
func padRight(s string, w int) string {
	return s + strings.Repeat(" ", max(w-lipgloss.Width(s), 0))
}

func padLeft(s string, w int) string {
	return strings.Repeat(" ", max(w-lipgloss.Width(s), 0)) + s
}

// RenderTier renders a verdict tier as a colored uppercase label.
func RenderTier(t model.Tier) string {
	style, ok := tierStyles[t]
	if !ok {
		style = tierStyles[model.TierRejected]
	}
	return style.Render(strings.ToUpper(t.String()))
}

// RenderWarning renders a highlighted warning line.
func RenderWarning(msg string) string {
	return warnStyle.Render("  ! " + msg)
}

// RenderMuted renders secondary text.
func RenderMuted(msg string) string {
	return mutedStyle.Render(msg)
}

// RenderSparkline generates a unicode block sparkline from a series of values.
// Values are scaled between the series minimum and maximum, so negative
// balances still render.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v > hi {
			hi = v
		}
		if v < lo {
			lo = v
		}
	}
	span := hi - lo

	var b strings.Builder
	for _, v := range values {
		idx := len(blocks) - 1
		if span > 0 {
			idx = int((v - lo) / span * float64(len(blocks)-1))
		}
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		b.WriteRune(blocks[idx])
	}

	return b.String()
}

// Downsample picks at most n evenly spaced values, always keeping the last.
func Downsample(values []float64, n int) []float64 {
	if n <= 0 || len(values) <= n {
		return values
	}
	if n == 1 {
		return values[len(values)-1:]
	}
	out := make([]float64, 0, n)
	step := float64(len(values)-1) / float64(n-1)
	for i := 0; i < n; i++ {
		out = append(out, values[int(float64(i)*step+0.5)])
	}
	return out
}
