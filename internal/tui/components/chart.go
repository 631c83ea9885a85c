package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/runway/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline renders a unicode sparkline from values, scaled between the
// series minimum and maximum so negative balances still show a shape.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

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

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	buf.Grow(len(values) * 4) // UTF-8 block chars are up to 3 bytes
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
		buf.WriteRune(blocks[idx]) //nolint:gosec // bounds checked above
	}

	return style.Render(buf.String())
}

// BalanceChart renders a projected balance as vertical bars around a zero
// axis. Positive balances grow upward and shift from green to orange as they
// approach zero; negative balances hang below the axis in red.
func BalanceChart(values []float64, labels []string, width, height int) string {
	t := theme.Active
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, t.Accent)
	}

	hi, lo := 0.0, 0.0
	for _, v := range values {
		hi = math.Max(hi, v)
		lo = math.Min(lo, v)
	}
	if hi == lo {
		hi = 1
	}

	// Split rows between the positive and negative regions.
	rows := height - 1 // one row for the zero axis
	posRows := int(math.Round(float64(rows) * hi / (hi - lo)))
	if lo < 0 && posRows == rows {
		posRows--
	}
	negRows := rows - posRows

	yLabelW := max(len(formatChartLabel(hi)), len(formatChartLabel(lo)), 3) + 1
	chartW := width - yLabelW - 1
	if chartW < 5 {
		chartW = 5
	}
	values, labels, barW, gap := fitColumns(values, labels, chartW)
	n := len(values)
	axisLen := n*barW + max(0, n-1)*gap

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	blankStyle := lipgloss.NewStyle().Background(t.Surface)
	partial := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	var lines []string
	row := func(label string, cell func(v float64) (string, lipgloss.Color)) string {
		var b strings.Builder
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, label)))
		b.WriteString(axisStyle.Render("│"))
		for i, v := range values {
			if i > 0 && gap > 0 {
				b.WriteString(blankStyle.Render(strings.Repeat(" ", gap)))
			}
			glyph, color := cell(v)
			if glyph == "" {
				b.WriteString(blankStyle.Render(strings.Repeat(" ", barW)))
				continue
			}
			b.WriteString(lipgloss.NewStyle().Foreground(color).Background(t.Surface).
				Render(strings.Repeat(glyph, barW)))
		}
		return b.String()
	}

	for r := posRows; r >= 1; r-- {
		top := hi * float64(r) / float64(posRows)
		bottom := hi * float64(r-1) / float64(posRows)
		label := ""
		if r == posRows {
			label = formatChartLabel(hi)
		}
		lines = append(lines, row(label, func(v float64) (string, lipgloss.Color) {
			color := balanceColor(v / hi)
			switch {
			case v >= top:
				return "█", color
			case v > bottom:
				idx := int((v - bottom) / (top - bottom) * 8)
				return string(partial[min(max(idx, 1), 8)]), color
			}
			return "", ""
		}))
	}

	lines = append(lines, axisStyle.Render(fmt.Sprintf("%*s", yLabelW, "0"))+
		axisStyle.Render("┼")+
		axisStyle.Render(strings.Repeat("─", axisLen)))

	for r := 1; r <= negRows; r++ {
		level := lo * float64(r-1) / float64(negRows)
		label := ""
		if r == negRows {
			label = formatChartLabel(lo)
		}
		lines = append(lines, row(label, func(v float64) (string, lipgloss.Color) {
			if v < level {
				return "█", t.Red
			}
			return "", ""
		}))
	}

	if len(labels) == n && n > 0 {
		lines = append(lines, blankStyle.Render(strings.Repeat(" ", yLabelW+1))+
			axisStyle.Render(axisLabels(labels, axisLen, barW+gap)))
	}

	return strings.Join(lines, "\n")
}

// balanceColor maps the fraction of the peak balance still left to a color.
func balanceColor(frac float64) lipgloss.Color {
	t := theme.Active
	switch {
	case frac > 0.5:
		return t.Green
	case frac > 0.2:
		return t.Yellow
	default:
		return t.Orange
	}
}

// fitColumns picks a bar width for n values in chartW columns, sampling the
// series down when bars would be narrower than two cells.
func fitColumns(values []float64, labels []string, chartW int) ([]float64, []string, int, int) {
	n := len(values)
	if n == 1 {
		return values, labels, min(chartW, 6), 0
	}

	barW := (chartW - (n - 1)) / n
	if barW >= 2 {
		return values, labels, min(barW, 6), 1
	}

	keep := max((chartW+1)/3, 2)
	sampled := make([]float64, keep)
	var sampledLabels []string
	if len(labels) == n {
		sampledLabels = make([]string, keep)
	}
	for i := range sampled {
		src := i * (n - 1) / (keep - 1)
		sampled[i] = values[src]
		if sampledLabels != nil {
			sampledLabels[i] = labels[src]
		}
	}
	return sampled, sampledLabels, 2, 1
}

// axisLabels spreads labels under their columns without overlap, always
// showing the final label when it fits.
func axisLabels(labels []string, axisLen, colW int) string {
	buf := []rune(strings.Repeat(" ", axisLen))
	n := len(labels)
	last := []rune(labels[n-1])
	lastPos := min((n-1)*colW, axisLen-len(last))

	end := -1
	for i := 0; i < n-1; i++ {
		pos := i * colW
		lbl := []rune(labels[i])
		if pos <= end || pos+len(lbl) >= lastPos {
			continue
		}
		copy(buf[pos:], lbl)
		end = pos + len(lbl)
	}
	if lastPos >= 0 && lastPos > end {
		copy(buf[lastPos:], last)
	}
	return strings.TrimRight(string(buf), " ")
}

// formatChartLabel shortens an axis value: 1500 -> "1.5k", -200 -> "-200".
func formatChartLabel(v float64) string {
	if v < 0 {
		return "-" + formatChartLabel(-v)
	}
	switch {
	case v >= 1e6:
		return trimZero(fmt.Sprintf("%.1f", v/1e6)) + "M"
	case v >= 1e3:
		return trimZero(fmt.Sprintf("%.1f", v/1e3)) + "k"
	case v >= 1 || v == 0:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

func trimZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}
