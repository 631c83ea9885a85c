package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/tui/components"
	"github.com/theirongolddev/runway/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const burndownCheckpoints = 6

func (a App) renderBurndownTab(cw, h int) string {
	t := theme.Active

	if a.inputErr != nil || a.outcome.Ended() || len(a.projection) == 0 {
		msg := "No projection: the semester is over."
		if a.inputErr != nil {
			msg = "No projection: " + a.inputErr.Error()
		}
		return components.ContentCard("Burn-down", lipgloss.NewStyle().Foreground(t.TextDim).Render(msg), cw)
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	values := a.projection.Values()
	labels := make([]string, len(a.projection))
	for i, pt := range a.projection {
		labels[i] = a.inputs.Today.AddDate(0, 0, pt.Day).Format("Jan 02")
	}

	// Chart takes whatever height the checkpoint card leaves over.
	tableH := burndownCheckpoints + 5
	chartH := h - tableH - 3
	if chartH < 6 {
		chartH = 6
	}
	innerW := components.CardInnerWidth(cw)
	chart := components.BalanceChart(values, labels, innerW, chartH)

	title := fmt.Sprintf("Available cash over %s at %s/day",
		cli.FormatDayCount(len(a.projection)), cli.FormatMoney(a.outcome.Result.DailyBudget, a.currency))

	var b strings.Builder
	b.WriteString(components.ContentCard(title, chart, cw))
	b.WriteString("\n")

	// Checkpoints
	var tbl strings.Builder
	tbl.WriteString(labelStyle.Render(fmt.Sprintf("%-6s %-12s %16s", "Day", "Date", "Balance")))
	tbl.WriteString("\n")
	for _, idx := range checkpointIndexes(len(a.projection), burndownCheckpoints) {
		pt := a.projection[idx]
		style := valueStyle
		if !pt.Balance.IsPositive() {
			style = lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
		}
		tbl.WriteString(style.Render(fmt.Sprintf("%-6d %-12s %16s",
			pt.Day,
			cli.FormatDate(a.inputs.Today.AddDate(0, 0, pt.Day)),
			cli.FormatMoney(pt.Balance, a.currency))))
		tbl.WriteString("\n")
	}
	if day, ok := a.projection.ZeroCrossing(); ok {
		tbl.WriteString(lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface).
			Render(fmt.Sprintf("Available cash is gone from day %d (%s).", day,
				cli.FormatDate(a.inputs.Today.AddDate(0, 0, day)))))
	} else {
		tbl.WriteString(dimStyle.Render("Spending exactly the daily budget lands on zero at the semester end."))
	}

	b.WriteString(components.ContentCard("Checkpoints", tbl.String(), cw))
	return b.String()
}

// checkpointIndexes returns up to n evenly spaced indexes into a series of
// length total, always including the first and last.
func checkpointIndexes(total, n int) []int {
	if total <= 0 {
		return nil
	}
	if total <= n {
		idx := make([]int, total)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	if n < 2 {
		return []int{total - 1}
	}
	idx := make([]int, 0, n)
	step := float64(total-1) / float64(n-1)
	for i := 0; i < n; i++ {
		idx = append(idx, int(float64(i)*step+0.5))
	}
	return idx
}
