package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/tui/components"
	"github.com/theirongolddev/runway/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

func (a App) renderDashboardTab(cw int) string {
	t := theme.Active
	var b strings.Builder

	if a.inputErr != nil {
		b.WriteString(components.BannerCard("Invalid budget inputs", a.inputErr.Error()+"\nFix them in Settings [x].", t.Red, cw))
		return b.String()
	}

	if a.outcome.Ended() {
		body := fmt.Sprintf("The semester ended %s ago on %s. Set a new end date in Settings [x].",
			cli.FormatDayCount(-a.outcome.DaysRemaining), cli.FormatDate(a.inputs.SemesterEnd))
		if a.outcome.DaysRemaining == 0 {
			body = "The semester ends today. There are no days left to budget for."
		}
		b.WriteString(components.BannerCard("Semester over", body, t.Yellow, cw))
		return b.String()
	}

	r := a.outcome.Result
	dailyColor := t.GreenBright
	if r.DailyBudget.IsZero() {
		dailyColor = t.Red
	}
	availColor := t.TextPrimary
	if r.InDebt() {
		availColor = t.Red
	}

	// Row 1: headline metrics
	metrics := []components.Metric{
		{
			Label: "Days Left",
			Value: cli.FormatNumber(int64(r.DaysRemaining)),
			Note:  "until " + cli.FormatDate(a.inputs.SemesterEnd),
		},
		{
			Label: "Daily Budget",
			Value: cli.FormatMoney(r.DailyBudget, a.currency),
			Note:  "per day",
			Color: dailyColor,
		},
		{
			Label: "Available",
			Value: cli.FormatMoney(r.AvailableCash, a.currency),
			Note:  "after costs + buffer",
			Color: availColor,
		},
		{
			Label: "Emergency Fund",
			Value: cli.FormatMoney(r.EmergencyFund, a.currency),
			Note:  cli.FormatPercent(a.inputs.BufferPercent) + " of balance",
		},
	}
	if a.isCompactLayout() {
		b.WriteString(components.MetricCardRow(metrics[:2], cw))
		b.WriteString("\n")
		b.WriteString(components.MetricCardRow(metrics[2:], cw))
	} else {
		b.WriteString(components.MetricCardRow(metrics, cw))
	}
	b.WriteString("\n")

	// Debt warning
	if r.InDebt() {
		body := fmt.Sprintf("Fixed costs and the emergency buffer exceed your balance by %s.\nEvery purchase is rejected until the gap is closed.",
			cli.FormatMoney(r.Deficit, a.currency))
		b.WriteString(components.BannerCard("⚠ Over budget", body, t.Red, cw))
		b.WriteString("\n")
	}

	// Where the balance goes
	labelW := 14
	barW := components.CardInnerWidth(cw) - labelW - 30
	if barW < 10 {
		barW = 10
	}

	var split strings.Builder
	balance := a.inputs.CurrentBalance
	if balance.IsPositive() {
		share := func(part decimal.Decimal) float64 {
			return part.Div(balance).InexactFloat64()
		}
		split.WriteString(components.SpendBar("Fixed costs", share(a.inputs.FixedCosts),
			cli.FormatMoney(a.inputs.FixedCosts, a.currency), labelW, barW))
		split.WriteString("\n")
		split.WriteString(components.SpendBar("Emergency", share(r.EmergencyFund),
			cli.FormatMoney(r.EmergencyFund, a.currency), labelW, barW))
		split.WriteString("\n")
		spendable := decimal.Max(r.AvailableCash, decimal.Zero)
		split.WriteString(components.SpendBar("Spendable", share(spendable),
			cli.FormatMoney(spendable, a.currency), labelW, barW))
	} else {
		split.WriteString(lipgloss.NewStyle().Foreground(t.TextDim).Render("Balance is zero."))
	}
	b.WriteString(components.ContentCard("Balance of "+cli.FormatMoney(balance, a.currency), split.String(), cw))
	b.WriteString("\n")

	// Burn-down preview
	values := cli.Downsample(a.projection.Values(), components.CardInnerWidth(cw))
	preview := components.Sparkline(values, t.Accent)
	caption := lipgloss.NewStyle().Foreground(t.TextDim).
		Render(fmt.Sprintf("%s today → %s on the last day  [b] for detail",
			cli.FormatMoney(r.AvailableCash, a.currency), a.lastDayBalance()))
	b.WriteString(components.ContentCard("Burn-down", preview+"\n"+caption, cw))

	return b.String()
}

func (a App) lastDayBalance() string {
	if len(a.projection) == 0 {
		return "-"
	}
	return cli.FormatMoney(a.projection[len(a.projection)-1].Balance, a.currency)
}
