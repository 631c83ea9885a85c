package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/runway/internal/advisor"
	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/engine"
	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/tui/components"
	"github.com/theirongolddev/runway/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	affordFieldName = iota
	affordFieldCost
	affordFieldCount
)

var (
	errSemesterOver = errors.New("the semester has ended; there is no budget to spend")
	errAdvisorOff   = errors.New("no Gemini API key configured")
)

// affordState tracks the purchase query on the Afford tab.
type affordState struct {
	editing bool
	focus   int
	name    textinput.Model
	cost    textinput.Model

	evaluated bool
	verdict   model.Verdict
	evalErr   error

	advising  bool
	advice    string
	adviceErr error
	adviceSeq int // incremented per request; stale replies are dropped
}

func newAffordState() affordState {
	name := textinput.New()
	name.Placeholder = "new headphones"
	name.CharLimit = 80
	name.Width = 40

	cost := textinput.New()
	cost.Placeholder = "79.99"
	cost.CharLimit = 20
	cost.Width = 20

	return affordState{name: name, cost: cost}
}

func (s *affordState) setFocus(i int) tea.Cmd {
	s.focus = i
	if i == affordFieldName {
		s.cost.Blur()
		return s.name.Focus()
	}
	s.name.Blur()
	return s.cost.Focus()
}

func (s affordState) updateFocused(msg tea.Msg) (affordState, tea.Cmd) {
	var cmd tea.Cmd
	if s.focus == affordFieldName {
		s.name, cmd = s.name.Update(msg)
	} else {
		s.cost, cmd = s.cost.Update(msg)
	}
	return s, cmd
}

func (a App) affordStartEdit() (tea.Model, tea.Cmd) {
	a.afford.editing = true
	focus := affordFieldName
	if a.afford.name.Value() != "" {
		focus = affordFieldCost
	}
	return a, a.afford.setFocus(focus)
}

func (a App) updateAffordInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.afford.editing = false
		a.afford.name.Blur()
		a.afford.cost.Blur()
		return a, nil
	case "tab", "shift+tab", "down", "up":
		return a, a.afford.setFocus((a.afford.focus + 1) % affordFieldCount)
	case "enter":
		if a.afford.focus == affordFieldName {
			return a, a.afford.setFocus(affordFieldCost)
		}
		a.afford.editing = false
		a.afford.name.Blur()
		a.afford.cost.Blur()
		a.afford.advice = ""
		a.afford.adviceErr = nil
		a.afford.advising = false
		a.evaluatePurchase()
		return a, nil
	}

	var cmd tea.Cmd
	a.afford, cmd = a.afford.updateFocused(msg)
	return a, cmd
}

// evaluatePurchase classifies the current query against the current budget.
func (a *App) evaluatePurchase() {
	a.afford.evaluated = true
	a.afford.verdict = model.Verdict{}

	cost, err := model.ParseAmount(a.afford.cost.Value())
	if err != nil {
		a.afford.evalErr = fmt.Errorf("cost %q: %w", a.afford.cost.Value(), err)
		return
	}
	switch {
	case a.inputErr != nil:
		a.afford.evalErr = a.inputErr
		return
	case a.outcome.Ended():
		a.afford.evalErr = errSemesterOver
		return
	}

	q := model.PurchaseQuery{
		ItemName: strings.TrimSpace(a.afford.name.Value()),
		ItemCost: cost,
	}
	a.afford.verdict, a.afford.evalErr = engine.EvaluatePurchase(*a.outcome.Result, q, a.tiers)
}

// requestAdvice starts an advisor call for the evaluated query. The verdict
// is already on screen and is never changed by the outcome.
func (a App) requestAdvice() (tea.Model, tea.Cmd) {
	if !a.afford.evaluated || a.afford.evalErr != nil || a.afford.advising {
		return a, nil
	}
	if a.advisor == nil {
		a.afford.adviceErr = errAdvisorOff
		return a, nil
	}

	r := a.outcome.Result
	req := advisor.Request{
		DailyBudget:   r.DailyBudget,
		AvailableCash: r.AvailableCash,
		DaysRemaining: r.DaysRemaining,
		Item:          a.afford.verdict.ItemName,
		Price:         a.afford.verdict.ItemCost,
		Currency:      a.currency,
	}

	a.afford.adviceSeq++
	a.afford.advising = true
	a.afford.advice = ""
	a.afford.adviceErr = nil
	return a, tea.Batch(a.spinner.Tick, adviceCmd(a.advisor, req, a.afford.adviceSeq))
}

func adviceErrorText(err error) string {
	switch {
	case errors.Is(err, advisor.ErrNoCredential), errors.Is(err, errAdvisorOff):
		return "No Gemini API key configured. Add one in Settings to get advice."
	case errors.Is(err, advisor.ErrUnauthorized):
		return "The Gemini API key was rejected. Check it in Settings."
	case errors.Is(err, advisor.ErrQuotaExceeded):
		return "Gemini quota exceeded. Try again later."
	case errors.Is(err, advisor.ErrEmptyResponse):
		return "The advisor returned no text."
	default:
		return "Advisor unavailable: " + err.Error()
	}
}

func tierColor(tier model.Tier) lipgloss.Color {
	t := theme.Active
	switch tier {
	case model.TierApproved:
		return t.Approved
	case model.TierRisky:
		return t.Risky
	default:
		return t.Rejected
	}
}

func tierHeadline(tier model.Tier) string {
	switch tier {
	case model.TierApproved:
		return "✓ APPROVED"
	case model.TierRisky:
		return "! RISKY"
	default:
		return "✗ REJECTED"
	}
}

func (a App) renderAffordTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)

	// Query card
	var query strings.Builder
	fields := []struct {
		label string
		input textinput.Model
	}{
		{"Item", a.afford.name},
		{"Cost", a.afford.cost},
	}
	for i, f := range fields {
		marker := "  "
		style := labelStyle
		if a.afford.editing && a.afford.focus == i {
			marker = "▸ "
			style = accentStyle
		}
		query.WriteString(accentStyle.Render(marker))
		query.WriteString(style.Render(fmt.Sprintf("%-6s", f.label+":")))
		switch {
		case a.afford.editing:
			query.WriteString(f.input.View())
		case f.input.Value() == "":
			query.WriteString(dimStyle.Render("(empty)"))
		default:
			val := f.input.Value()
			if i == affordFieldCost {
				if d, err := model.ParseAmount(val); err == nil {
					val = cli.FormatMoney(d, a.currency)
				}
			}
			query.WriteString(valueStyle.Render(val))
		}
		query.WriteString("\n")
	}
	if !a.afford.editing {
		query.WriteString("\n")
		query.WriteString(dimStyle.Render("[e] enter a purchase  [g] ask the advisor  [c] clear"))
	}

	var b strings.Builder
	b.WriteString(components.ContentCard("Can I afford it?", query.String(), cw))
	b.WriteString("\n")

	if !a.afford.evaluated {
		return b.String()
	}

	if a.afford.evalErr != nil {
		b.WriteString(components.BannerCard("Cannot evaluate", a.afford.evalErr.Error(), t.Orange, cw))
		return b.String()
	}

	// Verdict
	v := a.afford.verdict
	color := tierColor(v.Tier)
	headline := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true).Render(tierHeadline(v.Tier))

	item := v.ItemName
	if item == "" {
		item = "this purchase"
	}

	var days string
	if v.Unbounded() {
		days = "there is no daily budget left to spend"
	} else {
		days = fmt.Sprintf("%s of your daily budget (%s/day)",
			cli.FormatDays(v.DaysOfBudget), cli.FormatMoney(v.DailyBudget, a.currency))
	}

	var verdict strings.Builder
	verdict.WriteString(headline)
	verdict.WriteString("\n\n")
	verdict.WriteString(labelStyle.Render(fmt.Sprintf("%s costs ", item)))
	verdict.WriteString(valueStyle.Render(cli.FormatMoney(v.ItemCost, a.currency)))
	verdict.WriteString("\n")
	verdict.WriteString(labelStyle.Render("That is "))
	verdict.WriteString(valueStyle.Render(days))
	verdict.WriteString("\n")
	verdict.WriteString(labelStyle.Render("Or "))
	verdict.WriteString(accentStyle.Render(fmt.Sprintf("%s %s", cli.FormatNumber(v.UnitCount), v.UnitLabel)))

	b.WriteString(components.BannerCard("Verdict", verdict.String(), color, cw))

	// Advice
	var advice string
	switch {
	case a.afford.advising:
		advice = a.spinner.View() + dimStyle.Render(" asking the advisor...")
	case a.afford.adviceErr != nil:
		advice = warnStyle.Render(adviceErrorText(a.afford.adviceErr))
	case a.afford.advice != "":
		advice = valueStyle.Width(components.CardInnerWidth(cw)).Render(a.afford.advice)
	}
	if advice != "" {
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Advisor", advice, cw))
	}

	return b.String()
}
