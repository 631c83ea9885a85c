package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/tui/components"
	"github.com/theirongolddev/runway/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldBalance = iota
	settingsFieldFixedCosts
	settingsFieldSemesterEnd
	settingsFieldBuffer
	settingsFieldCurrency
	settingsFieldPolicy
	settingsFieldMultiplier
	settingsFieldUnitPrice
	settingsFieldUnitLabel
	settingsFieldTheme
	settingsFieldAPIKey
	settingsFieldModel
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message briefly
	saveErr error // non-nil if last save failed
}

// move shifts the cursor by delta, stopping at the first and last field.
func (s *settingsState) move(delta int) {
	s.cursor = min(max(s.cursor+delta, 0), settingsFieldCount-1)
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50
	return ti
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	cfg := a.cfg
	a.settings.editing = true
	a.settings.saved = false

	ti := newSettingsInput()
	ti.EchoMode = textinput.EchoNormal

	switch a.settings.cursor {
	case settingsFieldBalance:
		ti.Placeholder = "1500"
		ti.SetValue(formatFloat(cfg.Budget.Balance))
	case settingsFieldFixedCosts:
		ti.Placeholder = "500 (rent, tuition, subscriptions)"
		ti.SetValue(formatFloat(cfg.Budget.FixedCosts))
	case settingsFieldSemesterEnd:
		ti.Placeholder = "YYYY-MM-DD"
		ti.SetValue(cfg.Budget.SemesterEnd)
	case settingsFieldBuffer:
		ti.Placeholder = fmt.Sprintf("%d-%d", model.MinBufferPercent, model.MaxBufferPercent)
		ti.SetValue(strconv.Itoa(cfg.Budget.BufferPercent))
	case settingsFieldCurrency:
		ti.Placeholder = "$, ₹, €, £ or USD, INR, EUR, GBP"
		ti.SetValue(cfg.General.Currency)
	case settingsFieldPolicy:
		ti.Placeholder = "two-tier or three-tier"
		ti.SetValue(cfg.Purchase.Policy)
	case settingsFieldMultiplier:
		ti.Placeholder = "3"
		ti.SetValue(formatFloat(cfg.Purchase.RejectMultiplier))
	case settingsFieldUnitPrice:
		ti.Placeholder = "0.50"
		ti.SetValue(formatFloat(cfg.Purchase.UnitPrice))
	case settingsFieldUnitLabel:
		ti.Placeholder = "packs of instant noodles"
		ti.SetValue(cfg.Purchase.UnitLabel)
	case settingsFieldTheme:
		ti.Placeholder = strings.Join(theme.Names(), ", ")
		ti.SetValue(cfg.Appearance.Theme)
	case settingsFieldAPIKey:
		ti.Placeholder = "AIza..."
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '*'
		ti.SetValue(cfg.Advisor.APIKey)
	case settingsFieldModel:
		ti.Placeholder = "gemini-1.5-flash"
		ti.SetValue(cfg.Advisor.Model)
	}

	ti.Focus()
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "enter":
		a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

// settingsSave validates the edited field, applies it to the running app,
// and persists the config. Invalid values leave everything unchanged.
func (a *App) settingsSave() {
	cfg := a.cfg
	val := strings.TrimSpace(a.settings.input.Value())

	if err := setSettingsField(&cfg, a.settings.cursor, val); err != nil {
		a.settings.saveErr = err
		return
	}
	if err := a.applyConfig(cfg); err != nil {
		a.settings.saveErr = err
		return
	}
	a.settings.saveErr = config.Save(cfg)
}

func setSettingsField(cfg *config.Config, field int, val string) error {
	amount := func() (float64, error) {
		d, err := model.ParseAmount(val)
		if err != nil {
			return 0, fmt.Errorf("%q is not a valid amount", val)
		}
		return d.InexactFloat64(), nil
	}

	switch field {
	case settingsFieldBalance:
		f, err := amount()
		if err != nil {
			return err
		}
		cfg.Budget.Balance = f
	case settingsFieldFixedCosts:
		f, err := amount()
		if err != nil {
			return err
		}
		cfg.Budget.FixedCosts = f
	case settingsFieldSemesterEnd:
		if val != "" {
			if _, err := time.Parse(config.DateLayout, val); err != nil {
				return fmt.Errorf("semester end must be YYYY-MM-DD")
			}
		}
		cfg.Budget.SemesterEnd = val
	case settingsFieldBuffer:
		pct, err := strconv.Atoi(strings.TrimSuffix(val, "%"))
		if err != nil || pct < model.MinBufferPercent || pct > model.MaxBufferPercent {
			return fmt.Errorf("buffer must be a whole number from %d to %d", model.MinBufferPercent, model.MaxBufferPercent)
		}
		cfg.Budget.BufferPercent = pct
	case settingsFieldCurrency:
		cfg.General.Currency = config.NormalizeCurrency(val)
	case settingsFieldPolicy:
		p, err := model.ParseTierPolicy(val)
		if err != nil {
			return err
		}
		cfg.Purchase.Policy = string(p)
	case settingsFieldMultiplier:
		f, err := amount()
		if err != nil || f < 1 {
			return fmt.Errorf("reject multiplier must be at least 1")
		}
		cfg.Purchase.RejectMultiplier = f
	case settingsFieldUnitPrice:
		f, err := amount()
		if err != nil || f <= 0 {
			return fmt.Errorf("unit price must be greater than zero")
		}
		cfg.Purchase.UnitPrice = f
	case settingsFieldUnitLabel:
		cfg.Purchase.UnitLabel = val
	case settingsFieldTheme:
		if !theme.Valid(val) {
			return fmt.Errorf("unknown theme %q", val)
		}
		cfg.Appearance.Theme = val
	case settingsFieldAPIKey:
		cfg.Advisor.APIKey = val
	case settingsFieldModel:
		cfg.Advisor.Model = strings.TrimPrefix(val, "models/")
	}
	return nil
}

func maskKey(key string) string {
	switch {
	case key == "":
		return "(not set)"
	case len(key) > 12:
		return key[:6] + "..." + key[len(key)-4:]
	default:
		return "****"
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// settingRow is one label/value line of the settings card.
type settingRow struct {
	label string
	value string
}

func (a App) settingRows() []settingRow {
	cfg := a.cfg
	keyDisplay := maskKey(cfg.Advisor.APIKey)
	if envKey := config.GetAPIKey(cfg); envKey != "" && envKey != strings.TrimSpace(cfg.Advisor.APIKey) {
		keyDisplay = maskKey(envKey) + " (from environment)"
	}
	return []settingRow{
		{"Balance", cli.FormatMoney(a.inputs.CurrentBalance, a.currency)},
		{"Fixed Costs", cli.FormatMoney(a.inputs.FixedCosts, a.currency)},
		{"Semester End", orDefault(cfg.Budget.SemesterEnd, fmt.Sprintf("(%d days from today)", config.DefaultSemesterDays))},
		{"Buffer", cli.FormatPercent(cfg.Budget.BufferPercent)},
		{"Currency", a.currency},
		{"Verdict Policy", string(a.tiers.Policy)},
		{"Reject Multiplier", a.tiers.RejectMultiplier.String() + "x daily budget"},
		{"Unit Price", cli.FormatMoney(a.tiers.UnitPrice, a.currency)},
		{"Unit Label", a.tiers.UnitLabel},
		{"Theme", cfg.Appearance.Theme},
		{"Gemini API Key", keyDisplay},
		{"Gemini Model", orDefault(cfg.Advisor.Model, "(default)")},
	}
}

// renderSettingRow draws row i. The cursor row is highlighted across the
// full card width, or replaced by the text input while editing.
func (a App) renderSettingRow(i int, r settingRow, innerW int) string {
	t := theme.Active
	label := fmt.Sprintf("%-18s ", r.label+":")

	if i != a.settings.cursor {
		plain := lipgloss.NewStyle().Background(t.Surface)
		return plain.Render("  ") +
			plain.Foreground(t.TextMuted).Render(label) +
			plain.Foreground(t.TextPrimary).Render(r.value)
	}

	hi := lipgloss.NewStyle().Background(t.SurfaceBright)
	marker := hi.Foreground(t.AccentBright).Render("▸ ")
	if a.settings.editing {
		return marker +
			lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Render(fmt.Sprintf("%-18s ", r.label)) +
			a.settings.input.View()
	}
	line := marker +
		hi.Foreground(t.Accent).Bold(true).Render(label) +
		hi.Foreground(t.TextPrimary).Bold(true).Render(r.value)
	if pad := innerW - lipgloss.Width(line); pad > 0 {
		line += hi.Render(strings.Repeat(" ", pad))
	}
	return line
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	warn := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)

	innerW := components.CardInnerWidth(cw)
	var form strings.Builder
	for i, r := range a.settingRows() {
		form.WriteString(a.renderSettingRow(i, r, innerW) + "\n")
	}
	switch {
	case a.settings.saveErr != nil:
		form.WriteString("\n" + warn.Render("Not saved: "+a.settings.saveErr.Error()))
	case a.settings.saved:
		form.WriteString("\n" + lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface).Render("Saved!"))
	}
	form.WriteString("\n" + muted.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	info := muted.Render("Config file: ") + value.Render(config.ConfigPath()) + "\n" +
		muted.Render("Today:       ") + value.Render(cli.FormatDate(a.inputs.Today))
	if a.setupErr != nil {
		info += "\n" + warn.Render("Setup was not saved: "+a.setupErr.Error())
	}

	return components.ContentCard("Settings", form.String(), cw) + "\n" +
		components.ContentCard("General", info, cw)
}
