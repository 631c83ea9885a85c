package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SetupValues holds the answers collected by the setup form. Amounts and the
// date are kept as text so the form can validate them as the user types.
type SetupValues struct {
	Currency    string
	Balance     string
	FixedCosts  string
	SemesterEnd string
	Buffer      int
	Policy      string
	Theme       string
	APIKey      string
}

var bufferOptions = []int{0, 5, 10, 15, 20, 25, 30}

// NewSetupValues seeds the form from an existing config.
func NewSetupValues(cfg config.Config, today time.Time) *SetupValues {
	end := cfg.Budget.SemesterEnd
	if end == "" {
		if t, err := cfg.SemesterEnd(today); err == nil {
			end = t.Format(config.DateLayout)
		}
	}
	return &SetupValues{
		Currency:    config.NormalizeCurrency(cfg.General.Currency),
		Balance:     strconv.FormatFloat(cfg.Budget.Balance, 'f', -1, 64),
		FixedCosts:  strconv.FormatFloat(cfg.Budget.FixedCosts, 'f', -1, 64),
		SemesterEnd: end,
		Buffer:      cfg.Budget.BufferPercent,
		Policy:      cfg.Purchase.Policy,
		Theme:       cfg.Appearance.Theme,
		APIKey:      cfg.Advisor.APIKey,
	}
}

// NewSetupForm builds the first-run form writing into v.
func NewSetupForm(v *SetupValues) *huh.Form {
	currencyOpts := make([]huh.Option[string], 0, len(config.Currencies))
	for _, c := range config.Currencies {
		currencyOpts = append(currencyOpts, huh.NewOption(fmt.Sprintf("%s  %s (%s)", c.Symbol, c.Name, c.Code), c.Symbol))
	}

	bufferOpts := make([]huh.Option[int], 0, len(bufferOptions))
	for _, pct := range bufferOptions {
		bufferOpts = append(bufferOpts, huh.NewOption(fmt.Sprintf("%d%%", pct), pct))
	}

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, th := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(th.Name, th.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to runway").
				Description("Tell us what you have and when the semester ends.\nWe'll work out what you can safely spend each day."),
			huh.NewSelect[string]().
				Title("Currency").
				Options(currencyOpts...).
				Value(&v.Currency),
			huh.NewInput().
				Title("Current balance").
				Placeholder("1500").
				Value(&v.Balance).
				Validate(validateAmount),
			huh.NewInput().
				Title("Fixed costs until semester end").
				Description("Rent, tuition installments, subscriptions.").
				Placeholder("500").
				Value(&v.FixedCosts).
				Validate(validateAmount),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Semester end").
				Description("YYYY-MM-DD").
				Value(&v.SemesterEnd).
				Validate(validateDate),
			huh.NewSelect[int]().
				Title("Emergency buffer").
				Description("Held back from your balance and never budgeted.").
				Options(bufferOpts...).
				Value(&v.Buffer),
			huh.NewSelect[string]().
				Title("Purchase verdicts").
				Options(
					huh.NewOption("Three tiers (approved / risky / rejected)", string(model.PolicyThreeTier)),
					huh.NewOption("Two tiers (approved / rejected)", string(model.PolicyTwoTier)),
				).
				Value(&v.Policy),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&v.Theme),
			huh.NewInput().
				Title("Gemini API key (optional)").
				Description("Enables AI advice. Leave blank to skip.").
				EchoMode(huh.EchoModePassword).
				Value(&v.APIKey),
		),
	).WithShowHelp(true)
}

// Apply copies validated answers into cfg.
func (v *SetupValues) Apply(cfg *config.Config) error {
	balance, err := model.ParseAmount(v.Balance)
	if err != nil {
		return fmt.Errorf("balance: %w", err)
	}
	fixed, err := model.ParseAmount(v.FixedCosts)
	if err != nil {
		return fmt.Errorf("fixed costs: %w", err)
	}
	if err := validateDate(v.SemesterEnd); err != nil {
		return fmt.Errorf("semester end: %w", err)
	}

	cfg.General.Currency = config.NormalizeCurrency(v.Currency)
	cfg.Budget.Balance = balance.InexactFloat64()
	cfg.Budget.FixedCosts = fixed.InexactFloat64()
	cfg.Budget.SemesterEnd = strings.TrimSpace(v.SemesterEnd)
	cfg.Budget.BufferPercent = v.Buffer
	if v.Policy != "" {
		cfg.Purchase.Policy = v.Policy
	}
	if theme.Valid(v.Theme) {
		cfg.Appearance.Theme = v.Theme
	}
	if key := strings.TrimSpace(v.APIKey); key != "" {
		cfg.Advisor.APIKey = key
	}
	return nil
}

func validateAmount(s string) error {
	if _, err := model.ParseAmount(s); err != nil {
		return fmt.Errorf("enter a non-negative amount like 1500 or 1500.50")
	}
	return nil
}

func validateDate(s string) error {
	if _, err := time.Parse(config.DateLayout, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use the YYYY-MM-DD format")
	}
	return nil
}
