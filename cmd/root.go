package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/engine"
	"github.com/theirongolddev/runway/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagBalance    string
	flagFixed      string
	flagEnd        string
	flagBuffer     int
	flagToday      string
	flagCurrency   string
	flagPolicy     string
	flagMultiplier string
	flagUnitPrice  string
	flagUnitLabel  string
	flagQuiet      bool
	flagVerbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "runway",
	Short: "Student budget runway calculator",
	Long:  "Work out a safe daily spend until the semester ends, and check whether a purchase fits.",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if err := config.LoadDotEnv(".env"); err != nil && !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Ignoring .env: %v\n", err)
		}
	},
	RunE:         runSummary,
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagBalance, "balance", "", "Current balance (overrides config)")
	pf.StringVar(&flagFixed, "fixed", "", "Fixed costs until the semester ends")
	pf.StringVar(&flagEnd, "end", "", "Semester end date (YYYY-MM-DD)")
	pf.IntVar(&flagBuffer, "buffer", 10, "Emergency buffer percent (0-30)")
	pf.StringVar(&flagToday, "today", "", "Evaluate as of this date (YYYY-MM-DD)")
	pf.StringVar(&flagCurrency, "currency", "", "Currency symbol or code ($, INR, EUR, ...)")
	pf.StringVar(&flagPolicy, "policy", "", "Verdict policy: two-tier or three-tier")
	pf.StringVar(&flagMultiplier, "multiplier", "", "Risky band upper bound as a multiple of the daily budget")
	pf.StringVar(&flagUnitPrice, "unit-price", "", "Price of the reference unit")
	pf.StringVar(&flagUnitLabel, "unit-label", "", "Label of the reference unit")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Print only the essential figure")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Log advisor and server details to stderr")
}

// session is the resolved state shared by every command: config merged with
// any explicitly set flags.
type session struct {
	cfg      config.Config
	inputs   model.Inputs
	tiers    model.TierConfig
	currency string
}

// loadSession loads the config and applies flag overrides. Flags only win
// when the user actually set them.
func loadSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	changed := func(name string) bool {
		f := flags.Lookup(name)
		return f != nil && f.Changed
	}

	today := engine.Today(time.Now())
	if changed("today") {
		if today, err = parseDate("--today", flagToday); err != nil {
			return nil, err
		}
	}
	if changed("currency") {
		cfg.General.Currency = flagCurrency
	}
	if changed("end") {
		if _, err := parseDate("--end", flagEnd); err != nil {
			return nil, err
		}
		cfg.Budget.SemesterEnd = strings.TrimSpace(flagEnd)
	}

	in, err := cfg.Inputs(today)
	if err != nil {
		return nil, err
	}
	if changed("balance") {
		if in.CurrentBalance, err = parseAmountFlag("--balance", flagBalance); err != nil {
			return nil, err
		}
	}
	if changed("fixed") {
		if in.FixedCosts, err = parseAmountFlag("--fixed", flagFixed); err != nil {
			return nil, err
		}
	}
	if changed("buffer") {
		in.BufferPercent = flagBuffer
	}

	tiers, err := cfg.Tiers()
	if err != nil {
		return nil, err
	}
	if changed("policy") {
		if tiers.Policy, err = model.ParseTierPolicy(flagPolicy); err != nil {
			return nil, err
		}
	}
	if changed("multiplier") {
		if tiers.RejectMultiplier, err = parseAmountFlag("--multiplier", flagMultiplier); err != nil {
			return nil, err
		}
	}
	if changed("unit-price") {
		if tiers.UnitPrice, err = parseAmountFlag("--unit-price", flagUnitPrice); err != nil {
			return nil, err
		}
	}
	if changed("unit-label") {
		tiers.UnitLabel = strings.TrimSpace(flagUnitLabel)
	}
	if err := engine.ValidateTierConfig(tiers); err != nil {
		return nil, err
	}

	return &session{
		cfg:      cfg,
		inputs:   in,
		tiers:    tiers,
		currency: config.NormalizeCurrency(cfg.General.Currency),
	}, nil
}

func parseDate(flag, s string) (time.Time, error) {
	t, err := time.Parse(config.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: want YYYY-MM-DD, got %q", flag, s)
	}
	return t, nil
}
