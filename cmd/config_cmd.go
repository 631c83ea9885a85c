// Package cmd implements the runway CLI commands.
package cmd

import (
	"fmt"

	"github.com/theirongolddev/runway/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Currency: %s\n", config.NormalizeCurrency(cfg.General.Currency))
	fmt.Println()

	fmt.Println("  [Budget]")
	fmt.Printf("    Balance:       %.2f\n", cfg.Budget.Balance)
	fmt.Printf("    Fixed costs:   %.2f\n", cfg.Budget.FixedCosts)
	if cfg.Budget.SemesterEnd != "" {
		fmt.Printf("    Semester end:  %s\n", cfg.Budget.SemesterEnd)
	} else {
		fmt.Printf("    Semester end:  not set (%d days from today)\n", config.DefaultSemesterDays)
	}
	fmt.Printf("    Buffer:        %d%%\n", cfg.Budget.BufferPercent)
	fmt.Println()

	fmt.Println("  [Purchase]")
	fmt.Printf("    Policy:            %s\n", cfg.Purchase.Policy)
	fmt.Printf("    Reject multiplier: %gx\n", cfg.Purchase.RejectMultiplier)
	fmt.Printf("    Reference unit:    %g (%s)\n", cfg.Purchase.UnitPrice, cfg.Purchase.UnitLabel)
	fmt.Println()

	fmt.Println("  [Advisor]")
	apiKey := config.GetAPIKey(cfg)
	if apiKey != "" {
		fmt.Printf("    API key: %s\n", maskAPIKey(apiKey))
	} else {
		fmt.Println("    API key: not configured")
	}
	if cfg.Advisor.Model != "" {
		fmt.Printf("    Model:   %s\n", cfg.Advisor.Model)
	}
	if cfg.Advisor.BaseURL != "" {
		fmt.Printf("    Base URL: %s\n", cfg.Advisor.BaseURL)
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address:   %s\n", cfg.Server.Addr)
	fmt.Printf("    Log level: %s\n", cfg.Log.Level)
	fmt.Println()

	fmt.Println("  Run `runway setup` to reconfigure.")
	return nil
}
