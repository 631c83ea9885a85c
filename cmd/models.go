package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/theirongolddev/runway/internal/advisor"
	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/config"

	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List Gemini models that can generate advice",
	RunE:  runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func runModels(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	client := newAdvisorClient(cfg)
	if client == nil {
		return fmt.Errorf("%w: set GEMINI_API_KEY or run `runway setup`", advisor.ErrNoCredential)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log := cliLogger(cfg)
	log.Debug("listing models")

	models, err := client.ListModels(ctx)
	if err != nil {
		log.WithError(err).Warn("listing models failed")
		return fmt.Errorf("listing models: %w", err)
	}
	if len(models) == 0 {
		fmt.Println("\n  No models support generateContent for this key.")
		return nil
	}

	if flagQuiet {
		for _, m := range models {
			fmt.Println(m.ID())
		}
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("GEMINI MODELS  %d available", len(models))))
	fmt.Println()

	rows := make([][]string, 0, len(models))
	for _, m := range models {
		id := m.ID()
		if id == client.Model() {
			id += " *"
		}
		rows = append(rows, []string{id, m.DisplayName})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Model", "Name"},
		Rows:    rows,
	}))
	fmt.Println()
	fmt.Println(cli.RenderMuted("  * current model. Change it with [advisor] model in " + config.ConfigPath()))
	return nil
}
