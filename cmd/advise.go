package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/theirongolddev/runway/internal/advisor"
	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/logging"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var adviseCmd = &cobra.Command{
	Use:   "advise <cost> <item...>",
	Short: "Verdict plus AI spending advice from Gemini",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runAdvise,
}

func init() {
	rootCmd.AddCommand(adviseCmd)
}

// newAdvisorClient builds the Gemini client from config. It returns nil when
// no key is configured so callers can tell "off" from a request failure.
func newAdvisorClient(cfg config.Config) *advisor.Client {
	key := config.GetAPIKey(cfg)
	if key == "" {
		return nil
	}
	var opts []advisor.Option
	if cfg.Advisor.BaseURL != "" {
		opts = append(opts, advisor.WithBaseURL(cfg.Advisor.BaseURL))
	}
	if cfg.Advisor.Model != "" {
		opts = append(opts, advisor.WithModel(cfg.Advisor.Model))
	}
	if d := cfg.AdvisorTimeout(); d > 0 {
		opts = append(opts, advisor.WithTimeout(d))
	}
	return advisor.NewClient(key, opts...)
}

// advisorFor is newAdvisorClient as an advisor.Advisor, nil without a key.
func advisorFor(cfg config.Config) advisor.Advisor {
	if c := newAdvisorClient(cfg); c != nil {
		return c
	}
	return nil
}

// cliLogger logs to stderr under --verbose and discards otherwise.
func cliLogger(cfg config.Config) *logrus.Logger {
	if !flagVerbose {
		return logging.Discard()
	}
	level := cfg.Log.Level
	if level == "" || level == "info" {
		level = "debug"
	}
	return logging.New(level, os.Stderr)
}

func adviceFailure(err error) string {
	switch {
	case errors.Is(err, advisor.ErrNoCredential):
		return "No Gemini API key. Set GEMINI_API_KEY or run `runway setup`."
	case errors.Is(err, advisor.ErrUnauthorized):
		return "Gemini rejected the API key."
	case errors.Is(err, advisor.ErrQuotaExceeded):
		return "Gemini quota exceeded; try again later."
	case errors.Is(err, advisor.ErrEmptyResponse):
		return "Gemini returned no advice for this item."
	default:
		return "Advisor unavailable: " + err.Error()
	}
}

func runAdvise(cmd *cobra.Command, args []string) error {
	s, out, v, ok, err := evaluateArgs(cmd, args)
	if err != nil {
		return err
	}
	if !ok {
		printEnded(out, s)
		return nil
	}

	// Numbers first: the verdict stands whatever the advisor does.
	printVerdict(v, s.currency)
	printDebt(out.Result, s.currency)
	fmt.Println()

	log := cliLogger(s.cfg)
	client := newAdvisorClient(s.cfg)
	if client == nil {
		fmt.Println(cli.RenderWarning(adviceFailure(advisor.ErrNoCredential)))
		fmt.Println()
		return nil
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Asking %s...\n", client.Model())
	}
	log.WithField("model", client.Model()).Debug("requesting advice")

	text, err := client.Advise(ctx, advisor.Request{
		DailyBudget:   out.Result.DailyBudget,
		AvailableCash: out.Result.AvailableCash,
		DaysRemaining: out.Result.DaysRemaining,
		Item:          v.ItemName,
		Price:         v.ItemCost,
		Currency:      s.currency,
	})
	if err != nil {
		log.WithError(err).Warn("advisor request failed")
		fmt.Println(cli.RenderWarning(adviceFailure(err)))
		fmt.Println()
		return nil
	}

	fmt.Println(cli.RenderTitle("ADVICE"))
	fmt.Println()
	fmt.Println(lipgloss.NewStyle().Width(57).PaddingLeft(2).Render(text))
	fmt.Println()
	return nil
}
