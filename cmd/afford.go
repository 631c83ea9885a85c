package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/runway/internal/engine"
	"github.com/theirongolddev/runway/internal/model"

	"github.com/spf13/cobra"
)

var affordCmd = &cobra.Command{
	Use:   "afford <cost> [item...]",
	Short: "Check whether a purchase fits the daily budget",
	Example: `  runway afford 50 headphones
  runway afford 12,99 --policy two-tier`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAfford,
}

func init() {
	rootCmd.AddCommand(affordCmd)
}

// evaluateArgs computes the budget and the verdict for "<cost> [item...]".
// ok is false when the semester is over and there is nothing to evaluate.
func evaluateArgs(cmd *cobra.Command, args []string) (*session, model.Outcome, model.Verdict, bool, error) {
	s, err := loadSession(cmd)
	if err != nil {
		return nil, model.Outcome{}, model.Verdict{}, false, err
	}
	cost, err := parseAmountFlag("cost", args[0])
	if err != nil {
		return nil, model.Outcome{}, model.Verdict{}, false, err
	}

	out, err := computeOrExplain(s)
	if err != nil {
		return nil, out, model.Verdict{}, false, err
	}
	if out.Ended() {
		return s, out, model.Verdict{}, false, nil
	}

	q := model.PurchaseQuery{
		ItemName: strings.TrimSpace(strings.Join(args[1:], " ")),
		ItemCost: cost,
	}
	v, err := engine.EvaluatePurchase(*out.Result, q, s.tiers)
	if err != nil {
		return nil, out, v, false, err
	}
	return s, out, v, true, nil
}

func runAfford(cmd *cobra.Command, args []string) error {
	s, out, v, ok, err := evaluateArgs(cmd, args)
	if err != nil {
		return err
	}
	if !ok {
		printEnded(out, s)
		return nil
	}

	if flagQuiet {
		fmt.Println(v.Tier)
		return nil
	}

	printVerdict(v, s.currency)
	printDebt(out.Result, s.currency)
	fmt.Println()
	return nil
}
