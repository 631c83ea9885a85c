package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/engine"
	"github.com/theirongolddev/runway/internal/model"

	"github.com/shopspring/decimal"
)

func parseAmountFlag(name, s string) (decimal.Decimal, error) {
	d, err := model.ParseAmount(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w: %q", name, err, s)
	}
	return d, nil
}

// computeOrExplain runs the engine and turns validation failures into a
// message naming the offending field.
func computeOrExplain(s *session) (model.Outcome, error) {
	out, err := engine.ComputeBudget(s.inputs)
	if err != nil {
		var ie *engine.InputError
		if errors.As(err, &ie) {
			return out, fmt.Errorf("%s %s; fix it with a flag or `runway setup`", ie.Field, ie.Reason)
		}
		return out, err
	}
	return out, nil
}

func printEnded(out model.Outcome, s *session) {
	if out.DaysRemaining == 0 {
		fmt.Println("\n  The semester ends today. There is nothing left to budget.")
	} else {
		fmt.Printf("\n  The semester ended %s ago (%s).\n",
			cli.FormatDayCount(-out.DaysRemaining), cli.FormatDate(s.inputs.SemesterEnd))
	}
	fmt.Println("  Set a new end date with --end or `runway setup`.")
	fmt.Println()
}

func printDebt(r *model.Result, currency string) {
	if !r.InDebt() {
		return
	}
	fmt.Println()
	fmt.Println(cli.RenderWarning(fmt.Sprintf(
		"Over budget by %s: fixed costs and the emergency buffer exceed your balance.",
		cli.FormatMoney(r.Deficit, currency))))
}

func printVerdict(v model.Verdict, currency string) {
	item := v.ItemName
	if item == "" {
		item = "This purchase"
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("CAN I AFFORD IT?"))
	fmt.Println()
	fmt.Printf("  Verdict: %s\n\n", cli.RenderTier(v.Tier))
	fmt.Printf("  %s costs %s\n", item, cli.FormatMoney(v.ItemCost, currency))
	if v.Unbounded() {
		fmt.Println(cli.RenderWarning("There is no daily budget left to spend."))
	} else {
		fmt.Printf("  = %s of your daily budget (%s/day)\n",
			cli.FormatDays(v.DaysOfBudget), cli.FormatMoney(v.DailyBudget, currency))
	}
	fmt.Printf("  = %s %s\n", cli.FormatNumber(v.UnitCount), v.UnitLabel)
}
