package cmd

import (
	"fmt"

	"github.com/theirongolddev/runway/internal/cli"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Daily budget and where the balance goes",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}
	out, err := computeOrExplain(s)
	if err != nil {
		return err
	}

	if out.Ended() {
		if flagQuiet {
			fmt.Println(cli.FormatMoney(decimal.Zero, s.currency))
			return nil
		}
		printEnded(out, s)
		return nil
	}

	r := out.Result
	if flagQuiet {
		fmt.Println(cli.FormatMoney(r.DailyBudget, s.currency))
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("RUNWAY  %s until %s",
		cli.FormatDayCount(r.DaysRemaining), cli.FormatDate(s.inputs.SemesterEnd))))
	fmt.Println()

	rows := [][]string{
		{"Current balance", cli.FormatMoney(s.inputs.CurrentBalance, s.currency)},
		{"Fixed costs", cli.FormatMoney(s.inputs.FixedCosts, s.currency)},
		{fmt.Sprintf("Emergency fund (%s)", cli.FormatPercent(s.inputs.BufferPercent)), cli.FormatMoney(r.EmergencyFund, s.currency)},
		{"---"},
		{"Available cash", cli.FormatMoney(r.AvailableCash, s.currency)},
		{"Days remaining", cli.FormatNumber(int64(r.DaysRemaining))},
		{"Daily budget", cli.FormatMoney(r.DailyBudget, s.currency) + "/day"},
	}
	if r.InDebt() {
		rows = append(rows, []string{"Deficit", cli.FormatMoney(r.Deficit, s.currency)})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	printDebt(r, s.currency)
	fmt.Println()
	return nil
}
