package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/engine"
	"github.com/theirongolddev/runway/internal/model"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	flagBurndownFormat string
	flagBurndownEvery  int
)

var burndownCmd = &cobra.Command{
	Use:   "burndown",
	Short: "Projected available cash for each remaining day",
	RunE:  runBurndown,
}

func init() {
	burndownCmd.Flags().StringVarP(&flagBurndownFormat, "format", "f", "table", "Output format: table, csv, json, yaml")
	burndownCmd.Flags().IntVar(&flagBurndownEvery, "every", 7, "Table only: show every Nth day")
	rootCmd.AddCommand(burndownCmd)
}

// burndownPoint is one exported day of the projection.
type burndownPoint struct {
	Day     int    `json:"day" yaml:"day"`
	Date    string `json:"date" yaml:"date"`
	Balance string `json:"balance" yaml:"balance"`
}

func exportPoints(p model.Projection, today time.Time) []burndownPoint {
	out := make([]burndownPoint, len(p))
	for i, pt := range p {
		out[i] = burndownPoint{
			Day:     pt.Day,
			Date:    today.AddDate(0, 0, pt.Day).Format(config.DateLayout),
			Balance: pt.Balance.StringFixed(2),
		}
	}
	return out
}

func runBurndown(cmd *cobra.Command, _ []string) error {
	switch flagBurndownFormat {
	case "table", "csv", "json", "yaml":
	default:
		return fmt.Errorf("--format: unknown format %q (want table, csv, json or yaml)", flagBurndownFormat)
	}

	s, err := loadSession(cmd)
	if err != nil {
		return err
	}
	out, err := computeOrExplain(s)
	if err != nil {
		return err
	}

	var proj model.Projection
	if !out.Ended() {
		proj = engine.ComputeProjection(*out.Result)
	}

	switch flagBurndownFormat {
	case "csv":
		return writeBurndownCSV(os.Stdout, exportPoints(proj, s.inputs.Today))
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(exportPoints(proj, s.inputs.Today))
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(exportPoints(proj, s.inputs.Today)); err != nil {
			return err
		}
		return enc.Close()
	}

	if out.Ended() {
		printEnded(out, s)
		return nil
	}
	renderBurndownTable(s, out.Result, proj)
	return nil
}

func writeBurndownCSV(w io.Writer, points []burndownPoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"day", "date", "balance"}); err != nil {
		return err
	}
	for _, p := range points {
		if err := cw.Write([]string{strconv.Itoa(p.Day), p.Date, p.Balance}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func renderBurndownTable(s *session, r *model.Result, proj model.Projection) {
	every := flagBurndownEvery
	if every < 1 {
		every = 1
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("BURN-DOWN  %s/day for %s",
		cli.FormatMoney(r.DailyBudget, s.currency), cli.FormatDayCount(r.DaysRemaining))))
	fmt.Println()
	fmt.Printf("  %s\n\n", cli.RenderSparkline(cli.Downsample(proj.Values(), 55)))

	rows := make([][]string, 0, len(proj)/every+2)
	for i, pt := range proj {
		if i%every != 0 && i != len(proj)-1 {
			continue
		}
		rows = append(rows, []string{
			strconv.Itoa(pt.Day),
			cli.FormatDate(s.inputs.Today.AddDate(0, 0, pt.Day)),
			cli.FormatMoney(pt.Balance, s.currency),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Day", "Date", "Available"},
		Rows:    rows,
	}))

	if day, ok := proj.ZeroCrossing(); ok {
		fmt.Println()
		fmt.Println(cli.RenderWarning(fmt.Sprintf("Available cash is gone from day %d.", day)))
	}
	printDebt(r, s.currency)
	fmt.Println()
}
