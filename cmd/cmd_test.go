package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/runway/internal/engine"
	"github.com/theirongolddev/runway/internal/model"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// parseRoot resets the root flags and parses args against a fresh config dir.
func parseRoot(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, name := range []string{"RUNWAY_GEMINI_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		t.Setenv(name, "")
	}

	for _, name := range []string{
		"balance", "fixed", "end", "buffer", "today", "currency",
		"policy", "multiplier", "unit-price", "unit-label", "quiet", "verbose",
	} {
		f := rootCmd.PersistentFlags().Lookup(name)
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	if err := rootCmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags(%v): %v", args, err)
	}
	return rootCmd
}

func TestLoadSessionFlagOverrides(t *testing.T) {
	cmd := parseRoot(t,
		"--today", "2026-09-01",
		"--end", "2026-11-30",
		"--balance", "2000",
		"--fixed", "200",
		"--buffer", "0",
		"--currency", "EUR",
		"--policy", "two-tier",
		"--unit-price", "2",
		"--unit-label", "coffees",
	)

	s, err := loadSession(cmd)
	if err != nil {
		t.Fatalf("loadSession: %v", err)
	}
	if !s.inputs.CurrentBalance.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("balance = %s, want 2000", s.inputs.CurrentBalance)
	}
	if s.inputs.BufferPercent != 0 {
		t.Fatalf("buffer = %d, want 0", s.inputs.BufferPercent)
	}
	if s.currency != "€" {
		t.Fatalf("currency = %q, want €", s.currency)
	}
	if s.tiers.Policy != model.PolicyTwoTier || s.tiers.UnitLabel != "coffees" {
		t.Fatalf("tiers = %+v", s.tiers)
	}

	out, err := engine.ComputeBudget(s.inputs)
	if err != nil {
		t.Fatalf("ComputeBudget: %v", err)
	}
	if out.DaysRemaining != 90 {
		t.Fatalf("DaysRemaining = %d, want 90", out.DaysRemaining)
	}
	if !out.Result.DailyBudget.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("DailyBudget = %s, want 20", out.Result.DailyBudget)
	}
}

func TestLoadSessionUnsetFlagsKeepConfig(t *testing.T) {
	cmd := parseRoot(t, "--today", "2026-09-01")
	s, err := loadSession(cmd)
	if err != nil {
		t.Fatalf("loadSession: %v", err)
	}
	// Default config: 1500 balance, 10% buffer, semester 90 days out.
	if !s.inputs.CurrentBalance.Equal(decimal.NewFromInt(1500)) || s.inputs.BufferPercent != 10 {
		t.Fatalf("inputs = %+v", s.inputs)
	}
	want := time.Date(2026, 11, 30, 0, 0, 0, 0, time.UTC)
	if !s.inputs.SemesterEnd.Equal(want) {
		t.Fatalf("SemesterEnd = %v, want %v", s.inputs.SemesterEnd, want)
	}
}

func TestLoadSessionRejectsBadFlags(t *testing.T) {
	tests := [][]string{
		{"--balance", "-5"},
		{"--today", "01/09/2026"},
		{"--end", "soon"},
		{"--policy", "five-tier"},
		{"--unit-price", "0"},
		{"--multiplier", "0.5"},
	}
	for _, args := range tests {
		cmd := parseRoot(t, args...)
		if _, err := loadSession(cmd); err == nil {
			t.Fatalf("loadSession(%v): expected error", args)
		}
	}
}

func writeConfig(t *testing.T, body string) {
	t.Helper()
	dir := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "runway")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoadSessionZeroUnitPriceInConfig(t *testing.T) {
	cmd := parseRoot(t, "--today", "2026-09-01")
	writeConfig(t, "[purchase]\npolicy = \"three-tier\"\nreject_multiplier = 3\nunit_price = 0\n")
	if _, err := loadSession(cmd); !errors.Is(err, engine.ErrInvalidInput) {
		t.Fatalf("loadSession err = %v, want ErrInvalidInput", err)
	}

	// An explicit flag replaces the bad config value.
	cmd = parseRoot(t, "--today", "2026-09-01", "--unit-price", "2")
	writeConfig(t, "[purchase]\npolicy = \"three-tier\"\nreject_multiplier = 3\nunit_price = 0\n")
	s, err := loadSession(cmd)
	if err != nil {
		t.Fatalf("loadSession with --unit-price: %v", err)
	}
	if !s.tiers.UnitPrice.Equal(decimal.NewFromInt(2)) {
		t.Fatalf("UnitPrice = %s, want 2", s.tiers.UnitPrice)
	}
}

func TestExportPointsAndCSV(t *testing.T) {
	today := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	r := model.Result{
		DaysRemaining: 3,
		AvailableCash: decimal.NewFromInt(30),
		DailyBudget:   decimal.NewFromInt(10),
	}
	points := exportPoints(engine.ComputeProjection(r), today)
	if len(points) != 3 {
		t.Fatalf("len(points) = %d, want 3", len(points))
	}
	if points[2].Date != "2026-09-03" || points[2].Balance != "10.00" {
		t.Fatalf("points[2] = %+v", points[2])
	}

	var buf bytes.Buffer
	if err := writeBurndownCSV(&buf, points); err != nil {
		t.Fatalf("writeBurndownCSV: %v", err)
	}
	want := "day,date,balance\n0,2026-09-01,30.00\n1,2026-09-02,20.00\n2,2026-09-03,10.00\n"
	if buf.String() != want {
		t.Fatalf("csv = %q, want %q", buf.String(), want)
	}
}

func TestFilterDetachArg(t *testing.T) {
	got := filterDetachArg([]string{"serve", "--detach", "--addr", ":9000", "--detach=true"})
	if strings.Join(got, " ") != "serve --addr :9000" {
		t.Fatalf("filterDetachArg = %v", got)
	}
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct{ in, want string }{
		{"AIzaSyA1234567890abcd", "AIzaSyA1...abcd"},
		{"short12", "shor..."},
		{"abc", "****"},
	}
	for _, tt := range tests {
		if got := maskAPIKey(tt.in); got != tt.want {
			t.Fatalf("maskAPIKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
