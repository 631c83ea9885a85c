package cli

import (
	"math"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		in       string
		currency string
		want     string
	}{
		{"0", "$", "$0.00"},
		{"9.4444", "$", "$9.44"},
		{"1234.5", "€", "€1,234.50"},
		{"1500000", "₹", "₹1,500,000.00"},
		{"-200", "$", "-$200.00"},
		{"0.005", "£", "£0.01"},
	}
	for _, tc := range cases {
		got := FormatMoney(decimal.RequireFromString(tc.in), tc.currency)
		if got != tc.want {
			t.Fatalf("FormatMoney(%s, %q) = %q, want %q", tc.in, tc.currency, got, tc.want)
		}
	}
}

func TestFormatDays(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0 days"},
		{1, "1 day"},
		{5.2966, "5.3 days"},
		{12, "12 days"},
		{math.Inf(1), "∞ days"},
	}
	for _, tc := range cases {
		if got := FormatDays(tc.in); got != tc.want {
			t.Fatalf("FormatDays(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
	if got := FormatDayCount(1); got != "1 day" {
		t.Fatalf("FormatDayCount(1) = %q", got)
	}
	if got := FormatDayCount(-3); got != "-3 days" {
		t.Fatalf("FormatDayCount(-3) = %q", got)
	}
}

func TestFormatNumber(t *testing.T) {
	cases := map[int64]string{0: "0", 999: "999", 1000: "1,000", 1234567: "1,234,567", -4500: "-4,500"}
	for in, want := range cases {
		if got := FormatNumber(in); got != want {
			t.Fatalf("FormatNumber(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestRenderSparkline_HandlesNegativeSeries(t *testing.T) {
	got := []rune(RenderSparkline([]float64{100, 0, -100}))
	if len(got) != 3 {
		t.Fatalf("sparkline length = %d, want 3", len(got))
	}
	if got[0] != '█' || got[2] != '▁' {
		t.Fatalf("sparkline = %q, want high-to-low", string(got))
	}

	flat := RenderSparkline([]float64{-200, -200})
	if flat != "██" {
		t.Fatalf("flat sparkline = %q", flat)
	}
}

func TestDownsample(t *testing.T) {
	values := make([]float64, 90)
	for i := range values {
		values[i] = float64(i)
	}
	got := Downsample(values, 10)
	if len(got) != 10 {
		t.Fatalf("len = %d, want 10", len(got))
	}
	if got[0] != 0 || got[9] != 89 {
		t.Fatalf("endpoints = %v, %v; want 0, 89", got[0], got[9])
	}
	if short := Downsample(values[:5], 10); len(short) != 5 {
		t.Fatalf("short series resized to %d", len(short))
	}
	if one := Downsample(values, 1); len(one) != 1 || one[0] != 89 {
		t.Fatalf("Downsample(n=1) = %v", one)
	}
}

func TestRenderTable_AlignsMultiByteCells(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Balance", "₹1,500.00"},
			{"---"},
			{"Daily", "₹9.44"},
		},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("table has %d lines, want 7:\n%s", len(lines), out)
	}
}
