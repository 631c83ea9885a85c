package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/theirongolddev/runway/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRowSumsToTotal(t *testing.T) {
	for _, total := range []int{80, 97, 120, 181} {
		for n := 1; n <= 5; n++ {
			sum := 0
			for _, w := range LayoutRow(total, n) {
				sum += w
			}
			if sum != total {
				t.Fatalf("LayoutRow(%d, %d) sums to %d", total, n, sum)
			}
		}
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")
	row := MetricCardRow([]Metric{
		{Label: "Days Left", Value: "90"},
		{Label: "Daily Budget", Value: "₹9.44", Note: "per day", Color: theme.Active.Green},
		{Label: "Available", Value: "₹850.00"},
	}, 96)

	for i, line := range strings.Split(row, "\n") {
		if w := lipgloss.Width(line); w != 96 {
			t.Fatalf("line %d width = %d, want 96", i, w)
		}
	}
}

func TestContentCardWidthAndTitle(t *testing.T) {
	theme.SetActive("flexoki-dark")

	card := ContentCard("Checkpoints", "Day 1\nDay 30", 30)
	lines := strings.Split(card, "\n")
	// Border, title, two body lines, border.
	if len(lines) != 5 {
		t.Fatalf("card has %d lines, want 5", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 30 {
			t.Fatalf("line %d width = %d, want 30", i, w)
		}
	}

	untitled := ContentCard("", "body", 30)
	if got := len(strings.Split(untitled, "\n")); got != 3 {
		t.Fatalf("untitled card has %d lines, want 3", got)
	}
}

func TestCardInnerWidthFloor(t *testing.T) {
	if got := CardInnerWidth(40); got != 36 {
		t.Fatalf("CardInnerWidth(40) = %d, want 36", got)
	}
	if got := CardInnerWidth(5); got != minCardWidth {
		t.Fatalf("CardInnerWidth(5) = %d, want %d", got, minCardWidth)
	}
}

func TestBannerCardContainsTitle(t *testing.T) {
	out := BannerCard("IN DEBT", "short by $200.00", theme.Active.Red, 40)
	if !strings.Contains(out, "IN DEBT") || !strings.Contains(out, "$200.00") {
		t.Fatalf("banner = %q", out)
	}
}

func TestTabVisualWidth(t *testing.T) {
	dash := Tabs[0]
	if got := TabVisualWidth(dash, true); got != len("Dashboard")+2 {
		t.Fatalf("active width = %d", got)
	}
	if got := TabVisualWidth(dash, false); got != len("[D]ashboard")+2 {
		t.Fatalf("inactive width = %d", got)
	}
	settings := Tabs[len(Tabs)-1]
	if got := TabVisualWidth(settings, false); got != len("Settings[x]")+2 {
		t.Fatalf("inactive settings width = %d", got)
	}
}

func TestRenderTabBarMarksShortcuts(t *testing.T) {
	bar := RenderTabBar(1, 80)
	if w := lipgloss.Width(bar); w != 80 {
		t.Fatalf("tab bar width = %d, want 80", w)
	}
	for _, want := range []string{"Afford", "ashboard", "Settings"} {
		if !strings.Contains(bar, want) {
			t.Fatalf("tab bar missing %q", want)
		}
	}
}

func TestRenderStatusBarPushesInfoRight(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	defer lipgloss.SetColorProfile(termenv.TrueColor)

	bar := RenderStatusBar(40, "q quit", "$ · advisor off")
	if w := lipgloss.Width(bar); w != 40 {
		t.Fatalf("status bar width = %d, want 40", w)
	}
	if !strings.HasPrefix(bar, " q quit") || !strings.HasSuffix(bar, "advisor off ") {
		t.Fatalf("status bar = %q", bar)
	}
}

func TestTabIdxByKey(t *testing.T) {
	if got := TabIdxByKey('b'); got != 2 {
		t.Fatalf("TabIdxByKey('b') = %d, want 2", got)
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Fatalf("TabIdxByKey('z') = %d, want -1", got)
	}
}

func TestBalanceChartDebtHangsBelowAxis(t *testing.T) {
	out := BalanceChart([]float64{-200, -200, -200}, []string{"1", "2", "3"}, 40, 6)
	lines := strings.Split(out, "\n")
	// zero axis + 5 debt rows + x labels
	if len(lines) != 7 {
		t.Fatalf("lines = %d, want 7:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "0") || !strings.Contains(lines[0], "┼") {
		t.Fatalf("first line is not the zero axis: %q", lines[0])
	}
	if !strings.Contains(out, "█") || !strings.Contains(out, "-200") {
		t.Fatalf("debt bars or label missing:\n%s", out)
	}
}

func TestBalanceChartPositiveSeries(t *testing.T) {
	out := BalanceChart([]float64{900, 600, 300}, []string{"Sep 01", "Sep 02", "Sep 03"}, 40, 6)
	lines := strings.Split(out, "\n")
	// 5 bar rows + zero axis + x labels
	if len(lines) != 7 {
		t.Fatalf("lines = %d, want 7:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "900") {
		t.Fatalf("top label missing: %q", lines[0])
	}
	if !strings.Contains(lines[5], "┼") {
		t.Fatalf("zero axis not at row 5: %q", lines[5])
	}
	if !strings.Contains(lines[6], "Sep 03") {
		t.Fatalf("last x label missing: %q", lines[6])
	}
}

func TestBalanceChartNarrowFallsBackToSparkline(t *testing.T) {
	out := BalanceChart([]float64{3, 2, 1}, nil, 10, 6)
	if strings.Contains(out, "\n") {
		t.Fatalf("expected single-line sparkline, got:\n%s", out)
	}
}

func TestFormatChartLabel(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{0.5, "0.50"},
		{850, "850"},
		{1500, "1.5k"},
		{2000, "2k"},
		{-200, "-200"},
		{2500000, "2.5M"},
	}
	for _, tt := range tests {
		if got := formatChartLabel(tt.in); got != tt.want {
			t.Fatalf("formatChartLabel(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAxisLabelsKeepsLastLabel(t *testing.T) {
	if got := axisLabels([]string{"a1", "b2", "c3", "d4"}, 11, 3); got != "a1 b2 c3 d4" {
		t.Fatalf("axisLabels = %q, want %q", got, "a1 b2 c3 d4")
	}
	// Crowded labels are skipped but the last one stays.
	if got := axisLabels([]string{"Sep 01", "Sep 02", "Sep 03"}, 11, 3); got != "     Sep 03" {
		t.Fatalf("axisLabels = %q", got)
	}
}

func TestShareColor(t *testing.T) {
	th := theme.Active
	cases := []struct {
		share float64
		want  lipgloss.Color
	}{
		{0.1, th.Green},
		{0.55, th.Yellow},
		{0.75, th.Orange},
		{0.95, th.Red},
	}
	for _, tc := range cases {
		if got := ShareColor(tc.share); got != tc.want {
			t.Fatalf("ShareColor(%v) = %s, want %s", tc.share, got, tc.want)
		}
	}
}

func TestSpendBarClampsShare(t *testing.T) {
	out := SpendBar("Fixed", 1.7, "$10.00", 8, 10)
	if !strings.Contains(out, "100%") {
		t.Fatalf("SpendBar over 1 = %q, want 100%%", out)
	}
	out = SpendBar("Fixed", -0.2, "$0.00", 8, 10)
	if !strings.Contains(out, "  0%") {
		t.Fatalf("SpendBar below 0 = %q, want 0%%", out)
	}
}
