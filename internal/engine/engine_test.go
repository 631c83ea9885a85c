package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/theirongolddev/runway/internal/model"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", s, err)
	}
	return d
}

func inputs(t *testing.T, balance, fixed string, buffer, days int) model.Inputs {
	t.Helper()
	today := mustDate(t, "2026-09-01")
	return model.Inputs{
		CurrentBalance: dec(t, balance),
		FixedCosts:     dec(t, fixed),
		Today:          today,
		SemesterEnd:    today.AddDate(0, 0, days),
		BufferPercent:  buffer,
	}
}

func TestComputeBudget_Scenario(t *testing.T) {
	out, err := ComputeBudget(inputs(t, "1500", "500", 10, 90))
	if err != nil {
		t.Fatalf("ComputeBudget error: %v", err)
	}
	if out.Ended() {
		t.Fatal("ComputeBudget reported ended period for 90 days remaining")
	}
	r := out.Result
	if r.DaysRemaining != 90 {
		t.Fatalf("DaysRemaining = %d, want 90", r.DaysRemaining)
	}
	if !r.EmergencyFund.Equal(dec(t, "150")) {
		t.Fatalf("EmergencyFund = %s, want 150", r.EmergencyFund)
	}
	if !r.AvailableCash.Equal(dec(t, "850")) {
		t.Fatalf("AvailableCash = %s, want 850", r.AvailableCash)
	}
	if got := r.DailyBudget.StringFixed(2); got != "9.44" {
		t.Fatalf("DailyBudget = %s, want 9.44", got)
	}
	if r.InDebt() || !r.Deficit.IsZero() {
		t.Fatalf("InDebt = %v, Deficit = %s; want false, 0", r.InDebt(), r.Deficit)
	}
}

func TestComputeBudget_PeriodEnded(t *testing.T) {
	for _, days := range []int{0, -1, -30} {
		out, err := ComputeBudget(inputs(t, "1500", "500", 10, days))
		if err != nil {
			t.Fatalf("days=%d: ComputeBudget error: %v", days, err)
		}
		if !out.Ended() {
			t.Fatalf("days=%d: Ended() = false, want true", days)
		}
		if out.Result != nil {
			t.Fatalf("days=%d: Result = %+v, want nil", days, out.Result)
		}
		if out.DaysRemaining != days {
			t.Fatalf("days=%d: DaysRemaining = %d", days, out.DaysRemaining)
		}
	}
}

func TestComputeBudget_DeficitClampsDailyBudget(t *testing.T) {
	out, err := ComputeBudget(inputs(t, "1000", "1200", 0, 30))
	if err != nil {
		t.Fatalf("ComputeBudget error: %v", err)
	}
	r := out.Result
	if !r.AvailableCash.Equal(dec(t, "-200")) {
		t.Fatalf("AvailableCash = %s, want -200", r.AvailableCash)
	}
	if !r.DailyBudget.IsZero() {
		t.Fatalf("DailyBudget = %s, want 0", r.DailyBudget)
	}
	if !r.InDebt() {
		t.Fatal("InDebt() = false, want true")
	}
	if !r.Deficit.Equal(dec(t, "200")) {
		t.Fatalf("Deficit = %s, want 200", r.Deficit)
	}
}

func TestComputeBudget_ExactlyZeroAvailable(t *testing.T) {
	out, err := ComputeBudget(inputs(t, "1000", "1000", 0, 10))
	if err != nil {
		t.Fatalf("ComputeBudget error: %v", err)
	}
	r := out.Result
	if !r.DailyBudget.IsZero() || r.InDebt() || !r.Deficit.IsZero() {
		t.Fatalf("got daily=%s inDebt=%v deficit=%s, want 0/false/0", r.DailyBudget, r.InDebt(), r.Deficit)
	}
}

func TestComputeBudget_DailyBudgetNeverNegative(t *testing.T) {
	balances := []string{"0", "10", "500", "1500", "99999.99"}
	fixed := []string{"0", "5", "600", "2000"}
	for _, b := range balances {
		for _, f := range fixed {
			for _, buf := range []int{0, 10, 30} {
				for _, days := range []int{1, 7, 120} {
					out, err := ComputeBudget(inputs(t, b, f, buf, days))
					if err != nil {
						t.Fatalf("balance=%s fixed=%s buffer=%d: %v", b, f, buf, err)
					}
					r := out.Result
					if r.DailyBudget.IsNegative() {
						t.Fatalf("balance=%s fixed=%s buffer=%d: DailyBudget = %s", b, f, buf, r.DailyBudget)
					}
					if !r.AvailableCash.IsPositive() && !r.DailyBudget.IsZero() {
						t.Fatalf("balance=%s fixed=%s: AvailableCash = %s but DailyBudget = %s",
							b, f, r.AvailableCash, r.DailyBudget)
					}
				}
			}
		}
	}
}

func TestComputeBudget_Deterministic(t *testing.T) {
	in := inputs(t, "1234.56", "321.09", 17, 45)
	first, err := ComputeBudget(in)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := ComputeBudget(in)
		if err != nil {
			t.Fatal(err)
		}
		if again.DaysRemaining != first.DaysRemaining ||
			!again.Result.DailyBudget.Equal(first.Result.DailyBudget) ||
			!again.Result.AvailableCash.Equal(first.Result.AvailableCash) ||
			!again.Result.EmergencyFund.Equal(first.Result.EmergencyFund) {
			t.Fatalf("run %d produced %+v, want %+v", i, *again.Result, *first.Result)
		}
	}
}

func TestComputeBudget_InvalidInput(t *testing.T) {
	cases := map[string]func(*model.Inputs){
		"negative balance": func(in *model.Inputs) { in.CurrentBalance = decimal.NewFromInt(-1) },
		"negative fixed":   func(in *model.Inputs) { in.FixedCosts = decimal.NewFromInt(-5) },
		"buffer too high":  func(in *model.Inputs) { in.BufferPercent = 31 },
		"buffer negative":  func(in *model.Inputs) { in.BufferPercent = -1 },
		"missing today":    func(in *model.Inputs) { in.Today = time.Time{} },
	}
	for name, mutate := range cases {
		in := inputs(t, "1500", "500", 10, 90)
		mutate(&in)
		out, err := ComputeBudget(in)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: err = %v, want ErrInvalidInput", name, err)
		}
		var ie *InputError
		if !errors.As(err, &ie) || ie.Field == "" {
			t.Fatalf("%s: err = %v, want *InputError with field", name, err)
		}
		if out.Result != nil {
			t.Fatalf("%s: partial result returned: %+v", name, out.Result)
		}
	}
}

func TestDaysBetween_IgnoresTimeOfDay(t *testing.T) {
	today := time.Date(2026, 10, 16, 23, 59, 0, 0, time.UTC)
	end := time.Date(2026, 10, 17, 0, 1, 0, 0, time.UTC)
	if got := DaysBetween(today, end); got != 1 {
		t.Fatalf("DaysBetween = %d, want 1", got)
	}

	// Crosses a DST change in a zone that observes one.
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	a := time.Date(2026, 10, 30, 12, 0, 0, 0, loc)
	b := time.Date(2026, 11, 2, 8, 0, 0, 0, loc)
	if got := DaysBetween(a, b); got != 3 {
		t.Fatalf("DaysBetween across DST = %d, want 3", got)
	}
}

func TestDaysBetween_FarApartDates(t *testing.T) {
	today := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	// More than 292 years apart, beyond what a time.Duration can hold.
	if got := DaysBetween(today, time.Date(2400, 9, 1, 0, 0, 0, 0, time.UTC)); got != 136601 {
		t.Fatalf("DaysBetween to 2400 = %d, want 136601", got)
	}
	if got := DaysBetween(today, time.Date(1700, 1, 1, 0, 0, 0, 0, time.UTC)); got != -119312 {
		t.Fatalf("DaysBetween to 1700 = %d, want -119312", got)
	}
}

func TestComputeProjection(t *testing.T) {
	out, err := ComputeBudget(inputs(t, "1500", "500", 10, 90))
	if err != nil {
		t.Fatal(err)
	}
	r := *out.Result
	p := ComputeProjection(r)

	if len(p) != r.DaysRemaining {
		t.Fatalf("len(projection) = %d, want %d", len(p), r.DaysRemaining)
	}
	if !p[0].Balance.Equal(r.AvailableCash) {
		t.Fatalf("first balance = %s, want %s", p[0].Balance, r.AvailableCash)
	}
	for i := 1; i < len(p); i++ {
		if p[i].Day != i {
			t.Fatalf("point %d has Day %d", i, p[i].Day)
		}
		step := p[i-1].Balance.Sub(p[i].Balance)
		if !step.Equal(r.DailyBudget) {
			t.Fatalf("step %d = %s, want %s", i, step, r.DailyBudget)
		}
	}
	if _, crossed := p.ZeroCrossing(); crossed {
		t.Fatal("projection of a positive budget crossed zero before the period ended")
	}
}

func TestComputeProjection_DebtStaysNegative(t *testing.T) {
	out, err := ComputeBudget(inputs(t, "1000", "1200", 0, 30))
	if err != nil {
		t.Fatal(err)
	}
	p := ComputeProjection(*out.Result)
	if len(p) != 30 {
		t.Fatalf("len(projection) = %d, want 30", len(p))
	}
	for _, pt := range p {
		if !pt.Balance.Equal(dec(t, "-200")) {
			t.Fatalf("day %d balance = %s, want -200", pt.Day, pt.Balance)
		}
	}
	day, crossed := p.ZeroCrossing()
	if !crossed || day != 0 {
		t.Fatalf("ZeroCrossing = (%d, %v), want (0, true)", day, crossed)
	}
	if vals := p.Values(); len(vals) != 30 || vals[0] != -200 {
		t.Fatalf("Values()[0] = %v, want -200", vals[0])
	}
}

func TestComputeProjection_EmptyForEndedPeriod(t *testing.T) {
	if p := ComputeProjection(model.Result{}); len(p) != 0 {
		t.Fatalf("len(projection) = %d, want 0", len(p))
	}
}
