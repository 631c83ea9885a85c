package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/theirongolddev/runway/internal/model"
)

func scenarioResult(t *testing.T) model.Result {
	t.Helper()
	out, err := ComputeBudget(inputs(t, "1500", "500", 10, 90))
	if err != nil {
		t.Fatal(err)
	}
	return *out.Result
}

func twoTier() model.TierConfig {
	cfg := model.DefaultTierConfig()
	cfg.Policy = model.PolicyTwoTier
	return cfg
}

func TestEvaluatePurchase_Scenario(t *testing.T) {
	r := scenarioResult(t)
	v, err := EvaluatePurchase(r, model.PurchaseQuery{ItemName: "Sneakers", ItemCost: dec(t, "50")}, twoTier())
	if err != nil {
		t.Fatalf("EvaluatePurchase error: %v", err)
	}
	if math.Abs(v.DaysOfBudget-5.29) > 0.01 {
		t.Fatalf("DaysOfBudget = %.3f, want ~5.29", v.DaysOfBudget)
	}
	if v.Tier != model.TierRejected {
		t.Fatalf("Tier = %s, want rejected", v.Tier)
	}
	if v.UnitCount != 100 {
		t.Fatalf("UnitCount = %d, want 100", v.UnitCount)
	}
	if v.ItemName != "Sneakers" {
		t.Fatalf("ItemName = %q", v.ItemName)
	}
}

func TestEvaluatePurchase_ThreeTier(t *testing.T) {
	r := model.Result{DaysRemaining: 10, DailyBudget: dec(t, "10")}
	cfg := model.DefaultTierConfig()

	cases := []struct {
		cost string
		want model.Tier
	}{
		{"0", model.TierApproved},
		{"9.99", model.TierApproved},
		{"10", model.TierApproved},
		{"10.01", model.TierRisky},
		{"30", model.TierRisky},
		{"30.01", model.TierRejected},
		{"500", model.TierRejected},
	}
	for _, tc := range cases {
		v, err := EvaluatePurchase(r, model.PurchaseQuery{ItemCost: dec(t, tc.cost)}, cfg)
		if err != nil {
			t.Fatalf("cost=%s: %v", tc.cost, err)
		}
		if v.Tier != tc.want {
			t.Fatalf("cost=%s: Tier = %s, want %s", tc.cost, v.Tier, tc.want)
		}
	}
}

func TestEvaluatePurchase_TieringMonotonic(t *testing.T) {
	r := model.Result{DaysRemaining: 30, DailyBudget: dec(t, "7.25")}
	for _, cfg := range []model.TierConfig{twoTier(), model.DefaultTierConfig()} {
		prev := model.TierApproved
		for cents := int64(0); cents <= 5000; cents += 7 {
			v, err := EvaluatePurchase(r, model.PurchaseQuery{ItemCost: decimal.New(cents, -2)}, cfg)
			if err != nil {
				t.Fatal(err)
			}
			if v.Tier < prev {
				t.Fatalf("%s: cost %s moved tier from %s back to %s", cfg.Policy, v.ItemCost, prev, v.Tier)
			}
			prev = v.Tier
		}
		if prev != model.TierRejected {
			t.Fatalf("%s: largest cost ended at %s, want rejected", cfg.Policy, prev)
		}
	}
}

func TestEvaluatePurchase_ZeroDailyBudgetSentinel(t *testing.T) {
	r := model.Result{DaysRemaining: 30, AvailableCash: dec(t, "-200"), Deficit: dec(t, "200")}
	v, err := EvaluatePurchase(r, model.PurchaseQuery{ItemCost: dec(t, "5")}, model.DefaultTierConfig())
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsInf(v.DaysOfBudget, 1) || !v.Unbounded() {
		t.Fatalf("DaysOfBudget = %v, want +Inf", v.DaysOfBudget)
	}
	if v.Tier != model.TierRejected {
		t.Fatalf("Tier = %s, want rejected", v.Tier)
	}

	free, err := EvaluatePurchase(r, model.PurchaseQuery{ItemCost: decimal.Zero}, model.DefaultTierConfig())
	if err != nil {
		t.Fatal(err)
	}
	if free.DaysOfBudget != 0 || free.Unbounded() {
		t.Fatalf("free item DaysOfBudget = %v, want 0", free.DaysOfBudget)
	}
}

func TestEvaluatePurchase_UnitCount(t *testing.T) {
	r := model.Result{DaysRemaining: 30, DailyBudget: dec(t, "10")}
	cases := []struct {
		cost, unit string
		want       int64
	}{
		{"0", "0.50", 0},
		{"0.49", "0.50", 0},
		{"50", "0.50", 100},
		{"50", "5.00", 10},
		{"54.99", "5.00", 10},
	}
	for _, tc := range cases {
		cfg := model.DefaultTierConfig()
		cfg.UnitPrice = dec(t, tc.unit)
		v, err := EvaluatePurchase(r, model.PurchaseQuery{ItemCost: dec(t, tc.cost)}, cfg)
		if err != nil {
			t.Fatal(err)
		}
		if v.UnitCount != tc.want {
			t.Fatalf("cost=%s unit=%s: UnitCount = %d, want %d", tc.cost, tc.unit, v.UnitCount, tc.want)
		}
	}
}

func TestEvaluatePurchase_InvalidConfig(t *testing.T) {
	r := model.Result{DaysRemaining: 30, DailyBudget: dec(t, "10")}
	q := model.PurchaseQuery{ItemCost: dec(t, "5")}

	zeroUnit := model.DefaultTierConfig()
	zeroUnit.UnitPrice = decimal.Zero

	lowMultiplier := model.DefaultTierConfig()
	lowMultiplier.RejectMultiplier = dec(t, "0.5")

	unknown := model.DefaultTierConfig()
	unknown.Policy = "four-tier"

	for name, cfg := range map[string]model.TierConfig{
		"zero unit price": zeroUnit,
		"low multiplier":  lowMultiplier,
		"unknown policy":  unknown,
	} {
		if _, err := EvaluatePurchase(r, q, cfg); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: err = %v, want ErrInvalidInput", name, err)
		}
	}

	if _, err := EvaluatePurchase(r, model.PurchaseQuery{ItemCost: dec(t, "-1")}, model.DefaultTierConfig()); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("negative cost: err = %v, want ErrInvalidInput", err)
	}
}
