package model

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Tier classifies a purchase against the daily budget.
type Tier int

// Verdict tiers, ordered from best to worst.
const (
	TierApproved Tier = iota
	TierRisky
	TierRejected
)

func (t Tier) String() string {
	switch t {
	case TierApproved:
		return "approved"
	case TierRisky:
		return "risky"
	case TierRejected:
		return "rejected"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// MarshalText encodes the tier by name for JSON and YAML output.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a tier name produced by MarshalText.
func (t *Tier) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "approved":
		*t = TierApproved
	case "risky":
		*t = TierRisky
	case "rejected":
		*t = TierRejected
	default:
		return fmt.Errorf("unknown tier %q", b)
	}
	return nil
}

// TierPolicy selects how many verdict tiers are in play.
type TierPolicy string

// Supported tier policies.
const (
	PolicyTwoTier   TierPolicy = "two-tier"
	PolicyThreeTier TierPolicy = "three-tier"
)

// ParseTierPolicy accepts "two-tier"/"three-tier" and the short forms "2"/"3".
func ParseTierPolicy(s string) (TierPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "two-tier", "two", "2":
		return PolicyTwoTier, nil
	case "three-tier", "three", "3", "":
		return PolicyThreeTier, nil
	}
	return "", fmt.Errorf("unknown tier policy %q (want two-tier or three-tier)", s)
}

// TierConfig controls purchase tiering and the reference unit used for the
// "that's N packs of noodles" comparison.
type TierConfig struct {
	Policy           TierPolicy
	RejectMultiplier decimal.Decimal
	UnitPrice        decimal.Decimal
	UnitLabel        string
}

// DefaultTierConfig returns the three-tier policy with a 0.50 reference unit.
func DefaultTierConfig() TierConfig {
	return TierConfig{
		Policy:           PolicyThreeTier,
		RejectMultiplier: decimal.NewFromInt(3),
		UnitPrice:        decimal.RequireFromString("0.50"),
		UnitLabel:        "packs of instant noodles",
	}
}

// PurchaseQuery is a prospective purchase. ItemName is display-only.
type PurchaseQuery struct {
	ItemName string
	ItemCost decimal.Decimal
}

// Verdict is the affordability evaluation of one purchase.
type Verdict struct {
	ItemName     string          `json:"item_name,omitempty" yaml:"item_name,omitempty"`
	ItemCost     decimal.Decimal `json:"item_cost" yaml:"item_cost"`
	DailyBudget  decimal.Decimal `json:"daily_budget" yaml:"daily_budget"`
	DaysOfBudget float64         `json:"-" yaml:"-"` // +Inf when the daily budget is zero
	Tier         Tier            `json:"tier" yaml:"tier"`
	UnitCount    int64           `json:"unit_count" yaml:"unit_count"`
	UnitLabel    string          `json:"unit_label" yaml:"unit_label"`
}

// Unbounded reports whether the purchase consumes an infinite number of
// budget days, i.e. there is no daily budget left to spend.
func (v Verdict) Unbounded() bool {
	return math.IsInf(v.DaysOfBudget, 1)
}
