package engine

import (
	"math"

	"github.com/shopspring/decimal"
	"github.com/theirongolddev/runway/internal/model"
)

// ValidateTierConfig checks that a tier configuration can be evaluated
// without dividing by zero or producing an inverted tier band.
func ValidateTierConfig(cfg model.TierConfig) error {
	switch cfg.Policy {
	case model.PolicyTwoTier:
	case model.PolicyThreeTier:
		if cfg.RejectMultiplier.LessThan(decimal.NewFromInt(1)) {
			return invalid("reject multiplier", "must be at least 1 (got %s)", cfg.RejectMultiplier)
		}
	default:
		return invalid("tier policy", "unknown policy %q", cfg.Policy)
	}
	if !cfg.UnitPrice.IsPositive() {
		return invalid("reference unit price", "must be greater than zero (got %s)", cfg.UnitPrice)
	}
	return nil
}

// EvaluatePurchase classifies a purchase against the daily budget in r.
//
// DaysOfBudget is ItemCost/DailyBudget. When the daily budget is zero it is
// +Inf for any positive cost and 0 for a free item.
func EvaluatePurchase(r model.Result, q model.PurchaseQuery, cfg model.TierConfig) (model.Verdict, error) {
	if err := ValidateTierConfig(cfg); err != nil {
		return model.Verdict{}, err
	}
	if q.ItemCost.IsNegative() {
		return model.Verdict{}, invalid("item cost", "must not be negative (got %s)", q.ItemCost)
	}

	return model.Verdict{
		ItemName:     q.ItemName,
		ItemCost:     q.ItemCost,
		DailyBudget:  r.DailyBudget,
		DaysOfBudget: daysOfBudget(q.ItemCost, r.DailyBudget),
		Tier:         classify(q.ItemCost, r.DailyBudget, cfg),
		UnitCount:    q.ItemCost.Div(cfg.UnitPrice).Floor().IntPart(),
		UnitLabel:    cfg.UnitLabel,
	}, nil
}

func daysOfBudget(cost, daily decimal.Decimal) float64 {
	if cost.IsZero() {
		return 0
	}
	if !daily.IsPositive() {
		return math.Inf(1)
	}
	return cost.Div(daily).InexactFloat64()
}

func classify(cost, daily decimal.Decimal, cfg model.TierConfig) model.Tier {
	if cost.LessThanOrEqual(daily) {
		return model.TierApproved
	}
	if cfg.Policy == model.PolicyThreeTier && cost.LessThanOrEqual(daily.Mul(cfg.RejectMultiplier)) {
		return model.TierRisky
	}
	return model.TierRejected
}
