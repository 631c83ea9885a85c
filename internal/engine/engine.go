// Package engine computes daily budgets, burn-down projections, and purchase
// verdicts. Every function here is pure: the same inputs, including the
// explicit "today", always produce the same outputs.
package engine

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/theirongolddev/runway/internal/model"
)

var hundred = decimal.NewFromInt(100)

// ComputeBudget validates inputs and derives the budget for the remaining
// period. When the semester end is today or earlier the returned Outcome is
// Ended and carries no Result.
func ComputeBudget(in model.Inputs) (model.Outcome, error) {
	if err := validateInputs(in); err != nil {
		return model.Outcome{}, err
	}

	days := DaysBetween(in.Today, in.SemesterEnd)
	if days <= 0 {
		return model.Outcome{DaysRemaining: days}, nil
	}

	emergency := in.CurrentBalance.Mul(decimal.NewFromInt(int64(in.BufferPercent))).Div(hundred)
	available := in.CurrentBalance.Sub(in.FixedCosts).Sub(emergency)

	daily := decimal.Zero
	deficit := decimal.Zero
	if available.IsPositive() {
		daily = available.Div(decimal.NewFromInt(int64(days)))
	} else if available.IsNegative() {
		deficit = available.Neg()
	}

	return model.Outcome{
		DaysRemaining: days,
		Result: &model.Result{
			DaysRemaining: days,
			EmergencyFund: emergency,
			AvailableCash: available,
			DailyBudget:   daily,
			Deficit:       deficit,
		},
	}, nil
}

// ComputeProjection returns the linear burn-down of available cash at the
// daily budget, one point per remaining day starting at day 0. Balances are
// not clamped at zero.
func ComputeProjection(r model.Result) model.Projection {
	if r.DaysRemaining <= 0 {
		return model.Projection{}
	}
	out := make(model.Projection, r.DaysRemaining)
	for i := range out {
		out[i] = model.ProjectionPoint{
			Day:     i,
			Balance: r.AvailableCash.Sub(r.DailyBudget.Mul(decimal.NewFromInt(int64(i)))),
		}
	}
	return out
}

// DaysBetween returns the number of whole calendar days from today to end.
// Time of day and location offsets are ignored: each instant is reduced to
// the calendar date it falls on in its own location.
func DaysBetween(today, end time.Time) int {
	const secondsPerDay = 24 * 60 * 60
	a := civilDate(today).Unix()
	b := civilDate(end).Unix()
	return int((b - a) / secondsPerDay)
}

// Today returns the calendar date of now, for callers that need a default.
func Today(now time.Time) time.Time {
	return civilDate(now)
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func validateInputs(in model.Inputs) error {
	if in.CurrentBalance.IsNegative() {
		return invalid("current balance", "must not be negative (got %s)", in.CurrentBalance)
	}
	if in.FixedCosts.IsNegative() {
		return invalid("fixed costs", "must not be negative (got %s)", in.FixedCosts)
	}
	if in.BufferPercent < model.MinBufferPercent || in.BufferPercent > model.MaxBufferPercent {
		return invalid("buffer percent", "must be between %d and %d (got %d)",
			model.MinBufferPercent, model.MaxBufferPercent, in.BufferPercent)
	}
	if in.Today.IsZero() {
		return invalid("today", "date is required")
	}
	if in.SemesterEnd.IsZero() {
		return invalid("semester end", "date is required")
	}
	return nil
}
