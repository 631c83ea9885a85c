// Package model defines the value records runway computes over.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Buffer percent bounds, inclusive.
const (
	MinBufferPercent = 0
	MaxBufferPercent = 30
)

// Inputs holds the raw figures a budget is computed from.
// Today is explicit so the computation never reads the clock.
type Inputs struct {
	CurrentBalance decimal.Decimal
	FixedCosts     decimal.Decimal
	SemesterEnd    time.Time
	Today          time.Time
	BufferPercent  int
}

// Result holds the derived budget figures for a period that is still running.
type Result struct {
	DaysRemaining int
	EmergencyFund decimal.Decimal
	AvailableCash decimal.Decimal
	DailyBudget   decimal.Decimal // never negative
	Deficit       decimal.Decimal // -AvailableCash when AvailableCash < 0, else zero
}

// InDebt reports whether fixed costs and the emergency fund exceed the balance.
func (r Result) InDebt() bool {
	return r.AvailableCash.IsNegative()
}

// Outcome is what a budget computation reports: either a Result or the
// terminal "period ended" state, in which Result is nil.
type Outcome struct {
	DaysRemaining int
	Result        *Result
}

// Ended reports whether the semester is over and no budget was computed.
func (o Outcome) Ended() bool {
	return o.Result == nil
}

// ProjectionPoint is one day of the burn-down series.
type ProjectionPoint struct {
	Day     int             `json:"day" yaml:"day"`
	Balance decimal.Decimal `json:"balance" yaml:"balance"`
}

// Projection is the day-indexed burn-down series, oldest day first.
type Projection []ProjectionPoint

// Values returns the balances as float64 for charting.
func (p Projection) Values() []float64 {
	vals := make([]float64, len(p))
	for i, pt := range p {
		vals[i] = pt.Balance.InexactFloat64()
	}
	return vals
}

// ZeroCrossing returns the first day whose projected balance is at or below
// zero.
func (p Projection) ZeroCrossing() (int, bool) {
	for _, pt := range p {
		if !pt.Balance.IsPositive() {
			return pt.Day, true
		}
	}
	return 0, false
}
