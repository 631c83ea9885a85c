package server

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/theirongolddev/runway/internal/model"
)

// BudgetRequest is the body accepted by every /v1 endpoint. Dates use the
// 2006-01-02 layout; Today defaults to the server's current date and
// BufferPercent to 10.
type BudgetRequest struct {
	Balance       decimal.Decimal `json:"balance"`
	FixedCosts    decimal.Decimal `json:"fixed_costs"`
	SemesterEnd   string          `json:"semester_end"`
	Today         string          `json:"today,omitempty"`
	BufferPercent *int            `json:"buffer_percent,omitempty"`
}

// PurchaseRequest adds a prospective purchase and optional tier overrides.
type PurchaseRequest struct {
	BudgetRequest
	Item             string           `json:"item,omitempty"`
	Cost             decimal.Decimal  `json:"cost"`
	Policy           string           `json:"policy,omitempty"`
	RejectMultiplier *decimal.Decimal `json:"reject_multiplier,omitempty"`
	UnitPrice        *decimal.Decimal `json:"unit_price,omitempty"`
	UnitLabel        string           `json:"unit_label,omitempty"`
	Currency         string           `json:"currency,omitempty"`
}

// BudgetResponse reports a computed budget or the ended state.
type BudgetResponse struct {
	Ended         bool             `json:"ended"`
	DaysRemaining int              `json:"days_remaining"`
	EmergencyFund *decimal.Decimal `json:"emergency_fund,omitempty"`
	AvailableCash *decimal.Decimal `json:"available_cash,omitempty"`
	DailyBudget   *decimal.Decimal `json:"daily_budget,omitempty"`
	InDebt        bool             `json:"in_debt"`
	Deficit       *decimal.Decimal `json:"deficit,omitempty"`
}

// ProjectionResponse is a budget plus its burn-down series.
type ProjectionResponse struct {
	BudgetResponse
	Points          []model.ProjectionPoint `json:"points"`
	ZeroCrossingDay *int                    `json:"zero_crossing_day,omitempty"`
}

// VerdictResponse is a purchase verdict. DaysOfBudget is omitted when the
// daily budget is zero and the cost is positive; Unbounded is then true.
type VerdictResponse struct {
	Item         string          `json:"item,omitempty"`
	Cost         decimal.Decimal `json:"cost"`
	DailyBudget  decimal.Decimal `json:"daily_budget"`
	DaysOfBudget *float64        `json:"days_of_budget,omitempty"`
	Unbounded    bool            `json:"unbounded"`
	Tier         model.Tier      `json:"tier"`
	UnitCount    int64           `json:"unit_count"`
	UnitLabel    string          `json:"unit_label"`
}

// PurchaseResponse is returned by /v1/purchase and /v1/advice. Verdict is
// nil when the period has ended.
type PurchaseResponse struct {
	Budget  BudgetResponse   `json:"budget"`
	Verdict *VerdictResponse `json:"verdict,omitempty"`
	Advice  string           `json:"advice,omitempty"`
	Error   *ErrorBody       `json:"error,omitempty"`
}

// ErrorBody is the error envelope payload.
type ErrorBody struct {
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// Event types. Each purchase request records exactly one event: advice when
// the advisor answered, verdict otherwise.
const (
	eventVerdict = "verdict"
	eventAdvice  = "advice"
)

// Event is emitted once for every evaluated purchase.
type Event struct {
	ID           int64           `json:"id"`
	Type         string          `json:"type"`
	Timestamp    time.Time       `json:"timestamp"`
	Item         string          `json:"item,omitempty"`
	Cost         decimal.Decimal `json:"cost"`
	Tier         model.Tier      `json:"tier"`
	DaysOfBudget *float64        `json:"days_of_budget,omitempty"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	Requests        int64     `json:"requests"`
	AdvisorEnabled  bool      `json:"advisor_enabled"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

func budgetResponse(out model.Outcome) BudgetResponse {
	resp := BudgetResponse{Ended: out.Ended(), DaysRemaining: out.DaysRemaining}
	if r := out.Result; r != nil {
		resp.EmergencyFund = &r.EmergencyFund
		resp.AvailableCash = &r.AvailableCash
		resp.DailyBudget = &r.DailyBudget
		resp.InDebt = r.InDebt()
		if r.InDebt() {
			resp.Deficit = &r.Deficit
		}
	}
	return resp
}

func verdictResponse(v model.Verdict) *VerdictResponse {
	resp := &VerdictResponse{
		Item:        v.ItemName,
		Cost:        v.ItemCost,
		DailyBudget: v.DailyBudget,
		Unbounded:   v.Unbounded(),
		Tier:        v.Tier,
		UnitCount:   v.UnitCount,
		UnitLabel:   v.UnitLabel,
	}
	if !v.Unbounded() {
		days := v.DaysOfBudget
		resp.DaysOfBudget = &days
	}
	return resp
}
