package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ValidationCheck is one structured entry in a verification run.
type ValidationCheck struct {
	Type    string                 `json:"type"`
	IsValid bool                   `json:"is_valid"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ValidationResult collects the outcome of every integrity cross-check.
// Inconsistencies land here as errors or warnings; they never abort the
// analytics pipeline.
type ValidationResult struct {
	IsValid  bool              `json:"is_valid"`
	Checks   []ValidationCheck `json:"checks"`
	Errors   []string          `json:"errors"`
	Warnings []string          `json:"warnings"`
}

// SpendingInsight is the time-bucketed view of what the user fronted.
type SpendingInsight struct {
	TotalSpending      decimal.Decimal            `json:"total_spending"`
	CurrencyCode       string                     `json:"currency_code"`
	MonthlyBreakdown   map[string]decimal.Decimal `json:"monthly_breakdown"`
	QuarterlyBreakdown map[string]decimal.Decimal `json:"quarterly_breakdown"`
	YearlyBreakdown    map[string]decimal.Decimal `json:"yearly_breakdown"`
	MonthlyAverage     decimal.Decimal            `json:"monthly_average"`
	PeakMonth          string                     `json:"peak_month,omitempty"`
	PeakAmount         decimal.Decimal            `json:"peak_amount"`
	SpendingTrend      string                     `json:"spending_trend"`
	Explanation        string                     `json:"explanation"`
}

// PersonBalance is the resolved per-counterparty ledger line.
// Positive means the counterparty owes the current user.
type PersonBalance struct {
	UserID  int64           `json:"user_id"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

// BalanceInsight is the reconstructed ledger position for the current user.
// TrendOverTime accumulates the user's own share deltas on genuine expenses,
// so it shows historical exposure as if nothing had been paid back;
// LedgerTrend accumulates repayment edges with settlements folded in, so it
// shows the position actually outstanding each month.
type BalanceInsight struct {
	NetBalance    decimal.Decimal            `json:"net_balance"`
	CurrencyCode  string                     `json:"currency_code"`
	OwedToUser    decimal.Decimal            `json:"owed_to_user"`
	UserOwes      decimal.Decimal            `json:"user_owes"`
	ByPerson      []PersonBalance            `json:"by_person"`
	TrendOverTime map[string]decimal.Decimal `json:"trend_over_time"`
	LedgerTrend   map[string]decimal.Decimal `json:"ledger_trend"`
	Explanation   string                     `json:"explanation"`
}

// CategoryTotal is one ranked entry of the category breakdown.
type CategoryTotal struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage float64         `json:"percentage"`
}

// CategoryInsight is the per-category spending breakdown.
type CategoryInsight struct {
	ByCategory    map[string]decimal.Decimal `json:"by_category"`
	CurrencyCode  string                     `json:"currency_code"`
	TopCategories []CategoryTotal            `json:"top_categories"`
	Explanation   string                     `json:"explanation"`
}

// GroupTotal is one ranked entry of the group breakdown.
type GroupTotal struct {
	GroupID       int64           `json:"group_id"`
	Name          string          `json:"name"`
	TotalSpending decimal.Decimal `json:"total_spending"`
	MemberCount   int             `json:"member_count"`
	ExpenseCount  int             `json:"expense_count"`
}

// GroupInsight is the per-group spending breakdown.
type GroupInsight struct {
	ByGroup      map[int64]GroupTotal `json:"by_group"`
	CurrencyCode string               `json:"currency_code"`
	TopGroups    []GroupTotal         `json:"top_groups"`
	Explanation  string               `json:"explanation"`
}

// Anomaly is a single expense flagged as a statistical outlier.
type Anomaly struct {
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Reason      string          `json:"reason"`
}

// AnomalyDetection is the outlier-share detection result.
type AnomalyDetection struct {
	Anomalies           []Anomaly `json:"anomalies"`
	ThresholdMultiplier float64   `json:"threshold_multiplier"`
	Explanation         string    `json:"explanation"`
}

// RecurringExpense is one detected recurring-charge pattern.
type RecurringExpense struct {
	DescriptionPattern string          `json:"description_pattern"`
	Category           string          `json:"category,omitempty"`
	AverageAmount      decimal.Decimal `json:"average_amount"`
	FrequencyDays      float64         `json:"frequency_days"`
	Occurrences        int             `json:"occurrences"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	CurrencyCode       string          `json:"currency_code"`
	LastOccurrence     time.Time       `json:"last_occurrence"`
}

// SubscriptionDetection is the recurring-charge detection result.
type SubscriptionDetection struct {
	Subscriptions             []RecurringExpense `json:"subscriptions"`
	TotalMonthlySubscriptions decimal.Decimal    `json:"total_monthly_subscriptions"`
	CurrencyCode              string             `json:"currency_code"`
	Explanation               string             `json:"explanation"`
}

// SettlementEfficiency reports settlement latency and outstanding balances.
// Settlement ages are a proxy for days-to-settle: the feed carries no link
// between a settlement and the expense it closes, so MatchedSettlements
// stays 0 until such a matching exists.
type SettlementEfficiency struct {
	AverageSettlementDays float64         `json:"average_settlement_days"`
	MedianSettlementDays  float64         `json:"median_settlement_days"`
	UnpaidBalancesCount   int             `json:"unpaid_balances_count"`
	UnpaidBalancesTotal   decimal.Decimal `json:"unpaid_balances_total"`
	CurrencyCode          string          `json:"currency_code"`
	MatchedSettlements    int             `json:"matched_settlements"`
	Explanation           string          `json:"explanation"`
}

// CashFlowInsight reports the direction money tends to move for the user.
type CashFlowInsight struct {
	TotalPaid         decimal.Decimal `json:"total_paid"`
	TotalReceived     decimal.Decimal `json:"total_received"`
	NetCashFlow       decimal.Decimal `json:"net_cash_flow"`
	CurrencyCode      string          `json:"currency_code"`
	FrontPayPercent   float64         `json:"front_pay_percentage"`
	Explanation       string          `json:"explanation"`
}

// BalancePrediction extrapolates the user's balance from monthly deltas.
type BalancePrediction struct {
	PredictedBalance decimal.Decimal `json:"predicted_balance"`
	CurrencyCode     string          `json:"currency_code"`
	ConfidenceLevel  string          `json:"confidence_level"`
	BasedOnMonths    int             `json:"based_on_months"`
	Trend            string          `json:"trend"`
	Explanation      string          `json:"explanation"`
}

// PersonFriction is the per-counterparty friction ranking entry.
type PersonFriction struct {
	UserID           int64           `json:"user_id"`
	UnpaidBalance    decimal.Decimal `json:"unpaid_balance"`
	AverageDelayDays float64         `json:"average_delay_days"`
	FrictionScore    float64         `json:"friction_score"`
}

// GroupFriction is the per-group friction ranking entry.
// A group id of 0 stands for ungrouped expenses.
type GroupFriction struct {
	GroupID       int64           `json:"group_id"`
	Name          string          `json:"name"`
	UnpaidBalance decimal.Decimal `json:"unpaid_balance"`
	MemberCount   int             `json:"member_count"`
	ExpenseCount  int             `json:"expense_count"`
	FrictionScore float64         `json:"friction_score"`
}

// FrictionRanking ranks counterparties and groups by financial tension.
type FrictionRanking struct {
	ByPerson    []PersonFriction `json:"by_person"`
	ByGroup     []GroupFriction  `json:"by_group"`
	Explanation string           `json:"explanation"`
}

// AllInsights bundles one full analysis run.
type AllInsights struct {
	ReportID      string                `json:"report_id"`
	UserID        int64                 `json:"user_id"`
	Validation    ValidationResult      `json:"validation"`
	Spending      SpendingInsight       `json:"spending"`
	Balance       BalanceInsight        `json:"balance"`
	Categories    CategoryInsight       `json:"categories"`
	Groups        GroupInsight          `json:"groups"`
	Anomalies     AnomalyDetection      `json:"anomalies"`
	Subscriptions SubscriptionDetection `json:"subscriptions"`
	Settlement    SettlementEfficiency  `json:"settlement_efficiency"`
	CashFlow      CashFlowInsight       `json:"cash_flow"`
	Prediction    BalancePrediction     `json:"balance_prediction"`
	Friction      FrictionRanking       `json:"friction"`
	GeneratedAt   time.Time             `json:"generated_at"`
	DataSummary   map[string]int        `json:"data_summary"`
}
