package analytics

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/GauthamPrabhuM/SplitSense/internal/dateutils"
	"github.com/GauthamPrabhuM/SplitSense/internal/models"
)

// Trend classification bounds: the second half of the data must move at
// least 10% against the first half to count as a trend.
var (
	trendIncreaseFactor = decimal.RequireFromString("1.1")
	trendDecreaseFactor = decimal.RequireFromString("0.9")
)

// minTrendMonths is the smallest number of populated months that can carry a
// trend signal. Below it the trend is "stable" by definition.
const minTrendMonths = 4

// AnalyzeSpending buckets the user's paid shares into month, quarter and year
// keys and derives peak, average and trend statistics. Spending is what the
// user fronted, not what they ultimately owe.
func (a *Analyzer) AnalyzeSpending(expenses []models.Expense) models.SpendingInsight {
	valid := validExpenses(expenses, false)

	total := decimal.Zero
	monthly := make(map[string]decimal.Decimal)
	quarterly := make(map[string]decimal.Decimal)
	yearly := make(map[string]decimal.Decimal)

	for i := range valid {
		e := &valid[i]
		share, ok := e.Share(a.currentUserID)
		if !ok {
			continue
		}

		total = total.Add(share.PaidShare)

		monthKey := dateutils.MonthKey(e.Date)
		quarterKey := dateutils.QuarterKey(e.Date)
		yearKey := dateutils.YearKey(e.Date)

		monthly[monthKey] = monthly[monthKey].Add(share.PaidShare)
		quarterly[quarterKey] = quarterly[quarterKey].Add(share.PaidShare)
		yearly[yearKey] = yearly[yearKey].Add(share.PaidShare)
	}

	currency := feedCurrency(valid)

	insight := models.SpendingInsight{
		TotalSpending:      total,
		CurrencyCode:       currency,
		MonthlyBreakdown:   monthly,
		QuarterlyBreakdown: quarterly,
		YearlyBreakdown:    yearly,
		MonthlyAverage:     decimal.Zero,
		PeakAmount:         decimal.Zero,
		SpendingTrend:      classifyTrend(monthly),
	}

	if len(monthly) > 0 {
		insight.MonthlyAverage = total.Div(decimal.NewFromInt(int64(len(monthly)))).Round(2)
		insight.PeakMonth, insight.PeakAmount = peakMonth(monthly)
	}

	if len(yearly) > 0 {
		years := dateutils.SortedKeys(yearly)
		latest := years[len(years)-1]
		insight.Explanation = fmt.Sprintf(
			"Total spending: %s %s. Latest year (%s) spending: %s %s. Data spans %d months across %d years.",
			total.StringFixed(2), currency, latest, yearly[latest].StringFixed(2), currency,
			len(monthly), len(yearly))
	} else {
		insight.Explanation = "No spending data available."
	}

	return insight
}

// peakMonth returns the month with the highest spending; ties break to the
// first key in sort order.
func peakMonth(monthly map[string]decimal.Decimal) (string, decimal.Decimal) {
	var peak string
	amount := decimal.Zero
	for _, key := range dateutils.SortedKeys(monthly) {
		if peak == "" || monthly[key].GreaterThan(amount) {
			peak = key
			amount = monthly[key]
		}
	}
	return peak, amount
}

// classifyTrend compares the per-month average of the later half of the data
// against the earlier half. For odd counts the first half is the smaller one.
func classifyTrend(monthly map[string]decimal.Decimal) string {
	if len(monthly) < minTrendMonths {
		return "stable"
	}

	months := dateutils.SortedKeys(monthly)
	mid := len(months) / 2

	firstHalf := decimal.Zero
	for _, m := range months[:mid] {
		firstHalf = firstHalf.Add(monthly[m])
	}
	secondHalf := decimal.Zero
	for _, m := range months[mid:] {
		secondHalf = secondHalf.Add(monthly[m])
	}

	firstAvg := firstHalf.Div(decimal.NewFromInt(int64(mid)))
	secondAvg := secondHalf.Div(decimal.NewFromInt(int64(len(months) - mid)))

	// A zero baseline would satisfy the >= comparison even with no movement.
	if firstAvg.IsZero() {
		if secondAvg.IsPositive() {
			return "increasing"
		}
		return "stable"
	}

	switch {
	case secondAvg.GreaterThanOrEqual(firstAvg.Mul(trendIncreaseFactor)):
		return "increasing"
	case secondAvg.LessThanOrEqual(firstAvg.Mul(trendDecreaseFactor)):
		return "decreasing"
	default:
		return "stable"
	}
}
