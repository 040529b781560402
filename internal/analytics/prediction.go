package analytics

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/GauthamPrabhuM/SplitSense/internal/dateutils"
	"github.com/GauthamPrabhuM/SplitSense/internal/models"
)

// trendBand is the smallest month-over-month delta change that counts as a
// direction, in currency units.
var trendBand = decimal.RequireFromString("0.1")

// minPredictionMonths is the minimum history for any prediction at all.
const minPredictionMonths = 2

// PredictBalance extrapolates the user's balance from monthly (paid - owed)
// deltas. Fewer than two populated months returns a low-confidence zero
// prediction.
func (a *Analyzer) PredictBalance(expenses []models.Expense, monthsAhead int) models.BalancePrediction {
	if monthsAhead < 1 {
		monthsAhead = 1
	}

	valid := validExpenses(expenses, false)

	monthlyDeltas := make(map[string]decimal.Decimal)
	for i := range valid {
		e := &valid[i]
		share, ok := e.Share(a.currentUserID)
		if !ok {
			continue
		}
		key := dateutils.MonthKey(e.Date)
		monthlyDeltas[key] = monthlyDeltas[key].Add(share.PaidShare.Sub(share.OwedShare))
	}

	if len(monthlyDeltas) < minPredictionMonths {
		return models.BalancePrediction{
			PredictedBalance: decimal.Zero,
			CurrencyCode:     DefaultCurrency,
			ConfidenceLevel:  "low",
			BasedOnMonths:    len(monthlyDeltas),
			Trend:            "stable",
			Explanation:      "Insufficient data for prediction (need at least 2 months).",
		}
	}

	months := dateutils.SortedKeys(monthlyDeltas)
	cumulative := decimal.Zero
	total := decimal.Zero
	for _, m := range months {
		cumulative = cumulative.Add(monthlyDeltas[m])
		total = total.Add(monthlyDeltas[m])
	}
	meanDelta := total.Div(decimal.NewFromInt(int64(len(months)))).Round(2)

	recentChange := monthlyDeltas[months[len(months)-1]].Sub(monthlyDeltas[months[len(months)-2]])
	trend := "stable"
	switch {
	case recentChange.GreaterThan(trendBand):
		trend = "increasing"
	case recentChange.LessThan(trendBand.Neg()):
		trend = "decreasing"
	}

	predicted := cumulative.Add(meanDelta.Mul(decimal.NewFromInt(int64(monthsAhead))))

	confidence := "low"
	switch {
	case len(months) >= 6:
		confidence = "high"
	case len(months) >= 3:
		confidence = "medium"
	}

	currency := feedCurrency(valid)

	return models.BalancePrediction{
		PredictedBalance: predicted,
		CurrencyCode:     currency,
		ConfidenceLevel:  confidence,
		BasedOnMonths:    len(months),
		Trend:            trend,
		Explanation: fmt.Sprintf(
			"Predicted balance in %d month(s): %s %s. Based on %d months of data. Trend: %s. Confidence: %s.",
			monthsAhead, predicted.StringFixed(2), currency, len(months), trend, confidence),
	}
}
