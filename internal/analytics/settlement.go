package analytics

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/GauthamPrabhuM/SplitSense/internal/dateutils"
	"github.com/GauthamPrabhuM/SplitSense/internal/models"
)

// AnalyzeSettlementEfficiency reports how quickly balances get settled and
// how much remains unpaid. Settlement-record age stands in for days-to-settle
// because the feed carries no link between a settlement and the expense it
// closes; a per-person breakdown needs that matching and is deliberately not
// attempted here.
func (a *Analyzer) AnalyzeSettlementEfficiency(expenses []models.Expense) models.SettlementEfficiency {
	valid := validExpenses(expenses, true)
	now := a.Now()

	var settlementAges []float64
	for i := range valid {
		e := &valid[i]
		if !e.IsSettlement {
			continue
		}
		settlementAges = append(settlementAges, float64(dateutils.DaysSince(e.Date, now)))
	}

	unpaidCount := 0
	unpaidTotal := decimal.Zero
	for i := range valid {
		e := &valid[i]
		if e.IsSettlement {
			continue
		}
		share, ok := e.Share(a.currentUserID)
		if !ok || !share.OwedShare.IsPositive() {
			continue
		}
		unpaidCount++
		unpaidTotal = unpaidTotal.Add(share.OwedShare)
	}

	currency := feedCurrency(valid)

	return models.SettlementEfficiency{
		AverageSettlementDays: mean(settlementAges),
		MedianSettlementDays:  median(settlementAges),
		UnpaidBalancesCount:   unpaidCount,
		UnpaidBalancesTotal:   unpaidTotal,
		CurrencyCode:          currency,
		MatchedSettlements:    0,
		Explanation: fmt.Sprintf(
			"Average settlement time: %.1f days. Unpaid balances: %d expenses totaling %s %s.",
			mean(settlementAges), unpaidCount, unpaidTotal.StringFixed(2), currency),
	}
}
