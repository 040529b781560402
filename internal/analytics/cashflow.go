package analytics

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/GauthamPrabhuM/SplitSense/internal/models"
)

// AnalyzeCashFlow sums the user's paid vs owed shares and classifies the user
// as a net payer or net receiver. Front-pay percentage is the fraction of the
// user's paid expenses where the user fronted more than their own share.
func (a *Analyzer) AnalyzeCashFlow(expenses []models.Expense) models.CashFlowInsight {
	valid := validExpenses(expenses, false)

	totalPaid := decimal.Zero
	totalReceived := decimal.Zero
	frontPayCount := 0
	paidExpenses := 0

	for i := range valid {
		e := &valid[i]
		share, ok := e.Share(a.currentUserID)
		if !ok {
			continue
		}

		totalPaid = totalPaid.Add(share.PaidShare)
		totalReceived = totalReceived.Add(share.OwedShare)

		if share.PaidShare.IsPositive() {
			paidExpenses++
			if share.PaidShare.GreaterThan(share.OwedShare) {
				frontPayCount++
			}
		}
	}

	net := totalPaid.Sub(totalReceived)
	frontPayPercent := 0.0
	if paidExpenses > 0 {
		frontPayPercent = float64(frontPayCount) / float64(paidExpenses) * 100
	}

	flowDesc := "net receiver (you receive more than you front-pay)"
	if net.IsPositive() {
		flowDesc = "net payer (you front-pay more than you receive)"
	}

	currency := feedCurrency(valid)

	return models.CashFlowInsight{
		TotalPaid:       totalPaid,
		TotalReceived:   totalReceived,
		NetCashFlow:     net,
		CurrencyCode:    currency,
		FrontPayPercent: frontPayPercent,
		Explanation: fmt.Sprintf(
			"Total paid: %s %s, Total received: %s %s. You are a %s. Front-pay percentage: %.1f%%.",
			totalPaid.StringFixed(2), currency, totalReceived.StringFixed(2), currency,
			flowDesc, frontPayPercent),
	}
}
