package analytics

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/GauthamPrabhuM/SplitSense/internal/dateutils"
	"github.com/GauthamPrabhuM/SplitSense/internal/ledger"
	"github.com/GauthamPrabhuM/SplitSense/internal/models"
)

// AnalyzeBalance reconstructs the user's net position. Aggregate numbers come
// from the user's own paid/owed shares on genuine expenses; the per-person
// breakdown comes from the repayment-edge ledger, which also folds in
// settlement transfers.
func (a *Analyzer) AnalyzeBalance(expenses []models.Expense, groups []models.Group) models.BalanceInsight {
	valid := validExpenses(expenses, false)

	netBalance := decimal.Zero
	owedToUser := decimal.Zero
	userOwes := decimal.Zero
	monthlyDeltas := make(map[string]decimal.Decimal)

	for i := range valid {
		e := &valid[i]
		share, ok := e.Share(a.currentUserID)
		if !ok {
			continue
		}

		delta := share.PaidShare.Sub(share.OwedShare)
		netBalance = netBalance.Add(delta)
		if delta.IsPositive() {
			owedToUser = owedToUser.Add(delta)
		} else {
			userOwes = userOwes.Add(delta.Abs())
		}

		key := dateutils.MonthKey(e.Date)
		monthlyDeltas[key] = monthlyDeltas[key].Add(delta)
	}

	trend := make(map[string]decimal.Decimal, len(monthlyDeltas))
	cumulative := decimal.Zero
	for _, key := range dateutils.SortedKeys(monthlyDeltas) {
		cumulative = cumulative.Add(monthlyDeltas[key])
		trend[key] = cumulative
	}

	l := ledger.Build(a.currentUserID, expenses)
	for _, g := range groups {
		l.AddNames(g.Members)
	}
	byPerson := l.NonZeroBalances()
	for i := range byPerson {
		byPerson[i].Name = l.Name(byPerson[i].UserID)
	}
	sort.Slice(byPerson, func(i, j int) bool {
		if !byPerson[i].Balance.Equal(byPerson[j].Balance) {
			return byPerson[i].Balance.GreaterThan(byPerson[j].Balance)
		}
		return byPerson[i].UserID < byPerson[j].UserID
	})

	currency := feedCurrency(valid)

	var balanceDesc string
	switch {
	case netBalance.IsPositive():
		balanceDesc = fmt.Sprintf("you are owed %s %s net", netBalance.StringFixed(2), currency)
	case netBalance.IsNegative():
		balanceDesc = fmt.Sprintf("you owe %s %s net", netBalance.Abs().StringFixed(2), currency)
	default:
		balanceDesc = "your balances are settled"
	}

	return models.BalanceInsight{
		NetBalance:    netBalance,
		CurrencyCode:  currency,
		OwedToUser:    owedToUser,
		UserOwes:      userOwes,
		ByPerson:      byPerson,
		TrendOverTime: trend,
		LedgerTrend:   l.MonthlyTrend,
		Explanation: fmt.Sprintf(
			"Net balance: %s %s. Overall, %s. You are owed %s %s and owe %s %s.",
			netBalance.StringFixed(2), currency, balanceDesc,
			owedToUser.StringFixed(2), currency, userOwes.StringFixed(2), currency),
	}
}
