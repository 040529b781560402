package analytics

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/GauthamPrabhuM/SplitSense/internal/models"
)

// NoGroupLabel names the bucket for expenses outside any group.
const NoGroupLabel = "No Group"

// AnalyzeGroups groups the user's paid amounts by group and returns a ranked
// top-N breakdown with member and expense counts.
func (a *Analyzer) AnalyzeGroups(expenses []models.Expense, groups []models.Group) models.GroupInsight {
	valid := validExpenses(expenses, false)

	lookup := make(map[int64]*models.Group, len(groups))
	for i := range groups {
		lookup[groups[i].ID] = &groups[i]
	}

	byGroup := make(map[int64]models.GroupTotal)
	var order []int64

	for i := range valid {
		e := &valid[i]
		share, ok := e.Share(a.currentUserID)
		if !ok {
			continue
		}

		entry, seen := byGroup[e.GroupID]
		if !seen {
			order = append(order, e.GroupID)
			entry = models.GroupTotal{
				GroupID:       e.GroupID,
				Name:          resolveGroupName(e.GroupID, lookup),
				TotalSpending: decimal.Zero,
			}
			if g, found := lookup[e.GroupID]; found {
				entry.MemberCount = len(g.Members)
			}
		}
		entry.TotalSpending = entry.TotalSpending.Add(share.PaidShare)
		entry.ExpenseCount++
		byGroup[e.GroupID] = entry
	}

	sort.SliceStable(order, func(i, j int) bool {
		return byGroup[order[i]].TotalSpending.GreaterThan(byGroup[order[j]].TotalSpending)
	})

	top := make([]models.GroupTotal, 0, topN)
	grandTotal := decimal.Zero
	for _, id := range order {
		grandTotal = grandTotal.Add(byGroup[id].TotalSpending)
		if len(top) < topN {
			top = append(top, byGroup[id])
		}
	}

	currency := feedCurrency(valid)

	insight := models.GroupInsight{
		ByGroup:      byGroup,
		CurrencyCode: currency,
		TopGroups:    top,
	}

	if len(top) > 0 {
		insight.Explanation = fmt.Sprintf(
			"Spending across %d groups: %s %s. Top group: %s (%s %s).",
			len(byGroup), grandTotal.StringFixed(2), currency,
			top[0].Name, top[0].TotalSpending.StringFixed(2), currency)
	} else {
		insight.Explanation = "No group data available."
	}

	return insight
}

// resolveGroupName distinguishes the ungrouped bucket from unresolved ids.
func resolveGroupName(groupID int64, lookup map[int64]*models.Group) string {
	if g, ok := lookup[groupID]; ok {
		return g.Name
	}
	if groupID == 0 {
		return NoGroupLabel
	}
	return fmt.Sprintf("Group %d", groupID)
}
