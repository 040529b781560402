package analytics

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/GauthamPrabhuM/SplitSense/internal/models"
)

// UncategorizedLabel is the bucket for expenses without a category.
const UncategorizedLabel = "Uncategorized"

// topN bounds the ranked breakdowns.
const topN = 10

// AnalyzeCategories groups the user's paid amounts by category and returns a
// ranked top-N breakdown with percentages.
func (a *Analyzer) AnalyzeCategories(expenses []models.Expense) models.CategoryInsight {
	valid := validExpenses(expenses, false)

	byCategory := make(map[string]decimal.Decimal)
	var order []string

	for i := range valid {
		e := &valid[i]
		share, ok := e.Share(a.currentUserID)
		if !ok {
			continue
		}

		category := e.Category
		if category == "" {
			category = UncategorizedLabel
		}
		if _, seen := byCategory[category]; !seen {
			order = append(order, category)
		}
		byCategory[category] = byCategory[category].Add(share.PaidShare)
	}

	total := decimal.Zero
	for _, amount := range byCategory {
		total = total.Add(amount)
	}

	// Stable sort on amount descending keeps insertion order for ties.
	sort.SliceStable(order, func(i, j int) bool {
		return byCategory[order[i]].GreaterThan(byCategory[order[j]])
	})

	top := make([]models.CategoryTotal, 0, topN)
	for _, category := range order {
		if len(top) == topN {
			break
		}
		amount := byCategory[category]
		percentage := 0.0
		if total.IsPositive() {
			p, _ := amount.Div(total).Mul(decimal.NewFromInt(100)).Round(2).Float64()
			percentage = p
		}
		top = append(top, models.CategoryTotal{
			Category:   category,
			Amount:     amount,
			Percentage: percentage,
		})
	}

	currency := feedCurrency(valid)

	insight := models.CategoryInsight{
		ByCategory:    byCategory,
		CurrencyCode:  currency,
		TopCategories: top,
	}

	if len(top) > 0 {
		insight.Explanation = fmt.Sprintf(
			"Total spending across %d categories: %s %s. Top category: %s (%.1f%%).",
			len(byCategory), total.StringFixed(2), currency, top[0].Category, top[0].Percentage)
	} else {
		insight.Explanation = "No category data available."
	}

	return insight
}
