package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/GauthamPrabhuM/SplitSense/internal/models"
)

func money(amount string) models.Money {
	return models.NewMoney(decimal.RequireFromString(amount), "USD")
}

func share(userID int64, paid, owed string) models.ParticipantShare {
	return models.ParticipantShare{
		UserID:    userID,
		PaidShare: decimal.RequireFromString(paid),
		OwedShare: decimal.RequireFromString(owed),
	}
}

// paidExpense is an expense the user fronted in full and half of which is
// theirs to carry.
func paidExpense(id int64, date time.Time, amount string) models.Expense {
	half := decimal.RequireFromString(amount).Div(decimal.NewFromInt(2)).Round(2)
	return models.Expense{
		ID:          id,
		Description: "Groceries",
		Cost:        money(amount),
		Date:        date,
		Shares: []models.ParticipantShare{
			{UserID: 1, PaidShare: decimal.RequireFromString(amount), OwedShare: half},
			{UserID: 2, PaidShare: decimal.Zero, OwedShare: half},
		},
	}
}

func TestAnalyzeSpendingBuckets(t *testing.T) {
	a := New(1)
	expenses := []models.Expense{
		paidExpense(1, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), "100.00"),
		paidExpense(2, time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), "50.00"),
		paidExpense(3, time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC), "80.00"),
	}

	insight := a.AnalyzeSpending(expenses)

	assert.Equal(t, "230.00", insight.TotalSpending.StringFixed(2))
	assert.Equal(t, "USD", insight.CurrencyCode)
	assert.Equal(t, "150.00", insight.MonthlyBreakdown["2024-01"].StringFixed(2))
	assert.Equal(t, "80.00", insight.MonthlyBreakdown["2024-04"].StringFixed(2))
	assert.Equal(t, "150.00", insight.QuarterlyBreakdown["2024-Q1"].StringFixed(2))
	assert.Equal(t, "80.00", insight.QuarterlyBreakdown["2024-Q2"].StringFixed(2))
	assert.Equal(t, "230.00", insight.YearlyBreakdown["2024"].StringFixed(2))
	assert.Equal(t, "2024-01", insight.PeakMonth)
	assert.Equal(t, "150.00", insight.PeakAmount.StringFixed(2))
	assert.Equal(t, "115.00", insight.MonthlyAverage.StringFixed(2))
}

func TestAnalyzeSpendingMonthlySumsMatchTotal(t *testing.T) {
	a := New(1)
	expenses := []models.Expense{
		paidExpense(1, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), "33.33"),
		paidExpense(2, time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC), "66.67"),
		paidExpense(3, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), "10.01"),
	}

	insight := a.AnalyzeSpending(expenses)

	sum := decimal.Zero
	for _, v := range insight.MonthlyBreakdown {
		sum = sum.Add(v)
	}
	assert.True(t, insight.TotalSpending.Equal(sum))
}

func TestAnalyzeSpendingExcludesSettlementsAndDeleted(t *testing.T) {
	a := New(1)
	deleted := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	gone := paidExpense(2, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), "500.00")
	gone.DeletedAt = &deleted

	settlement := paidExpense(3, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), "200.00")
	settlement.IsSettlement = true

	expenses := []models.Expense{
		paidExpense(1, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), "40.00"),
		gone,
		settlement,
	}

	insight := a.AnalyzeSpending(expenses)
	assert.Equal(t, "40.00", insight.TotalSpending.StringFixed(2))
}

func TestAnalyzeSpendingEmpty(t *testing.T) {
	a := New(1)
	insight := a.AnalyzeSpending(nil)

	assert.True(t, insight.TotalSpending.IsZero())
	assert.Equal(t, DefaultCurrency, insight.CurrencyCode)
	assert.Equal(t, "stable", insight.SpendingTrend)
	assert.Equal(t, "No spending data available.", insight.Explanation)
}

func TestClassifyTrend(t *testing.T) {
	month := func(amounts ...string) map[string]decimal.Decimal {
		out := make(map[string]decimal.Decimal)
		for i, amt := range amounts {
			key := time.Date(2024, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
			out[key] = decimal.RequireFromString(amt)
		}
		return out
	}

	tests := []struct {
		name     string
		monthly  map[string]decimal.Decimal
		expected string
	}{
		{
			name:     "TooFewMonths",
			monthly:  month("10", "200", "4000"),
			expected: "stable",
		},
		{
			name:     "Increasing",
			monthly:  month("100", "100", "150", "150"),
			expected: "increasing",
		},
		{
			name:     "Decreasing",
			monthly:  month("150", "150", "100", "100"),
			expected: "decreasing",
		},
		{
			name:     "FlatWithinBand",
			monthly:  month("100", "100", "105", "105"),
			expected: "stable",
		},
		{
			name:     "ExactlyAtIncreaseBound",
			monthly:  month("100", "100", "110", "110"),
			expected: "increasing",
		},
		{
			name:     "AllZeroMonths",
			monthly:  month("0", "0", "0", "0"),
			expected: "stable",
		},
		{
			name:     "ZeroBaselineThenSpending",
			monthly:  month("0", "0", "50", "50"),
			expected: "increasing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classifyTrend(tt.monthly))
		})
	}
}
