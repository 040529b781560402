package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/GauthamPrabhuM/SplitSense/internal/models"
)

func TestAnalyzeSettlementEfficiency(t *testing.T) {
	now := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	a := New(1)
	a.Now = func() time.Time { return now }

	expenses := []models.Expense{
		{
			ID:           1,
			IsSettlement: true,
			Cost:         money("25.00"),
			Date:         now.AddDate(0, 0, -10),
		},
		{
			ID:           2,
			IsSettlement: true,
			Cost:         money("40.00"),
			Date:         now.AddDate(0, 0, -20),
		},
		{
			ID:   3,
			Cost: money("60.00"),
			Date: now.AddDate(0, 0, -5),
			Shares: []models.ParticipantShare{
				share(2, "60.00", "30.00"),
				share(1, "0.00", "30.00"),
			},
		},
	}

	result := a.AnalyzeSettlementEfficiency(expenses)

	assert.InDelta(t, 15.0, result.AverageSettlementDays, 0.001)
	assert.InDelta(t, 15.0, result.MedianSettlementDays, 0.001)
	assert.Equal(t, 1, result.UnpaidBalancesCount)
	assert.Equal(t, "30.00", result.UnpaidBalancesTotal.StringFixed(2))
	assert.Equal(t, 0, result.MatchedSettlements)
	assert.Contains(t, result.Explanation, "Unpaid balances: 1 expenses")
}

func TestAnalyzeSettlementEfficiencyNoSettlements(t *testing.T) {
	a := New(1)
	a.Now = func() time.Time { return time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC) }

	result := a.AnalyzeSettlementEfficiency(nil)

	assert.Zero(t, result.AverageSettlementDays)
	assert.Zero(t, result.MedianSettlementDays)
	assert.Zero(t, result.UnpaidBalancesCount)
	assert.True(t, result.UnpaidBalancesTotal.IsZero())
}
