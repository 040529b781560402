package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GauthamPrabhuM/SplitSense/internal/models"
)

func paidFlat(id int64, description, amount string) models.Expense {
	return models.Expense{
		ID:          id,
		Description: description,
		Cost:        money(amount),
		Date:        time.Date(2024, 3, int(id%28)+1, 0, 0, 0, 0, time.UTC),
		Shares: []models.ParticipantShare{
			share(1, amount, amount),
		},
	}
}

func TestDetectAnomaliesInsufficientData(t *testing.T) {
	a := New(1)
	expenses := []models.Expense{
		paidFlat(1, "Coffee", "4.50"),
		paidFlat(2, "Coffee", "4.50"),
	}

	result := a.DetectAnomalies(expenses, 0)

	assert.Empty(t, result.Anomalies)
	assert.Equal(t, DefaultAnomalyMultiplier, result.ThresholdMultiplier)
	assert.Contains(t, result.Explanation, "Insufficient data")
}

func TestDetectAnomaliesFlagsOutlier(t *testing.T) {
	a := New(1)
	var expenses []models.Expense
	for i := int64(1); i <= 10; i++ {
		expenses = append(expenses, paidFlat(i, "Lunch", "10.00"))
	}
	expenses = append(expenses, paidFlat(11, "New laptop", "2000.00"))

	result := a.DetectAnomalies(expenses, 3.0)

	require.Len(t, result.Anomalies, 1)
	assert.Equal(t, "New laptop", result.Anomalies[0].Description)
	assert.Equal(t, "2000.00", result.Anomalies[0].Amount.StringFixed(2))
	assert.Contains(t, result.Anomalies[0].Reason, "exceeds threshold")
}

func TestDetectAnomaliesUniformSpendingIsClean(t *testing.T) {
	a := New(1)
	var expenses []models.Expense
	for i := int64(1); i <= 8; i++ {
		expenses = append(expenses, paidFlat(i, "Lunch", "12.00"))
	}

	result := a.DetectAnomalies(expenses, 3.0)
	assert.Empty(t, result.Anomalies)
}

func TestDetectAnomaliesTighterMultiplierFindsAtLeastAsMany(t *testing.T) {
	a := New(1)
	var expenses []models.Expense
	for i := int64(1); i <= 20; i++ {
		expenses = append(expenses, paidFlat(i, fmt.Sprintf("Item %d", i), fmt.Sprintf("%d.00", 10+i)))
	}
	expenses = append(expenses, paidFlat(21, "Splurge", "500.00"))

	loose := a.DetectAnomalies(expenses, 3.0)
	tight := a.DetectAnomalies(expenses, 1.5)

	assert.GreaterOrEqual(t, len(tight.Anomalies), len(loose.Anomalies))
}

func TestDetectAnomaliesIgnoresUnpaidShares(t *testing.T) {
	a := New(1)
	// The user paid nothing on these, so there is no sample to judge.
	e := models.Expense{
		ID:   1,
		Cost: money("9000.00"),
		Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Shares: []models.ParticipantShare{
			share(1, "0.00", "4500.00"),
			share(2, "9000.00", "4500.00"),
		},
	}

	result := a.DetectAnomalies([]models.Expense{e, e, e}, 3.0)
	assert.Contains(t, result.Explanation, "Insufficient data")
}
