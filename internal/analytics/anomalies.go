package analytics

import (
	"fmt"

	"github.com/GauthamPrabhuM/SplitSense/internal/models"
)

// DefaultAnomalyMultiplier is the standard-deviation multiplier applied when
// the caller does not supply one.
const DefaultAnomalyMultiplier = 3.0

// minAnomalyPoints is the smallest sample that can carry an outlier signal.
const minAnomalyPoints = 3

// DetectAnomalies flags the user's paid shares that exceed
// mean + multiplier*stdev across non-deleted, non-settlement expenses.
// Fewer than three positive data points yields an explicit
// insufficient-data result instead of anomalies.
func (a *Analyzer) DetectAnomalies(expenses []models.Expense, thresholdMultiplier float64) models.AnomalyDetection {
	if thresholdMultiplier <= 0 {
		thresholdMultiplier = DefaultAnomalyMultiplier
	}

	valid := validExpenses(expenses, false)

	var amounts []float64
	type candidate struct {
		expense *models.Expense
		amount  float64
	}
	var candidates []candidate

	for i := range valid {
		e := &valid[i]
		share, ok := e.Share(a.currentUserID)
		if !ok || !share.PaidShare.IsPositive() {
			continue
		}
		paid, _ := share.PaidShare.Float64()
		amounts = append(amounts, paid)
		candidates = append(candidates, candidate{expense: e, amount: paid})
	}

	if len(amounts) < minAnomalyPoints {
		return models.AnomalyDetection{
			Anomalies:           []models.Anomaly{},
			ThresholdMultiplier: thresholdMultiplier,
			Explanation:         "Insufficient data for anomaly detection (need at least 3 expenses).",
		}
	}

	m := mean(amounts)
	threshold := m + thresholdMultiplier*sampleStdev(amounts)

	anomalies := []models.Anomaly{}
	for _, c := range candidates {
		if c.amount <= threshold {
			continue
		}
		share, _ := c.expense.Share(a.currentUserID)
		anomalies = append(anomalies, models.Anomaly{
			Date:        c.expense.Date,
			Amount:      share.PaidShare,
			Description: c.expense.Description,
			Reason:      fmt.Sprintf("Amount (%.2f) exceeds threshold (%.2f)", c.amount, threshold),
		})
	}

	return models.AnomalyDetection{
		Anomalies:           anomalies,
		ThresholdMultiplier: thresholdMultiplier,
		Explanation: fmt.Sprintf(
			"Detected %d spending anomalies using %.1fx standard deviation threshold. Mean spending: %.2f, Threshold: %.2f.",
			len(anomalies), thresholdMultiplier, m, threshold),
	}
}
