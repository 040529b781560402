// Package splitsense is the public API of the ledger analytics engine. Every
// function is a pure computation over in-memory collections: no network, file
// or database access happens here, and the same inputs always produce the
// same outputs.
package splitsense

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/GauthamPrabhuM/SplitSense/internal/analytics"
	"github.com/GauthamPrabhuM/SplitSense/internal/ledger"
	"github.com/GauthamPrabhuM/SplitSense/internal/models"
	"github.com/GauthamPrabhuM/SplitSense/internal/normalizer"
	"github.com/GauthamPrabhuM/SplitSense/internal/verifier"
)

// SetLogger propagates a custom logger to the engine packages.
func SetLogger(logger *logrus.Logger) {
	normalizer.SetLogger(logger)
	ledger.SetLogger(logger)
	verifier.SetLogger(logger)
	analytics.SetLogger(logger)
}

// Normalize converts all expense amounts to targetCurrency using the static
// rate table and forces timestamps to UTC. Unknown currencies pass through
// with a logged warning.
func Normalize(expenses []models.Expense, groups []models.Group, targetCurrency string) ([]models.Expense, []models.Group, error) {
	n, err := normalizer.New(targetCurrency, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("normalize: %w", err)
	}
	return n.NormalizeExpenses(expenses), n.NormalizeGroups(groups), nil
}

// NormalizeWithRates is Normalize with a caller-supplied rate table.
func NormalizeWithRates(expenses []models.Expense, groups []models.Group, targetCurrency string, rates normalizer.RateTable) ([]models.Expense, []models.Group, error) {
	n, err := normalizer.New(targetCurrency, rates)
	if err != nil {
		return nil, nil, fmt.Errorf("normalize: %w", err)
	}
	return n.NormalizeExpenses(expenses), n.NormalizeGroups(groups), nil
}

// Verify cross-checks the feed for internal consistency. Inconsistencies are
// returned as structured errors and warnings, never raised.
func Verify(userID int64, expenses []models.Expense, groups []models.Group) models.ValidationResult {
	return verifier.New(userID).VerifyAll(expenses, groups)
}

// AnalyzeSpending buckets the user's paid shares by month, quarter and year.
func AnalyzeSpending(userID int64, expenses []models.Expense) models.SpendingInsight {
	return analytics.New(userID).AnalyzeSpending(expenses)
}

// AnalyzeBalance reconstructs the user's per-counterparty ledger position.
func AnalyzeBalance(userID int64, expenses []models.Expense, groups []models.Group) models.BalanceInsight {
	return analytics.New(userID).AnalyzeBalance(expenses, groups)
}

// AnalyzeCategories ranks the user's spending by category.
func AnalyzeCategories(userID int64, expenses []models.Expense) models.CategoryInsight {
	return analytics.New(userID).AnalyzeCategories(expenses)
}

// AnalyzeGroups ranks the user's spending by group.
func AnalyzeGroups(userID int64, expenses []models.Expense, groups []models.Group) models.GroupInsight {
	return analytics.New(userID).AnalyzeGroups(expenses, groups)
}

// DetectAnomalies flags outlier paid shares beyond mean + multiplier*stdev.
// A multiplier of 0 or less selects the default of 3.0.
func DetectAnomalies(userID int64, expenses []models.Expense, thresholdMultiplier float64) models.AnomalyDetection {
	return analytics.New(userID).DetectAnomalies(expenses, thresholdMultiplier)
}

// DetectSubscriptions finds recurring charge patterns in the user's expenses.
func DetectSubscriptions(userID int64, expenses []models.Expense) models.SubscriptionDetection {
	return analytics.New(userID).DetectSubscriptions(expenses)
}

// AnalyzeSettlementEfficiency reports settlement latency and unpaid balances.
func AnalyzeSettlementEfficiency(userID int64, expenses []models.Expense) models.SettlementEfficiency {
	return analytics.New(userID).AnalyzeSettlementEfficiency(expenses)
}

// AnalyzeCashFlow classifies the user as net payer or net receiver.
func AnalyzeCashFlow(userID int64, expenses []models.Expense) models.CashFlowInsight {
	return analytics.New(userID).AnalyzeCashFlow(expenses)
}

// PredictBalance extrapolates the user's balance from monthly deltas.
// A monthsAhead of 0 or less selects one month.
func PredictBalance(userID int64, expenses []models.Expense, monthsAhead int) models.BalancePrediction {
	return analytics.New(userID).PredictBalance(expenses, monthsAhead)
}

// RankFriction scores counterparties and groups by financial tension.
func RankFriction(userID int64, expenses []models.Expense, groups []models.Group) models.FrictionRanking {
	return analytics.New(userID).RankFriction(expenses, groups)
}

// Options tunes the configurable analyses in AnalyzeAll. The zero value
// selects the defaults: a 3.0 anomaly multiplier and a one-month horizon.
type Options struct {
	// AnomalyMultiplier is the stdev multiplier for anomaly detection.
	// Values of 0 or less select the default of 3.0.
	AnomalyMultiplier float64
	// MonthsAhead is the balance prediction horizon. Values of 0 or less
	// select one month.
	MonthsAhead int
}

// AnalyzeAll runs verification and every insight over an already-normalized
// feed and bundles the results into one report.
func AnalyzeAll(userID int64, expenses []models.Expense, groups []models.Group, opts Options) models.AllInsights {
	a := analytics.New(userID)

	settlements := 0
	for i := range expenses {
		if expenses[i].IsSettlement {
			settlements++
		}
	}

	return models.AllInsights{
		ReportID:      uuid.NewString(),
		UserID:        userID,
		Validation:    Verify(userID, expenses, groups),
		Spending:      a.AnalyzeSpending(expenses),
		Balance:       a.AnalyzeBalance(expenses, groups),
		Categories:    a.AnalyzeCategories(expenses),
		Groups:        a.AnalyzeGroups(expenses, groups),
		Anomalies:     a.DetectAnomalies(expenses, opts.AnomalyMultiplier),
		Subscriptions: a.DetectSubscriptions(expenses),
		Settlement:    a.AnalyzeSettlementEfficiency(expenses),
		CashFlow:      a.AnalyzeCashFlow(expenses),
		Prediction:    a.PredictBalance(expenses, opts.MonthsAhead),
		Friction:      a.RankFriction(expenses, groups),
		GeneratedAt:   time.Now().UTC(),
		DataSummary: map[string]int{
			"expenses":    len(expenses),
			"settlements": settlements,
			"groups":      len(groups),
		},
	}
}
