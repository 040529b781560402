// Package analytics derives spending, balance and statistical insights from a
// normalized expense feed. Every analysis is a pure function of its inputs:
// no state is held across calls and the same collections always produce the
// same result.
package analytics

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/GauthamPrabhuM/SplitSense/internal/models"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// DefaultCurrency is used for empty results when no expense carries a code.
const DefaultCurrency = "USD"

// Analyzer computes insights for one user.
type Analyzer struct {
	currentUserID int64

	// Now supplies the reference time for age computations. Overridable in
	// tests; defaults to time.Now.
	Now func() time.Time
}

// New creates an Analyzer for the given user.
func New(currentUserID int64) *Analyzer {
	return &Analyzer{
		currentUserID: currentUserID,
		Now:           time.Now,
	}
}

// UserID returns the user this analyzer computes insights for.
func (a *Analyzer) UserID() int64 {
	return a.currentUserID
}

// validExpenses filters out soft-deleted expenses, and settlements unless
// includeSettlements is set. The returned slice shares backing storage with
// the input; expenses are read-only past normalization so that is safe.
func validExpenses(expenses []models.Expense, includeSettlements bool) []models.Expense {
	out := make([]models.Expense, 0, len(expenses))
	for i := range expenses {
		if expenses[i].IsDeleted() {
			continue
		}
		if expenses[i].IsSettlement && !includeSettlements {
			continue
		}
		out = append(out, expenses[i])
	}
	return out
}

// feedCurrency returns the currency code of the first expense in the feed,
// falling back to DefaultCurrency for an empty feed. Normalization has
// already forced the feed to a single code.
func feedCurrency(expenses []models.Expense) string {
	if len(expenses) > 0 {
		return expenses[0].Cost.Currency
	}
	return DefaultCurrency
}
