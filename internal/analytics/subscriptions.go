package analytics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/GauthamPrabhuM/SplitSense/internal/dateutils"
	"github.com/GauthamPrabhuM/SplitSense/internal/models"
)

const (
	// patternTokens is how many leading description words form a pattern key.
	patternTokens = 3
	// minOccurrences is the smallest cluster that counts as recurring.
	minOccurrences = 3
	// defaultFrequencyDays is assumed when a cluster has a single interval.
	defaultFrequencyDays = 30.0
	// monthlyFrequencyCap: patterns at or below this interval count as
	// monthly-or-more-frequent for the subscriptions total.
	monthlyFrequencyCap = 35.0
)

// patternKey normalizes a description to its first three lowercase
// whitespace-delimited tokens.
func patternKey(description string) string {
	tokens := strings.Fields(strings.ToLower(strings.TrimSpace(description)))
	if len(tokens) > patternTokens {
		tokens = tokens[:patternTokens]
	}
	return strings.Join(tokens, " ")
}

// DetectSubscriptions clusters the user's paid expenses by description
// pattern and reports clusters with three or more occurrences as recurring
// charges, ranked by total amount.
func (a *Analyzer) DetectSubscriptions(expenses []models.Expense) models.SubscriptionDetection {
	valid := validExpenses(expenses, false)

	type occurrence struct {
		expense *models.Expense
		paid    decimal.Decimal
	}
	clusters := make(map[string][]occurrence)

	for i := range valid {
		e := &valid[i]
		share, ok := e.Share(a.currentUserID)
		if !ok || !share.PaidShare.IsPositive() {
			continue
		}
		key := patternKey(e.Description)
		clusters[key] = append(clusters[key], occurrence{expense: e, paid: share.PaidShare})
	}

	subscriptions := []models.RecurringExpense{}

	for pattern, occurrences := range clusters {
		if len(occurrences) < minOccurrences {
			continue
		}

		sort.Slice(occurrences, func(i, j int) bool {
			return occurrences[i].expense.Date.Before(occurrences[j].expense.Date)
		})

		total := decimal.Zero
		for _, o := range occurrences {
			total = total.Add(o.paid)
		}
		average := total.Div(decimal.NewFromInt(int64(len(occurrences)))).Round(2)

		frequency := defaultFrequencyDays
		if len(occurrences) > 1 {
			var gaps []float64
			for i := 1; i < len(occurrences); i++ {
				gaps = append(gaps, float64(dateutils.DaysBetween(
					occurrences[i-1].expense.Date, occurrences[i].expense.Date)))
			}
			frequency = mean(gaps)
		}

		first := occurrences[0].expense
		last := occurrences[len(occurrences)-1].expense

		subscriptions = append(subscriptions, models.RecurringExpense{
			DescriptionPattern: pattern,
			Category:           first.Category,
			AverageAmount:      average,
			FrequencyDays:      frequency,
			Occurrences:        len(occurrences),
			TotalAmount:        total,
			CurrencyCode:       first.Cost.Currency,
			LastOccurrence:     last.Date,
		})
	}

	sort.SliceStable(subscriptions, func(i, j int) bool {
		return subscriptions[i].TotalAmount.GreaterThan(subscriptions[j].TotalAmount)
	})

	monthlyTotal := decimal.Zero
	for _, s := range subscriptions {
		if s.FrequencyDays <= monthlyFrequencyCap {
			monthlyTotal = monthlyTotal.Add(s.AverageAmount)
		}
	}

	currency := DefaultCurrency
	if len(subscriptions) > 0 {
		currency = subscriptions[0].CurrencyCode
	}

	return models.SubscriptionDetection{
		Subscriptions:             subscriptions,
		TotalMonthlySubscriptions: monthlyTotal,
		CurrencyCode:              currency,
		Explanation: fmt.Sprintf(
			"Detected %d recurring expense patterns. Estimated monthly subscriptions: %s %s.",
			len(subscriptions), monthlyTotal.StringFixed(2), currency),
	}
}
