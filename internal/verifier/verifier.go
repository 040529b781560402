// Package verifier cross-checks the raw expense feed for internal
// consistency. Inconsistencies are collected into a ValidationResult rather
// than raised, so analytics can still run on imperfect data.
package verifier

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
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

// Verifier runs data-integrity checks for one user's feed.
type Verifier struct {
	currentUserID int64
}

// New creates a Verifier for the given user.
func New(currentUserID int64) *Verifier {
	return &Verifier{currentUserID: currentUserID}
}

// VerifyAll runs every check and folds the results into one ValidationResult.
func (v *Verifier) VerifyAll(expenses []models.Expense, groups []models.Group) models.ValidationResult {
	result := models.ValidationResult{
		Checks:   []models.ValidationCheck{},
		Errors:   []string{},
		Warnings: []string{},
	}

	checks, errs := v.verifyExpenseTotals(expenses)
	result.Checks = append(result.Checks, checks...)
	result.Errors = append(result.Errors, errs...)

	checks, errs = v.verifyGroupBalances(expenses, groups)
	result.Checks = append(result.Checks, checks...)
	result.Errors = append(result.Errors, errs...)

	checks, errs = v.verifySettlements(expenses)
	result.Checks = append(result.Checks, checks...)
	result.Errors = append(result.Errors, errs...)

	checks, warnings := v.verifyCurrencyConsistency(expenses, groups)
	result.Checks = append(result.Checks, checks...)
	result.Warnings = append(result.Warnings, warnings...)

	result.Checks = append(result.Checks, v.verifyNetBalance(expenses))

	result.IsValid = len(result.Errors) == 0

	log.WithFields(logrus.Fields{
		"checks":   len(result.Checks),
		"errors":   len(result.Errors),
		"warnings": len(result.Warnings),
	}).Info("Verification complete")

	return result
}

// verifyExpenseTotals checks that each non-deleted expense's paid shares sum
// to its owed shares within one cent.
func (v *Verifier) verifyExpenseTotals(expenses []models.Expense) ([]models.ValidationCheck, []string) {
	var checks []models.ValidationCheck
	var errs []string

	for i := range expenses {
		e := &expenses[i]
		if e.IsDeleted() {
			continue
		}

		totalPaid := decimal.Zero
		totalOwed := decimal.Zero
		for _, s := range e.Shares {
			totalPaid = totalPaid.Add(s.PaidShare)
			totalOwed = totalOwed.Add(s.OwedShare)
		}

		difference := totalPaid.Sub(totalOwed).Abs()
		valid := models.WithinCent(totalPaid, totalOwed)
		if !valid {
			errs = append(errs, fmt.Sprintf(
				"Expense %d (%s): paid total (%s) != owed total (%s), difference: %s",
				e.ID, e.Description, totalPaid.StringFixed(2), totalOwed.StringFixed(2), difference.StringFixed(2)))
		}

		checks = append(checks, models.ValidationCheck{
			Type:    "expense_totals",
			IsValid: valid,
			Details: map[string]interface{}{
				"expense_id": e.ID,
				"total_paid": totalPaid.StringFixed(2),
				"total_owed": totalOwed.StringFixed(2),
				"difference": difference.StringFixed(2),
			},
		})
	}

	return checks, errs
}

// verifyGroupBalances checks the double-entry property: within each group the
// per-user (paid - owed) balances sum to zero.
func (v *Verifier) verifyGroupBalances(expenses []models.Expense, groups []models.Group) ([]models.ValidationCheck, []string) {
	var checks []models.ValidationCheck
	var errs []string

	groupBalances := make(map[int64]map[int64]decimal.Decimal)

	for i := range expenses {
		e := &expenses[i]
		if e.IsDeleted() || e.IsSettlement {
			continue
		}

		if groupBalances[e.GroupID] == nil {
			groupBalances[e.GroupID] = make(map[int64]decimal.Decimal)
		}
		for _, s := range e.Shares {
			if s.UserID == 0 {
				continue
			}
			delta := s.PaidShare.Sub(s.OwedShare)
			groupBalances[e.GroupID][s.UserID] = groupBalances[e.GroupID][s.UserID].Add(delta)
		}
	}

	groupIDs := make([]int64, 0, len(groupBalances))
	for id := range groupBalances {
		groupIDs = append(groupIDs, id)
	}
	sort.Slice(groupIDs, func(i, j int) bool { return groupIDs[i] < groupIDs[j] })

	for _, groupID := range groupIDs {
		userBalances := groupBalances[groupID]
		total := decimal.Zero
		for _, b := range userBalances {
			total = total.Add(b)
		}

		valid := models.WithinCent(total, decimal.Zero)
		if !valid {
			errs = append(errs, fmt.Sprintf(
				"%s: total balance (%s) != 0", groupLabel(groupID, groups), total.StringFixed(2)))
		}

		checks = append(checks, models.ValidationCheck{
			Type:    "group_balance",
			IsValid: valid,
			Details: map[string]interface{}{
				"group_id":      groupID,
				"total_balance": total.StringFixed(2),
				"user_count":    len(userBalances),
			},
		})
	}

	return checks, errs
}

// verifySettlements checks that each settlement's repayment edges reconcile
// to its recorded cost.
func (v *Verifier) verifySettlements(expenses []models.Expense) ([]models.ValidationCheck, []string) {
	var checks []models.ValidationCheck
	var errs []string

	for i := range expenses {
		e := &expenses[i]
		if e.IsDeleted() || !e.IsSettlement {
			continue
		}

		repaymentTotal := decimal.Zero
		for _, r := range e.Repayments {
			repaymentTotal = repaymentTotal.Add(r.Amount.Amount)
		}

		difference := e.Cost.Amount.Sub(repaymentTotal).Abs()
		valid := models.WithinCent(e.Cost.Amount, repaymentTotal)
		if !valid {
			errs = append(errs, fmt.Sprintf(
				"Settlement expense %d: cost (%s) != repayment total (%s)",
				e.ID, e.Cost.Amount.StringFixed(2), repaymentTotal.StringFixed(2)))
		}

		checks = append(checks, models.ValidationCheck{
			Type:    "settlement",
			IsValid: valid,
			Details: map[string]interface{}{
				"expense_id":      e.ID,
				"cost":            e.Cost.Amount.StringFixed(2),
				"repayment_total": repaymentTotal.StringFixed(2),
				"difference":      difference.StringFixed(2),
			},
		})
	}

	return checks, errs
}

// verifyCurrencyConsistency warns when a group mixes currencies, which hints
// at missing normalization.
func (v *Verifier) verifyCurrencyConsistency(expenses []models.Expense, groups []models.Group) ([]models.ValidationCheck, []string) {
	var checks []models.ValidationCheck
	var warnings []string

	groupCurrencies := make(map[int64]map[string]bool)
	for i := range expenses {
		e := &expenses[i]
		if e.IsDeleted() {
			continue
		}
		if groupCurrencies[e.GroupID] == nil {
			groupCurrencies[e.GroupID] = make(map[string]bool)
		}
		groupCurrencies[e.GroupID][e.Cost.Currency] = true
	}

	groupIDs := make([]int64, 0, len(groupCurrencies))
	for id := range groupCurrencies {
		groupIDs = append(groupIDs, id)
	}
	sort.Slice(groupIDs, func(i, j int) bool { return groupIDs[i] < groupIDs[j] })

	for _, groupID := range groupIDs {
		currencySet := groupCurrencies[groupID]
		currencies := make([]string, 0, len(currencySet))
		for c := range currencySet {
			currencies = append(currencies, c)
		}
		sort.Strings(currencies)

		valid := len(currencies) <= 1
		if !valid {
			warnings = append(warnings, fmt.Sprintf(
				"%s: multiple currencies detected: %s. Ensure proper normalization.",
				groupLabel(groupID, groups), strings.Join(currencies, ", ")))
		}

		checks = append(checks, models.ValidationCheck{
			Type:    "currency_consistency",
			IsValid: valid,
			Details: map[string]interface{}{
				"group_id":   groupID,
				"currencies": currencies,
			},
		})
	}

	return checks, warnings
}

// verifyNetBalance decomposes the user's net position into the share-derived
// balance and the settlement adjustment. Informational only.
func (v *Verifier) verifyNetBalance(expenses []models.Expense) models.ValidationCheck {
	shareBalance := decimal.Zero
	settlementAdjustment := decimal.Zero

	for i := range expenses {
		e := &expenses[i]
		if e.IsDeleted() {
			continue
		}

		if e.IsSettlement {
			for _, r := range e.Repayments {
				switch v.currentUserID {
				case r.FromUserID:
					settlementAdjustment = settlementAdjustment.Sub(r.Amount.Amount)
				case r.ToUserID:
					settlementAdjustment = settlementAdjustment.Add(r.Amount.Amount)
				}
			}
			continue
		}

		if share, ok := e.Share(v.currentUserID); ok {
			shareBalance = shareBalance.Add(share.PaidShare.Sub(share.OwedShare))
		}
	}

	return models.ValidationCheck{
		Type:    "net_balance",
		IsValid: true,
		Details: map[string]interface{}{
			"calculated_from_expenses": shareBalance.StringFixed(2),
			"settlement_adjustment":    settlementAdjustment.StringFixed(2),
			"total_net_balance":        shareBalance.Add(settlementAdjustment).StringFixed(2),
		},
	}
}

func groupLabel(groupID int64, groups []models.Group) string {
	for _, g := range groups {
		if g.ID == groupID {
			return g.Name
		}
	}
	if groupID == 0 {
		return "No Group"
	}
	return fmt.Sprintf("Group %d", groupID)
}
