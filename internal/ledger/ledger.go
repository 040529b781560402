// Package ledger reconstructs the current user's per-counterparty balance
// ledger from expense repayment edges. Purchase edges record new debt and
// settlement edges record transfers that reduce it, so the two kinds apply
// with opposite signs.
package ledger

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/GauthamPrabhuM/SplitSense/internal/dateutils"
	"github.com/GauthamPrabhuM/SplitSense/internal/models"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Ledger is the derived per-counterparty view for one user. Balances are
// signed: positive means the counterparty owes the user.
type Ledger struct {
	UserID int64
	// Balances holds the net balance per counterparty id, zero balances
	// included. Callers presenting the ledger drop zeros via NonZeroBalances.
	Balances map[int64]decimal.Decimal
	// Names maps counterparty ids to display names resolved from the first
	// occurrence of each participant across non-deleted expenses.
	Names map[int64]string
	// MonthlyTrend is the cumulative net balance per "YYYY-MM" key.
	MonthlyTrend map[string]decimal.Decimal
}

// Build reconstructs the ledger for currentUserID from the repayment edges of
// non-deleted expenses. Expenses are assumed normalized to one currency.
func Build(currentUserID int64, expenses []models.Expense) *Ledger {
	l := &Ledger{
		UserID:       currentUserID,
		Balances:     make(map[int64]decimal.Decimal),
		Names:        make(map[int64]string),
		MonthlyTrend: make(map[string]decimal.Decimal),
	}

	monthlyDeltas := make(map[string]decimal.Decimal)

	for i := range expenses {
		e := &expenses[i]
		if e.IsDeleted() {
			continue
		}

		l.resolveNames(e)

		for _, edge := range e.Repayments {
			var counterparty int64
			var delta decimal.Decimal

			switch e.Kind() {
			case models.KindSettlement:
				counterparty, delta = applySettlementEdge(currentUserID, edge)
			default:
				counterparty, delta = applyPurchaseEdge(currentUserID, edge)
			}

			if counterparty == 0 {
				continue
			}

			l.Balances[counterparty] = l.Balances[counterparty].Add(delta)
			key := dateutils.MonthKey(e.Date)
			monthlyDeltas[key] = monthlyDeltas[key].Add(delta)
		}
	}

	cumulative := decimal.Zero
	for _, key := range dateutils.SortedKeys(monthlyDeltas) {
		cumulative = cumulative.Add(monthlyDeltas[key])
		l.MonthlyTrend[key] = cumulative
	}

	log.WithFields(logrus.Fields{
		"user_id":        currentUserID,
		"counterparties": len(l.Balances),
		"months":         len(l.MonthlyTrend),
	}).Debug("Ledger rebuilt")

	return l
}

// applyPurchaseEdge maps a purchase repayment edge to a counterparty balance
// delta. An edge toward the user means the debtor owes the user; an edge away
// from the user means the user owes the creditor. Edges not touching the user
// return a zero counterparty.
func applyPurchaseEdge(userID int64, edge models.RepaymentEdge) (int64, decimal.Decimal) {
	switch {
	case edge.ToUserID == userID:
		return edge.FromUserID, edge.Amount.Amount
	case edge.FromUserID == userID:
		return edge.ToUserID, edge.Amount.Amount.Neg()
	default:
		return 0, decimal.Zero
	}
}

// applySettlementEdge maps a settlement transfer edge to a counterparty
// balance delta. The sign is inverted relative to a purchase: a payment from
// the user clears debt the user carried, moving the recorded balance toward
// zero, and a payment to the user clears debt owed to the user.
func applySettlementEdge(userID int64, edge models.RepaymentEdge) (int64, decimal.Decimal) {
	switch {
	case edge.FromUserID == userID:
		return edge.ToUserID, edge.Amount.Amount
	case edge.ToUserID == userID:
		return edge.FromUserID, edge.Amount.Amount.Neg()
	default:
		return 0, decimal.Zero
	}
}

// resolveNames records display names for the participants the expense
// identifies, keeping the first occurrence.
func (l *Ledger) resolveNames(e *models.Expense) {
	if _, ok := l.Names[e.CreatedBy.ID]; !ok && e.CreatedBy.ID != 0 {
		l.Names[e.CreatedBy.ID] = e.CreatedBy.DisplayName()
	}
	for _, u := range e.Participants {
		if _, ok := l.Names[u.ID]; !ok && u.ID != 0 {
			l.Names[u.ID] = u.DisplayName()
		}
	}
}

// AddNames enriches the name table from a known user list, typically group
// member rosters. First occurrence still wins.
func (l *Ledger) AddNames(users []models.User) {
	for _, u := range users {
		if _, ok := l.Names[u.ID]; !ok && u.ID != 0 {
			l.Names[u.ID] = u.DisplayName()
		}
	}
}

// Name returns the display name for a counterparty, synthesizing a
// "Participant {id}" label when none was seen.
func (l *Ledger) Name(userID int64) string {
	if name, ok := l.Names[userID]; ok {
		return name
	}
	return (models.User{ID: userID}).DisplayName()
}

// NonZeroBalances returns the per-person balances with settled (zero)
// counterparties dropped, resolved to display names.
func (l *Ledger) NonZeroBalances() []models.PersonBalance {
	out := make([]models.PersonBalance, 0, len(l.Balances))
	for id, balance := range l.Balances {
		if balance.IsZero() {
			continue
		}
		out = append(out, models.PersonBalance{
			UserID:  id,
			Name:    l.Name(id),
			Balance: balance,
		})
	}
	return out
}
