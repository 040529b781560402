// Package normalizer converts expense amounts to a single target currency
// using a static rate table and forces all timestamps to UTC. It is the first
// stage of the analysis pipeline; everything downstream assumes its output.
package normalizer

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/GauthamPrabhuM/SplitSense/internal/currencyutils"
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

// ConversionStatus tells the caller whether a conversion actually happened.
type ConversionStatus int

const (
	// Converted means the amount was converted into the target currency.
	Converted ConversionStatus = iota
	// Unsupported means the source currency is not in the rate table and the
	// amount passed through unchanged. The caller decides whether to warn,
	// reject or accept.
	Unsupported
)

// ConversionOutcome is the result of a single currency conversion.
type ConversionOutcome struct {
	Money        models.Money
	Status       ConversionStatus
	OriginalCode string
}

// Normalizer converts amounts between currencies using a fixed rate table.
type Normalizer struct {
	baseCurrency string
	rates        RateTable
}

// New creates a Normalizer targeting the given base currency. The base must
// exist in the rate table.
func New(baseCurrency string, rates RateTable) (*Normalizer, error) {
	if rates == nil {
		rates = DefaultRates()
	}
	base := currencyutils.NormalizeCode(baseCurrency)
	if _, ok := rates.Rate(base); !ok {
		return nil, fmt.Errorf("unsupported base currency: %s", baseCurrency)
	}
	return &Normalizer{baseCurrency: base, rates: rates}, nil
}

// BaseCurrency returns the currency all amounts are normalized to.
func (n *Normalizer) BaseCurrency() string {
	return n.baseCurrency
}

// Convert converts an amount from its source currency to the base currency,
// rounding half-up to 2 decimals. Unknown source currencies pass through
// unconverted with an Unsupported status.
func (n *Normalizer) Convert(amount decimal.Decimal, fromCurrency string) ConversionOutcome {
	from := currencyutils.NormalizeCode(fromCurrency)

	if from == n.baseCurrency {
		return ConversionOutcome{
			Money:  models.NewMoney(amount, n.baseCurrency),
			Status: Converted,
		}
	}

	sourceRate, ok := n.rates.Rate(from)
	if !ok {
		return ConversionOutcome{
			Money:        models.NewMoney(amount, from),
			Status:       Unsupported,
			OriginalCode: from,
		}
	}

	baseRate, _ := n.rates.Rate(n.baseCurrency)
	// decimal.Round rounds half away from zero, which is half-up for the
	// non-negative amounts flowing through here.
	converted := amount.Mul(baseRate.Div(sourceRate)).Round(2)
	return ConversionOutcome{
		Money:  models.NewMoney(converted, n.baseCurrency),
		Status: Converted,
	}
}

// NormalizeExpense returns a copy of the expense with its cost, repayment
// edges and participant shares converted to the base currency and its
// timestamps forced to UTC. Share amounts are converted using the expense's
// own source currency, not the edge currency. The input is left untouched.
func (n *Normalizer) NormalizeExpense(e models.Expense) (models.Expense, []ConversionOutcome) {
	var unsupported []ConversionOutcome

	sourceCurrency := e.Cost.Currency

	costOutcome := n.Convert(e.Cost.Amount, sourceCurrency)
	if costOutcome.Status == Unsupported {
		unsupported = append(unsupported, costOutcome)
	}
	e.Cost = costOutcome.Money

	repayments := make([]models.RepaymentEdge, len(e.Repayments))
	for i, r := range e.Repayments {
		outcome := n.Convert(r.Amount.Amount, r.Amount.Currency)
		if outcome.Status == Unsupported {
			unsupported = append(unsupported, outcome)
		}
		repayments[i] = models.RepaymentEdge{
			FromUserID: r.FromUserID,
			ToUserID:   r.ToUserID,
			Amount:     outcome.Money,
		}
	}
	e.Repayments = repayments

	shares := make([]models.ParticipantShare, len(e.Shares))
	for i, s := range e.Shares {
		shares[i] = models.ParticipantShare{
			UserID:    s.UserID,
			PaidShare: n.Convert(s.PaidShare, sourceCurrency).Money.Amount,
			OwedShare: n.Convert(s.OwedShare, sourceCurrency).Money.Amount,
		}
	}
	e.Shares = shares

	e.Date = dateutils.ToUTC(e.Date)
	if e.DeletedAt != nil {
		t := dateutils.ToUTC(*e.DeletedAt)
		e.DeletedAt = &t
	}

	return e, unsupported
}

// NormalizeExpenses normalizes a list of expenses, logging one warning per
// unsupported source currency.
func (n *Normalizer) NormalizeExpenses(expenses []models.Expense) []models.Expense {
	normalized := make([]models.Expense, len(expenses))
	seen := make(map[string]bool)
	for i, e := range expenses {
		out, unsupported := n.NormalizeExpense(e)
		normalized[i] = out
		for _, u := range unsupported {
			if !seen[u.OriginalCode] {
				seen[u.OriginalCode] = true
				log.WithFields(logrus.Fields{
					"currency": u.OriginalCode,
					"target":   n.baseCurrency,
				}).Warn("Unknown currency, amounts passed through unconverted")
			}
		}
	}
	return normalized
}

// NormalizeGroups forces group timestamps to UTC.
func (n *Normalizer) NormalizeGroups(groups []models.Group) []models.Group {
	normalized := make([]models.Group, len(groups))
	for i, g := range groups {
		g.UpdatedAt = dateutils.ToUTC(g.UpdatedAt)
		normalized[i] = g
	}
	return normalized
}
