package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind distinguishes the two sign conventions a repayment edge
// can carry. A purchase edge records new debt; a settlement edge records a
// transfer that reduces existing debt.
type TransactionKind string

const (
	KindPurchase   TransactionKind = "purchase"
	KindSettlement TransactionKind = "settlement"
)

// User is a participant identity as it appears in the export feed.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email,omitempty"`
}

// DisplayName returns "First Last", falling back to a synthetic
// "Participant {id}" label when no name is available.
func (u User) DisplayName() string {
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name == "" {
		return fmt.Sprintf("Participant %d", u.ID)
	}
	return name
}

// Group carries human-readable context for grouped expenses.
// It has no balance logic of its own.
type Group struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	GroupType string    `json:"group_type"`
	UpdatedAt time.Time `json:"updated_at"`
	Members   []User    `json:"members"`
}

// RepaymentEdge is an explicit "from owes to" record attached to an expense.
// For a purchase it encodes who ends up owing whom from the share split; for
// a settlement it encodes the actual transfer. The ledger treats both through
// the same edge shape, with the sign convention selected by the expense kind.
type RepaymentEdge struct {
	FromUserID int64 `json:"from"`
	ToUserID   int64 `json:"to"`
	Amount     Money `json:"amount"`
}

// ParticipantShare is the fixed-shape per-participant record: how much the
// participant fronted and how much of the cost is theirs to carry.
type ParticipantShare struct {
	UserID    int64           `json:"user_id"`
	PaidShare decimal.Decimal `json:"paid_share"`
	OwedShare decimal.Decimal `json:"owed_share"`
}

// Expense is a single shared purchase or settlement transfer.
// It is normalized in place once (currency and timestamp) and treated as
// read-only by every analytics component afterwards.
type Expense struct {
	ID           int64              `json:"id"`
	GroupID      int64              `json:"group_id,omitempty"`
	Description  string             `json:"description"`
	IsSettlement bool               `json:"payment"`
	Cost         Money              `json:"cost"`
	Date         time.Time          `json:"date"`
	CreatedBy    User               `json:"created_by"`
	Shares       []ParticipantShare `json:"users"`
	Repayments   []RepaymentEdge    `json:"repayments"`
	Category     string             `json:"category,omitempty"`
	DeletedAt    *time.Time         `json:"deleted_at,omitempty"`

	// Participants carries the identities the feed names on this expense.
	// Shares stay fixed-shape; name resolution reads from here.
	Participants []User `json:"participants,omitempty"`
}

// Kind returns the transaction kind of the expense.
func (e *Expense) Kind() TransactionKind {
	if e.IsSettlement {
		return KindSettlement
	}
	return KindPurchase
}

// IsDeleted reports whether the expense was soft-deleted in the source feed.
func (e *Expense) IsDeleted() bool {
	return e.DeletedAt != nil
}

// Share returns the participation record for the given user, if any.
func (e *Expense) Share(userID int64) (ParticipantShare, bool) {
	for _, s := range e.Shares {
		if s.UserID == userID {
			return s, true
		}
	}
	return ParticipantShare{}, false
}

// Validate checks the data-shape invariants that must hold before an expense
// enters the pipeline. Integrity problems (paid/owed mismatch) are the
// verifier's business, not a shape error.
func (e *Expense) Validate() error {
	if e.ID == 0 {
		return fmt.Errorf("expense is missing a required id")
	}
	if e.Cost.Amount.IsNegative() {
		return fmt.Errorf("expense %d: cost cannot be negative, got %s", e.ID, e.Cost.Amount)
	}
	if e.Date.IsZero() {
		return fmt.Errorf("expense %d: date is required", e.ID)
	}
	return nil
}
