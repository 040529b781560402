package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/GauthamPrabhuM/SplitSense/internal/currencyutils"
	"github.com/GauthamPrabhuM/SplitSense/internal/dateutils"
	"github.com/GauthamPrabhuM/SplitSense/internal/models"
)

// Wire shapes of the JSON export. Amounts travel as strings to keep them
// exact; the feed nests user identity inside each share.

type jsonUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type jsonShare struct {
	User      jsonUser `json:"user"`
	PaidShare string   `json:"paid_share"`
	OwedShare string   `json:"owed_share"`
}

type jsonRepayment struct {
	From         int64  `json:"from"`
	To           int64  `json:"to"`
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currency_code"`
}

type jsonExpense struct {
	ID           int64           `json:"id"`
	GroupID      int64           `json:"group_id"`
	Description  string          `json:"description"`
	Payment      bool            `json:"payment"`
	Cost         string          `json:"cost"`
	CurrencyCode string          `json:"currency_code"`
	Date         string          `json:"date"`
	CreatedBy    jsonUser        `json:"created_by"`
	Users        []jsonShare     `json:"users"`
	Repayments   []jsonRepayment `json:"repayments"`
	Category     string          `json:"category"`
	DeletedAt    string          `json:"deleted_at"`
}

type jsonGroup struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	GroupType string     `json:"group_type"`
	UpdatedAt string     `json:"updated_at"`
	Members   []jsonUser `json:"members"`
}

type jsonExport struct {
	Expenses    []jsonExpense `json:"expenses"`
	Groups      []jsonGroup   `json:"groups"`
	CurrentUser jsonUser      `json:"current_user"`
}

// ParseJSONFile parses the canonical JSON export.
func ParseJSONFile(path string) (*Export, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read export file %s: %w", path, err)
	}

	var raw jsonExport
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON export %s: %w", path, err)
	}

	export := &Export{CurrentUserID: raw.CurrentUser.ID}

	for _, je := range raw.Expenses {
		expense, err := convertExpense(je)
		if err != nil {
			return nil, err
		}
		export.Expenses = append(export.Expenses, expense)
	}

	for _, jg := range raw.Groups {
		group, err := convertGroup(jg)
		if err != nil {
			return nil, err
		}
		export.Groups = append(export.Groups, group)
	}

	log.WithFields(logrus.Fields{
		"file":     path,
		"expenses": len(export.Expenses),
		"groups":   len(export.Groups),
	}).Info("Parsed JSON export")

	return export, nil
}

func convertExpense(je jsonExpense) (models.Expense, error) {
	currency := currencyutils.NormalizeCode(je.CurrencyCode)

	cost, err := currencyutils.ParseAmount(je.Cost)
	if err != nil {
		return models.Expense{}, fmt.Errorf("expense %d: %w", je.ID, err)
	}

	date, err := parseTimestamp(je.Date)
	if err != nil {
		return models.Expense{}, fmt.Errorf("expense %d: %w", je.ID, err)
	}

	expense := models.Expense{
		ID:           je.ID,
		GroupID:      je.GroupID,
		Description:  je.Description,
		IsSettlement: je.Payment,
		Cost:         models.NewMoney(cost, currency),
		Date:         date,
		CreatedBy: models.User{
			ID:        je.CreatedBy.ID,
			FirstName: je.CreatedBy.FirstName,
			LastName:  je.CreatedBy.LastName,
			Email:     je.CreatedBy.Email,
		},
		Category: je.Category,
	}

	if je.DeletedAt != "" {
		deleted, err := parseTimestamp(je.DeletedAt)
		if err != nil {
			return models.Expense{}, fmt.Errorf("expense %d: invalid deleted_at: %w", je.ID, err)
		}
		expense.DeletedAt = &deleted
	}

	for _, js := range je.Users {
		paid, err := currencyutils.ParseAmount(js.PaidShare)
		if err != nil {
			return models.Expense{}, fmt.Errorf("expense %d, user %d: %w", je.ID, js.User.ID, err)
		}
		owed, err := currencyutils.ParseAmount(js.OwedShare)
		if err != nil {
			return models.Expense{}, fmt.Errorf("expense %d, user %d: %w", je.ID, js.User.ID, err)
		}
		expense.Shares = append(expense.Shares, models.ParticipantShare{
			UserID:    js.User.ID,
			PaidShare: paid,
			OwedShare: owed,
		})
		if js.User.ID != 0 {
			expense.Participants = append(expense.Participants, models.User{
				ID:        js.User.ID,
				FirstName: js.User.FirstName,
				LastName:  js.User.LastName,
				Email:     js.User.Email,
			})
		}
	}

	for _, jr := range je.Repayments {
		amount, err := currencyutils.ParseAmount(jr.Amount)
		if err != nil {
			return models.Expense{}, fmt.Errorf("expense %d: invalid repayment amount: %w", je.ID, err)
		}
		edgeCurrency := currencyutils.NormalizeCode(jr.CurrencyCode)
		if edgeCurrency == "" {
			edgeCurrency = currency
		}
		expense.Repayments = append(expense.Repayments, models.RepaymentEdge{
			FromUserID: jr.From,
			ToUserID:   jr.To,
			Amount:     models.NewMoney(amount, edgeCurrency),
		})
	}

	if err := expense.Validate(); err != nil {
		return models.Expense{}, err
	}

	return expense, nil
}

func convertGroup(jg jsonGroup) (models.Group, error) {
	group := models.Group{
		ID:        jg.ID,
		Name:      jg.Name,
		GroupType: jg.GroupType,
	}
	if jg.ID == 0 {
		return models.Group{}, fmt.Errorf("group %q is missing a required id", jg.Name)
	}

	if jg.UpdatedAt != "" {
		updated, err := parseTimestamp(jg.UpdatedAt)
		if err != nil {
			return models.Group{}, fmt.Errorf("group %d: invalid updated_at: %w", jg.ID, err)
		}
		group.UpdatedAt = updated
	}

	for _, ju := range jg.Members {
		group.Members = append(group.Members, models.User{
			ID:        ju.ID,
			FirstName: ju.FirstName,
			LastName:  ju.LastName,
			Email:     ju.Email,
		})
	}

	return group, nil
}

func parseTimestamp(value string) (time.Time, error) {
	t, _, err := dateutils.ParseDate(value)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}
