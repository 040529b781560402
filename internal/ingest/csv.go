package ingest

import (
	"fmt"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/GauthamPrabhuM/SplitSense/internal/currencyutils"
	"github.com/GauthamPrabhuM/SplitSense/internal/models"
)

// csvRow represents one line of the flattened CSV export: a two-party
// expense with a payer and an ower. Richer splits only exist in the JSON
// export.
type csvRow struct {
	ExpenseID   int64  `csv:"expense_id"`
	Description string `csv:"description"`
	Date        string `csv:"date"`
	Cost        string `csv:"cost"`
	Currency    string `csv:"currency"`
	Category    string `csv:"category"`
	GroupName   string `csv:"group"`
	Payment     bool   `csv:"payment"`
	PaidByID    int64  `csv:"paid_by_id"`
	PaidByName  string `csv:"paid_by_name"`
	OwedByID    int64  `csv:"owed_by_id"`
	OwedByName  string `csv:"owed_by_name"`
}

// ParseCSVFile parses the flattened CSV export. Groups are synthesized from
// the group name column; repayment edges from the payer/ower pair. For a
// genuine expense the cost splits evenly between the two parties; for a
// settlement the full cost transfers from payer to ower.
func ParseCSVFile(path string) (*Export, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open export file %s: %w", path, err)
	}
	defer file.Close()

	var rows []csvRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse CSV export %s: %w", path, err)
	}

	export := &Export{}
	groupsByName := make(map[string]int64)

	for i, row := range rows {
		if row.ExpenseID == 0 {
			return nil, fmt.Errorf("row %d: expense is missing a required id", i+1)
		}

		expense, err := convertCSVRow(row)
		if err != nil {
			return nil, err
		}

		if name := strings.TrimSpace(row.GroupName); name != "" {
			id, ok := groupsByName[name]
			if !ok {
				id = int64(len(groupsByName) + 1)
				groupsByName[name] = id
				export.Groups = append(export.Groups, models.Group{
					ID:        id,
					Name:      name,
					GroupType: "other",
					UpdatedAt: expense.Date,
				})
			}
			expense.GroupID = id
		}

		export.Expenses = append(export.Expenses, expense)
	}

	log.WithFields(logrus.Fields{
		"file":     path,
		"expenses": len(export.Expenses),
		"groups":   len(export.Groups),
	}).Info("Parsed CSV export")

	return export, nil
}

func convertCSVRow(row csvRow) (models.Expense, error) {
	cost, err := currencyutils.ParseAmount(row.Cost)
	if err != nil {
		return models.Expense{}, fmt.Errorf("expense %d: %w", row.ExpenseID, err)
	}
	if cost.IsNegative() {
		return models.Expense{}, fmt.Errorf("expense %d: cost cannot be negative, got %s", row.ExpenseID, cost)
	}

	date, err := parseTimestamp(row.Date)
	if err != nil {
		return models.Expense{}, fmt.Errorf("expense %d: %w", row.ExpenseID, err)
	}

	currency := currencyutils.NormalizeCode(row.Currency)
	if currency == "" {
		currency = "USD"
	}

	payer := userFromName(row.PaidByID, row.PaidByName)
	ower := userFromName(row.OwedByID, row.OwedByName)

	expense := models.Expense{
		ID:           row.ExpenseID,
		Description:  row.Description,
		IsSettlement: row.Payment,
		Cost:         models.NewMoney(cost, currency),
		Date:         date,
		CreatedBy:    payer,
		Category:     row.Category,
	}
	for _, u := range []models.User{payer, ower} {
		if u.ID != 0 {
			expense.Participants = append(expense.Participants, u)
		}
	}

	if row.Payment {
		// A settlement moves the full cost from payer to ower.
		expense.Shares = []models.ParticipantShare{
			{UserID: payer.ID, PaidShare: cost, OwedShare: decimal.Zero},
			{UserID: ower.ID, PaidShare: decimal.Zero, OwedShare: cost},
		}
		expense.Repayments = []models.RepaymentEdge{{
			FromUserID: payer.ID,
			ToUserID:   ower.ID,
			Amount:     models.NewMoney(cost, currency),
		}}
	} else {
		// Even two-party split: the payer fronts everything, each carries
		// half, and the ower's half becomes the repayment edge.
		half := cost.Div(decimal.NewFromInt(2)).Round(2)
		expense.Shares = []models.ParticipantShare{
			{UserID: payer.ID, PaidShare: cost, OwedShare: cost.Sub(half)},
			{UserID: ower.ID, PaidShare: decimal.Zero, OwedShare: half},
		}
		expense.Repayments = []models.RepaymentEdge{{
			FromUserID: ower.ID,
			ToUserID:   payer.ID,
			Amount:     models.NewMoney(half, currency),
		}}
	}

	if err := expense.Validate(); err != nil {
		return models.Expense{}, err
	}

	return expense, nil
}

func userFromName(id int64, name string) models.User {
	parts := strings.Fields(strings.TrimSpace(name))
	user := models.User{ID: id}
	if len(parts) > 0 {
		user.FirstName = parts[0]
	}
	if len(parts) > 1 {
		user.LastName = strings.Join(parts[1:], " ")
	}
	return user
}
