package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GauthamPrabhuM/SplitSense/internal/models"
)

const sampleJSONExport = `{
  "current_user": {"id": 1, "first_name": "Ada", "last_name": "Lovelace"},
  "groups": [
    {
      "id": 5,
      "name": "Flat 12",
      "group_type": "apartment",
      "updated_at": "2024-03-01T10:00:00Z",
      "members": [
        {"id": 1, "first_name": "Ada", "last_name": "Lovelace"},
        {"id": 2, "first_name": "Bob", "last_name": "Stone"}
      ]
    }
  ],
  "expenses": [
    {
      "id": 100,
      "group_id": 5,
      "description": "Groceries",
      "payment": false,
      "cost": "50.00",
      "currency_code": "USD",
      "date": "2024-03-10T18:00:00Z",
      "created_by": {"id": 1, "first_name": "Ada", "last_name": "Lovelace"},
      "users": [
        {"user": {"id": 1, "first_name": "Ada"}, "paid_share": "50.00", "owed_share": "25.00"},
        {"user": {"id": 2, "first_name": "Bob"}, "paid_share": "0.00", "owed_share": "25.00"}
      ],
      "repayments": [
        {"from": 2, "to": 1, "amount": "25.00", "currency_code": "USD"}
      ],
      "category": "Food & Drink"
    },
    {
      "id": 101,
      "group_id": 5,
      "description": "Payment",
      "payment": true,
      "cost": "25.00",
      "currency_code": "USD",
      "date": "2024-03-20T09:00:00Z",
      "created_by": {"id": 2, "first_name": "Bob"},
      "repayments": [
        {"from": 2, "to": 1, "amount": "25.00"}
      ]
    }
  ]
}`

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseJSONFile(t *testing.T) {
	path := writeTempFile(t, "export.json", sampleJSONExport)

	export, err := ParseJSONFile(path)
	require.NoError(t, err)

	assert.Equal(t, int64(1), export.CurrentUserID)
	require.Len(t, export.Expenses, 2)
	require.Len(t, export.Groups, 1)

	groceries := export.Expenses[0]
	assert.Equal(t, int64(100), groceries.ID)
	assert.Equal(t, int64(5), groceries.GroupID)
	assert.Equal(t, models.KindPurchase, groceries.Kind())
	assert.Equal(t, "50.00", groceries.Cost.Amount.StringFixed(2))
	assert.Equal(t, "USD", groceries.Cost.Currency)
	assert.Equal(t, "Food & Drink", groceries.Category)
	require.Len(t, groceries.Shares, 2)
	assert.Equal(t, "25.00", groceries.Shares[1].OwedShare.StringFixed(2))
	require.Len(t, groceries.Repayments, 1)
	assert.Equal(t, int64(2), groceries.Repayments[0].FromUserID)
	require.Len(t, groceries.Participants, 2)
	assert.Equal(t, "Bob", groceries.Participants[1].FirstName)

	settlement := export.Expenses[1]
	assert.Equal(t, models.KindSettlement, settlement.Kind())
	// A repayment without its own currency inherits the expense's.
	assert.Equal(t, "USD", settlement.Repayments[0].Amount.Currency)

	group := export.Groups[0]
	assert.Equal(t, "Flat 12", group.Name)
	require.Len(t, group.Members, 2)
	assert.Equal(t, "Bob Stone", group.Members[1].DisplayName())
}

func TestParseJSONFileRejectsBadData(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "NotJSON",
			content: "expense_id,cost\n1,5.00",
		},
		{
			name:    "MissingExpenseID",
			content: `{"expenses": [{"cost": "10.00", "currency_code": "USD", "date": "2024-03-01"}]}`,
		},
		{
			name:    "NegativeCost",
			content: `{"expenses": [{"id": 1, "cost": "-10.00", "currency_code": "USD", "date": "2024-03-01"}]}`,
		},
		{
			name:    "BadDate",
			content: `{"expenses": [{"id": 1, "cost": "10.00", "currency_code": "USD", "date": "soon"}]}`,
		},
		{
			name:    "GroupWithoutID",
			content: `{"groups": [{"name": "Flat"}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempFile(t, "export.json", tt.content)
			_, err := ParseJSONFile(path)
			assert.Error(t, err)
		})
	}
}

func TestParseFileDispatch(t *testing.T) {
	jsonPath := writeTempFile(t, "export.json", `{"expenses": []}`)
	export, err := ParseFile(jsonPath)
	require.NoError(t, err)
	assert.Empty(t, export.Expenses)

	_, err = ParseFile("export.xml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported export format")
}

func TestValidateFormat(t *testing.T) {
	good := writeTempFile(t, "good.json", `{"expenses": []}`)
	ok, err := ValidateFormat(good)
	assert.NoError(t, err)
	assert.True(t, ok)

	bad := writeTempFile(t, "bad.json", "{")
	ok, err = ValidateFormat(bad)
	assert.Error(t, err)
	assert.False(t, ok)
}
