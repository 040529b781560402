package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GauthamPrabhuM/SplitSense/internal/ledger"
	"github.com/GauthamPrabhuM/SplitSense/internal/models"
)

const sampleCSVExport = `expense_id,description,date,cost,currency,category,group,payment,paid_by_id,paid_by_name,owed_by_id,owed_by_name
100,Groceries,2024-03-10,50.00,USD,Food & Drink,Flat 12,false,1,Ada Lovelace,2,Bob Stone
101,Taxi airport,2024-03-12,33.33,USD,,Flat 12,false,2,Bob Stone,1,Ada Lovelace
102,Payment,2024-03-20,25.00,USD,,,true,2,Bob Stone,1,Ada Lovelace
`

func TestParseCSVFile(t *testing.T) {
	path := writeTempFile(t, "export.csv", sampleCSVExport)

	export, err := ParseCSVFile(path)
	require.NoError(t, err)

	require.Len(t, export.Expenses, 3)
	require.Len(t, export.Groups, 1)
	assert.Equal(t, "Flat 12", export.Groups[0].Name)
	assert.Zero(t, export.CurrentUserID)

	groceries := export.Expenses[0]
	assert.Equal(t, int64(100), groceries.ID)
	assert.Equal(t, export.Groups[0].ID, groceries.GroupID)
	assert.Equal(t, "Ada", groceries.CreatedBy.FirstName)
	assert.Equal(t, "Lovelace", groceries.CreatedBy.LastName)

	// Even two-party split.
	require.Len(t, groceries.Shares, 2)
	assert.Equal(t, "25.00", groceries.Shares[0].OwedShare.StringFixed(2))
	assert.Equal(t, "25.00", groceries.Shares[1].OwedShare.StringFixed(2))
	require.Len(t, groceries.Repayments, 1)
	assert.Equal(t, int64(2), groceries.Repayments[0].FromUserID)
	assert.Equal(t, int64(1), groceries.Repayments[0].ToUserID)
	assert.Equal(t, "25.00", groceries.Repayments[0].Amount.Amount.StringFixed(2))
}

func TestParseCSVFileOddSplitStaysBalanced(t *testing.T) {
	path := writeTempFile(t, "export.csv", sampleCSVExport)

	export, err := ParseCSVFile(path)
	require.NoError(t, err)

	// 33.33 splits into 16.67 + 16.66; paid must still equal owed in total.
	taxi := export.Expenses[1]
	totalOwed := taxi.Shares[0].OwedShare.Add(taxi.Shares[1].OwedShare)
	assert.Equal(t, "33.33", totalOwed.StringFixed(2))
	assert.Equal(t, "16.66", taxi.Shares[0].OwedShare.StringFixed(2))
	assert.Equal(t, "16.67", taxi.Shares[1].OwedShare.StringFixed(2))
}

func TestParseCSVFileSettlement(t *testing.T) {
	path := writeTempFile(t, "export.csv", sampleCSVExport)

	export, err := ParseCSVFile(path)
	require.NoError(t, err)

	settlement := export.Expenses[2]
	assert.Equal(t, models.KindSettlement, settlement.Kind())
	assert.Zero(t, settlement.GroupID)

	// The full cost transfers from the payer to the ower.
	require.Len(t, settlement.Repayments, 1)
	assert.Equal(t, int64(2), settlement.Repayments[0].FromUserID)
	assert.Equal(t, int64(1), settlement.Repayments[0].ToUserID)
	assert.Equal(t, "25.00", settlement.Repayments[0].Amount.Amount.StringFixed(2))
	assert.Equal(t, "25.00", settlement.Shares[0].PaidShare.StringFixed(2))
	assert.Equal(t, "25.00", settlement.Shares[1].OwedShare.StringFixed(2))
}

func TestParseCSVFileRejectsBadRows(t *testing.T) {
	header := "expense_id,description,date,cost,currency,category,group,payment,paid_by_id,paid_by_name,owed_by_id,owed_by_name\n"

	tests := []struct {
		name string
		row  string
	}{
		{name: "MissingID", row: "0,Lunch,2024-03-10,10.00,USD,,,false,1,Ada,2,Bob"},
		{name: "NegativeCost", row: "1,Lunch,2024-03-10,-10.00,USD,,,false,1,Ada,2,Bob"},
		{name: "BadDate", row: "1,Lunch,whenever,10.00,USD,,,false,1,Ada,2,Bob"},
		{name: "BadCost", row: "1,Lunch,2024-03-10,ten,USD,,,false,1,Ada,2,Bob"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempFile(t, "export.csv", header+tt.row+"\n")
			_, err := ParseCSVFile(path)
			assert.Error(t, err)
		})
	}
}

func TestParseCSVFileCarriesParticipantNames(t *testing.T) {
	header := "expense_id,description,date,cost,currency,category,group,payment,paid_by_id,paid_by_name,owed_by_id,owed_by_name\n"
	rows := header +
		"1,Groceries,2024-03-10,50.00,USD,,,false,1,Ada Lovelace,2,Bob Stone\n" +
		"2,Lunch,2024-03-11,20.00,USD,,,false,1,Ada Lovelace,2,Bob Stone\n"
	path := writeTempFile(t, "export.csv", rows)

	export, err := ParseCSVFile(path)
	require.NoError(t, err)

	groceries := export.Expenses[0]
	require.Len(t, groceries.Participants, 2)
	assert.Equal(t, "Bob", groceries.Participants[1].FirstName)
	assert.Equal(t, "Stone", groceries.Participants[1].LastName)

	// User 2 never pays and no group roster exists, yet the ledger still
	// resolves their name from the rows that mention them.
	l := ledger.Build(1, export.Expenses)
	assert.Equal(t, "Bob Stone", l.Name(2))
}

func TestParseCSVFileDefaultsCurrency(t *testing.T) {
	header := "expense_id,description,date,cost,currency,category,group,payment,paid_by_id,paid_by_name,owed_by_id,owed_by_name\n"
	path := writeTempFile(t, "export.csv", header+"1,Lunch,2024-03-10,10.00,,,,false,1,Ada,2,Bob\n")

	export, err := ParseCSVFile(path)
	require.NoError(t, err)
	assert.Equal(t, "USD", export.Expenses[0].Cost.Currency)
}
