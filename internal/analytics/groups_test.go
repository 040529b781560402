package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GauthamPrabhuM/SplitSense/internal/models"
)

func groupedExpense(id, groupID int64, amount string) models.Expense {
	return models.Expense{
		ID:      id,
		GroupID: groupID,
		Cost:    money(amount),
		Date:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Shares: []models.ParticipantShare{
			share(1, amount, amount),
		},
	}
}

func TestAnalyzeGroups(t *testing.T) {
	a := New(1)
	groups := []models.Group{
		{ID: 5, Name: "Ski Trip", Members: []models.User{{ID: 1}, {ID: 2}, {ID: 3}}},
		{ID: 6, Name: "Flat", Members: []models.User{{ID: 1}, {ID: 2}}},
	}
	expenses := []models.Expense{
		groupedExpense(1, 5, "300.00"),
		groupedExpense(2, 6, "80.00"),
		groupedExpense(3, 6, "20.00"),
		groupedExpense(4, 0, "10.00"),
	}

	insight := a.AnalyzeGroups(expenses, groups)

	require.Len(t, insight.TopGroups, 3)
	assert.Equal(t, "Ski Trip", insight.TopGroups[0].Name)
	assert.Equal(t, "300.00", insight.TopGroups[0].TotalSpending.StringFixed(2))
	assert.Equal(t, 3, insight.TopGroups[0].MemberCount)
	assert.Equal(t, 1, insight.TopGroups[0].ExpenseCount)

	assert.Equal(t, "Flat", insight.TopGroups[1].Name)
	assert.Equal(t, 2, insight.TopGroups[1].ExpenseCount)

	assert.Equal(t, NoGroupLabel, insight.TopGroups[2].Name)
	assert.Contains(t, insight.Explanation, "Top group: Ski Trip (300.00 USD)")
}

func TestAnalyzeGroupsUnknownGroupID(t *testing.T) {
	a := New(1)
	expenses := []models.Expense{groupedExpense(1, 42, "15.00")}

	insight := a.AnalyzeGroups(expenses, nil)

	require.Len(t, insight.TopGroups, 1)
	assert.Equal(t, "Group 42", insight.TopGroups[0].Name)
	assert.Equal(t, 0, insight.TopGroups[0].MemberCount)
}

func TestAnalyzeGroupsEmpty(t *testing.T) {
	a := New(1)
	insight := a.AnalyzeGroups(nil, nil)

	assert.Empty(t, insight.TopGroups)
	assert.Equal(t, "No group data available.", insight.Explanation)
}
