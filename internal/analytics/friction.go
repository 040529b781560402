package analytics

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/GauthamPrabhuM/SplitSense/internal/dateutils"
	"github.com/GauthamPrabhuM/SplitSense/internal/models"
)

// Friction score weights. Age weighs heavier than raw volume: an old unpaid
// balance causes more tension than a busy group.
const (
	personAgeWeight   = 10.0
	groupVolumeWeight = 5.0
)

// RankFriction scores counterparties and groups by financial tension:
// unpaid owed shares, their age, and transaction volume. All non-deleted
// expenses participate, settlements included.
func (a *Analyzer) RankFriction(expenses []models.Expense, groups []models.Group) models.FrictionRanking {
	valid := validExpenses(expenses, true)
	now := a.Now()

	type personAcc struct {
		unpaid decimal.Decimal
		ages   []float64
	}
	people := make(map[int64]*personAcc)

	type groupAcc struct {
		name         string
		unpaid       decimal.Decimal
		memberCount  int
		expenseCount int
	}
	groupAccs := make(map[int64]*groupAcc)

	lookup := make(map[int64]*models.Group, len(groups))
	for i := range groups {
		lookup[groups[i].ID] = &groups[i]
	}

	for i := range valid {
		e := &valid[i]

		g := groupAccs[e.GroupID]
		if g == nil {
			g = &groupAcc{name: resolveGroupName(e.GroupID, lookup), unpaid: decimal.Zero}
			if known, ok := lookup[e.GroupID]; ok {
				g.memberCount = len(known.Members)
			}
			groupAccs[e.GroupID] = g
		}
		g.expenseCount++

		for _, share := range e.Shares {
			if share.UserID == a.currentUserID || !share.OwedShare.IsPositive() {
				continue
			}
			p := people[share.UserID]
			if p == nil {
				p = &personAcc{unpaid: decimal.Zero}
				people[share.UserID] = p
			}
			p.unpaid = p.unpaid.Add(share.OwedShare)
			p.ages = append(p.ages, float64(dateutils.DaysSince(e.Date, now)))

			g.unpaid = g.unpaid.Add(share.OwedShare)
		}
	}

	byPerson := make([]models.PersonFriction, 0, len(people))
	for userID, p := range people {
		avgDelay := mean(p.ages)
		unpaid, _ := p.unpaid.Float64()
		byPerson = append(byPerson, models.PersonFriction{
			UserID:           userID,
			UnpaidBalance:    p.unpaid,
			AverageDelayDays: avgDelay,
			FrictionScore:    unpaid + avgDelay*personAgeWeight,
		})
	}
	sort.Slice(byPerson, func(i, j int) bool {
		if byPerson[i].FrictionScore != byPerson[j].FrictionScore {
			return byPerson[i].FrictionScore > byPerson[j].FrictionScore
		}
		return byPerson[i].UserID < byPerson[j].UserID
	})

	byGroup := make([]models.GroupFriction, 0, len(groupAccs))
	for groupID, g := range groupAccs {
		unpaid, _ := g.unpaid.Float64()
		byGroup = append(byGroup, models.GroupFriction{
			GroupID:       groupID,
			Name:          g.name,
			UnpaidBalance: g.unpaid,
			MemberCount:   g.memberCount,
			ExpenseCount:  g.expenseCount,
			FrictionScore: unpaid + float64(g.expenseCount)*groupVolumeWeight,
		})
	}
	sort.Slice(byGroup, func(i, j int) bool {
		if byGroup[i].FrictionScore != byGroup[j].FrictionScore {
			return byGroup[i].FrictionScore > byGroup[j].FrictionScore
		}
		return byGroup[i].GroupID < byGroup[j].GroupID
	})

	return models.FrictionRanking{
		ByPerson: byPerson,
		ByGroup:  byGroup,
		Explanation: fmt.Sprintf(
			"Ranked %d people and %d groups by financial friction. Friction considers unpaid balances, their age, and transaction volume.",
			len(byPerson), len(byGroup)),
	}
}
