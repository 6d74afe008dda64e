package stats

import (
	"math"

	"kitty/internal/contribution"
	"kitty/internal/expense"
)

// MemberBalance is the consumption view for one member: what they put into
// the pool versus the share of spending attributed to them.
type MemberBalance struct {
	UserID      string
	Contributed float64
	Spent       float64
	Balance     float64
}

// Summary aggregates a group's ledgers for reporting
type Summary struct {
	TotalContributed float64
	TotalExpenses    float64
	Balance          float64
	ByCategory       map[string]float64
	Members          []MemberBalance
	MemberCount      int
}

// Compute folds both ledgers over the member set. Members with no activity
// appear with zero values; expense shares only accrue to ids that are
// currently members. Per-member figures are rounded to 2 decimal places for
// display.
func Compute(memberIDs []string, contributions []*contribution.Contribution, expenses []*expense.Expense) *Summary {
	type figures struct {
		contributed float64
		spent       float64
	}

	perMember := make(map[string]*figures, len(memberIDs))
	for _, id := range memberIDs {
		perMember[id] = &figures{}
	}

	var totalContributed float64
	for _, c := range contributions {
		totalContributed += c.Amount
		if f, ok := perMember[c.ContributorID]; ok {
			f.contributed += c.Amount
		}
	}

	var totalExpenses float64
	byCategory := make(map[string]float64)
	for _, e := range expenses {
		totalExpenses += e.Amount

		category := e.Category
		if category == "" {
			category = "otros"
		}
		byCategory[category] += e.Amount

		split := e.SplitAmong
		if len(split) == 0 {
			split = memberIDs
		}
		share := e.Amount / float64(len(split))
		for _, id := range split {
			if f, ok := perMember[id]; ok {
				f.spent += share
			}
		}
	}

	members := make([]MemberBalance, len(memberIDs))
	for i, id := range memberIDs {
		f := perMember[id]
		members[i] = MemberBalance{
			UserID:      id,
			Contributed: round2(f.contributed),
			Spent:       round2(f.spent),
			Balance:     round2(f.contributed - f.spent),
		}
	}

	return &Summary{
		TotalContributed: totalContributed,
		TotalExpenses:    totalExpenses,
		Balance:          totalContributed - totalExpenses,
		ByCategory:       byCategory,
		Members:          members,
		MemberCount:      len(memberIDs),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
