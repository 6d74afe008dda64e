package stats

import (
	"math"
	"testing"

	"kitty/internal/contribution"
	"kitty/internal/expense"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.001
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name          string
		memberIDs     []string
		contributions []*contribution.Contribution
		expenses      []*expense.Expense
		validate      func(t *testing.T, s *Summary)
	}{
		{
			name:      "empty group has zero summary",
			memberIDs: []string{"a", "b"},
			validate: func(t *testing.T, s *Summary) {
				if s.TotalContributed != 0 || s.TotalExpenses != 0 || s.Balance != 0 {
					t.Errorf("totals = %v/%v/%v, want all zero", s.TotalContributed, s.TotalExpenses, s.Balance)
				}
				if s.MemberCount != 2 {
					t.Errorf("MemberCount = %d, want 2", s.MemberCount)
				}
				if len(s.Members) != 2 {
					t.Fatalf("len(Members) = %d, want 2", len(s.Members))
				}
				for _, m := range s.Members {
					if m.Contributed != 0 || m.Spent != 0 || m.Balance != 0 {
						t.Errorf("member %s = %+v, want zero figures", m.UserID, m)
					}
				}
			},
		},
		{
			name:      "contributions and expenses fold per member",
			memberIDs: []string{"a", "b", "c"},
			contributions: []*contribution.Contribution{
				{ContributorID: "a", Amount: 90},
			},
			expenses: []*expense.Expense{
				{Amount: 30, Category: "comida", PaidBy: "b", SplitAmong: []string{"a", "b", "c"}},
			},
			validate: func(t *testing.T, s *Summary) {
				if !almostEqual(s.TotalContributed, 90) {
					t.Errorf("TotalContributed = %v, want 90", s.TotalContributed)
				}
				if !almostEqual(s.TotalExpenses, 30) {
					t.Errorf("TotalExpenses = %v, want 30", s.TotalExpenses)
				}
				if !almostEqual(s.Balance, 60) {
					t.Errorf("Balance = %v, want 60", s.Balance)
				}
				if !almostEqual(s.ByCategory["comida"], 30) {
					t.Errorf("ByCategory[comida] = %v, want 30", s.ByCategory["comida"])
				}
				want := map[string][3]float64{
					"a": {90, 10, 80},
					"b": {0, 10, -10},
					"c": {0, 10, -10},
				}
				for _, m := range s.Members {
					w := want[m.UserID]
					if !almostEqual(m.Contributed, w[0]) || !almostEqual(m.Spent, w[1]) || !almostEqual(m.Balance, w[2]) {
						t.Errorf("member %s = %v/%v/%v, want %v", m.UserID, m.Contributed, m.Spent, m.Balance, w)
					}
				}
			},
		},
		{
			name:      "uncategorized expenses land in otros",
			memberIDs: []string{"a"},
			expenses: []*expense.Expense{
				{Amount: 12.5, Category: "", PaidBy: "a", SplitAmong: []string{"a"}},
				{Amount: 7.5, Category: "otros", PaidBy: "a", SplitAmong: []string{"a"}},
			},
			validate: func(t *testing.T, s *Summary) {
				if !almostEqual(s.ByCategory["otros"], 20) {
					t.Errorf("ByCategory[otros] = %v, want 20", s.ByCategory["otros"])
				}
				if len(s.ByCategory) != 1 {
					t.Errorf("len(ByCategory) = %d, want 1", len(s.ByCategory))
				}
			},
		},
		{
			name:      "former members keep totals but no per-member figures",
			memberIDs: []string{"a"},
			contributions: []*contribution.Contribution{
				{ContributorID: "gone", Amount: 50},
			},
			expenses: []*expense.Expense{
				{Amount: 20, Category: "comida", PaidBy: "gone", SplitAmong: []string{"gone", "a"}},
			},
			validate: func(t *testing.T, s *Summary) {
				if !almostEqual(s.TotalContributed, 50) {
					t.Errorf("TotalContributed = %v, want 50", s.TotalContributed)
				}
				if !almostEqual(s.TotalExpenses, 20) {
					t.Errorf("TotalExpenses = %v, want 20", s.TotalExpenses)
				}
				if len(s.Members) != 1 {
					t.Fatalf("len(Members) = %d, want 1", len(s.Members))
				}
				a := s.Members[0]
				if !almostEqual(a.Contributed, 0) || !almostEqual(a.Spent, 10) {
					t.Errorf("member a = %v/%v, want 0/10", a.Contributed, a.Spent)
				}
			},
		},
		{
			name:      "empty split falls back to the full member set",
			memberIDs: []string{"a", "b"},
			expenses: []*expense.Expense{
				{Amount: 20, Category: "comida", PaidBy: "a"},
			},
			validate: func(t *testing.T, s *Summary) {
				for _, m := range s.Members {
					if !almostEqual(m.Spent, 10) {
						t.Errorf("member %s Spent = %v, want 10", m.UserID, m.Spent)
					}
				}
			},
		},
		{
			name:      "member figures are rounded to cents",
			memberIDs: []string{"a", "b", "c"},
			expenses: []*expense.Expense{
				{Amount: 10, Category: "comida", PaidBy: "a", SplitAmong: []string{"a", "b", "c"}},
			},
			validate: func(t *testing.T, s *Summary) {
				for _, m := range s.Members {
					if m.Spent != 3.33 {
						t.Errorf("member %s Spent = %v, want 3.33", m.UserID, m.Spent)
					}
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Compute(tt.memberIDs, tt.contributions, tt.expenses)
			tt.validate(t, s)
		})
	}
}

func TestComputeMemberOrder(t *testing.T) {
	s := Compute([]string{"c", "a", "b"}, nil, nil)
	got := []string{s.Members[0].UserID, s.Members[1].UserID, s.Members[2].UserID}
	want := []string{"c", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("member order = %v, want %v", got, want)
		}
	}
}
