package settlement

import (
	"math"
	"testing"

	"kitty/internal/contribution"
	"kitty/internal/expense"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.001
}

func balanceOf(t *testing.T, plan *Plan, userID string) float64 {
	t.Helper()
	for _, b := range plan.Balances {
		if b.UserID == userID {
			return b.Amount
		}
	}
	t.Fatalf("no balance for %s", userID)
	return 0
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name          string
		memberIDs     []string
		contributions []*contribution.Contribution
		expenses      []*expense.Expense
		validate      func(t *testing.T, plan *Plan)
	}{
		{
			name:      "no activity yields no transfers",
			memberIDs: []string{"a", "b"},
			validate: func(t *testing.T, plan *Plan) {
				if len(plan.Transfers) != 0 {
					t.Errorf("len(Transfers) = %d, want 0", len(plan.Transfers))
				}
				if len(plan.Balances) != 2 {
					t.Errorf("len(Balances) = %d, want 2", len(plan.Balances))
				}
			},
		},
		{
			name:      "contribution plus paid expense settles in one transfer",
			memberIDs: []string{"a", "b", "c"},
			contributions: []*contribution.Contribution{
				{ContributorID: "a", Amount: 90},
			},
			expenses: []*expense.Expense{
				{Amount: 30, PaidBy: "b", SplitAmong: []string{"a", "b", "c"}},
			},
			validate: func(t *testing.T, plan *Plan) {
				// a: 90 - 10 = 80, b: 30 - 10 = 20, c: -10
				if got := balanceOf(t, plan, "a"); !almostEqual(got, 80) {
					t.Errorf("balance a = %v, want 80", got)
				}
				if got := balanceOf(t, plan, "b"); !almostEqual(got, 20) {
					t.Errorf("balance b = %v, want 20", got)
				}
				if got := balanceOf(t, plan, "c"); !almostEqual(got, -10) {
					t.Errorf("balance c = %v, want -10", got)
				}
				if len(plan.Transfers) != 1 {
					t.Fatalf("len(Transfers) = %d, want 1", len(plan.Transfers))
				}
				tr := plan.Transfers[0]
				if tr.From != "c" || tr.To != "a" || !almostEqual(tr.Amount, 10) {
					t.Errorf("transfer = %+v, want c -> a 10", tr)
				}
			},
		},
		{
			name:      "one debtor pays multiple creditors",
			memberIDs: []string{"a", "b", "c"},
			contributions: []*contribution.Contribution{
				{ContributorID: "a", Amount: 20},
				{ContributorID: "b", Amount: 10},
			},
			expenses: []*expense.Expense{
				{Amount: 30, PaidBy: "a", SplitAmong: []string{"c"}},
			},
			validate: func(t *testing.T, plan *Plan) {
				// a: 20 + 30 = 50, b: 10, c: -30... c owes more than one creditor
				// wants: c -> a 30 exhausts c first, b remains unpaid by transfers
				// (a overpaid the pool; residue stays as pool balance)
				if len(plan.Transfers) != 1 {
					t.Fatalf("len(Transfers) = %d, want 1", len(plan.Transfers))
				}
				tr := plan.Transfers[0]
				if tr.From != "c" || tr.To != "a" || !almostEqual(tr.Amount, 30) {
					t.Errorf("transfer = %+v, want c -> a 30", tr)
				}
			},
		},
		{
			name:      "multiple debtors chain onto one creditor",
			memberIDs: []string{"a", "b", "c"},
			expenses: []*expense.Expense{
				{Amount: 60, PaidBy: "a", SplitAmong: []string{"a", "b", "c"}},
			},
			validate: func(t *testing.T, plan *Plan) {
				// a: 60 - 20 = 40, b: -20, c: -20
				if len(plan.Transfers) != 2 {
					t.Fatalf("len(Transfers) = %d, want 2", len(plan.Transfers))
				}
				if tr := plan.Transfers[0]; tr.From != "b" || tr.To != "a" || !almostEqual(tr.Amount, 20) {
					t.Errorf("transfer[0] = %+v, want b -> a 20", tr)
				}
				if tr := plan.Transfers[1]; tr.From != "c" || tr.To != "a" || !almostEqual(tr.Amount, 20) {
					t.Errorf("transfer[1] = %+v, want c -> a 20", tr)
				}
			},
		},
		{
			name:      "former member keeps their debt",
			memberIDs: []string{"a"},
			expenses: []*expense.Expense{
				{Amount: 40, PaidBy: "a", SplitAmong: []string{"a", "gone"}},
			},
			validate: func(t *testing.T, plan *Plan) {
				if len(plan.Balances) != 2 {
					t.Fatalf("len(Balances) = %d, want 2", len(plan.Balances))
				}
				if got := balanceOf(t, plan, "gone"); !almostEqual(got, -20) {
					t.Errorf("balance gone = %v, want -20", got)
				}
				if len(plan.Transfers) != 1 {
					t.Fatalf("len(Transfers) = %d, want 1", len(plan.Transfers))
				}
				if tr := plan.Transfers[0]; tr.From != "gone" || tr.To != "a" {
					t.Errorf("transfer = %+v, want gone -> a", tr)
				}
			},
		},
		{
			name:      "sub-cent residue produces no transfer",
			memberIDs: []string{"a", "b"},
			contributions: []*contribution.Contribution{
				{ContributorID: "a", Amount: 0.005},
			},
			validate: func(t *testing.T, plan *Plan) {
				if len(plan.Transfers) != 0 {
					t.Errorf("len(Transfers) = %d, want 0", len(plan.Transfers))
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := Compute(tt.memberIDs, tt.contributions, tt.expenses)
			tt.validate(t, plan)
		})
	}
}

func TestComputeZeroSumAndBounds(t *testing.T) {
	memberIDs := []string{"a", "b", "c", "d"}
	contributions := []*contribution.Contribution{
		{ContributorID: "a", Amount: 33.33},
		{ContributorID: "b", Amount: 12.5},
	}
	expenses := []*expense.Expense{
		{Amount: 25, PaidBy: "c", SplitAmong: []string{"a", "b", "c", "d"}},
		{Amount: 10, PaidBy: "a", SplitAmong: []string{"b", "d"}},
		{Amount: 7.77, PaidBy: "d", SplitAmong: []string{"a", "c"}},
	}

	plan := Compute(memberIDs, contributions, expenses)

	// Expense legs are zero-sum, so balances must sum to the contributed
	// total within rounding tolerance.
	var sum float64
	for _, b := range plan.Balances {
		sum += b.Amount
	}
	if math.Abs(sum-45.83) > threshold*float64(len(plan.Balances)) {
		t.Errorf("balance sum = %v, want 45.83 within tolerance", sum)
	}

	var debtors, creditors int
	for _, b := range plan.Balances {
		switch {
		case b.Amount < -threshold:
			debtors++
		case b.Amount > threshold:
			creditors++
		}
	}
	if max := debtors + creditors - 1; len(plan.Transfers) > max {
		t.Errorf("len(Transfers) = %d, want <= %d", len(plan.Transfers), max)
	}

	for _, tr := range plan.Transfers {
		if tr.Amount <= threshold {
			t.Errorf("transfer %+v below threshold", tr)
		}
		if tr.From == tr.To {
			t.Errorf("self transfer %+v", tr)
		}
	}
}
