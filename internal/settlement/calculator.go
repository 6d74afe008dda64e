package settlement

import (
	"math"

	"kitty/internal/contribution"
	"kitty/internal/expense"
)

// Balance is one participant's net position. Positive means the pool owes
// them, negative means they owe the pool.
type Balance struct {
	UserID string
	Amount float64
}

// Transfer is a single suggested payment that reduces debt
type Transfer struct {
	From   string
	To     string
	Amount float64
}

// Plan pairs the raw balances with the minimized transfer list
type Plan struct {
	Balances  []Balance
	Transfers []Transfer
}

// threshold under which a balance counts as settled; avoids churning on
// float residue from uneven splits
const threshold = 0.01

// Compute folds both ledgers into net balances and greedily matches debtors
// against creditors. Participants are kept in first-seen order: members
// first, then any id appearing only in ledger entries (a former member still
// owes or is owed their recorded share).
func Compute(memberIDs []string, contributions []*contribution.Contribution, expenses []*expense.Expense) *Plan {
	balances := make(map[string]float64, len(memberIDs))
	order := make([]string, 0, len(memberIDs))

	credit := func(id string, amount float64) {
		if _, seen := balances[id]; !seen {
			order = append(order, id)
		}
		balances[id] += amount
	}

	for _, id := range memberIDs {
		credit(id, 0)
	}

	for _, c := range contributions {
		credit(c.ContributorID, c.Amount)
	}

	for _, e := range expenses {
		split := e.SplitAmong
		if len(split) == 0 {
			split = memberIDs
		}
		share := e.Amount / float64(len(split))

		credit(e.PaidBy, e.Amount)
		for _, id := range split {
			credit(id, -share)
		}
	}

	var debtors, creditors []*Balance
	ordered := make([]Balance, len(order))
	for i, id := range order {
		ordered[i] = Balance{UserID: id, Amount: round2(balances[id])}
		switch bal := balances[id]; {
		case bal < -threshold:
			debtors = append(debtors, &Balance{UserID: id, Amount: -bal})
		case bal > threshold:
			creditors = append(creditors, &Balance{UserID: id, Amount: bal})
		}
	}

	return &Plan{
		Balances:  ordered,
		Transfers: simplify(debtors, creditors),
	}
}

// simplify walks both lists once, always settling the smaller of the current
// debtor/creditor pair. It emits at most len(debtors)+len(creditors)-1
// transfers and consumes its inputs.
func simplify(debtors, creditors []*Balance) []Transfer {
	transfers := []Transfer{}

	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor, creditor := debtors[i], creditors[j]
		amount := math.Min(debtor.Amount, creditor.Amount)

		if amount > threshold {
			transfers = append(transfers, Transfer{
				From:   debtor.UserID,
				To:     creditor.UserID,
				Amount: round2(amount),
			})
		}

		debtor.Amount -= amount
		creditor.Amount -= amount

		if debtor.Amount < threshold {
			i++
		}
		if creditor.Amount < threshold {
			j++
		}
	}

	return transfers
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
