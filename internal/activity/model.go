package activity

import "time"

// Entry kinds as they appear in the feed
const (
	KindContribution = "contribution"
	KindExpense      = "expense"
)

// Entry is one feed item: either a contribution or an expense, tagged by
// Kind. Data holds the entry's regular API representation so feed items look
// identical to the corresponding list endpoints.
type Entry struct {
	Kind      string
	CreatedAt time.Time
	Data      interface{}
}
