package expense

import "time"

// Expense represents money a member spent on behalf of a subset of the group
type Expense struct {
	ID            string    `json:"id"`
	GroupID       string    `json:"group_id"`
	Amount        float64   `json:"amount"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Subcategory   *string   `json:"subcategory,omitempty"`
	EntryDate     *string   `json:"date,omitempty"`
	PaidBy        string    `json:"paid_by"`
	SplitAmong    []string  `json:"split_among"`
	PaymentMethod *string   `json:"payment_method,omitempty"`
	CreatedBy     string    `json:"created_by"`
	UserName      string    `json:"user_name"`
	UserPhoto     *string   `json:"user_photo,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Share is the portion of the amount each member of the split owes
func (e *Expense) Share() float64 {
	if len(e.SplitAmong) == 0 {
		return 0
	}
	return e.Amount / float64(len(e.SplitAmong))
}
