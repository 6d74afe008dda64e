package contribution

import "time"

// Contribution represents money a member deposits into the group pool
type Contribution struct {
	ID            string    `json:"id"`
	GroupID       string    `json:"group_id"`
	ContributorID string    `json:"contributor_id"`
	Amount        float64   `json:"amount"`
	Description   *string   `json:"description,omitempty"`
	Type          *string   `json:"type,omitempty"`
	PaymentMethod *string   `json:"payment_method,omitempty"`
	EntryDate     *string   `json:"date,omitempty"`
	VoucherType   *string   `json:"voucher_type,omitempty"`
	VoucherNumber *string   `json:"voucher_number,omitempty"`
	UserName      string    `json:"user_name"`
	UserPhoto     *string   `json:"user_photo,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
