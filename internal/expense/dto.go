package expense

import "time"

// CreateExpenseRequest represents the request to record a shared expense.
// PaidBy defaults to the caller, SplitAmong to the full current membership.
type CreateExpenseRequest struct {
	Amount        float64  `json:"amount" validate:"required,gt=0"`
	Description   string   `json:"description" validate:"required,min=1,max=255"`
	Category      string   `json:"category" validate:"required"`
	Subcategory   *string  `json:"subcategory,omitempty"`
	Date          *string  `json:"date,omitempty"`
	PaidBy        *string  `json:"paid_by,omitempty"`
	SplitAmong    []string `json:"split_among,omitempty"`
	PaymentMethod *string  `json:"payment_method,omitempty"`
}

// UpdateExpenseRequest represents the request to edit an expense.
// Only the record's author may apply it. A nil SplitAmong leaves the split
// unchanged; an empty one is rejected.
type UpdateExpenseRequest struct {
	Amount        *float64 `json:"amount,omitempty" validate:"omitempty,gt=0"`
	Description   *string  `json:"description,omitempty" validate:"omitempty,min=1,max=255"`
	Category      *string  `json:"category,omitempty"`
	Subcategory   *string  `json:"subcategory,omitempty"`
	Date          *string  `json:"date,omitempty"`
	PaidBy        *string  `json:"paid_by,omitempty"`
	SplitAmong    []string `json:"split_among,omitempty"`
	PaymentMethod *string  `json:"payment_method,omitempty"`
}

// ExpenseResponse represents the response for an expense
type ExpenseResponse struct {
	ID            string   `json:"id"`
	GroupID       string   `json:"group_id"`
	Amount        float64  `json:"amount"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Subcategory   *string  `json:"subcategory,omitempty"`
	Date          *string  `json:"date,omitempty"`
	PaidBy        string   `json:"paid_by"`
	SplitAmong    []string `json:"split_among"`
	PaymentMethod *string  `json:"payment_method,omitempty"`
	CreatedBy     string   `json:"created_by"`
	UserName      string   `json:"user_name"`
	UserPhoto     *string  `json:"user_photo,omitempty"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}

// ToResponse converts an Expense model to an ExpenseResponse DTO
func (e *Expense) ToResponse() *ExpenseResponse {
	return &ExpenseResponse{
		ID:            e.ID,
		GroupID:       e.GroupID,
		Amount:        e.Amount,
		Description:   e.Description,
		Category:      e.Category,
		Subcategory:   e.Subcategory,
		Date:          e.EntryDate,
		PaidBy:        e.PaidBy,
		SplitAmong:    e.SplitAmong,
		PaymentMethod: e.PaymentMethod,
		CreatedBy:     e.CreatedBy,
		UserName:      e.UserName,
		UserPhoto:     e.UserPhoto,
		CreatedAt:     e.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     e.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
