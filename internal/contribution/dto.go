package contribution

import "time"

// CreateContributionRequest represents the request to record a deposit
type CreateContributionRequest struct {
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	Description   *string `json:"description,omitempty"`
	Type          *string `json:"type,omitempty"`
	PaymentMethod *string `json:"payment_method,omitempty"`
	Date          *string `json:"date,omitempty"`
	VoucherType   *string `json:"voucher_type,omitempty"`
	VoucherNumber *string `json:"voucher_number,omitempty"`
}

// UpdateContributionRequest represents the request to edit a deposit.
// Only the contributor may apply it.
type UpdateContributionRequest struct {
	Amount        *float64 `json:"amount,omitempty" validate:"omitempty,gt=0"`
	Description   *string  `json:"description,omitempty"`
	Type          *string  `json:"type,omitempty"`
	PaymentMethod *string  `json:"payment_method,omitempty"`
	Date          *string  `json:"date,omitempty"`
	VoucherType   *string  `json:"voucher_type,omitempty"`
	VoucherNumber *string  `json:"voucher_number,omitempty"`
}

// ContributionResponse represents the response for a contribution
type ContributionResponse struct {
	ID            string  `json:"id"`
	GroupID       string  `json:"group_id"`
	ContributorID string  `json:"contributor_id"`
	Amount        float64 `json:"amount"`
	Description   *string `json:"description,omitempty"`
	Type          *string `json:"type,omitempty"`
	PaymentMethod *string `json:"payment_method,omitempty"`
	Date          *string `json:"date,omitempty"`
	VoucherType   *string `json:"voucher_type,omitempty"`
	VoucherNumber *string `json:"voucher_number,omitempty"`
	UserName      string  `json:"user_name"`
	UserPhoto     *string `json:"user_photo,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

// ToResponse converts a Contribution model to a ContributionResponse DTO
func (c *Contribution) ToResponse() *ContributionResponse {
	return &ContributionResponse{
		ID:            c.ID,
		GroupID:       c.GroupID,
		ContributorID: c.ContributorID,
		Amount:        c.Amount,
		Description:   c.Description,
		Type:          c.Type,
		PaymentMethod: c.PaymentMethod,
		Date:          c.EntryDate,
		VoucherType:   c.VoucherType,
		VoucherNumber: c.VoucherNumber,
		UserName:      c.UserName,
		UserPhoto:     c.UserPhoto,
		CreatedAt:     c.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     c.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
