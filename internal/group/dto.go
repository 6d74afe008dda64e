package group

import "time"

// CreateGroupRequest represents the request to create a new group
type CreateGroupRequest struct {
	Name         string   `json:"name" validate:"required,min=1,max=100"`
	Description  *string  `json:"description,omitempty"`
	Icon         *string  `json:"icon,omitempty"`
	Color        *string  `json:"color,omitempty"`
	TargetAmount *float64 `json:"target_amount,omitempty"`
	Currency     *string  `json:"currency,omitempty"`
}

// UpdateGroupRequest represents the request to update a group
type UpdateGroupRequest struct {
	Name         *string  `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description  *string  `json:"description,omitempty"`
	Icon         *string  `json:"icon,omitempty"`
	Color        *string  `json:"color,omitempty"`
	TargetAmount *float64 `json:"target_amount,omitempty"`
	Currency     *string  `json:"currency,omitempty"`
}

// GroupResponse represents the response for a group
type GroupResponse struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Description     *string           `json:"description,omitempty"`
	Icon            *string           `json:"icon,omitempty"`
	Color           *string           `json:"color,omitempty"`
	TargetAmount    *float64          `json:"target_amount,omitempty"`
	Currency        string            `json:"currency"`
	CreatedBy       string            `json:"created_by"`
	CreatorName     string            `json:"creator_name,omitempty"`
	MemberCount     int               `json:"member_count"`
	Members         []*MemberResponse `json:"members,omitempty"`
	InvitationToken string            `json:"invitation_token,omitempty"`
	InvitationLink  string            `json:"invitation_link,omitempty"`
	CreatedAt       string            `json:"created_at"`
	UpdatedAt       string            `json:"updated_at"`
}

// MemberResponse represents a member in a group response
type MemberResponse struct {
	UserID   string     `json:"user_id"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	PhotoURL *string    `json:"photo_url,omitempty"`
	Role     MemberRole `json:"role"`
	JoinedAt string     `json:"joined_at"`
}

// ToResponse converts a Group model to a GroupResponse DTO
func (g *Group) ToResponse() *GroupResponse {
	return &GroupResponse{
		ID:           g.ID,
		Name:         g.Name,
		Description:  g.Description,
		Icon:         g.Icon,
		Color:        g.Color,
		TargetAmount: g.TargetAmount,
		Currency:     g.Currency,
		CreatedBy:    g.CreatedBy,
		MemberCount:  len(g.MemberIDs),
		CreatedAt:    g.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    g.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
