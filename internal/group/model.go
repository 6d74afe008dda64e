package group

import "time"

// MemberRole represents the role of a group member
type MemberRole string

const (
	MemberRoleAdmin  MemberRole = "admin"
	MemberRoleMember MemberRole = "member"
)

// Group represents a shared money pool owned by a set of members
type Group struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	Icon         *string   `json:"icon,omitempty"`
	Color        *string   `json:"color,omitempty"`
	TargetAmount *float64  `json:"target_amount,omitempty"`
	Currency     string    `json:"currency"`
	CreatedBy    string    `json:"created_by"`
	MemberIDs    []string  `json:"member_ids"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasMember reports whether userID is in the denormalized member set
func (g *Group) HasMember(userID string) bool {
	for _, id := range g.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Member represents a user's membership in a group
type Member struct {
	GroupID   string     `json:"group_id"`
	UserID    string     `json:"user_id"`
	Role      MemberRole `json:"role"`
	JoinedAt  time.Time  `json:"joined_at"`
	JoinedVia *string    `json:"joined_via,omitempty"`
}
