package invitation

// InvitationResponse represents a minted invitation
type InvitationResponse struct {
	Token     string `json:"token"`
	Link      string `json:"link"`
	ExpiresAt string `json:"expires_at"`
}

// VerifyResponse represents the result of checking a token
type VerifyResponse struct {
	Valid bool          `json:"valid"`
	Group *GroupSummary `json:"group"`
}

// GroupSummary is the slice of the group shown to an invitee before joining
type GroupSummary struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	MemberCount int     `json:"member_count"`
}

// AcceptResponse represents a redeemed invitation
type AcceptResponse struct {
	GroupID string `json:"group_id"`
}
