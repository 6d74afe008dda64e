package invitation

import "time"

// TTL is how long a join token stays redeemable
const TTL = 7 * 24 * time.Hour

// Invitation is a time-limited token that grants group membership
type Invitation struct {
	Token     string    `json:"token"`
	GroupID   string    `json:"group_id"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Active reports whether the invitation can still be redeemed at t
func (i *Invitation) Active(t time.Time) bool {
	return t.Before(i.ExpiresAt)
}
