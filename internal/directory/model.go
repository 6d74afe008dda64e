package directory

// PlaceholderName is substituted when a user cannot be resolved
const PlaceholderName = "Unknown"

// Identity is the resolved public profile of a user
type Identity struct {
	UserID      string  `json:"user_id"`
	DisplayName string  `json:"display_name"`
	Email       string  `json:"email"`
	PhotoURL    *string `json:"photo_url,omitempty"`
}

// Placeholder returns the stand-in identity used when lookup fails
func Placeholder(userID string) *Identity {
	return &Identity{
		UserID:      userID,
		DisplayName: PlaceholderName,
	}
}
