package stats

// StatsResponse represents the group consumption summary in API responses
type StatsResponse struct {
	TotalContributed float64               `json:"total_contributed"`
	TotalExpenses    float64               `json:"total_expenses"`
	Balance          float64               `json:"balance"`
	ByCategory       map[string]float64    `json:"by_category"`
	Members          []*MemberStatResponse `json:"members"`
	MemberCount      int                   `json:"member_count"`
}

// MemberStatResponse represents a single member's figures
type MemberStatResponse struct {
	UserID      string  `json:"user_id"`
	Name        string  `json:"name"`
	PhotoURL    *string `json:"photo_url,omitempty"`
	Contributed float64 `json:"contributed"`
	Spent       float64 `json:"spent"`
	Balance     float64 `json:"balance"`
}
