package settlement

// SettlementResponse represents the settlement plan in API responses
type SettlementResponse struct {
	Balances    []*BalanceResponse  `json:"balances"`
	Settlements []*TransferResponse `json:"settlements"`
}

// BalanceResponse is one participant's net position with display identity
type BalanceResponse struct {
	UserID   string  `json:"user_id"`
	Name     string  `json:"name"`
	PhotoURL *string `json:"photo_url,omitempty"`
	Amount   float64 `json:"amount"`
}

// TransferResponse is one suggested payment
type TransferResponse struct {
	From     string  `json:"from"`
	FromName string  `json:"from_name"`
	To       string  `json:"to"`
	ToName   string  `json:"to_name"`
	Amount   float64 `json:"amount"`
}
