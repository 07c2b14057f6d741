package entity

// Campaign is the moderation-side view of a campaign: enough to check that
// donations target a live campaign and withdrawals fit the available balance.
type Campaign struct {
	ID               string  `json:"id"`
	OwnerID          string  `json:"owner_id"`
	Status           string  `json:"status"`
	CurrentAmount    float64 `json:"current_amount"`
	TotalRaised      float64 `json:"total_raised"`
	AvailableBalance float64 `json:"available_balance"`
	DonorCount       int     `json:"donor_count"`
}
