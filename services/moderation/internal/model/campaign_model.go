package model

// CampaignModel is the subset of the campaigns table the moderation service
// reads and updates when applying transitions.
type CampaignModel struct {
	ID               string  `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID          string  `gorm:"type:uuid" json:"owner_id"`
	Status           string  `gorm:"type:varchar(20)" json:"status"`
	CurrentAmount    float64 `gorm:"type:decimal(14,2)" json:"current_amount"`
	TotalRaised      float64 `gorm:"type:decimal(14,2)" json:"total_raised"`
	AvailableBalance float64 `gorm:"type:decimal(14,2)" json:"available_balance"`
	DonorCount       int     `json:"donor_count"`
}

func (CampaignModel) TableName() string {
	return "campaigns"
}
