package entity

import "time"

type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusSuspended CampaignStatus = "suspended"
	CampaignStatusClosed    CampaignStatus = "closed"
)

// Campaign aggregates (CurrentAmount, TotalRaised, DonorCount,
// AvailableBalance) are recomputed server side when a donation or withdrawal
// transition is applied; clients must re-fetch rather than patch them.
type Campaign struct {
	ID               string         `json:"id"`
	OwnerID          string         `json:"owner_id"`
	CategoryID       string         `json:"category_id"`
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	ImageURL         string         `json:"image_url"`
	TargetAmount     float64        `json:"target_amount"`
	CurrentAmount    float64        `json:"current_amount"`
	TotalRaised      float64        `json:"total_raised"`
	AvailableBalance float64        `json:"available_balance"`
	DonorCount       int            `json:"donor_count"`
	Status           CampaignStatus `json:"status"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}
