package entity

import "time"

type WithdrawalStatus string

const (
	WithdrawalStatusPending  WithdrawalStatus = "pending"
	WithdrawalStatusApproved WithdrawalStatus = "approved"
	WithdrawalStatusRejected WithdrawalStatus = "rejected"
)

func (s WithdrawalStatus) Terminal() bool {
	return s == WithdrawalStatusApproved || s == WithdrawalStatusRejected
}

// WithdrawalRequest is created by a campaign owner against the campaign's
// available balance and resolved by a moderator. The owner may delete it only
// while it is still pending.
type WithdrawalRequest struct {
	ID            string           `json:"id"`
	CampaignID    string           `json:"campaign_id"`
	RequesterID   string           `json:"requester_id"`
	BankInfoID    string           `json:"bank_info_id"`
	Amount        float64          `json:"amount"`
	Justification string           `json:"justification"`
	Status        WithdrawalStatus `json:"status"`
	ProcessedAt   *time.Time       `json:"processed_at,omitempty"`
	ProcessedBy   string           `json:"processed_by,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}
