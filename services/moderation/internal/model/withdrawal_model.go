package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WithdrawalModel struct {
	ID            string     `gorm:"type:uuid;primary_key" json:"id"`
	CampaignID    string     `gorm:"type:uuid;not null;index" json:"campaign_id"`
	RequesterID   string     `gorm:"type:uuid;not null;index" json:"requester_id"`
	BankInfoID    string     `gorm:"type:uuid;not null" json:"bank_info_id"`
	Amount        float64    `gorm:"type:decimal(14,2);not null" json:"amount"`
	Justification string     `gorm:"type:text" json:"justification"`
	Status        string     `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	ProcessedAt   *time.Time `json:"processed_at"`
	ProcessedBy   string     `gorm:"type:uuid" json:"processed_by"`
	CreatedAt     time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (WithdrawalModel) TableName() string {
	return "withdrawal_requests"
}

func (m *WithdrawalModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}
