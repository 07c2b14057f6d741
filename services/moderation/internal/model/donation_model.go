package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DonationModel struct {
	ID            string    `gorm:"type:uuid;primary_key" json:"id"`
	CampaignID    string    `gorm:"type:uuid;not null;index" json:"campaign_id"`
	Amount        float64   `gorm:"type:decimal(14,2);not null" json:"amount"`
	PaymentMethod string    `gorm:"type:varchar(20);not null" json:"payment_method"`
	Message       string    `gorm:"type:text" json:"message"`
	DonorName     string    `gorm:"type:varchar(100)" json:"donor_name"`
	IsAnonymous   bool      `gorm:"default:false" json:"is_anonymous"`
	Status        string    `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (DonationModel) TableName() string {
	return "donations"
}

func (m *DonationModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}
