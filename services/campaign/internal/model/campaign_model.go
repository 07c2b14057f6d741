package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CampaignModel struct {
	ID               string         `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID          string         `gorm:"type:uuid;not null;index" json:"owner_id"`
	CategoryID       string         `gorm:"type:uuid;index" json:"category_id"`
	Title            string         `gorm:"type:varchar(200);not null" json:"title"`
	Description      string         `gorm:"type:text" json:"description"`
	ImageURL         string         `gorm:"type:varchar(500)" json:"image_url"`
	TargetAmount     float64        `gorm:"type:decimal(14,2);not null" json:"target_amount"`
	CurrentAmount    float64        `gorm:"type:decimal(14,2);default:0" json:"current_amount"`
	TotalRaised      float64        `gorm:"type:decimal(14,2);default:0" json:"total_raised"`
	AvailableBalance float64        `gorm:"type:decimal(14,2);default:0" json:"available_balance"`
	DonorCount       int            `gorm:"default:0" json:"donor_count"`
	Status           string         `gorm:"type:varchar(20);default:'draft';index" json:"status"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (CampaignModel) TableName() string {
	return "campaigns"
}

func (m *CampaignModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

type CategoryModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Slug      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

func (CategoryModel) TableName() string {
	return "categories"
}

func (m *CategoryModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

type BankInfoModel struct {
	ID            string         `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID       string         `gorm:"type:uuid;not null;index" json:"owner_id"`
	Kind          string         `gorm:"type:varchar(20);not null" json:"kind"`
	Label         string         `gorm:"type:varchar(100)" json:"label"`
	AccountName   string         `gorm:"type:varchar(100);not null" json:"account_name"`
	AccountNumber string         `gorm:"type:varchar(50);not null" json:"account_number"`
	Provider      string         `gorm:"type:varchar(50)" json:"provider"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (BankInfoModel) TableName() string {
	return "bank_infos"
}

func (m *BankInfoModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}
