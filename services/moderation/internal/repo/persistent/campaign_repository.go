package persistent

import (
	"tosika/services/moderation/internal/entity"
	"tosika/services/moderation/internal/model"

	"gorm.io/gorm"
)

// CampaignRepository is the moderation-side port onto the campaigns table.
// The aggregates live here so a transition and its side effect come from the
// same source of truth clients re-fetch from.
type CampaignRepository interface {
	GetByID(campaignID string) (*entity.Campaign, error)
	// ApplyCompletedDonation folds a completed donation into the campaign
	// aggregates.
	ApplyCompletedDonation(campaignID string, amount float64) error
	// DebitApprovedWithdrawal deducts an approved withdrawal from the
	// available balance; it reports false when the balance no longer
	// covers the amount.
	DebitApprovedWithdrawal(campaignID string, amount float64) (bool, error)
	// CreditBalance returns a previously debited amount, used when an
	// approval cannot be recorded after the debit went through.
	CreditBalance(campaignID string, amount float64) error
}

type campaignRepository struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) CampaignRepository {
	return &campaignRepository{db: db}
}

func (r *campaignRepository) GetByID(campaignID string) (*entity.Campaign, error) {
	var campaignModel model.CampaignModel
	if err := r.db.Where("id = ?", campaignID).First(&campaignModel).Error; err != nil {
		return nil, err
	}
	return &entity.Campaign{
		ID:               campaignModel.ID,
		OwnerID:          campaignModel.OwnerID,
		Status:           campaignModel.Status,
		CurrentAmount:    campaignModel.CurrentAmount,
		TotalRaised:      campaignModel.TotalRaised,
		AvailableBalance: campaignModel.AvailableBalance,
		DonorCount:       campaignModel.DonorCount,
	}, nil
}

func (r *campaignRepository) ApplyCompletedDonation(campaignID string, amount float64) error {
	return r.db.Model(&model.CampaignModel{}).
		Where("id = ?", campaignID).
		Updates(map[string]interface{}{
			"current_amount":    gorm.Expr("current_amount + ?", amount),
			"total_raised":      gorm.Expr("total_raised + ?", amount),
			"available_balance": gorm.Expr("available_balance + ?", amount),
			"donor_count":       gorm.Expr("donor_count + 1"),
		}).Error
}

func (r *campaignRepository) DebitApprovedWithdrawal(campaignID string, amount float64) (bool, error) {
	result := r.db.Model(&model.CampaignModel{}).
		Where("id = ? AND available_balance >= ?", campaignID, amount).
		Update("available_balance", gorm.Expr("available_balance - ?", amount))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *campaignRepository) CreditBalance(campaignID string, amount float64) error {
	return r.db.Model(&model.CampaignModel{}).
		Where("id = ?", campaignID).
		Update("available_balance", gorm.Expr("available_balance + ?", amount)).Error
}
