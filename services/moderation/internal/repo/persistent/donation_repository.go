package persistent

import (
	"tosika/pkg/listquery"
	"tosika/services/moderation/internal/entity"
	"tosika/services/moderation/internal/model"

	"gorm.io/gorm"
)

type DonationRepository interface {
	Create(donation *entity.Donation) error
	GetByID(donationID string) (*entity.Donation, error)
	// TransitionFromPending applies the status change only if the row is
	// still pending; it reports whether a row was updated.
	TransitionFromPending(donationID string, target entity.DonationStatus) (bool, error)
	// RevertToPending undoes a transition whose side effect could not be
	// recorded, conditional on the row still holding the target status.
	RevertToPending(donationID string, from entity.DonationStatus) error
	List(params listquery.Params) ([]*entity.Donation, int64, error)
}

type donationRepository struct {
	db *gorm.DB
}

func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) Create(donation *entity.Donation) error {
	donationModel := ToDonationModel(donation)
	if err := r.db.Create(donationModel).Error; err != nil {
		return err
	}
	donation.ID = donationModel.ID
	donation.CreatedAt = donationModel.CreatedAt
	donation.UpdatedAt = donationModel.UpdatedAt
	return nil
}

func (r *donationRepository) GetByID(donationID string) (*entity.Donation, error) {
	var donationModel model.DonationModel
	if err := r.db.Where("id = ?", donationID).First(&donationModel).Error; err != nil {
		return nil, err
	}
	return ToDonationEntity(&donationModel), nil
}

func (r *donationRepository) TransitionFromPending(donationID string, target entity.DonationStatus) (bool, error) {
	result := r.db.Model(&model.DonationModel{}).
		Where("id = ? AND status = ?", donationID, string(entity.DonationStatusPending)).
		Update("status", string(target))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *donationRepository) RevertToPending(donationID string, from entity.DonationStatus) error {
	return r.db.Model(&model.DonationModel{}).
		Where("id = ? AND status = ?", donationID, string(from)).
		Update("status", string(entity.DonationStatusPending)).Error
}

func (r *donationRepository) List(params listquery.Params) ([]*entity.Donation, int64, error) {
	query := r.db.Model(&model.DonationModel{})

	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("donor_name ILIKE ? OR message ILIKE ?", like, like)
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.CampaignID != "" {
		query = query.Where("campaign_id = ?", params.CampaignID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var donationModels []model.DonationModel
	if err := params.Scope(query).Find(&donationModels).Error; err != nil {
		return nil, 0, err
	}

	donations := make([]*entity.Donation, len(donationModels))
	for i := range donationModels {
		donations[i] = ToDonationEntity(&donationModels[i])
	}
	return donations, total, nil
}
