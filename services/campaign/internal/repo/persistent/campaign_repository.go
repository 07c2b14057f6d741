package persistent

import (
	"tosika/pkg/listquery"
	"tosika/services/campaign/internal/entity"
	"tosika/services/campaign/internal/model"

	"gorm.io/gorm"
)

type CampaignRepository interface {
	Create(campaign *entity.Campaign) error
	GetByID(campaignID string) (*entity.Campaign, error)
	Update(campaign *entity.Campaign) error
	UpdateStatus(campaignID string, status entity.CampaignStatus) error
	List(params listquery.Params) ([]*entity.Campaign, int64, error)
	ListByOwner(ownerID string, params listquery.Params) ([]*entity.Campaign, int64, error)
	ListCategories() ([]*entity.Category, error)
}

type campaignRepository struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) CampaignRepository {
	return &campaignRepository{db: db}
}

func (r *campaignRepository) Create(campaign *entity.Campaign) error {
	campaignModel := ToCampaignModel(campaign)
	if err := r.db.Create(campaignModel).Error; err != nil {
		return err
	}
	campaign.ID = campaignModel.ID
	campaign.CreatedAt = campaignModel.CreatedAt
	campaign.UpdatedAt = campaignModel.UpdatedAt
	return nil
}

func (r *campaignRepository) GetByID(campaignID string) (*entity.Campaign, error) {
	var campaignModel model.CampaignModel
	if err := r.db.Where("id = ?", campaignID).First(&campaignModel).Error; err != nil {
		return nil, err
	}
	return ToCampaignEntity(&campaignModel), nil
}

func (r *campaignRepository) Update(campaign *entity.Campaign) error {
	return r.db.Save(ToCampaignModel(campaign)).Error
}

func (r *campaignRepository) UpdateStatus(campaignID string, status entity.CampaignStatus) error {
	return r.db.Model(&model.CampaignModel{}).
		Where("id = ?", campaignID).
		Update("status", string(status)).Error
}

func (r *campaignRepository) List(params listquery.Params) ([]*entity.Campaign, int64, error) {
	return r.list(r.db.Model(&model.CampaignModel{}), params)
}

func (r *campaignRepository) ListByOwner(ownerID string, params listquery.Params) ([]*entity.Campaign, int64, error) {
	return r.list(r.db.Model(&model.CampaignModel{}).Where("owner_id = ?", ownerID), params)
}

func (r *campaignRepository) list(query *gorm.DB, params listquery.Params) ([]*entity.Campaign, int64, error) {
	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", like, like)
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var campaignModels []model.CampaignModel
	if err := params.Scope(query).Find(&campaignModels).Error; err != nil {
		return nil, 0, err
	}

	campaigns := make([]*entity.Campaign, len(campaignModels))
	for i := range campaignModels {
		campaigns[i] = ToCampaignEntity(&campaignModels[i])
	}
	return campaigns, total, nil
}

func (r *campaignRepository) ListCategories() ([]*entity.Category, error) {
	var categoryModels []model.CategoryModel
	if err := r.db.Order("name ASC").Find(&categoryModels).Error; err != nil {
		return nil, err
	}

	categories := make([]*entity.Category, len(categoryModels))
	for i := range categoryModels {
		categories[i] = ToCategoryEntity(&categoryModels[i])
	}
	return categories, nil
}
