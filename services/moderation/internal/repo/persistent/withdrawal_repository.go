package persistent

import (
	"time"

	"tosika/pkg/listquery"
	"tosika/services/moderation/internal/entity"
	"tosika/services/moderation/internal/model"

	"gorm.io/gorm"
)

type WithdrawalRepository interface {
	Create(request *entity.WithdrawalRequest) error
	GetByID(requestID string) (*entity.WithdrawalRequest, error)
	// TransitionFromPending resolves the request only if it is still
	// pending, stamping the processing moderator and time.
	TransitionFromPending(requestID string, target entity.WithdrawalStatus, moderatorID string) (bool, error)
	// DeleteIfPending removes the request only while it is pending and
	// owned by requesterID.
	DeleteIfPending(requestID, requesterID string) (bool, error)
	List(params listquery.Params) ([]*entity.WithdrawalRequest, int64, error)
	ListByRequester(requesterID string, params listquery.Params) ([]*entity.WithdrawalRequest, int64, error)
}

type withdrawalRepository struct {
	db *gorm.DB
}

func NewWithdrawalRepository(db *gorm.DB) WithdrawalRepository {
	return &withdrawalRepository{db: db}
}

func (r *withdrawalRepository) Create(request *entity.WithdrawalRequest) error {
	requestModel := ToWithdrawalModel(request)
	if err := r.db.Create(requestModel).Error; err != nil {
		return err
	}
	request.ID = requestModel.ID
	request.CreatedAt = requestModel.CreatedAt
	request.UpdatedAt = requestModel.UpdatedAt
	return nil
}

func (r *withdrawalRepository) GetByID(requestID string) (*entity.WithdrawalRequest, error) {
	var requestModel model.WithdrawalModel
	if err := r.db.Where("id = ?", requestID).First(&requestModel).Error; err != nil {
		return nil, err
	}
	return ToWithdrawalEntity(&requestModel), nil
}

func (r *withdrawalRepository) TransitionFromPending(requestID string, target entity.WithdrawalStatus, moderatorID string) (bool, error) {
	now := time.Now()
	result := r.db.Model(&model.WithdrawalModel{}).
		Where("id = ? AND status = ?", requestID, string(entity.WithdrawalStatusPending)).
		Updates(map[string]interface{}{
			"status":       string(target),
			"processed_at": &now,
			"processed_by": moderatorID,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *withdrawalRepository) DeleteIfPending(requestID, requesterID string) (bool, error) {
	result := r.db.
		Where("id = ? AND requester_id = ? AND status = ?", requestID, requesterID, string(entity.WithdrawalStatusPending)).
		Delete(&model.WithdrawalModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *withdrawalRepository) List(params listquery.Params) ([]*entity.WithdrawalRequest, int64, error) {
	return r.list(r.db.Model(&model.WithdrawalModel{}), params)
}

func (r *withdrawalRepository) ListByRequester(requesterID string, params listquery.Params) ([]*entity.WithdrawalRequest, int64, error) {
	return r.list(r.db.Model(&model.WithdrawalModel{}).Where("requester_id = ?", requesterID), params)
}

func (r *withdrawalRepository) list(query *gorm.DB, params listquery.Params) ([]*entity.WithdrawalRequest, int64, error) {
	if params.Search != "" {
		query = query.Where("justification ILIKE ?", "%"+params.Search+"%")
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

	var requestModels []model.WithdrawalModel
	if err := params.Scope(query).Find(&requestModels).Error; err != nil {
		return nil, 0, err
	}

	requests := make([]*entity.WithdrawalRequest, len(requestModels))
	for i := range requestModels {
		requests[i] = ToWithdrawalEntity(&requestModels[i])
	}
	return requests, total, nil
}
