package persistent

import (
	"tosika/services/campaign/internal/entity"
	"tosika/services/campaign/internal/model"

	"gorm.io/gorm"
)

type BankInfoRepository interface {
	Create(info *entity.BankInfo) error
	GetByID(infoID string) (*entity.BankInfo, error)
	ListByOwner(ownerID string) ([]*entity.BankInfo, error)
	Update(info *entity.BankInfo) error
	Delete(infoID string) error
}

type bankInfoRepository struct {
	db *gorm.DB
}

func NewBankInfoRepository(db *gorm.DB) BankInfoRepository {
	return &bankInfoRepository{db: db}
}

func (r *bankInfoRepository) Create(info *entity.BankInfo) error {
	infoModel := ToBankInfoModel(info)
	if err := r.db.Create(infoModel).Error; err != nil {
		return err
	}
	info.ID = infoModel.ID
	info.CreatedAt = infoModel.CreatedAt
	info.UpdatedAt = infoModel.UpdatedAt
	return nil
}

func (r *bankInfoRepository) GetByID(infoID string) (*entity.BankInfo, error) {
	var infoModel model.BankInfoModel
	if err := r.db.Where("id = ?", infoID).First(&infoModel).Error; err != nil {
		return nil, err
	}
	return ToBankInfoEntity(&infoModel), nil
}

func (r *bankInfoRepository) ListByOwner(ownerID string) ([]*entity.BankInfo, error) {
	var infoModels []model.BankInfoModel
	if err := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&infoModels).Error; err != nil {
		return nil, err
	}

	infos := make([]*entity.BankInfo, len(infoModels))
	for i := range infoModels {
		infos[i] = ToBankInfoEntity(&infoModels[i])
	}
	return infos, nil
}

func (r *bankInfoRepository) Update(info *entity.BankInfo) error {
	return r.db.Save(ToBankInfoModel(info)).Error
}

func (r *bankInfoRepository) Delete(infoID string) error {
	return r.db.Delete(&model.BankInfoModel{}, "id = ?", infoID).Error
}
