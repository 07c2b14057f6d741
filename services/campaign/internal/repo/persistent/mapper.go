package persistent

import (
	"tosika/services/campaign/internal/entity"
	"tosika/services/campaign/internal/model"
)

func ToCampaignEntity(m *model.CampaignModel) *entity.Campaign {
	if m == nil {
		return nil
	}

	return &entity.Campaign{
		ID:               m.ID,
		OwnerID:          m.OwnerID,
		CategoryID:       m.CategoryID,
		Title:            m.Title,
		Description:      m.Description,
		ImageURL:         m.ImageURL,
		TargetAmount:     m.TargetAmount,
		CurrentAmount:    m.CurrentAmount,
		TotalRaised:      m.TotalRaised,
		AvailableBalance: m.AvailableBalance,
		DonorCount:       m.DonorCount,
		Status:           entity.CampaignStatus(m.Status),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func ToCampaignModel(e *entity.Campaign) *model.CampaignModel {
	if e == nil {
		return nil
	}

	return &model.CampaignModel{
		ID:               e.ID,
		OwnerID:          e.OwnerID,
		CategoryID:       e.CategoryID,
		Title:            e.Title,
		Description:      e.Description,
		ImageURL:         e.ImageURL,
		TargetAmount:     e.TargetAmount,
		CurrentAmount:    e.CurrentAmount,
		TotalRaised:      e.TotalRaised,
		AvailableBalance: e.AvailableBalance,
		DonorCount:       e.DonorCount,
		Status:           string(e.Status),
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

func ToCategoryEntity(m *model.CategoryModel) *entity.Category {
	if m == nil {
		return nil
	}

	return &entity.Category{
		ID:        m.ID,
		Name:      m.Name,
		Slug:      m.Slug,
		CreatedAt: m.CreatedAt,
	}
}

func ToBankInfoEntity(m *model.BankInfoModel) *entity.BankInfo {
	if m == nil {
		return nil
	}

	return &entity.BankInfo{
		ID:            m.ID,
		OwnerID:       m.OwnerID,
		Kind:          entity.BankInfoKind(m.Kind),
		Label:         m.Label,
		AccountName:   m.AccountName,
		AccountNumber: m.AccountNumber,
		Provider:      m.Provider,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func ToBankInfoModel(e *entity.BankInfo) *model.BankInfoModel {
	if e == nil {
		return nil
	}

	return &model.BankInfoModel{
		ID:            e.ID,
		OwnerID:       e.OwnerID,
		Kind:          string(e.Kind),
		Label:         e.Label,
		AccountName:   e.AccountName,
		AccountNumber: e.AccountNumber,
		Provider:      e.Provider,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}
