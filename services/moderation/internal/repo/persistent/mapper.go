package persistent

import (
	"tosika/services/moderation/internal/entity"
	"tosika/services/moderation/internal/model"
)

func ToDonationEntity(m *model.DonationModel) *entity.Donation {
	if m == nil {
		return nil
	}

	return &entity.Donation{
		ID:            m.ID,
		CampaignID:    m.CampaignID,
		Amount:        m.Amount,
		PaymentMethod: entity.PaymentMethod(m.PaymentMethod),
		Message:       m.Message,
		DonorName:     m.DonorName,
		IsAnonymous:   m.IsAnonymous,
		Status:        entity.DonationStatus(m.Status),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func ToDonationModel(e *entity.Donation) *model.DonationModel {
	if e == nil {
		return nil
	}

	return &model.DonationModel{
		ID:            e.ID,
		CampaignID:    e.CampaignID,
		Amount:        e.Amount,
		PaymentMethod: string(e.PaymentMethod),
		Message:       e.Message,
		DonorName:     e.DonorName,
		IsAnonymous:   e.IsAnonymous,
		Status:        string(e.Status),
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func ToWithdrawalEntity(m *model.WithdrawalModel) *entity.WithdrawalRequest {
	if m == nil {
		return nil
	}

	return &entity.WithdrawalRequest{
		ID:            m.ID,
		CampaignID:    m.CampaignID,
		RequesterID:   m.RequesterID,
		BankInfoID:    m.BankInfoID,
		Amount:        m.Amount,
		Justification: m.Justification,
		Status:        entity.WithdrawalStatus(m.Status),
		ProcessedAt:   m.ProcessedAt,
		ProcessedBy:   m.ProcessedBy,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func ToWithdrawalModel(e *entity.WithdrawalRequest) *model.WithdrawalModel {
	if e == nil {
		return nil
	}

	return &model.WithdrawalModel{
		ID:            e.ID,
		CampaignID:    e.CampaignID,
		RequesterID:   e.RequesterID,
		BankInfoID:    e.BankInfoID,
		Amount:        e.Amount,
		Justification: e.Justification,
		Status:        string(e.Status),
		ProcessedAt:   e.ProcessedAt,
		ProcessedBy:   e.ProcessedBy,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}
